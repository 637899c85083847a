package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

// LogPanel shows tool output line by line. Methods must run on the UI goroutine.
type LogPanel struct {
	lines binding.StringList
	list  *widget.List
	max   int
}

// NewLogPanel creates an empty log panel keeping at most maxLines lines
func NewLogPanel(maxLines int) *LogPanel {
	lp := &LogPanel{
		lines: binding.NewStringList(),
		max:   maxLines,
	}

	lp.list = widget.NewListWithData(lp.lines,
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.TextStyle = fyne.TextStyle{Monospace: true}
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)
	return lp
}

// Append adds a line and scrolls to it, dropping the oldest lines over the limit
func (lp *LogPanel) Append(line string) {
	lp.lines.Append(line)

	if lp.max > 0 && lp.lines.Length() > lp.max {
		all, err := lp.lines.Get()
		if err == nil {
			lp.lines.Set(all[len(all)-lp.max:])
		}
	}
	lp.list.ScrollToBottom()
}

// Clear removes all lines
func (lp *LogPanel) Clear() {
	lp.lines.Set([]string{})
}

// Lines returns the current lines
func (lp *LogPanel) Lines() []string {
	all, err := lp.lines.Get()
	if err != nil {
		return nil
	}
	return all
}

// Widget returns the list to place in a layout
func (lp *LogPanel) Widget() fyne.CanvasObject {
	return lp.list
}
