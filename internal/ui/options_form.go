package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/munchie/minivideo/internal/model"
)

// OptionsForm holds the conversion option widgets
type OptionsForm struct {
	localization *Localization

	formatSelect     *widget.Select
	widthSlider      *widget.Slider
	fpsSlider        *widget.Slider
	speedSlider      *widget.Slider
	qualitySlider    *widget.Slider
	widthValue       *widget.Label
	fpsValue         *widget.Label
	speedValue       *widget.Label
	qualityValue     *widget.Label
	loopCheck        *widget.Check
	interpolateCheck *widget.Check

	formatItem  *widget.FormItem
	widthItem   *widget.FormItem
	fpsItem     *widget.FormItem
	speedItem   *widget.FormItem
	qualityItem *widget.FormItem
	form        *widget.Form

	enabled bool

	// OnFormatChanged is called after the user picks another format
	OnFormatChanged func(model.OutputFormat)
}

// NewOptionsForm creates the option widgets populated with defaults
func NewOptionsForm(localization *Localization) *OptionsForm {
	f := &OptionsForm{localization: localization, enabled: true}

	formats := make([]string, 0, len(model.AllFormats()))
	for _, format := range model.AllFormats() {
		formats = append(formats, format.String())
	}
	f.formatSelect = widget.NewSelect(formats, f.onFormatSelected)

	f.widthValue = widget.NewLabel("")
	f.widthSlider = newStepSlider(model.MinWidthPx, model.MaxWidthPx, model.WidthStepPx, func(v float64) {
		f.widthValue.SetText(fmt.Sprintf(WidthValueFormat, int(v)))
	})

	f.fpsValue = widget.NewLabel("")
	f.fpsSlider = newStepSlider(model.MinFPS, model.MaxFPS, 1, func(v float64) {
		f.fpsValue.SetText(strconv.Itoa(int(v)))
	})

	f.speedValue = widget.NewLabel("")
	f.speedSlider = newStepSlider(model.MinSpeed, model.MaxSpeed, 1, func(v float64) {
		f.speedValue.SetText(fmt.Sprintf(SpeedValueFormat, v))
	})

	f.qualityValue = widget.NewLabel("")
	f.qualitySlider = newStepSlider(model.MinQuality, model.MaxQuality, 1, func(v float64) {
		f.qualityValue.SetText(strconv.Itoa(int(v)))
	})

	f.loopCheck = widget.NewCheck("", nil)
	f.interpolateCheck = widget.NewCheck("", nil)

	f.formatItem = widget.NewFormItem("", f.formatSelect)
	f.widthItem = widget.NewFormItem("", withValue(f.widthSlider, f.widthValue))
	f.fpsItem = widget.NewFormItem("", withValue(f.fpsSlider, f.fpsValue))
	f.speedItem = widget.NewFormItem("", withValue(f.speedSlider, f.speedValue))
	f.qualityItem = widget.NewFormItem("", withValue(f.qualitySlider, f.qualityValue))
	f.form = widget.NewForm(
		f.formatItem,
		f.widthItem,
		f.fpsItem,
		f.speedItem,
		f.qualityItem,
		widget.NewFormItem("", f.loopCheck),
		widget.NewFormItem("", f.interpolateCheck),
	)

	f.RefreshTexts()
	f.SetOptions(model.DefaultOptions())
	return f
}

// newStepSlider creates a slider whose value label follows it
func newStepSlider(lo, hi, step float64, onValue func(float64)) *widget.Slider {
	s := widget.NewSlider(lo, hi)
	s.Step = step
	s.OnChanged = onValue
	return s
}

// withValue places a fixed-width value label to the right of a slider
func withValue(slider *widget.Slider, value *widget.Label) fyne.CanvasObject {
	labelBox := container.NewGridWrap(fyne.NewSize(ValueLabelWidth, value.MinSize().Height), value)
	return container.NewBorder(nil, nil, nil, labelBox, slider)
}

// RefreshTexts applies the current language to labels
func (f *OptionsForm) RefreshTexts() {
	f.formatItem.Text = f.localization.GetText(KeyFormat)
	f.widthItem.Text = f.localization.GetText(KeyWidth)
	f.fpsItem.Text = f.localization.GetText(KeyFPS)
	f.speedItem.Text = f.localization.GetText(KeySpeed)
	f.qualityItem.Text = f.localization.GetText(KeyQuality)
	f.loopCheck.Text = f.localization.GetText(KeyLoop)
	f.interpolateCheck.Text = f.localization.GetText(KeyInterpolate)
	f.loopCheck.Refresh()
	f.interpolateCheck.Refresh()
	f.form.Refresh()
}

// SetOptions loads option values into the widgets; paths are ignored
func (f *OptionsForm) SetOptions(o model.ConversionOptions) {
	f.formatSelect.SetSelected(o.Format.String())
	f.widthSlider.SetValue(float64(o.WidthPx))
	f.fpsSlider.SetValue(float64(o.FPS))
	f.speedSlider.SetValue(o.Speed)
	f.qualitySlider.SetValue(float64(o.Quality))
	f.loopCheck.SetChecked(o.Loop)
	f.interpolateCheck.SetChecked(o.Interpolate)

	// SetValue does not fire OnChanged when the value is unchanged
	f.widthSlider.OnChanged(f.widthSlider.Value)
	f.fpsSlider.OnChanged(f.fpsSlider.Value)
	f.speedSlider.OnChanged(f.speedSlider.Value)
	f.qualitySlider.OnChanged(f.qualitySlider.Value)
	f.updateQualityState()
}

// Options returns the option values currently shown; paths are left empty
func (f *OptionsForm) Options() model.ConversionOptions {
	return model.ConversionOptions{
		Format:      f.Format(),
		WidthPx:     int(f.widthSlider.Value),
		FPS:         int(f.fpsSlider.Value),
		Speed:       f.speedSlider.Value,
		Quality:     int(f.qualitySlider.Value),
		Loop:        f.loopCheck.Checked,
		Interpolate: f.interpolateCheck.Checked,
	}
}

// Format returns the selected output format
func (f *OptionsForm) Format() model.OutputFormat {
	format, err := model.ParseOutputFormat(f.formatSelect.Selected)
	if err != nil {
		return model.DefaultFormat
	}
	return format
}

// SetEnabled enables or disables every option widget
func (f *OptionsForm) SetEnabled(enabled bool) {
	f.enabled = enabled
	for _, w := range []fyne.Disableable{
		f.formatSelect,
		f.widthSlider,
		f.fpsSlider,
		f.speedSlider,
		f.loopCheck,
		f.interpolateCheck,
	} {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
	f.updateQualityState()
}

// QualityEnabled reports whether the quality slider is usable
func (f *OptionsForm) QualityEnabled() bool {
	return !f.qualitySlider.Disabled()
}

// Widget returns the form to place in a layout
func (f *OptionsForm) Widget() fyne.CanvasObject {
	return f.form
}

// updateQualityState enables quality only for formats that use it
func (f *OptionsForm) updateQualityState() {
	if f.enabled && f.Format().UsesQuality() {
		f.qualitySlider.Enable()
	} else {
		f.qualitySlider.Disable()
	}
}

func (f *OptionsForm) onFormatSelected(string) {
	// Called during construction before all widgets exist
	if f.qualitySlider == nil {
		return
	}
	f.updateQualityState()
	if f.OnFormatChanged != nil {
		f.OnFormatChanged(f.Format())
	}
}
