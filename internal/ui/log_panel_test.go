package ui

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestLogPanel_AppendAndClear(t *testing.T) {
	test.NewApp()
	lp := NewLogPanel(10)

	lp.Append("Starting conversion…")
	lp.Append("Done! ✅")

	lines := lp.Lines()
	if len(lines) != 2 || lines[1] != "Done! ✅" {
		t.Errorf("Unexpected lines %v", lines)
	}

	lp.Clear()
	if len(lp.Lines()) != 0 {
		t.Errorf("Expected empty panel, got %v", lp.Lines())
	}
}

func TestLogPanel_TrimsOldest(t *testing.T) {
	test.NewApp()
	lp := NewLogPanel(3)

	for i := 0; i < 5; i++ {
		lp.Append(fmt.Sprintf("line %d", i))
	}

	lines := lp.Lines()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "line 2" || lines[2] != "line 4" {
		t.Errorf("Expected the newest lines, got %v", lines)
	}
}
