package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/munchie/minivideo/internal/model"
)

func TestOptionsForm_Defaults(t *testing.T) {
	test.NewApp()
	f := NewOptionsForm(NewLocalization())

	got := f.Options()
	if got != model.DefaultOptions() {
		t.Errorf("Expected defaults %+v, got %+v", model.DefaultOptions(), got)
	}
	if !f.QualityEnabled() {
		t.Error("Quality should be enabled for webp")
	}
}

func TestOptionsForm_SetOptions(t *testing.T) {
	test.NewApp()
	f := NewOptionsForm(NewLocalization())

	want := model.ConversionOptions{
		Format:      model.FormatAPNG,
		WidthPx:     640,
		FPS:         24,
		Speed:       4,
		Quality:     80,
		Loop:        false,
		Interpolate: true,
	}
	f.SetOptions(want)

	if got := f.Options(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if f.widthValue.Text != "640 px" {
		t.Errorf("Expected width label 640 px, got %q", f.widthValue.Text)
	}
	if f.QualityEnabled() {
		t.Error("Quality should be disabled for apng")
	}
}

func TestOptionsForm_FormatChange(t *testing.T) {
	test.NewApp()
	f := NewOptionsForm(NewLocalization())

	var changed []model.OutputFormat
	f.OnFormatChanged = func(format model.OutputFormat) {
		changed = append(changed, format)
	}

	f.formatSelect.SetSelected("gif")
	if len(changed) != 1 || changed[0] != model.FormatGIF {
		t.Errorf("Expected one gif change, got %v", changed)
	}
	if f.QualityEnabled() {
		t.Error("Quality should be disabled for gif")
	}

	f.formatSelect.SetSelected("webp")
	if !f.QualityEnabled() {
		t.Error("Quality should be enabled again for webp")
	}
}

func TestOptionsForm_SetEnabled(t *testing.T) {
	test.NewApp()
	f := NewOptionsForm(NewLocalization())

	f.SetEnabled(false)
	if !f.formatSelect.Disabled() || !f.widthSlider.Disabled() || !f.loopCheck.Disabled() {
		t.Error("Widgets should be disabled")
	}
	if f.QualityEnabled() {
		t.Error("Quality should be disabled while the form is disabled")
	}

	f.SetEnabled(true)
	if f.formatSelect.Disabled() || !f.QualityEnabled() {
		t.Error("Widgets should be enabled again")
	}
}
