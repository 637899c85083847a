package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconFolder = "📁"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%d%%"
	StepLabelFormat     = "%s %d/%d"
	WidthValueFormat    = "%d px"
	SpeedValueFormat    = "%g×"
)

// Window sizing
const (
	WindowMinWidth  float32 = 700
	WindowMinHeight float32 = 520
)

// Layout sizing
const (
	ValueLabelWidth   float32 = 64
	LogPanelMinHeight float32 = 160
	PreviewSize       float32 = 240
	HelpDialogWidth   float32 = 640
	HelpDialogHeight  float32 = 360
	SettingsWidth     float32 = 500
	SettingsHeight    float32 = 320
)

// Log panel behavior
const (
	MaxLogLines = 5000
)

// Background timeouts
const (
	DecoderWarmUpTimeout = 15 * time.Second
)
