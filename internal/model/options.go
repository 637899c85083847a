package model

import (
	"fmt"
	"strings"
)

// OutputFormat is the container of the produced animation
type OutputFormat string

const (
	FormatWebP OutputFormat = "webp"
	FormatGIF  OutputFormat = "gif"
	FormatAPNG OutputFormat = "apng"
)

// Option ranges, mirrored by the GUI widgets and the CLI flags
const (
	MinWidthPx  = 64
	MaxWidthPx  = 2048
	WidthStepPx = 16

	MinFPS = 1
	MaxFPS = 60

	MinSpeed = 1.0
	MaxSpeed = 32.0

	MinQuality = 0
	MaxQuality = 100
)

// Defaults for a fresh conversion
const (
	DefaultFormat      = FormatWebP
	DefaultWidthPx     = 480
	DefaultFPS         = 10
	DefaultSpeed       = 8.0
	DefaultQuality     = 60
	DefaultLoop        = true
	DefaultInterpolate = false
)

// AllFormats returns the supported output formats in display order
func AllFormats() []OutputFormat {
	return []OutputFormat{FormatWebP, FormatGIF, FormatAPNG}
}

// ParseOutputFormat parses a format name case-insensitively
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatWebP, FormatGIF, FormatAPNG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q (expected webp|gif|apng)", s)
}

// String returns the format name
func (f OutputFormat) String() string {
	return string(f)
}

// Extension returns the file extension including the leading dot
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// UsesQuality reports whether the quality option affects this format
func (f OutputFormat) UsesQuality() bool {
	return f == FormatWebP
}

// ConversionOptions describes one conversion job
type ConversionOptions struct {
	InputPath   string
	OutputPath  string
	Format      OutputFormat
	WidthPx     int
	FPS         int
	Speed       float64 // e.g. 8.0 means 8x faster
	Quality     int     // 0-100, webp only
	Loop        bool
	Interpolate bool
}

// DefaultOptions returns options populated with the default values
func DefaultOptions() ConversionOptions {
	return ConversionOptions{
		Format:      DefaultFormat,
		WidthPx:     DefaultWidthPx,
		FPS:         DefaultFPS,
		Speed:       DefaultSpeed,
		Quality:     DefaultQuality,
		Loop:        DefaultLoop,
		Interpolate: DefaultInterpolate,
	}
}

// Validate checks the enum and numeric ranges. Paths are checked by the
// conversion service since that requires filesystem access.
func (o ConversionOptions) Validate() error {
	if _, err := ParseOutputFormat(string(o.Format)); err != nil {
		return err
	}
	if o.WidthPx < MinWidthPx || o.WidthPx > MaxWidthPx {
		return fmt.Errorf("width %d out of range [%d, %d]", o.WidthPx, MinWidthPx, MaxWidthPx)
	}
	if o.FPS < MinFPS || o.FPS > MaxFPS {
		return fmt.Errorf("fps %d out of range [%d, %d]", o.FPS, MinFPS, MaxFPS)
	}
	// Written so NaN fails too
	if !(o.Speed >= MinSpeed && o.Speed <= MaxSpeed) {
		return fmt.Errorf("speed %g out of range [%g, %g]", o.Speed, MinSpeed, MaxSpeed)
	}
	if o.Quality < MinQuality || o.Quality > MaxQuality {
		return fmt.Errorf("quality %d out of range [%d, %d]", o.Quality, MinQuality, MaxQuality)
	}
	return nil
}
