package config

import (
	"fyne.io/fyne/v2"

	"github.com/munchie/minivideo/internal/model"
	"github.com/munchie/minivideo/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyFormat             = "last_format"
	KeyWidth              = "last_width_px"
	KeyFPS                = "last_fps"
	KeySpeed              = "last_speed"
	KeyQuality            = "last_webp_quality"
	KeyLoop               = "last_loop"
	KeyInterpolate        = "last_interpolate"
	KeyLastInputDir       = "last_input_directory"
	KeyFFmpegPath         = "ffmpeg_path"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetFormat returns the last used output format
func (s *Settings) GetFormat() model.OutputFormat {
	format, err := model.ParseOutputFormat(s.app.Preferences().String(KeyFormat))
	if err != nil {
		return model.DefaultFormat
	}
	return format
}

// SetFormat stores the output format
func (s *Settings) SetFormat(format model.OutputFormat) {
	s.app.Preferences().SetString(KeyFormat, format.String())
}

// GetWidth returns the last used target width
func (s *Settings) GetWidth() int {
	return clampInt(s.app.Preferences().IntWithFallback(KeyWidth, model.DefaultWidthPx), model.MinWidthPx, model.MaxWidthPx)
}

// SetWidth stores the target width, clamped to the allowed range
func (s *Settings) SetWidth(width int) {
	s.app.Preferences().SetInt(KeyWidth, clampInt(width, model.MinWidthPx, model.MaxWidthPx))
}

// GetFPS returns the last used frame rate
func (s *Settings) GetFPS() int {
	return clampInt(s.app.Preferences().IntWithFallback(KeyFPS, model.DefaultFPS), model.MinFPS, model.MaxFPS)
}

// SetFPS stores the frame rate, clamped to the allowed range
func (s *Settings) SetFPS(fps int) {
	s.app.Preferences().SetInt(KeyFPS, clampInt(fps, model.MinFPS, model.MaxFPS))
}

// GetSpeed returns the last used speed multiplier
func (s *Settings) GetSpeed() float64 {
	return clampFloat(s.app.Preferences().FloatWithFallback(KeySpeed, model.DefaultSpeed), model.MinSpeed, model.MaxSpeed)
}

// SetSpeed stores the speed multiplier, clamped to the allowed range
func (s *Settings) SetSpeed(speed float64) {
	s.app.Preferences().SetFloat(KeySpeed, clampFloat(speed, model.MinSpeed, model.MaxSpeed))
}

// GetQuality returns the last used WebP quality
func (s *Settings) GetQuality() int {
	return clampInt(s.app.Preferences().IntWithFallback(KeyQuality, model.DefaultQuality), model.MinQuality, model.MaxQuality)
}

// SetQuality stores the WebP quality, clamped to 0-100
func (s *Settings) SetQuality(quality int) {
	s.app.Preferences().SetInt(KeyQuality, clampInt(quality, model.MinQuality, model.MaxQuality))
}

// GetLoop returns whether the animation loops forever
func (s *Settings) GetLoop() bool {
	return s.app.Preferences().BoolWithFallback(KeyLoop, model.DefaultLoop)
}

// SetLoop stores the loop flag
func (s *Settings) SetLoop(loop bool) {
	s.app.Preferences().SetBool(KeyLoop, loop)
}

// GetInterpolate returns whether motion interpolation is enabled
func (s *Settings) GetInterpolate() bool {
	return s.app.Preferences().BoolWithFallback(KeyInterpolate, model.DefaultInterpolate)
}

// SetInterpolate stores the interpolation flag
func (s *Settings) SetInterpolate(interpolate bool) {
	s.app.Preferences().SetBool(KeyInterpolate, interpolate)
}

// LoadOptions returns the remembered conversion options without paths
func (s *Settings) LoadOptions() model.ConversionOptions {
	return model.ConversionOptions{
		Format:      s.GetFormat(),
		WidthPx:     s.GetWidth(),
		FPS:         s.GetFPS(),
		Speed:       s.GetSpeed(),
		Quality:     s.GetQuality(),
		Loop:        s.GetLoop(),
		Interpolate: s.GetInterpolate(),
	}
}

// SaveOptions remembers the option values of o; paths are not stored
func (s *Settings) SaveOptions(o model.ConversionOptions) {
	s.SetFormat(o.Format)
	s.SetWidth(o.WidthPx)
	s.SetFPS(o.FPS)
	s.SetSpeed(o.Speed)
	s.SetQuality(o.Quality)
	s.SetLoop(o.Loop)
	s.SetInterpolate(o.Interpolate)
}

// GetLastInputDirectory returns where the open dialog starts
func (s *Settings) GetLastInputDirectory() string {
	dir := s.app.Preferences().String(KeyLastInputDir)
	if dir == "" || !platform.IsDirectory(dir) {
		// Use system default Videos directory
		defaultDir, err := platform.GetHomeVideosDir()
		if err != nil {
			return ""
		}
		return defaultDir
	}
	return dir
}

// SetLastInputDirectory sets the directory of the last chosen input
func (s *Settings) SetLastInputDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastInputDir, dir)
}

// GetFFmpegPath returns the ffmpeg override, empty to search PATH
func (s *Settings) GetFFmpegPath() string {
	return s.app.Preferences().String(KeyFFmpegPath)
}

// SetFFmpegPath sets the ffmpeg override
func (s *Settings) SetFFmpegPath(path string) {
	s.app.Preferences().SetString(KeyFFmpegPath, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal finished animations
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal finished animations
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
