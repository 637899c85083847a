package preflight

import (
	"errors"
	"fmt"
	"os/exec"
)

// Executable names looked up on PATH
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

// ErrFFmpegNotFound is returned by Locate when no usable ffmpeg exists.
var ErrFFmpegNotFound = errors.New("ffmpeg not found in PATH")

// Tools holds resolved executable paths. FFprobe is empty when missing;
// probing then falls back to parsing ffmpeg output.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// Locate resolves ffmpeg, preferring override (a path or command name)
// over PATH, and looks up ffprobe on PATH.
func Locate(override string) (Tools, error) {
	var tools Tools

	name := FFmpegCommand
	if override != "" {
		name = override
	}
	path, err := exec.LookPath(name)
	if err != nil {
		if override != "" {
			return tools, fmt.Errorf("%w: %s: %v", ErrFFmpegNotFound, override, err)
		}
		return tools, ErrFFmpegNotFound
	}
	tools.FFmpeg = path

	if p, err := exec.LookPath(FFprobeCommand); err == nil {
		tools.FFprobe = p
	}
	return tools, nil
}
