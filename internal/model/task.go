package model

import (
	"strings"
	"time"
)

// ConversionTask represents a single conversion run
type ConversionTask struct {
	ID            string
	Options       ConversionOptions
	Status        TaskStatus
	Step          string  // label of the running step ("palettegen", "encode")
	StepIndex     int     // zero-based index of the running step
	StepCount     int     // number of ffmpeg invocations in the plan
	Progress      float64 // 0.0 to 1.0
	Percent       int     // 0 to 100
	DetectedCodec string  // input video codec, empty if unknown
	LastError     string  // last error message if any
	HelpText      string  // install instructions when preflight rejected the input
	ExitCode      int     // exit code of the failed step, 0 otherwise
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Elapsed returns how long the task ran, or has been running so far
func (ct *ConversionTask) Elapsed() time.Duration {
	if ct.StartedAt.IsZero() {
		return 0
	}
	if ct.FinishedAt.IsZero() {
		return time.Since(ct.StartedAt)
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}

// DisplayName returns the output filename, falling back to the input filename
func (ct *ConversionTask) DisplayName() string {
	for _, p := range []string{ct.Options.OutputPath, ct.Options.InputPath} {
		if p == "" {
			continue
		}
		// Support both / and \ separators regardless of host OS
		p = strings.ReplaceAll(p, "\\", "/")
		return p[strings.LastIndex(p, "/")+1:]
	}
	return ""
}

// Snapshot returns a copy that is safe to read without holding the service lock
func (ct *ConversionTask) Snapshot() ConversionTask {
	return *ct
}
