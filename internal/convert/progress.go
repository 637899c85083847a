package convert

import (
	"bytes"
	"strconv"
	"strings"
)

// Keys emitted by ffmpeg's -progress output
var progressKeys = map[string]struct{}{
	"frame":       {},
	"fps":         {},
	"bitrate":     {},
	"total_size":  {},
	"out_time_us": {},
	"out_time_ms": {},
	"out_time":    {},
	"dup_frames":  {},
	"drop_frames": {},
	"speed":       {},
	"progress":    {},
}

const (
	progressTimeKey   = "out_time_us"
	progressStateKey  = "progress"
	progressStateEnd  = "end"
	streamQualityPref = "stream_"
)

// scanLines is a bufio.SplitFunc that splits on \n or \r so that
// carriage-return status updates arrive as separate lines.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// parseProgressLine recognizes a "key=value" line of -progress output
func parseProgressLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	if _, known := progressKeys[key]; known {
		return key, strings.TrimSpace(value), true
	}
	if strings.HasPrefix(key, streamQualityPref) {
		return key, strings.TrimSpace(value), true
	}
	return "", "", false
}

// outTimeSeconds converts an out_time_us value to seconds. ffmpeg prints
// N/A before the first frame is written.
func outTimeSeconds(value string) (float64, bool) {
	us, err := strconv.ParseInt(value, 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	return float64(us) / 1000000.0, true
}

// overallProgress combines the position inside the current step with the
// number of completed steps. Each step covers the whole output duration.
func overallProgress(stepIndex, stepCount int, seconds, expected float64) float64 {
	if stepCount <= 0 {
		return 0
	}
	var inStep float64
	if expected > 0 {
		inStep = seconds / expected
	}
	if inStep > 1 {
		inStep = 1
	}
	if inStep < 0 {
		inStep = 0
	}
	return (float64(stepIndex) + inStep) / float64(stepCount)
}
