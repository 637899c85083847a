package convert

import (
	"bufio"
	"reflect"
	"strings"
	"testing"
)

func TestScanLines(t *testing.T) {
	input := "first\nsecond\rthird\r\nlast"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(scanLines)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	expected := []string{"first", "second", "third", "", "last"}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("scanLines() = %q, expected %q", lines, expected)
	}
}

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		line       string
		isProgress bool
		key        string
	}{
		{"out_time_us=1500000", true, "out_time_us"},
		{"progress=end", true, "progress"},
		{"speed=4.01x", true, "speed"},
		{"stream_0_0_q=29.0", true, "stream_0_0_q"},
		{"bitrate=N/A", true, "bitrate"},
		{"Stream #0:0: Video: h264", false, ""},
		{"[libwebp @ 0x55] quality=60", false, ""},
		{"custom=value", false, ""},
		{"frame rate = 30", false, ""},
	}

	for _, tt := range tests {
		key, _, ok := parseProgressLine(tt.line)
		if ok != tt.isProgress || key != tt.key {
			t.Errorf("parseProgressLine(%q) = %q, %v; expected %q, %v", tt.line, key, ok, tt.key, tt.isProgress)
		}
	}
}

func TestOutTimeSeconds(t *testing.T) {
	if s, ok := outTimeSeconds("2500000"); !ok || s != 2.5 {
		t.Errorf("outTimeSeconds(2500000) = %v, %v", s, ok)
	}
	if _, ok := outTimeSeconds("N/A"); ok {
		t.Error("N/A should not parse")
	}
	if _, ok := outTimeSeconds("-1"); ok {
		t.Error("Negative values should not parse")
	}
}

func TestOverallProgress(t *testing.T) {
	tests := []struct {
		stepIndex, stepCount int
		seconds, expected    float64
		want                 float64
	}{
		{0, 1, 0.5, 1, 0.5},
		{0, 1, 3, 1, 1},
		{0, 2, 1, 1, 0.5},
		{1, 2, 0.5, 1, 0.75},
		{1, 2, 0, 0, 0.5},
		{0, 0, 1, 1, 0},
	}

	for _, tt := range tests {
		if got := overallProgress(tt.stepIndex, tt.stepCount, tt.seconds, tt.expected); got != tt.want {
			t.Errorf("overallProgress(%d, %d, %v, %v) = %v, expected %v",
				tt.stepIndex, tt.stepCount, tt.seconds, tt.expected, got, tt.want)
		}
	}
}
