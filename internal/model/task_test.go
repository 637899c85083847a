package model

import (
	"testing"
	"time"
)

func TestConversionTask_DisplayName(t *testing.T) {
	tests := []struct {
		input    string
		output   string
		expected string
	}{
		{"/videos/clip.mp4", "/videos/clip.webp", "clip.webp"},
		{"/videos/clip.mp4", "", "clip.mp4"},
		{`C:\Users\me\clip.mkv`, `C:\Users\me\out.gif`, "out.gif"},
		{"", "", ""},
	}

	for _, test := range tests {
		task := &ConversionTask{Options: ConversionOptions{InputPath: test.input, OutputPath: test.output}}
		result := task.DisplayName()
		if result != test.expected {
			t.Errorf("DisplayName() with input='%s', output='%s' = '%s', expected '%s'",
				test.input, test.output, result, test.expected)
		}
	}
}

func TestConversionTask_Elapsed(t *testing.T) {
	task := &ConversionTask{}
	if task.Elapsed() != 0 {
		t.Errorf("Expected zero elapsed for unstarted task, got %v", task.Elapsed())
	}

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	task.StartedAt = start
	task.FinishedAt = start.Add(90 * time.Second)
	if task.Elapsed() != 90*time.Second {
		t.Errorf("Expected 90s elapsed, got %v", task.Elapsed())
	}
}

func TestConversionTask_Snapshot(t *testing.T) {
	task := &ConversionTask{ID: "convert-1", Status: TaskStatusConverting, Percent: 40}
	snap := task.Snapshot()

	task.Percent = 80
	if snap.Percent != 40 {
		t.Errorf("Snapshot should not follow later changes, got %d", snap.Percent)
	}
	if snap.ID != "convert-1" || snap.Status != TaskStatusConverting {
		t.Errorf("Snapshot lost fields: %+v", snap)
	}
}
