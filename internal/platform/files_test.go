package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetHomeVideosDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := GetHomeVideosDir()
	if err != nil {
		t.Fatalf("Failed to get videos directory: %v", err)
	}
	if dir != home {
		t.Errorf("Expected fallback to home %s, got %s", home, dir)
	}

	videos := filepath.Join(home, "Videos")
	if err := os.Mkdir(videos, 0755); err != nil {
		t.Fatalf("Failed to create Videos dir: %v", err)
	}
	dir, err = GetHomeVideosDir()
	if err != nil {
		t.Fatalf("Failed to get videos directory: %v", err)
	}
	if dir != videos {
		t.Errorf("Expected %s, got %s", videos, dir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.gif")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileWithDefaultApp_EmptyPath(t *testing.T) {
	err := OpenFileWithDefaultApp("")
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("Expected empty path error, got %v", err)
	}
}

func TestSuggestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		ext      string
		expected string
	}{
		{"/path/to/video.mp4", ".webp", "/path/to/video.webp"},
		{"/path/to/video.mkv", ".gif", "/path/to/video.gif"},
		{"clip.webm", ".apng", "clip.apng"},
		{"/no/ext/file", ".gif", "/no/ext/file.gif"},
		{"/dots/my.holiday.mp4", ".webp", "/dots/my.holiday.webp"},
	}

	for _, test := range tests {
		result := SuggestOutputPath(test.input, test.ext)
		if result != test.expected {
			t.Errorf("SuggestOutputPath(%s, %s) = %s, expected %s", test.input, test.ext, result, test.expected)
		}
	}
}

func TestEnsureExtension(t *testing.T) {
	tests := []struct {
		path     string
		ext      string
		expected string
	}{
		{"/out/anim.gif", ".gif", "/out/anim.gif"},
		{"/out/anim.GIF", ".gif", "/out/anim.GIF"},
		{"/out/anim", ".webp", "/out/anim.webp"},
		{"/out/anim.gif", ".webp", "/out/anim.gif.webp"},
	}

	for _, test := range tests {
		result := EnsureExtension(test.path, test.ext)
		if result != test.expected {
			t.Errorf("EnsureExtension(%s, %s) = %s, expected %s", test.path, test.ext, result, test.expected)
		}
	}
}
