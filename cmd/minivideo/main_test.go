package main

import (
	"testing"

	"github.com/munchie/minivideo/internal/model"
)

func TestConvertFlagsOptions(t *testing.T) {
	tests := []struct {
		name       string
		flags      convertFlags
		input      string
		wantOutput string
		wantFormat model.OutputFormat
		wantLoop   bool
		wantErr    bool
	}{
		{
			name:       "output derived from input",
			flags:      convertFlags{format: "gif"},
			input:      "/videos/clip.mp4",
			wantOutput: "/videos/clip.gif",
			wantFormat: model.FormatGIF,
			wantLoop:   true,
		},
		{
			name:       "explicit output kept",
			flags:      convertFlags{format: "WEBP", output: "/tmp/out.webp", noLoop: true},
			input:      "/videos/clip.mkv",
			wantOutput: "/tmp/out.webp",
			wantFormat: model.FormatWebP,
			wantLoop:   false,
		},
		{
			name:    "unknown format",
			flags:   convertFlags{format: "avi"},
			input:   "/videos/clip.mp4",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.flags.options(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("options() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if opts.OutputPath != tt.wantOutput {
				t.Errorf("OutputPath = %q, want %q", opts.OutputPath, tt.wantOutput)
			}
			if opts.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", opts.Format, tt.wantFormat)
			}
			if opts.Loop != tt.wantLoop {
				t.Errorf("Loop = %v, want %v", opts.Loop, tt.wantLoop)
			}
			if opts.InputPath != tt.input {
				t.Errorf("InputPath = %q, want %q", opts.InputPath, tt.input)
			}
		})
	}
}

func TestConvertCmdDefaults(t *testing.T) {
	cmd := newConvertCmd(&rootFlags{})
	defaults := model.DefaultOptions()

	intFlags := map[string]int{
		"width":   defaults.WidthPx,
		"fps":     defaults.FPS,
		"quality": defaults.Quality,
	}
	for name, want := range intFlags {
		got, err := cmd.Flags().GetInt(name)
		if err != nil {
			t.Fatalf("GetInt(%q) error = %v", name, err)
		}
		if got != want {
			t.Errorf("--%s default = %d, want %d", name, got, want)
		}
	}

	speed, err := cmd.Flags().GetFloat64("speed")
	if err != nil {
		t.Fatalf("GetFloat64(speed) error = %v", err)
	}
	if speed != defaults.Speed {
		t.Errorf("--speed default = %g, want %g", speed, defaults.Speed)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		t.Fatalf("GetString(format) error = %v", err)
	}
	if format != defaults.Format.String() {
		t.Errorf("--format default = %q, want %q", format, defaults.Format)
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"convert", "check"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%q) error = %v", name, err)
		}
		if cmd.Name() != name {
			t.Errorf("Find(%q) = %q", name, cmd.Name())
		}
	}
}

func TestConvertRequiresInput(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"convert"})
	if err := root.Execute(); err == nil {
		t.Error("convert without INPUT should fail")
	}
}
