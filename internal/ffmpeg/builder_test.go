package ffmpeg

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/munchie/minivideo/internal/model"
)

func testOptions(format model.OutputFormat) model.ConversionOptions {
	opts := model.DefaultOptions()
	opts.InputPath = "/videos/in.mp4"
	opts.OutputPath = "/videos/out." + string(format)
	opts.Format = format
	return opts
}

// indexOf returns the position of want in args, or -1.
func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}

// valueAfter returns the argument following flag, or "" if flag is absent.
func valueAfter(args []string, flag string) string {
	i := indexOf(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func TestFilterChain(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		fps      int
		width    int
		interp   bool
		expected string
	}{
		{
			name: "default speed", speed: 8, fps: 10, width: 480,
			expected: "setpts=0.125*PTS,fps=10,setsar=1,scale=480:-2:flags=lanczos",
		},
		{
			name: "real time", speed: 1, fps: 24, width: 640,
			expected: "setpts=1*PTS,fps=24,setsar=1,scale=640:-2:flags=lanczos",
		},
		{
			name: "interpolation", speed: 2, fps: 30, width: 320, interp: true,
			expected: "setpts=0.5*PTS,minterpolate=fps=30:mi_mode=mci:mc_mode=aobmc:me_mode=bidir:vsbmc=1,setsar=1,scale=320:-2:flags=lanczos",
		},
		{
			name: "zero speed is clamped", speed: 0, fps: 10, width: 480,
			expected: "setpts=1000*PTS,fps=10,setsar=1,scale=480:-2:flags=lanczos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := model.DefaultOptions()
			opts.Speed = tt.speed
			opts.FPS = tt.fps
			opts.WidthPx = tt.width
			opts.Interpolate = tt.interp

			result := FilterChain(opts)
			if result != tt.expected {
				t.Errorf("FilterChain() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestBuildWebP(t *testing.T) {
	opts := testOptions(model.FormatWebP)
	opts.Quality = 75

	plan := Build("/usr/bin/ffmpeg", opts, []string{"-c:v", "h264"}, "")
	if len(plan.Steps) != 1 {
		t.Fatalf("Expected 1 step, got %d", len(plan.Steps))
	}
	if plan.PalettePath != "" {
		t.Errorf("WebP plan should not use a palette, got %s", plan.PalettePath)
	}

	step := plan.Steps[0]
	if step.Label != StepEncode {
		t.Errorf("Expected label %s, got %s", StepEncode, step.Label)
	}

	expectedArgs := []string{
		"/usr/bin/ffmpeg", "-hide_banner", "-y",
		"-progress", "pipe:2", "-nostats",
		"-c:v", "h264",
		"-i", "/videos/in.mp4",
		"-vf", FilterChain(opts),
		"-an",
		"-c:v", "libwebp",
		"-lossless", "0",
		"-q:v", "75",
		"-loop", "0",
		"/videos/out.webp",
	}

	if len(step.Args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d: %v", len(expectedArgs), len(step.Args), step.Args)
	}
	for i, expected := range expectedArgs {
		if step.Args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, step.Args[i])
		}
	}
}

func TestBuild_DecoderArgsPrecedeInput(t *testing.T) {
	for _, format := range model.AllFormats() {
		opts := testOptions(format)
		plan := Build("ffmpeg", opts, []string{"-c:v", "hevc"}, t.TempDir())

		for _, step := range plan.Steps {
			dec := indexOf(step.Args, "hevc")
			in := indexOf(step.Args, opts.InputPath)
			if dec < 0 || in < 0 || dec > in {
				t.Errorf("%s/%s: decoder args must come before the input: %v", format, step.Label, step.Args)
			}
		}
	}
}

func TestBuild_LoopFlags(t *testing.T) {
	tests := []struct {
		format   model.OutputFormat
		loop     bool
		flag     string
		expected string
	}{
		{model.FormatWebP, true, "-loop", "0"},
		{model.FormatWebP, false, "-loop", "1"},
		{model.FormatGIF, true, "-loop", "0"},
		{model.FormatGIF, false, "-loop", "-1"},
		{model.FormatAPNG, true, "-plays", "0"},
		{model.FormatAPNG, false, "-plays", "1"},
	}

	for _, tt := range tests {
		opts := testOptions(tt.format)
		opts.Loop = tt.loop
		plan := Build("ffmpeg", opts, nil, "/tmp/pal")
		last := plan.Steps[len(plan.Steps)-1].Args

		if got := valueAfter(last, tt.flag); got != tt.expected {
			t.Errorf("%s loop=%v: %s = %q, expected %q", tt.format, tt.loop, tt.flag, got, tt.expected)
		}
		if last[len(last)-1] != opts.OutputPath {
			t.Errorf("%s: output path must be the last argument, got %s", tt.format, last[len(last)-1])
		}
	}
}

func TestBuildAPNG(t *testing.T) {
	opts := testOptions(model.FormatAPNG)
	plan := Build("", opts, nil, "")

	args := plan.Steps[0].Args
	if args[0] != FFmpegCommand {
		t.Errorf("Expected default executable %s, got %s", FFmpegCommand, args[0])
	}
	if got := valueAfter(args, "-c:v"); got != "apng" {
		t.Errorf("Expected apng codec, got %s", got)
	}
	if indexOf(args, "-q:v") >= 0 {
		t.Error("APNG command should not carry the WebP quality flag")
	}
}

func TestBuildGIF(t *testing.T) {
	opts := testOptions(model.FormatGIF)
	paletteDir := filepath.Join("/tmp", "munchie_test")

	plan := Build("ffmpeg", opts, nil, paletteDir)
	if len(plan.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(plan.Steps))
	}

	expectedPalette := filepath.Join(paletteDir, PaletteFileName)
	if plan.PalettePath != expectedPalette {
		t.Errorf("Expected palette path %s, got %s", expectedPalette, plan.PalettePath)
	}

	gen, use := plan.Steps[0], plan.Steps[1]
	if gen.Label != StepPaletteGen || use.Label != StepEncode {
		t.Errorf("Unexpected step labels: %s, %s", gen.Label, use.Label)
	}

	vf := FilterChain(opts)
	if got := valueAfter(gen.Args, "-vf"); got != vf+",palettegen" {
		t.Errorf("palettegen filter = %s", got)
	}
	if gen.Args[len(gen.Args)-1] != expectedPalette {
		t.Errorf("palettegen should write the palette, got %s", gen.Args[len(gen.Args)-1])
	}

	if got := valueAfter(use.Args, "-lavfi"); got != vf+"[x];[x][1:v]paletteuse=dither=sierra2_4a" {
		t.Errorf("paletteuse graph = %s", got)
	}
	inputs := 0
	for _, a := range use.Args {
		if a == "-i" {
			inputs++
		}
	}
	if inputs != 2 {
		t.Errorf("Expected the encode step to read video and palette, got %d inputs", inputs)
	}
	if indexOf(use.Args, "-an") < 0 {
		t.Error("Expected audio to be dropped")
	}
}

func TestBuild_ContainsOptionValues(t *testing.T) {
	opts := testOptions(model.FormatWebP)
	opts.WidthPx = 720
	opts.FPS = 15
	opts.Speed = 4
	opts.Quality = 33

	cmd := DisplayCommand(Build("ffmpeg", opts, nil, "").Steps[0].Args)
	for _, want := range []string{"scale=720:-2", "fps=15", "setpts=0.25*PTS", "-q:v 33"} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command %q does not contain %q", cmd, want)
		}
	}
}

func TestDisplayCommand(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{[]string{"ffmpeg", "-i", "in.mp4"}, "ffmpeg -i in.mp4"},
		{[]string{"ffmpeg", "-i", "/my videos/in.mp4"}, `ffmpeg -i "/my videos/in.mp4"`},
		{[]string{"ffmpeg", "a\tb"}, "ffmpeg \"a\tb\""},
		{nil, ""},
	}

	for _, test := range tests {
		result := DisplayCommand(test.args)
		if result != test.expected {
			t.Errorf("DisplayCommand(%v) = %s, expected %s", test.args, result, test.expected)
		}
	}
}
