package ffmpeg

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/munchie/minivideo/internal/model"
)

// Executable and argument constants
const (
	FFmpegCommand      = "ffmpeg"
	ProgressPipeTarget = "pipe:2"
	PaletteFileName    = "palette.png"
	PaletteDither      = "sierra2_4a"

	// minSpeed guards the setpts factor against division by zero
	minSpeed = 0.001
)

// Step labels, shown in the log as "Running (<label>): ..."
const (
	StepPaletteGen = "palettegen"
	StepEncode     = "encode"
)

// Step is a single ffmpeg invocation. Args[0] is the executable.
type Step struct {
	Label string
	Args  []string
}

// Plan is the ordered list of ffmpeg invocations for one conversion.
type Plan struct {
	Steps []Step
	// PalettePath is set for GIF plans; the caller owns its directory.
	PalettePath string
}

// FilterChain returns the -vf chain shared by all formats:
// speed change, frame-rate conversion (or motion interpolation), square
// pixels, and a lanczos downscale to the target width with an even height.
func FilterChain(o model.ConversionOptions) string {
	setptsFactor := 1.0 / math.Max(o.Speed, minSpeed)

	fpsPart := fmt.Sprintf("fps=%d", o.FPS)
	if o.Interpolate {
		fpsPart = fmt.Sprintf("minterpolate=fps=%d:mi_mode=mci:mc_mode=aobmc:me_mode=bidir:vsbmc=1", o.FPS)
	}

	return fmt.Sprintf("setpts=%s*PTS,%s,setsar=1,scale=%d:-2:flags=lanczos",
		strconv.FormatFloat(setptsFactor, 'f', -1, 64), fpsPart, o.WidthPx)
}

// Build returns the plan for o. bin is the ffmpeg executable, decoderArgs
// are inserted before "-i <input>", and paletteDir is only used for GIF.
func Build(bin string, o model.ConversionOptions, decoderArgs []string, paletteDir string) Plan {
	if bin == "" {
		bin = FFmpegCommand
	}

	switch o.Format {
	case model.FormatGIF:
		return buildGIF(bin, o, decoderArgs, paletteDir)
	case model.FormatAPNG:
		return Plan{Steps: []Step{{Label: StepEncode, Args: buildAPNG(bin, o, decoderArgs)}}}
	default:
		return Plan{Steps: []Step{{Label: StepEncode, Args: buildWebP(bin, o, decoderArgs)}}}
	}
}

// preamble returns the common leading arguments up to and including the input.
func preamble(bin string, decoderArgs []string, input string) []string {
	args := make([]string, 0, 32)
	args = append(args, bin, "-hide_banner", "-y")

	// Machine-readable progress on the merged output stream
	args = append(args, "-progress", ProgressPipeTarget, "-nostats")

	// Decoder selection must precede the input it applies to
	args = append(args, decoderArgs...)

	return append(args, "-i", input)
}

func buildWebP(bin string, o model.ConversionOptions, decoderArgs []string) []string {
	args := preamble(bin, decoderArgs, o.InputPath)
	args = append(args,
		"-vf", FilterChain(o),
		"-an",
		"-c:v", "libwebp",
		"-lossless", "0",
		"-q:v", strconv.Itoa(o.Quality),
	)

	// libwebp: 0 loops forever, 1 plays once
	if o.Loop {
		args = append(args, "-loop", "0")
	} else {
		args = append(args, "-loop", "1")
	}

	return append(args, o.OutputPath)
}

func buildAPNG(bin string, o model.ConversionOptions, decoderArgs []string) []string {
	args := preamble(bin, decoderArgs, o.InputPath)
	args = append(args,
		"-vf", FilterChain(o),
		"-an",
		"-c:v", "apng",
	)

	// APNG counts plays rather than loops; 0 is infinite
	if o.Loop {
		args = append(args, "-plays", "0")
	} else {
		args = append(args, "-plays", "1")
	}

	// The apng muxer is not picked from the .apng extension by every build
	args = append(args, "-f", "apng")

	return append(args, o.OutputPath)
}

func buildGIF(bin string, o model.ConversionOptions, decoderArgs []string, paletteDir string) Plan {
	vf := FilterChain(o)
	palettePath := filepath.Join(paletteDir, PaletteFileName)

	// Pass 1: generate an optimized palette from the filtered frames
	genPalette := preamble(bin, decoderArgs, o.InputPath)
	genPalette = append(genPalette,
		"-vf", vf+",palettegen",
		palettePath,
	)

	// Pass 2: filter again and map onto the palette
	usePalette := preamble(bin, decoderArgs, o.InputPath)
	usePalette = append(usePalette,
		"-i", palettePath,
		"-lavfi", vf+"[x];[x][1:v]paletteuse=dither="+PaletteDither,
		"-an",
	)

	// gif muxer: 0 loops forever, -1 disables looping
	if o.Loop {
		usePalette = append(usePalette, "-loop", "0")
	} else {
		usePalette = append(usePalette, "-loop", "-1")
	}
	usePalette = append(usePalette, o.OutputPath)

	return Plan{
		Steps: []Step{
			{Label: StepPaletteGen, Args: genPalette},
			{Label: StepEncode, Args: usePalette},
		},
		PalettePath: palettePath,
	}
}

// DisplayCommand renders args for the log, quoting parts that contain
// spaces or tabs.
func DisplayCommand(args []string) string {
	parts := make([]string, len(args))
	for i, p := range args {
		if strings.ContainsAny(p, " \t") {
			p = `"` + p + `"`
		}
		parts[i] = p
	}
	return strings.Join(parts, " ")
}
