package preflight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/munchie/minivideo/internal/platform"
)

// Preflight timings
const (
	DefaultDecodeTimeout = 8 * time.Second
	DefaultProbeTimeout  = 10 * time.Second
	DecodeTestSeconds    = "0.2"
)

// CommandRunner runs name with args to completion and returns its output.
// err is non-nil for a non-zero exit, a start failure or a context timeout.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// ProbeFunc returns ffprobe JSON output for the first video stream of path
type ProbeFunc func(ctx context.Context, path string) ([]byte, error)

// Result is the outcome of Run
type Result struct {
	OK          bool
	Info        MediaInfo
	DecoderArgs []string // placed before -i <input>
	Message     string   // install help when !OK
}

// Checker performs preflight checks against one ffmpeg installation
type Checker struct {
	tools         Tools
	logger        *zap.Logger
	run           CommandRunner
	probe         ProbeFunc
	osReleasePath string
	decodeTimeout time.Duration

	decodersMutex sync.Mutex
	decoders      DecoderSet
}

// Option configures a Checker
type Option func(*Checker)

// WithRunner replaces the subprocess runner
func WithRunner(run CommandRunner) Option {
	return func(c *Checker) { c.run = run }
}

// WithProbe replaces the ffprobe call
func WithProbe(probe ProbeFunc) Option {
	return func(c *Checker) { c.probe = probe }
}

// WithOSRelease sets the os-release file used to tailor install help
func WithOSRelease(path string) Option {
	return func(c *Checker) { c.osReleasePath = path }
}

// WithDecodeTimeout bounds the decode test
func WithDecodeTimeout(d time.Duration) Option {
	return func(c *Checker) { c.decodeTimeout = d }
}

// New creates a checker for tools
func New(tools Tools, logger *zap.Logger, opts ...Option) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Checker{
		tools:         tools,
		logger:        logger,
		run:           execRunner,
		probe:         ffprobeJSON,
		osReleasePath: platform.OSReleasePath,
		decodeTimeout: DefaultDecodeTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tools returns the executables the checker uses
func (c *Checker) Tools() Tools {
	return c.tools
}

// FFmpegPath returns the ffmpeg executable
func (c *Checker) FFmpegPath() string {
	if c.tools.FFmpeg == "" {
		return FFmpegCommand
	}
	return c.tools.FFmpeg
}

// ProbeMedia detects the input codec and duration. It tries ffprobe JSON
// first and falls back to parsing `ffmpeg -hide_banner -i` output.
func (c *Checker) ProbeMedia(ctx context.Context, input string) MediaInfo {
	var info MediaInfo
	if c.tools.FFprobe != "" && c.probe != nil {
		data, err := c.probe(ctx, input)
		if err == nil {
			info, err = ParseProbeJSON(data)
		}
		if err != nil {
			c.logger.Debug("ffprobe failed, falling back to ffmpeg -i", zap.String("input", input), zap.Error(err))
		}
		if info.Codec != "" && info.Duration > 0 {
			return info
		}
	}

	// ffmpeg -i without an output always exits non-zero; only the text matters
	stdout, stderr, _ := c.run(ctx, c.FFmpegPath(), "-hide_banner", "-i", input)
	text := string(stderr) + "\n" + string(stdout)
	if info.Codec == "" {
		info.Codec = ParseCodecFromInfo(text)
	}
	if info.Duration == 0 {
		info.Duration = ParseDurationFromInfo(text)
	}
	return info
}

// Decoders returns the available video decoders. A successful result is
// cached for the checker's lifetime; failures are retried on the next call.
func (c *Checker) Decoders(ctx context.Context) (DecoderSet, error) {
	c.decodersMutex.Lock()
	defer c.decodersMutex.Unlock()

	if c.decoders != nil {
		return c.decoders, nil
	}

	stdout, _, err := c.run(ctx, c.FFmpegPath(), "-hide_banner", "-decoders")
	if err != nil {
		return DecoderSet{}, fmt.Errorf("failed to list ffmpeg decoders: %w", err)
	}
	c.decoders = ParseDecoders(string(stdout))
	c.logger.Debug("ffmpeg decoders loaded", zap.Int("count", len(c.decoders)))
	return c.decoders, nil
}

// DecoderArgs selects the built-in software decoder for h264/hevc input when
// it is available, steering ffmpeg away from external decoders like openh264.
func (c *Checker) DecoderArgs(ctx context.Context, codec string) []string {
	codec = NormalizeCodec(codec)
	if codec != CodecH264 && codec != CodecHEVC {
		return nil
	}
	decoders, err := c.Decoders(ctx)
	if err != nil || !decoders.Has(codec) {
		return nil
	}
	return []string{"-c:v", codec}
}

// HelpMessage returns install instructions tailored to the host distribution
func (c *Checker) HelpMessage(codec string) string {
	return HelpMessage(codec, platform.DetectDistro(c.osReleasePath))
}

// Run checks that input can be decoded
func (c *Checker) Run(ctx context.Context, input string) Result {
	info := c.ProbeMedia(ctx, input)
	res := Result{OK: true, Info: info}
	if info.Codec == "" {
		// Unknown codec: let ffmpeg try
		return res
	}

	var preferred string
	if info.Codec == CodecH264 || info.Codec == CodecHEVC {
		decoders, err := c.Decoders(ctx)
		if err != nil {
			c.logger.Warn("decoder list unavailable", zap.Error(err))
		}
		if !decoders.CanDecode(info.Codec) {
			return c.fail(res, info.Codec)
		}
		res.DecoderArgs = c.DecoderArgs(ctx, info.Codec)
		if len(res.DecoderArgs) > 0 {
			preferred = info.Codec
		}
	}

	ok, stderr := c.decodeTest(ctx, input, preferred)
	if !ok {
		c.logger.Info("decode test failed", zap.String("input", input), zap.String("stderr", stderr))
		return c.fail(res, inferCodec(stderr, info.Codec))
	}
	return res
}

func (c *Checker) fail(res Result, codec string) Result {
	res.OK = false
	res.Message = c.HelpMessage(codec)
	return res
}

// decodeTest decodes a fraction of a second of input to the null muxer
func (c *Checker) decodeTest(ctx context.Context, input, decoder string) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, c.decodeTimeout)
	defer cancel()

	args := []string{"-hide_banner", "-v", "error"}
	if decoder != "" {
		args = append(args, "-c:v", decoder)
	}
	args = append(args, "-t", DecodeTestSeconds, "-i", input, "-f", "null", "-")

	_, stderr, err := c.run(ctx, c.FFmpegPath(), args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return false, "timeout"
		}
		if len(stderr) == 0 {
			return false, err.Error()
		}
		return false, string(stderr)
	}
	return true, ""
}

// inferCodec guesses which decoder is missing from decode-test stderr
func inferCodec(stderr, probed string) string {
	text := strings.ToLower(stderr)
	switch {
	case strings.Contains(text, "openh264"):
		return CodecH264
	case strings.Contains(text, "no decoder") && strings.Contains(text, CodecHEVC):
		return CodecHEVC
	case strings.Contains(text, "no decoder") && strings.Contains(text, CodecH264):
		return CodecH264
	case probed != "":
		return probed
	}
	return CodecH264
}

// execRunner runs a subprocess and captures both output streams
func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ffprobeJSON probes the first video stream through ffmpeg-go. ffmpeg-go
// takes no context, so the timeout is capped by ctx's deadline and a
// cancelled ctx returns at once while ffprobe winds down on its own.
func ffprobeJSON(ctx context.Context, path string) ([]byte, error) {
	timeout := DefaultProbeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("ffprobe %q: %w", path, context.DeadlineExceeded)
	}

	type probeResult struct {
		out string
		err error
	}
	done := make(chan probeResult, 1)
	go func() {
		out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{
			"v":              "error",
			"select_streams": "v:0",
		})
		done <- probeResult{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("ffprobe %q: %w", path, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("ffprobe %q: %w", path, res.err)
		}
		return []byte(res.out), nil
	}
}
