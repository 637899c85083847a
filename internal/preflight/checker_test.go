package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

// fakeFFmpeg answers the subprocess calls the checker makes
type fakeFFmpeg struct {
	mu          sync.Mutex
	decoders    string
	decodersErr error
	info        string
	decodeErr   string // stderr of a failing decode test, empty for success
	calls       [][]string
}

func (f *fakeFFmpeg) run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	joined := strings.Join(args, " ")
	switch {
	case strings.Contains(joined, "-decoders"):
		if f.decodersErr != nil {
			return nil, nil, f.decodersErr
		}
		return []byte(f.decoders), nil, nil
	case strings.Contains(joined, "-f null"):
		if f.decodeErr != "" {
			return nil, []byte(f.decodeErr), errors.New("exit status 1")
		}
		return nil, nil, nil
	default:
		return nil, []byte(f.info), errors.New("exit status 1")
	}
}

func (f *fakeFFmpeg) callsMatching(substr string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]string
	for _, c := range f.calls {
		if strings.Contains(strings.Join(c, " "), substr) {
			out = append(out, c)
		}
	}
	return out
}

func newTestChecker(t *testing.T, fake *fakeFFmpeg, opts ...Option) *Checker {
	t.Helper()
	osRelease := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(osRelease, []byte("ID=ubuntu\nID_LIKE=debian\n"), 0644); err != nil {
		t.Fatalf("Failed to write os-release: %v", err)
	}
	opts = append([]Option{WithRunner(fake.run), WithOSRelease(osRelease)}, opts...)
	return New(Tools{FFmpeg: "/usr/bin/ffmpeg"}, zaptest.NewLogger(t), opts...)
}

func TestRun_UnknownCodecIsAccepted(t *testing.T) {
	fake := &fakeFFmpeg{info: "Input #0, data, from 'in.bin'"}
	c := newTestChecker(t, fake)

	res := c.Run(context.Background(), "in.bin")
	if !res.OK {
		t.Fatalf("Expected OK for unknown codec, got %+v", res)
	}
	if len(fake.callsMatching("-f null")) != 0 {
		t.Error("Decode test should not run for an unknown codec")
	}
}

func TestRun_H264WithNativeDecoder(t *testing.T) {
	fake := &fakeFFmpeg{
		decoders: sampleDecoders,
		info:     "Stream #0:0: Video: h264 (High), yuv420p\n  Duration: 00:00:05.00, start: 0",
	}
	c := newTestChecker(t, fake)

	res := c.Run(context.Background(), "in.mp4")
	if !res.OK {
		t.Fatalf("Expected OK, got %+v", res)
	}
	if res.Info.Codec != "h264" || res.Info.Duration != 5 {
		t.Errorf("Unexpected media info %+v", res.Info)
	}
	if !reflect.DeepEqual(res.DecoderArgs, []string{"-c:v", "h264"}) {
		t.Errorf("DecoderArgs = %v", res.DecoderArgs)
	}

	decodes := fake.callsMatching("-f null")
	if len(decodes) != 1 {
		t.Fatalf("Expected one decode test, got %d", len(decodes))
	}
	expected := []string{"/usr/bin/ffmpeg", "-hide_banner", "-v", "error", "-c:v", "h264", "-t", "0.2", "-i", "in.mp4", "-f", "null", "-"}
	if !reflect.DeepEqual(decodes[0], expected) {
		t.Errorf("Decode test = %v, expected %v", decodes[0], expected)
	}
}

func TestRun_HEVCHardwareOnly(t *testing.T) {
	fake := &fakeFFmpeg{
		decoders: " V..... hevc_vaapi  HEVC VAAPI\n",
		info:     "Stream #0:0: Video: hevc (Main), yuv420p",
	}
	c := newTestChecker(t, fake)

	res := c.Run(context.Background(), "in.mkv")
	if !res.OK {
		t.Fatalf("Expected hardware decoder to be accepted, got %+v", res)
	}
	if res.DecoderArgs != nil {
		t.Errorf("No decoder should be forced, got %v", res.DecoderArgs)
	}
	decodes := fake.callsMatching("-f null")
	if len(decodes) != 1 || strings.Contains(strings.Join(decodes[0], " "), "-c:v") {
		t.Errorf("Decode test should let ffmpeg pick the decoder: %v", decodes)
	}
}

func TestRun_MissingDecoderFailsWithHelp(t *testing.T) {
	fake := &fakeFFmpeg{
		decoders: " V....D libopenh264  OpenH264\n",
		info:     "Stream #0:0: Video: h264 (High), yuv420p",
	}
	c := newTestChecker(t, fake)

	res := c.Run(context.Background(), "in.mp4")
	if res.OK {
		t.Fatal("Expected failure without an h264 decoder")
	}
	if !strings.Contains(res.Message, "cannot decode H264") || !strings.Contains(res.Message, "sudo apt install ffmpeg") {
		t.Errorf("Unexpected help message:\n%s", res.Message)
	}
	if len(fake.callsMatching("-f null")) != 0 {
		t.Error("Decode test should be skipped when no decoder exists")
	}
}

func TestRun_DecodeTestFailureInfersCodec(t *testing.T) {
	tests := []struct {
		name     string
		probed   string
		stderr   string
		expected string
	}{
		{"openh264", "Video: vp9", "[libopenh264 @ 0x1] DecodeFrame failed", "H264"},
		{"no decoder hevc", "Video: vp9", "No decoder for codec hevc", "HEVC"},
		{"no decoder h264", "Video: vp9", "no decoder found for h264", "H264"},
		{"fallback to probed", "Video: vp9", "Invalid data found", "VP9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeFFmpeg{decoders: sampleDecoders, info: "Stream #0:0: " + tt.probed + ", yuv420p", decodeErr: tt.stderr}
			c := newTestChecker(t, fake)

			res := c.Run(context.Background(), "in.mp4")
			if res.OK {
				t.Fatal("Expected failure")
			}
			if !strings.Contains(res.Message, "cannot decode "+tt.expected+" ") {
				t.Errorf("Expected codec %s in message:\n%s", tt.expected, res.Message)
			}
		})
	}
}

func TestRun_UsesProbeJSON(t *testing.T) {
	fake := &fakeFFmpeg{decoders: sampleDecoders}
	probe := func(ctx context.Context, path string) ([]byte, error) {
		return []byte(`{"streams":[{"codec_name":"vp9","codec_type":"video","duration":"3.0"}]}`), nil
	}
	c := newTestChecker(t, fake, WithProbe(probe))
	c.tools.FFprobe = "/usr/bin/ffprobe"

	res := c.Run(context.Background(), "in.webm")
	if !res.OK || res.Info.Codec != "vp9" || res.Info.Duration != 3 {
		t.Errorf("Unexpected result %+v", res)
	}
	if len(fake.callsMatching("-i in.webm")) != 1 {
		t.Error("Only the decode test should read the input when ffprobe succeeds")
	}
}

func TestDecoders_CachesSuccessOnly(t *testing.T) {
	fake := &fakeFFmpeg{decodersErr: errors.New("boom")}
	c := newTestChecker(t, fake)

	if _, err := c.Decoders(context.Background()); err == nil {
		t.Fatal("Expected error from failing runner")
	}

	fake.decodersErr = nil
	fake.decoders = sampleDecoders
	set, err := c.Decoders(context.Background())
	if err != nil || !set.Has("h264") {
		t.Fatalf("Expected decoders after retry, got %v, %v", set, err)
	}

	fake.decoders = ""
	if _, err := c.Decoders(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := len(fake.callsMatching("-decoders")); n != 2 {
		t.Errorf("Expected 2 decoder listings, got %d", n)
	}
}

func TestDecoderArgs(t *testing.T) {
	fake := &fakeFFmpeg{decoders: sampleDecoders}
	c := newTestChecker(t, fake)
	ctx := context.Background()

	if got := c.DecoderArgs(ctx, "avc1"); !reflect.DeepEqual(got, []string{"-c:v", "h264"}) {
		t.Errorf("DecoderArgs(avc1) = %v", got)
	}
	if got := c.DecoderArgs(ctx, "hevc"); got != nil {
		t.Errorf("DecoderArgs(hevc) without native decoder = %v", got)
	}
	if got := c.DecoderArgs(ctx, "vp9"); got != nil {
		t.Errorf("DecoderArgs(vp9) = %v", got)
	}
}

func TestFFprobeJSON_ExpiredContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	start := time.Now()
	_, err := ffprobeJSON(ctx, "clip.mp4")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expired context should return at once, took %s", elapsed)
	}
}

func TestLocate_Override(t *testing.T) {
	if _, err := Locate(filepath.Join(t.TempDir(), "no-such-ffmpeg")); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("Expected ErrFFmpegNotFound, got %v", err)
	}
}
