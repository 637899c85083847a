package preflight

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Codecs the checker knows how to steer
const (
	CodecH264 = "h264"
	CodecHEVC = "hevc"
)

// hardwareDecoderSuffixes are accepted when the software decoder is missing
var hardwareDecoderSuffixes = []string{"_cuvid", "_qsv", "_vaapi"}

// NormalizeCodec lowercases a codec name and maps common aliases
func NormalizeCodec(codec string) string {
	codec = strings.ToLower(strings.TrimSpace(codec))
	switch codec {
	case "avc1":
		return CodecH264
	case "h265":
		return CodecHEVC
	}
	return codec
}

// DecoderSet is the set of video decoder names reported by ffmpeg
type DecoderSet map[string]struct{}

// Has reports whether name is listed
func (d DecoderSet) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// CanDecode reports whether codec has a native or hardware decoder
func (d DecoderSet) CanDecode(codec string) bool {
	if d.Has(codec) {
		return true
	}
	for _, suffix := range hardwareDecoderSuffixes {
		if d.Has(codec + suffix) {
			return true
		}
	}
	return false
}

// Names returns the decoder names sorted
func (d DecoderSet) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseDecoders parses `ffmpeg -decoders` output, keeping video decoders only.
// Lines look like: " V....D h264   H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10"
func ParseDecoders(output string) DecoderSet {
	set := make(DecoderSet)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "V") && !strings.HasPrefix(line, ".V") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] == "=" {
			continue
		}
		set[strings.ToLower(fields[1])] = struct{}{}
	}
	return set
}

// MediaInfo is what the checker learns about the input
type MediaInfo struct {
	Codec    string  // normalized, empty when unknown
	Duration float64 // seconds, 0 when unknown
}

// ParseCodecFromInfo finds the first "Video: <codec>" line in `ffmpeg -i` output
func ParseCodecFromInfo(output string) string {
	for _, line := range strings.Split(output, "\n") {
		_, after, ok := strings.Cut(line, "Video:")
		if !ok {
			continue
		}
		first, _, _ := strings.Cut(after, ",")
		fields := strings.Fields(first)
		if len(fields) == 0 {
			continue
		}
		return NormalizeCodec(fields[0])
	}
	return ""
}

// ParseDurationFromInfo reads "Duration: HH:MM:SS.ss" from `ffmpeg -i` output
func ParseDurationFromInfo(output string) float64 {
	for _, line := range strings.Split(output, "\n") {
		_, after, ok := strings.Cut(line, "Duration:")
		if !ok {
			continue
		}
		value, _, _ := strings.Cut(after, ",")
		if d, err := parseClock(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return 0
}

// parseClock converts HH:MM:SS(.frac) to seconds
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
		}
		total = total*60 + v
	}
	return total, nil
}

// --- ffprobe JSON wire types ---

type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeStream struct {
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
}

// ParseProbeJSON extracts the first video stream's codec and the duration
// (stream duration, else container duration) from ffprobe JSON output.
func ParseProbeJSON(data []byte) (MediaInfo, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return MediaInfo{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	var info MediaInfo
	for _, s := range raw.Streams {
		if s.CodecType != "" && s.CodecType != "video" {
			continue
		}
		info.Codec = NormalizeCodec(s.CodecName)
		info.Duration = parseSeconds(s.Duration)
		break
	}
	if info.Duration == 0 {
		info.Duration = parseSeconds(raw.Format.Duration)
	}
	return info, nil
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
