package platform

import (
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// sniffHeaderSize is enough for every matcher filetype ships with
const sniffHeaderSize = 262

// MediaKind describes a file's detected type
type MediaKind struct {
	Extension string // e.g. "mp4", empty when unknown
	MIME      string // e.g. "video/mp4", empty when unknown
	IsVideo   bool
}

// SniffMedia detects the type of the file at path from its header bytes
func SniffMedia(path string) (MediaKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return MediaKind{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, sniffHeaderSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return MediaKind{}, fmt.Errorf("read %s: %w", path, err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return MediaKind{}, nil
	}

	return MediaKind{
		Extension: kind.Extension,
		MIME:      kind.MIME.Value,
		IsVideo:   filetype.IsVideo(head),
	}, nil
}
