// Package preview renders a small still of a finished animation.
package preview

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Thumbnail bounds in pixels
const (
	MaxThumbnailWidth  = 240
	MaxThumbnailHeight = 240
)

// Thumbnail decodes the first frame of the GIF, APNG or WebP at path and
// fits it inside the thumbnail bounds. Smaller images are returned as is.
// Animated WebP is not decodable and yields an error.
func Thumbnail(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	frame, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	b := frame.Bounds()
	if b.Dx() <= MaxThumbnailWidth && b.Dy() <= MaxThumbnailHeight {
		return frame, nil
	}

	// Lanczos for downscaling, nearest neighbor keeps palette images crisp
	resampleFilter := imaging.Lanczos
	if format == "gif" && (b.Dx() < 2*MaxThumbnailWidth && b.Dy() < 2*MaxThumbnailHeight) {
		resampleFilter = imaging.NearestNeighbor
	}
	return imaging.Fit(frame, MaxThumbnailWidth, MaxThumbnailHeight, resampleFilter), nil
}
