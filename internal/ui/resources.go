package ui

import (
	"bytes"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
)

const (
	AppIconName = "minivideo.png"
	AppIconSize = 128
)

var (
	appIconOnce     sync.Once
	appIconResource fyne.Resource
)

// AppIcon returns the window icon: a play symbol on the brand color.
// It is rendered once so no binary asset has to ship with the app.
func AppIcon() fyne.Resource {
	appIconOnce.Do(func() {
		appIconResource = renderAppIcon(AppIconSize)
	})
	return appIconResource
}

func renderAppIcon(size int) fyne.Resource {
	img := imaging.New(size, size, BrandColor)

	// Right-pointing triangle centered in the icon
	left, right := size*3/10, size*3/4
	top, bottom := size/4, size*3/4
	mid := size / 2
	for x := left; x <= right; x++ {
		half := (bottom - top) / 2 * (right - x) / (right - left)
		for y := mid - half; y <= mid+half; y++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil
	}
	return fyne.NewStaticResource(AppIconName, buf.Bytes())
}
