package iconloader

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Placeholder colors.
var (
	red   = color.RGBA{220, 53, 69, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// placeholder renders a red square with a white "?" for resources that could
// not be loaded.
func placeholder(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for py := range size {
		for px := range size {
			img.Set(px, py, red)
		}
	}
	drawText(img, "?", size/2, size/2, float64(size)*0.75)
	return img
}

// drawText renders text centered on (centerX, centerY) in Go's monospace bold font.
func drawText(img *image.RGBA, text string, centerX, centerY int, points float64) {
	f, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		return // The red square alone still marks the icon as missing
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: points,
		DPI:  72,
	})
	if err != nil {
		return
	}
	defer face.Close() //nolint:errcheck // Close error is not critical for rendering

	bounds, advance := font.BoundString(face, text)

	// The visual center sits (Max.Y + Min.Y) / 2 above the baseline.
	visualCenter := (bounds.Max.Y + bounds.Min.Y) / 2
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(white),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(centerX - advance.Ceil()/2),
			Y: fixed.I(centerY) - visualCenter,
		},
	}
	d.DrawString(text)
}
