package iconloader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// maxIntrinsicSize bounds the size an SVG may ask to be rendered at.
const maxIntrinsicSize = 512

var errUnsupportedFormat = errors.New("unsupported image format")

// hidpiScale returns the pixel density encoded in a file name such as
// "taskSolved@2x.png", or 1 if there is none.
func hidpiScale(name string) int {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	switch {
	case strings.HasSuffix(base, "@2x"):
		return 2
	case strings.HasSuffix(base, "@3x"):
		return 3
	default:
		return 1
	}
}

// readResource reads a root-relative resource.
func readResource(fsys fs.FS, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("read %q: %w", name, fs.ErrInvalid)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return data, nil
}

// decode renders data to an image. size is the target edge length; zero means
// the resource's intrinsic (logical) size.
func decode(name string, data []byte, size int) (image.Image, error) {
	ext := strings.ToLower(path.Ext(name))
	if ext == ".svg" {
		return renderSVG(data, size)
	}

	var (
		src image.Image
		err error
	)
	switch ext {
	case ".png":
		src, err = png.Decode(bytes.NewReader(data))
	case ".webp":
		src, err = webp.Decode(bytes.NewReader(data))
	case ".bmp":
		src, err = bmp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("decode %q: %w", name, errUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}

	if size == 0 {
		scale := hidpiScale(name)
		if scale == 1 {
			return src, nil
		}
		b := src.Bounds()
		return scaleTo(src, max(b.Dx()/scale, 1), max(b.Dy()/scale, 1)), nil
	}
	return scaleTo(src, size, size), nil
}

// renderSVG rasterizes an SVG document. With size zero the viewBox dimensions
// are used.
func renderSVG(data []byte, size int) (image.Image, error) {
	svg, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w, h := size, size
	if size == 0 {
		w = intrinsic(svg.ViewBox.W)
		h = intrinsic(svg.ViewBox.H)
	}

	svg.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	svg.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

func intrinsic(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		return 1
	}
	return min(n, maxIntrinsicSize)
}

// scaleTo resizes src to w×h.
func scaleTo(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
