// Package texture decodes material images into RGBA pixel buffers ready for
// GPU upload.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxSize bounds the longer side of a decoded texture. Larger images are
// downscaled.
const MaxSize = 2048

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("empty image")

// Decode reads a PNG, JPEG, BMP, TIFF or WebP image and converts it to RGBA.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w", format, ErrEmptyImage)
	}
	return ToRGBA(img), nil
}

// Load decodes the image at path.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadOr decodes the image at path, falling back to a solid texture of
// color c. The returned error reports why the fallback was used.
func LoadOr(path string, c color.RGBA) (*image.RGBA, error) {
	img, err := Load(path)
	if err != nil {
		return Solid(c, 4), err
	}
	return img, nil
}

// Solid returns a size x size texture filled with c.
func Solid(c color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0),
// downscaling so neither side exceeds MaxSize.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), MaxSize)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// fitSize scales (w, h) down to fit within limit, keeping the aspect ratio.
func fitSize(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
