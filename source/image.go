// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/frameview"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("source: empty image")

// Option configures how an image is turned into a frame.
type Option func(*imageConfig)

type imageConfig struct {
	maxDim uint32
}

// WithMaxDimension downscales images whose width or height exceeds n,
// keeping the aspect ratio. Zero disables scaling.
func WithMaxDimension(n uint32) Option {
	return func(c *imageConfig) {
		c.maxDim = n
	}
}

// Image is a static frame returned on every pull.
type Image struct {
	frame *frameview.PixelFrame
}

// FromImage converts img to a tightly packed RGBA8 frame.
func FromImage(img image.Image, opts ...Option) (*Image, error) {
	var cfg imageConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}
	w, h := uint32(b.Dx()), uint32(b.Dy())
	if sw, sh := fitWithin(w, h, cfg.maxDim); sw != w || sh != h {
		dst := image.NewNRGBA(image.Rect(0, 0, int(sw), int(sh)))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		frameview.Logger().Debug("source: image downscaled", "from", fmt.Sprintf("%dx%d", w, h), "to", fmt.Sprintf("%dx%d", sw, sh))
		return &Image{frame: frameview.NewFrame(frameview.Size{Width: sw, Height: sh}, dst.Pix)}, nil
	}

	size := frameview.Size{Width: w, Height: h}
	return &Image{frame: frameview.NewFrame(size, toNRGBA(img).Pix)}, nil
}

// Decode reads an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP) and converts it to a frame.
func Decode(r io.Reader, opts ...Option) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("source: decode: %w", err)
	}
	frameview.Logger().Debug("source: image decoded", "format", format, "bounds", img.Bounds())
	return FromImage(img, opts...)
}

// Open decodes the image file at path.
func Open(path string, opts ...Option) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("source: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, opts...)
}

// Next returns the image frame.
func (s *Image) Next() (frameview.Frame, bool) { return s.frame, true }

// Frame returns the converted frame.
func (s *Image) Frame() *frameview.PixelFrame { return s.frame }

// toNRGBA returns img as a zero-origin NRGBA image with a tight stride,
// copying only when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() && len(n.Pix) == 4*b.Dx()*b.Dy() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// fitWithin scales w x h down so neither side exceeds limit.
func fitWithin(w, h, limit uint32) (uint32, uint32) {
	if limit == 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, uint32((uint64(h)*uint64(limit)+uint64(w)/2)/uint64(w)))
	}
	return max(1, uint32((uint64(w)*uint64(limit)+uint64(h)/2)/uint64(h))), limit
}
