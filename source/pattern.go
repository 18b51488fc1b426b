// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package source

import (
	"image/color"

	"github.com/gogpu/frameview"
)

// PatternKind selects what a Pattern draws.
type PatternKind uint8

const (
	// Checkerboard alternates two colors in square cells.
	Checkerboard PatternKind = iota
	// Gradient ramps red across and green down the frame.
	Gradient
)

// Pattern generates synthetic frames of a fixed size. When animated, each
// pull advances the pattern by one step: the checkerboard scrolls one pixel
// to the right and the gradient's blue channel rises by one.
//
// The same pixel buffer is reused between pulls.
type Pattern struct {
	kind    PatternKind
	size    frameview.Size
	cell    uint32
	a, b    color.NRGBA
	animate bool

	tick  uint32
	drawn bool
	frame *frameview.PixelFrame
}

// NewCheckerboard returns a checkerboard of cell-sized squares in colors a
// and b. A zero cell is treated as 1.
func NewCheckerboard(size frameview.Size, cell uint32, a, b color.NRGBA) *Pattern {
	return newPattern(Checkerboard, size, max(cell, 1), a, b)
}

// NewGradient returns a red/green gradient.
func NewGradient(size frameview.Size) *Pattern {
	return newPattern(Gradient, size, 1, color.NRGBA{}, color.NRGBA{})
}

func newPattern(kind PatternKind, size frameview.Size, cell uint32, a, b color.NRGBA) *Pattern {
	return &Pattern{
		kind:  kind,
		size:  size,
		cell:  cell,
		a:     a,
		b:     b,
		frame: frameview.NewFrame(size, make([]byte, size.Bytes())),
	}
}

// Animate makes every pull advance the pattern.
func (p *Pattern) Animate(on bool) *Pattern {
	p.animate = on
	return p
}

// Kind returns what the pattern draws.
func (p *Pattern) Kind() PatternKind { return p.kind }

// Next renders and returns the next frame.
func (p *Pattern) Next() (frameview.Frame, bool) {
	if p.size.Empty() {
		return nil, false
	}
	if !p.drawn || p.animate {
		p.render()
		p.drawn = true
		if p.animate {
			p.tick++
		}
	}
	return p.frame, true
}

func (p *Pattern) render() {
	pix := p.frame.Pixels()
	w, h := p.size.Width, p.size.Height
	i := 0
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			var c color.NRGBA
			switch p.kind {
			case Gradient:
				c = color.NRGBA{
					R: uint8(x * 255 / max(w-1, 1)),
					G: uint8(y * 255 / max(h-1, 1)),
					B: uint8(p.tick),
					A: 255,
				}
			default:
				if ((x+w-p.tick%w)/p.cell+y/p.cell)%2 == 0 {
					c = p.a
				} else {
					c = p.b
				}
			}
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
}
