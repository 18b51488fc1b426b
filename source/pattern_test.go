// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package source

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/gogpu/frameview"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func pixelAt(f frameview.Frame, x, y uint32) []byte {
	i := (y*f.Size().Width + x) * 4
	return f.Pixels()[i : i+4]
}

func TestCheckerboard(t *testing.T) {
	p := NewCheckerboard(frameview.Size{Width: 4, Height: 4}, 2, black, white)
	f, ok := p.Next()
	if !ok {
		t.Fatal("Next() reported no frame")
	}
	if err := frameview.ValidateFrame(f); err != nil {
		t.Fatalf("ValidateFrame: %v", err)
	}
	tests := []struct {
		x, y uint32
		want color.NRGBA
	}{
		{0, 0, black}, {1, 1, black}, {2, 0, white}, {0, 2, white}, {3, 3, black},
	}
	for _, tt := range tests {
		want := []byte{tt.want.R, tt.want.G, tt.want.B, tt.want.A}
		if got := pixelAt(f, tt.x, tt.y); !bytes.Equal(got, want) {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, want)
		}
	}
}

func TestCheckerboardAnimates(t *testing.T) {
	p := NewCheckerboard(frameview.Size{Width: 4, Height: 1}, 1, black, white).Animate(true)
	f, _ := p.Next()
	first := append([]byte(nil), f.Pixels()...)
	f, _ = p.Next()
	if bytes.Equal(first, f.Pixels()) {
		t.Error("animated checkerboard did not move")
	}
	// Scrolling by one pixel shifts pixel 0 into pixel 1.
	if !bytes.Equal(first[0:4], f.Pixels()[4:8]) {
		t.Errorf("pixel 1 = %v, want previous pixel 0 %v", f.Pixels()[4:8], first[0:4])
	}
}

func TestStaticPatternRendersOnce(t *testing.T) {
	p := NewGradient(frameview.Size{Width: 3, Height: 3})
	f, _ := p.Next()
	f.Pixels()[0] = 99
	f, _ = p.Next()
	if f.Pixels()[0] != 99 {
		t.Error("static pattern was re-rendered")
	}
}

func TestGradient(t *testing.T) {
	p := NewGradient(frameview.Size{Width: 3, Height: 2})
	f, _ := p.Next()
	if got := pixelAt(f, 0, 0); !bytes.Equal(got, []byte{0, 0, 0, 255}) {
		t.Errorf("top-left = %v", got)
	}
	if got := pixelAt(f, 2, 1); !bytes.Equal(got, []byte{255, 255, 0, 255}) {
		t.Errorf("bottom-right = %v", got)
	}
	if p.Kind() != Gradient {
		t.Errorf("Kind() = %v, want Gradient", p.Kind())
	}
}

func TestPatternEmptySize(t *testing.T) {
	if _, ok := NewGradient(frameview.Size{}).Next(); ok {
		t.Error("empty pattern reported a frame")
	}
}
