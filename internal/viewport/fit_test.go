// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package viewport

import (
	"math"
	"testing"
)

func TestFitEqualAspectIsVerticalZero(t *testing.T) {
	for _, a := range []float32{0.01, 0.5, 0.5625, 1, 1.5, 3, 100} {
		m := Fit(a, a)
		if m.Axis != Vertical || m.Value != 0 {
			t.Errorf("Fit(%v, %v) = %v, want Vertical(0)", a, a, m)
		}
	}
}

func TestFitScenarios(t *testing.T) {
	tests := []struct {
		name     string
		object   float32
		viewport float32
		want     Margin
	}{
		// 800x600 frame in a 16:9 viewport.
		{"4:3 in 16:9", 600.0 / 800.0, 9.0 / 16.0, Margin{Horizontal, 0.125}},
		// 2:1 wide frame in a square viewport.
		{"2:1 in 1:1", 0.5, 1, Margin{Vertical, 0.25}},
		{"1:1 in 2:1", 1, 0.5, Margin{Horizontal, 0.25}},
		{"16:9 in 4:3", 9.0 / 16.0, 0.75, Margin{Vertical, 0.125}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.object, tt.viewport)
			if got.Axis != tt.want.Axis {
				t.Fatalf("axis = %v, want %v", got.Axis, tt.want.Axis)
			}
			if math.Abs(float64(got.Value-tt.want.Value)) > 1e-6 {
				t.Errorf("value = %v, want %v", got.Value, tt.want.Value)
			}
		})
	}
}

func TestFitHorizontalBoundsAndMonotonic(t *testing.T) {
	const view = float32(0.75)
	prev := float32(-1)
	for ratio := float32(1.01); ratio < 200; ratio *= 1.3 {
		m := Fit(view*ratio, view)
		if m.Axis != Horizontal {
			t.Fatalf("ratio %v: axis = %v, want Horizontal", ratio, m.Axis)
		}
		if m.Value < 0 || m.Value >= 0.5 {
			t.Fatalf("ratio %v: value %v outside [0, 0.5)", ratio, m.Value)
		}
		if m.Value <= prev {
			t.Fatalf("ratio %v: value %v not greater than previous %v", ratio, m.Value, prev)
		}
		prev = m.Value
	}
}

func TestFitVerticalBoundsAndMonotonic(t *testing.T) {
	const view = float32(1.25)
	prev := float32(-1)
	for ratio := float32(1.01); ratio < 200; ratio *= 1.3 {
		m := Fit(view/ratio, view)
		if m.Axis != Vertical {
			t.Fatalf("ratio %v: axis = %v, want Vertical", ratio, m.Axis)
		}
		if m.Value < 0 || m.Value >= 0.5 {
			t.Fatalf("ratio %v: value %v outside [0, 0.5)", ratio, m.Value)
		}
		if m.Value <= prev {
			t.Fatalf("ratio %v: value %v not greater than previous %v", ratio, m.Value, prev)
		}
		prev = m.Value
	}
}

func TestMarginSplit(t *testing.T) {
	h, v := Margin{Horizontal, 0.2}.Split()
	if h != 0.2 || v != 0 {
		t.Errorf("Horizontal split = (%v, %v)", h, v)
	}
	h, v = Margin{Vertical, 0.3}.Split()
	if h != 0 || v != 0.3 {
		t.Errorf("Vertical split = (%v, %v)", h, v)
	}
}

func TestMarginString(t *testing.T) {
	if got := (Margin{Horizontal, 0.125}).String(); got != "Horizontal(0.125)" {
		t.Errorf("String() = %q", got)
	}
	if got := Axis(9).String(); got != "Axis(9)" {
		t.Errorf("Axis(9).String() = %q", got)
	}
}

func TestFitZeroViewportPropagatesNaN(t *testing.T) {
	m := Fit(0, 0)
	if !math.IsNaN(float64(m.Value)) {
		t.Errorf("Fit(0, 0) = %v, want NaN value", m)
	}
}
