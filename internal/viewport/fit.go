// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package viewport computes the letterbox/pillarbox inset that keeps an
// object's aspect ratio intact inside a viewport of a different shape.
//
// Aspect ratios are height/width. Margins are expressed in normalized device
// coordinates of a [-1, 1] quad, so a margin of 0.25 moves both edges of the
// inset axis a quarter of the way toward the center.
package viewport

import "fmt"

// Axis identifies which pair of quad edges a Margin insets.
type Axis uint8

const (
	// Horizontal insets the left and right edges (bars on the sides).
	Horizontal Axis = iota

	// Vertical insets the top and bottom edges (bars above and below).
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return fmt.Sprintf("Axis(%d)", a)
	}
}

// Margin is the inset on exactly one axis. The other axis has zero margin.
type Margin struct {
	Axis  Axis
	Value float32
}

// String formats the margin as Horizontal(0.125).
func (m Margin) String() string {
	return fmt.Sprintf("%s(%g)", m.Axis, m.Value)
}

// Split returns the margin as (horizontal, vertical); one of them is zero.
func (m Margin) Split() (h, v float32) {
	if m.Axis == Horizontal {
		return m.Value, 0
	}
	return 0, m.Value
}

// Fit returns the margin that fits an object with objectAspect inside a
// viewport with viewportAspect.
//
// A relatively taller object (objectAspect > viewportAspect) is limited by
// the viewport height and gets a Horizontal margin. Otherwise the object is
// limited by the width and gets a Vertical margin; equal aspects yield
// Vertical(0).
//
// Both aspects must be positive and finite. Zero or infinite inputs
// propagate NaN or Inf into the result.
func Fit(objectAspect, viewportAspect float32) Margin {
	if objectAspect > viewportAspect {
		return Margin{Axis: Horizontal, Value: (1 - viewportAspect/objectAspect) / 2}
	}
	return Margin{Axis: Vertical, Value: (1 - objectAspect/viewportAspect) / 2}
}
