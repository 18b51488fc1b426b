// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package loop drives a frameview context from host window events.
//
// The host forwards resize, redraw and close notifications as Events;
// Driver turns them into Configure and DrawFrame calls and reacts to draw
// failures the way Classify says to.
//
// Usage with a channel:
//
//	d := &loop.Driver{Context: ctx, Source: src, Window: window}
//	err := d.Run(appCtx, events)
//
// Hosts with their own callback loop call Handle for each event instead.
package loop

import (
	"context"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/frameview"
)

// Event is a host window notification.
type Event interface {
	event()
}

// Resize reports a new drawable size in physical pixels.
type Resize struct {
	Size frameview.Size
}

// Redraw asks for the next frame.
type Redraw struct{}

// Close ends the loop.
type Close struct{}

func (Resize) event() {}
func (Redraw) event() {}
func (Close) event()  {}

// Renderer is the part of *frameview.Context a Driver uses.
type Renderer interface {
	Configure(size frameview.Size)
	DrawFrame(src frameview.Source) error
	Size() frameview.Size
}

var _ Renderer = (*frameview.Context)(nil)

// Driver feeds one context from one source.
type Driver struct {
	Context Renderer
	Source  frameview.Source

	// Window, when set, reports the current size when the surface has to
	// be reconfigured and receives redraw requests.
	Window gpucontext.WindowProvider

	// RequestRedraw is called after every draw so the host schedules the
	// next one. When nil, Window.RequestRedraw is used if Window is set.
	RequestRedraw func()

	stats Stats
}

// Stats counts what a Driver has handled.
type Stats struct {
	Resizes      uint64
	Redraws      uint64
	Reconfigures uint64
	Skipped      uint64
}

// Run handles events until Close arrives, events is closed, ctx is done or
// a draw fails fatally. It returns the fatal draw error or ctx.Err().
func (d *Driver) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			done, err := d.Handle(ev)
			if err != nil || done {
				return err
			}
		}
	}
}

// Handle processes one event. done is true for Close; err is non-nil only
// for fatal draw failures.
func (d *Driver) Handle(ev Event) (done bool, err error) {
	switch ev := ev.(type) {
	case Resize:
		d.stats.Resizes++
		d.Context.Configure(ev.Size)
	case Redraw:
		d.stats.Redraws++
		if err := d.redraw(); err != nil {
			return true, err
		}
	case Close:
		return true, nil
	}
	return false, nil
}

func (d *Driver) redraw() error {
	err := d.Context.DrawFrame(d.Source)
	switch frameview.Classify(err) {
	case frameview.OutcomeFatal:
		frameview.Logger().Error("loop: fatal draw error", "error", err)
		return err
	case frameview.OutcomeReconfigure:
		d.stats.Reconfigures++
		size := d.currentSize()
		frameview.Logger().Info("loop: reconfiguring surface", "size", size, "error", err)
		d.Context.Configure(size)
	case frameview.OutcomeSkip:
		d.stats.Skipped++
		frameview.Logger().Warn("loop: frame skipped", "error", err)
	}
	d.requestRedraw()
	return nil
}

// currentSize is the window size in physical pixels when a Window is set,
// otherwise the last configured size.
func (d *Driver) currentSize() frameview.Size {
	if d.Window == nil {
		return d.Context.Size()
	}
	w, h := d.Window.Size()
	scale := d.Window.ScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	return frameview.Size{
		Width:  uint32(math.Round(float64(max(w, 0)) * scale)),
		Height: uint32(math.Round(float64(max(h, 0)) * scale)),
	}
}

func (d *Driver) requestRedraw() {
	switch {
	case d.RequestRedraw != nil:
		d.RequestRedraw()
	case d.Window != nil:
		d.Window.RequestRedraw()
	}
}

// Stats returns the event counters.
func (d *Driver) Stats() Stats { return d.stats }
