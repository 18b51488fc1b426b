// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package source

import "github.com/gogpu/frameview"

// Chan pulls frames from a channel without blocking. A producer goroutine
// sends frames; each draw takes what is ready.
//
// Ownership of a frame passes to the draw when it is received, so the
// producer must not modify a frame's pixels after sending it.
type Chan struct {
	ch     <-chan frameview.Frame
	latest bool
	closed bool
}

// NewChan returns a source that takes one ready frame per pull, in send
// order.
func NewChan(ch <-chan frameview.Frame) *Chan {
	return &Chan{ch: ch}
}

// NewLatest returns a source that drains every ready frame on each pull and
// keeps only the newest, dropping frames the display could not keep up with.
func NewLatest(ch <-chan frameview.Frame) *Chan {
	return &Chan{ch: ch, latest: true}
}

// Next returns a ready frame, or false when none is waiting or the channel
// is closed.
func (c *Chan) Next() (frameview.Frame, bool) {
	if c.closed {
		return nil, false
	}
	var (
		got  frameview.Frame
		have bool
	)
	for {
		select {
		case f, ok := <-c.ch:
			if !ok {
				c.closed = true
				return got, have
			}
			got, have = f, true
			if !c.latest {
				return got, true
			}
		default:
			return got, have
		}
	}
}

// Closed reports whether the channel has been closed and drained.
func (c *Chan) Closed() bool { return c.closed }
