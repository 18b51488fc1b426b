// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package source

import "github.com/gogpu/frameview"

// Slice yields a fixed list of frames once, in order. After the last frame
// it reports no frame, leaving the last image on screen.
type Slice struct {
	frames []frameview.Frame
	next   int
}

// NewSlice returns a source over frames. The slice is not copied.
func NewSlice(frames ...frameview.Frame) *Slice {
	return &Slice{frames: frames}
}

// Next returns the next frame, if any.
func (s *Slice) Next() (frameview.Frame, bool) {
	if s.next >= len(s.frames) {
		return nil, false
	}
	f := s.frames[s.next]
	s.next++
	return f, true
}

// Remaining returns how many frames are left.
func (s *Slice) Remaining() int { return len(s.frames) - s.next }

// Rewind restarts playback from the first frame.
func (s *Slice) Rewind() { s.next = 0 }
