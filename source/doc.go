// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package source provides frame sources for frameview contexts.
//
// Image repeats one decoded picture on every pull. Pattern generates test
// frames. Slice plays a fixed list of frames once, and Chan hands over
// frames produced by another goroutine without ever blocking the draw.
//
// All sources here are meant to be pulled from the render goroutine only.
// Chan is the exception on the producer side: any goroutine may send on
// its channel.
package source
