// Package frameview renders one dynamically supplied raster frame onto a
// resizable GPU surface, letterboxed to keep its aspect ratio.
//
// # Overview
//
// A [Context] owns the device, queue and drawable surface. It is configured
// with the surface size at construction and again on every window resize.
// Image dependent GPU objects (texture, sampler, bind group, pipeline and
// vertex buffer) are created lazily from the first frame pulled from a
// [Source], so the texture size never has to be known up front.
//
// # Quick Start
//
//	ctx, err := frameview.New(handle, frameview.Size{Width: 1280, Height: 720})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
//	img, _ := source.Open("photo.png")
//
//	// on resize
//	ctx.Configure(frameview.Size{Width: w, Height: h})
//
//	// on redraw
//	switch err := ctx.DrawFrame(img); frameview.Classify(err) {
//	case frameview.OutcomeReconfigure:
//		ctx.Configure(ctx.Size())
//	case frameview.OutcomeFatal:
//		return err
//	}
//
// # State
//
// A context moves through [StateUnconfigured], [StateConfigured] and
// [StateResourced]. Resizing only ever rewrites the vertex buffer: the
// texture, sampler, bind group and pipeline are built once and reused until
// [Context.Suspend] or [Context.Destroy].
//
// # Frames
//
// Frames are tightly packed RGBA8 with origin placement. Every frame drawn by
// a context must have the size of the first one; a frame of another size is
// rejected with [ErrFrameSizeMismatch] and leaves the context untouched.
//
// # Concurrency
//
// A Context is not safe for concurrent use. Configure and DrawFrame are
// meant to be called from the single goroutine that pumps window events;
// package loop provides such a driver.
package frameview
