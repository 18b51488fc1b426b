package frameview

import (
	"github.com/gogpu/gputypes"
)

// Option configures a Context during creation.
//
// Example:
//
//	// Defaults: best backend, sRGB surface, FIFO presentation when available
//	ctx, err := frameview.New(handle, size)
//
//	// White background, naga-compiled SPIR-V shaders
//	ctx, err := frameview.New(handle, size,
//		frameview.WithClearColor(gputypes.Color{R: 1, G: 1, B: 1, A: 1}),
//		frameview.WithSPIRV(),
//	)
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	clearColor    gputypes.Color
	backend       gputypes.Backend
	hasBackend    bool
	presentMode   gputypes.PresentMode
	surfaceFormat gputypes.TextureFormat
	textureFormat gputypes.TextureFormat
	spirv         bool
	limits        *gputypes.Limits
	label         string
}

// defaultOptions returns the default context options.
func defaultOptions() options {
	return options{
		clearColor:    gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		presentMode:   gputypes.PresentModeUndefined, // first mode the surface reports
		surfaceFormat: gputypes.TextureFormatUndefined,
		textureFormat: gputypes.TextureFormatRGBA8UnormSrgb,
		label:         "frameview",
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithClearColor sets the color of the viewport area not covered by the
// frame. The default is opaque black.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithBackend selects the HAL backend New uses instead of the best
// registered one. The backend package must be imported for its side effects.
//
// Example:
//
//	import _ "github.com/gogpu/wgpu/hal/noop"
//
//	ctx, err := frameview.New(handle, size, frameview.WithBackend(gputypes.BackendEmpty))
func WithBackend(b gputypes.Backend) Option {
	return func(o *options) {
		o.backend = b
		o.hasBackend = true
	}
}

// WithPresentMode requests a presentation mode. It is used when the surface
// supports it; otherwise the surface's first reported mode is used.
func WithPresentMode(m gputypes.PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}

// WithSurfaceFormat requests a surface format. It is used when the surface
// supports it; otherwise the first sRGB format is preferred.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.surfaceFormat = f
	}
}

// WithTextureFormat sets the format of the frame texture. Frames are always
// RGBA8; the default RGBA8UnormSrgb treats them as sRGB encoded, while
// RGBA8Unorm treats them as linear.
func WithTextureFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.textureFormat = f
	}
}

// WithSPIRV compiles the quad shader to SPIR-V with naga before handing it
// to the device, for backends that do not accept WGSL.
func WithSPIRV() Option {
	return func(o *options) {
		o.spirv = true
	}
}

// WithLimits overrides the device limits used to validate frame sizes.
// By default the adapter's reported limits are used.
func WithLimits(l gputypes.Limits) Option {
	return func(o *options) {
		o.limits = &l
	}
}

// WithLabel sets the debug label prefix for GPU objects.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}
