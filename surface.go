package frameview

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SurfaceHandle is the platform window a context presents to: the display
// connection (X11 Display*, wl_display*, or 0 where unused) and the window
// (HWND, X11 Window, wl_surface*, CAMetalLayer*).
type SurfaceHandle struct {
	Display uintptr
	Window  uintptr
}

// Target is a device, queue and surface owned by the host. A context built
// from a Target never destroys them.
type Target struct {
	Device  hal.Device
	Queue   hal.Queue
	Surface hal.Surface

	// Capabilities are the surface capabilities reported by the adapter.
	// When nil, BGRA8Unorm with FIFO presentation and opaque alpha is assumed.
	Capabilities *hal.SurfaceCapabilities
}

// surfaceSettings is the chosen presentation configuration.
type surfaceSettings struct {
	format      gputypes.TextureFormat
	presentMode gputypes.PresentMode
	alphaMode   gputypes.CompositeAlphaMode
}

func defaultCapabilities() *hal.SurfaceCapabilities {
	return &hal.SurfaceCapabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm},
		PresentModes: []gputypes.PresentMode{gputypes.PresentModeFifo},
		AlphaModes:   []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeOpaque},
	}
}

// chooseSurface picks the surface format, present mode and alpha mode.
// A requested format or mode wins when the surface supports it. Otherwise
// the first sRGB format is preferred over the first reported format, and
// the first reported present and alpha modes are used.
func chooseSurface(caps *hal.SurfaceCapabilities, o options) (surfaceSettings, error) {
	if caps == nil {
		caps = defaultCapabilities()
	}
	if len(caps.Formats) == 0 {
		return surfaceSettings{}, ErrNoSurfaceFormat
	}

	s := surfaceSettings{
		format:      caps.Formats[0],
		presentMode: gputypes.PresentModeFifo,
		alphaMode:   gputypes.CompositeAlphaModeOpaque,
	}
	for _, f := range caps.Formats {
		if f.IsSrgb() {
			s.format = f
			break
		}
	}
	if o.surfaceFormat != gputypes.TextureFormatUndefined && contains(caps.Formats, o.surfaceFormat) {
		s.format = o.surfaceFormat
	}

	if len(caps.PresentModes) > 0 {
		s.presentMode = caps.PresentModes[0]
	}
	if o.presentMode != gputypes.PresentModeUndefined && contains(caps.PresentModes, o.presentMode) {
		s.presentMode = o.presentMode
	}

	if len(caps.AlphaModes) > 0 {
		s.alphaMode = caps.AlphaModes[0]
	}
	return s, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// pickAdapter prefers a discrete GPU, then an integrated GPU, then the
// first adapter.
func pickAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// selectBackend returns the backend requested with WithBackend, or the
// best registered backend.
func selectBackend(o options) (hal.Backend, error) {
	if o.hasBackend {
		b, ok := hal.GetBackend(o.backend)
		if !ok {
			return nil, hal.ErrBackendNotFound
		}
		return b, nil
	}
	return hal.SelectBestBackend()
}
