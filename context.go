package frameview

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frameview/internal/quad"
)

// State is the lifecycle state of a Context.
type State uint8

const (
	// StateUnconfigured means the surface has no configuration yet, either
	// because the drawable size is zero or because the context is destroyed.
	StateUnconfigured State = iota
	// StateConfigured means the surface is configured and no frame has
	// been drawn since construction or the last Suspend.
	StateConfigured
	// StateResourced means the frame texture, pipeline and vertex buffer exist.
	StateResourced
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "Unconfigured"
	case StateConfigured:
		return "Configured"
	case StateResourced:
		return "Resourced"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Stats counts what a Context has done since construction.
type Stats struct {
	Draws             uint64 // frames submitted and presented
	Uploads           uint64 // texture uploads
	EmptyPulls        uint64 // draws whose source had no frame
	RejectedFrames    uint64 // frames that failed validation
	ResourceBuilds    uint64 // times the frame resources were created
	VertexWrites      uint64 // vertex buffer rewrites
	SurfaceConfigures uint64 // successful surface configurations
}

// inflight is a submitted frame whose command buffer and surface view are
// released once the queue reports its submission complete.
type inflight struct {
	index   uint64
	encoder hal.CommandEncoder
	cmd     hal.CommandBuffer
	view    hal.TextureView
}

// Context renders frames pulled from a Source onto a surface, letterboxed
// to the surface size.
//
// Context is NOT safe for concurrent use.
type Context struct {
	opts options

	device   hal.Device
	queue    hal.Queue
	surface  hal.Surface
	settings surfaceSettings
	limits   gputypes.Limits

	// Set only when New created them.
	instance    hal.Instance
	ownsDevice  bool
	ownsSurface bool

	size          Size
	configured    bool
	indexBuf      hal.Buffer
	res           *resources
	staleGeometry bool
	pending       []inflight

	stats     Stats
	destroyed bool
}

// New creates a context that owns its GPU stack: it selects a backend,
// creates an instance and a surface for handle, opens the adapter best
// suited to present to it (discrete, then integrated, then any) and
// configures the surface at size.
//
// Destroy releases everything New created.
func New(handle SurfaceHandle, size Size, opts ...Option) (*Context, error) {
	o := applyOptions(opts)

	backend, err := selectBackend(o)
	if err != nil {
		return nil, fmt.Errorf("frameview: select backend: %w", err)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("frameview: create instance: %w", err)
	}
	surface, err := instance.CreateSurface(handle.Display, handle.Window)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("frameview: create surface: %w", err)
	}

	selected := pickAdapter(instance.EnumerateAdapters(surface))
	if selected == nil {
		surface.Destroy()
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		surface.Destroy()
		instance.Destroy()
		return nil, fmt.Errorf("frameview: open device: %w", err)
	}
	Logger().Info("frameview: adapter selected",
		"name", selected.Info.Name,
		"type", selected.Info.DeviceType,
		"backend", backend.Variant())

	c, err := newContext(openDev.Device, openDev.Queue, surface,
		selected.Adapter.SurfaceCapabilities(surface), selected.Capabilities.Limits, size, o)
	if err != nil {
		openDev.Device.Destroy()
		surface.Destroy()
		instance.Destroy()
		return nil, err
	}
	c.instance = instance
	c.ownsDevice = true
	c.ownsSurface = true
	return c, nil
}

// NewWithTarget creates a context on a device, queue and surface owned by
// the host. Destroy releases only what the context created.
func NewWithTarget(t Target, size Size, opts ...Option) (*Context, error) {
	if t.Device == nil || t.Queue == nil || t.Surface == nil {
		return nil, fmt.Errorf("%w: device, queue and surface are required", ErrInvalidTarget)
	}
	return newContext(t.Device, t.Queue, t.Surface, t.Capabilities, gputypes.DefaultLimits(), size, applyOptions(opts))
}

// NewWithProvider creates a context that shares the GPU device of a host
// framework. The provider must expose HAL objects, either through
// HalDevice/HalQueue methods or directly from Device/Queue. The
// provider's surface format is used when it is defined, unless
// WithSurfaceFormat says otherwise.
func NewWithProvider(provider gpucontext.DeviceProvider, surface hal.Surface, size Size, opts ...Option) (*Context, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil DeviceProvider", ErrInvalidTarget)
	}
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}

	format := provider.SurfaceFormat()
	if format != gputypes.TextureFormatUndefined {
		opts = append([]Option{WithSurfaceFormat(format)}, opts...)
	}

	var caps *hal.SurfaceCapabilities
	if adapter, ok := provider.Adapter().(hal.Adapter); ok && adapter != nil && surface != nil {
		caps = adapter.SurfaceCapabilities(surface)
	}
	if caps == nil && format != gputypes.TextureFormatUndefined {
		caps = defaultCapabilities()
		caps.Formats = []gputypes.TextureFormat{format}
	}

	info := provider.AdapterInfo()
	Logger().Info("frameview: using host device", "adapter", info.Name, "type", info.Type)

	return NewWithTarget(Target{Device: device, Queue: queue, Surface: surface, Capabilities: caps}, size, opts...)
}

func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	var dev, q any
	if hp, ok := provider.(halProvider); ok {
		dev, q = hp.HalDevice(), hp.HalQueue()
	} else {
		dev, q = provider.Device(), provider.Queue()
	}
	device, ok := dev.(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: provider device %T is not hal.Device", ErrInvalidTarget, dev)
	}
	queue, ok := q.(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: provider queue %T is not hal.Queue", ErrInvalidTarget, q)
	}
	return device, queue, nil
}

func newContext(
	device hal.Device,
	queue hal.Queue,
	surface hal.Surface,
	caps *hal.SurfaceCapabilities,
	limits gputypes.Limits,
	size Size,
	o options,
) (*Context, error) {
	settings, err := chooseSurface(caps, o)
	if err != nil {
		return nil, err
	}
	if o.limits != nil {
		limits = *o.limits
	}

	c := &Context{
		opts:     o,
		device:   device,
		queue:    queue,
		surface:  surface,
		settings: settings,
		limits:   limits,
		size:     size,
	}

	indexBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: o.label + "_index_buffer",
		Size:  uint64(len(quad.Indices) * 2),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("frameview: create index buffer: %w", err)
	}
	if err := queue.WriteBuffer(indexBuf, 0, quad.IndexBytes()); err != nil {
		device.DestroyBuffer(indexBuf)
		return nil, fmt.Errorf("frameview: write index buffer: %w", err)
	}
	c.indexBuf = indexBuf

	if !size.Empty() {
		if err := c.configureSurface(); err != nil {
			device.DestroyBuffer(indexBuf)
			return nil, fmt.Errorf("frameview: configure surface: %w", err)
		}
	}
	Logger().Info("frameview: context created",
		"size", size,
		"format", settings.format,
		"present_mode", settings.presentMode,
		"alpha_mode", settings.alphaMode)
	return c, nil
}

// Configure records a new drawable size and reconfigures the surface.
// When frame resources exist, only the vertex buffer is rewritten, with
// geometry for the existing frame size inside the new viewport; no GPU
// object is created or destroyed.
//
// Configure never fails. A zero width or height is recorded and the surface
// is left alone until a non-zero size arrives; DrawFrame does nothing in
// between. Surface and vertex failures are logged and retried by the next
// DrawFrame.
func (c *Context) Configure(size Size) {
	if c.destroyed {
		return
	}
	c.size = size
	if size.Empty() {
		Logger().Debug("frameview: zero-area surface, configuration deferred", "size", size)
		return
	}
	if err := c.configureSurface(); err != nil {
		Logger().Warn("frameview: surface configure failed", "size", size, "error", err)
	}
	if c.res != nil {
		if err := c.writeVertices(); err != nil {
			Logger().Warn("frameview: vertex rewrite failed", "size", size, "error", err)
		}
	}
}

func (c *Context) configureSurface() error {
	err := c.surface.Configure(c.device, &hal.SurfaceConfiguration{
		Width:       c.size.Width,
		Height:      c.size.Height,
		Format:      c.settings.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: c.settings.presentMode,
		AlphaMode:   c.settings.alphaMode,
	})
	if err != nil {
		c.configured = false
		return err
	}
	c.configured = true
	c.stats.SurfaceConfigures++
	return nil
}

// writeVertices rewrites the vertex buffer for the current frame and
// viewport sizes. On failure the geometry is marked stale.
func (c *Context) writeVertices() error {
	fs := c.res.frameSize
	verts := quad.Build(fs.Width, fs.Height, c.size.Width, c.size.Height)
	if err := c.queue.WriteBuffer(c.res.vertexBuf, 0, quad.VertexBytes(verts)); err != nil {
		c.staleGeometry = true
		return fmt.Errorf("write vertex buffer: %w", err)
	}
	c.staleGeometry = false
	c.stats.VertexWrites++
	Logger().Debug("frameview: quad geometry",
		"frame", fs,
		"viewport", c.size,
		"left", verts[0].Position[0],
		"top", verts[0].Position[1])
	return nil
}

// DrawFrame pulls at most one frame from src and presents it.
//
// With a zero-area surface nothing is pulled. When src has no frame the
// call succeeds and the last presented image stays on screen. The first
// frame creates the texture at its size together with the pipeline and
// vertex buffer; every later frame must have the same size and is only
// uploaded and drawn.
//
// Errors are *DrawError values; use Classify to decide what the host loop
// should do. DrawFrame never retries.
func (c *Context) DrawFrame(src Source) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if src == nil {
		return contractError("pull frame", ErrNilSource)
	}
	if c.size.Empty() {
		return nil
	}
	if !c.configured {
		if err := c.configureSurface(); err != nil {
			return drawError("configure surface", err)
		}
	}

	f, ok := src.Next()
	if !ok || f == nil {
		c.stats.EmptyPulls++
		return nil
	}
	if err := c.checkFrame(f); err != nil {
		c.stats.RejectedFrames++
		return contractError("validate frame", err)
	}

	if c.res == nil {
		res, err := c.buildResources(f.Size())
		if err != nil {
			return drawError("build resources", err)
		}
		c.res = res
		c.staleGeometry = true
		c.stats.ResourceBuilds++
		Logger().Info("frameview: resources created", "frame", res.frameSize, "texture_format", c.opts.textureFormat)
	}
	if c.staleGeometry {
		if err := c.writeVertices(); err != nil {
			return drawError("write vertices", err)
		}
	}

	if err := c.upload(f); err != nil {
		return drawError("upload frame", err)
	}
	c.stats.Uploads++

	if err := c.render(); err != nil {
		return err
	}
	c.stats.Draws++
	return nil
}

func (c *Context) checkFrame(f Frame) error {
	if err := ValidateFrame(f); err != nil {
		return err
	}
	size := f.Size()
	if c.res != nil && size != c.res.frameSize {
		return fmt.Errorf("%w: texture is %s, frame is %s", ErrFrameSizeMismatch, c.res.frameSize, size)
	}
	if limit := c.limits.MaxTextureDimension2D; limit > 0 && (size.Width > limit || size.Height > limit) {
		return fmt.Errorf("%w: %s exceeds %d", ErrFrameTooLarge, size, limit)
	}
	return nil
}

// render acquires the next surface texture, draws the quad into it,
// submits and presents.
func (c *Context) render() error {
	c.reclaim(false)

	acquired, err := c.surface.AcquireTexture(nil)
	if err != nil {
		return drawError("acquire surface texture", err)
	}
	if acquired == nil || acquired.Texture == nil {
		return drawError("acquire surface texture", hal.ErrNotReady)
	}
	if acquired.Suboptimal {
		Logger().Warn("frameview: suboptimal surface texture", "size", c.size)
	}
	surfaceTex := acquired.Texture

	view, err := c.device.CreateTextureView(surfaceTex, &hal.TextureViewDescriptor{
		Label:         c.opts.label + "_surface_view",
		Format:        c.settings.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.surface.DiscardTexture(surfaceTex)
		return drawError("create surface view", err)
	}

	encoder, cmd, err := c.encode(view)
	if err != nil {
		c.device.DestroyTextureView(view)
		c.surface.DiscardTexture(surfaceTex)
		return drawError("encode", err)
	}

	index, err := c.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		c.device.FreeCommandBuffer(cmd)
		encoder.Destroy()
		c.device.DestroyTextureView(view)
		c.surface.DiscardTexture(surfaceTex)
		return drawError("submit", err)
	}
	c.pending = append(c.pending, inflight{index: index, encoder: encoder, cmd: cmd, view: view})

	if err := c.queue.Present(c.surface, surfaceTex, nil); err != nil {
		return drawError("present", err)
	}
	return nil
}

// encode records one render pass that clears the target and draws the quad.
func (c *Context) encode(target hal.TextureView) (hal.CommandEncoder, hal.CommandBuffer, error) {
	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: c.opts.label + "_encoder",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(c.opts.label + "_frame"); err != nil {
		encoder.Destroy()
		return nil, nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: c.opts.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: c.opts.clearColor,
		}},
	})
	rp.SetPipeline(c.res.pipeline)
	rp.SetBindGroup(0, c.res.bindGroup, nil)
	rp.SetVertexBuffer(0, c.res.vertexBuf, 0)
	rp.SetIndexBuffer(c.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(quad.IndexCount, 1, 0, 0, 0)
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.Destroy()
		return nil, nil, fmt.Errorf("end encoding: %w", err)
	}
	return encoder, cmd, nil
}

// reclaim releases command buffers and surface views of completed
// submissions, or of all submissions when all is set.
func (c *Context) reclaim(all bool) {
	if len(c.pending) == 0 {
		return
	}
	done := c.queue.PollCompleted()
	kept := c.pending[:0]
	for _, p := range c.pending {
		if !all && p.index > done {
			kept = append(kept, p)
			continue
		}
		c.device.FreeCommandBuffer(p.cmd)
		p.encoder.Destroy()
		c.device.DestroyTextureView(p.view)
	}
	clear(c.pending[len(kept):])
	c.pending = kept
}

// waitIdle blocks until the device is idle and releases all submissions.
func (c *Context) waitIdle() {
	if err := c.device.WaitIdle(); err != nil {
		Logger().Warn("frameview: wait idle failed", "error", err)
	}
	c.reclaim(true)
}

// Suspend releases the frame resources, returning the context to
// StateConfigured. The next frame drawn recreates them at its own size.
// The index buffer and surface configuration are kept.
func (c *Context) Suspend() {
	if c.destroyed || c.res == nil {
		return
	}
	c.waitIdle()
	c.res.destroy(c.device)
	c.res = nil
	c.staleGeometry = false
	Logger().Info("frameview: resources released")
}

// Destroy releases every GPU object the context created. When the context
// was built by New it also destroys the device, surface and instance.
// Destroy is idempotent; later DrawFrame calls return ErrDestroyed.
func (c *Context) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.waitIdle()

	if c.res != nil {
		c.res.destroy(c.device)
		c.res = nil
	}
	if c.indexBuf != nil {
		c.device.DestroyBuffer(c.indexBuf)
		c.indexBuf = nil
	}
	if c.configured {
		c.surface.Unconfigure(c.device)
		c.configured = false
	}
	if c.ownsDevice {
		c.device.Destroy()
	}
	if c.ownsSurface {
		c.surface.Destroy()
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
	Logger().Info("frameview: context destroyed")
}

// State returns the lifecycle state.
func (c *Context) State() State {
	switch {
	case c.destroyed:
		return StateUnconfigured
	case c.res != nil:
		return StateResourced
	case c.configured:
		return StateConfigured
	default:
		return StateUnconfigured
	}
}

// Size returns the last size passed to Configure or the constructor.
func (c *Context) Size() Size { return c.size }

// FrameSize returns the size of the frame texture, if it exists.
func (c *Context) FrameSize() (Size, bool) {
	if c.res == nil {
		return Size{}, false
	}
	return c.res.frameSize, true
}

// SurfaceFormat returns the chosen surface format.
func (c *Context) SurfaceFormat() gputypes.TextureFormat { return c.settings.format }

// PresentMode returns the chosen presentation mode.
func (c *Context) PresentMode() gputypes.PresentMode { return c.settings.presentMode }

// Stats returns the activity counters.
func (c *Context) Stats() Stats { return c.stats }
