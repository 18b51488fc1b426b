package frameview

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// recordingDevice wraps a noop device and counts resource construction.
type recordingDevice struct {
	hal.Device

	created   map[string]int
	destroyed map[string]int

	textures    []hal.TextureDescriptor
	samplers    []hal.SamplerDescriptor
	shaders     []hal.ShaderModuleDescriptor
	pipelines   []hal.RenderPipelineDescriptor
	buffers     []hal.BufferDescriptor
	passes      []*recordingPass
	failTexture error
	waitIdles   int
}

func newRecordingDevice(d hal.Device) *recordingDevice {
	return &recordingDevice{
		Device:    d,
		created:   make(map[string]int),
		destroyed: make(map[string]int),
	}
}

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.created["buffer"]++
	d.buffers = append(d.buffers, *desc)
	return d.Device.CreateBuffer(desc)
}

func (d *recordingDevice) DestroyBuffer(b hal.Buffer) {
	d.destroyed["buffer"]++
	d.Device.DestroyBuffer(b)
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTexture != nil {
		return nil, d.failTexture
	}
	d.created["texture"]++
	d.textures = append(d.textures, *desc)
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) DestroyTexture(t hal.Texture) {
	d.destroyed["texture"]++
	d.Device.DestroyTexture(t)
}

func (d *recordingDevice) CreateTextureView(t hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.created["view"]++
	return d.Device.CreateTextureView(t, desc)
}

func (d *recordingDevice) DestroyTextureView(v hal.TextureView) {
	d.destroyed["view"]++
	d.Device.DestroyTextureView(v)
}

func (d *recordingDevice) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	d.created["sampler"]++
	d.samplers = append(d.samplers, *desc)
	return d.Device.CreateSampler(desc)
}

func (d *recordingDevice) DestroySampler(s hal.Sampler) {
	d.destroyed["sampler"]++
	d.Device.DestroySampler(s)
}

func (d *recordingDevice) CreateBindGroupLayout(desc *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	d.created["bind_layout"]++
	return d.Device.CreateBindGroupLayout(desc)
}

func (d *recordingDevice) DestroyBindGroupLayout(l hal.BindGroupLayout) {
	d.destroyed["bind_layout"]++
	d.Device.DestroyBindGroupLayout(l)
}

func (d *recordingDevice) CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	d.created["bind_group"]++
	return d.Device.CreateBindGroup(desc)
}

func (d *recordingDevice) DestroyBindGroup(g hal.BindGroup) {
	d.destroyed["bind_group"]++
	d.Device.DestroyBindGroup(g)
}

func (d *recordingDevice) CreatePipelineLayout(desc *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	d.created["pipe_layout"]++
	return d.Device.CreatePipelineLayout(desc)
}

func (d *recordingDevice) DestroyPipelineLayout(l hal.PipelineLayout) {
	d.destroyed["pipe_layout"]++
	d.Device.DestroyPipelineLayout(l)
}

func (d *recordingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	d.created["shader"]++
	d.shaders = append(d.shaders, *desc)
	return d.Device.CreateShaderModule(desc)
}

func (d *recordingDevice) DestroyShaderModule(m hal.ShaderModule) {
	d.destroyed["shader"]++
	d.Device.DestroyShaderModule(m)
}

func (d *recordingDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	d.created["pipeline"]++
	d.pipelines = append(d.pipelines, *desc)
	return d.Device.CreateRenderPipeline(desc)
}

func (d *recordingDevice) DestroyRenderPipeline(p hal.RenderPipeline) {
	d.destroyed["pipeline"]++
	d.Device.DestroyRenderPipeline(p)
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	d.created["encoder"]++
	return &recordingEncoder{CommandEncoder: enc, device: d}, nil
}

func (d *recordingDevice) FreeCommandBuffer(cb hal.CommandBuffer) {
	d.destroyed["command_buffer"]++
	d.Device.FreeCommandBuffer(cb)
}

func (d *recordingDevice) WaitIdle() error {
	d.waitIdles++
	return d.Device.WaitIdle()
}

// frameResources are the objects that must be built once per frame size.
var frameResources = []string{"texture", "sampler", "bind_layout", "bind_group", "pipe_layout", "shader", "pipeline"}

type recordingEncoder struct {
	hal.CommandEncoder
	device *recordingDevice
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	p := &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), desc: *desc}
	e.device.passes = append(e.device.passes, p)
	return p
}

func (e *recordingEncoder) Destroy() {
	e.device.destroyed["encoder"]++
	e.CommandEncoder.Destroy()
}

type recordingPass struct {
	hal.RenderPassEncoder
	desc        hal.RenderPassDescriptor
	indexFormat gputypes.IndexFormat
	draws       []uint32
	ended       bool
}

func (p *recordingPass) SetIndexBuffer(b hal.Buffer, f gputypes.IndexFormat, offset uint64) {
	p.indexFormat = f
	p.RenderPassEncoder.SetIndexBuffer(b, f, offset)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.draws = append(p.draws, indexCount)
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *recordingPass) End() {
	p.ended = true
	p.RenderPassEncoder.End()
}

type bufferWrite struct {
	buffer hal.Buffer
	data   []byte
}

// recordingQueue wraps a noop queue, records writes and injects failures.
type recordingQueue struct {
	hal.Queue

	bufferWrites  []bufferWrite
	textureWrites int
	lastLayout    hal.ImageDataLayout
	lastExtent    hal.Extent3D
	submits       int
	presents      int

	failWriteBuffer  error
	failWriteTexture error
	failSubmit       error
	failPresent      error
}

func (q *recordingQueue) WriteBuffer(b hal.Buffer, offset uint64, data []byte) error {
	if q.failWriteBuffer != nil {
		return q.failWriteBuffer
	}
	q.bufferWrites = append(q.bufferWrites, bufferWrite{buffer: b, data: append([]byte(nil), data...)})
	return q.Queue.WriteBuffer(b, offset, data)
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	if q.failWriteTexture != nil {
		return q.failWriteTexture
	}
	q.textureWrites++
	q.lastLayout = *layout
	q.lastExtent = *size
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func (q *recordingQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	if q.failSubmit != nil {
		return 0, q.failSubmit
	}
	q.submits++
	return q.Queue.Submit(cmds)
}

func (q *recordingQueue) Present(s hal.Surface, t hal.SurfaceTexture, damage []image.Rectangle) error {
	if q.failPresent != nil {
		return q.failPresent
	}
	q.presents++
	return q.Queue.Present(s, t, damage)
}

// lastWrite returns the data of the most recent write to b.
func (q *recordingQueue) lastWrite(b hal.Buffer) []byte {
	for i := len(q.bufferWrites) - 1; i >= 0; i-- {
		if q.bufferWrites[i].buffer == b {
			return q.bufferWrites[i].data
		}
	}
	return nil
}

// fakeSurface wraps a noop surface and injects acquire failures.
type fakeSurface struct {
	hal.Surface

	configs      []hal.SurfaceConfiguration
	configureErr error
	acquireErr   error
	suboptimal   bool
	acquires     int
	discards     int
	unconfigures int
}

func (s *fakeSurface) Configure(d hal.Device, cfg *hal.SurfaceConfiguration) error {
	if s.configureErr != nil {
		return s.configureErr
	}
	s.configs = append(s.configs, *cfg)
	return s.Surface.Configure(d, cfg)
}

func (s *fakeSurface) Unconfigure(d hal.Device) {
	s.unconfigures++
	s.Surface.Unconfigure(d)
}

func (s *fakeSurface) AcquireTexture(f hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	s.acquires++
	at, err := s.Surface.AcquireTexture(f)
	if err != nil {
		return nil, err
	}
	at.Suboptimal = s.suboptimal
	return at, nil
}

func (s *fakeSurface) DiscardTexture(t hal.SurfaceTexture) {
	s.discards++
	s.Surface.DiscardTexture(t)
}

type harness struct {
	device  *recordingDevice
	queue   *recordingQueue
	surface *fakeSurface
	caps    *hal.SurfaceCapabilities
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	surface, err := instance.CreateSurface(0, 0)
	if err != nil {
		t.Fatalf("CreateSurface failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return &harness{
		device:  newRecordingDevice(openDev.Device),
		queue:   &recordingQueue{Queue: openDev.Queue},
		surface: &fakeSurface{Surface: surface},
		caps:    adapters[0].Adapter.SurfaceCapabilities(surface),
	}
}

func (h *harness) target() Target {
	return Target{Device: h.device, Queue: h.queue, Surface: h.surface, Capabilities: h.caps}
}

func (h *harness) newContext(t *testing.T, size Size, opts ...Option) *Context {
	t.Helper()
	c, err := NewWithTarget(h.target(), size, opts...)
	if err != nil {
		t.Fatalf("NewWithTarget: %v", err)
	}
	t.Cleanup(c.Destroy)
	return c
}

// solidFrame returns a frame of the given size filled with one color.
func solidFrame(w, h uint32, rgba [4]byte) *PixelFrame {
	size := Size{Width: w, Height: h}
	pix := make([]byte, size.Bytes())
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], rgba[:])
	}
	return NewFrame(size, pix)
}

// countingSource yields the queued frames in order, then nothing.
type countingSource struct {
	frames []Frame
	pulls  int
}

func sourceOf(frames ...Frame) *countingSource {
	return &countingSource{frames: frames}
}

func (s *countingSource) Next() (Frame, bool) {
	s.pulls++
	if len(s.frames) == 0 {
		return nil, false
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, true
}

// repeatSource yields the same frame on every pull.
type repeatSource struct{ f Frame }

func (s repeatSource) Next() (Frame, bool) { return s.f, true }
