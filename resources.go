package frameview

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frameview/internal/quad"
	"github.com/gogpu/frameview/internal/shader"
)

// resources holds the GPU objects that depend on the first frame.
// They are created together and destroyed together.
type resources struct {
	frameSize Size

	texture    hal.Texture
	view       hal.TextureView
	sampler    hal.Sampler
	bindLayout hal.BindGroupLayout
	bindGroup  hal.BindGroup
	pipeLayout hal.PipelineLayout
	shader     hal.ShaderModule
	pipeline   hal.RenderPipeline
	vertexBuf  hal.Buffer
}

// buildResources creates every frame-dependent object for a frame of the
// given size. On failure the objects created so far are destroyed.
func (c *Context) buildResources(size Size) (*resources, error) { //nolint:funlen // one descriptor per GPU object
	r := &resources{frameSize: size}
	ok := false
	defer func() {
		if !ok {
			r.destroy(c.device)
		}
	}()

	label := c.opts.label
	var err error

	r.texture, err = c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label + "_frame_texture",
		Size:          hal.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        c.opts.textureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create frame texture: %w", err)
	}

	r.view, err = c.device.CreateTextureView(r.texture, &hal.TextureViewDescriptor{
		Label:         label + "_frame_view",
		Format:        c.opts.textureFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create frame view: %w", err)
	}

	// Repeat addressing, linear magnification, nearest minification.
	r.sampler, err = c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_frame_sampler",
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("create frame sampler: %w", err)
	}

	// Bind group layout:
	//   Binding 0: frame texture (texture_2d<f32>, fragment)
	//   Binding 1: sampler (filtering, fragment)
	r.bindLayout, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    shader.TextureBinding,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    shader.SamplerBinding,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group layout: %w", err)
	}

	r.bindGroup, err = c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind_group",
		Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: shader.TextureBinding, Resource: gputypes.TextureViewBinding{TextureView: r.view.NativeHandle()}},
			{Binding: shader.SamplerBinding, Resource: gputypes.SamplerBinding{Sampler: r.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	r.pipeLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	r.shader, err = shader.CreateModule(c.device, label+"_quad_shader", c.opts.spirv)
	if err != nil {
		return nil, err
	}

	replace := gputypes.BlendStateReplace()
	r.pipeline, err = c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: shader.VertexEntry,
			Buffers:    quad.Layout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: shader.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    c.settings.format,
					Blend:     &replace,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	r.vertexBuf, err = c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_vertex_buffer",
		Size:  quad.VertexBufferSize,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	ok = true
	return r, nil
}

// destroy releases all resources in reverse creation order.
func (r *resources) destroy(device hal.Device) {
	if r == nil || device == nil {
		return
	}
	if r.vertexBuf != nil {
		device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.pipeline != nil {
		device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.shader != nil {
		device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	if r.pipeLayout != nil {
		device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.bindLayout != nil {
		device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.sampler != nil {
		device.DestroySampler(r.sampler)
		r.sampler = nil
	}
	if r.view != nil {
		device.DestroyTextureView(r.view)
		r.view = nil
	}
	if r.texture != nil {
		device.DestroyTexture(r.texture)
		r.texture = nil
	}
}

// upload writes the frame's pixels into the texture.
func (c *Context) upload(f Frame) error {
	size := c.res.frameSize
	return c.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  c.res.texture,
			MipLevel: 0,
			Aspect:   gputypes.TextureAspectAll,
		},
		f.Pixels(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  size.Width * BytesPerPixel,
			RowsPerImage: size.Height,
		},
		&hal.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: 1},
	)
}
