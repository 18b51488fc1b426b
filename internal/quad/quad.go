// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package quad builds the single textured quad the frame context draws.
//
// The quad covers the [-1, 1] clip-space square shrunk on one axis by the
// letterbox margin from package viewport. Only vertex positions depend on the
// frame and viewport sizes; the index list never changes.
package quad

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/frameview/internal/viewport"
)

// VertexStride is the byte stride per vertex in the vertex buffer.
// Layout per vertex:
//
//	position   (vec2<f32>) = 8 bytes (location 0)
//	tex_coords (vec2<f32>) = 8 bytes (location 1)
//
// Total = 16 bytes per vertex.
const VertexStride = 16

// VertexCount is the number of vertices in the quad.
const VertexCount = 4

// VertexBufferSize is the size in bytes of the quad's vertex buffer.
const VertexBufferSize = VertexCount * VertexStride

// Indices are two counter-clockwise triangles: TL, BL, TR and BL, BR, TR.
var Indices = [6]uint16{0, 2, 1, 2, 3, 1}

// IndexCount is len(Indices) as the type DrawIndexed expects.
const IndexCount uint32 = 6

// Vertex is one quad corner.
type Vertex struct {
	Position  [2]float32
	TexCoords [2]float32
}

// Build returns the four corners of the quad for a frame of frameW x frameH
// pixels shown in a viewport of viewW x viewH pixels, in the order
// top-left, top-right, bottom-left, bottom-right.
//
// Aspects are recomputed from the sizes on every call. All four sizes must
// be non-zero.
func Build(frameW, frameH, viewW, viewH uint32) [VertexCount]Vertex {
	frameAspect := float32(frameH) / float32(frameW)
	viewAspect := float32(viewH) / float32(viewW)
	h, v := viewport.Fit(frameAspect, viewAspect).Split()

	left, right := -1+h, 1-h
	top, bottom := 1-v, -1+v

	return [VertexCount]Vertex{
		{Position: [2]float32{left, top}, TexCoords: [2]float32{0, 0}},
		{Position: [2]float32{right, top}, TexCoords: [2]float32{1, 0}},
		{Position: [2]float32{left, bottom}, TexCoords: [2]float32{0, 1}},
		{Position: [2]float32{right, bottom}, TexCoords: [2]float32{1, 1}},
	}
}

// VertexBytes encodes vertices as little-endian f32 values in the layout
// described by VertexStride.
func VertexBytes(vertices [VertexCount]Vertex) []byte {
	buf := make([]byte, VertexBufferSize)
	for i, vert := range vertices {
		off := i * VertexStride
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(vert.Position[0]))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(vert.Position[1]))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(vert.TexCoords[0]))
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(vert.TexCoords[1]))
	}
	return buf
}

// IndexBytes encodes Indices as little-endian uint16 values.
func IndexBytes() []byte {
	buf := make([]byte, len(Indices)*2)
	for i, idx := range Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// Layout returns the vertex buffer layout for the quad pipeline.
func Layout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // tex_coords
			},
		},
	}
}
