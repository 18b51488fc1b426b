// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader holds the WGSL program for the frame quad and the
// helpers that turn it into a HAL shader module.
package shader

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/quad.wgsl
var quadSource string

// Entry points of the quad program.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Binding slots in bind group 0.
const (
	TextureBinding uint32 = 0
	SamplerBinding uint32 = 1
)

// ErrEmptySource is returned when the embedded WGSL source is empty.
var ErrEmptySource = errors.New("shader: quad source is empty")

// WGSL returns the quad program source.
func WGSL() string {
	return quadSource
}

// CompileSPIRV compiles WGSL source to SPIR-V words.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Source returns the quad program as a HAL shader source. With spirv set
// the WGSL is compiled ahead of time by naga; otherwise the backend
// receives WGSL text.
func Source(spirv bool) (hal.ShaderSource, error) {
	if quadSource == "" {
		return hal.ShaderSource{}, ErrEmptySource
	}
	if !spirv {
		return hal.ShaderSource{WGSL: quadSource}, nil
	}
	words, err := CompileSPIRV(quadSource)
	if err != nil {
		return hal.ShaderSource{}, err
	}
	return hal.ShaderSource{SPIRV: words}, nil
}

// CreateModule creates the quad shader module on device.
func CreateModule(device hal.Device, label string, spirv bool) (hal.ShaderModule, error) {
	src, err := Source(spirv)
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w", label, err)
	}
	return module, nil
}
