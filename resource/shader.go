// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileSPIRV compiles WGSL source to SPIR-V words.
func CompileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// shaderModule creates a module from WGSL source in the configured format.
// Compiled SPIR-V is cached per source, so rebuilding a pipeline after a
// resize does not recompile.
func (f *Factory) shaderModule(label, wgsl string) (hal.ShaderModule, error) {
	if wgsl == "" {
		return nil, invalidf("%s: empty shader source", label)
	}

	source := hal.ShaderSource{WGSL: wgsl}
	if f.config.ShaderFormat == ShaderSPIRV {
		words, err := f.spirv.GetOrCreate(wgsl, func() ([]uint32, error) {
			f.stats.Compiled++
			return CompileSPIRV(wgsl)
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		source = hal.ShaderSource{SPIRV: words}
	}

	module, err := f.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: create shader module: %w", label, err)
	}
	return module, nil
}
