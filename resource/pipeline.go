// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"
	"reflect"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pipelineObjects holds the objects shared by both pipeline kinds.
// Destroy order is pipeline, layout, bind layout, shader.
type pipelineObjects struct {
	factory    *Factory
	kind       string
	label      string
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
}

// BindLayout returns the layout of bind group 0.
func (p *pipelineObjects) BindLayout() hal.BindGroupLayout { return p.bindLayout }

// Label returns the debug label.
func (p *pipelineObjects) Label() string { return p.label }

// release destroys everything but the pipeline itself. Each object is
// nil-checked to support partial cleanup.
func (p *pipelineObjects) release() {
	device := p.factory.Device()
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// newPipelineObjects creates the shader module, the group 0 bind layout and
// the pipeline layout.
func (f *Factory) newPipelineObjects(kind, label, wgsl string, entries []gputypes.BindGroupLayoutEntry) (*pipelineObjects, error) {
	p := &pipelineObjects{factory: f, kind: kind, label: label}

	shader, err := f.shaderModule(label, wgsl)
	if err != nil {
		return nil, err
	}
	p.shader = shader

	bindLayout, err := f.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("%s: create bind layout: %w", label, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := f.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("%s: create pipeline layout: %w", label, err)
	}
	p.pipeLayout = pipeLayout
	return p, nil
}

// ComputePipelineStateDesc describes a compute pipeline with one bind group.
type ComputePipelineStateDesc struct {
	Label  string
	Shader string
	// EntryPoint defaults to "main".
	EntryPoint string
	Layout     []gputypes.BindGroupLayoutEntry
	// WorkgroupSize is the shader's workgroup size along X, used by Groups.
	WorkgroupSize uint32
}

// Compatible reports whether two descriptions can share one pipeline.
// Labels are ignored.
func (d ComputePipelineStateDesc) Compatible(o ComputePipelineStateDesc) bool {
	d.Label, o.Label = "", ""
	return reflect.DeepEqual(d, o)
}

// ComputePipelineState is a compiled compute pipeline.
type ComputePipelineState struct {
	*pipelineObjects
	pipeline hal.ComputePipeline

	Desc ComputePipelineStateDesc
}

// Raw returns the HAL pipeline, or nil after Destroy.
func (c *ComputePipelineState) Raw() hal.ComputePipeline { return c.pipeline }

// Groups returns the workgroup count covering n invocations.
func (c *ComputePipelineState) Groups(n uint32) uint32 {
	size := c.Desc.WorkgroupSize
	if size == 0 {
		size = 64
	}
	return (n + size - 1) / size
}

// Destroyed reports whether Destroy has been called.
func (c *ComputePipelineState) Destroyed() bool { return c.pipeline == nil }

// Destroy releases the pipeline and its layouts. Safe to call multiple times.
func (c *ComputePipelineState) Destroy() {
	if c.pipeline == nil {
		return
	}
	c.factory.Device().DestroyComputePipeline(c.pipeline)
	c.pipeline = nil
	c.release()
	c.factory.destroyed(c.kind, c.label)
}

// NewComputePipelineState compiles a compute pipeline.
func (f *Factory) NewComputePipelineState(desc ComputePipelineStateDesc) (*ComputePipelineState, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	entry := desc.EntryPoint
	if entry == "" {
		entry = "main"
	}
	objs, err := f.newPipelineObjects("ComputePipelineState", desc.Label, desc.Shader, desc.Layout)
	if err != nil {
		return nil, err
	}
	pipeline, err := f.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   desc.Label,
		Layout:  objs.pipeLayout,
		Compute: hal.ComputeState{Module: objs.shader, EntryPoint: entry},
	})
	if err != nil {
		objs.release()
		return nil, fmt.Errorf("%s: create compute pipeline: %w", desc.Label, err)
	}
	f.created("ComputePipelineState", desc.Label)
	return &ComputePipelineState{pipelineObjects: objs, pipeline: pipeline, Desc: desc}, nil
}

// GraphicsPipelineStateDesc describes a render pipeline with one bind group.
type GraphicsPipelineStateDesc struct {
	Label  string
	Shader string
	// VertexEntry and FragmentEntry default to "vs_main" and "fs_main".
	VertexEntry   string
	FragmentEntry string

	Layout        []gputypes.BindGroupLayoutEntry
	VertexBuffers []gputypes.VertexBufferLayout

	// ColorFormats lists one format per color target. Empty means a
	// depth-only pipeline with no fragment stage.
	ColorFormats []gputypes.TextureFormat
	Blend        *gputypes.BlendState

	// DepthFormat enables depth testing when not Undefined.
	DepthFormat  gputypes.TextureFormat
	DepthWrite   bool
	DepthCompare gputypes.CompareFunction

	Topology    gputypes.PrimitiveTopology
	CullMode    gputypes.CullMode
	SampleCount uint32
}

// Compatible reports whether two descriptions can share one pipeline.
// Labels are ignored.
func (d GraphicsPipelineStateDesc) Compatible(o GraphicsPipelineStateDesc) bool {
	d.Label, o.Label = "", ""
	return reflect.DeepEqual(d, o)
}

// GraphicsPipelineState is a compiled render pipeline.
type GraphicsPipelineState struct {
	*pipelineObjects
	pipeline hal.RenderPipeline

	Desc GraphicsPipelineStateDesc
}

// Raw returns the HAL pipeline, or nil after Destroy.
func (g *GraphicsPipelineState) Raw() hal.RenderPipeline { return g.pipeline }

// Destroyed reports whether Destroy has been called.
func (g *GraphicsPipelineState) Destroyed() bool { return g.pipeline == nil }

// Destroy releases the pipeline and its layouts. Safe to call multiple times.
func (g *GraphicsPipelineState) Destroy() {
	if g.pipeline == nil {
		return
	}
	g.factory.Device().DestroyRenderPipeline(g.pipeline)
	g.pipeline = nil
	g.release()
	g.factory.destroyed(g.kind, g.label)
}

// NewGraphicsPipelineState compiles a render pipeline.
func (f *Factory) NewGraphicsPipelineState(desc GraphicsPipelineStateDesc) (*GraphicsPipelineState, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	if len(desc.ColorFormats) == 0 && desc.DepthFormat == gputypes.TextureFormatUndefined {
		return nil, invalidf("GraphicsPipelineState %q: no color or depth target", desc.Label)
	}

	objs, err := f.newPipelineObjects("GraphicsPipelineState", desc.Label, desc.Shader, desc.Layout)
	if err != nil {
		return nil, err
	}

	pipeline, err := f.device.CreateRenderPipeline(graphicsDescriptor(desc, objs))
	if err != nil {
		objs.release()
		return nil, fmt.Errorf("%s: create render pipeline: %w", desc.Label, err)
	}
	f.created("GraphicsPipelineState", desc.Label)
	return &GraphicsPipelineState{pipelineObjects: objs, pipeline: pipeline, Desc: desc}, nil
}

// graphicsDescriptor expands a description into the HAL descriptor,
// applying defaults for entry points, topology and sample count.
func graphicsDescriptor(desc GraphicsPipelineStateDesc, objs *pipelineObjects) *hal.RenderPipelineDescriptor {
	vsEntry := desc.VertexEntry
	if vsEntry == "" {
		vsEntry = "vs_main"
	}
	fsEntry := desc.FragmentEntry
	if fsEntry == "" {
		fsEntry = "fs_main"
	}
	topology := desc.Topology
	if topology == 0 {
		topology = gputypes.PrimitiveTopologyTriangleList
	}
	samples := desc.SampleCount
	if samples == 0 {
		samples = 1
	}

	hd := &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: objs.pipeLayout,
		Vertex: hal.VertexState{
			Module:     objs.shader,
			EntryPoint: vsEntry,
			Buffers:    desc.VertexBuffers,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: desc.CullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	}

	if len(desc.ColorFormats) > 0 {
		targets := make([]gputypes.ColorTargetState, len(desc.ColorFormats))
		for i, format := range desc.ColorFormats {
			targets[i] = gputypes.ColorTargetState{
				Format:    format,
				Blend:     desc.Blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}
		}
		hd.Fragment = &hal.FragmentState{
			Module:     objs.shader,
			EntryPoint: fsEntry,
			Targets:    targets,
		}
	}

	if desc.DepthFormat != gputypes.TextureFormatUndefined {
		compare := desc.DepthCompare
		if compare == 0 {
			compare = gputypes.CompareFunctionLess
		}
		keep := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		}
		hd.DepthStencil = &hal.DepthStencilState{
			Format:            desc.DepthFormat,
			DepthWriteEnabled: desc.DepthWrite,
			DepthCompare:      compare,
			StencilFront:      keep,
			StencilBack:       keep,
			StencilReadMask:   0xFF,
			StencilWriteMask:  0,
		}
	}
	return hd
}
