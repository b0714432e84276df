// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// lightingWorkgroup is the edge of the lighting shader's 2D workgroup.
const lightingWorkgroup = 8

// Lighting shades the G-buffer with a directional light in a compute pass
// and writes one packed RGBA8 value per render pixel to a structured
// buffer published on SlotLit.
//
// The light is the one published by the shadow pass on SlotLight; without
// a shadow pass the lighting pass uploads a default light of its own.
type Lighting struct {
	// Ambient is the light added regardless of orientation.
	Ambient float32

	gbuffer  *rendergraph.Ref[*resource.GBuffer]
	params   *rendergraph.Ref[*resource.ConstantBuffer]
	lit      *rendergraph.Ref[*resource.StructuredBuffer]
	pipeline *rendergraph.Ref[*resource.ComputePipelineState]
	light    *rendergraph.Ref[*resource.ConstantBuffer]
	slots    *rendergraph.Slots

	// fallback supplies the light constants when no shadow pass publishes
	// them.
	fallback *Shadow
}

// NewLighting returns a lighting pass.
func NewLighting() *Lighting { return &Lighting{Ambient: 0.15} }

// Name returns "lighting".
func (p *Lighting) Name() string { return NameLighting }

// Configure looks up the G-buffer and declares the output buffer and the
// compute pipeline.
func (p *Lighting) Configure(b *rendergraph.Builder) error {
	var err error
	if p.gbuffer, err = b.GetGBuffer(ResourceGBuffer); err != nil {
		return err
	}
	w, h := b.RenderViewport().Size()
	p.lit, err = b.CreateStructuredBuffer(ResourceLit, resource.StructuredBufferDesc{
		Label:  ResourceLit,
		Stride: 4,
		Count:  w * h,
	})
	if err != nil {
		return err
	}
	p.params, err = b.CreateConstantBuffer("lighting.params", resource.ConstantBufferDesc{
		Label: "lighting.params",
		Size:  16,
	})
	if err != nil {
		return err
	}
	p.pipeline, err = b.CreateComputePipelineState("lighting.pipeline", resource.ComputePipelineStateDesc{
		Label:  "lighting.pipeline",
		Shader: lightingShaderWGSL,
		Layout: []gputypes.BindGroupLayoutEntry{
			texture(gputypes.BindGroupLayoutEntry{Binding: 0, Visibility: gputypes.ShaderStageCompute}),
			texture(gputypes.BindGroupLayoutEntry{Binding: 1, Visibility: gputypes.ShaderStageCompute}),
			uniform(gputypes.BindGroupLayoutEntry{Binding: 2, Visibility: gputypes.ShaderStageCompute}),
			uniform(gputypes.BindGroupLayoutEntry{Binding: 3, Visibility: gputypes.ShaderStageCompute}),
			storage(gputypes.BindGroupLayoutEntry{Binding: 4, Visibility: gputypes.ShaderStageCompute}, false),
		},
		WorkgroupSize: lightingWorkgroup,
	})
	if err != nil {
		return err
	}
	p.slots = b.Slots()
	rendergraph.Publish(p.slots, SlotLit, p.lit)
	return nil
}

// Init binds the shadow pass's light, or declares a fallback light buffer
// when no pass published one. It runs after every pass configured, so the
// shadow pass may come later in the frame order.
func (p *Lighting) Init(b *rendergraph.Builder) error {
	if light, ok := rendergraph.Lookup[*resource.ConstantBuffer](b.Slots(), SlotLight); ok {
		p.light = light
		p.fallback = nil
		return nil
	}
	var err error
	p.light, err = b.CreateConstantBuffer("lighting.light", resource.ConstantBufferDesc{
		Label: "lighting.light",
		Size:  LightConstantsSize,
	})
	if err != nil {
		return err
	}
	if p.fallback == nil {
		p.fallback = NewShadow(1)
	}
	rendergraph.Logger().Debug("passes: lighting without a shadow pass, using default light")
	return nil
}

// Execute dispatches the lighting shader over the render viewport.
func (p *Lighting) Execute(ctx rendergraph.RenderContext, _ rendergraph.Scene, _ *rendergraph.Camera, _ *rendergraph.Builder) error {
	if p.fallback != nil {
		if err := ctx.WriteBuffer(&p.light.Value().Buffer, 0, p.fallback.LightBytes()); err != nil {
			return err
		}
	}
	gb := p.gbuffer.Value()
	w, h := gb.Width(), gb.Height()
	params := make([]byte, 16)
	putUints(params, w, h)
	putFloats(params[8:], p.Ambient)
	if err := ctx.WriteBuffer(&p.params.Value().Buffer, 0, params); err != nil {
		return err
	}
	bindings := []resource.Binder{
		gb.Target(0),
		gb.Target(1),
		p.light.Value(),
		p.params.Value(),
		p.lit.Value(),
	}
	return ctx.Dispatch(p.pipeline.Value(), bindings,
		groups(w, lightingWorkgroup), groups(h, lightingWorkgroup), 1)
}

// Dispose withdraws the lit buffer publication.
func (p *Lighting) Dispose() {
	if p.slots != nil {
		p.slots.ClearIf(SlotLit, p.lit)
	}
}
