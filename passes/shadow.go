// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// DefaultShadowMapSize is the shadow map edge used when none is given.
const DefaultShadowMapSize = 1024

// LightConstantsSize is the byte size of the light constants: the light
// view-projection matrix, the direction and the color, each vec4 aligned.
const LightConstantsSize = 96

// Shadow renders the shadow queue from a directional light into a square
// depth map. It publishes the map on SlotShadowMap and the light
// constants on SlotLight.
type Shadow struct {
	size uint32

	// Direction points from the light toward the scene.
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	// Extent is the half-width of the light's orthographic frustum.
	Extent float32

	shadowMap *rendergraph.Ref[*resource.DepthStencilBuffer]
	light     *rendergraph.Ref[*resource.ConstantBuffer]
	pipeline  *rendergraph.Ref[*resource.GraphicsPipelineState]
	slots     *rendergraph.Slots
}

// NewShadow returns a shadow pass with a size x size map. Zero selects
// DefaultShadowMapSize.
func NewShadow(size uint32) *Shadow {
	if size == 0 {
		size = DefaultShadowMapSize
	}
	return &Shadow{
		size:      size,
		Direction: mgl32.Vec3{-0.4, -1, -0.3},
		Color:     mgl32.Vec3{1, 0.95, 0.9},
		Extent:    10,
	}
}

// Name returns "shadow".
func (p *Shadow) Name() string { return NameShadow }

// Size returns the shadow map edge in texels.
func (p *Shadow) Size() uint32 { return p.size }

// Configure declares the shadow map, the light constants and the
// depth-only pipeline.
func (p *Shadow) Configure(b *rendergraph.Builder) error {
	var err error
	p.shadowMap, err = b.CreateDepthStencilBuffer(ResourceShadowMap, resource.DepthStencilBufferDesc{
		Label:  ResourceShadowMap,
		Width:  p.size,
		Height: p.size,
	})
	if err != nil {
		return err
	}
	p.light, err = b.CreateConstantBuffer("shadow.light", resource.ConstantBufferDesc{
		Label: "shadow.light",
		Size:  LightConstantsSize,
	})
	if err != nil {
		return err
	}
	p.pipeline, err = b.CreateGraphicsPipelineState("shadow.pipeline", resource.GraphicsPipelineStateDesc{
		Label:  "shadow.pipeline",
		Shader: shadowShaderWGSL,
		Layout: []gputypes.BindGroupLayoutEntry{
			uniform(gputypes.BindGroupLayoutEntry{Binding: 0, Visibility: gputypes.ShaderStageVertex}),
		},
		DepthFormat:  resource.DefaultDepthFormat,
		DepthWrite:   true,
		DepthCompare: gputypes.CompareFunctionLess,
		Topology:     gputypes.PrimitiveTopologyTriangleStrip,
	})
	if err != nil {
		return err
	}

	p.slots = b.Slots()
	rendergraph.Publish(p.slots, SlotShadowMap, p.shadowMap)
	rendergraph.Publish(p.slots, SlotLight, p.light)
	return nil
}

// LightMatrix returns the light view-projection matrix.
func (p *Shadow) LightMatrix() mgl32.Mat4 {
	dir := p.Direction.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if abs32(dir.Dot(up)) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	eye := dir.Mul(-2 * p.Extent)
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, up)
	proj := mgl32.Ortho(-p.Extent, p.Extent, -p.Extent, p.Extent, 0.1, 4*p.Extent)
	return proj.Mul4(view)
}

// LightBytes returns the light constants uploaded each frame.
func (p *Shadow) LightBytes() []byte {
	buf := make([]byte, LightConstantsSize)
	rendergraph.PutMat4(buf[0:64], p.LightMatrix())
	dir := p.Direction.Normalize()
	putFloats(buf[64:], dir[0], dir[1], dir[2], 0, p.Color[0], p.Color[1], p.Color[2], 1)
	return buf
}

// Execute renders the shadow queue into the cleared map.
func (p *Shadow) Execute(ctx rendergraph.RenderContext, scene rendergraph.Scene, cam *rendergraph.Camera, _ *rendergraph.Builder) error {
	if err := ctx.WriteBuffer(&p.light.Value().Buffer, 0, p.LightBytes()); err != nil {
		return err
	}
	targets := rendergraph.RenderTargets{
		Label: "shadow",
		Depth: &rendergraph.DepthAttachment{
			View:       p.shadowMap.Value().View(),
			ClearDepth: rendergraph.ClearDepth(1),
		},
	}
	return renderPass(ctx, targets, func() error {
		ctx.SetViewport(rendergraph.NewViewport(p.size, p.size))
		ctx.SetPipeline(p.pipeline.Value())
		if err := ctx.SetBindings(p.light.Value()); err != nil {
			return err
		}
		return queueOf(scene, rendergraph.QueueShadow).Draw(ctx, cam)
	})
}

// Dispose withdraws the pass's slot publications.
func (p *Shadow) Dispose() {
	if p.slots == nil {
		return
	}
	p.slots.ClearIf(SlotShadowMap, p.shadowMap)
	p.slots.ClearIf(SlotLight, p.light)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
