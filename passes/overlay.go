package passes

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// Overlay draws the overlay queue over the graph output with premultiplied
// alpha blending. It shares the camera constants with the geometry pass.
type Overlay struct {
	// Color is the straight-alpha color of overlay quads.
	Color mgl32.Vec4

	camera   *rendergraph.Ref[*resource.ConstantBuffer]
	style    *rendergraph.Ref[*resource.ConstantBuffer]
	pipeline *rendergraph.Ref[*resource.GraphicsPipelineState]
}

// NewOverlay returns an overlay pass.
func NewOverlay() *Overlay {
	return &Overlay{Color: mgl32.Vec4{1, 1, 1, 0.5}}
}

// Name returns "overlay".
func (p *Overlay) Name() string { return NameOverlay }

// Configure declares the camera and style constants and a blended
// pipeline for the output format.
func (p *Overlay) Configure(b *rendergraph.Builder) error {
	out := b.Output()
	if out == nil {
		return ErrNoOutput
	}
	var err error
	if p.camera, err = b.CreateConstantBuffer(ResourceCamera, cameraDesc()); err != nil {
		return err
	}
	if p.style, err = b.CreateConstantBuffer("overlay.style", resource.ConstantBufferDesc{Label: "overlay.style", Size: 16}); err != nil {
		return err
	}
	blend := gputypes.BlendStatePremultiplied()
	p.pipeline, err = b.CreateGraphicsPipelineState("overlay.pipeline", resource.GraphicsPipelineStateDesc{
		Label:  "overlay.pipeline",
		Shader: overlayShaderWGSL,
		Layout: []gputypes.BindGroupLayoutEntry{
			uniform(gputypes.BindGroupLayoutEntry{Binding: 0, Visibility: gputypes.ShaderStageVertex}),
			uniform(gputypes.BindGroupLayoutEntry{Binding: 1, Visibility: gputypes.ShaderStageFragment}),
		},
		ColorFormats: []gputypes.TextureFormat{out.Format()},
		Blend:        &blend,
		Topology:     gputypes.PrimitiveTopologyTriangleStrip,
	})
	return err
}

// Execute draws the overlay queue. An empty queue records nothing.
func (p *Overlay) Execute(ctx rendergraph.RenderContext, scene rendergraph.Scene, cam *rendergraph.Camera, b *rendergraph.Builder) error {
	queue := queueOf(scene, rendergraph.QueueOverlay)
	if queue.Len() == 0 {
		return nil
	}
	out := b.Output()
	if out == nil || out.View() == nil {
		return ErrNoOutput
	}
	if err := writeCamera(ctx, p.camera, cam); err != nil {
		return err
	}
	style := make([]byte, 16)
	putFloats(style, p.Color[0], p.Color[1], p.Color[2], p.Color[3])
	if err := ctx.WriteBuffer(&p.style.Value().Buffer, 0, style); err != nil {
		return err
	}
	return renderPass(ctx, rendergraph.ColorTargets("overlay", nil, out.View()), func() error {
		ctx.SetViewport(b.OutputViewport())
		ctx.SetPipeline(p.pipeline.Value())
		if err := ctx.SetBindings(p.camera.Value(), p.style.Value()); err != nil {
			return err
		}
		return queue.Draw(ctx, cam)
	})
}

// Dispose does nothing; the overlay's objects live in the registry.
func (p *Overlay) Dispose() {}
