package passes

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// Composite blends the lit pixels over the blurred backdrop into the graph
// output, upscaling from the render viewport to the output viewport.
//
// It may be ordered before the passes producing its inputs: Configure
// declares them as forward references and Init checks they were created.
// Without a blur pass the unblurred scene color is used as the backdrop.
type Composite struct {
	// Exposure scales the final color.
	Exposure float32

	lit      *rendergraph.Ref[*resource.StructuredBuffer]
	blurred  *rendergraph.Ref[*resource.Texture2D]
	backdrop *rendergraph.Ref[*resource.Texture2D]
	params   *rendergraph.Ref[*resource.ConstantBuffer]
	pipeline *rendergraph.Ref[*resource.GraphicsPipelineState]
}

// NewComposite returns a composite pass.
func NewComposite() *Composite { return &Composite{Exposure: 1} }

// Name returns "composite".
func (p *Composite) Name() string { return NameComposite }

// Configure references the inputs and declares a pipeline for the output
// format.
func (p *Composite) Configure(b *rendergraph.Builder) error {
	out := b.Output()
	if out == nil {
		return ErrNoOutput
	}
	var err error
	if p.lit, err = b.GetOrAddStructuredBuffer(ResourceLit); err != nil {
		return err
	}
	if p.blurred, err = b.GetOrAddTexture2D(ResourceBlurred); err != nil {
		return err
	}
	p.params, err = b.CreateConstantBuffer("composite.params", resource.ConstantBufferDesc{
		Label: "composite.params",
		Size:  16,
	})
	if err != nil {
		return err
	}
	p.pipeline, err = b.CreateGraphicsPipelineState("composite.pipeline", resource.GraphicsPipelineStateDesc{
		Label:  "composite.pipeline",
		Shader: compositeShaderWGSL,
		Layout: []gputypes.BindGroupLayoutEntry{
			storage(gputypes.BindGroupLayoutEntry{Binding: 0, Visibility: gputypes.ShaderStageFragment}, true),
			texture(gputypes.BindGroupLayoutEntry{Binding: 1, Visibility: gputypes.ShaderStageFragment}),
			uniform(gputypes.BindGroupLayoutEntry{Binding: 2, Visibility: gputypes.ShaderStageFragment}),
		},
		ColorFormats: []gputypes.TextureFormat{out.Format()},
	})
	return err
}

// Init checks the forward references were created and picks the backdrop.
func (p *Composite) Init(b *rendergraph.Builder) error {
	if _, err := p.lit.Resolve(); err != nil {
		return fmt.Errorf("composite: lit pixels: %w", err)
	}
	if p.blurred.Created() {
		p.backdrop = p.blurred
		return nil
	}
	scene, err := b.GetTexture2D(ResourceSceneColor)
	if err != nil {
		return fmt.Errorf("composite: backdrop: %w", err)
	}
	if _, err := scene.Resolve(); err != nil {
		return fmt.Errorf("composite: backdrop: %w", err)
	}
	p.backdrop = scene
	return nil
}

// Execute draws a fullscreen triangle into the output.
func (p *Composite) Execute(ctx rendergraph.RenderContext, _ rendergraph.Scene, _ *rendergraph.Camera, b *rendergraph.Builder) error {
	out := b.Output()
	if out == nil || out.View() == nil {
		return ErrNoOutput
	}
	renderW, renderH := b.RenderViewport().Size()
	outVP := b.OutputViewport()
	scale := float32(1)
	if outVP.Width > 0 {
		scale = float32(renderW) / outVP.Width
	}
	params := make([]byte, 16)
	putUints(params, renderW, renderH)
	putFloats(params[8:], scale, p.Exposure)
	if err := ctx.WriteBuffer(&p.params.Value().Buffer, 0, params); err != nil {
		return err
	}

	targets := rendergraph.ColorTargets("composite", rendergraph.ClearColor(0, 0, 0, 1), out.View())
	return renderPass(ctx, targets, func() error {
		ctx.SetViewport(outVP)
		ctx.SetPipeline(p.pipeline.Value())
		if err := ctx.SetBindings(p.lit.Value(), p.backdrop.Value(), p.params.Value()); err != nil {
			return err
		}
		ctx.Draw(fullscreenVertices, 1)
		return nil
	})
}

// Dispose does nothing; the composite's objects live in the registry.
func (p *Composite) Dispose() {}
