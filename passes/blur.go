package passes

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// DefaultBlurRadius is the blur radius in texels used by the registered
// blur pass.
const DefaultBlurRadius = 4

// Blur applies a separable box blur to the scene color target: a
// horizontal pass into a scratch target, then a vertical pass into
// ResourceBlurred.
//
// The scratch target is declared shareable, so any other pass declaring a
// compatible shareable texture receives the same object. The two direction
// constant buffers are private to the pass: built from the builder's
// factory and released by Dispose.
type Blur struct {
	radius int

	source     *rendergraph.Ref[*resource.Texture2D]
	scratch    *rendergraph.Ref[*resource.Texture2D]
	output     *rendergraph.Ref[*resource.Texture2D]
	horizontal *resource.ConstantBuffer
	vertical   *resource.ConstantBuffer
	pipeline   *rendergraph.Ref[*resource.GraphicsPipelineState]
}

// NewBlur returns a blur pass of the given radius; negative radii are
// treated as zero.
func NewBlur(radius int) *Blur {
	return &Blur{radius: max(radius, 0)}
}

// Name returns "blur".
func (p *Blur) Name() string { return NameBlur }

// Radius returns the blur radius in texels.
func (p *Blur) Radius() int { return p.radius }

// blurTarget describes a blur target matching the source extent.
func blurTarget(label string, w, h uint32) resource.Texture2DDesc {
	return resource.Texture2DDesc{
		Label:  label,
		Width:  w,
		Height: h,
		Format: SceneColorFormat,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	}
}

// Configure looks up the scene color, declares the targets and the
// pipeline, and builds the direction constants if Dispose released them.
func (p *Blur) Configure(b *rendergraph.Builder) error {
	var err error
	if p.source, err = b.GetTexture2D(ResourceSceneColor); err != nil {
		return err
	}
	src, err := p.source.Resolve()
	if err != nil {
		return err
	}
	w, h := src.Width(), src.Height()

	p.scratch, err = b.CreateTexture2D("blur.scratch", blurTarget("blur.scratch", w, h), rendergraph.FlagShareable)
	if err != nil {
		return err
	}
	if p.output, err = b.CreateTexture2D(ResourceBlurred, blurTarget(ResourceBlurred, w, h)); err != nil {
		return err
	}
	if p.horizontal == nil {
		if p.horizontal, err = b.Factory().NewConstantBuffer(resource.ConstantBufferDesc{Label: "blur.horizontal", Size: 16}); err != nil {
			return err
		}
	}
	if p.vertical == nil {
		if p.vertical, err = b.Factory().NewConstantBuffer(resource.ConstantBufferDesc{Label: "blur.vertical", Size: 16}); err != nil {
			return err
		}
	}
	p.pipeline, err = b.CreateGraphicsPipelineState("blur.pipeline", resource.GraphicsPipelineStateDesc{
		Label:  "blur.pipeline",
		Shader: blurShaderWGSL,
		Layout: []gputypes.BindGroupLayoutEntry{
			texture(gputypes.BindGroupLayoutEntry{Binding: 0, Visibility: gputypes.ShaderStageFragment}),
			uniform(gputypes.BindGroupLayoutEntry{Binding: 1, Visibility: gputypes.ShaderStageFragment}),
		},
		ColorFormats: []gputypes.TextureFormat{SceneColorFormat},
	})
	return err
}

// Execute records the horizontal and vertical passes.
func (p *Blur) Execute(ctx rendergraph.RenderContext, _ rendergraph.Scene, _ *rendergraph.Camera, _ *rendergraph.Builder) error {
	steps := []struct {
		label  string
		dx, dy float32
		src    *resource.Texture2D
		dst    *resource.Texture2D
		params *resource.ConstantBuffer
	}{
		{"blur.horizontal", 1, 0, p.source.Value(), p.scratch.Value(), p.horizontal},
		{"blur.vertical", 0, 1, p.scratch.Value(), p.output.Value(), p.vertical},
	}
	for _, s := range steps {
		params := make([]byte, 16)
		putFloats(params, s.dx, s.dy, float32(p.radius))
		if err := ctx.WriteBuffer(&s.params.Buffer, 0, params); err != nil {
			return err
		}
		targets := rendergraph.ColorTargets(s.label, nil, s.dst.View())
		err := renderPass(ctx, targets, func() error {
			ctx.SetViewport(rendergraph.NewViewport(s.dst.Width(), s.dst.Height()))
			ctx.SetPipeline(p.pipeline.Value())
			if err := ctx.SetBindings(s.src, s.params); err != nil {
				return err
			}
			ctx.Draw(fullscreenVertices, 1)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Dispose destroys the direction constants. Safe to call multiple times.
func (p *Blur) Dispose() {
	if p.horizontal != nil {
		p.horizontal.Destroy()
		p.horizontal = nil
	}
	if p.vertical != nil {
		p.vertical.Destroy()
		p.vertical = nil
	}
}
