package passes

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// BackdropSize is the edge of the backdrop texture. Images of other sizes
// are resampled on upload.
const BackdropSize = 256

// Background clears the scene color target and stretches a backdrop image
// over it. The image is uploaded in Init whenever the backdrop texture has
// been (re)built.
type Background struct {
	img image.Image

	// Clear is the clear color drawn under the backdrop.
	Clear gputypes.Color

	sceneColor *rendergraph.Ref[*resource.Texture2D]
	backdrop   *rendergraph.Ref[*resource.Texture2D]
	params     *rendergraph.Ref[*resource.ConstantBuffer]
	pipeline   *rendergraph.Ref[*resource.GraphicsPipelineState]

	uploaded *resource.Texture2D
}

// NewBackground returns a background pass drawing img. A nil image
// selects a vertical gradient.
func NewBackground(img image.Image) *Background {
	if img == nil {
		img = Gradient(BackdropSize, BackdropSize,
			color.RGBA{R: 40, G: 60, B: 110, A: 255},
			color.RGBA{R: 200, G: 190, B: 170, A: 255})
	}
	return &Background{img: img, Clear: gputypes.Color{A: 1}}
}

// Gradient returns a w x h image blending top into bottom.
func Gradient(w, h int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		t := float64(y) / float64(max(h-1, 1))
		c := color.RGBA{
			R: lerp8(top.R, bottom.R, t),
			G: lerp8(top.G, bottom.G, t),
			B: lerp8(top.B, bottom.B, t),
			A: lerp8(top.A, bottom.A, t),
		}
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Name returns "background".
func (p *Background) Name() string { return NameBackground }

// Configure declares the scene color target at the render viewport size,
// the backdrop texture and the pipeline.
func (p *Background) Configure(b *rendergraph.Builder) error {
	w, h := b.RenderViewport().Size()
	var err error
	p.sceneColor, err = b.CreateTexture2D(ResourceSceneColor, resource.Texture2DDesc{
		Label:  ResourceSceneColor,
		Width:  w,
		Height: h,
		Format: SceneColorFormat,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return err
	}
	p.backdrop, err = b.CreateTexture2D("background.image", resource.Texture2DDesc{
		Label:  "background.image",
		Width:  BackdropSize,
		Height: BackdropSize,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return err
	}
	p.params, err = b.CreateConstantBuffer("background.params", resource.ConstantBufferDesc{
		Label: "background.params",
		Size:  16,
	})
	if err != nil {
		return err
	}
	p.pipeline, err = b.CreateGraphicsPipelineState("background.pipeline", resource.GraphicsPipelineStateDesc{
		Label:  "background.pipeline",
		Shader: backgroundShaderWGSL,
		Layout: []gputypes.BindGroupLayoutEntry{
			texture(gputypes.BindGroupLayoutEntry{Binding: 0, Visibility: gputypes.ShaderStageFragment}),
			uniform(gputypes.BindGroupLayoutEntry{Binding: 1, Visibility: gputypes.ShaderStageFragment}),
		},
		ColorFormats: []gputypes.TextureFormat{SceneColorFormat},
	})
	return err
}

// Init uploads the backdrop image into a newly built texture.
func (p *Background) Init(b *rendergraph.Builder) error {
	tex := p.backdrop.Value()
	if tex == p.uploaded {
		return nil
	}
	if err := b.Factory().WriteImage(&tex.Texture, p.img); err != nil {
		return err
	}
	p.uploaded = tex
	rendergraph.Logger().Debug("passes: backdrop uploaded", "bounds", p.img.Bounds().String())
	return nil
}

// Execute clears the scene color and draws the backdrop.
func (p *Background) Execute(ctx rendergraph.RenderContext, _ rendergraph.Scene, _ *rendergraph.Camera, b *rendergraph.Builder) error {
	vp := b.RenderViewport()
	params := make([]byte, 16)
	putFloats(params, vp.Width, vp.Height)
	if err := ctx.WriteBuffer(&p.params.Value().Buffer, 0, params); err != nil {
		return err
	}
	clear := p.Clear
	targets := rendergraph.ColorTargets("background", &clear, p.sceneColor.Value().View())
	return renderPass(ctx, targets, func() error {
		ctx.SetViewport(vp)
		ctx.SetPipeline(p.pipeline.Value())
		if err := ctx.SetBindings(p.backdrop.Value(), p.params.Value()); err != nil {
			return err
		}
		ctx.Draw(fullscreenVertices, 1)
		return nil
	})
}

// Dispose does nothing; the background's objects live in the registry.
func (p *Background) Dispose() {}
