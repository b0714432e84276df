package passes

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// Geometry draws the geometry queue into a two-target G-buffer (albedo,
// normal) with a depth buffer, both at the render viewport size.
type Geometry struct {
	gbuffer  *rendergraph.Ref[*resource.GBuffer]
	depth    *rendergraph.Ref[*resource.DepthStencilBuffer]
	camera   *rendergraph.Ref[*resource.ConstantBuffer]
	pipeline *rendergraph.Ref[*resource.GraphicsPipelineState]
	slots    *rendergraph.Slots
}

// NewGeometry returns a geometry pass.
func NewGeometry() *Geometry { return &Geometry{} }

// Name returns "geometry".
func (p *Geometry) Name() string { return NameGeometry }

// cameraDesc is the description every pass uses for the shared camera
// constants, so declaring it from several passes yields one buffer.
func cameraDesc() resource.ConstantBufferDesc {
	return resource.ConstantBufferDesc{Label: ResourceCamera, Size: rendergraph.CameraConstantsSize}
}

// Configure declares the G-buffer, depth, camera constants and pipeline.
func (p *Geometry) Configure(b *rendergraph.Builder) error {
	w, h := b.RenderViewport().Size()
	var err error
	p.gbuffer, err = b.CreateGBuffer(ResourceGBuffer, resource.GBufferDesc{
		Label:   ResourceGBuffer,
		Width:   w,
		Height:  h,
		Formats: []gputypes.TextureFormat{AlbedoFormat, NormalFormat},
		Usage:   gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return err
	}
	p.depth, err = b.CreateDepthStencilBuffer(ResourceDepth, resource.DepthStencilBufferDesc{
		Label:  ResourceDepth,
		Width:  w,
		Height: h,
	})
	if err != nil {
		return err
	}
	if p.camera, err = b.CreateConstantBuffer(ResourceCamera, cameraDesc()); err != nil {
		return err
	}
	p.pipeline, err = b.CreateGraphicsPipelineState("geometry.pipeline", resource.GraphicsPipelineStateDesc{
		Label:  "geometry.pipeline",
		Shader: geometryShaderWGSL,
		Layout: []gputypes.BindGroupLayoutEntry{
			uniform(gputypes.BindGroupLayoutEntry{Binding: 0, Visibility: gputypes.ShaderStageVertex}),
		},
		ColorFormats: []gputypes.TextureFormat{AlbedoFormat, NormalFormat},
		DepthFormat:  resource.DefaultDepthFormat,
		DepthWrite:   true,
		DepthCompare: gputypes.CompareFunctionLess,
		Topology:     gputypes.PrimitiveTopologyTriangleStrip,
	})
	if err != nil {
		return err
	}
	p.slots = b.Slots()
	rendergraph.Publish(p.slots, SlotGBuffer, p.gbuffer)
	return nil
}

// Execute fills the G-buffer from the geometry queue.
func (p *Geometry) Execute(ctx rendergraph.RenderContext, scene rendergraph.Scene, cam *rendergraph.Camera, b *rendergraph.Builder) error {
	if err := writeCamera(ctx, p.camera, cam); err != nil {
		return err
	}
	targets := rendergraph.ColorTargets("geometry", rendergraph.ClearColor(0, 0, 0, 0), p.gbuffer.Value().Views()...)
	targets.Depth = &rendergraph.DepthAttachment{
		View:       p.depth.Value().View(),
		ClearDepth: rendergraph.ClearDepth(1),
	}
	return renderPass(ctx, targets, func() error {
		ctx.SetViewport(b.RenderViewport())
		ctx.SetPipeline(p.pipeline.Value())
		if err := ctx.SetBindings(p.camera.Value()); err != nil {
			return err
		}
		return queueOf(scene, rendergraph.QueueGeometry).Draw(ctx, cam)
	})
}

// Dispose withdraws the G-buffer publication.
func (p *Geometry) Dispose() {
	if p.slots != nil {
		p.slots.ClearIf(SlotGBuffer, p.gbuffer)
	}
}
