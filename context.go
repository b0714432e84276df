package rendergraph

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph/resource"
)

// RenderContext records GPU work for one frame. Passes use it only inside
// Execute. Implementations are provided by the host (see package halctx).
type RenderContext interface {
	// BeginRenderPass starts a render pass on the given targets.
	BeginRenderPass(targets RenderTargets) error

	// EndRenderPass ends the current render pass.
	EndRenderPass() error

	// SetViewport sets the viewport of the current render pass.
	SetViewport(vp Viewport)

	// SetPipeline binds a graphics pipeline to the current render pass.
	SetPipeline(p *resource.GraphicsPipelineState)

	// SetBindings binds objects to bind group 0 of the current pipeline,
	// one binding index per object in order.
	SetBindings(bindings ...resource.Binder) error

	// Draw draws vertexCount vertices of instanceCount instances.
	Draw(vertexCount, instanceCount uint32)

	// Dispatch runs a compute pipeline with the given bindings.
	Dispatch(p *resource.ComputePipelineState, bindings []resource.Binder, x, y, z uint32) error

	// WriteBuffer uploads data into a buffer before the frame's commands run.
	WriteBuffer(b *resource.Buffer, offset uint64, data []byte) error
}

// RenderTargets lists the attachments of a render pass.
type RenderTargets struct {
	Label  string
	Colors []ColorAttachment
	Depth  *DepthAttachment
}

// ColorAttachment is one color target.
type ColorAttachment struct {
	View hal.TextureView
	// Clear, when set, clears the target; otherwise it is loaded.
	Clear *gputypes.Color
}

// DepthAttachment is a depth/stencil target.
type DepthAttachment struct {
	View hal.TextureView
	// ClearDepth, when set, clears depth to the value; otherwise it is loaded.
	ClearDepth *float32
}

// ClearColor returns a pointer to c, for ColorAttachment.Clear.
func ClearColor(r, g, b, a float64) *gputypes.Color {
	return &gputypes.Color{R: r, G: g, B: b, A: a}
}

// ClearDepth returns a pointer to d, for DepthAttachment.ClearDepth.
func ClearDepth(d float32) *float32 {
	return &d
}

// ColorTargets returns targets writing to views, cleared to clear when non-nil.
func ColorTargets(label string, clear *gputypes.Color, views ...hal.TextureView) RenderTargets {
	rt := RenderTargets{Label: label, Colors: make([]ColorAttachment, len(views))}
	for i, v := range views {
		rt.Colors[i] = ColorAttachment{View: v, Clear: clear}
	}
	return rt
}
