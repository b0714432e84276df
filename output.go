package rendergraph

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph/resource"
)

// OutputTarget is the final image the graph renders into, typically a
// window surface.
type OutputTarget interface {
	Width() uint32
	Height() uint32
	Format() gputypes.TextureFormat

	// View returns the view to render into this frame.
	View() hal.TextureView
}

// TextureOutput renders into an offscreen texture.
type TextureOutput struct {
	Texture *resource.Texture2D
}

// Width returns the texture width.
func (o TextureOutput) Width() uint32 { return o.Texture.Width() }

// Height returns the texture height.
func (o TextureOutput) Height() uint32 { return o.Texture.Height() }

// Format returns the texture format.
func (o TextureOutput) Format() gputypes.TextureFormat { return o.Texture.Format() }

// View returns the texture view.
func (o TextureOutput) View() hal.TextureView { return o.Texture.View() }

// SurfaceOutput renders into a surface view acquired by the host each frame.
type SurfaceOutput struct {
	width, height uint32
	format        gputypes.TextureFormat
	view          hal.TextureView
}

// NewSurfaceOutput returns an output of the given size and format. The
// host sets the frame's view with SetView before executing the graph.
func NewSurfaceOutput(width, height uint32, format gputypes.TextureFormat) *SurfaceOutput {
	return &SurfaceOutput{width: width, height: height, format: format}
}

// Width returns the surface width.
func (o *SurfaceOutput) Width() uint32 { return o.width }

// Height returns the surface height.
func (o *SurfaceOutput) Height() uint32 { return o.height }

// Format returns the surface format.
func (o *SurfaceOutput) Format() gputypes.TextureFormat { return o.format }

// View returns the view set for the current frame.
func (o *SurfaceOutput) View() hal.TextureView { return o.view }

// SetView sets the view for the current frame.
func (o *SurfaceOutput) SetView(v hal.TextureView) { o.view = v }

// Resize updates the surface extent.
func (o *SurfaceOutput) Resize(width, height uint32) {
	o.width, o.height = width, height
}

// NewProviderOutput returns a surface output using the surface format of
// a host device provider.
func NewProviderOutput(provider gpucontext.DeviceProvider, width, height uint32) *SurfaceOutput {
	return NewSurfaceOutput(width, height, provider.SurfaceFormat())
}
