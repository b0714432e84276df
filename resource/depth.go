package resource

import "github.com/gogpu/gputypes"

// DefaultDepthFormat is used when a DepthStencilBufferDesc has no format.
const DefaultDepthFormat = gputypes.TextureFormatDepth24PlusStencil8

// DepthStencilBufferDesc describes a depth/stencil attachment.
type DepthStencilBufferDesc struct {
	Label       string
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	SampleCount uint32
	Usage       gputypes.TextureUsage
}

// Compatible reports whether two descriptions can share one buffer.
// Labels are ignored.
func (d DepthStencilBufferDesc) Compatible(o DepthStencilBufferDesc) bool {
	d.Label, o.Label = "", ""
	return d == o
}

// DepthStencilBuffer is a depth/stencil attachment texture.
type DepthStencilBuffer struct {
	Texture
	Desc DepthStencilBufferDesc
}

// HasStencil reports whether the format carries a stencil aspect.
func (d *DepthStencilBuffer) HasStencil() bool {
	return d.format == gputypes.TextureFormatDepth24PlusStencil8
}

// NewDepthStencilBuffer creates a depth/stencil attachment. A zero format
// selects DefaultDepthFormat; a zero usage selects render attachment plus
// texture binding, so shadow maps can be sampled.
func (f *Factory) NewDepthStencilBuffer(desc DepthStencilBufferDesc) (*DepthStencilBuffer, error) {
	format := desc.Format
	if format == gputypes.TextureFormatUndefined {
		format = DefaultDepthFormat
	}
	tex, err := f.newTexture(textureSpec{
		kind:      "DepthStencilBuffer",
		label:     desc.Label,
		dimension: gputypes.TextureDimension2D,
		width:     desc.Width,
		height:    desc.Height,
		depth:     1,
		mips:      1,
		samples:   desc.SampleCount,
		format:    format,
		usage:     desc.Usage,
	})
	if err != nil {
		return nil, err
	}
	return &DepthStencilBuffer{Texture: tex, Desc: desc}, nil
}
