// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// defaultTextureUsage is applied when a description leaves Usage empty.
const defaultTextureUsage = gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment

// Texture is the state shared by every texture kind: the HAL texture,
// its default view, and the realized extent and format.
type Texture struct {
	factory *Factory
	kind    string
	label   string

	texture hal.Texture
	view    hal.TextureView

	width  uint32
	height uint32
	depth  uint32
	format gputypes.TextureFormat
}

// Raw returns the HAL texture, or nil after Destroy.
func (t *Texture) Raw() hal.Texture { return t.texture }

// View returns the default texture view, or nil after Destroy.
func (t *Texture) View() hal.TextureView { return t.view }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// Width returns the width in texels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the height in texels (1 for 1D textures).
func (t *Texture) Height() uint32 { return t.height }

// DepthOrLayers returns the depth of a 3D texture or the array layer count.
func (t *Texture) DepthOrLayers() uint32 { return t.depth }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Destroyed reports whether Destroy has been called.
func (t *Texture) Destroyed() bool { return t.texture == nil }

// BindEntry binds the default view.
func (t *Texture) BindEntry(binding uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.TextureViewBinding{
			TextureView: t.view.NativeHandle(),
		},
	}
}

// Destroy releases the view and the texture. Safe to call multiple times.
func (t *Texture) Destroy() {
	if t.texture == nil {
		return
	}
	device := t.factory.Device()
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	device.DestroyTexture(t.texture)
	t.texture = nil
	t.factory.destroyed(t.kind, t.label)
}

// textureSpec is the normalized form of every texture description.
type textureSpec struct {
	kind      string
	label     string
	dimension gputypes.TextureDimension
	width     uint32
	height    uint32
	depth     uint32
	mips      uint32
	samples   uint32
	format    gputypes.TextureFormat
	usage     gputypes.TextureUsage
}

// newTexture creates the HAL texture and its default view. On view
// failure the texture is destroyed, so nothing leaks.
func (f *Factory) newTexture(s textureSpec) (Texture, error) {
	if err := f.ready(); err != nil {
		return Texture{}, err
	}
	if s.width == 0 || s.height == 0 || s.depth == 0 {
		return Texture{}, invalidf("%s %q: zero extent %dx%dx%d", s.kind, s.label, s.width, s.height, s.depth)
	}
	if s.format == gputypes.TextureFormatUndefined {
		return Texture{}, invalidf("%s %q: undefined format", s.kind, s.label)
	}
	if s.mips == 0 {
		s.mips = 1
	}
	if s.samples == 0 {
		s.samples = 1
	}
	if s.usage == 0 {
		s.usage = defaultTextureUsage
	}

	tex, err := f.device.CreateTexture(&hal.TextureDescriptor{
		Label:         s.label,
		Size:          hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: s.depth},
		MipLevelCount: s.mips,
		SampleCount:   s.samples,
		Dimension:     s.dimension,
		Format:        s.format,
		Usage:         s.usage,
	})
	if err != nil {
		return Texture{}, err
	}
	view, err := f.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         s.label + "_view",
		Format:        s.format,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: s.mips,
	})
	if err != nil {
		f.device.DestroyTexture(tex)
		return Texture{}, err
	}
	f.created(s.kind, s.label)
	return Texture{
		factory: f,
		kind:    s.kind,
		label:   s.label,
		texture: tex,
		view:    view,
		width:   s.width,
		height:  s.height,
		depth:   s.depth,
		format:  s.format,
	}, nil
}

// Texture1DDesc describes a one-dimensional texture.
type Texture1DDesc struct {
	Label     string
	Width     uint32
	Format    gputypes.TextureFormat
	Usage     gputypes.TextureUsage
	MipLevels uint32
}

// Compatible reports whether two descriptions can share one texture.
// Labels are ignored.
func (d Texture1DDesc) Compatible(o Texture1DDesc) bool {
	d.Label, o.Label = "", ""
	return d == o
}

// Texture1D is a one-dimensional texture, typically a lookup table.
type Texture1D struct {
	Texture
	Desc Texture1DDesc
}

// NewTexture1D creates a 1D texture.
func (f *Factory) NewTexture1D(desc Texture1DDesc) (*Texture1D, error) {
	tex, err := f.newTexture(textureSpec{
		kind:      "Texture1D",
		label:     desc.Label,
		dimension: gputypes.TextureDimension1D,
		width:     desc.Width,
		height:    1,
		depth:     1,
		mips:      desc.MipLevels,
		samples:   1,
		format:    desc.Format,
		usage:     desc.Usage,
	})
	if err != nil {
		return nil, err
	}
	return &Texture1D{Texture: tex, Desc: desc}, nil
}

// Texture2DDesc describes a two-dimensional texture or texture array.
type Texture2DDesc struct {
	Label       string
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	Usage       gputypes.TextureUsage
	MipLevels   uint32
	SampleCount uint32
	// ArrayLayers is the number of array layers. Zero means 1.
	ArrayLayers uint32
}

// Compatible reports whether two descriptions can share one texture.
// Labels are ignored.
func (d Texture2DDesc) Compatible(o Texture2DDesc) bool {
	d.Label, o.Label = "", ""
	return d == o
}

// Texture2D is a two-dimensional texture.
type Texture2D struct {
	Texture
	Desc Texture2DDesc
}

// NewTexture2D creates a 2D texture.
func (f *Factory) NewTexture2D(desc Texture2DDesc) (*Texture2D, error) {
	layers := desc.ArrayLayers
	if layers == 0 {
		layers = 1
	}
	tex, err := f.newTexture(textureSpec{
		kind:      "Texture2D",
		label:     desc.Label,
		dimension: gputypes.TextureDimension2D,
		width:     desc.Width,
		height:    desc.Height,
		depth:     layers,
		mips:      desc.MipLevels,
		samples:   desc.SampleCount,
		format:    desc.Format,
		usage:     desc.Usage,
	})
	if err != nil {
		return nil, err
	}
	return &Texture2D{Texture: tex, Desc: desc}, nil
}

// Texture3DDesc describes a volume texture.
type Texture3DDesc struct {
	Label     string
	Width     uint32
	Height    uint32
	Depth     uint32
	Format    gputypes.TextureFormat
	Usage     gputypes.TextureUsage
	MipLevels uint32
}

// Compatible reports whether two descriptions can share one texture.
// Labels are ignored.
func (d Texture3DDesc) Compatible(o Texture3DDesc) bool {
	d.Label, o.Label = "", ""
	return d == o
}

// Texture3D is a volume texture.
type Texture3D struct {
	Texture
	Desc Texture3DDesc
}

// NewTexture3D creates a 3D texture.
func (f *Factory) NewTexture3D(desc Texture3DDesc) (*Texture3D, error) {
	tex, err := f.newTexture(textureSpec{
		kind:      "Texture3D",
		label:     desc.Label,
		dimension: gputypes.TextureDimension3D,
		width:     desc.Width,
		height:    desc.Height,
		depth:     desc.Depth,
		mips:      desc.MipLevels,
		samples:   1,
		format:    desc.Format,
		usage:     desc.Usage,
	})
	if err != nil {
		return nil, err
	}
	return &Texture3D{Texture: tex, Desc: desc}, nil
}
