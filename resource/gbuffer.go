// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// GBufferDesc describes a set of same-sized render targets written by a
// single geometry pass.
type GBufferDesc struct {
	Label       string
	Width       uint32
	Height      uint32
	Formats     []gputypes.TextureFormat
	SampleCount uint32
	Usage       gputypes.TextureUsage
}

// Equal reports whether two descriptions are identical.
func (d GBufferDesc) Equal(o GBufferDesc) bool {
	return d.Label == o.Label && d.Compatible(o)
}

// Compatible reports whether two descriptions can share one G-buffer.
// Labels are ignored.
func (d GBufferDesc) Compatible(o GBufferDesc) bool {
	return d.Width == o.Width &&
		d.Height == o.Height &&
		d.SampleCount == o.SampleCount &&
		d.Usage == o.Usage &&
		slices.Equal(d.Formats, o.Formats)
}

// GBuffer is an ordered set of color targets with identical extent.
type GBuffer struct {
	factory *Factory
	label   string
	targets []*Texture2D

	Desc GBufferDesc
}

// Len returns the number of targets.
func (g *GBuffer) Len() int { return len(g.targets) }

// Target returns the i-th target.
func (g *GBuffer) Target(i int) *Texture2D { return g.targets[i] }

// Label returns the debug label.
func (g *GBuffer) Label() string { return g.label }

// Width returns the shared target width.
func (g *GBuffer) Width() uint32 { return g.Desc.Width }

// Height returns the shared target height.
func (g *GBuffer) Height() uint32 { return g.Desc.Height }

// Views returns the target views in declaration order.
func (g *GBuffer) Views() []hal.TextureView {
	views := make([]hal.TextureView, len(g.targets))
	for i, t := range g.targets {
		views[i] = t.View()
	}
	return views
}

// Destroyed reports whether Destroy has been called.
func (g *GBuffer) Destroyed() bool { return g.targets == nil }

// Destroy releases every target. Safe to call multiple times.
func (g *GBuffer) Destroy() {
	if g.targets == nil {
		return
	}
	for _, t := range g.targets {
		t.Destroy()
	}
	g.targets = nil
	g.factory.destroyed("GBuffer", g.label)
}

// NewGBuffer creates one 2D target per format. If any target fails, the
// targets created so far are destroyed.
func (f *Factory) NewGBuffer(desc GBufferDesc) (*GBuffer, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	if len(desc.Formats) == 0 {
		return nil, invalidf("GBuffer %q: no target formats", desc.Label)
	}

	g := &GBuffer{
		factory: f,
		label:   desc.Label,
		targets: make([]*Texture2D, 0, len(desc.Formats)),
		Desc:    desc,
	}
	for i, format := range desc.Formats {
		t, err := f.NewTexture2D(Texture2DDesc{
			Label:       fmt.Sprintf("%s_%d", desc.Label, i),
			Width:       desc.Width,
			Height:      desc.Height,
			Format:      format,
			Usage:       desc.Usage,
			SampleCount: desc.SampleCount,
		})
		if err != nil {
			for _, done := range g.targets {
				done.Destroy()
			}
			return nil, fmt.Errorf("gbuffer target %d: %w", i, err)
		}
		g.targets = append(g.targets, t)
	}
	f.created("GBuffer", desc.Label)
	return g, nil
}
