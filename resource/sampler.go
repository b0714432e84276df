package resource

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SamplerStateDesc describes texture filtering and addressing.
// Zero address and filter modes select clamp-to-edge and linear filtering.
type SamplerStateDesc struct {
	Label        string
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
}

// LinearClamp returns a bilinear clamp-to-edge sampler description.
func LinearClamp(label string) SamplerStateDesc {
	return SamplerStateDesc{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	}
}

// Compatible reports whether two descriptions can share one sampler.
// Labels are ignored.
func (d SamplerStateDesc) Compatible(o SamplerStateDesc) bool {
	d.Label, o.Label = "", ""
	return d == o
}

// SamplerState wraps a HAL sampler.
type SamplerState struct {
	factory *Factory
	sampler hal.Sampler

	Desc SamplerStateDesc
}

// Raw returns the HAL sampler, or nil after Destroy.
func (s *SamplerState) Raw() hal.Sampler { return s.sampler }

// Destroyed reports whether Destroy has been called.
func (s *SamplerState) Destroyed() bool { return s.sampler == nil }

// Destroy releases the sampler. Safe to call multiple times.
func (s *SamplerState) Destroy() {
	if s.sampler == nil {
		return
	}
	s.factory.Device().DestroySampler(s.sampler)
	s.sampler = nil
	s.factory.destroyed("SamplerState", s.Desc.Label)
}

// NewSamplerState creates a sampler.
func (f *Factory) NewSamplerState(desc SamplerStateDesc) (*SamplerState, error) {
	if err := f.ready(); err != nil {
		return nil, err
	}
	d := desc
	defaults := LinearClamp(desc.Label)
	if d.AddressModeU == 0 {
		d.AddressModeU = defaults.AddressModeU
	}
	if d.AddressModeV == 0 {
		d.AddressModeV = defaults.AddressModeV
	}
	if d.AddressModeW == 0 {
		d.AddressModeW = defaults.AddressModeW
	}
	if d.MagFilter == 0 {
		d.MagFilter = defaults.MagFilter
	}
	if d.MinFilter == 0 {
		d.MinFilter = defaults.MinFilter
	}
	if d.MipmapFilter == 0 {
		d.MipmapFilter = defaults.MipmapFilter
	}

	sampler, err := f.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        d.Label,
		AddressModeU: d.AddressModeU,
		AddressModeV: d.AddressModeV,
		AddressModeW: d.AddressModeW,
		MagFilter:    d.MagFilter,
		MinFilter:    d.MinFilter,
		MipmapFilter: d.MipmapFilter,
	})
	if err != nil {
		return nil, err
	}
	f.created("SamplerState", desc.Label)
	return &SamplerState{factory: f, sampler: sampler, Desc: desc}, nil
}
