// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph/internal/cache"
)

// ShaderFormat selects how WGSL shader sources reach the device.
type ShaderFormat int

const (
	// ShaderWGSL passes WGSL source through to the HAL device.
	ShaderWGSL ShaderFormat = iota

	// ShaderSPIRV compiles WGSL to SPIR-V with naga before module creation.
	// Use this for backends that only consume SPIR-V.
	ShaderSPIRV
)

// String returns the shader format name.
func (f ShaderFormat) String() string {
	switch f {
	case ShaderWGSL:
		return "wgsl"
	case ShaderSPIRV:
		return "spirv"
	default:
		return fmt.Sprintf("ShaderFormat(%d)", int(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f ShaderFormat) MarshalText() ([]byte, error) {
	switch f {
	case ShaderWGSL, ShaderSPIRV:
		return []byte(f.String()), nil
	}
	return nil, fmt.Errorf("%w: shader format %d", ErrInvalidDescription, int(f))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ShaderFormat) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "wgsl":
		*f = ShaderWGSL
	case "spirv", "spir-v":
		*f = ShaderSPIRV
	default:
		return fmt.Errorf("%w: unknown shader format %q", ErrInvalidDescription, text)
	}
	return nil
}

// FactoryConfig holds configuration for creating a Factory.
type FactoryConfig struct {
	// ShaderFormat selects WGSL passthrough or SPIR-V compilation.
	ShaderFormat ShaderFormat

	// ShaderCacheSize bounds the number of compiled shaders kept.
	// Zero selects DefaultShaderCacheSize.
	ShaderCacheSize int
}

// DefaultShaderCacheSize is the default number of compiled shaders kept.
const DefaultShaderCacheSize = 64

// Factory builds GPU objects from descriptions on a HAL device.
//
// Every New* method is a pure construction function: it validates the
// description, creates the HAL objects, and returns a value that owns them.
// Callers release objects with their Destroy method. A failed construction
// leaves no HAL objects behind.
//
// Factory is NOT safe for concurrent use; it follows the single rendering
// thread model of the device it wraps.
type Factory struct {
	device hal.Device
	queue  hal.Queue
	config FactoryConfig

	// spirv caches compiled SPIR-V words keyed by WGSL source.
	spirv *cache.Cache[string, []uint32]

	stats FactoryStats
}

// FactoryStats counts objects built and destroyed through a Factory.
type FactoryStats struct {
	Created   uint64
	Destroyed uint64
	Compiled  uint64
}

// NewFactory creates a factory on the given device and queue.
// The queue may be nil when no uploads are needed.
func NewFactory(device hal.Device, queue hal.Queue, config FactoryConfig) (*Factory, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if config.ShaderCacheSize <= 0 {
		config.ShaderCacheSize = DefaultShaderCacheSize
	}
	return &Factory{
		device: device,
		queue:  queue,
		config: config,
		spirv:  cache.New[string, []uint32](config.ShaderCacheSize),
	}, nil
}

// NewFactoryFromProvider creates a factory using the HAL device shared by
// a host application (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func NewFactoryFromProvider(provider gpucontext.DeviceProvider, config FactoryConfig) (*Factory, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNoProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoProvider)
	}
	slogger().Info("resource: using provider device",
		"surface_format", provider.SurfaceFormat())
	return NewFactory(device, queue, config)
}

// Device returns the HAL device objects are created on.
func (f *Factory) Device() hal.Device {
	if f == nil {
		return nil
	}
	return f.device
}

// Queue returns the HAL queue used for uploads, or nil.
func (f *Factory) Queue() hal.Queue {
	if f == nil {
		return nil
	}
	return f.queue
}

// Config returns the factory configuration.
func (f *Factory) Config() FactoryConfig {
	return f.config
}

// Stats returns construction counters.
func (f *Factory) Stats() FactoryStats {
	return f.stats
}

// ready reports whether the factory can create objects.
func (f *Factory) ready() error {
	if f == nil || f.device == nil {
		return ErrNilDevice
	}
	return nil
}

// created records a successful construction.
func (f *Factory) created(kind, label string) {
	f.stats.Created++
	slogger().Debug("resource: created", "kind", kind, "label", label)
}

// destroyed records a release. Called from Destroy methods.
func (f *Factory) destroyed(kind, label string) {
	if f == nil {
		return
	}
	f.stats.Destroyed++
	slogger().Debug("resource: destroyed", "kind", kind, "label", label)
}
