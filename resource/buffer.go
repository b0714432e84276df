// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// constantAlignment is the required size alignment of uniform buffers.
const constantAlignment = 16

// Binder is implemented by objects that can occupy a bind group slot.
type Binder interface {
	// BindEntry returns the bind group entry for the given binding index.
	BindEntry(binding uint32) gputypes.BindGroupEntry
}

// Buffer is the state shared by constant and structured buffers.
type Buffer struct {
	factory *Factory
	kind    string
	label   string
	buffer  hal.Buffer
	size    uint64
	usage   gputypes.BufferUsage
}

// Raw returns the HAL buffer, or nil after Destroy.
func (b *Buffer) Raw() hal.Buffer { return b.buffer }

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Usage returns the buffer usage flags.
func (b *Buffer) Usage() gputypes.BufferUsage { return b.usage }

// Label returns the debug label.
func (b *Buffer) Label() string { return b.label }

// Destroyed reports whether Destroy has been called.
func (b *Buffer) Destroyed() bool { return b.buffer == nil }

// BindEntry binds the whole buffer.
func (b *Buffer) BindEntry(binding uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.BufferBinding{
			Buffer: b.buffer.NativeHandle(),
			Offset: 0,
			Size:   b.size,
		},
	}
}

// Write uploads data at the given byte offset through the factory queue.
func (b *Buffer) Write(offset uint64, data []byte) error {
	if b.buffer == nil {
		return fmt.Errorf("%s %q: %w", b.kind, b.label, ErrDestroyed)
	}
	queue := b.factory.Queue()
	if queue == nil {
		return ErrNilQueue
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("%s %q: write of %d bytes at %d exceeds size %d",
			b.kind, b.label, len(data), offset, b.size)
	}
	if err := queue.WriteBuffer(b.buffer, offset, data); err != nil {
		return fmt.Errorf("%s %q: write: %w", b.kind, b.label, err)
	}
	return nil
}

// Destroy releases the HAL buffer. Safe to call multiple times.
func (b *Buffer) Destroy() {
	if b.buffer == nil {
		return
	}
	b.factory.Device().DestroyBuffer(b.buffer)
	b.buffer = nil
	b.factory.destroyed(b.kind, b.label)
}

func (f *Factory) newBuffer(kind, label string, size uint64, usage gputypes.BufferUsage) (Buffer, error) {
	if err := f.ready(); err != nil {
		return Buffer{}, err
	}
	if size == 0 {
		return Buffer{}, invalidf("%s %q: zero size", kind, label)
	}
	buf, err := f.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return Buffer{}, err
	}
	f.created(kind, label)
	return Buffer{
		factory: f,
		kind:    kind,
		label:   label,
		buffer:  buf,
		size:    size,
		usage:   usage,
	}, nil
}

// ConstantBufferDesc describes a uniform buffer.
type ConstantBufferDesc struct {
	Label string
	// Size is rounded up to a multiple of 16 bytes.
	Size  uint64
	Usage gputypes.BufferUsage
}

// Compatible reports whether two descriptions can share one buffer.
// Labels are ignored.
func (d ConstantBufferDesc) Compatible(o ConstantBufferDesc) bool {
	d.Label, o.Label = "", ""
	return d == o
}

// ConstantBuffer is a small uniform buffer, rewritten every frame.
type ConstantBuffer struct {
	Buffer
	Desc ConstantBufferDesc
}

// NewConstantBuffer creates a uniform buffer. A zero usage selects
// uniform plus copy-destination.
func (f *Factory) NewConstantBuffer(desc ConstantBufferDesc) (*ConstantBuffer, error) {
	usage := desc.Usage
	if usage == 0 {
		usage = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
	}
	size := (desc.Size + constantAlignment - 1) &^ (constantAlignment - 1)
	buf, err := f.newBuffer("ConstantBuffer", desc.Label, size, usage)
	if err != nil {
		return nil, err
	}
	return &ConstantBuffer{Buffer: buf, Desc: desc}, nil
}

// StructuredBufferDesc describes a storage buffer of fixed-stride elements.
type StructuredBufferDesc struct {
	Label  string
	Stride uint32
	Count  uint32
	Usage  gputypes.BufferUsage
}

// Size returns the byte size implied by stride and count.
func (d StructuredBufferDesc) Size() uint64 {
	return uint64(d.Stride) * uint64(d.Count)
}

// Compatible reports whether two descriptions can share one buffer.
// Labels are ignored.
func (d StructuredBufferDesc) Compatible(o StructuredBufferDesc) bool {
	d.Label, o.Label = "", ""
	return d == o
}

// StructuredBuffer is a storage buffer read or written by compute passes.
type StructuredBuffer struct {
	Buffer
	Desc StructuredBufferDesc
}

// Stride returns the element stride in bytes.
func (s *StructuredBuffer) Stride() uint32 { return s.Desc.Stride }

// Count returns the element count.
func (s *StructuredBuffer) Count() uint32 { return s.Desc.Count }

// NewStructuredBuffer creates a storage buffer. A zero usage selects
// storage with both copy directions.
func (f *Factory) NewStructuredBuffer(desc StructuredBufferDesc) (*StructuredBuffer, error) {
	if desc.Stride == 0 || desc.Stride%4 != 0 {
		return nil, invalidf("StructuredBuffer %q: stride %d is not a positive multiple of 4", desc.Label, desc.Stride)
	}
	usage := desc.Usage
	if usage == 0 {
		usage = gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc
	}
	buf, err := f.newBuffer("StructuredBuffer", desc.Label, desc.Size(), usage)
	if err != nil {
		return nil, err
	}
	return &StructuredBuffer{Buffer: buf, Desc: desc}, nil
}
