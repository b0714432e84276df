package passes

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// Vertex counts of the procedural primitives drawn by the shaders.
const (
	fullscreenVertices = 3
	quadVertices       = 4
)

// queueOf returns the scene queue for id, treating a nil scene as empty.
func queueOf(scene rendergraph.Scene, id rendergraph.QueueID) rendergraph.DrawQueue {
	if scene == nil {
		return rendergraph.EmptyQueue{}
	}
	return scene.Queue(id)
}

// renderPass runs record inside a render pass on targets. The pass is
// ended even when record fails.
func renderPass(ctx rendergraph.RenderContext, targets rendergraph.RenderTargets, record func() error) error {
	if err := ctx.BeginRenderPass(targets); err != nil {
		return err
	}
	err := record()
	if endErr := ctx.EndRenderPass(); err == nil {
		err = endErr
	}
	return err
}

// writeCamera uploads the camera constants; a nil camera leaves the buffer
// unchanged.
func writeCamera(ctx rendergraph.RenderContext, buf *rendergraph.Ref[*resource.ConstantBuffer], cam *rendergraph.Camera) error {
	if cam == nil {
		return nil
	}
	return ctx.WriteBuffer(&buf.Value().Buffer, 0, cam.ConstantBytes())
}

// uniform, storage and texture complete a layout entry carrying only the
// binding index and visibility.
func uniform(e gputypes.BindGroupLayoutEntry) gputypes.BindGroupLayoutEntry {
	e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	return e
}

func storage(e gputypes.BindGroupLayoutEntry, readOnly bool) gputypes.BindGroupLayoutEntry {
	typ := gputypes.BufferBindingTypeStorage
	if readOnly {
		typ = gputypes.BufferBindingTypeReadOnlyStorage
	}
	e.Buffer = &gputypes.BufferBindingLayout{Type: typ}
	return e
}

func texture(e gputypes.BindGroupLayoutEntry) gputypes.BindGroupLayoutEntry {
	e.Texture = &gputypes.TextureBindingLayout{
		SampleType:    gputypes.TextureSampleTypeFloat,
		ViewDimension: gputypes.TextureViewDimension2D,
	}
	return e
}

// putFloats writes vs as little-endian float32 starting at dst[0].
func putFloats(dst []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

// putUints writes vs as little-endian uint32 starting at dst[0].
func putUints(dst []byte, vs ...uint32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(dst[i*4:], v)
	}
}

// groups returns the workgroup count covering n invocations in steps of size.
func groups(n, size uint32) uint32 {
	return (n + size - 1) / size
}
