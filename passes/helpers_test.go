package passes

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// newTestFactory creates a resource factory on a noop device.
func newTestFactory(t *testing.T) *resource.Factory {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	f, err := resource.NewFactory(openDev.Device, openDev.Queue, resource.FactoryConfig{})
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}
	return f
}

// newTestGraph returns a graph on a noop device with the named passes
// installed and an offscreen output of the given size. The graph is not
// set up.
func newTestGraph(t *testing.T, names []string, w, h uint32, opts ...rendergraph.GraphOption) (*rendergraph.Graph, rendergraph.OutputTarget) {
	t.Helper()
	f := newTestFactory(t)
	tex, err := f.NewTexture2D(resource.Texture2DDesc{
		Label:  "output",
		Width:  w,
		Height: h,
		Format: gputypes.TextureFormatBGRA8Unorm,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tex.Destroy)

	g := rendergraph.NewGraph(f, opts...)
	t.Cleanup(g.Close)
	cfg := rendergraph.DefaultConfig()
	cfg.ShadowMapSize = 256
	if err := Install(g, names, cfg); err != nil {
		t.Fatalf("Install: %v", err)
	}
	return g, rendergraph.TextureOutput{Texture: tex}
}

// recorder is a RenderContext that records every call as a string.
type recorder struct {
	ops    []string
	writes map[*resource.Buffer]int
	open   bool
}

func newRecorder() *recorder {
	return &recorder{writes: map[*resource.Buffer]int{}}
}

func (r *recorder) BeginRenderPass(targets rendergraph.RenderTargets) error {
	if r.open {
		return fmt.Errorf("render pass %q begun inside another", targets.Label)
	}
	r.open = true
	depth := ""
	if targets.Depth != nil {
		depth = "+depth"
	}
	r.ops = append(r.ops, fmt.Sprintf("begin %s %d%s", targets.Label, len(targets.Colors), depth))
	return nil
}

func (r *recorder) EndRenderPass() error {
	if !r.open {
		return fmt.Errorf("end without begin")
	}
	r.open = false
	r.ops = append(r.ops, "end")
	return nil
}

func (r *recorder) SetViewport(vp rendergraph.Viewport) {
	r.ops = append(r.ops, fmt.Sprintf("viewport %gx%g", vp.Width, vp.Height))
}

func (r *recorder) SetPipeline(p *resource.GraphicsPipelineState) {
	r.ops = append(r.ops, "pipeline "+p.Label())
}

func (r *recorder) SetBindings(bindings ...resource.Binder) error {
	r.ops = append(r.ops, fmt.Sprintf("bind %d", len(bindings)))
	return nil
}

func (r *recorder) Draw(vertexCount, instanceCount uint32) {
	r.ops = append(r.ops, fmt.Sprintf("draw %d %d", vertexCount, instanceCount))
}

func (r *recorder) Dispatch(p *resource.ComputePipelineState, bindings []resource.Binder, x, y, z uint32) error {
	if r.open {
		return fmt.Errorf("dispatch inside a render pass")
	}
	r.ops = append(r.ops, fmt.Sprintf("dispatch %s %d %d %d (%d)", p.Label(), x, y, z, len(bindings)))
	return nil
}

func (r *recorder) WriteBuffer(b *resource.Buffer, offset uint64, data []byte) error {
	if offset+uint64(len(data)) > b.Size() {
		return fmt.Errorf("write of %d bytes overflows %s", len(data), b.Label())
	}
	r.writes[b]++
	return nil
}

// count returns how many recorded ops equal op.
func (r *recorder) count(op string) int {
	n := 0
	for _, o := range r.ops {
		if o == op {
			n++
		}
	}
	return n
}

// testScene draws one quad per queued item.
func testScene() rendergraph.StaticScene {
	quads := func(n int) rendergraph.DrawQueue {
		return rendergraph.QueueFunc{Count: n, Fn: func(ctx rendergraph.RenderContext, _ *rendergraph.Camera) error {
			ctx.Draw(quadVertices, uint32(n)) //nolint:gosec // test counts are tiny
			return nil
		}}
	}
	return rendergraph.StaticScene{
		rendergraph.QueueShadow:   quads(2),
		rendergraph.QueueGeometry: quads(3),
		rendergraph.QueueOverlay:  quads(1),
	}
}

func rgba(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }
