package passes

import (
	"errors"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

func TestRegistry(t *testing.T) {
	for _, name := range DefaultOrder {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
	if !slices.IsSorted(Names()) || len(Names()) < len(DefaultOrder) {
		t.Errorf("Names() = %v", Names())
	}

	list, err := Build(nil, rendergraph.DefaultConfig())
	if err != nil {
		t.Fatalf("Build(nil): %v", err)
	}
	got := make([]string, len(list))
	for i, p := range list {
		got[i] = p.Name()
	}
	if !slices.Equal(got, DefaultOrder) {
		t.Errorf("Build(nil) names = %v, want %v", got, DefaultOrder)
	}

	if _, err := Build([]string{NameShadow, "fog"}, rendergraph.DefaultConfig()); !errors.Is(err, ErrUnknownPass) {
		t.Errorf("Build(unknown) error = %v, want ErrUnknownPass", err)
	}

	cfg := rendergraph.DefaultConfig()
	cfg.ShadowMapSize = 512
	list, err = Build([]string{NameShadow}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if size := list[0].(*Shadow).Size(); size != 512 {
		t.Errorf("shadow size = %d, want 512 from config", size)
	}
}

func TestRegisterCustomPass(t *testing.T) {
	Register("test-blur-wide", func(rendergraph.Config) rendergraph.Pass { return NewBlur(16) })
	ctor, ok := Lookup("test-blur-wide")
	if !ok {
		t.Fatal("custom pass not registered")
	}
	if r := ctor(rendergraph.DefaultConfig()).(*Blur).Radius(); r != 16 {
		t.Errorf("Radius() = %d", r)
	}

	defer func() {
		if recover() == nil {
			t.Error("Register with nil constructor did not panic")
		}
	}()
	Register("broken", nil)
}

func TestFullFrame(t *testing.T) {
	g, out := newTestGraph(t, DefaultOrder, 64, 48)
	if err := g.Setup(out, rendergraph.NewViewport(64, 48)); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	rec := newRecorder()
	cam := rendergraph.NewCamera(mgl32.Vec3{0, 4, 6}, mgl32.Vec3{}, 60)
	if err := g.Execute(rec, testScene(), cam); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{
		"begin shadow 0+depth", "viewport 256x256", "pipeline shadow.pipeline", "bind 1", "draw 4 2", "end",
		"begin background 1", "viewport 64x48", "pipeline background.pipeline", "bind 2", "draw 3 1", "end",
		"begin geometry 2+depth", "viewport 64x48", "pipeline geometry.pipeline", "bind 1", "draw 4 3", "end",
		"dispatch lighting.pipeline 8 6 1 (5)",
		"begin blur.horizontal 1", "viewport 64x48", "pipeline blur.pipeline", "bind 2", "draw 3 1", "end",
		"begin blur.vertical 1", "viewport 64x48", "pipeline blur.pipeline", "bind 2", "draw 3 1", "end",
		"begin composite 1", "viewport 64x48", "pipeline composite.pipeline", "bind 3", "draw 3 1", "end",
		"begin overlay 1", "viewport 64x48", "pipeline overlay.pipeline", "bind 2", "draw 4 1", "end",
	}
	if !slices.Equal(rec.ops, want) {
		t.Errorf("recorded ops:\n%v\nwant:\n%v", rec.ops, want)
	}

	if keys := g.Slots().Keys(); !slices.Equal(keys, []string{SlotGBuffer, SlotLight, SlotLit, SlotShadowMap}) {
		t.Errorf("slot keys = %v", keys)
	}
	// Geometry and overlay share one camera buffer; both write it.
	camera, err := g.Builder().GetConstantBuffer(ResourceCamera)
	if err != nil {
		t.Fatal(err)
	}
	if n := rec.writes[&camera.Value().Buffer]; n != 2 {
		t.Errorf("camera buffer written %d times, want 2", n)
	}
	if g.Registry().Contains("lighting.light") {
		t.Error("lighting declared a fallback light despite the shadow pass")
	}
}

func TestResizeKeepsHandles(t *testing.T) {
	g, out := newTestGraph(t, DefaultOrder, 64, 48)
	if err := g.Setup(out, rendergraph.NewViewport(64, 48)); err != nil {
		t.Fatal(err)
	}
	b := g.Builder()
	gbuf, _ := b.GetGBuffer(ResourceGBuffer)
	lit, _ := b.GetStructuredBuffer(ResourceLit)
	shadow, _ := b.GetDepthStencilBuffer(ResourceShadowMap)
	shadowObj := shadow.Value()

	if err := g.Resize(rendergraph.NewViewport(128, 96)); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if again, _ := b.GetGBuffer(ResourceGBuffer); again != gbuf {
		t.Error("G-buffer handle changed across resize")
	}
	if w, h := gbuf.Value().Width(), gbuf.Value().Height(); w != 128 || h != 96 {
		t.Errorf("G-buffer = %dx%d, want 128x96", w, h)
	}
	if n := lit.Value().Count(); n != 128*96 {
		t.Errorf("lit count = %d, want %d", n, 128*96)
	}
	if shadow.Value() != shadowObj {
		t.Error("viewport-independent shadow map was rebuilt")
	}

	rec := newRecorder()
	if err := g.Execute(rec, nil, nil); err != nil {
		t.Fatal(err)
	}
	if rec.count("dispatch lighting.pipeline 16 12 1 (5)") != 1 {
		t.Errorf("dispatch not resized: %v", rec.ops)
	}
	// With no scene and no camera, no queue draws are recorded and the
	// overlay pass records nothing.
	if rec.count("draw 4 3") != 0 || rec.count("pipeline overlay.pipeline") != 0 {
		t.Errorf("unexpected scene draws: %v", rec.ops)
	}
}

func TestRenderScale(t *testing.T) {
	g, out := newTestGraph(t, DefaultOrder, 64, 48, rendergraph.WithRenderScale(0.5))
	if err := g.Setup(out, rendergraph.NewViewport(64, 48)); err != nil {
		t.Fatal(err)
	}
	rec := newRecorder()
	if err := g.Execute(rec, testScene(), nil); err != nil {
		t.Fatal(err)
	}
	gbuf, _ := g.Builder().GetGBuffer(ResourceGBuffer)
	if gbuf.Value().Width() != 32 || gbuf.Value().Height() != 24 {
		t.Errorf("G-buffer = %dx%d, want 32x24", gbuf.Value().Width(), gbuf.Value().Height())
	}
	if rec.count("dispatch lighting.pipeline 4 3 1 (5)") != 1 {
		t.Errorf("dispatch at render scale missing: %v", rec.ops)
	}
	// Composite and overlay draw at output size.
	if rec.count("viewport 64x48") != 2 || rec.count("viewport 32x24") != 4 {
		t.Errorf("viewports: %v", rec.ops)
	}
}

func TestCompositeForwardReference(t *testing.T) {
	order := []string{NameComposite, NameBackground, NameGeometry, NameLighting, NameBlur}
	g, out := newTestGraph(t, order, 32, 32)
	if err := g.Setup(out, rendergraph.NewViewport(32, 32)); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	composite := g.State(NameComposite)
	if composite != rendergraph.PassInitialized {
		t.Errorf("composite state = %v", composite)
	}
	blurred, _ := g.Builder().GetTexture2D(ResourceBlurred)
	if !blurred.Created() {
		t.Error("forward-referenced blur output not created")
	}
}

func TestCompositeWithoutBlur(t *testing.T) {
	g, out := newTestGraph(t, []string{NameBackground, NameGeometry, NameLighting, NameComposite}, 32, 32)
	if err := g.Setup(out, rendergraph.NewViewport(32, 32)); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	rec := newRecorder()
	if err := g.Execute(rec, nil, nil); err != nil {
		t.Fatal(err)
	}
	if rec.count("pipeline composite.pipeline") != 1 {
		t.Errorf("composite did not run: %v", rec.ops)
	}
	if blurred, _ := g.Builder().GetTexture2D(ResourceBlurred); blurred.Created() {
		t.Error("blur output created without a blur pass")
	}
	if !g.Registry().Contains("lighting.light") {
		t.Error("lighting without a shadow pass should declare its own light")
	}
}

func TestMissingInputs(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		pass  string
	}{
		{"lighting without geometry", []string{NameLighting}, NameLighting},
		{"blur without background", []string{NameBlur}, NameBlur},
		{"composite without lighting", []string{NameBackground, NameComposite}, NameComposite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, out := newTestGraph(t, tt.order, 16, 16)
			err := g.Setup(out, rendergraph.NewViewport(16, 16))
			if !errors.Is(err, rendergraph.ErrResourceNotFound) {
				t.Fatalf("Setup error = %v, want ErrResourceNotFound", err)
			}
			var perr *rendergraph.PassError
			if !errors.As(err, &perr) || perr.Pass != tt.pass {
				t.Errorf("failing pass = %v, want %q", perr, tt.pass)
			}
			if g.Ready() {
				t.Error("graph ready after a failed setup")
			}
		})
	}
}

func TestNoOutput(t *testing.T) {
	g, _ := newTestGraph(t, []string{NameOverlay}, 16, 16)
	if err := g.Setup(nil, rendergraph.NewViewport(16, 16)); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Setup without output = %v, want ErrNoOutput", err)
	}
}

func TestRemoveShadowFallsBack(t *testing.T) {
	g, out := newTestGraph(t, []string{NameShadow, NameGeometry, NameLighting}, 32, 32)
	if err := g.Setup(out, rendergraph.NewViewport(32, 32)); err != nil {
		t.Fatal(err)
	}
	if !g.RemovePass(NameShadow) {
		t.Fatal("RemovePass failed")
	}
	if _, ok := g.Slots().Get(SlotLight); ok {
		t.Error("light still published after removing the shadow pass")
	}
	if err := g.Reconfigure(); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if !g.Registry().Contains("lighting.light") {
		t.Error("lighting did not declare a fallback light")
	}
	if g.Registry().Contains(ResourceShadowMap) {
		t.Error("shadow map not pruned after removing its pass")
	}

	rec := newRecorder()
	if err := g.Execute(rec, nil, nil); err != nil {
		t.Fatal(err)
	}
	light, _ := g.Builder().GetConstantBuffer("lighting.light")
	if rec.writes[&light.Value().Buffer] != 1 {
		t.Error("fallback light not uploaded")
	}
}

func TestShadowLightMatrix(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl32.Vec3
	}{
		{"oblique", mgl32.Vec3{-0.4, -1, -0.3}},
		{"straight down", mgl32.Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewShadow(0)
			p.Direction = tt.dir
			if p.Size() != DefaultShadowMapSize {
				t.Errorf("Size() = %d", p.Size())
			}
			clip := p.LightMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
			for i, v := range clip.Vec3() {
				if v != v || v < -1 || v > 1 {
					t.Errorf("origin clip[%d] = %v, want within [-1, 1]", i, v)
				}
			}
			if buf := p.LightBytes(); len(buf) != LightConstantsSize {
				t.Errorf("LightBytes len = %d", len(buf))
			}
		})
	}
}

func TestBackgroundResize(t *testing.T) {
	g, out := newTestGraph(t, []string{NameBackground}, 32, 32)
	if err := g.Setup(out, rendergraph.NewViewport(32, 32)); err != nil {
		t.Fatal(err)
	}
	before := g.Builder().Factory().Stats()
	if err := g.Resize(rendergraph.NewViewport(48, 48)); err != nil {
		t.Fatal(err)
	}
	img, _ := g.Builder().GetTexture2D("background.image")
	scene, _ := g.Builder().GetTexture2D(ResourceSceneColor)
	if scene.Value().Width() != 48 || img.Value().Width() != BackdropSize {
		t.Errorf("sizes after resize: scene %d, backdrop %d", scene.Value().Width(), img.Value().Width())
	}
	// Only the scene color is rebuilt: one destroy, one create.
	after := g.Builder().Factory().Stats()
	if after.Created-before.Created != 1 || after.Destroyed-before.Destroyed != 1 {
		t.Errorf("resize rebuilt %d objects, destroyed %d", after.Created-before.Created, after.Destroyed-before.Destroyed)
	}
}

func TestGradient(t *testing.T) {
	img := Gradient(2, 3, rgba(0, 0, 0), rgba(200, 100, 50))
	if c := img.RGBAAt(1, 0); c != rgba(0, 0, 0) {
		t.Errorf("top = %v", c)
	}
	if c := img.RGBAAt(0, 1); c != rgba(100, 50, 25) {
		t.Errorf("middle = %v", c)
	}
	if c := img.RGBAAt(0, 2); c != rgba(200, 100, 50) {
		t.Errorf("bottom = %v", c)
	}
}

func TestBlurTargetsDoNotAlias(t *testing.T) {
	g, out := newTestGraph(t, []string{NameBackground, NameBlur}, 32, 32)
	if err := g.Setup(out, rendergraph.NewViewport(32, 32)); err != nil {
		t.Fatal(err)
	}
	b := g.Builder()
	scratch, _ := b.GetTexture2D("blur.scratch")
	output, _ := b.GetTexture2D(ResourceBlurred)
	scene, _ := b.GetTexture2D(ResourceSceneColor)
	if scratch.Value() == output.Value() || scratch.Value() == scene.Value() {
		t.Error("blur scratch aliases a target it reads or writes")
	}

	// A compatible shareable declaration elsewhere receives the scratch.
	shared, err := b.CreateTexture2D("test.scratch", blurTarget("test.scratch", 32, 32), rendergraph.FlagShareable)
	if err != nil {
		t.Fatal(err)
	}
	if shared.Value() != scratch.Value() {
		t.Error("shareable scratch was not shared")
	}
}

func TestPassesDoNotLeak(t *testing.T) {
	f := newTestFactory(t)
	tex, err := f.NewTexture2D(resource.Texture2DDesc{Label: "out", Width: 16, Height: 16, Format: SceneColorFormat})
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Destroy()

	g := rendergraph.NewGraph(f)
	if err := Install(g, DefaultOrder, rendergraph.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if err := g.Setup(rendergraph.TextureOutput{Texture: tex}, rendergraph.NewViewport(16, 16)); err != nil {
		t.Fatal(err)
	}
	if err := g.Resize(rendergraph.NewViewport(24, 24)); err != nil {
		t.Fatal(err)
	}
	g.Close()

	// Everything but the output texture is released.
	st := f.Stats()
	if st.Created-st.Destroyed != 1 {
		t.Errorf("live objects after Close = %d, want 1", st.Created-st.Destroyed)
	}
}

func TestDisposeReleasesOnce(t *testing.T) {
	tests := []struct {
		name    string
		slots   []string
		private uint64
	}{
		{NameShadow, []string{SlotShadowMap, SlotLight}, 0},
		{NameBackground, nil, 0},
		{NameGeometry, []string{SlotGBuffer}, 0},
		{NameLighting, []string{SlotLit}, 0},
		{NameBlur, nil, 2},
		{NameComposite, nil, 0},
		{NameOverlay, nil, 0},
	}
	list, err := Build(nil, rendergraph.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != len(tests) {
		t.Fatalf("Build(nil) returned %d passes, table covers %d", len(list), len(tests))
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFactory(t)
			out, err := f.NewTexture2D(resource.Texture2DDesc{Label: "out", Width: 32, Height: 32, Format: SceneColorFormat})
			if err != nil {
				t.Fatal(err)
			}
			t.Cleanup(out.Destroy)

			passes, err := Build(nil, rendergraph.DefaultConfig())
			if err != nil {
				t.Fatal(err)
			}
			g := rendergraph.NewGraph(f)
			t.Cleanup(g.Close)
			for _, p := range passes {
				if err := g.AddPass(p); err != nil {
					t.Fatal(err)
				}
			}
			if err := g.Setup(rendergraph.TextureOutput{Texture: out}, rendergraph.NewViewport(32, 32)); err != nil {
				t.Fatalf("Setup: %v", err)
			}
			p := passes[i]
			if p.Name() != tt.name || list[i].Name() != tt.name {
				t.Fatalf("pass %d = %q, want %q", i, p.Name(), tt.name)
			}
			for _, key := range tt.slots {
				if _, ok := g.Slots().Get(key); !ok {
					t.Fatalf("slot %q not published after Setup", key)
				}
			}

			slots := g.Slots().Len()
			destroyed := f.Stats().Destroyed
			p.Dispose()
			if got := slots - g.Slots().Len(); got != len(tt.slots) {
				t.Errorf("first Dispose cleared %d slots, want %d", got, len(tt.slots))
			}
			for _, key := range tt.slots {
				if _, ok := g.Slots().Get(key); ok {
					t.Errorf("slot %q still published after Dispose", key)
				}
			}
			if got := f.Stats().Destroyed - destroyed; got != tt.private {
				t.Errorf("first Dispose destroyed %d objects, want %d", got, tt.private)
			}

			slots = g.Slots().Len()
			destroyed = f.Stats().Destroyed
			p.Dispose()
			if g.Slots().Len() != slots {
				t.Errorf("second Dispose cleared %d more slots", slots-g.Slots().Len())
			}
			if got := f.Stats().Destroyed - destroyed; got != 0 {
				t.Errorf("second Dispose destroyed %d objects, want 0", got)
			}
		})
	}
}

func TestBlurRebuildsPrivateConstants(t *testing.T) {
	g, out := newTestGraph(t, []string{NameBackground, NameBlur}, 32, 32)
	if err := g.Setup(out, rendergraph.NewViewport(32, 32)); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"blur.horizontal", "blur.vertical"} {
		if g.Registry().Contains(name) {
			t.Errorf("private constant %q registered", name)
		}
	}

	rec := newRecorder()
	cam := rendergraph.NewCamera(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, 60)
	if err := g.Resize(rendergraph.NewViewport(40, 40)); err != nil {
		t.Fatal(err)
	}
	if err := g.Execute(rec, testScene(), cam); err != nil {
		t.Fatalf("Execute after resize: %v", err)
	}
	if n := rec.count("begin blur.vertical 1"); n != 1 {
		t.Errorf("vertical blur recorded %d times", n)
	}
}
