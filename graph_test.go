package rendergraph

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph/resource"
)

// testPass records its callbacks into a shared log.
type testPass struct {
	name      string
	log       *[]string
	configure func(b *Builder) error
	init      func(b *Builder) error
	execute   func(b *Builder) error
	disposed  int
}

func newTestPass(name string, log *[]string) *testPass {
	return &testPass{name: name, log: log}
}

func (p *testPass) record(event string) {
	if p.log != nil {
		*p.log = append(*p.log, p.name+"."+event)
	}
}

func (p *testPass) Name() string { return p.name }

func (p *testPass) Configure(b *Builder) error {
	p.record("configure")
	if p.configure != nil {
		return p.configure(b)
	}
	return nil
}

func (p *testPass) Init(b *Builder) error {
	p.record("init")
	if p.init != nil {
		return p.init(b)
	}
	return nil
}

func (p *testPass) Execute(_ RenderContext, _ Scene, _ *Camera, b *Builder) error {
	p.record("execute")
	if p.execute != nil {
		return p.execute(b)
	}
	return nil
}

func (p *testPass) Dispose() {
	p.record("dispose")
	p.disposed++
}

func addPasses(t *testing.T, g *Graph, passes ...Pass) {
	t.Helper()
	for _, p := range passes {
		if err := g.AddPass(p); err != nil {
			t.Fatalf("AddPass(%s): %v", p.Name(), err)
		}
	}
}

func viewportTexture(b *Builder, name string) (*Ref[*resource.Texture2D], error) {
	w, h := b.RenderViewport().Size()
	return b.CreateTexture2D(name, resource.Texture2DDesc{
		Label:  name,
		Width:  w,
		Height: h,
		Format: gputypes.TextureFormatRGBA8Unorm,
	})
}

func TestGraphPhaseOrdering(t *testing.T) {
	producer := func() *testPass {
		p := newTestPass("A", nil)
		p.configure = func(b *Builder) error {
			_, err := viewportTexture(b, "R")
			return err
		}
		return p
	}
	consumer := func() *testPass {
		p := newTestPass("B", nil)
		p.configure = func(b *Builder) error {
			_, err := b.GetTexture2D("R")
			return err
		}
		return p
	}

	t.Run("producer first", func(t *testing.T) {
		g := NewGraph(newTestFactory(t))
		t.Cleanup(g.Close)
		addPasses(t, g, producer(), consumer())
		if err := g.Setup(nil, NewViewport(64, 64)); err != nil {
			t.Fatalf("Setup: %v", err)
		}
	})

	t.Run("consumer first", func(t *testing.T) {
		g := NewGraph(newTestFactory(t))
		t.Cleanup(g.Close)
		addPasses(t, g, consumer(), producer())
		err := g.Setup(nil, NewViewport(64, 64))
		if !errors.Is(err, ErrResourceNotFound) {
			t.Fatalf("Setup error = %v, want ErrResourceNotFound", err)
		}
		var pe *PassError
		if !errors.As(err, &pe) || pe.Pass != "B" || pe.Phase != PhaseConfigure {
			t.Errorf("PassError = %+v", pe)
		}
		if g.Ready() {
			t.Error("graph ready after a failed setup")
		}
	})
}

func TestGraphLifecycleOrder(t *testing.T) {
	var log []string
	g := NewGraph(nil)
	addPasses(t, g, newTestPass("a", &log), newTestPass("b", &log))

	if err := g.Setup(nil, NewViewport(8, 8)); err != nil {
		t.Fatal(err)
	}
	if err := g.Execute(nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := g.Resize(NewViewport(16, 16)); err != nil {
		t.Fatal(err)
	}
	g.Close()
	g.Close()

	want := []string{
		"a.configure", "b.configure", "a.init", "b.init",
		"a.execute", "b.execute",
		"b.dispose", "a.dispose",
		"a.configure", "b.configure", "a.init", "b.init",
		"b.dispose", "a.dispose",
	}
	if !slices.Equal(log, want) {
		t.Errorf("events =\n%v\nwant\n%v", log, want)
	}
	if g.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", g.Frame())
	}
}

func TestGraphResizeScenario(t *testing.T) {
	g := NewGraph(newTestFactory(t))
	t.Cleanup(g.Close)

	var captured *Ref[*resource.Texture2D]
	p := newTestPass("color", nil)
	p.configure = func(b *Builder) error {
		ref, err := viewportTexture(b, "T")
		if captured == nil {
			captured = ref
		}
		return err
	}
	addPasses(t, g, p)

	out := NewSurfaceOutput(800, 600, gputypes.TextureFormatBGRA8Unorm)
	if err := g.Setup(out, NewViewport(800, 600)); err != nil {
		t.Fatal(err)
	}
	if w, h := captured.Value().Width(), captured.Value().Height(); w != 800 || h != 600 {
		t.Fatalf("initial size = %dx%d", w, h)
	}
	first := captured.Value()

	if err := g.Resize(NewViewport(1280, 720)); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := captured.Value().Width(), captured.Value().Height(); w != 1280 || h != 720 {
		t.Errorf("captured handle reports %dx%d, want 1280x720", w, h)
	}
	if !first.Destroyed() {
		t.Error("800x600 texture not released")
	}
	if out.Width() != 1280 || out.Height() != 720 {
		t.Errorf("output not resized: %dx%d", out.Width(), out.Height())
	}
	if got := g.Registry().Stats().Objects; got != 1 {
		t.Errorf("live objects = %d, want 1", got)
	}
}

func TestGraphRenderScale(t *testing.T) {
	g := NewGraph(newTestFactory(t), WithRenderScale(0.5))
	t.Cleanup(g.Close)

	var ref *Ref[*resource.Texture2D]
	p := newTestPass("half", nil)
	p.configure = func(b *Builder) (err error) {
		ref, err = viewportTexture(b, "half")
		return err
	}
	addPasses(t, g, p)
	if err := g.Setup(nil, NewViewport(1280, 720)); err != nil {
		t.Fatal(err)
	}
	if w, h := ref.Value().Width(), ref.Value().Height(); w != 640 || h != 360 {
		t.Errorf("scaled size = %dx%d, want 640x360", w, h)
	}

	cam := NewCamera([3]float32{0, 0, 5}, [3]float32{}, 60)
	if err := g.Execute(nil, nil, cam); err != nil {
		t.Fatal(err)
	}
	if cam.Aspect != 1280.0/720.0 {
		t.Errorf("camera aspect = %v", cam.Aspect)
	}
}

func TestGraphNotReadyAndClosed(t *testing.T) {
	g := NewGraph(nil)

	if err := g.Execute(nil, nil, nil); !errors.Is(err, ErrNotReady) {
		t.Errorf("Execute before Setup = %v, want ErrNotReady", err)
	}
	if err := g.Resize(NewViewport(4, 4)); !errors.Is(err, ErrNotReady) {
		t.Errorf("Resize before Setup = %v, want ErrNotReady", err)
	}
	if err := g.Reconfigure(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Reconfigure before Setup = %v, want ErrNotReady", err)
	}

	if err := g.Setup(nil, NewViewport(4, 4)); err != nil {
		t.Fatal(err)
	}
	addPasses(t, g, newTestPass("late", nil))
	if err := g.Execute(nil, nil, nil); !errors.Is(err, ErrNotReady) {
		t.Errorf("Execute after AddPass = %v, want ErrNotReady", err)
	}
	if err := g.Reconfigure(); err != nil {
		t.Fatal(err)
	}
	if err := g.Execute(nil, nil, nil); err != nil {
		t.Errorf("Execute after Reconfigure: %v", err)
	}

	g.Close()
	for name, err := range map[string]error{
		"Execute":     g.Execute(nil, nil, nil),
		"Setup":       g.Setup(nil, NewViewport(4, 4)),
		"Resize":      g.Resize(NewViewport(4, 4)),
		"Reconfigure": g.Reconfigure(),
		"AddPass":     g.AddPass(newTestPass("x", nil)),
	} {
		if !errors.Is(err, ErrGraphClosed) {
			t.Errorf("%s after Close = %v, want ErrGraphClosed", name, err)
		}
	}
}

func TestGraphAddPassErrors(t *testing.T) {
	g := NewGraph(nil)
	if err := g.AddPass(nil); !errors.Is(err, ErrNilPass) {
		t.Errorf("AddPass(nil) = %v", err)
	}
	addPasses(t, g, newTestPass("a", nil))
	if err := g.AddPass(newTestPass("a", nil)); !errors.Is(err, ErrPassAlreadyAdded) {
		t.Errorf("duplicate AddPass = %v", err)
	}
	if got := g.Passes(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Passes() = %v", got)
	}
}

func TestGraphFailurePolicy(t *testing.T) {
	boom := errors.New("boom")
	build := func(log *[]string) []Pass {
		bad := newTestPass("bad", log)
		bad.configure = func(*Builder) error { return boom }
		return []Pass{bad, newTestPass("good", log)}
	}

	t.Run("abort", func(t *testing.T) {
		var log []string
		g := NewGraph(nil)
		addPasses(t, g, build(&log)...)
		if err := g.Setup(nil, NewViewport(4, 4)); !errors.Is(err, boom) {
			t.Fatalf("Setup = %v, want boom", err)
		}
		if slices.Contains(log, "good.configure") {
			t.Error("configuration continued after a failure")
		}
		if g.State("bad") != PassFailed || g.State("good") != PassUnconfigured {
			t.Errorf("states = %v, %v", g.State("bad"), g.State("good"))
		}
		if err := g.Execute(nil, nil, nil); !errors.Is(err, ErrNotReady) {
			t.Errorf("Execute = %v, want ErrNotReady", err)
		}
	})

	t.Run("continue", func(t *testing.T) {
		var log []string
		g := NewGraph(nil, WithContinueOnError(true))
		addPasses(t, g, build(&log)...)
		err := g.Setup(nil, NewViewport(4, 4))
		if !errors.Is(err, boom) {
			t.Fatalf("Setup = %v, want boom", err)
		}
		if g.State("bad") != PassFailed || g.State("good") != PassInitialized {
			t.Errorf("states = %v, %v", g.State("bad"), g.State("good"))
		}
		log = nil
		if err := g.Execute(nil, nil, nil); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !slices.Equal(log, []string{"good.execute"}) {
			t.Errorf("executed = %v, want only good", log)
		}
	})

	t.Run("execute error", func(t *testing.T) {
		for _, cont := range []bool{false, true} {
			var log []string
			g := NewGraph(nil, WithContinueOnError(cont))
			passes := []*testPass{newTestPass("first", &log), newTestPass("second", &log)}
			passes[0].execute = func(*Builder) error { return boom }
			addPasses(t, g, passes[0], passes[1])
			if err := g.Setup(nil, NewViewport(4, 4)); err != nil {
				t.Fatal(err)
			}
			log = nil
			if err := g.Execute(nil, nil, nil); !errors.Is(err, boom) {
				t.Fatalf("Execute = %v, want boom", err)
			}
			if ran := slices.Contains(log, "second.execute"); ran != cont {
				t.Errorf("continue=%v: second pass executed = %v", cont, ran)
			}
			if g.State("first") != PassInitialized {
				t.Errorf("execute failure changed state to %v", g.State("first"))
			}
		}
	})
}

func TestGraphInitResolvesForwardReference(t *testing.T) {
	c := newCounter(t)
	g := NewGraph(nil)
	t.Cleanup(g.Close)

	var fwd *Ref[*fakeObj]
	var atInit bool
	composite := newTestPass("composite", nil)
	composite.configure = func(b *Builder) (err error) {
		fwd, err = GetOrAddResource[*fakeObj](b, "late")
		return err
	}
	composite.init = func(*Builder) error {
		atInit = fwd.Created()
		return nil
	}
	late := newTestPass("late", nil)
	late.configure = func(b *Builder) error {
		_, err := CreateResource(b, "late", c.desc(1))
		return err
	}
	addPasses(t, g, composite, late)

	if err := g.Setup(nil, NewViewport(4, 4)); err != nil {
		t.Fatal(err)
	}
	if !atInit {
		t.Error("forward reference not created by Init")
	}
}

func TestGraphPrunesUndeclared(t *testing.T) {
	for _, prune := range []bool{true, false} {
		c := newCounter(t)
		g := NewGraph(nil, WithPruneStale(prune))

		declare := true
		p := newTestPass("p", nil)
		p.configure = func(b *Builder) error {
			if _, err := CreateResource(b, "always", c.desc(1)); err != nil {
				return err
			}
			if declare {
				_, err := CreateResource(b, "sometimes", c.desc(2))
				return err
			}
			return nil
		}
		addPasses(t, g, p)
		if err := g.Setup(nil, NewViewport(4, 4)); err != nil {
			t.Fatal(err)
		}
		declare = false
		if err := g.Reconfigure(); err != nil {
			t.Fatal(err)
		}
		if got := g.Registry().Contains("sometimes"); got == prune {
			t.Errorf("prune=%v: sometimes registered = %v", prune, got)
		}
		if c.built != 2 {
			t.Errorf("prune=%v: built = %d, want 2", prune, c.built)
		}
		g.Close()
		if c.live() != 0 {
			t.Errorf("prune=%v: %d objects alive after Close", prune, c.live())
		}
	}
}

func TestGraphKeepsFetchedResources(t *testing.T) {
	c := newCounter(t)
	g := NewGraph(nil)
	t.Cleanup(g.Close)

	lut, err := CreateResource(g.Builder(), "host.lut", c.desc(16))
	if err != nil {
		t.Fatal(err)
	}

	var got *Ref[*fakeObj]
	producer := newTestPass("producer", nil)
	producer.configure = func(b *Builder) error {
		_, err := CreateResource(b, "shared", c.desc(1))
		return err
	}
	consumer := newTestPass("consumer", nil)
	consumer.configure = func(b *Builder) error {
		var err error
		if got, err = GetResource[*fakeObj](b, "host.lut"); err != nil {
			return err
		}
		_, err = GetResource[*fakeObj](b, "shared")
		return err
	}
	addPasses(t, g, producer, consumer)

	check := func(stage string) {
		t.Helper()
		if got != lut || !lut.Created() || lut.Value().destroyed {
			t.Errorf("%s: fetched handle detached", stage)
		}
		if !g.Registry().Contains("host.lut") || !g.Registry().Contains("shared") {
			t.Errorf("%s: names = %v", stage, g.Registry().Names())
		}
	}
	if err := g.Setup(nil, NewViewport(8, 8)); err != nil {
		t.Fatal(err)
	}
	check("setup")

	// The producer goes away; the consumer's fetch keeps "shared" alive.
	g.RemovePass("producer")
	if err := g.Resize(NewViewport(16, 16)); err != nil {
		t.Fatal(err)
	}
	check("resize")
	if c.released != 0 {
		t.Errorf("released = %d, want 0", c.released)
	}
}

func TestGraphRemovePass(t *testing.T) {
	var log []string
	g := NewGraph(nil)
	a, b := newTestPass("a", &log), newTestPass("b", &log)
	addPasses(t, g, a, b)
	if err := g.Setup(nil, NewViewport(4, 4)); err != nil {
		t.Fatal(err)
	}
	if !g.RemovePass("a") || g.RemovePass("a") {
		t.Fatal("RemovePass result mismatch")
	}
	if a.disposed != 1 {
		t.Errorf("removed pass disposed %d times", a.disposed)
	}
	if g.Ready() {
		t.Error("graph ready after RemovePass")
	}
	if err := g.Reconfigure(); err != nil {
		t.Fatal(err)
	}
	if got := g.Passes(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Passes() = %v", got)
	}
}

func TestGraphCloseClearsSlots(t *testing.T) {
	c := newCounter(t)
	slots := NewSlots()
	g := NewGraph(nil, WithSlots(slots))

	p := newTestPass("shadow", nil)
	p.configure = func(b *Builder) error {
		ref, err := CreateResource(b, "shadow-map", c.desc(1))
		if err != nil {
			return err
		}
		Publish(b.Slots(), "shadow", ref)
		return nil
	}
	addPasses(t, g, p)
	if err := g.Setup(nil, NewViewport(4, 4)); err != nil {
		t.Fatal(err)
	}
	if g.Slots() != slots || slots.Len() != 1 {
		t.Fatalf("slot not published: %v", slots.Keys())
	}
	g.Close()
	if slots.Len() != 0 || c.live() != 0 {
		t.Errorf("after Close: %d slots, %d live objects", slots.Len(), c.live())
	}
}

func TestPassStateString(t *testing.T) {
	tests := []struct {
		s    PassState
		want string
	}{
		{PassUnconfigured, "unconfigured"},
		{PassConfigured, "configured"},
		{PassInitialized, "initialized"},
		{PassExecuting, "executing"},
		{PassDisposed, "disposed"},
		{PassFailed, "failed"},
		{PassState(9), "PassState(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("PassState.String() = %q, want %q", got, tt.want)
		}
	}
}
