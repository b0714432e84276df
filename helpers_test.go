package rendergraph

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rendergraph/resource"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no adapters")
	}
	opened, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		opened.Device.Destroy()
		instance.Destroy()
	})
	return opened.Device, opened.Queue
}

func newTestFactory(t *testing.T) *resource.Factory {
	t.Helper()
	device, queue := createNoopDevice(t)
	f, err := resource.NewFactory(device, queue, resource.FactoryConfig{})
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return f
}

// fakeDesc describes a fakeObj. Objects of equal Size can serve each other.
type fakeDesc struct {
	Size  int
	Label string
}

func (d fakeDesc) Compatible(o fakeDesc) bool { return d.Size == o.Size }

type fakeObj struct {
	id        int
	desc      fakeDesc
	destroyed bool
	c         *counter
}

func (o *fakeObj) Destroy() {
	if o.destroyed {
		o.c.t.Errorf("object %d destroyed twice", o.id)
	}
	o.destroyed = true
	o.c.released++
}

// counter is a fakeObj factory that counts builds and releases.
type counter struct {
	t        *testing.T
	built    int
	released int
	fail     error
}

func newCounter(t *testing.T) *counter { return &counter{t: t} }

func (c *counter) build(d fakeDesc) (*fakeObj, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	c.built++
	return &fakeObj{id: c.built, desc: d, c: c}, nil
}

func (c *counter) live() int { return c.built - c.released }

func (c *counter) desc(size int, flags ...CreationFlags) *Descriptor[fakeDesc, *fakeObj] {
	return NewDescriptor(fakeDesc{Size: size}, c.build, flags...)
}
