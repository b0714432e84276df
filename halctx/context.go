// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halctx

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/resource"
)

// DefaultFrameTimeout bounds the wait for a submitted frame.
const DefaultFrameTimeout = 5 * time.Second

// pollInterval is the sleep between completion polls in EndFrame.
const pollInterval = 100 * time.Microsecond

var (
	// ErrNoFrame is returned when commands are recorded outside
	// BeginFrame/EndFrame.
	ErrNoFrame = errors.New("halctx: no frame in progress")

	// ErrFrameInProgress is returned by BeginFrame when a frame is open.
	ErrFrameInProgress = errors.New("halctx: frame already in progress")

	// ErrRenderPassOpen is returned when a render pass is begun inside
	// another, or a compute dispatch is recorded inside a render pass.
	ErrRenderPassOpen = errors.New("halctx: render pass already open")

	// ErrNoRenderPass is returned when render pass state is set with no
	// render pass open.
	ErrNoRenderPass = errors.New("halctx: no render pass open")

	// ErrNoPipeline is returned by SetBindings before SetPipeline.
	ErrNoPipeline = errors.New("halctx: no pipeline set")

	// ErrFrameTimeout is returned when the GPU does not finish a frame in time.
	ErrFrameTimeout = errors.New("halctx: timed out waiting for frame")
)

// Config holds configuration for a Context.
type Config struct {
	// Label prefixes encoder and bind group labels.
	Label string

	// FrameTimeout bounds EndFrame's wait. Zero selects DefaultFrameTimeout.
	FrameTimeout time.Duration
}

// Stats counts recorded work since the Context was created.
type Stats struct {
	Frames        uint64
	RenderPasses  uint64
	ComputePasses uint64
	Draws         uint64
	Dispatches    uint64
	BindGroups    uint64
	Writes        uint64
}

// Context is a rendergraph.RenderContext recording into a HAL command
// encoder. Each frame is recorded between BeginFrame and EndFrame, which
// submits the commands and waits for them to finish.
//
// Bind groups created by SetBindings and Dispatch live until the end of
// the frame.
//
// Context is NOT safe for concurrent use.
type Context struct {
	device hal.Device
	queue  hal.Queue
	cfg    Config

	destroyed bool
	submitted uint64

	encoder  hal.CommandEncoder
	rp       hal.RenderPassEncoder
	pipeline *resource.GraphicsPipelineState
	viewport *rendergraph.Viewport

	bindGroups []hal.BindGroup
	stats      Stats
}

var _ rendergraph.RenderContext = (*Context)(nil)

// New creates a context submitting to queue on device.
func New(device hal.Device, queue hal.Queue, cfg Config) (*Context, error) {
	if device == nil {
		return nil, resource.ErrNilDevice
	}
	if queue == nil {
		return nil, resource.ErrNilQueue
	}
	if cfg.FrameTimeout <= 0 {
		cfg.FrameTimeout = DefaultFrameTimeout
	}
	if cfg.Label == "" {
		cfg.Label = "rendergraph"
	}
	return &Context{device: device, queue: queue, cfg: cfg}, nil
}

// NewFromFactory creates a context on the device and queue of f.
func NewFromFactory(f *resource.Factory, cfg Config) (*Context, error) {
	if f == nil {
		return nil, resource.ErrNilDevice
	}
	return New(f.Device(), f.Queue(), cfg)
}

// Stats returns the recorded work counters.
func (c *Context) Stats() Stats { return c.stats }

// InFrame reports whether a frame is being recorded.
func (c *Context) InFrame() bool { return c.encoder != nil }

// BeginFrame starts recording a frame.
func (c *Context) BeginFrame() error {
	if c.destroyed {
		return fmt.Errorf("halctx: begin frame: %w", resource.ErrDestroyed)
	}
	if c.encoder != nil {
		return ErrFrameInProgress
	}
	label := c.cfg.Label + "_frame"
	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("halctx: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("halctx: begin encoding: %w", err)
	}
	c.encoder = encoder
	return nil
}

// EndFrame finishes recording, submits the frame and waits for it. A
// render pass left open is ended first.
func (c *Context) EndFrame() error {
	if c.encoder == nil {
		return ErrNoFrame
	}
	if c.rp != nil {
		rendergraph.Logger().Warn("halctx: render pass left open at end of frame")
		c.endRenderPass()
	}
	defer c.releaseBindGroups()

	encoder := c.encoder
	c.encoder = nil
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("halctx: end encoding: %w", err)
	}

	idx, err := c.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		c.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("halctx: submit: %w", err)
	}
	c.submitted = idx
	if !c.waitSubmission(idx) {
		// The GPU may still read cmdBuf; it is leaked rather than freed.
		return fmt.Errorf("%w %d after %v", ErrFrameTimeout, idx, c.cfg.FrameTimeout)
	}
	c.device.FreeCommandBuffer(cmdBuf)
	c.stats.Frames++
	rendergraph.Logger().Debug("halctx: frame submitted",
		"frame", c.stats.Frames, "bindGroups", len(c.bindGroups))
	return nil
}

// waitSubmission polls the queue until idx completes or the frame timeout
// passes.
func (c *Context) waitSubmission(idx uint64) bool {
	deadline := time.Now().Add(c.cfg.FrameTimeout)
	for c.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
	return true
}

// LastSubmission returns the submission index of the last submitted frame.
func (c *Context) LastSubmission() uint64 { return c.submitted }

// Abort discards the frame being recorded.
func (c *Context) Abort() {
	if c.encoder == nil {
		return
	}
	if c.rp != nil {
		c.endRenderPass()
	}
	c.encoder.DiscardEncoding()
	c.encoder = nil
	c.releaseBindGroups()
}

// Destroy aborts any open frame. Later frames fail with
// resource.ErrDestroyed. Safe to call multiple times.
func (c *Context) Destroy() {
	c.Abort()
	c.destroyed = true
}

// BeginRenderPass starts a render pass on targets. Color targets with a
// clear color are cleared, others loaded; depth likewise.
func (c *Context) BeginRenderPass(targets rendergraph.RenderTargets) error {
	if c.encoder == nil {
		return ErrNoFrame
	}
	if c.rp != nil {
		return ErrRenderPassOpen
	}

	desc := &hal.RenderPassDescriptor{
		Label:            targets.Label,
		ColorAttachments: make([]hal.RenderPassColorAttachment, len(targets.Colors)),
	}
	for i, col := range targets.Colors {
		att := hal.RenderPassColorAttachment{
			View:    col.View,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}
		if col.Clear != nil {
			att.LoadOp = gputypes.LoadOpClear
			att.ClearValue = *col.Clear
		}
		desc.ColorAttachments[i] = att
	}
	if d := targets.Depth; d != nil {
		att := &hal.RenderPassDepthStencilAttachment{
			View:         d.View,
			DepthLoadOp:  gputypes.LoadOpLoad,
			DepthStoreOp: gputypes.StoreOpStore,
		}
		if d.ClearDepth != nil {
			att.DepthLoadOp = gputypes.LoadOpClear
			att.DepthClearValue = *d.ClearDepth
		}
		desc.DepthStencilAttachment = att
	}

	c.rp = c.encoder.BeginRenderPass(desc)
	c.stats.RenderPasses++
	if c.viewport != nil {
		c.applyViewport(*c.viewport)
	}
	return nil
}

// EndRenderPass ends the current render pass.
func (c *Context) EndRenderPass() error {
	if c.rp == nil {
		return ErrNoRenderPass
	}
	c.endRenderPass()
	return nil
}

func (c *Context) endRenderPass() {
	c.rp.End()
	c.rp = nil
	c.pipeline = nil
	c.viewport = nil
}

// SetViewport sets the viewport of the current render pass, or of the next
// one when none is open.
func (c *Context) SetViewport(vp rendergraph.Viewport) {
	if c.rp == nil {
		c.viewport = &vp
		return
	}
	c.applyViewport(vp)
}

func (c *Context) applyViewport(vp rendergraph.Viewport) {
	c.rp.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
}

// SetPipeline binds p to the current render pass.
func (c *Context) SetPipeline(p *resource.GraphicsPipelineState) {
	if c.rp == nil {
		rendergraph.Logger().Warn("halctx: SetPipeline outside a render pass", "pipeline", p.Label())
		return
	}
	c.rp.SetPipeline(p.Raw())
	c.pipeline = p
}

// SetBindings creates a bind group for the current pipeline from bindings
// and binds it at index 0.
func (c *Context) SetBindings(bindings ...resource.Binder) error {
	if c.rp == nil {
		return ErrNoRenderPass
	}
	if c.pipeline == nil {
		return ErrNoPipeline
	}
	bg, err := c.bindGroup(c.pipeline.Label(), c.pipeline.BindLayout(), bindings)
	if err != nil {
		return err
	}
	c.rp.SetBindGroup(0, bg, nil)
	return nil
}

// Draw records a non-indexed draw in the current render pass.
func (c *Context) Draw(vertexCount, instanceCount uint32) {
	if c.rp == nil {
		rendergraph.Logger().Warn("halctx: Draw outside a render pass")
		return
	}
	c.rp.Draw(vertexCount, instanceCount, 0, 0)
	c.stats.Draws++
}

// Dispatch records a compute pass running p over x*y*z workgroups.
func (c *Context) Dispatch(p *resource.ComputePipelineState, bindings []resource.Binder, x, y, z uint32) error {
	if c.encoder == nil {
		return ErrNoFrame
	}
	if c.rp != nil {
		return ErrRenderPassOpen
	}
	var bg hal.BindGroup
	if len(bindings) > 0 {
		var err error
		if bg, err = c.bindGroup(p.Label(), p.BindLayout(), bindings); err != nil {
			return err
		}
	}
	pass := c.encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: p.Label()})
	pass.SetPipeline(p.Raw())
	if bg != nil {
		pass.SetBindGroup(0, bg, nil)
	}
	pass.Dispatch(x, y, z)
	pass.End()
	c.stats.ComputePasses++
	c.stats.Dispatches++
	return nil
}

// WriteBuffer uploads data into b through the queue.
func (c *Context) WriteBuffer(b *resource.Buffer, offset uint64, data []byte) error {
	if err := b.Write(offset, data); err != nil {
		return err
	}
	c.stats.Writes++
	return nil
}

// bindGroup creates a frame-lifetime bind group with one entry per binder.
func (c *Context) bindGroup(label string, layout hal.BindGroupLayout, bindings []resource.Binder) (hal.BindGroup, error) {
	entries := make([]gputypes.BindGroupEntry, len(bindings))
	for i, b := range bindings {
		entries[i] = b.BindEntry(uint32(i)) //nolint:gosec // bind group sizes are tiny
	}
	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   c.cfg.Label + "_" + label + "_bg",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("halctx: create bind group for %s: %w", label, err)
	}
	c.bindGroups = append(c.bindGroups, bg)
	c.stats.BindGroups++
	return bg, nil
}

func (c *Context) releaseBindGroups() {
	for _, bg := range c.bindGroups {
		c.device.DestroyBindGroup(bg)
	}
	c.bindGroups = c.bindGroups[:0]
}
