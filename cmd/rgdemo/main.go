// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rgdemo runs the reference passes headless on a noop device.
//
// Usage:
//
//	rgdemo [-config rgdemo.toml] [-frames n] [-resize 1280x720] [-v]
//
// The graph is set up at the configured size, runs half of the frames,
// optionally resizes, and runs the rest. Registry and frame statistics are
// logged at the end.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/halctx"
	"github.com/gogpu/rendergraph/passes"
	"github.com/gogpu/rendergraph/resource"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		frames     = flag.Int("frames", 0, "frames to run (overrides the config)")
		resize     = flag.String("resize", "", "resize to WxH after half of the frames")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg := rendergraph.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = rendergraph.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}
	if *verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	rendergraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	var next *rendergraph.Viewport
	if *resize != "" {
		var w, h uint32
		if _, err := fmt.Sscanf(*resize, "%dx%d", &w, &h); err != nil || w == 0 || h == 0 {
			log.Fatalf("Invalid -resize %q: want WxH", *resize)
		}
		vp := rendergraph.NewViewport(w, h)
		next = &vp
	}

	if err := run(cfg, next); err != nil {
		log.Fatalf("rgdemo: %v", err)
	}
}

// run builds the graph on a noop device and renders cfg.Frames frames.
func run(cfg rendergraph.Config, next *rendergraph.Viewport) error {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	defer instance.Destroy()
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return errors.New("no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	defer openDev.Device.Destroy()

	factory, err := resource.NewFactory(openDev.Device, openDev.Queue, cfg.FactoryConfig())
	if err != nil {
		return err
	}

	// The output is an offscreen texture large enough for both sizes.
	outW, outH := cfg.Width, cfg.Height
	if next != nil {
		w, h := next.Size()
		outW, outH = max(outW, w), max(outH, h)
	}
	target, err := factory.NewTexture2D(resource.Texture2DDesc{
		Label:  "rgdemo.output",
		Width:  outW,
		Height: outH,
		Format: gputypes.TextureFormatBGRA8Unorm,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return err
	}
	defer target.Destroy()

	g := rendergraph.NewGraph(factory, cfg.Options()...)
	defer g.Close()
	if err := passes.Install(g, cfg.Passes, cfg); err != nil {
		return err
	}
	if err := g.Setup(rendergraph.TextureOutput{Texture: target}, cfg.Viewport()); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	ctx, err := halctx.NewFromFactory(factory, halctx.Config{
		Label:        "rgdemo",
		FrameTimeout: time.Duration(cfg.FrameTimeout),
	})
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	scene := demoScene()
	cam := rendergraph.NewCamera(mgl32.Vec3{0, 5, 8}, mgl32.Vec3{}, 60)
	for frame := range cfg.Frames {
		if next != nil && frame == cfg.Frames/2 {
			if err := g.Resize(*next); err != nil {
				return fmt.Errorf("resize: %w", err)
			}
		}
		if err := renderFrame(ctx, g, scene, cam); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}

	rs := g.Registry().Stats()
	fs := ctx.Stats()
	log.Printf("Rendered %d frames: %d render passes, %d dispatches, %d draws",
		fs.Frames, fs.RenderPasses, fs.Dispatches, fs.Draws)
	log.Printf("Registry: %d entries, %d objects, %d aliases, %d factory calls",
		rs.Entries, rs.Objects, rs.Aliases, rs.FactoryCalls)
	st := factory.Stats()
	log.Printf("Factory: %d created, %d destroyed, %d shaders compiled",
		st.Created, st.Destroyed, st.Compiled)
	return nil
}

// renderFrame records and submits one frame.
func renderFrame(ctx *halctx.Context, g *rendergraph.Graph, scene rendergraph.Scene, cam *rendergraph.Camera) error {
	if err := ctx.BeginFrame(); err != nil {
		return err
	}
	if err := g.Execute(ctx, scene, cam); err != nil {
		ctx.Abort()
		return err
	}
	return ctx.EndFrame()
}

// demoScene draws a few ground quads and a row of overlay quads.
func demoScene() rendergraph.StaticScene {
	quads := func(n uint32) rendergraph.DrawQueue {
		return rendergraph.QueueFunc{Count: int(n), Fn: func(ctx rendergraph.RenderContext, _ *rendergraph.Camera) error {
			ctx.Draw(4, n)
			return nil
		}}
	}
	return rendergraph.StaticScene{
		rendergraph.QueueShadow:   quads(3),
		rendergraph.QueueGeometry: quads(3),
		rendergraph.QueueOverlay:  quads(2),
	}
}
