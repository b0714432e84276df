// Package rendergraph declares, shares and rebuilds the GPU resources of a
// multi-pass renderer.
//
// # Overview
//
// A frame is an ordered list of passes. Each pass declares the resources it
// owns (render targets, depth buffers, constant buffers, pipeline states)
// by name through a Builder, and looks up resources declared by other
// passes by the same name. The Registry behind the Builder keeps one entry
// per name and hands out typed handles whose identity survives rebuilds.
//
// # Quick Start
//
//	factory, _ := resource.NewFactory(device, queue, resource.FactoryConfig{})
//
//	g := rendergraph.NewGraph(factory)
//	g.AddPass(passes.NewGeometry())
//	g.AddPass(passes.NewComposite())
//
//	if err := g.Setup(output, rendergraph.NewViewport(1280, 720)); err != nil {
//		return err
//	}
//	defer g.Close()
//
//	for frame := range frames {
//		ctx.BeginFrame()
//		if err := g.Execute(ctx, scene, cam); err != nil {
//			return err
//		}
//		ctx.EndFrame()
//	}
//
// # Declaring resources
//
// Inside Configure a pass calls the per-kind Builder methods:
//
//	func (p *GeometryPass) Configure(b *rendergraph.Builder) error {
//		w, h := b.RenderViewport().Size()
//		ref, err := b.CreateGBuffer("gbuffer", resource.GBufferDesc{
//			Width: w, Height: h,
//			Formats: []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm},
//		})
//		...
//	}
//
// Declaring an equal description again returns the existing object. A
// different description rebuilds the object in place, so a handle kept by
// another pass sees the new object after a resize.
//
// GetX looks up a resource that must already exist. GetOrAddX returns a
// handle for a resource a later pass will declare; the handle is empty
// until then, so it is resolved in Init or Execute.
//
// # Sharing
//
// Resources created with FlagShareable may serve any later compatible
// shareable declaration: both names then alias one object, released when
// the last of them goes away. CreateXShared aliases a named resource
// explicitly.
//
// # Lifecycle
//
// Setup, Resize and Reconfigure run a configuration cycle: Dispose on every
// pass in reverse order, Configure on every pass, then Init on every pass.
// Resources no pass declared during the cycle are pruned. Execute runs the
// passes once per frame in declaration order.
//
// # Logging
//
// The package is silent by default. SetLogger installs a *slog.Logger used
// by this package and its sub-packages.
package rendergraph

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
