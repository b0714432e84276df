// Package passes provides the reference passes of a deferred frame:
//
//	shadow      depth-only render from the light into a square shadow map
//	background  clears the scene color target and draws a backdrop image
//	geometry    fills the G-buffer and scene depth from the geometry queue
//	lighting    compute pass shading the G-buffer into a pixel buffer
//	blur        separable blur of the scene color into a blurred target
//	composite   resolves lit pixels and the blurred backdrop to the output
//	overlay     draws the overlay queue over the output with blending
//
// Passes exchange objects by resource name (see the Resource constants)
// and through graph slots (see the Slot constants). The shadow pass, for
// example, publishes its light constants on SlotLight and the lighting pass
// binds them when present.
//
// Passes are registered by name so a graph can be assembled from
// configuration:
//
//	list, err := passes.Build(cfg.Passes, cfg)
//	if err != nil {
//		return err
//	}
//	for _, p := range list {
//		if err := g.AddPass(p); err != nil {
//			return err
//		}
//	}
package passes
