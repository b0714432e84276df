// Package halctx implements rendergraph.RenderContext on a wgpu HAL device.
//
// A Context records one frame at a time into a command encoder:
//
//	ctx, err := halctx.NewFromFactory(factory, halctx.Config{})
//	if err != nil {
//		return err
//	}
//	defer ctx.Destroy()
//
//	if err := ctx.BeginFrame(); err != nil {
//		return err
//	}
//	if err := graph.Execute(ctx, scene, cam); err != nil {
//		ctx.Abort()
//		return err
//	}
//	return ctx.EndFrame()
//
// EndFrame submits the frame and polls the queue until its submission
// index completes, for at most Config.FrameTimeout.
package halctx
