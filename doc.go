// Package sylva renders 2D silhouette images as animated 3D point clouds
// with [Ebitengine].
//
// Sylva samples the dark pixels of an image into spatial seed points,
// optionally grows the shape procedurally (roots reaching down and out,
// branch tips reaching sideways), and animates the resulting particles every
// frame with organic floating motion plus pointer-driven wind forces.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, loads a
// silhouette, and drives the game loop for you:
//
//	img, err := sylva.LoadSilhouette("tree.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//	sylva.Run(sylva.RunConfig{
//		Title: "My Tree", Width: 900, Height: 700,
//		Figures: []sylva.FigureSpec{{Name: "tree", Kind: sylva.FigureTree, Image: img}},
//	})
//
// For full control, build an [Engine] and call [Engine.Update] and
// [Engine.Draw] from your own [ebiten.Game].
//
// # Pipeline
//
// An image flows through the engine in stages: [Sample] converts dark pixels
// into seeds, the structure extender thickens roots and branch tips,
// [NewCloud] turns seeds into a particle store with flat position/opacity
// buffers, and a [Figure] ([TreeFigure] or [LogoFigure]) animates the buffers
// each frame. [PointRenderer] submits the buffers as screen-space quads.
//
// # Growth
//
// A tree figure starts as a "sapling": a reduced-density subset limited to
// the lower part of the shape. Triggering growth (see
// [TreeFigure.TriggerGrowth]) sweeps a reveal wave from the bottom center
// outward until every particle is visible. The trigger is idempotent and the
// wave is wall-clock driven, so growth speed is independent of frame rate.
//
// [Ebitengine]: https://ebitengine.org
package sylva
