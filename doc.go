// Package sylva is a retained-mode vector scene graph for [Ebitengine].
//
// Sylva models a tree of drawable nodes that carry affine transforms,
// compositing attributes (blend operator, opacity, clip, mask, filter chain),
// and rendering hints. Painting, bounds queries, hit-testing, and event
// dispatch all share the same tree and the same transform semantics, so what
// you see is exactly what you can click.
//
// # Scene graph
//
// Every element is a [Node]. Trees are anchored at a node created with
// [NewRoot]; containers come from [NewGroup], leaves from [NewShape],
// [NewImage], and [NewText].
//
//	root := sylva.NewRoot("scene")
//	ui := sylva.NewGroup("ui")
//	root.AddChild(ui)
//
//	box := sylva.NewShape("box", sylva.RectShape{Width: 80, Height: 40})
//	box.SetFill(sylva.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.SetTransform(sylva.Translation(100, 50))
//	ui.AddChild(box)
//
// # Painting
//
// [Node.Paint] renders a subtree onto an ebiten.Image through a fixed
// pipeline: primitive rendering, filter chain, mask, clip, then composite.
// The [RenderContext] passed through carries a cancellation signal checked
// before each child of a container, plus the text scale that text metrics
// resolve against.
//
//	rc := sylva.NewRenderContext(ctx)
//	if err := root.Paint(screen, rc); err != nil {
//		// cancelled mid-traversal; screen is partially drawn
//	}
//
// # Bounds and hit-testing
//
// Each node answers three bounds queries of increasing extent:
// [Node.GeometryBounds] (fill geometry only), [Node.PrimitiveBounds]
// (geometry plus stroke), and [Node.Bounds] (everything painted, including
// filters and clip). Results are cached per RenderContext and invalidated on
// any geometry-affecting mutation. [Node.ContainsPoint] and [Node.NodeHitAt]
// test points against the same tree; children are probed topmost-first so
// hit order agrees with paint order.
//
// # Events
//
// Listeners register per node per event type with [Node.OnMouse] and
// [Node.OnKey] (capture-phase variants exist for both) and are removed
// through the returned [ListenerHandle]. [Node.DispatchMouseEvent] runs the
// standard two-phase traversal: capture root-to-target, then bubble
// target-to-root, stopping when a listener consumes the event. [Dispatcher]
// bridges polled Ebitengine device input into this dispatch model.
//
// Tweens (via [gween]) animate node transforms, opacity, and fill colors;
// see [TweenTranslation] and friends.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package sylva
