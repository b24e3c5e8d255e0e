package sylva

import (
	"context"
	"testing"
)

func newTestContext() *RenderContext {
	return NewRenderContext(context.Background())
}

func assertRect(t *testing.T, got Rect, ok bool, want Rect, label string) {
	t.Helper()
	if !ok {
		t.Fatalf("%s: no bounds, want %v", label, want)
	}
	if got != want {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

// --- Leaf bounds ---

func TestShapeGeometryBounds(t *testing.T) {
	rc := newTestContext()
	n := NewShape("box", RectShape{X: 2, Y: 3, Width: 10, Height: 20})
	b, ok := n.GeometryBounds(rc)
	assertRect(t, b, ok, Rect{X: 2, Y: 3, Width: 10, Height: 20}, "GeometryBounds")
}

func TestPrimitiveBoundsGrowByStroke(t *testing.T) {
	rc := newTestContext()
	n := NewShape("box", RectShape{Width: 10, Height: 10})

	b, ok := n.PrimitiveBounds(rc)
	assertRect(t, b, ok, Rect{Width: 10, Height: 10}, "PrimitiveBounds without stroke")

	n.SetStroke(ColorWhite, 4)
	b, ok = n.PrimitiveBounds(rc)
	assertRect(t, b, ok, Rect{X: -2, Y: -2, Width: 14, Height: 14}, "PrimitiveBounds with stroke")

	// Geometry bounds ignore the stroke entirely.
	g, ok := n.GeometryBounds(rc)
	assertRect(t, g, ok, Rect{Width: 10, Height: 10}, "GeometryBounds with stroke")
}

func TestEmptyShapeHasNoBounds(t *testing.T) {
	rc := newTestContext()
	n := NewShape("empty", nil)
	if _, ok := n.GeometryBounds(rc); ok {
		t.Error("nil shape should have no geometry bounds")
	}
	if _, ok := n.Bounds(rc); ok {
		t.Error("nil shape should have no full bounds")
	}
}

// --- Pipeline effect on full bounds ---

func TestBoundsGrowByFilterPadding(t *testing.T) {
	rc := newTestContext()
	n := NewShape("blurred", RectShape{Width: 10, Height: 10})
	n.SetFilters(BoxBlurFilter{Radius: 3})

	b, ok := n.Bounds(rc)
	assertRect(t, b, ok, Rect{X: -3, Y: -3, Width: 16, Height: 16}, "Bounds with blur")

	// Primitive bounds exclude the filter.
	p, ok := n.PrimitiveBounds(rc)
	assertRect(t, p, ok, Rect{Width: 10, Height: 10}, "PrimitiveBounds with blur")
}

func TestBoundsClippedByClipShape(t *testing.T) {
	rc := newTestContext()
	n := NewShape("clipped", RectShape{Width: 20, Height: 20})
	n.SetClip(RectShape{X: 5, Y: 5, Width: 100, Height: 100})

	b, ok := n.Bounds(rc)
	assertRect(t, b, ok, Rect{X: 5, Y: 5, Width: 15, Height: 15}, "clipped Bounds")

	// A clip fully outside the rendering leaves nothing.
	n.SetClip(RectShape{X: 50, Y: 50, Width: 10, Height: 10})
	if _, ok := n.Bounds(rc); ok {
		t.Error("disjoint clip should yield no bounds")
	}
}

func TestMaskDoesNotChangeBounds(t *testing.T) {
	rc := newTestContext()
	n := NewShape("masked", RectShape{Width: 20, Height: 20})
	n.SetMask(NewShape("mask", RectShape{Width: 5, Height: 5}))

	b, ok := n.Bounds(rc)
	assertRect(t, b, ok, Rect{Width: 20, Height: 20}, "masked Bounds")
}

// --- Container aggregation ---

func TestContainerUnionsChildBounds(t *testing.T) {
	rc := newTestContext()
	g := NewGroup("g")
	a := NewShape("a", RectShape{Width: 10, Height: 10})
	b := NewShape("b", RectShape{Width: 10, Height: 10})
	b.SetTransform(Translation(20, 0))
	g.AddChild(a)
	g.AddChild(b)

	bounds, ok := g.GeometryBounds(rc)
	assertRect(t, bounds, ok, Rect{Width: 30, Height: 10}, "group GeometryBounds")
}

func TestContainerAppliesChildTransforms(t *testing.T) {
	rc := newTestContext()
	g := NewGroup("g")
	a := NewShape("a", RectShape{Width: 10, Height: 10})
	a.SetTransform(Scaling(2, 3))
	g.AddChild(a)

	bounds, ok := g.GeometryBounds(rc)
	assertRect(t, bounds, ok, Rect{Width: 20, Height: 30}, "scaled child bounds")
}

func TestInvisibleChildExcludedFromBounds(t *testing.T) {
	rc := newTestContext()
	g := NewGroup("g")
	a := NewShape("a", RectShape{Width: 10, Height: 10})
	b := NewShape("b", RectShape{X: 100, Y: 100, Width: 10, Height: 10})
	g.AddChild(a)
	g.AddChild(b)

	b.SetVisible(false)
	bounds, ok := g.GeometryBounds(rc)
	assertRect(t, bounds, ok, Rect{Width: 10, Height: 10}, "bounds with hidden child")

	full, ok := g.Bounds(rc)
	assertRect(t, full, ok, Rect{Width: 10, Height: 10}, "full bounds with hidden child")

	prim, ok := g.PrimitiveBounds(rc)
	assertRect(t, prim, ok, Rect{Width: 10, Height: 10}, "primitive bounds with hidden child")
}

func TestEmptyContainerHasNoBounds(t *testing.T) {
	rc := newTestContext()
	g := NewGroup("g")
	if _, ok := g.Bounds(rc); ok {
		t.Error("empty group should have no bounds")
	}
}

// --- Cache behavior ---

func TestBoundsCacheInvalidatedOnMutation(t *testing.T) {
	rc := newTestContext()
	root := NewRoot("root")
	g := NewGroup("g")
	leaf := NewShape("leaf", RectShape{Width: 10, Height: 10})
	root.AddChild(g)
	g.AddChild(leaf)

	// Populate caches at every level.
	if _, ok := root.Bounds(rc); !ok {
		t.Fatal("expected bounds")
	}

	leaf.SetShape(RectShape{Width: 40, Height: 40})
	b, ok := root.Bounds(rc)
	assertRect(t, b, ok, Rect{Width: 40, Height: 40}, "root bounds after leaf mutation")

	leaf.SetTransform(Translation(5, 5))
	b, ok = root.Bounds(rc)
	assertRect(t, b, ok, Rect{X: 5, Y: 5, Width: 40, Height: 40}, "root bounds after transform")
}

func TestBoundsCacheInvalidatedOnStructuralChange(t *testing.T) {
	rc := newTestContext()
	g := NewGroup("g")
	a := NewShape("a", RectShape{Width: 10, Height: 10})
	g.AddChild(a)
	if _, ok := g.Bounds(rc); !ok {
		t.Fatal("expected bounds")
	}

	g.RemoveChild(a)
	if _, ok := g.Bounds(rc); ok {
		t.Error("bounds should be gone after removing the only child")
	}

	b := NewShape("b", RectShape{Width: 3, Height: 3})
	g.AddChild(b)
	got, ok := g.Bounds(rc)
	assertRect(t, got, ok, Rect{Width: 3, Height: 3}, "bounds after re-adding")
}

func TestBoundsCachePerContext(t *testing.T) {
	rc1 := newTestContext()
	rc2 := newTestContext()
	n := NewShape("box", RectShape{Width: 10, Height: 10})

	b1, ok1 := n.Bounds(rc1)
	b2, ok2 := n.Bounds(rc2)
	if !ok1 || !ok2 || b1 != b2 {
		t.Errorf("shape bounds should agree across contexts: %v vs %v", b1, b2)
	}
}
