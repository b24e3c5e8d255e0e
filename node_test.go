package sylva

import (
	"errors"
	"math"
	"testing"
)

// --- Constructor defaults ---

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if !n.Transform().IsIdentity() {
		t.Error("transform should default to identity")
	}
	if n.CompositeOp() != DefaultComposite {
		t.Errorf("composite = %v, want default", n.CompositeOp())
	}
	if !n.IsVisible() {
		t.Error("node should default to visible")
	}
	if n.Fill() != ColorWhite {
		t.Errorf("fill = %v, want white", n.Fill())
	}
}

func TestNewGroupDefaults(t *testing.T) {
	assertNodeDefaults(t, NewGroup("g"), "g", NodeTypeGroup)
}

func TestNewRootDefaults(t *testing.T) {
	assertNodeDefaults(t, NewRoot("r"), "r", NodeTypeRoot)
}

func TestNewShapeDefaults(t *testing.T) {
	s := RectShape{Width: 10, Height: 10}
	n := NewShape("sh", s)
	assertNodeDefaults(t, n, "sh", NodeTypeShape)
	if n.ShapeGeometry() != s {
		t.Errorf("shape = %v, want %v", n.ShapeGeometry(), s)
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewShape("c", RectShape{})
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewGroup("p1")
	p2 := NewGroup("p2")
	child := NewGroup("child")

	if err := p1.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := p2.AddChild(child); err != nil {
		t.Fatalf("AddChild (reparent): %v", err)
	}
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 || child.Parent != p2 {
		t.Error("child should belong to p2")
	}
}

func TestAddChildAtOrder(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	parent.AddChild(a)
	parent.AddChild(c)
	if err := parent.AddChildAt(b, 1); err != nil {
		t.Fatalf("AddChildAt: %v", err)
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children should be [a b c]")
	}
}

func TestAddChildErrors(t *testing.T) {
	leaf := NewShape("leaf", RectShape{})
	if err := leaf.AddChild(NewGroup("x")); !errors.Is(err, ErrNotGroup) {
		t.Errorf("leaf AddChild = %v, want ErrNotGroup", err)
	}

	parent := NewGroup("parent")
	if err := parent.AddChild(nil); !errors.Is(err, ErrNilChild) {
		t.Errorf("nil AddChild = %v, want ErrNilChild", err)
	}
	if err := parent.AddChildAt(NewGroup("x"), 5); !errors.Is(err, ErrIndexRange) {
		t.Errorf("out-of-range AddChildAt = %v, want ErrIndexRange", err)
	}
}

func TestAddChildRejectsCycle(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	a.AddChild(b)
	b.AddChild(c)

	if err := c.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("descendant AddChild = %v, want ErrCycle", err)
	}
	if err := a.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("self AddChild = %v, want ErrCycle", err)
	}
	// The failed mutation must leave the tree untouched.
	if c.NumChildren() != 0 || a.Parent != nil {
		t.Error("rejected AddChild must not mutate the tree")
	}
}

// --- RemoveChild ---

func TestRemoveChild(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.AddChild(child)

	if err := parent.RemoveChild(child); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if parent.NumChildren() != 0 || child.Parent != nil {
		t.Error("child should be detached")
	}
	if err := parent.RemoveChild(child); !errors.Is(err, ErrNotChild) {
		t.Errorf("second RemoveChild = %v, want ErrNotChild", err)
	}
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewGroup("parent")
	a := NewGroup("a")
	b := NewGroup("b")
	parent.AddChild(a)
	parent.AddChild(b)

	got, err := parent.RemoveChildAt(0)
	if err != nil {
		t.Fatalf("RemoveChildAt: %v", err)
	}
	if got != a || a.Parent != nil {
		t.Error("RemoveChildAt(0) should detach a")
	}
	if parent.ChildAt(0) != b {
		t.Error("b should shift to index 0")
	}
	if _, err := parent.RemoveChildAt(3); !errors.Is(err, ErrIndexRange) {
		t.Errorf("out-of-range RemoveChildAt = %v, want ErrIndexRange", err)
	}
}

// --- Root resolution ---

func TestRootResolution(t *testing.T) {
	root := NewRoot("root")
	mid := NewGroup("mid")
	leaf := NewShape("leaf", RectShape{})
	root.AddChild(mid)
	mid.AddChild(leaf)

	if leaf.Root() != root {
		t.Error("leaf.Root() should resolve the root")
	}
	if root.Root() != root {
		t.Error("root.Root() should be itself")
	}

	// A tree hanging off a plain group has no root.
	orphan := NewGroup("orphan")
	orphanLeaf := NewGroup("x")
	orphan.AddChild(orphanLeaf)
	if orphanLeaf.Root() != nil {
		t.Error("Root() under a non-root top should be nil")
	}

	mid.RemoveFromParent()
	if leaf.Root() != nil {
		t.Error("Root() should be nil after detaching from the root")
	}
}

// --- GlobalTransform ---

func TestGlobalTransformComposition(t *testing.T) {
	t1 := Translation(10, 0)
	t2 := Scaling(2, 2)
	t3 := Translation(0, 5)

	root := NewRoot("root")
	mid := NewGroup("mid")
	leaf := NewGroup("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.SetTransform(t1)
	mid.SetTransform(t2)
	leaf.SetTransform(t3)

	want := t1.Mul(t2).Mul(t3)
	affineNear(t, leaf.GlobalTransform(), want, "GlobalTransform")

	// Changing an intermediate transform is reflected without touching the leaf.
	mid.SetTransform(Scaling(3, 3))
	want = t1.Mul(Scaling(3, 3)).Mul(t3)
	affineNear(t, leaf.GlobalTransform(), want, "GlobalTransform after mid change")
}

func TestGlobalTransformMapsPoints(t *testing.T) {
	root := NewRoot("root")
	child := NewGroup("child")
	root.AddChild(child)
	root.SetTransform(Translation(100, 0))
	child.SetTransform(Scaling(2, 2))

	x, y := child.GlobalTransform().Apply(3, 4)
	if math.Abs(x-106) > epsilon || math.Abs(y-8) > epsilon {
		t.Errorf("mapped point = (%v, %v), want (106, 8)", x, y)
	}
}

// --- Dispose ---

func TestDisposeDetachesAndRecurses(t *testing.T) {
	root := NewRoot("root")
	group := NewGroup("group")
	leaf := NewShape("leaf", RectShape{})
	root.AddChild(group)
	group.AddChild(leaf)

	group.Dispose()
	if root.NumChildren() != 0 {
		t.Error("dispose should detach from parent")
	}
	if !group.IsDisposed() || !leaf.IsDisposed() {
		t.Error("dispose should recurse into descendants")
	}
	if leaf.Parent != nil {
		t.Error("disposed descendants should not retain parents")
	}
}
