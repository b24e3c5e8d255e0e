package sylva

import "testing"

func TestRectShapeContains(t *testing.T) {
	r := RectShape{X: 10, Y: 10, Width: 20, Height: 10}
	cases := []struct {
		x, y float64
		want bool
	}{
		{15, 15, true},
		{10, 10, true}, // edges are inside
		{30, 20, true},
		{9, 15, false},
		{15, 25, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
	if r.Bounds() != (Rect{X: 10, Y: 10, Width: 20, Height: 10}) {
		t.Errorf("Bounds = %v", r.Bounds())
	}
}

func TestCircleShapeContains(t *testing.T) {
	c := CircleShape{CenterX: 10, CenterY: 10, Radius: 5}
	if !c.Contains(10, 10) {
		t.Error("center should be inside")
	}
	if !c.Contains(15, 10) {
		t.Error("point on the circle should be inside")
	}
	if c.Contains(14, 14) {
		t.Error("corner of the bounding square should be outside")
	}
	want := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if c.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", c.Bounds(), want)
	}
}

func TestPolygonShapeContains(t *testing.T) {
	tri := PolygonShape{Points: []Vec2{{0, 0}, {10, 0}, {5, 10}}}
	if !tri.Contains(5, 3) {
		t.Error("interior point should be inside")
	}
	if tri.Contains(0, 10) {
		t.Error("point outside the triangle should miss")
	}

	// Reversed winding must behave identically.
	rev := PolygonShape{Points: []Vec2{{5, 10}, {10, 0}, {0, 0}}}
	if !rev.Contains(5, 3) {
		t.Error("winding order should not affect containment")
	}

	degenerate := PolygonShape{Points: []Vec2{{0, 0}, {1, 1}}}
	if degenerate.Contains(0, 0) {
		t.Error("fewer than 3 points can contain nothing")
	}
}

func TestPolygonShapeBounds(t *testing.T) {
	p := PolygonShape{Points: []Vec2{{-2, 1}, {4, -3}, {0, 5}}}
	want := Rect{X: -2, Y: -3, Width: 6, Height: 8}
	if p.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", p.Bounds(), want)
	}
	if (PolygonShape{}).Bounds() != (Rect{}) {
		t.Error("empty polygon bounds should be the zero rect")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := [][2]int{{0, 1}, {1, 1}, {2, 2}, {3, 4}, {17, 32}, {64, 64}, {100, 128}}
	for _, c := range cases {
		if got := nextPowerOfTwo(c[0]); got != c[1] {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", c[0], got, c[1])
		}
	}
}
