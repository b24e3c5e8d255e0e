package sylva

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Shape is the closed set of vector geometries usable as shape-node geometry,
// clip regions, and hit regions. Coordinates are in the owning node's local
// space.
type Shape interface {
	// Contains reports whether (x, y) lies inside the shape.
	Contains(x, y float64) bool
	// Bounds returns the shape's axis-aligned extent.
	Bounds() Rect
	// appendPath appends the shape's outline to p for tessellation.
	appendPath(p *vector.Path)
}

// RectShape is an axis-aligned rectangle.
type RectShape struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r RectShape) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bounds returns the rectangle itself.
func (r RectShape) Bounds() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func (r RectShape) appendPath(p *vector.Path) {
	p.MoveTo(float32(r.X), float32(r.Y))
	p.LineTo(float32(r.X+r.Width), float32(r.Y))
	p.LineTo(float32(r.X+r.Width), float32(r.Y+r.Height))
	p.LineTo(float32(r.X), float32(r.Y+r.Height))
	p.Close()
}

// CircleShape is a circle.
type CircleShape struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c CircleShape) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Bounds returns the circle's bounding square.
func (c CircleShape) Bounds() Rect {
	return Rect{
		X:      c.CenterX - c.Radius,
		Y:      c.CenterY - c.Radius,
		Width:  c.Radius * 2,
		Height: c.Radius * 2,
	}
}

func (c CircleShape) appendPath(p *vector.Path) {
	p.Arc(float32(c.CenterX), float32(c.CenterY), float32(c.Radius),
		0, 2*math.Pi, vector.Clockwise)
	p.Close()
}

// PolygonShape is a convex polygon. Points may be in either winding order;
// containment testing assumes convexity.
type PolygonShape struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon using the
// cross-product sign test.
func (pg PolygonShape) Contains(x, y float64) bool {
	n := len(pg.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := pg.Points[i].X
		y1 := pg.Points[i].Y
		j := (i + 1) % n
		x2 := pg.Points[j].X
		y2 := pg.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Bounds returns the polygon's axis-aligned extent.
func (pg PolygonShape) Bounds() Rect {
	if len(pg.Points) == 0 {
		return Rect{}
	}
	minX, minY := pg.Points[0].X, pg.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range pg.Points[1:] {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (pg PolygonShape) appendPath(p *vector.Path) {
	if len(pg.Points) < 3 {
		return
	}
	p.MoveTo(float32(pg.Points[0].X), float32(pg.Points[0].Y))
	for _, pt := range pg.Points[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.Close()
}
