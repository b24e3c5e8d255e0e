package sylva

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Affine is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

// Translation returns a pure translation transform.
func Translation(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// Scaling returns a pure scale transform about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// Rotation returns a pure rotation transform (radians, about the origin).
func Rotation(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Affine) IsIdentity() bool {
	return m == Affine{1, 0, 0, 1, 0, 0}
}

// Mul returns m * o, the transform that applies o first and then m.
// Composing a parent transform with a child's local transform is
// parent.Mul(child).
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse transform. Singular transforms (determinant
// within 1e-12 of zero) invert to the identity.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityAffine()
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformRect returns the axis-aligned bounding box of r under m,
// computed from the four transformed corners.
func (m Affine) TransformRect(r Rect) Rect {
	x0, y0 := m.Apply(r.X, r.Y)
	x1, y1 := m.Apply(r.X+r.Width, r.Y)
	x2, y2 := m.Apply(r.X+r.Width, r.Y+r.Height)
	x3, y3 := m.Apply(r.X, r.Y+r.Height)

	minX := min(min(x0, x1), min(x2, x3))
	minY := min(min(y0, y1), min(y2, y3))
	maxX := max(max(x0, x1), max(x2, x3))
	maxY := max(max(y0, y1), max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// GeoM converts m to an ebiten.GeoM for use in draw options.
func (m Affine) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}
