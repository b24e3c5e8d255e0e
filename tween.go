package sylva

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 scalar attributes on a Node simultaneously.
// Create one via the convenience constructors (TweenTranslation, TweenScale,
// TweenOpacity, TweenFill) and call Update(dt) each frame. Values are written
// through the node's setters so cached bounds invalidate normally. If the
// target node is disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	target *Node
	apply  func(n *Node, v [4]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target node. If the target node has been disposed, Done is set to true and
// no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(g.target, vals)
	g.Done = allDone
}

// TweenTranslation animates the translation components of the node's
// transform to (toX, toY) over the given duration, leaving the linear part
// untouched.
func TweenTranslation(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	m := node.Transform()
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(m[4]), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(m[5]), float32(toY), duration, fn)
	g.apply = func(n *Node, v [4]float64) {
		m := n.Transform()
		m[4], m[5] = v[0], v[1]
		n.SetTransform(m)
	}
	return g
}

// TweenScale animates the diagonal of the node's transform to (toSX, toSY).
// Only meaningful for transforms with no rotation or shear.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	m := node.Transform()
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(m[0]), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(m[3]), float32(toSY), duration, fn)
	g.apply = func(n *Node, v [4]float64) {
		m := n.Transform()
		m[0], m[3] = v[0], v[1]
		n.SetTransform(m)
	}
	return g
}

// TweenOpacity animates the node's composite opacity to the target value.
func TweenOpacity(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.CompositeOp().Opacity), float32(to), duration, fn)
	g.apply = func(n *Node, v [4]float64) {
		c := n.CompositeOp()
		c.Opacity = v[0]
		n.SetComposite(c)
	}
	return g
}

// TweenFill animates all four components of the node's fill color to the
// target color.
func TweenFill(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Fill()
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = func(n *Node, v [4]float64) {
		n.SetFill(Color{R: v[0], G: v[1], B: v[2], A: v[3]})
	}
	return g
}
