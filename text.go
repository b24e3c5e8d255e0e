package sylva

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// textLineSpacing returns the per-line advance for a face.
func textLineSpacing(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// textSize measures a text node's extent under rc. Measured extents are
// snapped to the device pixel grid at rc's text scale, so the same content
// can report different bounds under different render contexts.
func (n *Node) textSize(rc *RenderContext) (float64, float64) {
	if n.face == nil || n.textContent == "" {
		return 0, 0
	}
	w, h := text.Measure(n.textContent, n.face, textLineSpacing(n.face))
	scale := rc.textScale()
	w = math.Ceil(w*scale) / scale
	h = math.Ceil(h*scale) / scale
	return w, h
}

// drawText renders a text node's content under the transform m. The origin is
// the top-left corner of the layout box, matching textSize.
func drawText(dst *ebiten.Image, n *Node, m Affine, blend ebiten.Blend, alpha float32) {
	if n.face == nil || n.textContent == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM = m.GeoM()
	op.Blend = blend
	op.Filter = n.hints.ebitenFilter()
	op.ColorScale.Scale(float32(n.fill.R), float32(n.fill.G), float32(n.fill.B), float32(n.fill.A))
	op.ColorScale.ScaleAlpha(alpha)
	op.LineSpacing = textLineSpacing(n.face)
	text.Draw(dst, n.textContent, n.face, op)
}
