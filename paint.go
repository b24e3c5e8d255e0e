package sylva

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Paint renders the node and its subtree onto dst with the full compositing
// pipeline, in this fixed order: skip if invisible; primitive rendering;
// filter chain; mask (alpha multiply); clip (region intersect); composite
// onto dst with the node's blend operator and opacity. Steps whose attribute
// is unset are skipped, degrading to direct compositing of the primitive
// rendering.
//
// Paint checks rc's cancellation signal before descending into each child of
// a container; a cancelled traversal returns the context's error and leaves
// dst partially drawn. Callers must discard or re-render on cancellation.
func (n *Node) Paint(dst *ebiten.Image, rc *RenderContext) error {
	if debugEnabled {
		start := time.Now()
		err := n.paint(dst, rc, IdentityAffine())
		debugLogPaint(n.Name, time.Since(start))
		return err
	}
	return n.paint(dst, rc, IdentityAffine())
}

// PrimitivePaint draws only this node's own content in its local coordinate
// space, ignoring this node's filter, mask, clip, and composite. For a
// container this paints each child with the child's full pipeline, so the
// children's own compositing attributes still apply.
func (n *Node) PrimitivePaint(dst *ebiten.Image, rc *RenderContext) error {
	return n.drawPrimitive(dst, rc, IdentityAffine(), ebiten.BlendSourceOver, 1)
}

// Snapshot renders the node's subtree to a new offscreen image sized to its
// full bounds, with the node's own transform factored out. The caller owns
// the returned image.
func (n *Node) Snapshot(rc *RenderContext) (*ebiten.Image, error) {
	b, ok := n.Bounds(rc)
	if !ok || !n.visible {
		return ebiten.NewImage(1, 1), nil
	}
	w := int(math.Ceil(b.Width))
	h := int(math.Ceil(b.Height))
	if w <= 0 || h <= 0 {
		return ebiten.NewImage(1, 1), nil
	}
	img := ebiten.NewImage(w, h)
	if err := n.paintWorld(img, rc, Translation(-b.X, -b.Y)); err != nil {
		img.Deallocate()
		return nil, err
	}
	return img, nil
}

// Outline returns the node's shape outline where one is defined: the shape
// itself for shape nodes, the geometry extent as a rectangle otherwise.
func (n *Node) Outline(rc *RenderContext) (Shape, bool) {
	if n.Type == NodeTypeShape {
		if n.shape == nil {
			return nil, false
		}
		return n.shape, true
	}
	b, ok := n.GeometryBounds(rc)
	if !ok {
		return nil, false
	}
	return RectShape{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}, true
}

// paint applies the node's local transform under parent and runs the pipeline.
func (n *Node) paint(dst *ebiten.Image, rc *RenderContext, parent Affine) error {
	if !n.visible {
		return nil
	}
	return n.paintWorld(dst, rc, parent.Mul(n.transform))
}

// paintWorld runs the pipeline with the node's content mapped by world.
func (n *Node) paintWorld(dst *ebiten.Image, rc *RenderContext, world Affine) error {
	if err := rc.Err(); err != nil {
		return err
	}
	if n.needsLayer() {
		return n.paintLayer(dst, rc, world)
	}
	// Fast path: leaf compositing folds into the draw call itself.
	blend := n.composite.Mode.EbitenBlend()
	return n.drawPrimitive(dst, rc, world, blend, float32(n.composite.Opacity))
}

// needsLayer reports whether the node's output must go through an offscreen
// layer. Leaves apply blend and opacity directly in their draw call, but a
// container with a non-default composite must be flattened first so the
// operator applies to the subtree as a unit.
func (n *Node) needsLayer() bool {
	if len(n.filters) > 0 || n.mask != nil || n.clip != nil {
		return true
	}
	return n.Type.isContainer() && !n.composite.isDefault()
}

// drawPrimitive draws this node's own content under transform m.
func (n *Node) drawPrimitive(dst *ebiten.Image, rc *RenderContext, m Affine, blend ebiten.Blend, alpha float32) error {
	switch n.Type {
	case NodeTypeGroup, NodeTypeRoot:
		for _, child := range n.children {
			if err := rc.Err(); err != nil {
				return err
			}
			if err := child.paint(dst, rc, m); err != nil {
				return err
			}
		}
	case NodeTypeShape:
		n.drawShape(dst, m, blend, alpha)
	case NodeTypeImage:
		n.drawImage(dst, m, blend, alpha)
	case NodeTypeText:
		drawText(dst, n, m, blend, alpha)
	}
	return nil
}

// paintLayer renders the node's primitive output to a pooled offscreen
// image, applies filter/mask/clip there, and composites the result onto dst.
// Layer pixel (0,0) corresponds to local (ext.X, ext.Y), so the composite
// transform is world shifted by that offset.
func (n *Node) paintLayer(dst *ebiten.Image, rc *RenderContext, world Affine) error {
	ext, ok := n.renderExtent(rc)
	if !ok {
		return nil
	}
	if pad := filterChainPadding(n.filters); pad > 0 {
		ext = ext.grow(float64(pad))
	}
	w := int(math.Ceil(ext.Width))
	h := int(math.Ceil(ext.Height))
	if w <= 0 || h <= 0 {
		return nil
	}
	off := Translation(-ext.X, -ext.Y)

	layer := rc.pool.acquire(w, h)
	if err := n.drawPrimitive(layer, rc, off, ebiten.BlendSourceOver, 1); err != nil {
		rc.pool.release(layer)
		return err
	}
	result := layer

	if len(n.filters) > 0 {
		filtered := applyFilters(n.filters, result, &rc.pool)
		if filtered != result {
			rc.pool.release(result)
			result = filtered
		}
	}

	if n.mask != nil {
		// The mask node renders in the masked node's local space; keep only
		// the parts of result where the mask has alpha.
		maskRT := rc.pool.acquire(w, h)
		if err := n.mask.paint(maskRT, rc, off); err != nil {
			rc.pool.release(maskRT)
			rc.pool.release(result)
			return err
		}
		var op ebiten.DrawImageOptions
		op.Blend = BlendMask.EbitenBlend()
		result.DrawImage(maskRT, &op)
		rc.pool.release(maskRT)
	}

	if n.clip != nil {
		clipRT := rc.pool.acquire(w, h)
		fillShape(clipRT, n.clip, off, ColorWhite, n.hints.antialias())
		var op ebiten.DrawImageOptions
		op.Blend = BlendMask.EbitenBlend()
		result.DrawImage(clipRT, &op)
		rc.pool.release(clipRT)
	}

	var op ebiten.DrawImageOptions
	op.GeoM = world.Mul(Translation(ext.X, ext.Y)).GeoM()
	op.Blend = n.composite.Mode.EbitenBlend()
	op.ColorScale.ScaleAlpha(float32(n.composite.Opacity))
	op.Filter = n.hints.ebitenFilter()
	dst.DrawImage(result, &op)
	rc.pool.release(result)
	return nil
}

// --- Leaf rasterization ---

func (n *Node) drawShape(dst *ebiten.Image, m Affine, blend ebiten.Blend, alpha float32) {
	if n.shape == nil {
		return
	}
	var p vector.Path
	n.shape.appendPath(&p)
	aa := n.hints.antialias()

	if n.fill.A > 0 {
		vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
		tintVertices(vs, m, n.fill, alpha)
		dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{
			Blend:     blend,
			AntiAlias: aa,
			FillRule:  ebiten.FillRuleNonZero,
		})
	}
	if n.hasStroke() {
		sop := &vector.StrokeOptions{Width: float32(n.strokeWidth), MiterLimit: 10}
		vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, sop)
		tintVertices(vs, m, n.stroke, alpha)
		dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{
			Blend:     blend,
			AntiAlias: aa,
		})
	}
}

func (n *Node) drawImage(dst *ebiten.Image, m Affine, blend ebiten.Blend, alpha float32) {
	if n.image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = m.GeoM()
	op.Blend = blend
	op.Filter = n.hints.ebitenFilter()
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(n.image, op)
}

// fillShape rasterizes s filled with c under transform m. Used for clip
// region rasterization.
func fillShape(dst *ebiten.Image, s Shape, m Affine, c Color, aa bool) {
	var p vector.Path
	s.appendPath(&p)
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	tintVertices(vs, m, c, 1)
	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{
		AntiAlias: aa,
		FillRule:  ebiten.FillRuleNonZero,
	})
}

// tintVertices maps tessellated vertex positions through m and assigns the
// white-pixel source and straight-alpha color.
func tintVertices(vs []ebiten.Vertex, m Affine, c Color, alpha float32) {
	for i := range vs {
		x, y := m.Apply(float64(vs[i].DstX), float64(vs[i].DstY))
		vs[i].DstX = float32(x)
		vs[i].DstY = float32(y)
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R)
		vs[i].ColorG = float32(c.G)
		vs[i].ColorB = float32(c.B)
		vs[i].ColorA = float32(c.A) * alpha
	}
}
