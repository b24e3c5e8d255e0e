package sylva

// boundsCache stores the three bounds levels computed for one RenderContext.
// Any geometry-affecting mutation resets the whole struct (node.go,
// invalidateBounds); querying with a different context does the same.
type boundsCache struct {
	rc *RenderContext

	geom, prim, full       Rect
	geomOK, primOK, fullOK bool
	geomSet, primSet, fullSet bool
}

// ensureCache returns the cache valid for rc, discarding entries populated
// under a different context.
func (n *Node) ensureCache(rc *RenderContext) *boundsCache {
	if n.cache.rc != rc {
		n.cache = boundsCache{rc: rc}
	}
	return &n.cache
}

// GeometryBounds returns the node's raw shape extent in its local coordinate
// space, excluding every rendering attribute: no stroke width, no filter,
// mask, or clip. The second return value is false when the node has no
// geometry. Containers union the transformed geometry bounds of their
// visible children.
func (n *Node) GeometryBounds(rc *RenderContext) (Rect, bool) {
	c := n.ensureCache(rc)
	if !c.geomSet {
		c.geom, c.geomOK = n.geometryBoundsUncached(rc)
		c.geomSet = true
	}
	return c.geom, c.geomOK
}

// PrimitiveBounds returns the extent of what PrimitivePaint draws: geometry
// plus stroke extents, excluding filter, mask, and clip.
func (n *Node) PrimitiveBounds(rc *RenderContext) (Rect, bool) {
	c := n.ensureCache(rc)
	if !c.primSet {
		c.prim, c.primOK = n.primitiveBoundsUncached(rc)
		c.primSet = true
	}
	return c.prim, c.primOK
}

// Bounds returns the extent of what Paint produces: primitive bounds grown by
// the filter chain's padding and intersected with the clip region. Masking
// multiplies alpha only and never changes extent.
func (n *Node) Bounds(rc *RenderContext) (Rect, bool) {
	c := n.ensureCache(rc)
	if !c.fullSet {
		c.full, c.fullOK = n.fullBoundsUncached(rc)
		c.fullSet = true
	}
	return c.full, c.fullOK
}

func (n *Node) geometryBoundsUncached(rc *RenderContext) (Rect, bool) {
	switch n.Type {
	case NodeTypeGroup, NodeTypeRoot:
		return n.unionChildBounds(rc, (*Node).GeometryBounds)
	case NodeTypeShape:
		if n.shape == nil {
			return Rect{}, false
		}
		return n.shape.Bounds(), true
	case NodeTypeImage:
		if n.image == nil {
			return Rect{}, false
		}
		b := n.image.Bounds()
		return Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}, true
	case NodeTypeText:
		w, h := n.textSize(rc)
		if w == 0 && h == 0 {
			return Rect{}, false
		}
		return Rect{Width: w, Height: h}, true
	}
	return Rect{}, false
}

func (n *Node) primitiveBoundsUncached(rc *RenderContext) (Rect, bool) {
	if n.Type.isContainer() {
		return n.unionChildBounds(rc, (*Node).PrimitiveBounds)
	}
	g, ok := n.GeometryBounds(rc)
	if !ok {
		return Rect{}, false
	}
	if n.Type == NodeTypeShape && n.hasStroke() {
		// Strokes straddle the outline, extending half the width outward.
		g = g.grow(n.strokeWidth / 2)
	}
	return g, true
}

func (n *Node) fullBoundsUncached(rc *RenderContext) (Rect, bool) {
	var b Rect
	var ok bool
	if n.Type.isContainer() {
		b, ok = n.unionChildBounds(rc, (*Node).Bounds)
	} else {
		b, ok = n.PrimitiveBounds(rc)
	}
	if !ok {
		return Rect{}, false
	}
	if pad := filterChainPadding(n.filters); pad > 0 {
		b = b.grow(float64(pad))
	}
	if n.clip != nil {
		b, ok = b.Intersect(n.clip.Bounds())
		if !ok {
			return Rect{}, false
		}
	}
	return b, true
}

// unionChildBounds unions one bounds level across all visible children,
// mapped into this node's space by each child's local transform. Invisible
// children contribute nothing, whatever their descendants hold.
func (n *Node) unionChildBounds(rc *RenderContext, level func(*Node, *RenderContext) (Rect, bool)) (Rect, bool) {
	var u Rect
	ok := false
	for _, child := range n.children {
		if !child.visible {
			continue
		}
		cb, cok := level(child, rc)
		if !cok {
			continue
		}
		tb := child.transform.TransformRect(cb)
		if !ok {
			u = tb
			ok = true
		} else {
			u = u.Union(tb)
		}
	}
	return u, ok
}

// renderExtent is the local-space region an offscreen layer must cover to
// hold this node's primitive rendering. For containers that is the union of
// the children's full pipeline output, since a child's filters can paint
// outside its primitive bounds.
func (n *Node) renderExtent(rc *RenderContext) (Rect, bool) {
	if n.Type.isContainer() {
		return n.unionChildBounds(rc, (*Node).Bounds)
	}
	return n.PrimitiveBounds(rc)
}

func (n *Node) hasStroke() bool {
	return n.strokeWidth > 0 && n.stroke.A > 0
}
