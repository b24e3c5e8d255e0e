package sylva

// ContainsPoint reports whether the point, given in this node's local
// coordinate space, falls on the node's sensitive area. Invisible nodes never
// contain a point. A clip restricts the sensitive area; a mask restricts it
// to where the mask itself would hit.
func (n *Node) ContainsPoint(rc *RenderContext, x, y float64) bool {
	if !n.visible {
		return false
	}
	if n.clip != nil && !n.clip.Contains(x, y) {
		return false
	}
	if n.mask != nil && !n.maskContains(rc, x, y) {
		return false
	}
	switch n.Type {
	case NodeTypeGroup, NodeTypeRoot:
		for _, child := range n.children {
			cx, cy := child.transform.Invert().Apply(x, y)
			if child.ContainsPoint(rc, cx, cy) {
				return true
			}
		}
		return false
	case NodeTypeShape:
		return n.shape != nil && n.shape.Contains(x, y)
	default:
		b, ok := n.GeometryBounds(rc)
		return ok && b.Contains(x, y)
	}
}

// NodeHitAt returns the deepest node under the point, given in this node's
// local coordinate space. Children are probed in reverse child order so the
// topmost sibling wins. A container only reports itself when no descendant
// hits and the container itself has no sensitive area of its own, so a group
// returns nil rather than itself.
func (n *Node) NodeHitAt(rc *RenderContext, x, y float64) *Node {
	if !n.visible {
		return nil
	}
	if n.clip != nil && !n.clip.Contains(x, y) {
		return nil
	}
	if n.mask != nil && !n.maskContains(rc, x, y) {
		return nil
	}
	if n.Type.isContainer() {
		for i := len(n.children) - 1; i >= 0; i-- {
			child := n.children[i]
			cx, cy := child.transform.Invert().Apply(x, y)
			if hit := child.NodeHitAt(rc, cx, cy); hit != nil {
				return hit
			}
		}
		return nil
	}
	if n.ContainsPoint(rc, x, y) {
		return n
	}
	return nil
}

// Intersects reports whether the node's full extent overlaps r, both in this
// node's local coordinate space. It is a conservative rectangle test, not an
// exact outline test.
func (n *Node) Intersects(rc *RenderContext, r Rect) bool {
	if !n.visible {
		return false
	}
	b, ok := n.Bounds(rc)
	return ok && b.Intersects(r)
}

// maskContains maps the point into the mask node's space and probes it.
func (n *Node) maskContains(rc *RenderContext, x, y float64) bool {
	mx, my := n.mask.transform.Invert().Apply(x, y)
	return n.mask.ContainsPoint(rc, mx, my)
}
