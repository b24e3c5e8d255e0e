package sylva

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Structural errors returned by tree mutation operations.
var (
	ErrNilChild   = errors.New("sylva: child is nil")
	ErrCycle      = errors.New("sylva: operation would create a cycle")
	ErrNotChild   = errors.New("sylva: node is not a child of this parent")
	ErrNotGroup   = errors.New("sylva: node cannot own children")
	ErrIndexRange = errors.New("sylva: child index out of range")
)

// nodeIDCounter is a plain counter, no atomic: trees are built and mutated
// from a single goroutine at a time.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used
// for all node variants to avoid interface dispatch on the hot path; Type
// selects the painting, bounds, and hit-test behavior.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy. Parent is a non-owning back-reference; ownership flows
	// strictly parent -> children.
	Parent   *Node
	children []*Node

	// Compositing attributes
	transform Affine
	composite Composite
	visible   bool
	clip      Shape
	mask      *Node
	filters   []Filter
	hints     RenderHints

	// Shape fields (NodeTypeShape)
	shape       Shape
	fill        Color
	stroke      Color
	strokeWidth float64

	// Image fields (NodeTypeImage)
	image *ebiten.Image

	// Text fields (NodeTypeText)
	textContent string
	face        text.Face

	// Listener registries (event.go)
	mouseListeners []mouseHandler
	keyListeners   []keyHandler
	nextListenerID uint32

	// Cached bounds (bounds.go), keyed by RenderContext identity.
	cache boundsCache

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.transform = IdentityAffine()
	n.composite = DefaultComposite
	n.visible = true
	n.fill = ColorWhite
}

// NewGroup creates a container node with no visual representation of its own.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewRoot creates the distinguished container node that anchors a tree.
// Every node attached below it resolves the root via Root.
func NewRoot(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeRoot}
	nodeDefaults(n)
	return n
}

// NewShape creates a node that fills and/or strokes a vector shape.
// The default is a white fill with no stroke.
func NewShape(name string, shape Shape) *Node {
	n := &Node{Name: name, Type: NodeTypeShape, shape: shape}
	nodeDefaults(n)
	return n
}

// NewImage creates a node that draws the given image at its natural size.
func NewImage(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeImage, image: img}
	nodeDefaults(n)
	return n
}

// NewText creates a node that draws content with the given face.
// Text metrics resolve against the RenderContext supplied at paint or
// bounds-query time.
func NewText(name, content string, face text.Face) *Node {
	n := &Node{Name: name, Type: NodeTypeText, textContent: content, face: face}
	nodeDefaults(n)
	return n
}

// --- Compositing attribute accessors ---
// Every geometry-affecting mutator invalidates the cached bounds of this node
// and all its ancestors, since parent bounds aggregate child bounds.

// SetTransform replaces the node's local transform.
func (n *Node) SetTransform(m Affine) {
	n.transform = m
	n.invalidateBounds()
}

// Transform returns the node's local transform.
func (n *Node) Transform() Affine {
	return n.transform
}

// GlobalTransform returns the root-to-node composition of this node's
// transform with all ancestor transforms. It is computed on demand by walking
// parent links, so ancestor transform changes are always reflected.
func (n *Node) GlobalTransform() Affine {
	m := n.transform
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.transform.Mul(m)
	}
	return m
}

// SetComposite sets the blend operator and opacity used when this node's
// rendered output is merged onto its destination.
func (n *Node) SetComposite(c Composite) {
	n.composite = c
	n.invalidateBounds()
}

// CompositeOp returns the node's composite.
func (n *Node) CompositeOp() Composite {
	return n.composite
}

// SetVisible shows or hides the node. An invisible node and its entire
// subtree are excluded from painting, bounds aggregation, and hit-testing.
func (n *Node) SetVisible(v bool) {
	n.visible = v
	n.invalidateBounds()
}

// IsVisible reports whether the node is visible.
func (n *Node) IsVisible() bool {
	return n.visible
}

// SetClip sets the shape-based clipping region, in the node's local
// coordinate space. A nil clip removes clipping.
func (n *Node) SetClip(s Shape) {
	n.clip = s
	n.invalidateBounds()
}

// Clip returns the node's clip shape, or nil.
func (n *Node) Clip() Shape {
	return n.clip
}

// SetMask sets a mask node whose rendered alpha multiplies this node's
// output. The mask node is NOT part of the tree; its transform is relative
// to the masked node's local space. Masking changes alpha only; it never
// restricts any bounds level.
func (n *Node) SetMask(mask *Node) {
	n.mask = mask
	n.invalidateBounds()
}

// Mask returns the node's mask node, or nil.
func (n *Node) Mask() *Node {
	return n.mask
}

// SetFilters sets the image-effect chain applied to the node's primitive
// rendering before masking and clipping. Filters run in slice order.
func (n *Node) SetFilters(filters ...Filter) {
	n.filters = filters
	n.invalidateBounds()
}

// Filters returns the node's filter chain. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Filters() []Filter {
	return n.filters
}

// SetHints sets the node's rendering quality hints. Hints are advisory;
// they never change geometry or hit-test results.
func (n *Node) SetHints(h RenderHints) {
	n.hints = h
	n.invalidateBounds()
}

// Hints returns the node's rendering hints.
func (n *Node) Hints() RenderHints {
	return n.hints
}

// --- Shape/image/text attribute accessors ---

// SetShape replaces a shape node's geometry.
func (n *Node) SetShape(s Shape) {
	n.shape = s
	n.invalidateBounds()
}

// ShapeGeometry returns the node's shape, or nil for non-shape nodes.
func (n *Node) ShapeGeometry() Shape {
	return n.shape
}

// SetFill sets the fill color of a shape or text node.
func (n *Node) SetFill(c Color) {
	n.fill = c
	n.invalidateBounds()
}

// Fill returns the fill color.
func (n *Node) Fill() Color {
	return n.fill
}

// SetStroke sets the stroke color and width of a shape node. A zero width or
// zero-alpha color disables stroking.
func (n *Node) SetStroke(c Color, width float64) {
	n.stroke = c
	n.strokeWidth = width
	n.invalidateBounds()
}

// Stroke returns the stroke color and width.
func (n *Node) Stroke() (Color, float64) {
	return n.stroke, n.strokeWidth
}

// SetImage replaces an image node's image.
func (n *Node) SetImage(img *ebiten.Image) {
	n.image = img
	n.invalidateBounds()
}

// Image returns the node's image, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// SetText replaces a text node's content.
func (n *Node) SetText(content string) {
	n.textContent = content
	n.invalidateBounds()
}

// Text returns the node's text content.
func (n *Node) Text() string {
	return n.textContent
}

// SetFace replaces a text node's face.
func (n *Node) SetFace(face text.Face) {
	n.face = face
	n.invalidateBounds()
}

// --- Tree manipulation ---

// AddChild appends child to this node's children. If child already has a
// parent it is removed from that parent first. Returns ErrNotGroup on leaf
// receivers, ErrNilChild for nil children, and ErrCycle if child is this
// node or one of its ancestors.
func (n *Node) AddChild(child *Node) error {
	return n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index among this node's children.
// Same reparenting and cycle rules as AddChild.
func (n *Node) AddChildAt(child *Node, index int) error {
	if !n.Type.isContainer() {
		return ErrNotGroup
	}
	if child == nil {
		return ErrNilChild
	}
	if debugEnabled {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		return ErrCycle
	}
	if index < 0 || index > len(n.children) {
		return ErrIndexRange
	}
	if child.Parent != nil {
		// Reparenting is an atomic remove-then-insert. When the old parent is
		// this node the removal shrinks the list, so clamp the index.
		child.Parent.removeChildByPtr(child)
		child.Parent.invalidateBounds()
		if index > len(n.children) {
			index = len(n.children)
		}
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.invalidateBounds()
	if debugEnabled {
		debugCheckTreeDepth(child)
	}
	return nil
}

// RemoveChild detaches child from this node. Returns ErrNotChild if child's
// parent is not this node. Removed children are NOT disposed.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil {
		return ErrNilChild
	}
	if child.Parent != n {
		return ErrNotChild
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.invalidateBounds()
	return nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, ErrIndexRange
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	n.invalidateBounds()
	return child, nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	_ = n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Root walks parent links and returns the containing root node, or nil if
// this node is not attached under a NodeTypeRoot.
func (n *Node) Root() *Node {
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	if top.Type == NodeTypeRoot {
		return top
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Destroying a container destroys its
// subtree; detach children first to keep them.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.clip = nil
	n.mask = nil
	n.filters = nil
	n.shape = nil
	n.image = nil
	n.face = nil
	n.mouseListeners = nil
	n.keyListeners = nil
	n.cache = boundsCache{}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// invalidateBounds discards the cached bounds of this node and every
// ancestor. Parent bounds aggregate child bounds in parent space, so any
// geometry-affecting mutation here can move an ancestor's extent.
func (n *Node) invalidateBounds() {
	for p := n; p != nil; p = p.Parent {
		p.cache = boundsCache{}
	}
}
