package sylva

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is the zero color; fills and strokes with zero alpha are
// skipped entirely during painting.
var ColorTransparent = Color{}

// Vec2 is a 2D vector used for positions, offsets, and polygon points.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest Rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersect returns the overlap of r and other. The second return value is
// false when the rectangles do not overlap.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	minX := max(r.X, other.X)
	minY := max(r.Y, other.Y)
	maxX := min(r.X+r.Width, other.X+other.Width)
	maxY := min(r.Y+r.Height, other.Y+other.Height)
	if maxX < minX || maxY < minY {
		return Rect{}, false
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// grow returns r expanded by pad on every side.
func (r Rect) grow(pad float64) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, Width: r.Width + 2*pad, Height: r.Height + 2*pad}
}

// BlendMode selects the composite operator used to merge a node's rendered
// output onto its destination. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendMask                      // clip destination to source alpha
	BlendBelow                     // destination-over (draw behind existing content)
	BlendNone                      // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendBelow:
		return ebiten.BlendDestinationOver
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// Composite describes how a node's final rendered output is merged onto the
// destination: a blend operator plus a scalar opacity multiplier.
type Composite struct {
	Mode    BlendMode
	Opacity float64
}

// DefaultComposite is plain source-over compositing at full opacity.
var DefaultComposite = Composite{Mode: BlendNormal, Opacity: 1}

// isDefault reports whether compositing can be folded into a leaf's own draw
// call instead of requiring an offscreen layer.
func (c Composite) isDefault() bool {
	return c.Mode == BlendNormal && c.Opacity == 1
}

// NodeType distinguishes painting and bounds behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup NodeType = iota // container with no visual output of its own
	NodeTypeRoot                  // distinguished group anchoring a tree
	NodeTypeShape                 // fills and/or strokes a vector Shape
	NodeTypeImage                 // draws an ebiten.Image
	NodeTypeText                  // draws text with a text/v2 face
)

// isContainer reports whether the node type owns children.
func (t NodeType) isContainer() bool {
	return t == NodeTypeGroup || t == NodeTypeRoot
}

// EventType identifies a kind of node event.
type EventType uint8

const (
	EventMouseDown  EventType = iota // a mouse button was pressed
	EventMouseUp                     // a mouse button was released
	EventMouseMove                   // the mouse moved
	EventMouseClick                  // press and release over the same node
	EventKeyDown                     // a key was pressed
	EventKeyUp                       // a key was released
	EventKeyTyped                    // a character was produced
)

// Phase is the traversal direction an event is currently in.
type Phase uint8

const (
	PhaseBubble  Phase = iota // target -> root
	PhaseCapture              // root -> target
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// whiteImage backs solid-color triangle rendering. A 1x1 region in the middle
// of a 3x3 image is used as the source so antialiased edges never sample
// outside the white texels.
var whiteImage = ebiten.NewImage(3, 3)

var whitePixel = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

func init() {
	whiteImage.Fill(color.White)
}
