package sylva

import "github.com/hajimehoshi/ebiten/v2"

// Dispatcher polls device input once per frame and converts it into events
// dispatched through the tree. Mouse events target the deepest node under the
// cursor; key events target the focus node, falling back to the root.
type Dispatcher struct {
	root  *Node
	focus *Node

	mouseDown bool
	button    MouseButton
	pressNode *Node
	lastX     float64
	lastY     float64

	keysDown [ebiten.KeyMax + 1]bool
	runeBuf  []rune
}

// NewDispatcher creates a dispatcher for the given tree.
func NewDispatcher(root *Node) *Dispatcher {
	return &Dispatcher{root: root}
}

// SetFocus directs key events to the given node. A nil focus routes key
// events to the root.
func (d *Dispatcher) SetFocus(n *Node) { d.focus = n }

// Focus returns the current focus node, or nil.
func (d *Dispatcher) Focus() *Node { return d.focus }

// Update reads the current device state and dispatches the resulting events.
// Call once per frame from the game's update step.
func (d *Dispatcher) Update(rc *RenderContext) {
	mods := readModifiers()
	d.updateMouse(rc, mods)
	d.updateKeys(mods)
}

// DispatchMouseAt resolves the node under the device-space point (x, y),
// fills in coordinates, and dispatches a mouse event of the given type to it.
// Events over empty space fall through to the root. The hit node is returned.
func (d *Dispatcher) DispatchMouseAt(rc *RenderContext, typ EventType, x, y float64, button MouseButton, mods KeyModifiers) *Node {
	target := d.hitAt(rc, x, y)
	d.dispatchMouse(target, typ, x, y, button, mods)
	return target
}

// DispatchKey dispatches e to the focus node, or the root when nothing holds
// focus.
func (d *Dispatcher) DispatchKey(e *KeyEvent) {
	focus := d.focus
	if focus == nil {
		focus = d.root
	}
	focus.DispatchKeyEvent(e)
}

// hitAt maps a device-space point into root space and hit-tests the tree.
func (d *Dispatcher) hitAt(rc *RenderContext, x, y float64) *Node {
	lx, ly := d.root.transform.Invert().Apply(x, y)
	return d.root.NodeHitAt(rc, lx, ly)
}

func (d *Dispatcher) updateMouse(rc *RenderContext, mods KeyModifiers) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	target := d.hitAt(rc, x, y)

	pressed, button := pressedMouseButton()
	if d.mouseDown {
		// A press pins its button for the whole interaction.
		button = d.button
	}

	switch {
	case pressed && !d.mouseDown:
		d.mouseDown = true
		d.button = button
		d.pressNode = target
		d.dispatchMouse(target, EventMouseDown, x, y, button, mods)
	case !pressed && d.mouseDown:
		d.mouseDown = false
		d.dispatchMouse(target, EventMouseUp, x, y, button, mods)
		if target != nil && target == d.pressNode {
			d.dispatchMouse(target, EventMouseClick, x, y, button, mods)
		}
		d.pressNode = nil
	default:
		if x != d.lastX || y != d.lastY {
			d.dispatchMouse(target, EventMouseMove, x, y, button, mods)
		}
	}
	d.lastX = x
	d.lastY = y
}

func (d *Dispatcher) updateKeys(mods KeyModifiers) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		down := ebiten.IsKeyPressed(k)
		if down == d.keysDown[k] {
			continue
		}
		d.keysDown[k] = down
		typ := EventKeyUp
		if down {
			typ = EventKeyDown
		}
		d.DispatchKey(&KeyEvent{Type: typ, Key: k, Modifiers: mods})
	}
	d.runeBuf = ebiten.AppendInputChars(d.runeBuf[:0])
	for _, r := range d.runeBuf {
		d.DispatchKey(&KeyEvent{Type: EventKeyTyped, Rune: r, Modifiers: mods})
	}
}

// dispatchMouse fills in local coordinates for the target and dispatches.
// Events with no hit node fall through to the root so scene-level listeners
// still see them.
func (d *Dispatcher) dispatchMouse(target *Node, typ EventType, x, y float64, button MouseButton, mods KeyModifiers) {
	if target == nil {
		target = d.root
	}
	lx, ly := target.GlobalTransform().Invert().Apply(x, y)
	target.DispatchMouseEvent(&MouseEvent{
		Type: typ, X: x, Y: y, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods,
	})
}

func pressedMouseButton() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	default:
		return false, MouseButtonLeft
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
