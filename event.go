package sylva

import "github.com/hajimehoshi/ebiten/v2"

// MouseEvent carries a pointer interaction delivered to the tree. X and Y are
// in the dispatch root's coordinate space; LocalX and LocalY are the same
// point mapped into the target node's local space.
type MouseEvent struct {
	Type           EventType
	X, Y           float64
	LocalX, LocalY float64
	Button         MouseButton
	Modifiers      KeyModifiers
	Target         *Node
	Current        *Node
	Phase          Phase
	consumed       bool
}

// Consume marks the event as handled. No further nodes on the propagation
// path receive it; listeners already queued on the current node still run.
func (e *MouseEvent) Consume() { e.consumed = true }

// Consumed reports whether a listener consumed the event.
func (e *MouseEvent) Consumed() bool { return e.consumed }

// KeyEvent carries a keyboard interaction delivered to the tree.
type KeyEvent struct {
	Type      EventType
	Key       ebiten.Key
	Rune      rune
	Modifiers KeyModifiers
	Target    *Node
	Current   *Node
	Phase     Phase
	consumed  bool
}

// Consume marks the event as handled.
func (e *KeyEvent) Consume() { e.consumed = true }

// Consumed reports whether a listener consumed the event.
func (e *KeyEvent) Consumed() bool { return e.consumed }

type mouseHandler struct {
	id      uint32
	typ     EventType
	capture bool
	fn      func(*MouseEvent)
}

type keyHandler struct {
	id      uint32
	typ     EventType
	capture bool
	fn      func(*KeyEvent)
}

// listenerKind selects which registry a ListenerHandle points into.
type listenerKind uint8

const (
	listenerMouse listenerKind = iota
	listenerKey
)

// ListenerHandle identifies a registered listener so it can be removed.
// Function values are not comparable, so removal goes through the handle's id
// rather than the function itself.
type ListenerHandle struct {
	node *Node
	kind listenerKind
	id   uint32
}

// Remove unregisters the listener. Safe to call more than once, and safe to
// call from inside a listener during dispatch.
func (h ListenerHandle) Remove() {
	if h.node == nil {
		return
	}
	switch h.kind {
	case listenerMouse:
		for i, l := range h.node.mouseListeners {
			if l.id == h.id {
				h.node.mouseListeners = append(h.node.mouseListeners[:i], h.node.mouseListeners[i+1:]...)
				return
			}
		}
	case listenerKey:
		for i, l := range h.node.keyListeners {
			if l.id == h.id {
				h.node.keyListeners = append(h.node.keyListeners[:i], h.node.keyListeners[i+1:]...)
				return
			}
		}
	}
}

// OnMouse registers fn for the bubble phase of mouse events of the given type
// on this node.
func (n *Node) OnMouse(typ EventType, fn func(*MouseEvent)) ListenerHandle {
	return n.addMouseListener(typ, false, fn)
}

// OnMouseCapture registers fn for the capture phase, which runs root-to-target
// before any bubble listener.
func (n *Node) OnMouseCapture(typ EventType, fn func(*MouseEvent)) ListenerHandle {
	return n.addMouseListener(typ, true, fn)
}

// OnKey registers fn for the bubble phase of key events of the given type.
func (n *Node) OnKey(typ EventType, fn func(*KeyEvent)) ListenerHandle {
	return n.addKeyListener(typ, false, fn)
}

// OnKeyCapture registers fn for the capture phase of key events.
func (n *Node) OnKeyCapture(typ EventType, fn func(*KeyEvent)) ListenerHandle {
	return n.addKeyListener(typ, true, fn)
}

func (n *Node) addMouseListener(typ EventType, capture bool, fn func(*MouseEvent)) ListenerHandle {
	n.nextListenerID++
	id := n.nextListenerID
	n.mouseListeners = append(n.mouseListeners, mouseHandler{id: id, typ: typ, capture: capture, fn: fn})
	return ListenerHandle{node: n, kind: listenerMouse, id: id}
}

func (n *Node) addKeyListener(typ EventType, capture bool, fn func(*KeyEvent)) ListenerHandle {
	n.nextListenerID++
	id := n.nextListenerID
	n.keyListeners = append(n.keyListeners, keyHandler{id: id, typ: typ, capture: capture, fn: fn})
	return ListenerHandle{node: n, kind: listenerKey, id: id}
}

// MouseListeners returns the currently registered mouse listener callbacks in
// insertion order, capture and bubble alike. The slice is a snapshot; later
// registrations or removals do not affect it.
func (n *Node) MouseListeners() []func(*MouseEvent) {
	if len(n.mouseListeners) == 0 {
		return nil
	}
	out := make([]func(*MouseEvent), len(n.mouseListeners))
	for i, l := range n.mouseListeners {
		out[i] = l.fn
	}
	return out
}

// KeyListeners returns the currently registered key listener callbacks in
// insertion order.
func (n *Node) KeyListeners() []func(*KeyEvent) {
	if len(n.keyListeners) == 0 {
		return nil
	}
	out := make([]func(*KeyEvent), len(n.keyListeners))
	for i, l := range n.keyListeners {
		out[i] = l.fn
	}
	return out
}

// --- Dispatch ---

// DispatchMouseEvent delivers e to this node's tree: capture listeners run
// from the outermost ancestor down to this node, then bubble listeners run
// from this node back up. The Target is set to this node. Listener sets are
// snapshotted per node before invocation, so listeners may register or remove
// listeners without affecting the in-flight dispatch.
func (n *Node) DispatchMouseEvent(e *MouseEvent) {
	e.Target = n
	path := ancestorPath(n)
	for i := len(path) - 1; i >= 0 && !e.consumed; i-- {
		path[i].fireMouse(e, PhaseCapture)
	}
	for _, node := range path {
		if e.consumed {
			return
		}
		node.fireMouse(e, PhaseBubble)
	}
}

// DispatchKeyEvent delivers e with the same capture-then-bubble propagation
// as DispatchMouseEvent.
func (n *Node) DispatchKeyEvent(e *KeyEvent) {
	e.Target = n
	path := ancestorPath(n)
	for i := len(path) - 1; i >= 0 && !e.consumed; i-- {
		path[i].fireKey(e, PhaseCapture)
	}
	for _, node := range path {
		if e.consumed {
			return
		}
		node.fireKey(e, PhaseBubble)
	}
}

func (n *Node) fireMouse(e *MouseEvent, phase Phase) {
	if len(n.mouseListeners) == 0 {
		return
	}
	e.Current = n
	e.Phase = phase
	snapshot := make([]mouseHandler, len(n.mouseListeners))
	copy(snapshot, n.mouseListeners)
	for _, l := range snapshot {
		if l.capture == (phase == PhaseCapture) && l.typ == e.Type {
			l.fn(e)
		}
	}
}

func (n *Node) fireKey(e *KeyEvent, phase Phase) {
	if len(n.keyListeners) == 0 {
		return
	}
	e.Current = n
	e.Phase = phase
	snapshot := make([]keyHandler, len(n.keyListeners))
	copy(snapshot, n.keyListeners)
	for _, l := range snapshot {
		if l.capture == (phase == PhaseCapture) && l.typ == e.Type {
			l.fn(e)
		}
	}
}

// ancestorPath returns the chain node, parent, ..., top.
func ancestorPath(n *Node) []*Node {
	var path []*Node
	for p := n; p != nil; p = p.Parent {
		path = append(path, p)
	}
	return path
}
