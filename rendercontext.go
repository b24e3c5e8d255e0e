package sylva

import "context"

// RenderContext carries per-traversal state through paint, bounds, and
// hit-test calls: a cooperative cancellation signal and the device scale that
// text metric resolution depends on. Nodes cache bounds keyed by the identity
// of the RenderContext pointer, so callers should allocate one context and
// reuse it across frames, creating a new one only when the viewing conditions
// change.
type RenderContext struct {
	// TextScale is the device scale used when resolving text metrics.
	// Measured text extents are snapped to the pixel grid at this scale, so
	// bounds of text nodes legitimately differ between contexts.
	TextScale float64

	ctx  context.Context
	pool offscreenPool
}

// NewRenderContext creates a render context bound to ctx. A nil ctx disables
// cancellation.
func NewRenderContext(ctx context.Context) *RenderContext {
	return &RenderContext{ctx: ctx, TextScale: 1}
}

// Context returns the cancellation context, or nil.
func (rc *RenderContext) Context() context.Context {
	return rc.ctx
}

// Err returns the context's error if the traversal has been cancelled,
// otherwise nil. Paint checks this before descending into each child.
func (rc *RenderContext) Err() error {
	if rc == nil || rc.ctx == nil {
		return nil
	}
	return rc.ctx.Err()
}

// textScale returns the effective text scale, defaulting to 1.
func (rc *RenderContext) textScale() float64 {
	if rc == nil || rc.TextScale <= 0 {
		return 1
	}
	return rc.TextScale
}
