package sylva

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is an image-space effect applied to a node's primitive rendering
// before masking and clipping.
type Filter interface {
	// Apply renders src into dst with the filter effect. src and dst have the
	// same dimensions and dst starts cleared.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels the effect needs around the source
	// (blur radius, shadow offset). Zero means the effect stays in place.
	Padding() int
}

// filterChainPadding sums the padding required by a filter chain.
func filterChainPadding(filters []Filter) int {
	total := 0
	for _, f := range filters {
		total += f.Padding()
	}
	return total
}

// applyFilters runs a filter chain over src, ping-ponging through pooled
// offscreen images. The returned image may be src itself (empty chain);
// otherwise the caller owns releasing it.
func applyFilters(filters []Filter, src *ebiten.Image, pool *offscreenPool) *ebiten.Image {
	result := src
	for _, f := range filters {
		b := result.Bounds()
		dst := pool.acquire(b.Dx(), b.Dy())
		f.Apply(result, dst)
		if result != src {
			pool.release(result)
		}
		result = dst
	}
	return result
}

// --- Built-in filters ---

// ColorScaleFilter multiplies each color channel by a constant factor.
// Factors are straight (non-premultiplied) multipliers in [0, n].
type ColorScaleFilter struct {
	R, G, B, A float32
}

// Apply draws src into dst with the channel scaling applied.
func (f ColorScaleFilter) Apply(src, dst *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.ColorScale.Scale(f.R, f.G, f.B, f.A)
	dst.DrawImage(src, &op)
}

// Padding returns 0: color scaling never grows the rendering.
func (f ColorScaleFilter) Padding() int { return 0 }

// ShadowFilter draws a black silhouette of the source, offset by
// (OffsetX, OffsetY), underneath the unmodified source.
type ShadowFilter struct {
	OffsetX, OffsetY float64
	Alpha            float32
}

// Apply draws the offset silhouette first, then the source over it.
func (f ShadowFilter) Apply(src, dst *ebiten.Image) {
	var shadow ebiten.DrawImageOptions
	shadow.GeoM.Translate(f.OffsetX, f.OffsetY)
	shadow.ColorScale.Scale(0, 0, 0, f.Alpha)
	dst.DrawImage(src, &shadow)

	var op ebiten.DrawImageOptions
	dst.DrawImage(src, &op)
}

// Padding covers the largest offset component.
func (f ShadowFilter) Padding() int {
	return int(math.Ceil(max(math.Abs(f.OffsetX), math.Abs(f.OffsetY))))
}

// BoxBlurFilter is a separable box blur with the given radius in pixels.
// Implemented with accumulating draws rather than a shader, so it stays
// correct on every backend; cost grows linearly with the radius.
type BoxBlurFilter struct {
	Radius int
}

// Apply blurs horizontally into an intermediate image, then vertically into dst.
func (f BoxBlurFilter) Apply(src, dst *ebiten.Image) {
	r := f.Radius
	if r <= 0 {
		var op ebiten.DrawImageOptions
		dst.DrawImage(src, &op)
		return
	}
	b := src.Bounds()
	tmp := ebiten.NewImage(b.Dx(), b.Dy())
	defer tmp.Deallocate()

	weight := float32(1) / float32(2*r+1)
	for dx := -r; dx <= r; dx++ {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(float64(dx), 0)
		op.ColorScale.ScaleAlpha(weight)
		op.Blend = ebiten.BlendLighter
		tmp.DrawImage(src, &op)
	}
	for dy := -r; dy <= r; dy++ {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(0, float64(dy))
		op.ColorScale.ScaleAlpha(weight)
		op.Blend = ebiten.BlendLighter
		dst.DrawImage(tmp, &op)
	}
}

// Padding equals the blur radius.
func (f BoxBlurFilter) Padding() int { return f.Radius }
