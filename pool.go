package sylva

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// offscreenPool hands out scratch ebiten.Images for layered painting,
// bucketed by power-of-two dimensions so nodes with nearby extents share
// textures. Each RenderContext owns one pool; traversals with distinct
// contexts never contend.
type offscreenPool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey folds a width/height pair into one bucket key.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// acquire returns a cleared scratch image with at least (w, h) pixels,
// rounding each dimension up to the next power of two.
func (p *offscreenPool) acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// release puts an image back in its bucket. Clearing is deferred to the
// next acquire so a release/acquire pair within one frame pays for only
// one clear.
func (p *offscreenPool) release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
