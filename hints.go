package sylva

import "github.com/hajimehoshi/ebiten/v2"

// AntialiasHint controls edge antialiasing of vector geometry.
type AntialiasHint uint8

const (
	AntialiasDefault AntialiasHint = iota // antialiasing on
	AntialiasOn
	AntialiasOff
)

// InterpolationHint controls sampling when images are scaled or rotated.
type InterpolationHint uint8

const (
	InterpolationDefault InterpolationHint = iota // bilinear
	InterpolationNearest
	InterpolationLinear
)

// RenderHints is a closed set of rendering-quality preferences. Hints are
// advisory: they influence how a node is rasterized, never what geometry it
// occupies. The zero value selects all defaults.
type RenderHints struct {
	Antialias     AntialiasHint
	Interpolation InterpolationHint
}

// antialias resolves the hint to a concrete flag.
func (h RenderHints) antialias() bool {
	return h.Antialias != AntialiasOff
}

// ebitenFilter resolves the interpolation hint to an ebiten.Filter.
func (h RenderHints) ebitenFilter() ebiten.Filter {
	if h.Interpolation == InterpolationNearest {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}
