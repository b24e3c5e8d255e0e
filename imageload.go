package sylva

import (
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadImage opens the locator's stream, decodes the image, and uploads it as
// an ebiten.Image. Compressed payloads are unwrapped by the locator before
// decoding.
func LoadImage(ctx context.Context, l *Locator) (*ebiten.Image, error) {
	rc, err := l.OpenStream(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("sylva: decode %s: %w", l.String(), err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadImageNode is a convenience that loads the locator's image into a new
// image node.
func LoadImageNode(ctx context.Context, name string, l *Locator) (*Node, error) {
	img, err := LoadImage(ctx, l)
	if err != nil {
		return nil, err
	}
	return NewImage(name, img), nil
}
