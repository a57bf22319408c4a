package layout

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"

	"github.com/phil-mansfield/rigidgrid/geom"
)

// Texture packs normalized particle positions into an image with one texel
// per particle. Components are clamped to [0, 1] and stored as R, G and B.
// Texels without a particle are transparent. An error is returned if there
// are more particles than texels.
func (l *Layout) Texture(ps []geom.Vec) (*image.NRGBA, error) {
	if len(ps) > l.Len() {
		return nil, fmt.Errorf(
			"%d particles do not fit in a %dx%d texture.",
			len(ps), l.EdgeLength, l.EdgeLength,
		)
	}

	img := image.NewNRGBA(image.Rect(0, 0, l.EdgeLength, l.EdgeLength))
	for i := range ps {
		x, y := l.ParticleCoords(i)
		img.SetNRGBA(x, y, color.NRGBA{
			R: channel(ps[i][0]), G: channel(ps[i][1]), B: channel(ps[i][2]),
			A: 255,
		})
	}
	return img, nil
}

// WriteWebP writes the texture of ps to w as a lossless WebP image.
func (l *Layout) WriteWebP(w io.Writer, ps []geom.Vec) error {
	img, err := l.Texture(ps)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}

func channel(x float64) uint8 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	} else if x >= 1 {
		return 255
	}
	return uint8(x*255 + 0.5)
}
