package canvas

import (
	"fmt"
	"image"
	"math"
)

// BlendMode is the compositing function used when painting onto a surface.
type BlendMode string

const (
	Normal    BlendMode = "source-over"
	Lightest  BlendMode = "lighten"
	SoftLight BlendMode = "soft-light"
)

// ParseBlendMode accepts the mode names used in configuration.
func ParseBlendMode(s string) (BlendMode, error) {
	switch BlendMode(s) {
	case Normal, Lightest, SoftLight:
		return BlendMode(s), nil
	case "normal", "blend":
		return Normal, nil
	case "lightest":
		return Lightest, nil
	}
	return "", fmt.Errorf("unknown blend mode %q", s)
}

// channel applies the separable blend function to one colour channel.
// cb is the backdrop, cs the source, both non-premultiplied in [0, 1].
func (m BlendMode) channel(cb, cs float64) float64 {
	switch m {
	case Lightest:
		return math.Max(cb, cs)
	case SoftLight:
		if cs <= 0.5 {
			return cb - (1-2*cs)*cb*(1-cb)
		}
		var d float64
		if cb <= 0.25 {
			d = ((16*cb-12)*cb + 4) * cb
		} else {
			d = math.Sqrt(cb)
		}
		return cb + (2*cs-1)*(d-cb)
	default:
		return cs
	}
}

// blendRect composites src onto dst inside r with mode, then source-over.
// Both images are premultiplied RGBA of the same bounds.
func blendRect(dst, src *image.RGBA, r image.Rectangle, mode BlendMode) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			si := src.PixOffset(x, y)
			sa := src.Pix[si+3]
			if sa == 0 {
				continue
			}
			di := dst.PixOffset(x, y)

			as := float64(sa) / 255
			ab := float64(dst.Pix[di+3]) / 255
			for c := 0; c < 3; c++ {
				cs := float64(src.Pix[si+c]) / 255 / as
				var cb float64
				if ab > 0 {
					cb = float64(dst.Pix[di+c]) / 255 / ab
				}
				cm := (1-ab)*cs + ab*mode.channel(cb, cs)
				co := as*cm + ab*cb*(1-as)
				dst.Pix[di+c] = toByte(co)
			}
			dst.Pix[di+3] = toByte(as + ab*(1-as))
		}
	}
}

func toByte(v float64) uint8 {
	v = clampUnit(v)*255 + 0.5
	return uint8(v)
}
