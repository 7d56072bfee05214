package canvas

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// HSB is a colour with hue in degrees and saturation and brightness in
// percent.
type HSB struct {
	H, S, B float64
}

// RGBA implements color.Color.
func (c HSB) RGBA() (r, g, b, a uint32) {
	return c.colorful().RGBA()
}

func (c HSB) colorful() colorful.Color {
	h := c.H
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return colorful.Hsv(h, clampUnit(c.S/100), clampUnit(c.B/100)).Clamped()
}

func (c HSB) String() string {
	return fmt.Sprintf("hsb(%.0f, %.0f%%, %.0f%%)", c.H, c.S, c.B)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
