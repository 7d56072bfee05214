package paint

import (
	"math"

	"github.com/pleimann/padpaint/internal/canvas"
)

// highlightTolerance is how far, in degrees, a ring hue may sit from a
// highlighted hue and still be drawn at full brightness.
const highlightTolerance = 10

// Ring sizes the colour preview drawn around the cursor.
type Ring struct {
	MinRadius float64
	MaxRadius float64
	Step      float64
}

// Dot is one sample of the preview ring.
type Dot struct {
	X, Y  float64
	Color canvas.HSB
}

// GradientRing samples the hue/saturation wheel around (cx, cy). Hue
// follows HueAt for the offset direction and saturation grows with the
// radius. When palette hues or a strongly saturated stick direction are
// highlighted, the rest of the ring is dimmed.
func (s *State) GradientRing(cx, cy float64, r Ring) []Dot {
	step := r.Step
	if step <= 0 {
		step = 1
	}

	var highlights []float64
	if !s.selected {
		highlights = append(highlights, s.palette...)
	}
	if s.Saturation > 50 {
		highlights = append(highlights, Angle(s.StickX, s.StickY))
	}

	var dots []Dot
	for dx := -r.MaxRadius; dx < r.MaxRadius; dx += step {
		for dy := -r.MaxRadius; dy < r.MaxRadius; dy += step {
			rad := math.Hypot(dx, dy)
			if rad <= r.MinRadius || rad > r.MaxRadius {
				continue
			}

			bright := 100.0
			if len(highlights) > 0 && nearestHueDistance(Angle(dx, dy), highlights) > highlightTolerance {
				bright = 50
			}

			dots = append(dots, Dot{
				X: cx + dx,
				Y: cy + dy,
				Color: canvas.HSB{
					H: s.HueAt(dx, dy),
					S: rad / r.MaxRadius * 100,
					B: bright,
				},
			})
		}
	}
	return dots
}

func nearestHueDistance(angle float64, hues []float64) float64 {
	best := math.Inf(1)
	for _, h := range hues {
		d := math.Abs(normalizeHue(h - angle))
		if d > 180 {
			d = 360 - d
		}
		if d < best {
			best = d
		}
	}
	return best
}
