package paint

import (
	"math"

	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/canvas"
)

// MaxPaletteHues bounds the custom palette.
const MaxPaletteHues = 4

// DefaultBlendModes is the blend cycle used when none is configured.
var DefaultBlendModes = []canvas.BlendMode{canvas.Normal, canvas.Lightest, canvas.SoftLight}

// State is the current paint colour, the custom palette and the blend
// mode cycle.
type State struct {
	Hue        float64
	Saturation float64
	Brightness float64

	// StickX and StickY are the last hue/saturation stick position.
	StickX, StickY float64

	BrightnessLocked bool
	SaturationLocked bool

	palette  []float64
	selected bool

	modes     []canvas.BlendMode
	modeIndex int

	log *zap.Logger
}

func New(modes []canvas.BlendMode, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{log: log.Named("paint")}
	s.SetBlendModes(modes)
	s.Reset()
	return s
}

// Reset restores white paint, no locks, no palette and the first blend mode.
func (s *State) Reset() {
	s.Hue = 0
	s.Saturation = 0
	s.Brightness = 100
	s.StickX, s.StickY = 0, 0
	s.BrightnessLocked = false
	s.SaturationLocked = false
	s.palette = nil
	s.selected = false
	s.modeIndex = 0
}

// Angle returns the direction of (x, y) in degrees within [0, 360).
func Angle(x, y float64) float64 {
	a := math.Atan2(y, x) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// HueAt maps a stick direction to a hue. With a selected palette of N hues
// the circle is split into N sectors and the hue is interpolated linearly
// between the two palette hues bounding the sector. The interpolation runs
// straight through the numeric range, so hues 180 degrees apart may blend
// the long way round.
func (s *State) HueAt(x, y float64) float64 {
	angle := Angle(x, y)
	n := len(s.palette)
	if !s.selected || n == 0 {
		return angle
	}
	if n == 1 {
		return s.palette[0]
	}

	width := 360 / float64(n)
	i := int(math.Floor(angle / width))
	if i >= n {
		i = n - 1
	}
	h1 := s.palette[i]
	h2 := s.palette[(i+1)%n]
	t := math.Mod(angle, width) / width

	return normalizeHue(h1 + (h2-h1)*t)
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func (s *State) UpdateStickX(v float64) {
	s.StickX = v
	s.updateHueSaturation()
}

func (s *State) UpdateStickY(v float64) {
	s.StickY = v
	s.updateHueSaturation()
}

// UpdateStick sets both stick coordinates at once.
func (s *State) UpdateStick(x, y float64) {
	s.StickX, s.StickY = x, y
	s.updateHueSaturation()
}

func (s *State) updateHueSaturation() {
	s.Hue = s.HueAt(s.StickX, s.StickY)
	if s.SaturationLocked {
		return
	}
	mag := math.Hypot(s.StickX, s.StickY)
	if mag > 0.9 {
		s.Saturation = 100
	} else {
		s.Saturation = mag * 100
	}
}

// UpdateBrightness sets brightness from the second trigger. A value of
// zero is the neutral sample and leaves brightness alone.
func (s *State) UpdateBrightness(raw float64, isButton bool) {
	v := raw
	if isButton {
		v = 2*raw - 1
	}
	if s.BrightnessLocked || v == 0 {
		return
	}
	if v == -1 {
		s.Brightness = 100
		return
	}
	s.Brightness = 50 * (1 - v)
}

func (s *State) Color() canvas.HSB {
	return canvas.HSB{H: s.Hue, S: s.Saturation, B: s.Brightness}
}

// AddCurrentHueToPalette appends the current hue. It is rejected once the
// palette is full or selected.
func (s *State) AddCurrentHueToPalette() bool {
	if len(s.palette) >= MaxPaletteHues || s.selected {
		s.log.Debug("palette hue rejected",
			zap.Int("size", len(s.palette)),
			zap.Bool("selected", s.selected))
		return false
	}
	s.palette = append(s.palette, s.Hue)
	return true
}

// TogglePaletteSelection switches between palette and free hue picking.
// Deselecting discards the palette. An empty palette cannot be selected.
func (s *State) TogglePaletteSelection() bool {
	if len(s.palette) == 0 {
		return false
	}
	s.selected = !s.selected
	if !s.selected {
		s.palette = nil
	}
	return true
}

// Palette returns a copy of the palette hues.
func (s *State) Palette() []float64 {
	out := make([]float64, len(s.palette))
	copy(out, s.palette)
	return out
}

func (s *State) PaletteSelected() bool { return s.selected }

func (s *State) ToggleBrightnessLock() { s.BrightnessLocked = !s.BrightnessLocked }

func (s *State) ToggleSaturationLock() { s.SaturationLocked = !s.SaturationLocked }

// SetBlendModes replaces the blend cycle, keeping the current position
// when it is still in range.
func (s *State) SetBlendModes(modes []canvas.BlendMode) {
	if len(modes) == 0 {
		modes = DefaultBlendModes
	}
	s.modes = append([]canvas.BlendMode(nil), modes...)
	if s.modeIndex >= len(s.modes) {
		s.modeIndex = 0
	}
}

// CycleBlendMode advances to the next blend mode and returns it.
func (s *State) CycleBlendMode() canvas.BlendMode {
	s.modeIndex = (s.modeIndex + 1) % len(s.modes)
	return s.modes[s.modeIndex]
}

func (s *State) BlendMode() canvas.BlendMode {
	return s.modes[s.modeIndex]
}
