package brush

import (
	"math"

	"go.uber.org/zap"
)

// Shape is a brush tip.
type Shape string

const (
	Circle  Shape = "circle"
	Ellipse Shape = "ellipse"
)

// Shapes is the cycle order of brush tips.
var Shapes = []Shape{Circle, Ellipse}

// NominalFrameRate is the rate movement speeds are tuned for.
const NominalFrameRate = 60.0

// Axis selects the horizontal or vertical motion channel.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Config holds the fixed brush parameters.
type Config struct {
	Width        float64
	Height       float64
	MinSize      float64
	BaseMaxSize  float64
	MaxSizeSteps int
	MoveSpeed    float64
	Deadzone     float64
}

// State is the brush: position, velocity, size and shape.
type State struct {
	cfg Config
	log *zap.Logger

	PosX, PosY        float64
	VelX, VelY        float64
	Size              float64
	MinSize           float64
	MaxSize           float64
	MaxSizeMultiplier int
	ShapeIndex        int
	SizeLocked        bool
}

func New(cfg Config, log *zap.Logger) *State {
	if cfg.MaxSizeSteps < 1 {
		cfg.MaxSizeSteps = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{cfg: cfg, log: log.Named("brush")}
	s.Reset()
	return s
}

// Reset restores the initial brush, centred on the canvas.
func (s *State) Reset() {
	s.PosX = s.cfg.Width / 2
	s.PosY = s.cfg.Height / 2
	s.VelX, s.VelY = 0, 0
	s.MinSize = s.cfg.MinSize
	s.Size = s.cfg.MinSize
	s.MaxSizeMultiplier = 1
	s.MaxSize = s.cfg.BaseMaxSize
	s.ShapeIndex = 0
	s.SizeLocked = false
}

// SetMotion updates the tunables that may change on config reload.
func (s *State) SetMotion(moveSpeed, deadzone float64) {
	s.cfg.MoveSpeed = moveSpeed
	s.cfg.Deadzone = deadzone
}

// MoveAxis advances the brush along one axis. Values inside the deadzone
// are ignored. The brush moves while strictly inside the canvas, or when
// sitting on an edge and pushed back inward. Reports whether it moved.
func (s *State) MoveAxis(axis Axis, value, frameRate float64) bool {
	if math.Abs(value) <= s.cfg.Deadzone {
		return false
	}
	if frameRate <= 0 {
		frameRate = NominalFrameRate
	}

	pos, vel, extent := &s.PosX, &s.VelX, s.cfg.Width
	if axis == AxisY {
		pos, vel, extent = &s.PosY, &s.VelY, s.cfg.Height
	}

	p := *pos
	if (p <= 0 && value > 0) || (p >= extent && value < 0) || (p > 0 && p < extent) {
		*vel = s.cfg.MoveSpeed * value * (NominalFrameRate / frameRate)
		*pos += *vel
		return true
	}
	return false
}

// UpdateSize sets the size from trigger pressure. Button sources report
// [0, 1] and are remapped to [-1, 1]. Locked sizes do not change.
func (s *State) UpdateSize(raw float64, isButton bool) {
	v := raw
	if isButton {
		v = 2*raw - 1
	}
	if s.SizeLocked {
		return
	}
	s.Size = s.MinSize + ((v+1)/2)*s.MaxSize
}

// CycleMaxSize steps the max-size multiplier, wrapping back to one.
func (s *State) CycleMaxSize() {
	s.MaxSizeMultiplier++
	if s.MaxSizeMultiplier > s.cfg.MaxSizeSteps {
		s.MaxSizeMultiplier = 1
	}
	s.MaxSize = float64(s.MaxSizeMultiplier) * s.cfg.BaseMaxSize
	s.log.Debug("max size changed", zap.Float64("max_size", s.MaxSize))
}

func (s *State) CycleShape() {
	s.ShapeIndex = (s.ShapeIndex + 1) % len(Shapes)
}

func (s *State) Shape() Shape {
	return Shapes[s.ShapeIndex]
}

func (s *State) ToggleSizeLock() {
	s.SizeLocked = !s.SizeLocked
}

// CursorSize is the diameter used to preview the brush. A brush that has
// not been sized yet previews at half its range.
func (s *State) CursorSize() float64 {
	if s.Size > 0 {
		return s.Size
	}
	return (s.MaxSize - s.MinSize) / 2
}
