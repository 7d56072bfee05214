package stroke

import (
	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/brush"
	"github.com/pleimann/padpaint/internal/canvas"
	"github.com/pleimann/padpaint/internal/paint"
)

// History is the part of the layer manager a stroke needs.
type History interface {
	SaveForUndo()
	ActiveSurface() canvas.Surface
}

// Controller turns trigger pressure into committed brush primitives. A
// stroke is a run of consecutive active samples and gets exactly one undo
// checkpoint, taken before its first primitive.
type Controller struct {
	brush   *brush.State
	paint   *paint.State
	history History

	active  bool
	preview bool

	log *zap.Logger
}

func New(b *brush.State, p *paint.State, h History, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{brush: b, paint: p, history: h, log: log.Named("stroke")}
}

// Apply handles one paint trigger sample. Button sources report [0, 1] and
// are remapped to [-1, 1]; -1 (released) and 0 (neutral) end the stroke.
func (c *Controller) Apply(value float64, isButton bool) {
	c.brush.UpdateSize(value, isButton)
	if c.preview {
		return
	}

	v := value
	if isButton {
		v = 2*value - 1
	}
	if v == -1 || v == 0 {
		if c.active {
			c.log.Debug("stroke ended")
		}
		c.active = false
		return
	}

	if !c.active {
		c.history.SaveForUndo()
		c.active = true
		c.log.Debug("stroke started", zap.Float64("x", c.brush.PosX), zap.Float64("y", c.brush.PosY))
	}
	c.commit()
}

func (c *Controller) commit() {
	c.stamp(c.history.ActiveSurface(), c.brush.Size)
}

// stamp draws the brush tip at the brush position in the paint colour.
// Ellipses are aligned with the direction of travel.
func (c *Controller) stamp(s canvas.Surface, size float64) {
	col := c.paint.Color()
	s.SetFillColor(col.H, col.S, col.B)

	b := c.brush
	switch b.Shape() {
	case brush.Ellipse:
		s.Push()
		s.Translate(b.PosX, b.PosY)
		s.Rotate(paint.Angle(b.VelX, b.VelY))
		s.DrawEllipse(0, 0, size, size/2)
		s.Pop()
	default:
		s.DrawCircle(b.PosX, b.PosY, size)
	}
}

// DrawCursor previews the brush on s without touching any layer. In
// preview mode the colour ring is drawn around it first.
func (c *Controller) DrawCursor(s canvas.Surface, ring paint.Ring) {
	b := c.brush
	if c.preview {
		for _, d := range c.paint.GradientRing(b.PosX, b.PosY, ring) {
			s.SetFillColor(d.Color.H, d.Color.S, d.Color.B)
			s.DrawCircle(d.X, d.Y, ring.Step)
		}
	}
	c.stamp(s, b.CursorSize())
}

func (c *Controller) Active() bool { return c.active }

// TogglePreview switches colour preview on or off. Preview suppresses
// painting but leaves a running stroke marked active.
func (c *Controller) TogglePreview() {
	c.preview = !c.preview
}

func (c *Controller) Preview() bool { return c.preview }

func (c *Controller) Reset() {
	c.active = false
	c.preview = false
}
