package canvas

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// Surface is the drawing capability the painting core needs.
type Surface interface {
	SetFillColor(h, s, b float64)
	DrawCircle(x, y, diameter float64)
	DrawEllipse(x, y, w, h float64)
	Push()
	Translate(x, y float64)
	Rotate(degrees float64)
	Pop()
	// Clear makes every pixel transparent.
	Clear()
	// Fill paints every pixel with an opaque colour.
	Fill(h, s, b float64)
	// CompositeFrom draws src over the surface with its origin at x, y.
	// It always composites source-over, whatever the blend mode.
	CompositeFrom(src Surface, x, y int)
	SetBlendMode(mode BlendMode)
	BlendMode() BlendMode
	Image() *image.RGBA
}

// transform is a rigid transform: a rotation followed by a translation.
type transform struct {
	tx, ty float64
	theta  float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	sin, cos := math.Sincos(t.theta)
	return t.tx + x*cos - y*sin, t.ty + x*sin + y*cos
}

// Canvas is a Surface backed by an RGBA image and a gg context.
type Canvas struct {
	img   *image.RGBA
	dc    *gg.Context
	fill  HSB
	mode  BlendMode
	xf    transform
	stack []transform

	// scratch holds primitives drawn under a non-normal blend mode
	// before they are blended into img.
	scratch *image.RGBA
	sdc     *gg.Context
}

// New allocates a transparent canvas.
func New(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(basicfont.Face7x13)
	return &Canvas{
		img:  img,
		dc:   dc,
		mode: Normal,
	}
}

func (c *Canvas) Width() int  { return c.img.Bounds().Dx() }
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) SetFillColor(h, s, b float64) {
	c.fill = HSB{H: h, S: s, B: b}
}

func (c *Canvas) FillColor() HSB { return c.fill }

func (c *Canvas) SetBlendMode(mode BlendMode) { c.mode = mode }

func (c *Canvas) BlendMode() BlendMode { return c.mode }

func (c *Canvas) Push() {
	c.stack = append(c.stack, c.xf)
}

func (c *Canvas) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.xf = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(x, y float64) {
	c.xf.tx, c.xf.ty = c.xf.apply(x, y)
}

func (c *Canvas) Rotate(degrees float64) {
	c.xf.theta += gg.Radians(degrees)
}

func (c *Canvas) DrawCircle(x, y, diameter float64) {
	r := diameter / 2
	c.paint(x, y, r, func(dc *gg.Context) {
		dc.DrawCircle(x, y, r)
	})
}

func (c *Canvas) DrawEllipse(x, y, w, h float64) {
	rx, ry := w/2, h/2
	c.paint(x, y, math.Max(rx, ry), func(dc *gg.Context) {
		dc.DrawEllipse(x, y, rx, ry)
	})
}

// DrawText draws s centred on x, y in the fill colour, ignoring the blend
// mode.
func (c *Canvas) DrawText(s string, x, y float64) {
	c.dc.Push()
	c.dc.Identity()
	c.dc.Translate(c.xf.tx, c.xf.ty)
	c.dc.Rotate(c.xf.theta)
	c.dc.SetColor(c.fill)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
	c.dc.Pop()
}

// paint fills the path built by draw. x, y and radius bound the primitive
// in local coordinates.
func (c *Canvas) paint(x, y, radius float64, build func(dc *gg.Context)) {
	if radius <= 0 {
		return
	}
	if c.mode == Normal || c.mode == "" {
		c.fillPath(c.dc, build)
		return
	}

	if c.scratch == nil {
		c.scratch = image.NewRGBA(c.img.Bounds())
		c.sdc = gg.NewContextForRGBA(c.scratch)
	}
	c.fillPath(c.sdc, build)

	cx, cy := c.xf.apply(x, y)
	pad := radius + 2
	r := image.Rect(
		int(math.Floor(cx-pad)), int(math.Floor(cy-pad)),
		int(math.Ceil(cx+pad)), int(math.Ceil(cy+pad)),
	)
	blendRect(c.img, c.scratch, r, c.mode)
	draw.Draw(c.scratch, r.Intersect(c.scratch.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) fillPath(dc *gg.Context, build func(dc *gg.Context)) {
	dc.Push()
	dc.Identity()
	dc.Translate(c.xf.tx, c.xf.ty)
	dc.Rotate(c.xf.theta)
	dc.SetColor(c.fill)
	build(dc)
	dc.Fill()
	dc.Pop()
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) Fill(h, s, b float64) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(HSB{H: h, S: s, B: b}), image.Point{}, draw.Src)
}

func (c *Canvas) CompositeFrom(src Surface, x, y int) {
	c.DrawImage(src.Image(), x, y)
}

// DrawImage draws img over the canvas with its origin at x, y.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	draw.Copy(c.img, image.Pt(x, y), img, img.Bounds(), draw.Over, nil)
}
