package hud

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	background = color.RGBA{A: 255}
	foreground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dim        = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// swatchSize is the edge of the current-colour square.
const swatchSize = 32

// Renderer draws the status panel into an RGBA image
type Renderer struct {
	width  int
	height int
	img    *image.RGBA
	face   font.Face
}

// NewRenderer creates a new panel renderer
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		face:   basicfont.Face7x13,
	}
}

// Clear fills the panel with the background colour
func (r *Renderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
}

// DrawText draws text with its baseline starting at x, y
func (r *Renderer) DrawText(x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// DrawTextWrapped draws text with word wrapping and returns the height used
func (r *Renderer) DrawTextWrapped(x, y, maxWidth int, text string, c color.Color) int {
	lineHeight := r.face.Metrics().Height.Ceil()
	currentY := y

	words := splitWords(text)
	line := ""

	for _, word := range words {
		testLine := line
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		advance := font.MeasureString(r.face, testLine)
		if advance.Ceil() > maxWidth && line != "" {
			r.DrawText(x, currentY, line, c)
			currentY += lineHeight
			line = word
		} else {
			line = testLine
		}
	}

	if line != "" {
		r.DrawText(x, currentY, line, c)
		currentY += lineHeight
	}

	return currentY - y
}

// DrawRect draws a rectangle outline
func (r *Renderer) DrawRect(x, y, width, height int, c color.Color) {
	for i := x; i < x+width; i++ {
		r.img.Set(i, y, c)
		r.img.Set(i, y+height-1, c)
	}
	for i := y; i < y+height; i++ {
		r.img.Set(x, i, c)
		r.img.Set(x+width-1, i, c)
	}
}

// FillRect draws a filled rectangle
func (r *Renderer) FillRect(x, y, width, height int, c color.Color) {
	rect := image.Rect(x, y, x+width, y+height).Intersect(r.img.Bounds())
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Render draws s and returns the panel image. The image is reused between
// calls.
func (r *Renderer) Render(s State) *image.RGBA {
	r.Clear()

	lineHeight := r.face.Metrics().Height.Ceil()
	valueY := r.height/2 - lineHeight/2
	labelY := valueY + lineHeight + lineHeight/2

	// Swatch on the left, frame rate on the right, cells in between.
	pad := 10
	r.FillRect(pad, (r.height-swatchSize)/2, swatchSize, swatchSize, s.Color)
	r.DrawRect(pad, (r.height-swatchSize)/2, swatchSize, swatchSize, foreground)

	fps := strconv.Itoa(s.FrameRate)
	fpsWidth := font.MeasureString(r.face, "000").Ceil()
	r.DrawText(r.width-pad-fpsWidth, valueY, fps, foreground)
	r.DrawText(r.width-pad-fpsWidth, labelY, "FPS", dim)

	left := 2*pad + swatchSize
	right := r.width - 2*pad - fpsWidth
	cells := s.Cells()
	if right <= left || len(cells) == 0 {
		return r.img
	}
	colWidth := (right - left) / len(cells)
	for i, c := range cells {
		x := left + i*colWidth
		r.DrawTextWrapped(x, valueY, colWidth-pad, c.Value, foreground)
		r.DrawText(x, labelY, c.Label, dim)
	}
	return r.img
}

func (r *Renderer) Image() *image.RGBA { return r.img }

// Width returns the renderer width
func (r *Renderer) Width() int {
	return r.width
}

// Height returns the renderer height
func (r *Renderer) Height() int {
	return r.height
}

func splitWords(text string) []string {
	var words []string
	current := ""
	for _, ch := range text {
		if ch == ' ' || ch == '\t' || ch == '\n' {
			if current != "" {
				words = append(words, current)
				current = ""
			}
		} else {
			current += string(ch)
		}
	}
	if current != "" {
		words = append(words, current)
	}
	return words
}
