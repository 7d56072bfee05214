package hud

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/pleimann/padpaint/internal/canvas"
)

func litPixels(r *Renderer, c color.RGBA) int {
	n := 0
	img := r.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestNewRenderer(t *testing.T) {
	r := NewRenderer(128, 64)

	if r.Width() != 128 {
		t.Errorf("Width() = %d, want 128", r.Width())
	}
	if r.Height() != 64 {
		t.Errorf("Height() = %d, want 64", r.Height())
	}
}

func TestRendererClear(t *testing.T) {
	r := NewRenderer(8, 8)
	r.FillRect(0, 0, 8, 8, foreground)
	r.Clear()

	if n := litPixels(r, background); n != 64 {
		t.Errorf("%d background pixels after Clear(), want 64", n)
	}
}

func TestRendererFillRect(t *testing.T) {
	r := NewRenderer(8, 4)
	r.Clear()
	r.FillRect(2, 1, 4, 2, foreground)

	if n := litPixels(r, foreground); n != 8 {
		t.Errorf("%d pixels filled, want 8", n)
	}
	if got := r.Image().RGBAAt(2, 1); got != foreground {
		t.Errorf("pixel (2,1) = %v, want foreground", got)
	}
	if got := r.Image().RGBAAt(6, 1); got != background {
		t.Errorf("pixel (6,1) = %v, want background", got)
	}

	// Clipped to the panel.
	r.FillRect(6, 2, 10, 10, foreground)
	if n := litPixels(r, foreground); n != 12 {
		t.Errorf("%d pixels after clipped fill, want 12", n)
	}
}

func TestRendererDrawRect(t *testing.T) {
	r := NewRenderer(8, 4)
	r.Clear()

	// 4x3 outline at (2, 0): 4 + 4 + 1 + 1 pixels.
	r.DrawRect(2, 0, 4, 3, foreground)

	if n := litPixels(r, foreground); n != 10 {
		t.Errorf("%d outline pixels, want 10", n)
	}
	if got := r.Image().RGBAAt(3, 1); got != background {
		t.Errorf("interior pixel = %v, want background", got)
	}
}

func TestRendererDrawText(t *testing.T) {
	r := NewRenderer(64, 16)
	r.Clear()
	r.DrawText(0, 13, "Hello", foreground)

	if litPixels(r, foreground) == 0 {
		t.Error("DrawText() didn't set any pixels")
	}
}

func TestRendererDrawTextWrapped(t *testing.T) {
	r := NewRenderer(64, 64)
	r.Clear()

	oneLine := r.DrawTextWrapped(0, 13, 64, "Hi", foreground)
	wrapped := r.DrawTextWrapped(0, 13, 64, "Hello World Test", foreground)

	if oneLine <= 0 {
		t.Errorf("DrawTextWrapped() returned height %d, want > 0", oneLine)
	}
	if wrapped <= oneLine {
		t.Errorf("wrapped height %d not taller than single line %d", wrapped, oneLine)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"  spaced  out  ", []string{"spaced", "out"}},
		{"single", []string{"single"}},
		{"", nil},
		{"soft-light", []string{"soft-light"}},
		{"tabs\tand\nnewlines", []string{"tabs", "and", "newlines"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := splitWords(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitWords(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCells(t *testing.T) {
	s := State{
		Mode:       "palette",
		Shape:      "ellipse",
		BlendMode:  "lighten",
		Layer:      2,
		SizeLocked: true,
	}

	want := []Cell{
		{"Mode", "palette"},
		{"Shape", "ellipse"},
		{"Blend", "lighten"},
		{"Layer", "2"},
		{"Size Set", "true"},
		{"Bright Set", "false"},
		{"Sat Set", "false"},
		{"Pads", "0"},
	}
	if got := s.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}
}

func TestRenderDrawsSwatch(t *testing.T) {
	r := NewRenderer(800, 100)
	img := r.Render(State{Mode: "layer", Layer: 1, FrameRate: 60, Color: canvas.HSB{H: 120, S: 100, B: 100}})

	green := color.RGBA{G: 255, A: 255}
	if got := img.RGBAAt(10+swatchSize/2, 50); got != green {
		t.Errorf("swatch centre = %v, want green", got)
	}
	if litPixels(r, foreground) == 0 {
		t.Error("Render() drew no text")
	}
}

func TestRenderNarrowPanel(t *testing.T) {
	r := NewRenderer(40, 20)
	if img := r.Render(State{}); img.Bounds().Dx() != 40 {
		t.Errorf("Render() bounds = %v", img.Bounds())
	}
}

func TestFrameMeter(t *testing.T) {
	var m FrameMeter

	for i := 0; i < meterWindow-1; i++ {
		m.Add(60.9)
	}
	if m.Mean() != 0 {
		t.Errorf("Mean() before first window = %d, want 0", m.Mean())
	}

	m.Add(30)
	// 29 samples of 60 plus one of 30.
	if want := (29*60 + 30) / meterWindow; m.Mean() != want {
		t.Errorf("Mean() = %d, want %d", m.Mean(), want)
	}

	for i := 0; i < meterWindow; i++ {
		m.Add(45)
	}
	if m.Mean() != 45 {
		t.Errorf("Mean() second window = %d, want 45", m.Mean())
	}

	m.Reset()
	if m.Mean() != 0 {
		t.Errorf("Mean() after Reset = %d", m.Mean())
	}
}
