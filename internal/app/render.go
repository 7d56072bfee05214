package app

import (
	"image"
	"strconv"

	"github.com/pleimann/padpaint/internal/action"
	"github.com/pleimann/padpaint/internal/canvas"
	"github.com/pleimann/padpaint/internal/hud"
	"github.com/pleimann/padpaint/internal/paint"
)

// markerSize is the diameter of the disc behind the layer number when only
// the active layer is shown.
const markerSize = 50

// Render draws the canvas, the cursor and the HUD into the frame and
// returns it. The image is reused between calls.
func (a *App) Render() *image.RGBA {
	var src canvas.Surface
	if a.activeOnly {
		src = a.layers.CompositeActive()
	} else {
		src = a.layers.CompositeVisible()
	}

	f := a.frame
	f.Clear()
	f.CompositeFrom(src, 0, 0)

	if a.mode == action.Palette {
		a.stroke.DrawCursor(f, paint.Ring{
			MinRadius: a.cfg.Cursor.MinSize,
			MaxRadius: a.cfg.Cursor.MaxSize,
			Step:      a.cfg.Cursor.GradientStep,
		})
	} else {
		a.drawLayerMarker(f)
	}

	if a.cfg.Canvas.HUDHeight > 0 {
		f.DrawImage(a.hud.Render(a.HUDState()), 0, a.cfg.Canvas.Height)
	}
	return f.Image()
}

func (a *App) drawLayerMarker(f *canvas.Canvas) {
	x, y := a.brush.PosX, a.brush.PosY
	if a.activeOnly {
		f.SetFillColor(0, 0, 25)
		f.DrawCircle(x, y, markerSize)
	}
	if a.layers.IsActiveLayerTransparent() {
		f.SetFillColor(0, 0, 50)
	} else {
		f.SetFillColor(0, 0, 100)
	}
	f.DrawText(strconv.Itoa(a.layers.ActiveIndex()+1), x, y)
}

// HUDState snapshots what the status panel shows.
func (a *App) HUDState() hud.State {
	return hud.State{
		Mode:             string(a.mode),
		Shape:            string(a.brush.Shape()),
		BlendMode:        string(a.paint.BlendMode()),
		Layer:            a.layers.ActiveIndex() + 1,
		SizeLocked:       a.brush.SizeLocked,
		BrightnessLocked: a.paint.BrightnessLocked,
		SaturationLocked: a.paint.SaturationLocked,
		FrameRate:        a.meter.Mean(),
		Pads:             a.pads,
		Color:            a.paint.Color(),
	}
}
