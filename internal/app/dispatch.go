package app

import (
	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/action"
)

// Dispatch runs one bound action. Undo/redo and layer changes are ignored
// while a stroke is being painted.
func (a *App) Dispatch(name action.Name) {
	a.log.Debug("action", zap.String("action", string(name)), zap.String("mode", string(a.mode)))

	switch name {
	case action.SetBackground:
		a.layers.SetBackground(a.paint.Color())
	case action.UndoRedo:
		if a.strokeGuard(name) {
			a.layers.ToggleUndoRedo()
		}
	case action.CycleBlendMode:
		a.layers.SetBlendMode(a.paint.CycleBlendMode())
	case action.ToggleMode:
		if a.mode == action.Palette {
			a.mode = action.Layer
		} else {
			a.mode = action.Palette
		}
	case action.AddPaletteHue:
		a.paint.AddCurrentHueToPalette()
	case action.TogglePalette:
		a.paint.TogglePaletteSelection()
	case action.TogglePreview:
		a.stroke.TogglePreview()
	case action.CycleShape:
		a.brush.CycleShape()
	case action.LayerUp:
		if a.strokeGuard(name) {
			a.layers.GoUpOneLayer()
		}
	case action.LayerDown:
		if a.strokeGuard(name) {
			a.layers.GoDownOneLayer()
		}
	case action.ToggleLayerTransparency:
		if a.strokeGuard(name) {
			a.layers.ToggleActiveLayerTransparency()
		}
	case action.ToggleActiveOnly:
		a.activeOnly = !a.activeOnly
	case action.ToggleSizeLock:
		a.brush.ToggleSizeLock()
	case action.ToggleBrightnessLock:
		a.paint.ToggleBrightnessLock()
	case action.ToggleSaturationLock:
		a.paint.ToggleSaturationLock()
	case action.CycleMaxSize:
		a.brush.CycleMaxSize()
	case action.Export:
		a.export()
	case action.Erase:
		a.erase()
	}
}

func (a *App) strokeGuard(name action.Name) bool {
	if a.stroke.Active() {
		a.log.Debug("action ignored during stroke", zap.String("action", string(name)))
		return false
	}
	return true
}

func (a *App) export() {
	if a.exporter == nil {
		a.log.Warn("export requested but no exporter configured")
		return
	}
	path, err := a.layers.Export(a.exporter)
	if err != nil {
		a.log.Error("export failed", zap.Error(err))
		return
	}
	a.lastExport = path
}

func (a *App) erase() {
	a.erasePress++
	if a.erasePress >= a.cfg.ErasePresses {
		a.ResetAll()
		return
	}
	a.log.Info("erase requested",
		zap.Int("presses_remaining", a.cfg.ErasePresses-a.erasePress))
}
