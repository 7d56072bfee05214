package action

import (
	"fmt"
	"sort"

	"github.com/pleimann/padpaint/internal/config"
	"github.com/pleimann/padpaint/internal/input"
)

// Mode is the button layout currently in effect.
type Mode string

const (
	Palette Mode = "palette"
	Layer   Mode = "layer"
)

// Name identifies an action a button can trigger.
type Name string

const (
	None                    Name = "none"
	SetBackground           Name = "set_background"
	UndoRedo                Name = "undo_redo"
	CycleBlendMode          Name = "cycle_blend_mode"
	ToggleMode              Name = "toggle_mode"
	AddPaletteHue           Name = "add_palette_hue"
	TogglePalette           Name = "toggle_palette"
	TogglePreview           Name = "toggle_preview"
	CycleShape              Name = "cycle_shape"
	LayerUp                 Name = "layer_up"
	LayerDown               Name = "layer_down"
	ToggleLayerTransparency Name = "toggle_layer_transparency"
	ToggleActiveOnly        Name = "toggle_active_only"
	ToggleSizeLock          Name = "toggle_size_lock"
	ToggleBrightnessLock    Name = "toggle_brightness_lock"
	ToggleSaturationLock    Name = "toggle_saturation_lock"
	CycleMaxSize            Name = "cycle_max_size"
	Export                  Name = "export"
	Erase                   Name = "erase"
)

var known = map[Name]bool{
	None: true, SetBackground: true, UndoRedo: true, CycleBlendMode: true,
	ToggleMode: true, AddPaletteHue: true, TogglePalette: true,
	TogglePreview: true, CycleShape: true, LayerUp: true, LayerDown: true,
	ToggleLayerTransparency: true, ToggleActiveOnly: true,
	ToggleSizeLock: true, ToggleBrightnessLock: true,
	ToggleSaturationLock: true, CycleMaxSize: true, Export: true, Erase: true,
}

// Mapper maps (mode, button) pairs to actions based on configuration
type Mapper struct {
	modes map[Mode]map[input.Control]Name
}

// NewMapper builds the per-mode tables. Mode sections override the common
// section.
func NewMapper(cfg *config.Config) *Mapper {
	b := cfg.Bindings
	m := &Mapper{modes: map[Mode]map[input.Control]Name{
		Palette: merge(b.Common, b.Palette),
		Layer:   merge(b.Common, b.Layer),
	}}
	return m
}

func merge(common, mode map[string]string) map[input.Control]Name {
	out := make(map[input.Control]Name, len(common)+len(mode))
	for ctrl, act := range common {
		out[input.Control(ctrl)] = Name(act)
	}
	for ctrl, act := range mode {
		out[input.Control(ctrl)] = Name(act)
	}
	return out
}

// Map returns the action bound to control in mode, or None if unbound
func (m *Mapper) Map(mode Mode, control input.Control) Name {
	if a, ok := m.modes[mode][control]; ok {
		return a
	}
	return None
}

// Reload updates the mapper with new configuration
func (m *Mapper) Reload(cfg *config.Config) {
	m.modes = NewMapper(cfg).modes
}

// Validate checks that every binding names a known button and action.
func Validate(cfg *config.Config) error {
	sections := []struct {
		name     string
		bindings map[string]string
	}{
		{"common", cfg.Bindings.Common},
		{"palette", cfg.Bindings.Palette},
		{"layer", cfg.Bindings.Layer},
	}
	for _, s := range sections {
		controls := make([]string, 0, len(s.bindings))
		for ctrl := range s.bindings {
			controls = append(controls, ctrl)
		}
		sort.Strings(controls)

		for _, ctrl := range controls {
			if !input.IsButton(input.Control(ctrl)) {
				return fmt.Errorf("bindings.%s: unknown button %q", s.name, ctrl)
			}
			if act := s.bindings[ctrl]; !known[Name(act)] {
				return fmt.Errorf("bindings.%s.%s: unknown action %q", s.name, ctrl, act)
			}
		}
	}
	return nil
}
