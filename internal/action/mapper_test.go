package action

import (
	"testing"

	"github.com/pleimann/padpaint/internal/config"
	"github.com/pleimann/padpaint/internal/input"
)

func TestMapperDefaults(t *testing.T) {
	mapper := NewMapper(config.Default())

	tests := []struct {
		name    string
		mode    Mode
		control input.Control
		want    Name
	}{
		{"common in palette mode", Palette, input.Y, SetBackground},
		{"common in layer mode", Layer, input.Y, SetBackground},
		{"mode toggle", Layer, input.A, ToggleMode},
		{"palette d-pad up", Palette, input.DUp, AddPaletteHue},
		{"layer d-pad up", Layer, input.DUp, LayerUp},
		{"palette d-pad down", Palette, input.DDown, TogglePreview},
		{"layer d-pad down", Layer, input.DDown, LayerDown},
		{"palette d-pad left", Palette, input.DLeft, CycleShape},
		{"layer d-pad right", Layer, input.DRight, ToggleLayerTransparency},
		{"select erases", Palette, input.Select, Erase},
		{"menu unbound", Palette, input.Menu, None},
		{"unknown control", Palette, input.Control("Turbo"), None},
		{"unknown mode", Mode("sculpt"), input.Y, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapper.Map(tt.mode, tt.control); got != tt.want {
				t.Errorf("Map(%s, %s) = %q, want %q", tt.mode, tt.control, got, tt.want)
			}
		})
	}
}

func TestModeOverridesCommon(t *testing.T) {
	cfg := config.Default()
	cfg.Bindings.Common["DUp"] = string(Export)

	mapper := NewMapper(cfg)
	if got := mapper.Map(Palette, input.DUp); got != AddPaletteHue {
		t.Errorf("palette DUp = %q, want mode binding", got)
	}

	delete(cfg.Bindings.Layer, "DUp")
	mapper.Reload(cfg)
	if got := mapper.Map(Layer, input.DUp); got != Export {
		t.Errorf("layer DUp = %q, want common fallback", got)
	}
}

func TestMapperReload(t *testing.T) {
	cfg := config.Default()
	mapper := NewMapper(cfg)

	cfg.Bindings.Common["Y"] = string(Erase)
	mapper.Reload(cfg)

	if got := mapper.Map(Palette, input.Y); got != Erase {
		t.Errorf("after reload Y = %q, want %q", got, Erase)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{"defaults", func(c *config.Config) {}, false},
		{"unknown action", func(c *config.Config) { c.Bindings.Common["Y"] = "explode" }, true},
		{"unknown button", func(c *config.Config) { c.Bindings.Layer["Turbo"] = "layer_up" }, true},
		{"axis is not a button", func(c *config.Config) { c.Bindings.Palette["LSX"] = "none" }, true},
		{"empty section", func(c *config.Config) { c.Bindings.Palette = map[string]string{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if err := Validate(cfg); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
