package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Input sources
const (
	SourceEbiten = "ebiten"
	SourceHID    = "hid"
)

// DefaultDeadzone applies when input.deadzone is absent. An explicit 0
// disables the deadzone.
const DefaultDeadzone = 0.08

type Config struct {
	Canvas       CanvasConfig   `yaml:"canvas"`
	Input        InputConfig    `yaml:"input"`
	Device       DeviceConfig   `yaml:"device"`
	Brush        BrushConfig    `yaml:"brush"`
	Paint        PaintConfig    `yaml:"paint"`
	Cursor       CursorConfig   `yaml:"cursor"`
	Export       ExportConfig   `yaml:"export"`
	ErasePresses int            `yaml:"erase_presses"`
	Bindings     BindingsConfig `yaml:"bindings"`
}

type CanvasConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	HUDHeight int `yaml:"hud_height"`
	Layers    int `yaml:"layers"`
}

type InputConfig struct {
	Source    string  `yaml:"source"`
	Deadzone  float64 `yaml:"deadzone"`
	FrameRate int     `yaml:"frame_rate"`
}

type DeviceConfig struct {
	VendorID       uint16 `yaml:"vendor_id"`
	ProductID      uint16 `yaml:"product_id"`
	PollIntervalMs int    `yaml:"poll_interval_ms"` // reconnect poll
}

type BrushConfig struct {
	MinSize      float64 `yaml:"min_size"`
	BaseMaxSize  float64 `yaml:"base_max_size"`
	MaxSizeSteps int     `yaml:"max_size_steps"`
	MoveSpeed    float64 `yaml:"move_speed"`
}

type PaintConfig struct {
	BlendModes []string `yaml:"blend_modes"`
}

type CursorConfig struct {
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	GradientStep float64 `yaml:"gradient_step"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
	CopyPath bool   `yaml:"copy_path"`
}

// BindingsConfig maps control names to action names. Common bindings apply
// in both modes; mode sections override them.
type BindingsConfig struct {
	Common  map[string]string `yaml:"common"`
	Palette map[string]string `yaml:"palette"`
	Layer   map[string]string `yaml:"layer"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, validates and fills defaults for YAML config data.
func Parse(data []byte) (*Config, error) {
	// Keys missing from data leave the seeded value untouched.
	cfg := Config{Input: InputConfig{Deadzone: DefaultDeadzone}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := Config{Input: InputConfig{Deadzone: DefaultDeadzone}}
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) validate() error {
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 || c.Canvas.HUDHeight < 0 {
		return fmt.Errorf("canvas dimensions must not be negative")
	}
	if c.Canvas.Layers < 0 || c.Canvas.Layers > 16 {
		return fmt.Errorf("canvas.layers must be between 1 and 16, got %d", c.Canvas.Layers)
	}

	switch c.Input.Source {
	case "", SourceEbiten:
	case SourceHID:
		if c.Device.VendorID == 0 {
			return fmt.Errorf("device.vendor_id is required for the hid source")
		}
		if c.Device.ProductID == 0 {
			return fmt.Errorf("device.product_id is required for the hid source")
		}
	default:
		return fmt.Errorf("unknown input.source %q", c.Input.Source)
	}

	if c.Input.Deadzone < 0 || c.Input.Deadzone >= 1 {
		return fmt.Errorf("input.deadzone must be in [0, 1), got %v", c.Input.Deadzone)
	}
	if c.Input.FrameRate < 0 {
		return fmt.Errorf("input.frame_rate must not be negative")
	}

	if c.Brush.MinSize < 0 || c.Brush.BaseMaxSize < 0 || c.Brush.MoveSpeed < 0 {
		return fmt.Errorf("brush sizes and speed must not be negative")
	}
	if c.Brush.MaxSizeSteps < 0 {
		return fmt.Errorf("brush.max_size_steps must not be negative")
	}

	if c.Cursor.MinSize < 0 || c.Cursor.MaxSize < 0 || c.Cursor.GradientStep < 0 {
		return fmt.Errorf("cursor sizes must not be negative")
	}
	if c.Cursor.MaxSize != 0 && c.Cursor.MinSize >= c.Cursor.MaxSize {
		return fmt.Errorf("cursor.min_size must be smaller than cursor.max_size")
	}

	if c.ErasePresses < 0 {
		return fmt.Errorf("erase_presses must not be negative")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = 1920
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = 1080
	}
	if c.Canvas.HUDHeight == 0 {
		c.Canvas.HUDHeight = 100
	}
	if c.Canvas.Layers == 0 {
		c.Canvas.Layers = 4
	}
	if c.Input.Source == "" {
		c.Input.Source = SourceEbiten
	}
	if c.Input.FrameRate == 0 {
		c.Input.FrameRate = 60
	}
	if c.Device.VendorID == 0 && c.Device.ProductID == 0 {
		c.Device.VendorID = 0x054C
		c.Device.ProductID = 0x09CC
	}
	if c.Device.PollIntervalMs == 0 {
		c.Device.PollIntervalMs = 500
	}
	if c.Brush.MinSize == 0 {
		c.Brush.MinSize = 5
	}
	if c.Brush.BaseMaxSize == 0 {
		c.Brush.BaseMaxSize = 40
	}
	if c.Brush.MaxSizeSteps == 0 {
		c.Brush.MaxSizeSteps = 4
	}
	if c.Brush.MoveSpeed == 0 {
		c.Brush.MoveSpeed = 7
	}
	if len(c.Paint.BlendModes) == 0 {
		c.Paint.BlendModes = []string{"source-over", "lighten", "soft-light"}
	}
	if c.Cursor.MinSize == 0 {
		c.Cursor.MinSize = 10
	}
	if c.Cursor.MaxSize == 0 {
		c.Cursor.MaxSize = 40
	}
	if c.Cursor.GradientStep == 0 {
		c.Cursor.GradientStep = 2
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.Prefix == "" {
		c.Export.Prefix = "padpaint"
	}
	if c.ErasePresses == 0 {
		c.ErasePresses = 4
	}

	defaults := DefaultBindings()
	if c.Bindings.Common == nil {
		c.Bindings.Common = defaults.Common
	}
	if c.Bindings.Palette == nil {
		c.Bindings.Palette = defaults.Palette
	}
	if c.Bindings.Layer == nil {
		c.Bindings.Layer = defaults.Layer
	}
}

// DefaultBindings returns the stock button layout.
func DefaultBindings() BindingsConfig {
	return BindingsConfig{
		Common: map[string]string{
			"Y":      "set_background",
			"B":      "undo_redo",
			"X":      "cycle_blend_mode",
			"A":      "toggle_mode",
			"RB":     "toggle_size_lock",
			"LB":     "toggle_brightness_lock",
			"LSB":    "toggle_saturation_lock",
			"RSB":    "cycle_max_size",
			"Start":  "export",
			"Select": "erase",
			"Menu":   "none",
		},
		Palette: map[string]string{
			"DUp":    "add_palette_hue",
			"DRight": "toggle_palette",
			"DDown":  "toggle_preview",
			"DLeft":  "cycle_shape",
		},
		Layer: map[string]string{
			"DUp":    "layer_up",
			"DRight": "toggle_layer_transparency",
			"DDown":  "layer_down",
			"DLeft":  "toggle_active_only",
		},
	}
}

// UpdateDeviceIDs updates the vendor_id and product_id in a config file
// while preserving the rest of the file structure and comments
func UpdateDeviceIDs(path string, vendorID, productID uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(data)

	vendorRegex := regexp.MustCompile(`(?m)^(\s*vendor_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	content = vendorRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", vendorID))

	productRegex := regexp.MustCompile(`(?m)^(\s*product_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	content = productRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", productID))

	// Switch to the HID source so the selected device is actually used
	sourceRegex := regexp.MustCompile(`(?m)^(\s*source:\s*)\S+`)
	content = sourceRegex.ReplaceAllString(content, "${1}"+SourceHID)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig creates a new config file with default values and the
// specified device. A zero vendor and product ID keeps the ebiten source.
func CreateDefaultConfig(path string, vendorID, productID uint16) error {
	source := SourceHID
	if vendorID == 0 && productID == 0 {
		source = SourceEbiten
		vendorID, productID = 0x054C, 0x09CC
	}

	content := fmt.Sprintf(`# padpaint configuration

canvas:
  width: 1920
  height: 1080
  hud_height: 100
  layers: 4

input:
  source: %s
  deadzone: 0.08
  frame_rate: 60

device:
  vendor_id: 0x%04X
  product_id: 0x%04X
  # how often a missing pad is looked for
  poll_interval_ms: 500

brush:
  min_size: 5
  base_max_size: 40
  max_size_steps: 4
  move_speed: 7

paint:
  blend_modes: [source-over, lighten, soft-light]

cursor:
  min_size: 10
  max_size: 40
  gradient_step: 2

export:
  dir: "."
  prefix: padpaint
  copy_path: false

# Select must be pressed this many times to wipe the canvas
erase_presses: 4

bindings:
  common:
    Y: set_background
    B: undo_redo
    X: cycle_blend_mode
    A: toggle_mode
    RB: toggle_size_lock
    LB: toggle_brightness_lock
    LSB: toggle_saturation_lock
    RSB: cycle_max_size
    Start: export
    Select: erase
    Menu: none
  palette:
    DUp: add_palette_hue
    DRight: toggle_palette
    DDown: toggle_preview
    DLeft: cycle_shape
  layer:
    DUp: layer_up
    DRight: toggle_layer_transparency
    DDown: layer_down
    DLeft: toggle_active_only
`, source, vendorID, productID)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// Exists checks if a config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
