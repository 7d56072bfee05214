package hud

import (
	"strconv"

	"github.com/pleimann/padpaint/internal/canvas"
)

// State is the read-only snapshot the HUD panel shows each frame.
type State struct {
	Mode             string
	Shape            string
	BlendMode        string
	Layer            int // 1-based
	SizeLocked       bool
	BrightnessLocked bool
	SaturationLocked bool
	FrameRate        int
	Pads             int // connected gamepads
	Color            canvas.HSB
}

// Cell is one labelled value of the panel.
type Cell struct {
	Label string
	Value string
}

// Cells lists the panel contents left to right.
func (s State) Cells() []Cell {
	return []Cell{
		{"Mode", s.Mode},
		{"Shape", s.Shape},
		{"Blend", s.BlendMode},
		{"Layer", strconv.Itoa(s.Layer)},
		{"Size Set", strconv.FormatBool(s.SizeLocked)},
		{"Bright Set", strconv.FormatBool(s.BrightnessLocked)},
		{"Sat Set", strconv.FormatBool(s.SaturationLocked)},
		{"Pads", strconv.Itoa(s.Pads)},
	}
}
