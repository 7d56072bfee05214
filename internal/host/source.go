package host

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/input"
)

// standardButtons places each standard-layout button at the raw index the
// four-axis profile expects for the control of the same name.
var standardButtons = map[input.Control]ebiten.StandardGamepadButton{
	input.A:      ebiten.StandardGamepadButtonRightBottom,
	input.B:      ebiten.StandardGamepadButtonRightRight,
	input.X:      ebiten.StandardGamepadButtonRightLeft,
	input.Y:      ebiten.StandardGamepadButtonRightTop,
	input.LB:     ebiten.StandardGamepadButtonFrontTopLeft,
	input.RB:     ebiten.StandardGamepadButtonFrontTopRight,
	input.LT:     ebiten.StandardGamepadButtonFrontBottomLeft,
	input.RT:     ebiten.StandardGamepadButtonFrontBottomRight,
	input.Select: ebiten.StandardGamepadButtonCenterLeft,
	input.Start:  ebiten.StandardGamepadButtonCenterRight,
	input.LSB:    ebiten.StandardGamepadButtonLeftStick,
	input.RSB:    ebiten.StandardGamepadButtonRightStick,
	input.DUp:    ebiten.StandardGamepadButtonLeftTop,
	input.DDown:  ebiten.StandardGamepadButtonLeftBottom,
	input.DLeft:  ebiten.StandardGamepadButtonLeftLeft,
	input.DRight: ebiten.StandardGamepadButtonLeftRight,
	input.Menu:   ebiten.StandardGamepadButtonCenterCenter,
}

// analogButtons report continuous travel on the standard layout.
var analogButtons = map[input.Control]bool{input.LT: true, input.RT: true}

var standardAxes = []ebiten.StandardGamepadAxis{
	ebiten.StandardGamepadAxisLeftStickHorizontal,
	ebiten.StandardGamepadAxisLeftStickVertical,
	ebiten.StandardGamepadAxisRightStickHorizontal,
	ebiten.StandardGamepadAxisRightStickVertical,
}

// standardSurface resolves control names to the raw layout standard pads
// are reported in.
var standardSurface = input.BuildMapping(input.DetectProfile(len(standardAxes)))

// EbitenSource reads the gamepads ebiten knows about. Poll must be called
// from the game's Update.
type EbitenSource struct {
	registry *input.Registry
	ids      []ebiten.GamepadID
	known    map[ebiten.GamepadID]bool
	log      *zap.Logger
}

func NewEbitenSource(registry *input.Registry, log *zap.Logger) *EbitenSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &EbitenSource{
		registry: registry,
		known:    make(map[ebiten.GamepadID]bool),
		log:      log.Named("gamepads"),
	}
}

// Poll records connects and disconnects since the last call and samples
// every connected pad. Pads with a standard layout are reported as
// four-axis pads with analog trigger buttons; others are passed through
// raw.
func (s *EbitenSource) Poll() []input.Device {
	s.ids = inpututil.AppendJustConnectedGamepadIDs(s.ids[:0])
	for _, id := range s.ids {
		s.known[id] = true
		s.registry.Connect(int(id), ebiten.GamepadName(id))
	}
	for id := range s.known {
		if inpututil.IsGamepadJustDisconnected(id) {
			delete(s.known, id)
			s.registry.Disconnect(int(id))
		}
	}

	ids := make([]ebiten.GamepadID, 0, len(s.known))
	for id := range s.known {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	devices := make([]input.Device, 0, len(ids))
	for _, id := range ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			devices = append(devices, standardSample(id))
		} else {
			devices = append(devices, rawSample(id))
		}
	}
	return devices
}

func standardSample(id ebiten.GamepadID) input.Device {
	dev := input.Device{
		Index:   int(id),
		Name:    ebiten.GamepadName(id),
		Axes:    make([]float64, len(standardAxes)),
		Buttons: make([]input.Button, len(standardButtons)),
	}
	for i, a := range standardAxes {
		dev.Axes[i] = ebiten.StandardGamepadAxisValue(id, a)
	}
	for name, b := range standardButtons {
		i, ok := standardSurface.ResolveButton(name)
		if !ok || i >= len(dev.Buttons) {
			continue
		}
		dev.Buttons[i] = input.Button{
			Pressed: ebiten.IsStandardGamepadButtonPressed(id, b),
			Value:   ebiten.StandardGamepadButtonValue(id, b),
			Analog:  analogButtons[name],
		}
	}
	return dev
}

func rawSample(id ebiten.GamepadID) input.Device {
	nAxes := ebiten.GamepadAxisCount(id)
	nButtons := ebiten.GamepadButtonCount(id)
	dev := input.Device{
		Index:   int(id),
		Name:    ebiten.GamepadName(id),
		Axes:    make([]float64, nAxes),
		Buttons: make([]input.Button, nButtons),
	}
	for a := 0; a < nAxes; a++ {
		dev.Axes[a] = ebiten.GamepadAxisValue(id, ebiten.GamepadAxisType(a))
	}
	for b := 0; b < nButtons; b++ {
		pressed := ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton(b))
		v := 0.0
		if pressed {
			v = 1
		}
		dev.Buttons[b] = input.Button{Pressed: pressed, Value: v}
	}
	return dev
}
