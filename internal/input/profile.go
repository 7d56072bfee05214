package input

import "fmt"

// Control names a logical axis or button.
type Control string

// Axes
const (
	LSX Control = "LSX"
	LSY Control = "LSY"
	RSX Control = "RSX"
	RSY Control = "RSY"
	LT  Control = "LT"
	RT  Control = "RT"
	DX  Control = "DX"
	DY  Control = "DY"
)

// Buttons. LT and RT double as buttons on trigger-as-button pads.
const (
	A      Control = "A"
	B      Control = "B"
	X      Control = "X"
	Y      Control = "Y"
	LB     Control = "LB"
	RB     Control = "RB"
	LSB    Control = "LSB"
	RSB    Control = "RSB"
	Start  Control = "Start"
	Select Control = "Select"
	Menu   Control = "Menu"
	DUp    Control = "DUp"
	DDown  Control = "DDown"
	DLeft  Control = "DLeft"
	DRight Control = "DRight"
)

// Buttons lists the edge-triggered buttons in dispatch order.
var Buttons = []Control{Y, B, X, A, DUp, DRight, DDown, DLeft, RB, LB, Start, Menu, Select, LSB, RSB}

// IsButton reports whether name is one of the edge-triggered buttons.
func IsButton(name Control) bool {
	for _, b := range Buttons {
		if b == name {
			return true
		}
	}
	return false
}

// hatThreshold is the hat-axis magnitude at which a synthesized D-pad
// button counts as pressed.
const hatThreshold = 0.5

// Family is the layout variant a device is classified into.
type Family int

const (
	// TriggerAsButton pads report four axes; the triggers are analog buttons.
	TriggerAsButton Family = iota
	// TriggerAsAxis pads report the triggers as axes five and six.
	TriggerAsAxis
	// AltVendor pads report eight axes, the last two being the D-pad hat.
	AltVendor
)

func (f Family) String() string {
	switch f {
	case TriggerAsButton:
		return "trigger-as-button"
	case TriggerAsAxis:
		return "trigger-as-axis"
	case AltVendor:
		return "alt-vendor"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// Profile classifies a connected device.
type Profile struct {
	AxisCount int
	Family    Family
}

// DetectProfile classifies a device by its raw axis count.
func DetectProfile(axisCount int) Profile {
	switch {
	case axisCount >= 8:
		return Profile{AxisCount: axisCount, Family: AltVendor}
	case axisCount >= 6:
		return Profile{AxisCount: axisCount, Family: TriggerAsAxis}
	default:
		return Profile{AxisCount: axisCount, Family: TriggerAsButton}
	}
}

var standardButtons = map[Control]int{
	A:      0,
	B:      1,
	Y:      2,
	X:      3,
	LB:     4,
	RB:     5,
	LT:     6,
	RT:     7,
	Select: 8,
	Start:  9,
	LSB:    10,
	RSB:    11,
	DUp:    12,
	DDown:  13,
	DLeft:  14,
	DRight: 15,
	Menu:   16,
}

var profileTables = map[Family]struct {
	axes    map[Control]int
	buttons map[Control]int
	hat     bool
}{
	TriggerAsButton: {
		axes:    map[Control]int{LSX: 0, LSY: 1, RSX: 2, RSY: 3},
		buttons: standardButtons,
	},
	TriggerAsAxis: {
		axes:    map[Control]int{LSX: 0, LSY: 1, RSX: 2, RSY: 3, LT: 4, RT: 5},
		buttons: without(standardButtons, LT, RT),
	},
	AltVendor: {
		axes: map[Control]int{LSX: 0, LSY: 1, LT: 2, RSX: 3, RSY: 4, RT: 5, DX: 6, DY: 7},
		buttons: map[Control]int{
			A:      0,
			B:      1,
			X:      2,
			Y:      3,
			LB:     4,
			RB:     5,
			Select: 6,
			Start:  7,
			Menu:   8,
			LSB:    9,
			RSB:    10,
		},
		hat: true,
	},
}

func without(m map[Control]int, names ...Control) map[Control]int {
	out := make(map[Control]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}
