package hid

import (
	"fmt"
	"image/color"

	"github.com/pleimann/padpaint/internal/input"
)

// Report IDs
const (
	ReportIDUSB       byte = 0x01
	ReportIDBluetooth byte = 0x11
	ReportIDLightbar  byte = 0x05
)

// btOffset is how far the Bluetooth input report is shifted relative to
// the USB one.
const btOffset = 2

// reportLen is the shortest USB input report that carries the triggers.
const reportLen = 10

// Raw button indices, in the order the profile tables expect for a
// trigger-as-axis pad.
const (
	btnCross = iota
	btnCircle
	btnTriangle
	btnSquare
	btnL1
	btnR1
	btnL2
	btnR2
	btnShare
	btnOptions
	btnL3
	btnR3
	btnUp
	btnDown
	btnLeft
	btnRight
	btnPS
	buttonCount
)

// Report is one decoded DualShock 4 input report.
type Report struct {
	// LX, LY, RX, RY are stick positions in [-1, 1], up and left negative.
	LX, LY, RX, RY float64
	// L2, R2 are trigger positions in [-1, 1], -1 at rest.
	L2, R2 float64
	// Hat is the D-pad direction, 0 north clockwise to 7, 8 when centred.
	Hat     byte
	Buttons [buttonCount]bool
}

// ParseReport decodes a raw HID input report.
// Expected format (USB, report 0x01; Bluetooth 0x11 is shifted by two):
//
//	Byte 1-4: LX, LY, RX, RY (0-255, 128 centred)
//	Byte 5:   low nibble hat, bit 4 square, 5 cross, 6 circle, 7 triangle
//	Byte 6:   L1, R1, L2, R2, share, options, L3, R3 (bit 0 upward)
//	Byte 7:   bit 0 PS
//	Byte 8-9: L2, R2 analog (0-255)
func ParseReport(data []byte) (*Report, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty report")
	}

	var off int
	switch data[0] {
	case ReportIDUSB:
	case ReportIDBluetooth:
		off = btOffset
	default:
		return nil, fmt.Errorf("unexpected report ID: 0x%02X", data[0])
	}
	if len(data) < reportLen+off {
		return nil, fmt.Errorf("report too short: %d bytes", len(data))
	}
	d := data[off:]

	r := &Report{
		LX:  stick(d[1]),
		LY:  stick(d[2]),
		RX:  stick(d[3]),
		RY:  stick(d[4]),
		L2:  trigger(d[8]),
		R2:  trigger(d[9]),
		Hat: d[5] & 0x0F,
	}

	b := &r.Buttons
	b[btnSquare] = d[5]&0x10 != 0
	b[btnCross] = d[5]&0x20 != 0
	b[btnCircle] = d[5]&0x40 != 0
	b[btnTriangle] = d[5]&0x80 != 0
	b[btnL1] = d[6]&0x01 != 0
	b[btnR1] = d[6]&0x02 != 0
	b[btnL2] = d[6]&0x04 != 0
	b[btnR2] = d[6]&0x08 != 0
	b[btnShare] = d[6]&0x10 != 0
	b[btnOptions] = d[6]&0x20 != 0
	b[btnL3] = d[6]&0x40 != 0
	b[btnR3] = d[6]&0x80 != 0
	b[btnPS] = d[7]&0x01 != 0

	// Hat directions: 0 N, 1 NE, 2 E, 3 SE, 4 S, 5 SW, 6 W, 7 NW.
	if r.Hat < 8 {
		b[btnUp] = r.Hat == 7 || r.Hat <= 1
		b[btnRight] = r.Hat >= 1 && r.Hat <= 3
		b[btnDown] = r.Hat >= 3 && r.Hat <= 5
		b[btnLeft] = r.Hat >= 5 && r.Hat <= 7
	}

	return r, nil
}

func stick(v byte) float64 {
	f := (float64(v) - 128) / 127.5
	if f < -1 {
		return -1
	}
	if f > 1 {
		return 1
	}
	return f
}

func trigger(v byte) float64 {
	return float64(v)/255*2 - 1
}

// Sample converts the report into a device sample with six axes, so the
// pad is classified as trigger-as-axis. The L2/R2 buttons are marked
// analog and carry the trigger travel in [0, 1].
func (r *Report) Sample(index int, name string) input.Device {
	dev := input.Device{
		Index:   index,
		Name:    name,
		Axes:    []float64{r.LX, r.LY, r.RX, r.RY, r.L2, r.R2},
		Buttons: make([]input.Button, buttonCount),
	}
	for i, pressed := range r.Buttons {
		v := 0.0
		if pressed {
			v = 1
		}
		dev.Buttons[i] = input.Button{Pressed: pressed, Value: v}
	}
	dev.Buttons[btnL2] = input.Button{Pressed: r.Buttons[btnL2], Value: (r.L2 + 1) / 2, Analog: true}
	dev.Buttons[btnR2] = input.Button{Pressed: r.Buttons[btnR2], Value: (r.R2 + 1) / 2, Analog: true}
	return dev
}

// LightbarReport sets the colour of the pad's light bar.
type LightbarReport struct {
	R, G, B uint8
}

// NewLightbarReport converts c to a light bar report.
func NewLightbarReport(c color.Color) *LightbarReport {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return &LightbarReport{R: rgba.R, G: rgba.G, B: rgba.B}
}

// Encode serializes the report for transmission over USB
// Format:
//
//	Byte 0:    Report ID (0x05)
//	Byte 1:    Feature flags (0x07: rumble, light bar, flash)
//	Byte 2:    0x04
//	Byte 4-5:  Rumble right, left (left at zero)
//	Byte 6-8:  Red, green, blue
//	Byte 9-10: Flash on, off (left at zero)
//	Padded to 32 bytes
func (l *LightbarReport) Encode() []byte {
	buf := make([]byte, 32)
	buf[0] = ReportIDLightbar
	buf[1] = 0x07
	buf[2] = 0x04
	buf[6] = l.R
	buf[7] = l.G
	buf[8] = l.B
	return buf
}
