package ui

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormatDeviceName(t *testing.T) {
	tests := []struct {
		name string
		dev  DeviceInfo
		want string
	}{
		{"full", DeviceInfo{Manufacturer: "Sony", Product: "Wireless Controller"}, "Sony Wireless Controller"},
		{"no manufacturer", DeviceInfo{Product: "Pad"}, "Pad"},
		{"nothing", DeviceInfo{}, "Unknown Device"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDeviceName(tt.dev); got != tt.want {
				t.Errorf("formatDeviceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountSupported(t *testing.T) {
	devs := []DeviceInfo{{Supported: true}, {}, {Supported: true}}
	if got := countSupported(devs); got != 2 {
		t.Errorf("countSupported() = %d, want 2", got)
	}
}

func TestBindingRows(t *testing.T) {
	rows := bindingRows(map[string]string{
		"Y":    "set_background",
		"A":    "toggle_mode",
		"Menu": "none",
	})

	if len(rows) != 2 {
		t.Fatalf("bindingRows() returned %d rows, want 2: %q", len(rows), rows)
	}
	if !strings.Contains(rows[0], "A") || !strings.Contains(rows[0], "toggle mode") {
		t.Errorf("first row = %q, want A bound to toggle mode", rows[0])
	}
	if !strings.Contains(rows[1], "set background") {
		t.Errorf("second row = %q, want set background", rows[1])
	}
}

func TestSelectDeviceEmpty(t *testing.T) {
	if _, err := SelectDevice(nil); err == nil {
		t.Error("SelectDevice(nil) error = nil")
	}
}

func TestGroupDevices(t *testing.T) {
	ds4 := DeviceInfo{VendorID: 0x054C, ProductID: 0x09CC, Supported: true}
	ds4v1 := DeviceInfo{VendorID: 0x054C, ProductID: 0x05C4, Supported: true}
	mouse := DeviceInfo{VendorID: 0x046D, ProductID: 0xC52B}
	keys := DeviceInfo{VendorID: 0x04D9, ProductID: 0x0169}

	tests := []struct {
		name string
		in   []DeviceInfo
		want []deviceGroup
	}{
		{"empty", nil, nil},
		{"only other", []DeviceInfo{mouse}, []deviceGroup{
			{Title: "Other HID devices", Devices: []DeviceInfo{mouse}},
		}},
		{"mixed keeps order within groups", []DeviceInfo{mouse, ds4, keys, ds4v1}, []deviceGroup{
			{Title: "Gamepads", Devices: []DeviceInfo{ds4, ds4v1}},
			{Title: "Other HID devices", Devices: []DeviceInfo{mouse, keys}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := groupDevices(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("groupDevices() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPickerOrderPutsGamepadsFirst(t *testing.T) {
	ds4 := DeviceInfo{VendorID: 0x054C, ProductID: 0x09CC, Supported: true}
	mouse := DeviceInfo{VendorID: 0x046D, ProductID: 0xC52B}

	got := pickerOrder([]DeviceInfo{mouse, ds4})
	want := []DeviceInfo{ds4, mouse}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pickerOrder() = %+v, want %+v", got, want)
	}
}

func TestPickerDescription(t *testing.T) {
	if got := pickerDescription([]DeviceInfo{{}}); !strings.Contains(got, "No DualShock 4") {
		t.Errorf("pickerDescription(no pads) = %q", got)
	}
	if got := pickerDescription([]DeviceInfo{{Supported: true}}); strings.Contains(got, "No DualShock 4") {
		t.Errorf("pickerDescription(pad) = %q", got)
	}
}
