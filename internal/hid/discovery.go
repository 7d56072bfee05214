package hid

import (
	"github.com/karalabe/hid"
)

// DeviceInfo contains information about a discovered HID device
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Path         string
	Manufacturer string
	Product      string
	SerialNumber string
	UsagePage    uint16
	Usage        uint16
}

// Sony DualShock 4 identifiers.
const (
	SonyVendorID uint16 = 0x054C
	DS4v1        uint16 = 0x05C4
	DS4v2        uint16 = 0x09CC
	DS4Dongle    uint16 = 0x0BA0
)

// IsDualShock4 reports whether the IDs belong to a pad whose reports
// ParseReport understands.
func IsDualShock4(vendorID, productID uint16) bool {
	if vendorID != SonyVendorID {
		return false
	}
	switch productID {
	case DS4v1, DS4v2, DS4Dongle:
		return true
	}
	return false
}

// ListDevices returns a list of all available HID devices
func ListDevices() ([]DeviceInfo, error) {
	devices := hid.Enumerate(0, 0)

	result := make([]DeviceInfo, len(devices))
	for i, d := range devices {
		result[i] = DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Path:         d.Path,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
			SerialNumber: d.Serial,
			UsagePage:    d.UsagePage,
			Usage:        d.Usage,
		}
	}

	return result, nil
}

// FindDevice returns the first connected interface matching the IDs, or
// nil when the pad is not plugged in.
func FindDevice(vendorID, productID uint16) *DeviceInfo {
	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		return nil
	}

	d := devices[0]
	return &DeviceInfo{
		VendorID:     d.VendorID,
		ProductID:    d.ProductID,
		Path:         d.Path,
		Manufacturer: d.Manufacturer,
		Product:      d.Product,
		SerialNumber: d.Serial,
		UsagePage:    d.UsagePage,
		Usage:        d.Usage,
	}
}
