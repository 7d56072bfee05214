package hid

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/karalabe/hid"

	"github.com/pleimann/padpaint/internal/utils"
)

// Device represents a connection to a HID gamepad
type Device struct {
	vendorID  uint16
	productID uint16
	device    *hid.Device
	product   string
	mu        sync.Mutex
	closed    bool
}

// NewDevice opens a connection to a HID device with the specified vendor and product IDs
func NewDevice(vendorID, productID uint16) (*Device, error) {
	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		// List available devices to help user find the right one
		allDevices := hid.Enumerate(0, 0)
		if len(allDevices) == 0 {
			return nil, fmt.Errorf("no HID devices found on system - check USB connection")
		}
		name := utils.ExecutableName()
		return nil, fmt.Errorf("no device found with VendorID=0x%04X, ProductID=0x%04X\n"+
			"  Run '"+name+" list-devices' to see available devices\n"+
			"  Run '"+name+" set-device' to configure the correct device",
			vendorID, productID)
	}

	d := &Device{vendorID: vendorID, productID: productID}
	if err := d.open(devices); err != nil {
		if len(devices) == 1 {
			return nil, fmt.Errorf("failed to open device 0x%04X:0x%04X: %w\n"+
				"  This may be a permissions issue. On Linux, add a udev rule for the device;\n"+
				"  on macOS, allow your terminal under Privacy & Security > Input Monitoring",
				vendorID, productID, err)
		}
		return nil, fmt.Errorf("failed to open any of %d interfaces for device 0x%04X:0x%04X: %w",
			len(devices), vendorID, productID, err)
	}
	return d, nil
}

// open tries each matching interface until one succeeds. Some devices
// have multiple interfaces, not all of which can be opened.
func (d *Device) open(devices []hid.DeviceInfo) error {
	var lastErr error
	for _, info := range devices {
		dev, err := info.Open()
		if err == nil {
			d.device = dev
			d.product = info.Product
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// Product returns the product string reported by the open interface.
func (d *Device) Product() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.product == "" {
		return fmt.Sprintf("HID %04X:%04X", d.vendorID, d.productID)
	}
	return d.product
}

// Close closes the HID device connection
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.device != nil {
		return d.device.Close()
	}
	return nil
}

// ReadReports reads input reports until ctx is done or the device fails,
// handing each decoded report to fn.
func (d *Device) ReadReports(ctx context.Context, fn func(*Report)) error {
	buf := make([]byte, 64)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.mu.Lock()
		if d.closed || d.device == nil {
			d.mu.Unlock()
			return fmt.Errorf("device closed")
		}
		dev := d.device
		d.mu.Unlock()

		n, err := dev.Read(buf)
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		if n == 0 {
			continue
		}

		report, err := ParseReport(buf[:n])
		if err != nil {
			// Feature and status reports share the pipe.
			continue
		}
		fn(report)
	}
}

// Write sends data to the HID device
func (d *Device) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.device == nil {
		return fmt.Errorf("device closed")
	}

	_, err := d.device.Write(data)
	return err
}

// SetLightbar sets the light bar colour
func (d *Device) SetLightbar(c color.Color) error {
	return d.Write(NewLightbarReport(c).Encode())
}

// Reconnect attempts to reconnect to the device
func (d *Device) Reconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Close existing connection if any
	if d.device != nil {
		d.device.Close()
		d.device = nil
	}
	d.closed = false

	devices := hid.Enumerate(d.vendorID, d.productID)
	if len(devices) == 0 {
		return fmt.Errorf("device not found")
	}

	if err := d.open(devices); err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}
	return nil
}

// WaitForDevice waits for a device to become available and connects to it
func (d *Device) WaitForDevice(ctx context.Context, pollInterval time.Duration) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.Reconnect(); err == nil {
				return nil
			}
		}
	}
}
