package hid

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/input"
)

// sourceIndex is the device index the HID pad is registered under.
const sourceIndex = 0

// Source feeds a single HID gamepad into the tick loop. Reports are read on
// their own goroutine and Poll hands out the latest one.
type Source struct {
	vendorID  uint16
	productID uint16
	interval  time.Duration
	registry  *input.Registry
	log       *zap.Logger

	mu       sync.Mutex
	dev      *Device
	name     string
	latest   *Report
	lightbar color.RGBA
}

// NewSource creates a source for the pad with the given IDs. It does not
// open the device; Run does.
func NewSource(vendorID, productID uint16, pollInterval time.Duration, registry *input.Registry, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Source{
		vendorID:  vendorID,
		productID: productID,
		interval:  pollInterval,
		registry:  registry,
		log:       log.Named("hid"),
	}
}

// Run connects to the pad and reads reports until ctx is done. A lost pad
// is reported as disconnected and waited for.
func (s *Source) Run(ctx context.Context) error {
	dev, err := NewDevice(s.vendorID, s.productID)
	if err != nil {
		s.log.Info("waiting for gamepad",
			zap.String("vendor_id", hex16(s.vendorID)),
			zap.String("product_id", hex16(s.productID)),
			zap.Error(err))
		dev = &Device{vendorID: s.vendorID, productID: s.productID}
		if err := dev.WaitForDevice(ctx, s.interval); err != nil {
			return err
		}
	}
	defer dev.Close()

	for {
		s.connected(dev)
		err := dev.ReadReports(ctx, s.publish)
		s.disconnected()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn("gamepad lost", zap.Error(err))

		if err := dev.WaitForDevice(ctx, s.interval); err != nil {
			return err
		}
	}
}

func (s *Source) connected(dev *Device) {
	name := dev.Product()
	s.mu.Lock()
	s.dev = dev
	s.name = name
	s.latest = nil
	s.lightbar = color.RGBA{}
	s.mu.Unlock()
	s.registry.Connect(sourceIndex, name)
}

func (s *Source) disconnected() {
	s.mu.Lock()
	s.dev = nil
	s.latest = nil
	s.mu.Unlock()
	s.registry.Disconnect(sourceIndex)
}

func (s *Source) publish(r *Report) {
	s.mu.Lock()
	s.latest = r
	s.mu.Unlock()
}

// Poll returns the latest sample, or nothing before the first report.
func (s *Source) Poll() []input.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil
	}
	return []input.Device{s.latest.Sample(sourceIndex, s.name)}
}

// SetIndicator shows c on the pad's light bar. Repeated colours are not
// resent.
func (s *Source) SetIndicator(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)

	s.mu.Lock()
	dev := s.dev
	if dev == nil || rgba == s.lightbar {
		s.mu.Unlock()
		return
	}
	s.lightbar = rgba
	s.mu.Unlock()

	if err := dev.SetLightbar(rgba); err != nil {
		s.log.Debug("light bar update failed", zap.Error(err))
	}
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}
