package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/app"
	"github.com/pleimann/padpaint/internal/canvas"
	"github.com/pleimann/padpaint/internal/config"
	"github.com/pleimann/padpaint/internal/hid"
	"github.com/pleimann/padpaint/internal/host"
	"github.com/pleimann/padpaint/internal/input"
	"github.com/pleimann/padpaint/internal/logger"
	"github.com/pleimann/padpaint/internal/ui"
)

const Version = "0.1.0"

func main() {
	// Check for subcommands first
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "list-devices":
			runListDevices()
			return
		case "set-device", "select-device":
			runSetDevice(os.Args[2:])
			return
		case "init-config":
			runInitConfig(os.Args[2:])
			return
		case "help", "-h", "--help":
			printUsage()
			os.Exit(0)
		}
	}

	configPath := pflag.StringP("config", "c", "config.yaml", "path to configuration file")
	source := pflag.StringP("source", "s", "", "input source, ebiten or hid")
	verbose := pflag.BoolP("verbose", "v", false, "enable verbose logging")
	version := pflag.Bool("version", false, "print version and exit")

	pflag.Usage = printUsage
	pflag.Parse()

	if *version {
		ui.PrintVersion(Version)
		os.Exit(0)
	}

	log, err := logger.New(*verbose)
	if err != nil {
		ui.PrintFatalError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := run(*configPath, *source, log); err != nil {
		log.Error("padpaint stopped", zap.Error(err))
		ui.PrintFatalError("Application error", err.Error())
		os.Exit(1)
	}
	log.Debug("shutdown complete")
}

func run(configPath, sourceFlag string, log *zap.Logger) error {
	cfg := config.Default()
	var watcher *config.Watcher
	if config.Exists(configPath) {
		w, err := config.NewWatcher(configPath, log)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		watcher = w
		cfg = w.Get()
		log.Info("loaded configuration", zap.String("path", configPath))
	} else {
		log.Info("no config file, using defaults", zap.String("path", configPath),
			zap.String("hint", "run init-config to create one"))
	}

	if sourceFlag != "" {
		cfg.Input.Source = sourceFlag
	}

	registry := input.NewRegistry(log)
	exporter := canvas.NewExporter(cfg.Export.Dir, cfg.Export.Prefix, cfg.Export.CopyPath, log)
	painter, err := app.New(cfg, exporter, registry, log)
	if err != nil {
		return fmt.Errorf("failed to initialize painter: %w", err)
	}

	if watcher != nil {
		watcher.OnReload(func(c *config.Config) {
			if err := painter.QueueConfig(c); err != nil {
				log.Error("rejected config reload", zap.Error(err))
			}
		})
		watcher.Start()
		defer watcher.Stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logger.NewContext(ctx, log)

	var src input.Source
	switch cfg.Input.Source {
	case config.SourceHID:
		if !hid.IsDualShock4(cfg.Device.VendorID, cfg.Device.ProductID) {
			log.Warn("configured device is not a known DualShock 4; reports may not decode",
				zap.String("vendor_id", fmt.Sprintf("0x%04X", cfg.Device.VendorID)),
				zap.String("product_id", fmt.Sprintf("0x%04X", cfg.Device.ProductID)))
		}
		hs := hid.NewSource(cfg.Device.VendorID, cfg.Device.ProductID,
			time.Duration(cfg.Device.PollIntervalMs)*time.Millisecond, registry, log)
		go func() {
			if err := hs.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("hid source stopped", zap.Error(err))
			}
		}()
		src = hs
	case config.SourceEbiten:
		src = host.NewEbitenSource(registry, log)
	default:
		return fmt.Errorf("unknown input source %q (want %s or %s)", cfg.Input.Source, config.SourceEbiten, config.SourceHID)
	}

	log.Info("starting", zap.String("source", cfg.Input.Source),
		zap.Int("width", cfg.Canvas.Width), zap.Int("height", cfg.Canvas.Height),
		zap.Int("layers", cfg.Canvas.Layers))

	return host.Run(ctx, painter, src, cfg.Input.FrameRate)
}

func printUsage() {
	ui.PrintUsage(Version)
}

// runListDevices handles the list-devices subcommand
func runListDevices() {
	devices, err := hid.ListDevices()
	if err != nil {
		ui.PrintFatalError("Failed to list devices", err.Error())
		os.Exit(1)
	}
	ui.PrintDeviceList(toUIDevices(devices))
}

func toUIDevices(devices []hid.DeviceInfo) []ui.DeviceInfo {
	out := make([]ui.DeviceInfo, len(devices))
	for i, d := range devices {
		out[i] = ui.DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
			Supported:    hid.IsDualShock4(d.VendorID, d.ProductID),
		}
	}
	return out
}

// runSetDevice handles the set-device subcommand
func runSetDevice(args []string) {
	fs := pflag.NewFlagSet("set-device", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "config.yaml", "path to configuration file")
	fs.Usage = ui.PrintSetDeviceUsage

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	remaining := fs.Args()

	var vendorID, productID uint16

	switch len(remaining) {
	case 0:
		device, err := selectDevice()
		if err != nil {
			ui.PrintFatalError("Device selection failed", err.Error())
			os.Exit(1)
		}
		if device == nil {
			fmt.Println(ui.Muted("No device selected"))
			os.Exit(0)
		}
		vendorID = device.VendorID
		productID = device.ProductID
	case 1:
		ui.PrintFatalError("Invalid arguments", "Both vendor_id and product_id must be provided, or neither")
		os.Exit(1)
	default:
		vid, err := parseID(remaining[0])
		if err != nil {
			ui.PrintFatalError("Invalid vendor_id", fmt.Sprintf("%q: %v", remaining[0], err))
			os.Exit(1)
		}
		pid, err := parseID(remaining[1])
		if err != nil {
			ui.PrintFatalError("Invalid product_id", fmt.Sprintf("%q: %v", remaining[1], err))
			os.Exit(1)
		}
		vendorID = vid
		productID = pid
	}

	if !hid.IsDualShock4(vendorID, productID) {
		fmt.Println(ui.Warning("Not a known DualShock 4; the hid source may not decode its reports"))
	}
	if hid.FindDevice(vendorID, productID) == nil {
		fmt.Println(ui.Warning("Device is not connected; padpaint will wait for it"))
	}

	// Update or create config file
	if config.Exists(*configPath) {
		if err := config.UpdateDeviceIDs(*configPath, vendorID, productID); err != nil {
			ui.PrintFatalError("Failed to update config", err.Error())
			os.Exit(1)
		}
		ui.PrintDeviceUpdated(*configPath, vendorID, productID)
	} else {
		if err := config.CreateDefaultConfig(*configPath, vendorID, productID); err != nil {
			ui.PrintFatalError("Failed to create config", err.Error())
			os.Exit(1)
		}
		ui.PrintDeviceCreated(*configPath, vendorID, productID)
	}
}

// runInitConfig handles the init-config subcommand
func runInitConfig(args []string) {
	fs := pflag.NewFlagSet("init-config", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "config.yaml", "path to configuration file")
	force := fs.BoolP("force", "f", false, "overwrite an existing file")
	fs.Usage = ui.PrintInitConfigUsage

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if config.Exists(*configPath) && !*force {
		ui.PrintFatalError("Config already exists", *configPath+" (use --force to overwrite)")
		os.Exit(1)
	}

	if err := config.CreateDefaultConfig(*configPath, 0, 0); err != nil {
		ui.PrintFatalError("Failed to create config", err.Error())
		os.Exit(1)
	}
	ui.PrintConfigCreated(*configPath)
}

// parseID parses a vendor or product ID from string (supports hex with 0x prefix or decimal)
func parseID(s string) (uint16, error) {
	s = strings.TrimSpace(s)

	var val uint64
	var err error

	if strings.HasPrefix(strings.ToLower(s), "0x") {
		val, err = strconv.ParseUint(s[2:], 16, 16)
	} else {
		val, err = strconv.ParseUint(s, 10, 16)
	}

	if err != nil {
		return 0, err
	}

	return uint16(val), nil
}

// selectDevice displays an interactive device selection menu using huh
func selectDevice() (*ui.DeviceInfo, error) {
	devices, err := hid.ListDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no HID devices found")
	}

	unique := dedupeDevices(toUIDevices(devices))
	if len(unique) == 0 {
		return nil, fmt.Errorf("no identifiable HID devices found")
	}

	return ui.SelectDevice(unique)
}

// dedupeDevices drops repeated vendor/product pairs and devices without
// IDs, keeping the first occurrence.
func dedupeDevices(devices []ui.DeviceInfo) []ui.DeviceInfo {
	seen := make(map[uint32]bool)
	var out []ui.DeviceInfo

	for _, d := range devices {
		if d.VendorID == 0 && d.ProductID == 0 {
			continue
		}
		key := uint32(d.VendorID)<<16 | uint32(d.ProductID)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
