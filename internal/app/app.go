// Package app holds the painter's state and advances it one tick at a time.
package app

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/action"
	"github.com/pleimann/padpaint/internal/brush"
	"github.com/pleimann/padpaint/internal/canvas"
	"github.com/pleimann/padpaint/internal/config"
	"github.com/pleimann/padpaint/internal/hud"
	"github.com/pleimann/padpaint/internal/input"
	"github.com/pleimann/padpaint/internal/layer"
	"github.com/pleimann/padpaint/internal/logger"
	"github.com/pleimann/padpaint/internal/paint"
	"github.com/pleimann/padpaint/internal/stroke"
)

// App is the whole painter. Tick and Render must be called from one
// goroutine; QueueConfig may be called from any.
type App struct {
	cfg *config.Config
	log *zap.Logger

	registry *input.Registry
	inputs   *input.Mapper
	edges    map[int]*input.EdgeDetector
	bindings *action.Mapper
	pads     int

	brush  *brush.State
	paint  *paint.State
	layers *layer.Manager
	stroke *stroke.Controller

	exporter   layer.Exporter
	lastExport string

	hud   *hud.Renderer
	meter hud.FrameMeter
	frame *canvas.Canvas

	mode       action.Mode
	activeOnly bool
	erasePress int

	mu      sync.Mutex
	pending *config.Config
}

// New builds the painter from cfg. Blend mode and binding names are
// checked here. Only devices connected in registry are read; a nil
// registry gets a private one.
func New(cfg *config.Config, exporter layer.Exporter, registry *input.Registry, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	if registry == nil {
		registry = input.NewRegistry(log)
	}

	modes, err := parseBlendModes(cfg.Paint.BlendModes)
	if err != nil {
		return nil, err
	}
	if err := action.Validate(cfg); err != nil {
		return nil, err
	}

	w, h := cfg.Canvas.Width, cfg.Canvas.Height
	a := &App{
		cfg:      cfg,
		log:      log,
		registry: registry,
		inputs:   input.NewMapper(log),
		edges:    make(map[int]*input.EdgeDetector),
		bindings: action.NewMapper(cfg),
		brush: brush.New(brush.Config{
			Width:        float64(w),
			Height:       float64(h),
			MinSize:      cfg.Brush.MinSize,
			BaseMaxSize:  cfg.Brush.BaseMaxSize,
			MaxSizeSteps: cfg.Brush.MaxSizeSteps,
			MoveSpeed:    cfg.Brush.MoveSpeed,
			Deadzone:     cfg.Input.Deadzone,
		}, log),
		paint: paint.New(modes, log),
		layers: layer.NewManager(cfg.Canvas.Layers, func() canvas.Surface {
			return canvas.New(w, h)
		}, log),
		exporter: exporter,
		hud:      hud.NewRenderer(w, cfg.Canvas.HUDHeight),
		frame:    canvas.New(w, h+cfg.Canvas.HUDHeight),
		mode:     action.Palette,
	}
	a.stroke = stroke.New(a.brush, a.paint, a.layers, log)
	a.layers.SetBlendMode(a.paint.BlendMode())

	return a, nil
}

func parseBlendModes(names []string) ([]canvas.BlendMode, error) {
	modes := make([]canvas.BlendMode, 0, len(names))
	for _, n := range names {
		m, err := canvas.ParseBlendMode(n)
		if err != nil {
			return nil, fmt.Errorf("paint.blend_modes: %w", err)
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// Size returns the full frame size: the canvas plus the HUD strip below it.
func (a *App) Size() (int, int) {
	return a.cfg.Canvas.Width, a.cfg.Canvas.Height + a.cfg.Canvas.HUDHeight
}

// QueueConfig schedules cfg to be applied at the start of the next tick.
// Canvas geometry is fixed at start and is not changed by a reload.
func (a *App) QueueConfig(cfg *config.Config) error {
	if _, err := parseBlendModes(cfg.Paint.BlendModes); err != nil {
		return err
	}
	if err := action.Validate(cfg); err != nil {
		return err
	}

	a.mu.Lock()
	a.pending = cfg
	a.mu.Unlock()
	return nil
}

func (a *App) applyPending() {
	a.mu.Lock()
	cfg := a.pending
	a.pending = nil
	a.mu.Unlock()

	if cfg == nil {
		return
	}

	modes, err := parseBlendModes(cfg.Paint.BlendModes)
	if err != nil {
		a.log.Error("queued config rejected", zap.Error(err))
		return
	}

	next := *cfg
	next.Canvas = a.cfg.Canvas
	a.cfg = &next

	a.brush.SetMotion(next.Brush.MoveSpeed, next.Input.Deadzone)
	a.paint.SetBlendModes(modes)
	a.layers.SetBlendMode(a.paint.BlendMode())
	a.bindings.Reload(&next)
	if a.erasePress >= next.ErasePresses {
		a.erasePress = 0
	}

	a.log.Info("configuration applied",
		zap.Float64("deadzone", next.Input.Deadzone),
		zap.Float64("move_speed", next.Brush.MoveSpeed),
		zap.Strings("blend_modes", next.Paint.BlendModes))
}

// Tick advances the painter by one frame. devices are the samples polled
// this tick and fps the measured frame rate. The registry decides which
// devices count as connected; samples from other indices are dropped.
func (a *App) Tick(devices []input.Device, fps float64) {
	a.applyPending()
	a.meter.Add(fps)

	connected := make(map[int]bool)
	for _, info := range a.registry.Snapshot() {
		connected[info.Index] = true
	}
	a.pads = len(connected)
	for _, i := range a.inputs.Indices() {
		if !connected[i] {
			a.inputs.Forget(i)
			delete(a.edges, i)
		}
	}

	var live []input.Device
	for _, d := range devices {
		if connected[d.Index] {
			live = append(live, d)
		}
	}

	var lt, rt triggerSample
	for _, d := range live {
		s := a.inputs.Configure(d)
		a.handleSticks(s, d, fps)
		lt.merge(s, d, input.LT)
		rt.merge(s, d, input.RT)
	}
	if lt.ok {
		a.paint.UpdateBrightness(lt.value, lt.isButton)
	}
	if rt.ok {
		a.stroke.Apply(rt.value, rt.isButton)
	}

	for _, d := range live {
		s, _ := a.inputs.Surface(d.Index)
		a.handleButtons(s, d)
	}
}

func (a *App) handleSticks(s *input.Surface, dev input.Device, fps float64) {
	if v, ok := s.Axis(dev, input.LSX); ok {
		a.brush.MoveAxis(brush.AxisX, v, fps)
	}
	if v, ok := s.Axis(dev, input.LSY); ok {
		a.brush.MoveAxis(brush.AxisY, v, fps)
	}

	dz := a.cfg.Input.Deadzone
	if v, ok := s.Axis(dev, input.RSX); ok && math.Abs(v) > dz {
		a.paint.UpdateStickX(v)
	}
	if v, ok := s.Axis(dev, input.RSY); ok && math.Abs(v) > dz {
		a.paint.UpdateStickY(v)
	}
}

func (a *App) handleButtons(s *input.Surface, dev input.Device) {
	ed, ok := a.edges[dev.Index]
	if !ok {
		ed = input.NewEdgeDetector()
		a.edges[dev.Index] = ed
	}
	for _, c := range input.Buttons {
		b, ok := s.Button(dev, c)
		if !ok {
			continue
		}
		if ed.Pressed(c, b) {
			a.Dispatch(a.bindings.Map(a.mode, c))
		}
	}
}

// triggerSample is the reading of one trigger across all pads. The pad
// pressing hardest wins, so an idle pad cannot end another pad's stroke.
type triggerSample struct {
	value    float64
	isButton bool
	ok       bool
}

func (t *triggerSample) merge(s *input.Surface, dev input.Device, name input.Control) {
	v, isButton, ok := trigger(s, dev, name)
	if !ok {
		return
	}
	if !t.ok || pressure(v, isButton) > pressure(t.value, t.isButton) {
		*t = triggerSample{value: v, isButton: isButton, ok: true}
	}
}

// pressure puts axis and button readings on the same [-1, 1] scale.
func pressure(v float64, isButton bool) float64 {
	if isButton {
		return 2*v - 1
	}
	return v
}

// trigger reads an analog trigger. Surfaces that map it as an axis report
// [-1, 1]; otherwise the button value in [0, 1] is used.
func trigger(s *input.Surface, dev input.Device, name input.Control) (float64, bool, bool) {
	if s.HasAxis(name) {
		v, ok := s.Axis(dev, name)
		return v, false, ok
	}
	b, ok := s.Button(dev, name)
	return b.Value, true, ok
}

// ResetAll clears the canvas and restores every component. The current
// mode and the active-layer view are kept.
func (a *App) ResetAll() {
	a.erasePress = 0
	a.layers.Reset()
	a.paint.Reset()
	a.brush.Reset()
	a.stroke.Reset()
	a.layers.SetBlendMode(a.paint.BlendMode())
	a.log.Info("canvas erased")
}

func (a *App) Mode() action.Mode { return a.mode }

// Pads is the number of devices connected at the last tick.
func (a *App) Pads() int { return a.pads }

// LastExport returns the path of the most recent successful export.
func (a *App) LastExport() string { return a.lastExport }

// Color is the current paint colour.
func (a *App) Color() canvas.HSB { return a.paint.Color() }
