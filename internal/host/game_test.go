package host

import (
	"context"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pleimann/padpaint/internal/app"
	"github.com/pleimann/padpaint/internal/config"
	"github.com/pleimann/padpaint/internal/input"
)

type fakeSource struct {
	polls     int
	devices   []input.Device
	indicated []color.Color
}

func (f *fakeSource) Poll() []input.Device {
	f.polls++
	return f.devices
}

func (f *fakeSource) SetIndicator(c color.Color) {
	f.indicated = append(f.indicated, c)
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.Canvas = config.CanvasConfig{Width: 32, Height: 24, HUDHeight: 16, Layers: 2}
	a, err := app.New(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	return a
}

func TestGameLayout(t *testing.T) {
	g := NewGame(context.Background(), newTestApp(t), &fakeSource{}, nil)
	if w, h := g.Layout(800, 600); w != 32 || h != 40 {
		t.Errorf("Layout() = %d x %d, want 32 x 40", w, h)
	}
}

func TestGameUpdateTicks(t *testing.T) {
	src := &fakeSource{}
	g := NewGame(context.Background(), newTestApp(t), src, nil)

	if err := g.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if src.polls != 1 {
		t.Errorf("source polled %d times, want 1", src.polls)
	}
	if len(src.indicated) != 1 {
		t.Errorf("indicator updated %d times, want 1", len(src.indicated))
	}
}

func TestGameUpdateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{}
	g := NewGame(ctx, newTestApp(t), src, nil)
	if err := g.Update(); err != ebiten.Termination {
		t.Errorf("Update() error = %v, want ebiten.Termination", err)
	}
	if src.polls != 0 {
		t.Error("cancelled game still polled the source")
	}
}

func TestStandardButtonsCoverProfile(t *testing.T) {
	for name := range standardButtons {
		if _, ok := standardSurface.ResolveButton(name); !ok {
			t.Errorf("standard button %s has no raw index", name)
		}
	}
	if standardSurface.Profile.Family != input.TriggerAsButton {
		t.Errorf("standard pads classified as %v", standardSurface.Profile.Family)
	}
}
