package layer

import (
	"errors"
	"image/color"
	"testing"

	"github.com/pleimann/padpaint/internal/canvas"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
	empty = color.RGBA{}
)

func newTestManager(count int) *Manager {
	return NewManager(count, func() canvas.Surface { return canvas.New(8, 8) }, nil)
}

func dab(s canvas.Surface, hue float64) {
	s.SetFillColor(hue, 100, 100)
	s.DrawCircle(4, 4, 6)
}

func centre(s canvas.Surface) color.RGBA {
	return s.Image().RGBAAt(4, 4)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := newTestManager(2)
	dab(m.ActiveSurface(), 0)

	m.SaveForUndo()
	dab(m.ActiveSurface(), 240)

	if !m.Undo() {
		t.Fatal("Undo() = false after SaveForUndo")
	}
	if got := centre(m.ActiveSurface()); got != red {
		t.Errorf("after Undo pixel = %v, want red", got)
	}

	if !m.Redo() {
		t.Fatal("Redo() = false after Undo")
	}
	if got := centre(m.ActiveSurface()); got != blue {
		t.Errorf("after Redo pixel = %v, want blue", got)
	}
}

func TestRedoRejectedTwice(t *testing.T) {
	m := newTestManager(1)
	m.SaveForUndo()
	dab(m.ActiveSurface(), 0)
	m.Undo()

	if !m.Redo() {
		t.Fatal("first Redo() rejected")
	}
	if m.Redo() {
		t.Error("second Redo() accepted without an intervening Undo")
	}
}

func TestInvalidRequestsAreNoOps(t *testing.T) {
	m := newTestManager(1)
	dab(m.ActiveSurface(), 0)

	if m.Undo() {
		t.Error("Undo() accepted with nothing saved")
	}
	if m.Redo() {
		t.Error("Redo() accepted without an Undo")
	}
	if got := centre(m.ActiveSurface()); got != red {
		t.Errorf("rejected requests changed the layer: %v", got)
	}

	m.SaveForUndo()
	m.Undo()
	if m.Undo() {
		t.Error("second Undo() accepted")
	}
}

func TestNewSaveDropsRedo(t *testing.T) {
	m := newTestManager(1)
	m.SaveForUndo()
	dab(m.ActiveSurface(), 0)
	m.Undo()

	m.SaveForUndo()
	if m.Redo() {
		t.Error("Redo() accepted after a new save")
	}
}

func TestToggleUndoRedo(t *testing.T) {
	m := newTestManager(1)
	dab(m.ActiveSurface(), 0)
	m.SaveForUndo()
	dab(m.ActiveSurface(), 240)

	want := []color.RGBA{red, blue, red, blue}
	for i, w := range want {
		if !m.ToggleUndoRedo() {
			t.Fatalf("press %d rejected", i+1)
		}
		if got := centre(m.ActiveSurface()); got != w {
			t.Errorf("press %d: pixel = %v, want %v", i+1, got, w)
		}
	}
}

func TestHistoryState(t *testing.T) {
	m := newTestManager(1)
	steps := []struct {
		name string
		do   func()
		want HistoryState
	}{
		{"initial", func() {}, Idle},
		{"save", m.SaveForUndo, UndoSaved},
		{"undo", func() { m.Undo() }, RedoAvailable},
		{"redo", func() { m.Redo() }, UndoSaved},
		{"undo again", func() { m.Undo() }, RedoAvailable},
		{"reset", m.Reset, Idle},
	}

	for _, s := range steps {
		s.do()
		if got := m.State(); got != s.want {
			t.Errorf("%s: State() = %v, want %v", s.name, got, s.want)
		}
	}
}

func TestUndoTargetsSavedLayer(t *testing.T) {
	m := newTestManager(3)
	m.SaveForUndo()
	dab(m.ActiveSurface(), 0)

	m.GoUpOneLayer()
	dab(m.ActiveSurface(), 240)
	m.Undo()

	if got := centre(m.Layer(0).Surface); got != empty {
		t.Errorf("layer 0 after Undo = %v, want cleared", got)
	}
	if got := centre(m.Layer(1).Surface); got != blue {
		t.Errorf("layer 1 touched by Undo: %v", got)
	}
}

func TestLayerNavigationClamps(t *testing.T) {
	m := newTestManager(4)

	m.GoDownOneLayer()
	if m.ActiveIndex() != 0 {
		t.Errorf("GoDownOneLayer() at 0 -> %d", m.ActiveIndex())
	}

	for i := 0; i < 6; i++ {
		m.GoUpOneLayer()
	}
	if m.ActiveIndex() != 3 {
		t.Errorf("GoUpOneLayer() past top -> %d, want 3", m.ActiveIndex())
	}

	m.SetActive(-5)
	if m.ActiveIndex() != 0 {
		t.Errorf("SetActive(-5) -> %d", m.ActiveIndex())
	}
	if m.Layer(9) != nil {
		t.Error("Layer(9) should be nil")
	}
}

func TestToggleActiveLayerTransparency(t *testing.T) {
	m := newTestManager(2)
	m.GoUpOneLayer()
	m.ToggleActiveLayerTransparency()

	if !m.IsActiveLayerTransparent() {
		t.Error("active layer not transparent")
	}
	if m.Layer(0).Transparent {
		t.Error("inactive layer flag changed")
	}
}

func TestCompositeVisible(t *testing.T) {
	m := newTestManager(2)
	m.SetBackground(canvas.HSB{H: 0, S: 0, B: 100})

	if got := centre(m.CompositeVisible()); got != white {
		t.Errorf("empty composite = %v, want background white", got)
	}

	dab(m.Layer(0).Surface, 0)
	dab(m.Layer(1).Surface, 240)
	if got := centre(m.CompositeVisible()); got != blue {
		t.Errorf("composite = %v, want top layer blue", got)
	}

	m.SetActive(1)
	m.ToggleActiveLayerTransparency()
	if got := centre(m.CompositeVisible()); got != red {
		t.Errorf("composite with top hidden = %v, want red", got)
	}

	m.SetActive(0)
	if got := centre(m.CompositeActive()); got != red {
		t.Errorf("CompositeActive() = %v, want red", got)
	}
	if got := m.CompositeActive().Image().RGBAAt(0, 0); got != white {
		t.Errorf("CompositeActive() corner = %v, want background", got)
	}
}

func TestSetBlendModeAppliesToAllLayers(t *testing.T) {
	m := newTestManager(3)
	m.SetBlendMode(canvas.SoftLight)
	for i := 0; i < m.Count(); i++ {
		if got := m.Layer(i).Surface.BlendMode(); got != canvas.SoftLight {
			t.Errorf("layer %d blend = %v", i, got)
		}
	}
}

type stubExporter struct {
	err error
	got canvas.Surface
}

func (s *stubExporter) Export(c canvas.Surface) (string, error) {
	s.got = c
	if s.err != nil {
		return "", s.err
	}
	return "sketch.png", nil
}

func TestExport(t *testing.T) {
	m := newTestManager(1)
	dab(m.ActiveSurface(), 0)
	m.SaveForUndo()

	e := &stubExporter{err: errors.New("disk full")}
	if _, err := m.Export(e); err == nil {
		t.Fatal("Export() error = nil, want failure")
	}
	if got := centre(e.got); got != red {
		t.Errorf("exported composite = %v, want red", got)
	}
	if got := centre(m.ActiveSurface()); got != red || m.State() != UndoSaved {
		t.Errorf("failed export changed state: pixel %v state %v", got, m.State())
	}

	e.err = nil
	if path, err := m.Export(e); err != nil || path != "sketch.png" {
		t.Errorf("Export() = %q, %v", path, err)
	}
}

func TestReset(t *testing.T) {
	m := newTestManager(2)
	dab(m.ActiveSurface(), 0)
	m.GoUpOneLayer()
	m.ToggleActiveLayerTransparency()
	m.SetBackground(canvas.HSB{H: 10, S: 20, B: 30})
	m.SaveForUndo()

	m.Reset()

	if m.ActiveIndex() != 0 || m.Layer(1).Transparent || m.Background() != (canvas.HSB{}) {
		t.Errorf("Reset() left active=%d transparent=%v bg=%v",
			m.ActiveIndex(), m.Layer(1).Transparent, m.Background())
	}
	if got := centre(m.Layer(0).Surface); got != empty {
		t.Errorf("Reset() left paint on layer 0: %v", got)
	}
	if m.Undo() {
		t.Error("Undo() accepted after Reset")
	}
}
