package layer

import (
	"go.uber.org/zap"

	"github.com/pleimann/padpaint/internal/canvas"
)

// HistoryState is the position of the single-slot undo register.
type HistoryState int

const (
	// Idle means nothing can be undone or redone.
	Idle HistoryState = iota
	// UndoSaved means a snapshot is held and Undo will restore it.
	UndoSaved
	// RedoAvailable means an undo just happened and Redo will reverse it.
	RedoAvailable
)

func (s HistoryState) String() string {
	switch s {
	case UndoSaved:
		return "undo-saved"
	case RedoAvailable:
		return "redo-available"
	default:
		return "idle"
	}
}

// Layer is one drawable surface of the stack.
type Layer struct {
	Surface     canvas.Surface
	Transparent bool
}

// Exporter writes a surface to persistent storage.
type Exporter interface {
	Export(s canvas.Surface) (string, error)
}

// Manager owns the layer stack, the background colour and the undo
// register.
type Manager struct {
	layers []*Layer
	active int

	undo, redo canvas.Surface
	savedLayer int
	saved      bool
	undone     bool
	redone     bool
	selector   bool

	background canvas.HSB
	scratch    canvas.Surface

	log *zap.Logger
}

// NewManager builds count layers plus the undo, redo and composite
// surfaces, all from newSurface.
func NewManager(count int, newSurface func() canvas.Surface, log *zap.Logger) *Manager {
	if count < 1 {
		count = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		layers:  make([]*Layer, count),
		undo:    newSurface(),
		redo:    newSurface(),
		scratch: newSurface(),
		log:     log.Named("layers"),
	}
	for i := range m.layers {
		m.layers[i] = &Layer{Surface: newSurface()}
	}
	return m
}

// Reset clears every surface and restores the initial state.
func (m *Manager) Reset() {
	for _, l := range m.layers {
		l.Surface.Clear()
		l.Transparent = false
	}
	m.undo.Clear()
	m.redo.Clear()
	m.scratch.Clear()
	m.active = 0
	m.savedLayer = 0
	m.saved, m.undone, m.redone, m.selector = false, false, false, false
	m.background = canvas.HSB{}
}

func (m *Manager) Count() int { return len(m.layers) }

func (m *Manager) ActiveIndex() int { return m.active }

// Layer returns layer i, or nil when out of range.
func (m *Manager) Layer(i int) *Layer {
	if i < 0 || i >= len(m.layers) {
		return nil
	}
	return m.layers[i]
}

func (m *Manager) ActiveSurface() canvas.Surface {
	return m.layers[m.active].Surface
}

// SetActive selects layer i, clamped to the stack.
func (m *Manager) SetActive(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(m.layers)-1 {
		i = len(m.layers) - 1
	}
	m.active = i
}

func (m *Manager) GoUpOneLayer() { m.SetActive(m.active + 1) }

func (m *Manager) GoDownOneLayer() { m.SetActive(m.active - 1) }

func (m *Manager) ToggleActiveLayerTransparency() {
	l := m.layers[m.active]
	l.Transparent = !l.Transparent
}

func (m *Manager) IsActiveLayerTransparent() bool {
	return m.layers[m.active].Transparent
}

func (m *Manager) SetBackground(c canvas.HSB) { m.background = c }

func (m *Manager) Background() canvas.HSB { return m.background }

// SetBlendMode applies mode to every layer.
func (m *Manager) SetBlendMode(mode canvas.BlendMode) {
	for _, l := range m.layers {
		l.Surface.SetBlendMode(mode)
	}
}

// SaveForUndo snapshots the active layer into the undo slot and drops any
// pending redo.
func (m *Manager) SaveForUndo() {
	m.saveLayer(m.active)
}

func (m *Manager) saveLayer(i int) {
	m.savedLayer = i
	m.saved = true
	m.undone = false
	m.redone = false
	copySurface(m.undo, m.layers[i].Surface)
}

// Undo restores the saved layer from the undo slot. It reports false when
// nothing was saved.
func (m *Manager) Undo() bool {
	if !m.saved {
		m.log.Debug("undo ignored: nothing saved")
		return false
	}
	target := m.layers[m.savedLayer].Surface
	copySurface(m.redo, target)
	copySurface(target, m.undo)

	m.saved = false
	m.redone = false
	m.undone = true
	return true
}

// Redo reverses the last Undo. The content it replaces is saved first, so
// a redo can itself be undone. It reports false unless an undo has just
// happened.
func (m *Manager) Redo() bool {
	if !m.undone || m.redone {
		m.log.Debug("redo ignored", zap.Bool("undone", m.undone), zap.Bool("redone", m.redone))
		return false
	}
	i := m.savedLayer
	m.saveLayer(i)
	copySurface(m.layers[i].Surface, m.redo)
	m.redone = true
	return true
}

// ToggleUndoRedo alternates between Undo and Redo on successive calls.
func (m *Manager) ToggleUndoRedo() bool {
	var ok bool
	if !m.selector {
		ok = m.Undo()
	} else {
		ok = m.Redo()
	}
	m.selector = !m.selector
	return ok
}

func (m *Manager) State() HistoryState {
	switch {
	case m.saved:
		return UndoSaved
	case m.undone && !m.redone:
		return RedoAvailable
	default:
		return Idle
	}
}

func (m *Manager) CanUndo() bool { return m.State() == UndoSaved }

func (m *Manager) CanRedo() bool { return m.State() == RedoAvailable }

// CompositeVisible draws the background and then every non-transparent
// layer from index 0 upward onto the scratch surface and returns it.
func (m *Manager) CompositeVisible() canvas.Surface {
	bg := m.background
	m.scratch.Fill(bg.H, bg.S, bg.B)
	for _, l := range m.layers {
		if l.Transparent {
			continue
		}
		m.scratch.CompositeFrom(l.Surface, 0, 0)
	}
	return m.scratch
}

// CompositeActive draws the background and the active layer only.
func (m *Manager) CompositeActive() canvas.Surface {
	bg := m.background
	m.scratch.Fill(bg.H, bg.S, bg.B)
	m.scratch.CompositeFrom(m.ActiveSurface(), 0, 0)
	return m.scratch
}

// Export writes the visible composite. Failures leave the stack untouched.
func (m *Manager) Export(e Exporter) (string, error) {
	return e.Export(m.CompositeVisible())
}

func copySurface(dst, src canvas.Surface) {
	dst.Clear()
	dst.CompositeFrom(src, 0, 0)
}
