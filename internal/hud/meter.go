package hud

// meterWindow is the number of samples averaged per reading.
const meterWindow = 30

// FrameMeter averages measured frame rates over fixed windows. The reading
// only changes once a window is complete.
type FrameMeter struct {
	sum   int
	count int
	mean  int
}

// Add records one frame-rate sample, truncated to an integer.
func (m *FrameMeter) Add(fps float64) {
	m.sum += int(fps)
	m.count++
	if m.count == meterWindow {
		m.mean = m.sum / meterWindow
		m.sum, m.count = 0, 0
	}
}

// Mean returns the average of the last complete window, or zero before the
// first one.
func (m *FrameMeter) Mean() int { return m.mean }

func (m *FrameMeter) Reset() { *m = FrameMeter{} }
