package input

// AnalogThreshold is the value above which an analog-only button counts as
// pressed.
const AnalogThreshold = 0.9

// EdgeState is the tracked state of one button. Exactly one field is set.
type EdgeState struct {
	Pressed  bool
	Released bool
}

// EdgeDetector turns sampled button levels into rising-edge events.
type EdgeDetector struct {
	states map[Control]*EdgeState
}

func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{states: make(map[Control]*EdgeState)}
}

// Update records a sample and reports whether it is a rising edge.
func (e *EdgeDetector) Update(name Control, pressedNow bool) bool {
	st := e.state(name)
	if pressedNow {
		if !st.Pressed {
			st.Pressed, st.Released = true, false
			return true
		}
		return false
	}
	if !st.Released {
		st.Pressed, st.Released = false, true
	}
	return false
}

// Pressed is Update for a sampled Button. Analog buttons are checked
// against AnalogThreshold on every sample without edge tracking.
func (e *EdgeDetector) Pressed(name Control, b Button) bool {
	if b.Analog {
		return b.Value > AnalogThreshold
	}
	return e.Update(name, b.Pressed)
}

// State returns the tracked state for name.
func (e *EdgeDetector) State(name Control) EdgeState {
	return *e.state(name)
}

func (e *EdgeDetector) Reset() {
	e.states = make(map[Control]*EdgeState)
}

func (e *EdgeDetector) state(name Control) *EdgeState {
	st, ok := e.states[name]
	if !ok {
		st = &EdgeState{Released: true}
		e.states[name] = st
	}
	return st
}
