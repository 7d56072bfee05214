package input

// Button is one sampled button. Analog marks a button with continuous
// travel in Value; its Pressed flag is not used for edge detection.
type Button struct {
	Pressed bool
	Value   float64
	Analog  bool
}

// Device is one per-tick sample of a connected gamepad.
type Device struct {
	Index   int
	Name    string
	Axes    []float64
	Buttons []Button
}

// Source yields the devices connected at the start of a tick.
type Source interface {
	Poll() []Device
}

// Surface is the logical control surface of one device: control names
// resolved to raw axis and button indices.
type Surface struct {
	Profile Profile
	axes    map[Control]int
	buttons map[Control]int
	hat     bool
}

// BuildMapping returns the control table for a profile.
func BuildMapping(p Profile) *Surface {
	t := profileTables[p.Family]
	s := &Surface{
		Profile: p,
		axes:    make(map[Control]int, len(t.axes)),
		buttons: make(map[Control]int, len(t.buttons)),
		hat:     t.hat,
	}
	for k, v := range t.axes {
		s.axes[k] = v
	}
	for k, v := range t.buttons {
		s.buttons[k] = v
	}
	return s
}

// Resolve returns the raw index for name, looking at axes first.
// Names absent from the profile report false.
func (s *Surface) Resolve(name Control) (int, bool) {
	if i, ok := s.axes[name]; ok {
		return i, true
	}
	return s.ResolveButton(name)
}

func (s *Surface) ResolveAxis(name Control) (int, bool) {
	i, ok := s.axes[name]
	return i, ok
}

func (s *Surface) ResolveButton(name Control) (int, bool) {
	i, ok := s.buttons[name]
	return i, ok
}

// HasAxis reports whether name is an axis on this surface.
func (s *Surface) HasAxis(name Control) bool {
	_, ok := s.axes[name]
	return ok
}

// HasButton reports whether name can be read as a button on this surface,
// including D-pad buttons synthesized from the hat axes.
func (s *Surface) HasButton(name Control) bool {
	if _, ok := s.buttons[name]; ok {
		return true
	}
	return s.hat && isDPad(name)
}

// Axis reads name from a device sample. Unmapped names and raw indices the
// device did not report both return false.
func (s *Surface) Axis(dev Device, name Control) (float64, bool) {
	i, ok := s.axes[name]
	if !ok || i >= len(dev.Axes) {
		return 0, false
	}
	return dev.Axes[i], true
}

// Button reads name from a device sample.
func (s *Surface) Button(dev Device, name Control) (Button, bool) {
	if i, ok := s.buttons[name]; ok {
		if i >= len(dev.Buttons) {
			return Button{}, false
		}
		return dev.Buttons[i], true
	}
	if s.hat && isDPad(name) {
		return s.hatButton(dev, name)
	}
	return Button{}, false
}

func (s *Surface) hatButton(dev Device, name Control) (Button, bool) {
	var v float64
	var ok bool
	var pressed bool
	switch name {
	case DLeft:
		v, ok = s.Axis(dev, DX)
		pressed = v < -hatThreshold
	case DRight:
		v, ok = s.Axis(dev, DX)
		pressed = v > hatThreshold
	case DUp:
		v, ok = s.Axis(dev, DY)
		pressed = v < -hatThreshold
	case DDown:
		v, ok = s.Axis(dev, DY)
		pressed = v > hatThreshold
	}
	if !ok {
		return Button{}, false
	}
	b := Button{Pressed: pressed}
	if pressed {
		b.Value = 1
	}
	return b, true
}

func isDPad(name Control) bool {
	switch name {
	case DUp, DDown, DLeft, DRight:
		return true
	}
	return false
}
