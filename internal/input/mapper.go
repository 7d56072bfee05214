package input

import (
	"sort"

	"go.uber.org/zap"
)

// Mapper keeps one Surface per connected device index.
type Mapper struct {
	surfaces map[int]*Surface
	log      *zap.Logger
}

func NewMapper(log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mapper{
		surfaces: make(map[int]*Surface),
		log:      log.Named("input"),
	}
}

// Configure returns the surface for dev, building it on first sight.
// Configuring an already known device returns the existing surface.
func (m *Mapper) Configure(dev Device) *Surface {
	if s, ok := m.surfaces[dev.Index]; ok {
		return s
	}

	p := DetectProfile(len(dev.Axes))
	s := BuildMapping(p)
	m.surfaces[dev.Index] = s

	m.log.Info("gamepad mapped",
		zap.Int("index", dev.Index),
		zap.String("name", dev.Name),
		zap.Int("axes", len(dev.Axes)),
		zap.Int("buttons", len(dev.Buttons)),
		zap.Stringer("profile", p.Family))

	return s
}

// Surface returns the surface configured for a device index.
func (m *Mapper) Surface(index int) (*Surface, bool) {
	s, ok := m.surfaces[index]
	return s, ok
}

// Forget drops the surface of a disconnected device.
func (m *Mapper) Forget(index int) {
	if _, ok := m.surfaces[index]; !ok {
		return
	}
	delete(m.surfaces, index)
	m.log.Info("gamepad mapping dropped", zap.Int("index", index))
}

// Indices returns the configured device indices in ascending order.
func (m *Mapper) Indices() []int {
	out := make([]int, 0, len(m.surfaces))
	for i := range m.surfaces {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
