package input

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// DeviceInfo identifies a connected device.
type DeviceInfo struct {
	Index int
	Name  string
}

// Registry tracks connected devices. Connect and Disconnect may be called
// from host callbacks on any goroutine; a tick reads it once via Snapshot.
type Registry struct {
	mu      sync.RWMutex
	devices map[int]string
	log     *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		devices: make(map[int]string),
		log:     log.Named("registry"),
	}
}

func (r *Registry) Connect(index int, name string) {
	r.mu.Lock()
	r.devices[index] = name
	r.mu.Unlock()
	r.log.Info("gamepad connected", zap.Int("index", index), zap.String("name", name))
}

func (r *Registry) Disconnect(index int) {
	r.mu.Lock()
	_, ok := r.devices[index]
	delete(r.devices, index)
	r.mu.Unlock()
	if ok {
		r.log.Info("gamepad disconnected", zap.Int("index", index))
	}
}

// Snapshot returns the connected devices ordered by index.
func (r *Registry) Snapshot() []DeviceInfo {
	r.mu.RLock()
	out := make([]DeviceInfo, 0, len(r.devices))
	for i, name := range r.devices {
		out = append(out, DeviceInfo{Index: i, Name: name})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
