package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay collapses the burst of events one editor save produces into
// a single reload.
const settleDelay = 100 * time.Millisecond

// Watcher keeps the config current while the painter runs. It watches the
// file's directory so saves that replace the file by rename are seen too.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	log     *zap.Logger
	settle  time.Duration
	stopped chan struct{}
	once    sync.Once

	mu       sync.RWMutex
	current  *Config
	handlers []func(*Config)
	timer    *time.Timer
}

// NewWatcher loads path and prepares to watch it. The initial load must
// succeed; later failed reloads keep the last good config.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:    abs,
		fsw:     fsw,
		log:     log.Named("config"),
		settle:  settleDelay,
		stopped: make(chan struct{}),
		current: cfg,
	}, nil
}

// Start begins delivering reloads.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopped)
		w.fsw.Close()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
}

// OnReload registers a handler for successfully reloaded configs.
// Handlers run on the watcher's goroutine.
func (w *Watcher) OnReload(handler func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Get returns the last config that loaded cleanly.
func (w *Watcher) Get() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopped:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

// schedule (re)arms the settle timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.stopped:
		return
	default:
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.log.Error("config reload failed, keeping previous", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = cfg
	handlers := make([]func(*Config), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	w.log.Info("config reloaded", zap.String("path", w.path))
	for _, h := range handlers {
		h(cfg)
	}
}
