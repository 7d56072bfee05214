package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcherReload(t *testing.T) {
	configPath := writeConfig(t, "erase_presses: 2\n")

	w, err := NewWatcher(configPath, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if got := w.Get().ErasePresses; got != 2 {
		t.Fatalf("initial ErasePresses = %d, want 2", got)
	}

	reloaded := make(chan *Config, 4)
	w.OnReload(func(cfg *Config) { reloaded <- cfg })
	w.Start()

	if err := os.WriteFile(configPath, []byte("erase_presses: 7\n"), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.ErasePresses == 7 {
				if w.Get().ErasePresses != 7 {
					t.Errorf("Get().ErasePresses = %d after reload, want 7", w.Get().ErasePresses)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestNewWatcherInvalidConfig(t *testing.T) {
	configPath := writeConfig(t, "input:\n  source: midi\n")

	if _, err := NewWatcher(configPath, nil); err == nil {
		t.Fatal("NewWatcher() expected error for invalid config")
	}
}

func TestWatcherSeesRenameSave(t *testing.T) {
	configPath := writeConfig(t, "erase_presses: 2\n")

	w, err := NewWatcher(configPath, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	reloaded := make(chan *Config, 4)
	w.OnReload(func(cfg *Config) { reloaded <- cfg })
	w.Start()

	tmp := configPath + ".swp"
	if err := os.WriteFile(tmp, []byte("erase_presses: 9\n"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := os.Rename(tmp, configPath); err != nil {
		t.Fatalf("rename: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.ErasePresses == 9 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload after rename")
		}
	}
}

func TestWatcherKeepsLastGoodConfig(t *testing.T) {
	configPath := writeConfig(t, "erase_presses: 3\n")

	w, err := NewWatcher(configPath, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(configPath, []byte("input:\n  deadzone: 2\n"), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	w.reload()

	if got := w.Get().ErasePresses; got != 3 {
		t.Errorf("Get().ErasePresses = %d after bad reload, want 3", got)
	}

	w.Stop()
	w.Stop()
}
