package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()

	config, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(config.Timer.Modes) != 3 {
		t.Fatalf("got %d modes, want 3", len(config.Timer.Modes))
	}
	if config.Timer.Modes[0].Duration != 25*time.Minute {
		t.Errorf("focus duration = %v", config.Timer.Modes[0].Duration)
	}
	if config.Store.Backend != BackendFile {
		t.Errorf("backend = %q", config.Store.Backend)
	}
	if config.Store.Path != filepath.Join(dir, "preferences.json") {
		t.Errorf("path = %q", config.Store.Path)
	}
	if config.Source != "" {
		t.Errorf("Source = %q, want empty", config.Source)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	data := `modes:
  - name: Deep Work
    duration_minutes: 50
  - name: Stretch
    duration_seconds: 90
  - name: ""
    duration_minutes: 5
  - name: Broken
    duration_minutes: -1
focus_mode: 0
store:
  backend: memory
  path: prefs/custom.json
  quota_bytes: 1024
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(config.Timer.Modes) != 2 {
		t.Fatalf("got %d modes, want 2: %+v", len(config.Timer.Modes), config.Timer.Modes)
	}
	if config.Timer.Modes[0].Name != "Deep Work" || config.Timer.Modes[0].Duration != 50*time.Minute {
		t.Errorf("mode 0 = %+v", config.Timer.Modes[0])
	}
	if config.Timer.Modes[1].Duration != 90*time.Second {
		t.Errorf("mode 1 = %+v", config.Timer.Modes[1])
	}
	if config.Store.Backend != BackendMemory {
		t.Errorf("backend = %q", config.Store.Backend)
	}
	if config.Store.Path != filepath.Join(dir, "prefs", "custom.json") {
		t.Errorf("path = %q", config.Store.Path)
	}
	if config.Store.QuotaBytes != 1024 {
		t.Errorf("quota = %d", config.Store.QuotaBytes)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	data := `focus_mode = 1

[[modes]]
name = "Break"
duration_minutes = 10

[[modes]]
name = "Focus"
duration_minutes = 45

[store]
backend = "fyne"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Timer.FocusIndex != 1 {
		t.Errorf("FocusIndex = %d, want 1", config.Timer.FocusIndex)
	}
	if config.Store.Backend != BackendFyne {
		t.Errorf("backend = %q", config.Store.Backend)
	}
	if filepath.Base(config.Source) != "config.toml" {
		t.Errorf("Source = %q", config.Source)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("modes: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want parse error")
	}
	if len(config.Timer.Modes) != 3 {
		t.Errorf("defaults not returned alongside error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig(dir)
	config.Timer.Modes[1].Duration = 330 * time.Second

	if err := SaveConfig(dir, config); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	for i, mode := range config.Timer.Modes {
		if loaded.Timer.Modes[i] != mode {
			t.Errorf("mode %d = %+v, want %+v", i, loaded.Timer.Modes[i], mode)
		}
	}
}
