package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focushub/internal/core/model"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	yamlConfigFileName = "config.yaml"
	tomlConfigFileName = "config.toml"
)

// Backend names accepted in the store section.
const (
	BackendFile   = "file"
	BackendFyne   = "fyne"
	BackendMemory = "memory"
)

// Config is the resolved application configuration.
type Config struct {
	Timer model.TimerConfig
	Store StoreConfig

	// Source is the file the config was read from, empty for defaults.
	Source string
}

// StoreConfig selects and sizes the preference backend.
type StoreConfig struct {
	Backend    string
	Path       string
	QuotaBytes int
}

type fileMode struct {
	Name            string `yaml:"name" toml:"name"`
	DurationMinutes int    `yaml:"duration_minutes" toml:"duration_minutes"`
	DurationSeconds int    `yaml:"duration_seconds" toml:"duration_seconds"`
}

type fileStore struct {
	Backend    string `yaml:"backend" toml:"backend"`
	Path       string `yaml:"path" toml:"path"`
	QuotaBytes int    `yaml:"quota_bytes" toml:"quota_bytes"`
}

type fileConfig struct {
	Modes     []fileMode `yaml:"modes" toml:"modes"`
	FocusMode *int       `yaml:"focus_mode" toml:"focus_mode"`
	Store     fileStore  `yaml:"store" toml:"store"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig(configDir string) Config {
	return Config{
		Timer: model.DefaultTimerConfig(),
		Store: StoreConfig{
			Backend:    BackendFile,
			Path:       DefaultPreferencesPath(configDir),
			QuotaBytes: DefaultQuotaBytes,
		},
	}
}

// LoadConfig reads config.yaml, or config.toml when no YAML file exists, from
// configDir. Missing files yield defaults; invalid entries are ignored.
func LoadConfig(configDir string) (Config, error) {
	config := DefaultConfig(configDir)

	yamlPath := filepath.Join(configDir, yamlConfigFileName)
	rawData, err := os.ReadFile(yamlPath)
	if err == nil {
		var fileData fileConfig
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return config, fmt.Errorf("parse config yaml: %w", err)
		}
		applyFileConfig(&config, fileData, configDir)
		config.Source = yamlPath
		return config, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("read config file: %w", err)
	}

	tomlPath := filepath.Join(configDir, tomlConfigFileName)
	rawData, err = os.ReadFile(tomlPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}
	var fileData fileConfig
	if _, err := toml.Decode(string(rawData), &fileData); err != nil {
		return config, fmt.Errorf("parse config toml: %w", err)
	}
	applyFileConfig(&config, fileData, configDir)
	config.Source = tomlPath
	return config, nil
}

// SaveConfig writes config as YAML into configDir.
func SaveConfig(configDir string, config Config) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	focusMode := config.Timer.FocusIndex
	fileData := fileConfig{
		FocusMode: &focusMode,
		Store: fileStore{
			Backend:    config.Store.Backend,
			Path:       config.Store.Path,
			QuotaBytes: config.Store.QuotaBytes,
		},
	}
	for _, mode := range config.Timer.Modes {
		entry := fileMode{Name: mode.Name}
		if mode.Duration%time.Minute == 0 {
			entry.DurationMinutes = int(mode.Duration / time.Minute)
		} else {
			entry.DurationSeconds = mode.Seconds()
		}
		fileData.Modes = append(fileData.Modes, entry)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, yamlConfigFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyFileConfig(config *Config, fileData fileConfig, configDir string) {
	var modes []model.Mode
	for _, entry := range fileData.Modes {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		var duration time.Duration
		if entry.DurationSeconds > 0 {
			duration = time.Duration(entry.DurationSeconds) * time.Second
		} else if entry.DurationMinutes > 0 {
			duration = time.Duration(entry.DurationMinutes) * time.Minute
		}
		if duration <= 0 {
			continue
		}
		modes = append(modes, model.Mode{Name: name, Duration: duration})
	}
	if len(modes) > 0 {
		config.Timer.Modes = modes
		config.Timer.FocusIndex = 0
	}

	if fileData.FocusMode != nil && *fileData.FocusMode >= 0 && *fileData.FocusMode < len(config.Timer.Modes) {
		config.Timer.FocusIndex = *fileData.FocusMode
	}

	switch backend := strings.ToLower(strings.TrimSpace(fileData.Store.Backend)); backend {
	case BackendFile, BackendFyne, BackendMemory:
		config.Store.Backend = backend
	}
	if path := strings.TrimSpace(fileData.Store.Path); path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(configDir, path)
		}
		config.Store.Path = path
	}
	if fileData.Store.QuotaBytes > 0 {
		config.Store.QuotaBytes = fileData.Store.QuotaBytes
	}
}
