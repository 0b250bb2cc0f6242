// Package app builds the per-process dependency graph shared by the desktop,
// terminal and command-line front ends.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"focushub/internal/core/ambient"
	"focushub/internal/core/appearance"
	"focushub/internal/core/confirm"
	"focushub/internal/core/focus"
	"focushub/internal/core/music"
	"focushub/internal/core/notify"
	"focushub/internal/core/stats"
	"focushub/internal/core/tasks"
	"focushub/internal/core/timer"
	"focushub/internal/platform"
	"focushub/internal/storage"

	"fyne.io/fyne/v2"
)

const (
	// Name is the application name used for directories and titles.
	Name = "FocusHub"
	// ID is the fyne application identifier.
	ID = "com.focushub.app"
	// ConfigDirEnv overrides the configuration directory.
	ConfigDirEnv = "FOCUSHUB_CONFIG_DIR"
)

// ErrBackendUnavailable indicates the configured store backend cannot be
// opened by this front end.
var ErrBackendUnavailable = errors.New("preference backend unavailable")

// Options customise how the graph is built. The zero value builds the
// production graph.
type Options struct {
	ConfigDir string
	// StorePath forces the file backend at this path.
	StorePath string
	// Preferences backs the "fyne" store backend.
	Preferences fyne.Preferences
	// Sender replaces the platform notification tool.
	Sender     notify.Sender
	SystemDark func() bool
	Platform   platform.Service
	Ticks      timer.TickSource
	Logger     *log.Logger
	// Silent skips the audio player and the platform notifier.
	Silent bool
}

// App holds one instance of every component.
type App struct {
	ConfigDir     string
	Config        storage.Config
	Store         *storage.Store
	Platform      platform.Service
	Prompt        *confirm.Prompt
	Toasts        *Toasts
	Gateway       *notify.Gateway
	Notifications *notify.Settings
	Stats         *stats.Counter
	Timer         *timer.Engine
	Tasks         *tasks.List
	Appearance    *appearance.Settings
	Ambient       *ambient.Mixer
	Music         *music.Player
	Focus         *focus.Title

	audio  *platform.Audio
	logger *log.Logger
}

// New loads the configuration, opens the store and builds the components.
// Stored statistics and tasks are loaded; playback and permission requests
// wait for Start.
func New(options Options) (*App, error) {
	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}
	service := options.Platform
	if service == nil {
		service = platform.NewService()
	}

	configDir, err := resolveConfigDir(options.ConfigDir, service)
	if err != nil {
		return nil, err
	}

	config, err := storage.LoadConfig(configDir)
	if err != nil {
		logger.Printf("load config: %v", err)
	}
	if options.StorePath != "" {
		config.Store.Backend = storage.BackendFile
		config.Store.Path = options.StorePath
	}

	backend, err := openBackend(config.Store, options.Preferences)
	if err != nil {
		return nil, err
	}
	store := storage.NewStore(backend, componentLogger(logger, "[storage] "))

	application := &App{
		ConfigDir: configDir,
		Config:    config,
		Store:     store,
		Platform:  service,
		Prompt:    confirm.New(nil),
		Toasts:    &Toasts{logger: logger},
		Music:     music.NewPlayer(store),
		Focus:     focus.NewTitle(store),
		logger:    logger,
	}

	sender := options.Sender
	if sender == nil && !options.Silent {
		notifier, err := platform.NewNotifier(Name)
		if err != nil {
			logger.Printf("desktop notifications: %v", err)
		} else {
			sender = notifier
		}
	}
	application.Gateway = notify.NewGateway(sender)
	application.Notifications = notify.NewSettings(store, application.Gateway)

	var player ambient.Player
	if !options.Silent {
		cacheDir, err := service.CacheDir(Name)
		if err != nil {
			logger.Printf("cache dir: %v", err)
			cacheDir = filepath.Join(os.TempDir(), Name)
		}
		application.audio = platform.NewAudio(cacheDir, componentLogger(logger, "[audio] "))
		player = application.audio
	}

	application.Ambient = ambient.NewMixer(store, player, application.Prompt,
		ambient.WithLogger(componentLogger(logger, "[ambient] ")))

	application.Stats = stats.NewCounter(store, application.Prompt,
		stats.WithLogger(componentLogger(logger, "[stats] ")))

	application.Tasks = tasks.NewList(store, application.Prompt, application.Toasts,
		tasks.WithLogger(componentLogger(logger, "[tasks] ")))

	appearanceOptions := []appearance.Option{appearance.WithLogger(componentLogger(logger, "[appearance] "))}
	if options.SystemDark != nil {
		appearanceOptions = append(appearanceOptions, appearance.WithSystemDark(options.SystemDark))
	}
	application.Appearance = appearance.NewSettings(store, application.Toasts, appearanceOptions...)

	deps := timer.Dependencies{
		Preferences: application.Notifications,
		Notifier:    application.Gateway,
		Prompt:      application.Prompt,
		Sessions:    application.Stats,
		Audio:       application.Ambient,
		Ticks:       options.Ticks,
		Logger:      componentLogger(logger, "[timer] "),
	}
	if application.audio != nil {
		deps.Sound = application.audio
	}
	application.Timer = timer.New(config.Timer, deps)

	return application, nil
}

// Start re-requests notification permission when the user opted in earlier
// and resumes the saved ambient sound.
func (app *App) Start(ctx context.Context) {
	if app.Notifications.NotificationsEnabled() {
		if _, err := app.Gateway.RequestPermission(ctx); err != nil {
			app.logger.Printf("restore notification permission: %v", err)
		}
	}
	app.Ambient.Restore()
}

// Close stops the timer and silences playback. The saved ambient selection is
// kept so the next start resumes it.
func (app *App) Close() {
	app.Timer.Close()
	if app.audio != nil {
		if err := app.audio.Stop(); err != nil {
			app.logger.Printf("stop audio: %v", err)
		}
	}
}

// StorePath returns the preferences file when the file backend is in use.
func (app *App) StorePath() (string, bool) {
	backend, ok := app.Store.Backend().(*storage.FileBackend)
	if !ok {
		return "", false
	}
	return backend.Path(), true
}

// AutostartEnabled reports whether FocusHub starts at login.
func (app *App) AutostartEnabled() (bool, error) {
	return app.Platform.AutostartEnabled(Name)
}

// SetAutostart registers or removes the login item for the running binary.
// A file-backed store is passed along with --store so the login launch opens
// the same preferences.
func (app *App) SetAutostart(enabled bool) error {
	if !enabled {
		if err := app.Platform.DisableAutostart(Name); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		return nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := app.Platform.EnableAutostart(app.loginItem(execPath)); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (app *App) loginItem(execPath string) platform.LoginItem {
	item := platform.LoginItem{AppName: Name, ExecPath: execPath, Args: []string{"gui"}}
	if path, ok := app.StorePath(); ok {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		item.Args = append(item.Args, "--store", path)
	}
	return item
}

// Toaster shows a short-lived message.
type Toaster interface {
	Toast(message string)
}

// Toasts forwards messages to the active front end. Without one, messages
// are logged.
type Toasts struct {
	mu     sync.Mutex
	target Toaster
	logger *log.Logger
}

// SetTarget replaces the front end that displays toasts.
func (toasts *Toasts) SetTarget(target Toaster) {
	toasts.mu.Lock()
	toasts.target = target
	toasts.mu.Unlock()
}

// Toast shows message on the current target.
func (toasts *Toasts) Toast(message string) {
	toasts.mu.Lock()
	target := toasts.target
	toasts.mu.Unlock()

	if target != nil {
		target.Toast(message)
		return
	}
	if toasts.logger != nil {
		toasts.logger.Printf("toast: %s", message)
	}
}

func resolveConfigDir(explicit string, service platform.Service) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if fromEnv := os.Getenv(ConfigDirEnv); fromEnv != "" {
		return fromEnv, nil
	}
	configDir, err := service.ConfigDir(Name)
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return configDir, nil
}

func openBackend(config storage.StoreConfig, prefs fyne.Preferences) (storage.Backend, error) {
	switch config.Backend {
	case storage.BackendMemory:
		return storage.NewMemoryBackend(), nil
	case storage.BackendFyne:
		if prefs == nil {
			return nil, fmt.Errorf("open %s store: %w", config.Backend, ErrBackendUnavailable)
		}
		return storage.NewFyneBackend(prefs), nil
	default:
		return storage.NewFileBackend(config.Path, config.QuotaBytes), nil
	}
}

func componentLogger(base *log.Logger, prefix string) *log.Logger {
	return log.New(base.Writer(), prefix, base.Flags())
}
