package timer

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"focushub/internal/core/model"
	"focushub/internal/core/notify"
)

// ErrUnknownMode indicates a mode index outside the configured sequence.
var ErrUnknownMode = errors.New("unknown timer mode")

// Notification text shown when a countdown expires.
const (
	NotificationTitle = "Time's Up!"

	focusDoneBody   = "Time for a break!"
	breakDoneBody   = "Time to focus!"
	focusDonePrompt = "Time for a break!"
	breakDonePrompt = "Break's over! Time to focus."
	nextTimerPrompt = "\n\nWould you like to start the next timer?"
)

// NotificationPreferences reports whether the user opted in to alerts.
type NotificationPreferences interface {
	NotificationsEnabled() bool
}

// Notifier delivers permission-gated OS alerts.
type Notifier interface {
	Permission() notify.Permission
	Notify(title, body string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Ask(message string, onConfirm func())
}

// SessionRecorder counts completed focus sessions.
type SessionRecorder interface {
	Increment()
}

// SoundPlayer starts the expiry sound without waiting for it to finish.
type SoundPlayer interface {
	PlayNotification() error
}

// AudioUnlocker prepares audio output on the first user gesture. Calls after
// the first are no-ops.
type AudioUnlocker interface {
	Unlock()
}

// Dependencies are the collaborators the engine calls into. Any of them may
// be nil except Ticks, which defaults to a one-second IntervalTicker.
type Dependencies struct {
	Preferences NotificationPreferences
	Notifier    Notifier
	Prompt      Confirmer
	Sessions    SessionRecorder
	Sound       SoundPlayer
	Audio       AudioUnlocker
	Ticks       TickSource
	Logger      *log.Logger
}

// Engine is the countdown state machine. Remaining time is an integer count
// of seconds decremented once per tick, never derived from wall-clock deltas.
type Engine struct {
	mu         sync.Mutex
	config     model.TimerConfig
	deps       Dependencies
	modeIndex  int
	remaining  int
	state      State
	cancelTick func()
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an Engine in the idle state on the first mode.
func New(config model.TimerConfig, deps Dependencies) *Engine {
	config.Modes = append([]model.Mode(nil), config.Modes...)
	if len(config.Modes) == 0 {
		config.Modes = model.DefaultModes()
	}
	for i, mode := range config.Modes {
		if mode.Duration < time.Second {
			config.Modes[i].Duration = time.Second
		}
	}
	if config.FocusIndex < 0 || config.FocusIndex >= len(config.Modes) {
		config.FocusIndex = 0
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if deps.Ticks == nil {
		deps.Ticks = IntervalTicker{Interval: config.TickInterval}
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	engine := &Engine{
		config:    config,
		deps:      deps,
		modeIndex: config.FocusIndex,
		state:     StateIdle,
	}
	engine.remaining = engine.config.Modes[engine.modeIndex].Seconds()
	return engine
}

// Config returns the mode configuration.
func (engine *Engine) Config() model.TimerConfig {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	config := engine.config
	config.Modes = append([]model.Mode(nil), engine.config.Modes...)
	return config
}

// Snapshot returns the current mode, remaining time and state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		close(ch)
	} else {
		engine.events = append(engine.events, ch)
	}
	engine.mu.Unlock()
	return ch
}

// Start begins counting down. It is a no-op unless the timer is idle.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.closed || engine.state != StateIdle {
		engine.mu.Unlock()
		return
	}
	engine.mu.Unlock()

	if engine.deps.Audio != nil {
		engine.deps.Audio.Unlock()
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.state != StateIdle {
		return
	}
	engine.state = StateRunning
	engine.generation++
	generation := engine.generation
	engine.cancelTick = engine.deps.Ticks.Start(func() {
		engine.tick(generation)
	})
	engine.emitStateLocked(EventStateChange)
}

// Pause stops counting down and keeps the remaining time. It is a no-op
// unless the timer is running.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRunning {
		return
	}
	engine.stopTickLocked()
	engine.emitStateLocked(EventStateChange)
}

// Toggle starts an idle timer or pauses a running one.
func (engine *Engine) Toggle() {
	if engine.Snapshot().State == StateRunning {
		engine.Pause()
		return
	}
	engine.Start()
}

// Reset stops the timer and restores the active mode's full duration.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopTickLocked()
	engine.remaining = engine.config.Modes[engine.modeIndex].Seconds()
	engine.emitStateLocked(EventStateChange)
}

// SwitchMode makes index the active mode and resets the timer.
func (engine *Engine) SwitchMode(index int) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if index < 0 || index >= len(engine.config.Modes) {
		return fmt.Errorf("switch to mode %d: %w", index, ErrUnknownMode)
	}
	engine.stopTickLocked()
	engine.modeIndex = index
	engine.remaining = engine.config.Modes[index].Seconds()
	engine.emitStateLocked(EventModeChange)
	return nil
}

// MoveToNextMode follows the two-tier cycle: focus goes to the first break,
// any break goes back to focus.
func (engine *Engine) MoveToNextMode() {
	engine.mu.Lock()
	next := engine.config.NextIndex(engine.modeIndex)
	engine.mu.Unlock()

	if err := engine.SwitchMode(next); err != nil {
		engine.deps.Logger.Printf("move to next mode: %v", err)
	}
}

// Close stops ticking and closes every observer channel.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.stopTickLocked()
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	if engine.state != StateRunning || generation != engine.generation {
		// Late tick from a cancelled source.
		engine.mu.Unlock()
		return
	}

	engine.remaining--
	if engine.remaining > 0 {
		engine.emitStateLocked(EventTick)
		engine.mu.Unlock()
		return
	}

	expiredIndex := engine.modeIndex
	expiredMode := engine.config.Modes[expiredIndex]
	isFocus := engine.config.IsFocus(expiredIndex)

	engine.stopTickLocked()
	engine.remaining = 0
	engine.emitLocked(Event{
		Type:      EventExpired,
		State:     StateExpired,
		ModeIndex: expiredIndex,
		Mode:      expiredMode,
		Remaining: 0,
		At:        time.Now(),
	})
	engine.remaining = expiredMode.Seconds()
	engine.emitStateLocked(EventStateChange)
	engine.mu.Unlock()

	engine.onExpire(isFocus)
}

// onExpire runs the completion side effects outside the lock so that
// collaborators may call back into the engine.
func (engine *Engine) onExpire(isFocus bool) {
	if engine.deps.Sound != nil {
		if err := engine.deps.Sound.PlayNotification(); err != nil {
			engine.deps.Logger.Printf("play notification sound: %v", err)
		}
	}

	body, message := breakDoneBody, breakDonePrompt
	if isFocus {
		body, message = focusDoneBody, focusDonePrompt
	}

	if engine.deps.Notifier != nil && engine.deps.Preferences != nil &&
		engine.deps.Preferences.NotificationsEnabled() &&
		engine.deps.Notifier.Permission() == notify.PermissionGranted {
		if err := engine.deps.Notifier.Notify(NotificationTitle, body); err != nil {
			engine.deps.Logger.Printf("notify expiry: %v", err)
		}
	}

	if isFocus && engine.deps.Sessions != nil {
		engine.deps.Sessions.Increment()
	}

	if engine.deps.Prompt != nil {
		engine.deps.Prompt.Ask(message+nextTimerPrompt, engine.MoveToNextMode)
	}
}

func (engine *Engine) stopTickLocked() {
	if engine.cancelTick != nil {
		engine.cancelTick()
		engine.cancelTick = nil
	}
	engine.generation++
	engine.state = StateIdle
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		ModeIndex: engine.modeIndex,
		Mode:      engine.config.Modes[engine.modeIndex],
		Remaining: engine.remaining,
		State:     engine.state,
	}
}

func (engine *Engine) emitStateLocked(eventType EventType) {
	engine.emitLocked(Event{
		Type:      eventType,
		State:     engine.state,
		ModeIndex: engine.modeIndex,
		Mode:      engine.config.Modes[engine.modeIndex],
		Remaining: engine.remaining,
		At:        time.Now(),
	})
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
