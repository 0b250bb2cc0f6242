package timer

import (
	"time"

	"focushub/internal/core/model"
)

// State represents the timer run state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	// StateExpired is transient: it is reported once when the countdown hits
	// zero and is immediately followed by StateIdle.
	StateExpired State = "expired"
)

// EventType defines the type of timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventModeChange  EventType = "mode_change"
	EventExpired     EventType = "expired"
)

// Event represents a timer update for observers.
type Event struct {
	Type      EventType
	State     State
	ModeIndex int
	Mode      model.Mode
	Remaining int
	At        time.Time
}

// Snapshot is a consistent view of the timer.
type Snapshot struct {
	ModeIndex int
	Mode      model.Mode
	Remaining int
	State     State
}

// Display returns the MM:SS rendering of the remaining time.
func (snapshot Snapshot) Display() string {
	return Format(snapshot.Remaining)
}
