package model

import "time"

// Mode is a named timer configuration.
type Mode struct {
	Name     string
	Duration time.Duration
}

// Seconds returns the mode duration as whole seconds.
func (mode Mode) Seconds() int {
	return int(mode.Duration / time.Second)
}

// TimerConfig contains runtime settings for the timer state machine.
type TimerConfig struct {
	Modes []Mode

	// FocusIndex marks the mode whose completion counts as a focus session.
	FocusIndex int

	TickInterval time.Duration
}

// DefaultModes returns the stock focus/short break/long break sequence.
func DefaultModes() []Mode {
	return []Mode{
		{Name: "Focus", Duration: 25 * time.Minute},
		{Name: "Short Break", Duration: 5 * time.Minute},
		{Name: "Long Break", Duration: 15 * time.Minute},
	}
}

// DefaultTimerConfig returns the timer configuration used without a config file.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Modes:        DefaultModes(),
		FocusIndex:   0,
		TickInterval: time.Second,
	}
}

// IsFocus reports whether index refers to the focus mode.
func (config TimerConfig) IsFocus(index int) bool {
	return index == config.FocusIndex
}

// NextIndex returns the mode that follows index: focus goes to the first
// break after it, any break goes back to focus.
func (config TimerConfig) NextIndex(index int) int {
	if index != config.FocusIndex {
		return config.FocusIndex
	}
	next := config.FocusIndex + 1
	if next < len(config.Modes) {
		return next
	}
	if config.FocusIndex > 0 {
		return 0
	}
	return config.FocusIndex
}
