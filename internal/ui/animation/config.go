package animation

import "time"

// Config contains animation timing values.
type Config struct {
	// TypeInterval is the delay between characters of the typewriter.
	TypeInterval time.Duration

	// ToastDuration is how long a toast stays visible.
	ToastDuration time.Duration

	// MinFrameDelay replaces GIF frame delays that are missing or too short
	// to render.
	MinFrameDelay time.Duration
}

// DefaultConfig returns the dashboard's timings.
func DefaultConfig() Config {
	return Config{
		TypeInterval:  75 * time.Millisecond,
		ToastDuration: 2500 * time.Millisecond,
		MinFrameDelay: 20 * time.Millisecond,
	}
}
