package model

import (
	"testing"
	"time"
)

func TestNextIndex(t *testing.T) {
	config := DefaultTimerConfig()

	tests := []struct {
		name    string
		current int
		want    int
	}{
		{"focus goes to first break", 0, 1},
		{"short break returns to focus", 1, 0},
		{"long break returns to focus", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := config.NextIndex(tt.current); got != tt.want {
				t.Errorf("NextIndex(%d) = %d, want %d", tt.current, got, tt.want)
			}
		})
	}
}

func TestNextIndexFocusLast(t *testing.T) {
	config := TimerConfig{
		Modes: []Mode{
			{Name: "Break", Duration: time.Minute},
			{Name: "Focus", Duration: 2 * time.Minute},
		},
		FocusIndex: 1,
	}
	if got := config.NextIndex(1); got != 0 {
		t.Errorf("NextIndex(1) = %d, want 0", got)
	}
	if got := config.NextIndex(0); got != 1 {
		t.Errorf("NextIndex(0) = %d, want 1", got)
	}
}

func TestModeSeconds(t *testing.T) {
	mode := Mode{Name: "Focus", Duration: 25 * time.Minute}
	if got := mode.Seconds(); got != 1500 {
		t.Errorf("Seconds() = %d, want 1500", got)
	}
}
