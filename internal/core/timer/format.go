package timer

import "fmt"

// AppTitle is appended to the window title.
const AppTitle = "FocusHub"

// Format renders seconds as zero-padded MM:SS. Minutes are not capped at 59.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Title returns the window title for the remaining time.
func Title(seconds int) string {
	return Format(seconds) + " - " + AppTitle
}
