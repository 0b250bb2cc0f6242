// Package focus stores the user's main focus for the day.
package focus

import (
	"strings"

	"focushub/internal/storage"
)

const (
	// DefaultTitle is shown until the user sets a focus.
	DefaultTitle = "Set Your Focus"
	// Placeholder prompts for a focus in the edit field.
	Placeholder = "What is your main focus today?"
)

// Title owns the mainFocus preference.
type Title struct {
	store *storage.Store
}

// NewTitle binds the focus title to a store.
func NewTitle(store *storage.Store) *Title {
	return &Title{store: store}
}

// Get returns the stored focus or the default.
func (title *Title) Get() string {
	value := strings.TrimSpace(title.store.GetString(storage.KeyMainFocus, ""))
	if value == "" {
		return DefaultTitle
	}
	return value
}

// Set stores text. Blank text restores the default. It returns the title to
// display.
func (title *Title) Set(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = DefaultTitle
	}
	if err := title.store.SetString(storage.KeyMainFocus, text); err != nil {
		return text, err
	}
	return text, nil
}

// EditValue is the text to prefill when editing; the default title edits as
// an empty field.
func (title *Title) EditValue() string {
	current := title.Get()
	if current == DefaultTitle {
		return ""
	}
	return current
}
