package storage

import "fyne.io/fyne/v2"

// absentSentinel can never be produced by the application, so it marks a
// missing fyne preference.
const absentSentinel = "\x00focushub:absent\x00"

// FyneBackend stores values in the fyne application preferences.
type FyneBackend struct {
	prefs fyne.Preferences
}

// NewFyneBackend wraps the preferences of a fyne app.
func NewFyneBackend(prefs fyne.Preferences) *FyneBackend {
	return &FyneBackend{prefs: prefs}
}

func (backend *FyneBackend) Load(key string) (string, bool, error) {
	value := backend.prefs.StringWithFallback(key, absentSentinel)
	if value == absentSentinel {
		return "", false, nil
	}
	return value, true, nil
}

func (backend *FyneBackend) Save(key, value string) error {
	backend.prefs.SetString(key, value)
	return nil
}

func (backend *FyneBackend) Delete(key string) error {
	backend.prefs.RemoveValue(key)
	return nil
}

// Keys reports the known keys that currently hold a value; fyne cannot
// enumerate arbitrary keys.
func (backend *FyneBackend) Keys() ([]string, error) {
	var keys []string
	for _, key := range KnownKeys() {
		if _, ok, _ := backend.Load(key); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
