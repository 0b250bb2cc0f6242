package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownKey reports a key outside the schema.
var ErrUnknownKey = errors.New("unknown preference key")

// ErrInvalidValue reports a raw value that does not match its key's kind.
var ErrInvalidValue = errors.New("invalid preference value")

// Kind describes how a key's value is encoded.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindJSON   Kind = "json"
)

// KeySpec documents one persisted key.
type KeySpec struct {
	Key         string
	Kind        Kind
	Description string
}

var schema = []KeySpec{
	{KeyTheme, KindString, `"dark" or "light"; unset follows the desktop`},
	{KeyThemeColor, KindString, "accent colour as #rrggbb"},
	{KeyBackground, KindString, "background image data URL"},
	{KeyNotificationsEnabled, KindBool, "desktop notification opt-in"},
	{KeyStudyStats, KindJSON, "focus session counts"},
	{KeyTasks, KindJSON, "active task list"},
	{KeyTaskHistory, KindJSON, "archived tasks, newest first"},
	{KeyAmbientState, KindJSON, "playing ambient sound and volume"},
	{KeyCustomSounds, KindJSON, "uploaded ambient sounds"},
	{KeyAnimationActive, KindBool, "animated GIF background on/off"},
	{KeyLocalGIFData, KindString, "uploaded GIF data URL"},
	{KeyGIFURL, KindString, "remote GIF as url('...')"},
	{KeySpotifyEmbedURL, KindString, "music player embed URL"},
	{KeyMainFocus, KindString, "main focus title"},
}

// Schema returns the spec of every persisted key in KnownKeys order.
func Schema() []KeySpec {
	return append([]KeySpec(nil), schema...)
}

// Lookup returns the spec for key.
func Lookup(key string) (KeySpec, bool) {
	for _, spec := range schema {
		if spec.Key == key {
			return spec, true
		}
	}
	return KeySpec{}, false
}

// Validate checks a raw value against its key's kind before it is written
// verbatim.
func Validate(key, raw string) error {
	spec, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	switch spec.Kind {
	case KindBool:
		if _, err := strconv.ParseBool(raw); err != nil {
			return fmt.Errorf("%s wants true or false: %w", key, ErrInvalidValue)
		}
	case KindJSON:
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("%s wants JSON: %w", key, ErrInvalidValue)
		}
	}
	return nil
}
