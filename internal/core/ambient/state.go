package ambient

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultVolume applies when no usable volume is stored.
const DefaultVolume = 0.5

// Volume is a 0..1 level. It decodes from either a JSON number or a numeric
// string, since older stores hold the slider's string value.
type Volume float64

// UnmarshalJSON accepts 0.5, "0.5" and null.
func (volume *Volume) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	text := string(data)
	if strings.HasPrefix(text, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		text = strings.TrimSpace(unquoted)
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return err
	}
	*volume = Volume(parsed)
	return nil
}

// Clamp limits the volume to 0..1.
func (volume Volume) Clamp() Volume {
	switch {
	case volume < 0:
		return 0
	case volume > 1:
		return 1
	default:
		return volume
	}
}

// State is the persisted ambient selection.
type State struct {
	ActiveSound *string `json:"activeSound"`
	Volume      Volume  `json:"volume"`
}

// CustomSound is a user-uploaded sound stored as a data URL.
type CustomSound struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data string `json:"data"`
}

// Sound is one selectable ambient sound.
type Sound struct {
	ID     string
	Name   string
	Custom bool
}
