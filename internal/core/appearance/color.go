package appearance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColor rejects anything that is not a #rrggbb string.
var ErrInvalidColor = errors.New("invalid hex colour")

// DefaultThemeColor is the accent colour used until the user picks one.
const DefaultThemeColor = "#c0b9dd"

// HoverPercent darkens the accent colour for hover states.
const HoverPercent = -20

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders the colour as lowercase #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a #rrggbb colour.
func ParseHex(hex string) (RGB, error) {
	hex = strings.TrimSpace(hex)
	if len(hex) != 7 || hex[0] != '#' {
		return RGB{}, fmt.Errorf("parse %q: %w", hex, ErrInvalidColor)
	}
	value, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse %q: %w", hex, ErrInvalidColor)
	}
	return RGB{R: uint8(value >> 16), G: uint8(value >> 8), B: uint8(value)}, nil
}

// AdjustColor scales each channel by percent (negative darkens) and clamps to
// the 0-255 range.
func AdjustColor(hex string, percent float64) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	adjust := func(channel uint8) uint8 {
		v := float64(channel)
		v = math.Max(0, math.Min(255, v+(v*percent/100)))
		return roundChannel(v)
	}
	return RGB{R: adjust(c.R), G: adjust(c.G), B: adjust(c.B)}.Hex(), nil
}

// BackgroundTint mixes 5% of the colour into white.
func BackgroundTint(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	mix := func(channel uint8) uint8 {
		return roundChannel(float64(channel)*0.05 + 255*0.95)
	}
	return RGB{R: mix(c.R), G: mix(c.G), B: mix(c.B)}.Hex(), nil
}

// Palette is the accent colour with its derived variants.
type Palette struct {
	Primary    string
	Hover      string
	Background string
}

// PaletteFor derives the hover and background colours for an accent colour.
func PaletteFor(hex string) (Palette, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return Palette{}, err
	}
	primary := c.Hex()
	hover, _ := AdjustColor(primary, HoverPercent)
	background, _ := BackgroundTint(primary)
	return Palette{Primary: primary, Hover: hover, Background: background}, nil
}

// roundChannel rounds half up.
func roundChannel(v float64) uint8 {
	return uint8(math.Floor(v + 0.5))
}
