package appearance

import (
	"fmt"
	"log"
	"strings"

	"focushub/internal/core/media"
	"focushub/internal/storage"
)

// Theme variants as stored.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Toast messages for the GIF background.
const (
	InvalidGIFMessage = "Please select a valid GIF file."
	GIFUpdatedMessage = "GIF background updated!"
	GIFResetMessage   = "GIF background has been reset."
)

// DefaultGIFURL is shown when no GIF has been chosen.
const DefaultGIFURL = "https://i.imgur.com/sT8s32L.gif"

// Toaster shows a short-lived message.
type Toaster interface {
	Toast(message string)
}

// Settings manages theme, accent colour, background image and the animated
// GIF background.
type Settings struct {
	store      *storage.Store
	toaster    Toaster
	systemDark func() bool
	logger     *log.Logger
}

// Option configures Settings.
type Option func(*Settings)

// WithSystemDark reports the desktop's colour scheme preference, used while
// no theme is stored.
func WithSystemDark(systemDark func() bool) Option {
	return func(settings *Settings) {
		settings.systemDark = systemDark
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(settings *Settings) {
		settings.logger = logger
	}
}

// NewSettings binds appearance preferences to a store.
func NewSettings(store *storage.Store, toaster Toaster, options ...Option) *Settings {
	settings := &Settings{
		store:      store,
		toaster:    toaster,
		systemDark: func() bool { return false },
		logger:     log.Default(),
	}
	for _, option := range options {
		option(settings)
	}
	return settings
}

// Dark reports whether the dark theme is active.
func (settings *Settings) Dark() bool {
	switch settings.store.GetString(storage.KeyTheme, "") {
	case ThemeDark:
		return true
	case "":
		return settings.systemDark()
	default:
		return false
	}
}

// Theme returns "dark" or "light".
func (settings *Settings) Theme() string {
	if settings.Dark() {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme flips the theme and returns the new one.
func (settings *Settings) ToggleTheme() (string, error) {
	next := ThemeDark
	if settings.Dark() {
		next = ThemeLight
	}
	if err := settings.store.SetString(storage.KeyTheme, next); err != nil {
		return settings.Theme(), err
	}
	return next, nil
}

// ThemeColor returns the stored accent colour, or the default when it is
// missing or unusable.
func (settings *Settings) ThemeColor() string {
	color := settings.store.GetString(storage.KeyThemeColor, DefaultThemeColor)
	if _, err := ParseHex(color); err != nil {
		return DefaultThemeColor
	}
	return color
}

// Palette derives the hover and background colours from the accent colour.
func (settings *Settings) Palette() Palette {
	palette, err := PaletteFor(settings.ThemeColor())
	if err != nil {
		palette, _ = PaletteFor(DefaultThemeColor)
	}
	return palette
}

// SetThemeColor stores a new accent colour.
func (settings *Settings) SetThemeColor(hex string) (Palette, error) {
	palette, err := PaletteFor(hex)
	if err != nil {
		return Palette{}, err
	}
	if err := settings.store.SetString(storage.KeyThemeColor, palette.Primary); err != nil {
		return Palette{}, err
	}
	return palette, nil
}

// Background returns the background image data URL, if any.
func (settings *Settings) Background() (string, bool) {
	value := settings.store.GetString(storage.KeyBackground, "")
	return value, value != ""
}

// SetBackgroundFile stores an image file as the background.
func (settings *Settings) SetBackgroundFile(path string) error {
	file, err := media.ReadFile(path, media.Prefix("image/"))
	if err != nil {
		return fmt.Errorf("set background: %w", err)
	}
	return settings.store.SetString(storage.KeyBackground, file.DataURL())
}

// ResetBackground removes the background image.
func (settings *Settings) ResetBackground() error {
	return settings.store.Remove(storage.KeyBackground)
}

// AnimationActive reports whether the GIF background is shown.
func (settings *Settings) AnimationActive() bool {
	return settings.store.GetBool(storage.KeyAnimationActive, false)
}

// ToggleAnimation flips the GIF background and returns the new state.
func (settings *Settings) ToggleAnimation() (bool, error) {
	next := !settings.AnimationActive()
	if err := settings.store.SetBool(storage.KeyAnimationActive, next); err != nil {
		return !next, err
	}
	return next, nil
}

// SetGIFFile stores an uploaded GIF. Any remote GIF choice is cleared.
func (settings *Settings) SetGIFFile(path string) error {
	file, err := media.ReadFile(path, media.Exactly("image/gif"))
	if err != nil {
		settings.toast(InvalidGIFMessage)
		return fmt.Errorf("set gif: %w", err)
	}
	if err := settings.store.SetString(storage.KeyLocalGIFData, file.DataURL()); err != nil {
		return err
	}
	if err := settings.store.Remove(storage.KeyGIFURL); err != nil {
		settings.logger.Printf("clear gif url: %v", err)
	}
	settings.toast(GIFUpdatedMessage)
	return nil
}

// SelectPresetGIF switches to a remote GIF and drops any uploaded one.
func (settings *Settings) SelectPresetGIF(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("select gif: %w", media.ErrUnsupportedFile)
	}
	if err := settings.store.Remove(storage.KeyLocalGIFData); err != nil {
		settings.logger.Printf("clear local gif: %v", err)
	}
	return settings.store.SetString(storage.KeyGIFURL, wrapCSSURL(url))
}

// ResetGIF returns to the default GIF.
func (settings *Settings) ResetGIF() error {
	if err := settings.SelectPresetGIF(DefaultGIFURL); err != nil {
		return err
	}
	settings.toast(GIFResetMessage)
	return nil
}

// ActiveGIF returns the GIF to show: uploaded data first, then the remote
// choice, then the default.
func (settings *Settings) ActiveGIF() string {
	if local := settings.store.GetString(storage.KeyLocalGIFData, ""); local != "" {
		return local
	}
	if remote := settings.store.GetString(storage.KeyGIFURL, ""); remote != "" {
		return unwrapCSSURL(remote)
	}
	return DefaultGIFURL
}

func (settings *Settings) toast(message string) {
	if settings.toaster != nil {
		settings.toaster.Toast(message)
	}
}

// Remote GIF URLs are stored in CSS url('...') form.
func wrapCSSURL(url string) string {
	return "url('" + url + "')"
}

func unwrapCSSURL(value string) string {
	value = strings.TrimSpace(value)
	inner, ok := strings.CutPrefix(value, "url(")
	if !ok {
		return value
	}
	inner = strings.TrimSuffix(inner, ")")
	return strings.Trim(inner, `'"`)
}
