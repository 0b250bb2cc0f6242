package appearance

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"focushub/internal/core/media"
	"focushub/internal/storage"
)

type toastRecorder struct{ messages []string }

func (recorder *toastRecorder) Toast(message string) {
	recorder.messages = append(recorder.messages, message)
}

func newSettings(t *testing.T, systemDark bool) (*Settings, *storage.Store, *toastRecorder) {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend(), log.New(io.Discard, "", 0))
	toasts := &toastRecorder{}
	settings := NewSettings(store, toasts,
		WithSystemDark(func() bool { return systemDark }),
		WithLogger(log.New(io.Discard, "", 0)))
	return settings, store, toasts
}

func TestColorDerivations(t *testing.T) {
	tests := []struct {
		hex   string
		hover string
		tint  string
	}{
		{"#c0b9dd", "#9a94b1", "#fcfcfd"},
		{"#ff0000", "#cc0000", "#fff2f2"},
		{"#000000", "#000000", "#f2f2f2"},
		{"#808080", "#666666", "#f9f9f9"},
	}
	for _, tt := range tests {
		palette, err := PaletteFor(tt.hex)
		if err != nil {
			t.Fatalf("PaletteFor(%q) error = %v", tt.hex, err)
		}
		if palette.Hover != tt.hover || palette.Background != tt.tint {
			t.Errorf("PaletteFor(%q) = %+v, want hover %s tint %s", tt.hex, palette, tt.hover, tt.tint)
		}
	}

	brighter, _ := AdjustColor("#c0b9dd", 20)
	if brighter != "#e6deff" {
		t.Errorf("AdjustColor(+20) = %s, want clamped #e6deff", brighter)
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, bad := range []string{"", "c0b9dd", "#c0b9d", "#zzzzzz", "#+12345"} {
		if _, err := ParseHex(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v", bad, err)
		}
	}
}

func TestTheme(t *testing.T) {
	settings, store, _ := newSettings(t, true)
	if got := settings.Theme(); got != ThemeDark {
		t.Errorf("unset theme with dark system = %q", got)
	}

	next, err := settings.ToggleTheme()
	if err != nil || next != ThemeLight {
		t.Fatalf("ToggleTheme() = %q, %v", next, err)
	}
	if raw, _ := store.Raw(storage.KeyTheme); raw != "light" {
		t.Errorf("stored theme = %q", raw)
	}
	if next, _ := settings.ToggleTheme(); next != ThemeDark {
		t.Errorf("second toggle = %q", next)
	}
}

func TestThemeColor(t *testing.T) {
	settings, store, _ := newSettings(t, false)
	if got := settings.ThemeColor(); got != DefaultThemeColor {
		t.Errorf("default = %q", got)
	}

	if _, err := settings.SetThemeColor("#FF0000"); err != nil {
		t.Fatal(err)
	}
	if raw, _ := store.Raw(storage.KeyThemeColor); raw != "#ff0000" {
		t.Errorf("stored = %q", raw)
	}

	_ = store.SetString(storage.KeyThemeColor, "purple")
	if got := settings.Palette().Primary; got != DefaultThemeColor {
		t.Errorf("bad stored colour palette = %q", got)
	}
}

func TestBackground(t *testing.T) {
	settings, _, _ := newSettings(t, false)
	dir := t.TempDir()
	png := filepath.Join(dir, "bg.png")
	_ = os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n"), 0o600)

	if err := settings.SetBackgroundFile(png); err != nil {
		t.Fatal(err)
	}
	value, ok := settings.Background()
	if !ok || !strings.HasPrefix(value, "data:image/png;base64,") {
		t.Errorf("Background() = %q, %v", value, ok)
	}

	text := filepath.Join(dir, "notes.txt")
	_ = os.WriteFile(text, []byte("hello"), 0o600)
	if err := settings.SetBackgroundFile(text); !errors.Is(err, media.ErrUnsupportedFile) {
		t.Errorf("non-image error = %v", err)
	}

	if err := settings.ResetBackground(); err != nil {
		t.Fatal(err)
	}
	if _, ok := settings.Background(); ok {
		t.Error("background still set after reset")
	}
}

func TestGIFPrecedence(t *testing.T) {
	settings, store, toasts := newSettings(t, false)
	if got := settings.ActiveGIF(); got != DefaultGIFURL {
		t.Errorf("default ActiveGIF() = %q", got)
	}

	if err := settings.SelectPresetGIF("https://example.com/rain.gif"); err != nil {
		t.Fatal(err)
	}
	if raw, _ := store.Raw(storage.KeyGIFURL); raw != "url('https://example.com/rain.gif')" {
		t.Errorf("stored gifUrl = %q", raw)
	}
	if got := settings.ActiveGIF(); got != "https://example.com/rain.gif" {
		t.Errorf("remote ActiveGIF() = %q", got)
	}

	gif := filepath.Join(t.TempDir(), "loop.gif")
	_ = os.WriteFile(gif, []byte("GIF89a"), 0o600)
	if err := settings.SetGIFFile(gif); err != nil {
		t.Fatal(err)
	}
	if got := settings.ActiveGIF(); !strings.HasPrefix(got, "data:image/gif;base64,") {
		t.Errorf("local ActiveGIF() = %q", got)
	}
	if _, ok := store.Raw(storage.KeyGIFURL); ok {
		t.Error("upload did not clear gifUrl")
	}

	if err := settings.ResetGIF(); err != nil {
		t.Fatal(err)
	}
	if got := settings.ActiveGIF(); got != DefaultGIFURL {
		t.Errorf("after reset ActiveGIF() = %q", got)
	}
	want := []string{GIFUpdatedMessage, GIFResetMessage}
	if strings.Join(toasts.messages, "|") != strings.Join(want, "|") {
		t.Errorf("toasts = %q", toasts.messages)
	}
}

func TestSetGIFFile_RejectsOtherImages(t *testing.T) {
	settings, store, toasts := newSettings(t, false)
	png := filepath.Join(t.TempDir(), "still.png")
	_ = os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n"), 0o600)

	err := settings.SetGIFFile(png)
	if !errors.Is(err, media.ErrUnsupportedFile) {
		t.Errorf("error = %v", err)
	}
	if _, ok := store.Raw(storage.KeyLocalGIFData); ok {
		t.Error("invalid file stored")
	}
	if len(toasts.messages) != 1 || toasts.messages[0] != InvalidGIFMessage {
		t.Errorf("toasts = %q", toasts.messages)
	}
}

func TestToggleAnimation(t *testing.T) {
	settings, store, _ := newSettings(t, false)
	active, err := settings.ToggleAnimation()
	if err != nil || !active {
		t.Fatalf("ToggleAnimation() = %v, %v", active, err)
	}
	if raw, _ := store.Raw(storage.KeyAnimationActive); raw != "true" {
		t.Errorf("stored = %q", raw)
	}
	if active, _ := settings.ToggleAnimation(); active {
		t.Error("second toggle still active")
	}
}
