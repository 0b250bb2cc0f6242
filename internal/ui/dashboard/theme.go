package dashboard

import (
	"image/color"

	"focushub/internal/core/appearance"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// accentTheme forces the stored light/dark variant and paints the accent
// palette over the default theme.
type accentTheme struct {
	base       fyne.Theme
	variant    fyne.ThemeVariant
	primary    color.Color
	hover      color.Color
	background color.Color
}

func newAccentTheme(dark bool, palette appearance.Palette) *accentTheme {
	accent := &accentTheme{
		base:    theme.DefaultTheme(),
		variant: theme.VariantLight,
	}
	if dark {
		accent.variant = theme.VariantDark
	}
	accent.primary = hexColor(palette.Primary)
	accent.hover = hexColor(palette.Hover)
	if !dark {
		accent.background = hexColor(palette.Background)
	}
	return accent
}

func (accent *accentTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		if accent.primary != nil {
			return accent.primary
		}
	case theme.ColorNameHover:
		if accent.hover != nil {
			return accent.hover
		}
	case theme.ColorNameBackground:
		if accent.background != nil {
			return accent.background
		}
	}
	return accent.base.Color(name, accent.variant)
}

// Font maps every monospace variant onto the plain monospace face, the only
// one the stock themes ship.
func (accent *accentTheme) Font(style fyne.TextStyle) fyne.Resource {
	if style.Monospace {
		return accent.base.Font(fyne.TextStyle{Monospace: true})
	}
	return accent.base.Font(style)
}

func (accent *accentTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return accent.base.Icon(name)
}

func (accent *accentTheme) Size(name fyne.ThemeSizeName) float32 {
	return accent.base.Size(name)
}

// hexColor returns nil for invalid input so the default colour is used.
func hexColor(hex string) color.Color {
	rgb, err := appearance.ParseHex(hex)
	if err != nil {
		return nil
	}
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff}
}
