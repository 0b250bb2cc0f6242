// Package preferences implements the FocusHub settings window. Every control
// applies its change immediately.
package preferences

import (
	"context"
	"errors"
	"image/color"
	"log"

	"focushub/internal/app"
	"focushub/internal/core/ambient"
	"focushub/internal/core/appearance"
	"focushub/internal/core/media"
	"focushub/internal/core/music"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	invalidLinkMessage  = "Please paste a valid Spotify link."
	invalidImageMessage = "Please select a valid image file."
	invalidSoundMessage = "Please select a valid audio file."
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	core     *app.App
	settings Settings
	onApply  func()

	notifications *widget.Check
	darkTheme     *widget.Check
	colorButton   *widget.Button
	animation     *widget.Check
	gifURL        *widget.Entry
	sounds        *widget.Select
	volume        *widget.Slider
	deleteSound   *widget.Button
	musicLink     *widget.Entry
	autostart     *widget.Check

	soundIDs map[string]string
	updating bool
}

// New creates a preferences window. onApply runs after any change that
// affects the dashboard's appearance or music link.
func New(fyneApp fyne.App, core *app.App, onApply func()) *Window {
	prefs := &Window{
		window:   fyneApp.NewWindow(app.Name + " Settings"),
		core:     core,
		onApply:  onApply,
		soundIDs: map[string]string{},
	}

	prefs.notifications = widget.NewCheck("Desktop notifications", prefs.setNotifications)
	prefs.darkTheme = widget.NewCheck("Dark theme", prefs.setDarkTheme)
	prefs.colorButton = widget.NewButton("", prefs.pickColor)
	resetColor := widget.NewButton("Reset colour", func() {
		prefs.applyColor(appearance.DefaultThemeColor)
	})

	chooseBackground := widget.NewButton("Choose image...", func() {
		prefs.openFile(nil, func(path string) {
			if err := core.Appearance.SetBackgroundFile(path); err != nil {
				log.Printf("set background: %v", err)
				if errors.Is(err, media.ErrUnsupportedFile) {
					core.Toasts.Toast(invalidImageMessage)
				}
				return
			}
			prefs.applied()
		})
	})
	removeBackground := widget.NewButton("Remove image", func() {
		if err := core.Appearance.ResetBackground(); err != nil {
			log.Printf("reset background: %v", err)
		}
		prefs.applied()
	})

	prefs.animation = widget.NewCheck("Animated GIF background", prefs.setAnimation)
	prefs.gifURL = widget.NewEntry()
	prefs.gifURL.SetPlaceHolder(appearance.DefaultGIFURL)
	useGIF := widget.NewButton("Use link", func() {
		if err := core.Appearance.SelectPresetGIF(prefs.gifURL.Text); err != nil {
			log.Printf("select gif: %v", err)
			return
		}
		prefs.applied()
	})
	uploadGIF := widget.NewButton("Upload GIF...", func() {
		prefs.openFile([]string{".gif"}, func(path string) {
			if err := core.Appearance.SetGIFFile(path); err != nil {
				log.Printf("upload gif: %v", err)
				return
			}
			prefs.applied()
		})
	})
	resetGIF := widget.NewButton("Reset GIF", func() {
		if err := core.Appearance.ResetGIF(); err != nil {
			log.Printf("reset gif: %v", err)
		}
		prefs.gifURL.SetText("")
		prefs.applied()
	})

	prefs.sounds = widget.NewSelect(nil, prefs.selectSound)
	prefs.sounds.PlaceHolder = "No ambient sound"
	stopSound := widget.NewButton("Stop", func() {
		core.Ambient.Stop()
		prefs.Refresh()
	})
	prefs.volume = widget.NewSlider(0, 1)
	prefs.volume.Step = 0.05
	prefs.volume.OnChangeEnded = func(level float64) {
		if !prefs.updating {
			core.Ambient.SetVolume(level)
		}
	}
	uploadSound := widget.NewButton("Upload sound...", func() {
		prefs.openFile(nil, func(path string) {
			if _, err := core.Ambient.AddCustomSound(path); err != nil {
				log.Printf("upload sound: %v", err)
				if errors.Is(err, media.ErrUnsupportedFile) {
					core.Toasts.Toast(invalidSoundMessage)
				}
				return
			}
			prefs.Refresh()
		})
	})
	prefs.deleteSound = widget.NewButton("Delete sound", prefs.deleteSelectedSound)

	prefs.musicLink = widget.NewEntry()
	prefs.musicLink.SetPlaceHolder("https://open.spotify.com/playlist/...")
	prefs.musicLink.OnSubmitted = prefs.setMusicLink
	saveMusic := widget.NewButton("Save", func() {
		prefs.setMusicLink(prefs.musicLink.Text)
	})
	clearMusic := widget.NewButton("Clear", func() {
		if err := core.Music.Clear(); err != nil {
			log.Printf("clear music: %v", err)
		}
		prefs.musicLink.SetText("")
		prefs.applied()
	})

	prefs.autostart = widget.NewCheck("Start at login", prefs.setAutostart)
	resetStats := widget.NewButton("Reset statistics", core.Stats.Reset)
	clearHistory := widget.NewButton("Clear task history", core.Tasks.ClearHistory)

	form := container.NewVBox(
		heading("General"),
		prefs.notifications,
		prefs.autostart,
		heading("Appearance"),
		prefs.darkTheme,
		container.NewHBox(widget.NewLabel("Accent colour"), prefs.colorButton, resetColor),
		container.NewHBox(widget.NewLabel("Background"), chooseBackground, removeBackground),
		prefs.animation,
		container.NewBorder(nil, nil, nil, useGIF, prefs.gifURL),
		container.NewHBox(uploadGIF, resetGIF),
		heading("Ambient sound"),
		container.NewBorder(nil, nil, nil, stopSound, prefs.sounds),
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), nil, prefs.volume),
		container.NewHBox(uploadSound, prefs.deleteSound),
		heading("Music"),
		container.NewBorder(nil, nil, nil, container.NewHBox(saveMusic, clearMusic), prefs.musicLink),
		heading("Data"),
		container.NewHBox(resetStats, clearHistory),
	)

	closeButton := widget.NewButton("Close", prefs.window.Hide)
	buttons := container.NewHBox(layout.NewSpacer(), closeButton)

	prefs.window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	prefs.window.Resize(fyne.NewSize(460, 640))
	prefs.window.SetCloseIntercept(prefs.window.Hide)

	core.Ambient.OnChange(func() {
		fyne.Do(prefs.Refresh)
	})
	prefs.Refresh()
	return prefs
}

// Show displays the preferences window with fresh values.
func (prefs *Window) Show() {
	prefs.Refresh()
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the values last shown.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// Refresh reloads every control from the application. It must run on the UI
// goroutine.
func (prefs *Window) Refresh() {
	prefs.settings = LoadSettings(prefs.core)
	settings := prefs.settings

	prefs.updating = true
	defer func() { prefs.updating = false }()

	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.darkTheme.SetChecked(settings.DarkTheme)
	prefs.colorButton.SetText(settings.ThemeColor)
	prefs.animation.SetChecked(settings.AnimationActive)
	prefs.autostart.SetChecked(settings.Autostart)
	prefs.musicLink.SetText(settings.MusicLink)
	prefs.volume.SetValue(settings.AmbientVolume)

	names := make([]string, 0)
	prefs.soundIDs = map[string]string{}
	selected := ""
	custom := false
	for _, sound := range prefs.core.Ambient.Sounds() {
		names = append(names, sound.Name)
		prefs.soundIDs[sound.Name] = sound.ID
		if sound.ID == settings.ActiveSound {
			selected = sound.Name
			custom = sound.Custom
		}
	}
	prefs.sounds.SetOptions(names)
	if selected == "" {
		prefs.sounds.ClearSelected()
	} else {
		prefs.sounds.SetSelected(selected)
	}
	if custom {
		prefs.deleteSound.Enable()
	} else {
		prefs.deleteSound.Disable()
	}
}

func (prefs *Window) setNotifications(enabled bool) {
	if prefs.updating {
		return
	}
	effective, err := prefs.core.Notifications.SetEnabled(context.Background(), enabled)
	if err != nil {
		log.Printf("notifications: %v", err)
	}
	if effective != enabled {
		prefs.updating = true
		prefs.notifications.SetChecked(effective)
		prefs.updating = false
	}
}

func (prefs *Window) setDarkTheme(dark bool) {
	if prefs.updating || dark == prefs.core.Appearance.Dark() {
		return
	}
	if _, err := prefs.core.Appearance.ToggleTheme(); err != nil {
		log.Printf("toggle theme: %v", err)
	}
	prefs.applied()
}

func (prefs *Window) pickColor() {
	picker := dialog.NewColorPicker("Accent colour", "Pick the dashboard accent colour", func(picked color.Color) {
		prefs.applyColor(hexFromColor(picked))
	}, prefs.window)
	picker.Advanced = true
	if current := prefs.core.Appearance.ThemeColor(); current != "" {
		if rgb, err := appearance.ParseHex(current); err == nil {
			picker.SetColor(color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff})
		}
	}
	picker.Show()
}

func (prefs *Window) applyColor(hex string) {
	palette, err := prefs.core.Appearance.SetThemeColor(hex)
	if err != nil {
		log.Printf("set theme colour: %v", err)
		return
	}
	prefs.colorButton.SetText(palette.Primary)
	prefs.applied()
}

func (prefs *Window) setAnimation(active bool) {
	if prefs.updating || active == prefs.core.Appearance.AnimationActive() {
		return
	}
	if _, err := prefs.core.Appearance.ToggleAnimation(); err != nil {
		log.Printf("toggle animation: %v", err)
	}
	prefs.applied()
}

func (prefs *Window) selectSound(name string) {
	if prefs.updating || name == "" {
		return
	}
	id := prefs.soundIDs[name]
	if current, _ := prefs.core.Ambient.Current(); current == id {
		return
	}
	if err := prefs.core.Ambient.Toggle(id); err != nil {
		log.Printf("play %s: %v", id, err)
	}
}

func (prefs *Window) deleteSelectedSound() {
	id, ok := prefs.soundIDs[prefs.sounds.Selected]
	if !ok {
		return
	}
	if err := prefs.core.Ambient.DeleteCustomSound(id); err != nil && !errors.Is(err, ambient.ErrUnknownSound) {
		log.Printf("delete sound: %v", err)
	}
}

func (prefs *Window) setMusicLink(link string) {
	if _, err := prefs.core.Music.SetLink(link); err != nil {
		if errors.Is(err, music.ErrInvalidLink) {
			prefs.core.Toasts.Toast(invalidLinkMessage)
		} else {
			log.Printf("save music link: %v", err)
		}
	}
	prefs.applied()
}

func (prefs *Window) setAutostart(enabled bool) {
	if prefs.updating {
		return
	}
	if err := prefs.core.SetAutostart(enabled); err != nil {
		log.Printf("autostart: %v", err)
		prefs.updating = true
		prefs.autostart.SetChecked(!enabled)
		prefs.updating = false
	}
}

func (prefs *Window) openFile(extensions []string, onPath func(string)) {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.Printf("open file: %v", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		if err := reader.Close(); err != nil {
			log.Printf("close file: %v", err)
		}
		onPath(path)
	}, prefs.window)
	if len(extensions) > 0 {
		open.SetFilter(fynestorage.NewExtensionFileFilter(extensions))
	}
	open.Show()
}

func (prefs *Window) applied() {
	if prefs.onApply != nil {
		prefs.onApply()
	}
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func hexFromColor(value color.Color) string {
	nrgba := color.NRGBAModel.Convert(value).(color.NRGBA)
	return appearance.RGB{R: nrgba.R, G: nrgba.G, B: nrgba.B}.Hex()
}
