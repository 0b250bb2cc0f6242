package preferences

import (
	"log"

	"focushub/internal/app"
)

// Settings is a snapshot of the values shown in the preferences window.
type Settings struct {
	NotificationsEnabled bool
	DarkTheme            bool
	ThemeColor           string
	AnimationActive      bool
	HasBackground        bool
	ActiveSound          string
	AmbientVolume        float64
	MusicLink            string
	Autostart            bool
}

// LoadSettings reads the current values from the application.
func LoadSettings(core *app.App) Settings {
	settings := Settings{
		NotificationsEnabled: core.Notifications.Effective(),
		DarkTheme:            core.Appearance.Dark(),
		ThemeColor:           core.Appearance.ThemeColor(),
		AnimationActive:      core.Appearance.AnimationActive(),
		AmbientVolume:        core.Ambient.Volume(),
	}
	_, settings.HasBackground = core.Appearance.Background()
	settings.ActiveSound, _ = core.Ambient.Current()
	settings.MusicLink, _ = core.Music.Link()

	autostart, err := core.AutostartEnabled()
	if err != nil {
		log.Printf("read autostart: %v", err)
	}
	settings.Autostart = autostart
	return settings
}
