package storage

// Keys persisted by FocusHub. Schema describes how each value is encoded;
// the record types live with the feature package that owns the key.
const (
	KeyTheme                = "theme"
	KeyThemeColor           = "themeColor"
	KeyBackground           = "background"
	KeyNotificationsEnabled = "notificationsEnabled"
	KeyStudyStats           = "studyStats"
	KeyTasks                = "tasks"
	KeyTaskHistory          = "taskHistory"
	KeyAmbientState         = "ambientState"
	KeyCustomSounds         = "customSounds"
	KeyAnimationActive      = "animationActive"
	KeyLocalGIFData         = "localGifData"
	KeyGIFURL               = "gifUrl"
	KeySpotifyEmbedURL      = "spotifyEmbedUrl"
	KeyMainFocus            = "mainFocus"
)

// KnownKeys lists every key in a stable order.
func KnownKeys() []string {
	keys := make([]string, len(schema))
	for i, spec := range schema {
		keys[i] = spec.Key
	}
	return keys
}
