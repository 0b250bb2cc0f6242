//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnableAutostart writes an XDG autostart desktop entry.
func (service *platformService) EnableAutostart(item LoginItem) error {
	if err := item.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	configDir, err := userConfigDir()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	autostartDir := filepath.Join(configDir, "autostart")
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}

	entryPath := filepath.Join(autostartDir, desktopFileName(item.AppName))
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(item)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	configDir, err := userConfigDir()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}

	entryPath := filepath.Join(configDir, "autostart", desktopFileName(appName))
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

// AutostartEnabled reports whether the desktop entry exists.
func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	configDir, err := userConfigDir()
	if err != nil {
		return false, fmt.Errorf("check autostart: %w", err)
	}
	return fileExists(filepath.Join(configDir, "autostart", desktopFileName(appName)))
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopFileName(appName string) string {
	return normalizedName(appName) + ".desktop"
}

// buildDesktopEntry renders the entry started by the session at login. The
// dashboard starts hidden in the tray when one is available.
func buildDesktopEntry(item LoginItem) string {
	fields := []string{desktopExecQuote(item.ExecPath)}
	for _, arg := range item.Args {
		fields = append(fields, desktopExecQuote(arg))
	}

	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	entry.WriteString("Type=Application\n")
	fmt.Fprintf(&entry, "Name=%s\n", item.AppName)
	entry.WriteString("Comment=Pomodoro timer, task list and ambient sound\n")
	fmt.Fprintf(&entry, "Exec=%s\n", strings.Join(fields, " "))
	fmt.Fprintf(&entry, "Icon=%s\n", normalizedName(item.AppName))
	entry.WriteString("Categories=Utility;Office;\n")
	entry.WriteString("StartupNotify=false\n")
	entry.WriteString("Terminal=false\n")
	entry.WriteString("X-GNOME-Autostart-enabled=true\n")
	return entry.String()
}

// desktopExecQuote quotes an Exec field when it holds characters the
// desktop entry format reserves.
func desktopExecQuote(field string) string {
	if field != "" && !strings.ContainsAny(field, " \t\"'\\$`") {
		return strings.ReplaceAll(field, "%", "%%")
	}
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`, "%", "%%")
	return `"` + replacer.Replace(field) + `"`
}
