//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnableAutostart installs a per-user launch agent.
func (service *platformService) EnableAutostart(item LoginItem) error {
	if err := item.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	launchAgentsDir, err := launchAgentsDir()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(launchAgentsDir, 0o755); err != nil {
		return fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}

	plistPath := filepath.Join(launchAgentsDir, launchAgentLabel(item.AppName)+".plist")
	if err := os.WriteFile(plistPath, []byte(buildLaunchAgentPlist(item)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write plist: %w", err)
	}
	return nil
}

// AutostartEnabled reports whether the launch agent exists.
func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	dir, err := launchAgentsDir()
	if err != nil {
		return false, fmt.Errorf("check autostart: %w", err)
	}
	return fileExists(filepath.Join(dir, launchAgentLabel(appName)+".plist"))
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	dir, err := launchAgentsDir()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}

	plistPath := filepath.Join(dir, launchAgentLabel(appName)+".plist")
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove plist: %w", err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents"), nil
}

func launchAgentLabel(appName string) string {
	return "com.focushub." + normalizedName(appName)
}

// buildLaunchAgentPlist renders a launch agent that starts the dashboard once
// per login in the user's GUI session.
func buildLaunchAgentPlist(item LoginItem) string {
	var plist strings.Builder
	plist.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
`)
	fmt.Fprintf(&plist, "\t<key>Label</key>\n\t<string>%s</string>\n", xmlEscape(launchAgentLabel(item.AppName)))
	plist.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	for _, arg := range append([]string{item.ExecPath}, item.Args...) {
		fmt.Fprintf(&plist, "\t\t<string>%s</string>\n", xmlEscape(arg))
	}
	plist.WriteString("\t</array>\n")
	plist.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	plist.WriteString("\t<key>KeepAlive</key>\n\t<false/>\n")
	plist.WriteString("\t<key>LimitLoadToSessionType</key>\n\t<string>Aqua</string>\n")
	plist.WriteString("\t<key>ProcessType</key>\n\t<string>Interactive</string>\n")
	plist.WriteString("</dict>\n</plist>\n")
	return plist.String()
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
