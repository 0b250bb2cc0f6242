//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// EnableAutostart writes the command line into the per-user Run key.
func (service *platformService) EnableAutostart(item LoginItem) error {
	if err := item.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	command := exec.Command(
		"reg",
		"add",
		registryRunKey,
		"/v",
		item.AppName,
		"/t",
		"REG_SZ",
		"/d",
		runCommandLine(item),
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("enable autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	command := exec.Command(
		"reg",
		"delete",
		registryRunKey,
		"/v",
		appName,
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

// AutostartEnabled reports whether the Run registry value exists.
func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	if appName == "" {
		return false, fmt.Errorf("check autostart: app name is empty")
	}
	command := exec.Command("reg", "query", registryRunKey, "/v", appName)
	if err := command.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("check autostart: reg query failed: %w", err)
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

// runCommandLine quotes the executable always and arguments only when they
// contain whitespace.
func runCommandLine(item LoginItem) string {
	fields := []string{quoteWindowsPath(item.ExecPath)}
	for _, arg := range item.Args {
		if strings.ContainsAny(arg, " \t") {
			arg = quoteWindowsPath(arg)
		}
		fields = append(fields, arg)
	}
	return strings.Join(fields, " ")
}

func quoteWindowsPath(path string) string {
	trimmed := strings.Trim(path, `"`)
	return fmt.Sprintf(`"%s"`, trimmed)
}
