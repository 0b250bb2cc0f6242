// Package platform wraps the OS-specific pieces: directories, login items,
// audio playback and desktop notifications.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	ConfigDir(appName string) (string, error)
	CacheDir(appName string) (string, error)
	EnableAutostart(item LoginItem) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

// LoginItem describes how the OS should launch the app at login.
type LoginItem struct {
	AppName  string
	ExecPath string
	// Args follow the executable, e.g. the subcommand and --store.
	Args []string
}

func (item LoginItem) validate() error {
	if item.AppName == "" {
		return fmt.Errorf("app name is empty")
	}
	if item.ExecPath == "" {
		return fmt.Errorf("exec path is empty")
	}
	return nil
}

// normalizedName lowercases appName and joins words with dashes for use in
// file names and launchd labels.
func normalizedName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "focushub"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// ConfigDir returns the per-user configuration directory for appName.
func (service *platformService) ConfigDir(appName string) (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// CacheDir returns the per-user cache directory for appName.
func (service *platformService) CacheDir(appName string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, appName), nil
}

func userConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
