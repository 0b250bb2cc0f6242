//go:build linux

package platform

import (
	"fmt"
	"os/exec"

	"focushub/internal/core/notify"
)

func resolveNotifier(appName string) (notifyCommand, error) {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return nil, fmt.Errorf("notify-send: %w", notify.ErrNotificationsUnsupported)
	}
	return func(title, body string) *exec.Cmd {
		return exec.Command(path, "--app-name="+appName, "--icon=focushub", title, body)
	}, nil
}
