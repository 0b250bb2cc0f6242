//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strconv"

	"focushub/internal/core/notify"
)

func resolveNotifier(appName string) (notifyCommand, error) {
	path, err := exec.LookPath("osascript")
	if err != nil {
		return nil, fmt.Errorf("osascript: %w", notify.ErrNotificationsUnsupported)
	}
	return func(title, body string) *exec.Cmd {
		script := fmt.Sprintf("display notification %s with title %s subtitle %s",
			strconv.Quote(body), strconv.Quote(title), strconv.Quote(appName))
		return exec.Command(path, "-e", script)
	}, nil
}
