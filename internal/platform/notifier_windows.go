//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"

	"focushub/internal/core/notify"
)

const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$text.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show($toast)`

func resolveNotifier(appName string) (notifyCommand, error) {
	path, err := exec.LookPath("powershell")
	if err != nil {
		return nil, fmt.Errorf("powershell: %w", notify.ErrNotificationsUnsupported)
	}
	return func(title, body string) *exec.Cmd {
		script := fmt.Sprintf(toastScript, psQuote(title), psQuote(body), psQuote(appName))
		return exec.Command(path, "-NoProfile", "-NonInteractive", "-Command", script)
	}, nil
}

func psQuote(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
