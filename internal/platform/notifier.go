package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"focushub/internal/core/notify"
)

// notifyCommand builds the command that shows one notification.
type notifyCommand func(title, body string) *exec.Cmd

// Notifier sends desktop notifications through the platform's command-line
// tool. It implements notify.Sender and notify.Authorizer.
type Notifier struct {
	appName string
	command notifyCommand
}

// NewNotifier locates the notification tool. It returns an error wrapping
// notify.ErrNotificationsUnsupported when none is installed.
func NewNotifier(appName string) (*Notifier, error) {
	command, err := resolveNotifier(appName)
	if err != nil {
		return nil, err
	}
	return &Notifier{appName: appName, command: command}, nil
}

// RequestPermission grants permission: desktop notification tools do not ask.
func (notifier *Notifier) RequestPermission(ctx context.Context) (notify.Permission, error) {
	if err := ctx.Err(); err != nil {
		return notify.PermissionDefault, err
	}
	return notify.PermissionGranted, nil
}

// Send shows a notification and waits for the tool to hand it off.
func (notifier *Notifier) Send(title, body string) error {
	output, err := notifier.command(title, body).CombinedOutput()
	if err != nil {
		return fmt.Errorf("send notification: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
