package dashboard

import (
	"focushub/internal/core/confirm"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// DialogPresenter shows confirmation requests as modal dialogs. Only the
// newest dialog answers the prompt; older ones are hidden silently.
type DialogPresenter struct {
	window  fyne.Window
	prompt  *confirm.Prompt
	current dialog.Dialog
	seq     uint64
}

// NewDialogPresenter binds prompt to dialogs on window.
func NewDialogPresenter(window fyne.Window, prompt *confirm.Prompt) *DialogPresenter {
	return &DialogPresenter{window: window, prompt: prompt}
}

// Show implements confirm.Presenter.
func (presenter *DialogPresenter) Show(message string) {
	fyne.Do(func() {
		presenter.open(message)
	})
}

// Dismiss implements confirm.Presenter.
func (presenter *DialogPresenter) Dismiss() {
	fyne.Do(presenter.close)
}

// open must run on the UI goroutine.
func (presenter *DialogPresenter) open(message string) {
	presenter.seq++
	seq := presenter.seq
	previous := presenter.current

	confirmDialog := dialog.NewConfirm("Please confirm", message, func(confirmed bool) {
		if seq != presenter.seq {
			return
		}
		presenter.current = nil
		presenter.prompt.Resolve(confirmed)
	}, presenter.window)
	confirmDialog.SetConfirmText("Yes")
	confirmDialog.SetDismissText("No")
	presenter.current = confirmDialog

	if previous != nil {
		previous.Hide()
	}
	confirmDialog.Show()
}

func (presenter *DialogPresenter) close() {
	if presenter.current == nil {
		return
	}
	presenter.seq++
	current := presenter.current
	presenter.current = nil
	current.Hide()
}

// NotificationSender delivers notifications through the fyne app. The
// desktop driver needs no permission, so it implements only notify.Sender.
type NotificationSender struct {
	app fyne.App
}

// NewNotificationSender wraps a fyne app.
func NewNotificationSender(app fyne.App) NotificationSender {
	return NotificationSender{app: app}
}

// Send shows a desktop notification.
func (sender NotificationSender) Send(title, body string) error {
	sender.app.SendNotification(fyne.NewNotification(title, body))
	return nil
}
