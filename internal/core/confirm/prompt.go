// Package confirm implements the single "are you sure?" prompt shared by
// every destructive action.
package confirm

import (
	"strings"
	"sync"
)

// Presenter shows and hides the prompt in a particular front end.
type Presenter interface {
	Show(message string)
	Dismiss()
}

// Prompt holds at most one pending confirmation. Asking again abandons the
// previous callback; requests are never queued.
type Prompt struct {
	mu        sync.Mutex
	presenter Presenter
	message   string
	onConfirm func()
	pending   bool
	seq       uint64
}

// New creates a Prompt. presenter may be nil, in which case requests are only
// recorded and must be answered through Resolve.
func New(presenter Presenter) *Prompt {
	return &Prompt{presenter: presenter}
}

// SetPresenter replaces the presenter.
func (prompt *Prompt) SetPresenter(presenter Presenter) {
	prompt.mu.Lock()
	prompt.presenter = presenter
	prompt.mu.Unlock()
}

// Ask records onConfirm and shows message.
func (prompt *Prompt) Ask(message string, onConfirm func()) {
	message = normalizeMessage(message)

	prompt.mu.Lock()
	prompt.message = message
	prompt.onConfirm = onConfirm
	prompt.pending = true
	prompt.seq++
	presenter := prompt.presenter
	prompt.mu.Unlock()

	if presenter != nil {
		presenter.Show(message)
	}
}

// Resolve answers the pending request. The callback runs only when confirmed
// is true; either way the request is cleared and the prompt dismissed, unless
// the callback opened a new request of its own.
func (prompt *Prompt) Resolve(confirmed bool) {
	prompt.mu.Lock()
	if !prompt.pending {
		prompt.mu.Unlock()
		return
	}
	callback := prompt.onConfirm
	prompt.onConfirm = nil
	prompt.message = ""
	prompt.pending = false
	seq := prompt.seq
	prompt.mu.Unlock()

	if confirmed && callback != nil {
		callback()
	}

	prompt.mu.Lock()
	reopened := prompt.seq != seq
	presenter := prompt.presenter
	prompt.mu.Unlock()

	if !reopened && presenter != nil {
		presenter.Dismiss()
	}
}

// Pending returns the message of the open request, if any.
func (prompt *Prompt) Pending() (string, bool) {
	prompt.mu.Lock()
	defer prompt.mu.Unlock()
	return prompt.message, prompt.pending
}

func normalizeMessage(message string) string {
	return strings.ReplaceAll(message, "\n\n", "\n")
}
