package tui

import (
	"log"
	"sync"

	"focushub/internal/core/stats"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages delivered from the core components to the model.
type (
	promptMsg struct {
		message string
		open    bool
	}
	toastMsg        struct{ message string }
	tasksChangedMsg struct{}
	statsChangedMsg struct{ stats stats.Stats }
)

// bridge turns callbacks from the core into tea messages. Sends never block.
// A full buffer drops toasts and change notices; prompt state lives in its
// own slot where a newer state replaces an undelivered one.
type bridge struct {
	messages chan tea.Msg
	prompts  chan promptMsg
	promptMu sync.Mutex
}

func newBridge(buffer int) *bridge {
	return &bridge{
		messages: make(chan tea.Msg, buffer),
		prompts:  make(chan promptMsg, 1),
	}
}

// Show implements confirm.Presenter.
func (bridge *bridge) Show(message string) {
	bridge.setPrompt(promptMsg{message: message, open: true})
}

// Dismiss implements confirm.Presenter.
func (bridge *bridge) Dismiss() {
	bridge.setPrompt(promptMsg{})
}

func (bridge *bridge) setPrompt(msg promptMsg) {
	bridge.promptMu.Lock()
	defer bridge.promptMu.Unlock()
	select {
	case <-bridge.prompts:
	default:
	}
	bridge.prompts <- msg
}

// Toast implements app.Toaster.
func (bridge *bridge) Toast(message string) {
	bridge.send(toastMsg{message: message})
}

func (bridge *bridge) send(msg tea.Msg) {
	select {
	case bridge.messages <- msg:
	default:
		log.Printf("dropped %T: buffer full", msg)
	}
}

// listen waits for the next bridged message.
func (bridge *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-bridge.prompts:
			return msg
		case msg := <-bridge.messages:
			return msg
		}
	}
}

// poll returns a pending message without waiting, prompt state first.
func (bridge *bridge) poll() (tea.Msg, bool) {
	select {
	case msg := <-bridge.prompts:
		return msg, true
	default:
	}
	select {
	case msg := <-bridge.messages:
		return msg, true
	default:
		return nil, false
	}
}
