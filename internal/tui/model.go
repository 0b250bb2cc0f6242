package tui

import (
	"errors"
	"log"
	"strconv"
	"time"

	"focushub/internal/app"
	"focushub/internal/core/model"
	"focushub/internal/core/stats"
	"focushub/internal/core/tasks"
	"focushub/internal/core/timer"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	toastDuration = 2500 * time.Millisecond
	bridgeBuffer  = 64
	eventBuffer   = 16
)

type inputMode int

const (
	inputNone inputMode = iota
	inputTask
	inputFocus
)

// Event messages for BubbleTea
type (
	timerEventMsg  struct{ event timer.Event }
	timerClosedMsg struct{}
	clearToastMsg  struct{ seq int }
)

// Model represents the terminal dashboard state.
type Model struct {
	core   *app.App
	bridge *bridge
	events <-chan timer.Event

	modes    []model.Mode
	snapshot timer.Snapshot
	stats    stats.Stats
	tasks    []tasks.Task
	focus    string
	selected int

	confirmMessage string
	confirming     bool

	toast    string
	toastSeq int

	input     inputMode
	inputText string

	width  int
	height int
}

// NewModel creates the model and subscribes to the core components.
func NewModel(core *app.App) Model {
	bridge := newBridge(bridgeBuffer)
	core.Tasks.OnChange(func() {
		bridge.send(tasksChangedMsg{})
	})
	core.Stats.OnChange(func(current stats.Stats) {
		bridge.send(statsChangedMsg{stats: current})
	})

	return Model{
		core:     core,
		bridge:   bridge,
		events:   core.Timer.Subscribe(eventBuffer),
		modes:    core.Timer.Config().Modes,
		snapshot: core.Timer.Snapshot(),
		stats:    core.Stats.Snapshot(),
		tasks:    core.Tasks.Tasks(),
		focus:    core.Focus.Get(),
	}
}

// Init starts listening to the timer and the bridge.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listenTimer(),
		m.bridge.listen(),
		tea.SetWindowTitle(timer.Title(m.snapshot.Remaining)),
	)
}

// Update handles all TUI events and state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case timerEventMsg:
		if msg.event.Type == timer.EventExpired {
			return m, m.listenTimer()
		}
		m.snapshot = timer.Snapshot{
			ModeIndex: msg.event.ModeIndex,
			Mode:      msg.event.Mode,
			Remaining: msg.event.Remaining,
			State:     msg.event.State,
		}
		return m, tea.Batch(
			m.listenTimer(),
			tea.SetWindowTitle(timer.Title(m.snapshot.Remaining)),
		)

	case timerClosedMsg:
		return m, tea.Quit

	case promptMsg:
		m.confirming = msg.open
		m.confirmMessage = msg.message
		return m, m.bridge.listen()

	case toastMsg:
		m.toastSeq++
		m.toast = msg.message
		seq := m.toastSeq
		return m, tea.Batch(
			m.bridge.listen(),
			tea.Tick(toastDuration, func(time.Time) tea.Msg {
				return clearToastMsg{seq: seq}
			}),
		)

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tasksChangedMsg:
		m.tasks = m.core.Tasks.Tasks()
		m.clampSelection()
		return m, m.bridge.listen()

	case statsChangedMsg:
		m.stats = msg.stats
		return m, m.bridge.listen()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirming {
		return m.handleConfirmKey(msg)
	}
	if m.input != inputNone {
		return m.handleInputKey(msg)
	}

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case " ", "space", "s":
		m.core.Timer.Toggle()
	case "r":
		m.core.Timer.Reset()
	case "n":
		m.core.Timer.MoveToNextMode()
	case "a":
		m.input = inputTask
		m.inputText = ""
	case "f":
		m.input = inputFocus
		m.inputText = m.core.Focus.EditValue()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}
	case "x", "enter":
		if task, ok := m.selectedTask(); ok {
			if err := m.core.Tasks.SetCompleted(task.ID, !task.Completed); err != nil {
				log.Printf("complete task: %v", err)
			}
		}
	case "d":
		if task, ok := m.selectedTask(); ok {
			if err := m.core.Tasks.Delete(task.ID); err != nil {
				log.Printf("delete task: %v", err)
			}
		}
	case "H":
		m.core.Tasks.ClearHistory()
	default:
		if index, err := strconv.Atoi(key); err == nil && index >= 1 && index <= len(m.modes) {
			if err := m.core.Timer.SwitchMode(index - 1); err != nil {
				log.Printf("switch mode: %v", err)
			}
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		m.core.Prompt.Resolve(true)
	case "n", "N", "esc":
		m.confirming = false
		m.core.Prompt.Resolve(false)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input = inputNone
		m.inputText = ""
	case tea.KeyEnter:
		m.submitInput()
		m.input = inputNone
		m.inputText = ""
	case tea.KeyBackspace:
		if runes := []rune(m.inputText); len(runes) > 0 {
			m.inputText = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.inputText += " "
	case tea.KeyRunes:
		m.inputText += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) submitInput() {
	switch m.input {
	case inputTask:
		if _, err := m.core.Tasks.Add(m.inputText); err != nil && !errors.Is(err, tasks.ErrEmptyTask) {
			log.Printf("add task: %v", err)
		}
	case inputFocus:
		title, err := m.core.Focus.Set(m.inputText)
		if err != nil {
			log.Printf("save focus: %v", err)
		}
		m.focus = title
	}
}

func (m Model) selectedTask() (tasks.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return tasks.Task{}, false
	}
	return m.tasks[m.selected], true
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// listenTimer waits for the next timer event.
func (m Model) listenTimer() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return timerClosedMsg{}
		}
		return timerEventMsg{event: event}
	}
}
