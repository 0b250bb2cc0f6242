package tasks

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"focushub/internal/storage"
)

var (
	// ErrEmptyTask rejects tasks whose text is blank after trimming.
	ErrEmptyTask = errors.New("task text is empty")
	// ErrTaskNotFound reports an ID that is not in the active list.
	ErrTaskNotFound = errors.New("task not found")
)

// Messages shown to the user.
const (
	MovedToHistoryMessage  = "Task moved to history."
	HistoryClearedMessage  = "Task history cleared."
	ClearHistoryMessage    = "Are you sure you want to clear the entire task history? This action cannot be undone."
	deleteIncompleteFormat = "Are you sure you want to delete this incomplete task?\n\n\"%s\""
)

// Confirmer asks the user before destructive changes.
type Confirmer interface {
	Ask(message string, onConfirm func())
}

// Toaster shows a short-lived message.
type Toaster interface {
	Toast(message string)
}

// List holds the active tasks and the completed-task history.
type List struct {
	mu        sync.Mutex
	store     *storage.Store
	confirmer Confirmer
	toaster   Toaster
	now       func() time.Time
	logger    *log.Logger
	tasks     []Task
	history   []HistoryEntry
	nextID    int
	listeners []func()
}

// Option configures a List.
type Option func(*List)

// WithClock overrides the archive timestamp source.
func WithClock(now func() time.Time) Option {
	return func(list *List) {
		list.now = now
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(list *List) {
		list.logger = logger
	}
}

// NewList creates a list and loads persisted tasks and history.
func NewList(store *storage.Store, confirmer Confirmer, toaster Toaster, options ...Option) *List {
	list := &List{
		store:     store,
		confirmer: confirmer,
		toaster:   toaster,
		now:       time.Now,
		logger:    log.Default(),
	}
	for _, option := range options {
		option(list)
	}
	list.Load()
	return list
}

// Load replaces the in-memory state with the persisted one. IDs are
// reassigned on every load.
func (list *List) Load() {
	loaded := storage.Get(list.store, storage.KeyTasks, []Task(nil))
	history := storage.Get(list.store, storage.KeyTaskHistory, []HistoryEntry(nil))

	list.mu.Lock()
	list.tasks = nil
	for _, task := range loaded {
		list.nextID++
		task.ID = list.nextID
		list.tasks = append(list.tasks, task)
	}
	list.history = history
	list.mu.Unlock()
	list.changed()
}

// Tasks returns the active tasks in insertion order.
func (list *List) Tasks() []Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	return append([]Task(nil), list.tasks...)
}

// History returns archived tasks, newest first.
func (list *List) History() []HistoryEntry {
	list.mu.Lock()
	defer list.mu.Unlock()
	return append([]HistoryEntry(nil), list.history...)
}

// Find returns the task with the given ID.
func (list *List) Find(id int) (Task, bool) {
	list.mu.Lock()
	defer list.mu.Unlock()
	index := list.indexLocked(id)
	if index < 0 {
		return Task{}, false
	}
	return list.tasks[index], true
}

// Add appends an incomplete task.
func (list *List) Add(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyTask
	}

	list.mu.Lock()
	list.nextID++
	task := Task{ID: list.nextID, Text: text}
	list.tasks = append(list.tasks, task)
	list.mu.Unlock()

	list.saveTasks()
	list.changed()
	return task, nil
}

// Edit replaces a task's text. Completed tasks, blank text and unchanged text
// are ignored.
func (list *List) Edit(id int, text string) error {
	text = strings.TrimSpace(text)

	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return fmt.Errorf("edit task %d: %w", id, ErrTaskNotFound)
	}
	task := &list.tasks[index]
	if task.Completed || text == "" || text == task.Text {
		list.mu.Unlock()
		return nil
	}
	task.Text = text
	list.mu.Unlock()

	list.saveTasks()
	list.changed()
	return nil
}

// SetCompleted marks a task done or not done.
func (list *List) SetCompleted(id int, completed bool) error {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return fmt.Errorf("complete task %d: %w", id, ErrTaskNotFound)
	}
	list.tasks[index].Completed = completed
	list.mu.Unlock()

	list.saveTasks()
	list.changed()
	return nil
}

// Delete removes a task. Completed tasks move to the front of the history;
// incomplete tasks are removed only after the user confirms.
func (list *List) Delete(id int) error {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return fmt.Errorf("delete task %d: %w", id, ErrTaskNotFound)
	}
	task := list.tasks[index]
	if !task.Completed {
		list.mu.Unlock()
		message := fmt.Sprintf(deleteIncompleteFormat, task.Text)
		list.confirmer.Ask(message, func() {
			list.remove(id)
		})
		return nil
	}

	list.tasks = append(list.tasks[:index], list.tasks[index+1:]...)
	entry := HistoryEntry{Text: task.Text, CompletedAt: list.now().UTC()}
	list.history = append([]HistoryEntry{entry}, list.history...)
	list.mu.Unlock()

	list.saveHistory()
	list.saveTasks()
	list.toast(MovedToHistoryMessage)
	list.changed()
	return nil
}

// ClearHistory empties the history after confirmation.
func (list *List) ClearHistory() {
	list.confirmer.Ask(ClearHistoryMessage, list.ClearHistoryNow)
}

// ClearHistoryNow empties the history without asking.
func (list *List) ClearHistoryNow() {
	list.mu.Lock()
	list.history = nil
	list.mu.Unlock()

	list.saveHistory()
	list.toast(HistoryClearedMessage)
	list.changed()
}

// OnChange registers a refresh callback invoked after every mutation.
func (list *List) OnChange(listener func()) {
	list.mu.Lock()
	list.listeners = append(list.listeners, listener)
	list.mu.Unlock()
}

func (list *List) remove(id int) {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return
	}
	list.tasks = append(list.tasks[:index], list.tasks[index+1:]...)
	list.mu.Unlock()

	list.saveTasks()
	list.changed()
}

func (list *List) indexLocked(id int) int {
	for i, task := range list.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (list *List) saveTasks() {
	current := list.Tasks()
	if current == nil {
		current = []Task{}
	}
	if err := storage.Set(list.store, storage.KeyTasks, current); err != nil {
		list.logger.Printf("save tasks: %v", err)
	}
}

func (list *List) saveHistory() {
	current := list.History()
	if current == nil {
		current = []HistoryEntry{}
	}
	if err := storage.Set(list.store, storage.KeyTaskHistory, current); err != nil {
		list.logger.Printf("save task history: %v", err)
	}
}

func (list *List) toast(message string) {
	if list.toaster != nil {
		list.toaster.Toast(message)
	}
}

func (list *List) changed() {
	list.mu.Lock()
	listeners := append([]func(){}, list.listeners...)
	list.mu.Unlock()
	for _, listener := range listeners {
		listener()
	}
}
