package stats

import (
	"log"
	"sync"
	"time"

	"focushub/internal/storage"
)

// DateLayout matches the calendar-day strings already stored by earlier
// versions ("Mon Oct 19 2026").
const DateLayout = "Mon Jan 02 2006"

// ResetMessage is shown before analytics are wiped.
const ResetMessage = "Are you sure you want to reset all session analytics? This action cannot be undone."

// Stats counts completed focus sessions.
type Stats struct {
	Today           int     `json:"today"`
	Total           int     `json:"total"`
	LastSessionDate *string `json:"lastSessionDate"`
}

// Confirmer asks the user before destructive changes.
type Confirmer interface {
	Ask(message string, onConfirm func())
}

// Counter tracks today's and all-time focus sessions.
type Counter struct {
	mu        sync.Mutex
	store     *storage.Store
	confirmer Confirmer
	now       func() time.Time
	logger    *log.Logger
	stats     Stats
	listeners []func(Stats)
}

// Option configures a Counter.
type Option func(*Counter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(counter *Counter) {
		counter.now = now
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(counter *Counter) {
		counter.logger = logger
	}
}

// NewCounter creates a counter and loads persisted stats.
func NewCounter(store *storage.Store, confirmer Confirmer, options ...Option) *Counter {
	counter := &Counter{
		store:     store,
		confirmer: confirmer,
		now:       time.Now,
		logger:    log.Default(),
	}
	for _, option := range options {
		option(counter)
	}
	counter.Load()
	return counter
}

// Load reads persisted stats. A stale day zeroes Today in memory only; the
// store is corrected by the next mutation.
func (counter *Counter) Load() Stats {
	loaded := Stats{}
	storage.Decode(counter.store, storage.KeyStudyStats, &loaded)
	if loaded.Today < 0 {
		loaded.Today = 0
	}
	if loaded.Total < 0 {
		loaded.Total = 0
	}

	today := counter.now().Format(DateLayout)
	if loaded.LastSessionDate == nil || *loaded.LastSessionDate != today {
		loaded.Today = 0
	}

	counter.mu.Lock()
	counter.stats = loaded
	counter.mu.Unlock()
	counter.notify(loaded)
	return loaded
}

// Snapshot returns the in-memory stats.
func (counter *Counter) Snapshot() Stats {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	return copyStats(counter.stats)
}

// Increment records one completed focus session.
func (counter *Counter) Increment() {
	today := counter.now().Format(DateLayout)

	counter.mu.Lock()
	if counter.stats.LastSessionDate == nil || *counter.stats.LastSessionDate != today {
		// The day rolled over while the process was running.
		counter.stats.Today = 0
	}
	counter.stats.Today++
	counter.stats.Total++
	counter.stats.LastSessionDate = &today
	current := copyStats(counter.stats)
	counter.mu.Unlock()

	counter.persist(current)
	counter.notify(current)
}

// Reset asks for confirmation, then zeroes all stats.
func (counter *Counter) Reset() {
	counter.confirmer.Ask(ResetMessage, counter.ResetNow)
}

// ResetNow zeroes all stats without asking.
func (counter *Counter) ResetNow() {
	counter.mu.Lock()
	counter.stats = Stats{}
	counter.mu.Unlock()

	counter.persist(Stats{})
	counter.notify(Stats{})
}

// OnChange registers a display refresh callback.
func (counter *Counter) OnChange(listener func(Stats)) {
	counter.mu.Lock()
	counter.listeners = append(counter.listeners, listener)
	counter.mu.Unlock()
}

func (counter *Counter) persist(current Stats) {
	if err := storage.Set(counter.store, storage.KeyStudyStats, current); err != nil {
		counter.logger.Printf("save study stats: %v", err)
	}
}

func (counter *Counter) notify(current Stats) {
	counter.mu.Lock()
	listeners := append([]func(Stats){}, counter.listeners...)
	counter.mu.Unlock()
	for _, listener := range listeners {
		listener(copyStats(current))
	}
}

func copyStats(stats Stats) Stats {
	if stats.LastSessionDate != nil {
		date := *stats.LastSessionDate
		stats.LastSessionDate = &date
	}
	return stats
}
