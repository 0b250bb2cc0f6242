package timer

import (
	"sync"
	"time"
)

// TickSource schedules periodic ticks. Start returns a cancel function; after
// it returns no further onTick call may begin.
type TickSource interface {
	Start(onTick func()) (cancel func())
}

// IntervalTicker fires ticks from a time.Ticker on its own goroutine. Ticks are
// delivered one at a time.
type IntervalTicker struct {
	Interval time.Duration
}

// Start launches the ticking loop.
func (ticker IntervalTicker) Start(onTick func()) func() {
	interval := ticker.Interval
	if interval <= 0 {
		interval = time.Second
	}

	stopCh := make(chan struct{})
	var once sync.Once
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-t.C:
				select {
				case <-stopCh:
					return
				default:
				}
				onTick()
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}
