package animation

import (
	"context"
	"image"
	"sync"
	"time"
)

// Engine runs one animation at a time. Starting a new animation cancels the
// previous one and waits for it, so callbacks must not start animations on
// their own engine.
type Engine struct {
	startMu sync.Mutex
	mu      sync.Mutex
	config  Config
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a new animation engine.
func New(config Config) *Engine {
	return &Engine{config: config}
}

// Config returns the timings.
func (engine *Engine) Config() Config {
	return engine.config
}

// Typewriter reveals text one character per TypeInterval. update receives
// the visible prefix; finished runs once the whole text is shown.
func (engine *Engine) Typewriter(ctx context.Context, text string, update func(string), finished func()) {
	runes := []rune(text)
	engine.start(ctx, func(runCtx context.Context) {
		update("")
		for i := range runes {
			if !sleepWithContext(runCtx, engine.config.TypeInterval) {
				return
			}
			update(string(runes[:i+1]))
		}
		if finished != nil {
			finished()
		}
	})
}

// Flash calls show, waits ToastDuration and calls hide. A newer animation
// on the same engine cancels the pending hide.
func (engine *Engine) Flash(ctx context.Context, show, hide func()) {
	engine.start(ctx, func(runCtx context.Context) {
		show()
		if sleepWithContext(runCtx, engine.config.ToastDuration) {
			hide()
		}
	})
}

// Play loops frames until stopped.
func (engine *Engine) Play(ctx context.Context, frames Frames, update func(image.Image)) {
	if len(frames.Images) == 0 {
		engine.Stop()
		return
	}
	engine.start(ctx, func(runCtx context.Context) {
		update(frames.Images[0])
		if len(frames.Images) == 1 {
			<-runCtx.Done()
			return
		}
		for index := 0; ; index = (index + 1) % len(frames.Images) {
			delay := engine.config.MinFrameDelay
			if index < len(frames.Delays) && frames.Delays[index] > delay {
				delay = frames.Delays[index]
			}
			if !sleepWithContext(runCtx, delay) {
				return
			}
			update(frames.Images[(index+1)%len(frames.Images)])
		}
	})
}

// Stop terminates any active animation and waits for it to return.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.startMu.Lock()
	defer engine.startMu.Unlock()
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
