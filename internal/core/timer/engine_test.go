package timer

import (
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"focushub/internal/core/model"
	"focushub/internal/core/notify"
)

type manualTicks struct {
	mu      sync.Mutex
	onTick  func()
	active  bool
	starts  int
	cancels int
}

func (ticks *manualTicks) Start(onTick func()) func() {
	ticks.mu.Lock()
	defer ticks.mu.Unlock()
	ticks.onTick = onTick
	ticks.active = true
	ticks.starts++
	return func() {
		ticks.mu.Lock()
		defer ticks.mu.Unlock()
		ticks.active = false
		ticks.cancels++
	}
}

// Fire delivers n ticks while the source is active.
func (ticks *manualTicks) Fire(n int) {
	for i := 0; i < n; i++ {
		ticks.mu.Lock()
		onTick, active := ticks.onTick, ticks.active
		ticks.mu.Unlock()
		if !active {
			return
		}
		onTick()
	}
}

// FireStale delivers a tick even after cancellation, simulating a late timer.
func (ticks *manualTicks) FireStale() {
	ticks.mu.Lock()
	onTick := ticks.onTick
	ticks.mu.Unlock()
	if onTick != nil {
		onTick()
	}
}

type fakePrompt struct {
	messages  []string
	onConfirm func()
}

func (prompt *fakePrompt) Ask(message string, onConfirm func()) {
	prompt.messages = append(prompt.messages, message)
	prompt.onConfirm = onConfirm
}

func (prompt *fakePrompt) Resolve(confirmed bool) {
	callback := prompt.onConfirm
	prompt.onConfirm = nil
	if confirmed && callback != nil {
		callback()
	}
}

type fakeSessions struct{ count int }

func (sessions *fakeSessions) Increment() { sessions.count++ }

type fakeSound struct {
	plays int
	err   error
}

func (sound *fakeSound) PlayNotification() error {
	sound.plays++
	return sound.err
}

type fakeUnlocker struct{ calls int }

func (unlocker *fakeUnlocker) Unlock() { unlocker.calls++ }

type fakePrefs struct{ enabled bool }

func (prefs fakePrefs) NotificationsEnabled() bool { return prefs.enabled }

type fakeNotifier struct {
	permission notify.Permission
	sent       []string
}

func (notifier *fakeNotifier) Permission() notify.Permission { return notifier.permission }

func (notifier *fakeNotifier) Notify(title, body string) error {
	notifier.sent = append(notifier.sent, title+"|"+body)
	return nil
}

type harness struct {
	engine   *Engine
	ticks    *manualTicks
	prompt   *fakePrompt
	sessions *fakeSessions
	sound    *fakeSound
	unlocker *fakeUnlocker
	notifier *fakeNotifier
}

func testConfig() model.TimerConfig {
	return model.TimerConfig{
		Modes: []model.Mode{
			{Name: "Focus", Duration: 3 * time.Second},
			{Name: "Short Break", Duration: 2 * time.Second},
			{Name: "Long Break", Duration: 4 * time.Second},
		},
		FocusIndex: 0,
	}
}

func newHarness(t *testing.T, notificationsEnabled bool, permission notify.Permission) *harness {
	t.Helper()
	h := &harness{
		ticks:    &manualTicks{},
		prompt:   &fakePrompt{},
		sessions: &fakeSessions{},
		sound:    &fakeSound{},
		unlocker: &fakeUnlocker{},
		notifier: &fakeNotifier{permission: permission},
	}
	h.engine = New(testConfig(), Dependencies{
		Preferences: fakePrefs{enabled: notificationsEnabled},
		Notifier:    h.notifier,
		Prompt:      h.prompt,
		Sessions:    h.sessions,
		Sound:       h.sound,
		Audio:       h.unlocker,
		Ticks:       h.ticks,
		Logger:      log.New(io.Discard, "", 0),
	})
	t.Cleanup(h.engine.Close)
	return h
}

func TestEngine_TicksDecrementOnlyWhileRunning(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)

	if got := h.engine.Snapshot(); got.Remaining != 3 || got.State != StateIdle {
		t.Fatalf("initial snapshot = %+v", got)
	}

	h.engine.Start()
	h.ticks.Fire(1)
	if got := h.engine.Snapshot().Remaining; got != 2 {
		t.Fatalf("Remaining after 1 tick = %d, want 2", got)
	}

	h.engine.Pause()
	h.ticks.FireStale()
	h.ticks.FireStale()
	if got := h.engine.Snapshot(); got.Remaining != 2 || got.State != StateIdle {
		t.Fatalf("snapshot after pause = %+v, want remaining 2 idle", got)
	}

	h.engine.Start()
	h.ticks.Fire(1)
	if got := h.engine.Snapshot().Remaining; got != 1 {
		t.Fatalf("Remaining after resume = %d, want 1", got)
	}
}

func TestEngine_StartWhileRunningIsNoOp(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)

	h.engine.Start()
	h.engine.Start()
	h.engine.Start()

	if h.ticks.starts != 1 {
		t.Errorf("tick sources started = %d, want 1", h.ticks.starts)
	}
	h.ticks.Fire(1)
	if got := h.engine.Snapshot().Remaining; got != 2 {
		t.Errorf("Remaining = %d, want 2 (no double counting)", got)
	}
	if h.unlocker.calls != 1 {
		t.Errorf("unlock calls = %d, want 1", h.unlocker.calls)
	}
}

func TestEngine_PauseWhenIdleIsNoOp(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)
	h.engine.Pause()
	if h.ticks.cancels != 0 {
		t.Errorf("cancels = %d, want 0", h.ticks.cancels)
	}
	if got := h.engine.Snapshot().State; got != StateIdle {
		t.Errorf("State = %v", got)
	}
}

func TestEngine_ResetFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
	}{
		{"idle full", func(h *harness) {}},
		{"running", func(h *harness) {
			h.engine.Start()
			h.ticks.Fire(1)
		}},
		{"paused partial", func(h *harness) {
			h.engine.Start()
			h.ticks.Fire(2)
			h.engine.Pause()
		}},
		{"other mode running", func(h *harness) {
			_ = h.engine.SwitchMode(2)
			h.engine.Start()
			h.ticks.Fire(1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, false, notify.PermissionDefault)
			tt.setup(h)

			h.engine.Reset()
			h.ticks.FireStale()

			got := h.engine.Snapshot()
			if got.State != StateIdle {
				t.Errorf("State = %v, want idle", got.State)
			}
			if want := got.Mode.Seconds(); got.Remaining != want {
				t.Errorf("Remaining = %d, want %d", got.Remaining, want)
			}
		})
	}
}

func TestEngine_SwitchMode(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)
	h.engine.Start()
	h.ticks.Fire(1)

	if err := h.engine.SwitchMode(2); err != nil {
		t.Fatalf("SwitchMode() error = %v", err)
	}
	got := h.engine.Snapshot()
	if got.ModeIndex != 2 || got.Remaining != 4 || got.State != StateIdle {
		t.Errorf("snapshot = %+v", got)
	}

	err := h.engine.SwitchMode(3)
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("SwitchMode(3) error = %v, want ErrUnknownMode", err)
	}
	if h.engine.Snapshot().ModeIndex != 2 {
		t.Error("invalid switch changed the active mode")
	}
}

func TestEngine_FocusExpiry(t *testing.T) {
	h := newHarness(t, true, notify.PermissionGranted)
	events := h.engine.Subscribe(16)

	h.engine.Start()
	h.ticks.Fire(10)

	if h.sessions.count != 1 {
		t.Errorf("sessions = %d, want exactly 1", h.sessions.count)
	}
	if h.sound.plays != 1 {
		t.Errorf("sound plays = %d, want 1", h.sound.plays)
	}
	if len(h.notifier.sent) != 1 || h.notifier.sent[0] != "Time's Up!|Time for a break!" {
		t.Errorf("notifications = %v", h.notifier.sent)
	}
	if len(h.prompt.messages) != 1 || !strings.HasPrefix(h.prompt.messages[0], "Time for a break!") {
		t.Fatalf("prompt messages = %q", h.prompt.messages)
	}

	got := h.engine.Snapshot()
	if got.State != StateIdle || got.Remaining != 3 || got.ModeIndex != 0 {
		t.Errorf("snapshot after expiry = %+v, want idle focus with fresh 3s", got)
	}

	sawExpired := false
	for len(events) > 0 {
		if event := <-events; event.Type == EventExpired {
			sawExpired = true
			if event.State != StateExpired || event.ModeIndex != 0 {
				t.Errorf("expired event = %+v", event)
			}
		}
	}
	if !sawExpired {
		t.Error("no expired event published")
	}

	h.prompt.Resolve(true)
	if got := h.engine.Snapshot(); got.ModeIndex != 1 || got.Remaining != 2 {
		t.Errorf("after confirm snapshot = %+v, want short break", got)
	}
}

func TestEngine_BreakExpiryReturnsToFocus(t *testing.T) {
	for _, breakIndex := range []int{1, 2} {
		h := newHarness(t, true, notify.PermissionGranted)
		if err := h.engine.SwitchMode(breakIndex); err != nil {
			t.Fatal(err)
		}

		h.engine.Start()
		h.ticks.Fire(10)

		if h.sessions.count != 0 {
			t.Errorf("break %d: sessions = %d, want 0", breakIndex, h.sessions.count)
		}
		if len(h.notifier.sent) != 1 || h.notifier.sent[0] != "Time's Up!|Time to focus!" {
			t.Errorf("break %d: notifications = %v", breakIndex, h.notifier.sent)
		}
		if len(h.prompt.messages) != 1 || !strings.HasPrefix(h.prompt.messages[0], "Break's over! Time to focus.") {
			t.Errorf("break %d: prompt = %q", breakIndex, h.prompt.messages)
		}

		h.prompt.Resolve(true)
		if got := h.engine.Snapshot().ModeIndex; got != 0 {
			t.Errorf("break %d: next mode = %d, want 0", breakIndex, got)
		}
	}
}

func TestEngine_DeclineKeepsModeReset(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)
	h.engine.Start()
	h.ticks.Fire(3)
	h.prompt.Resolve(false)

	got := h.engine.Snapshot()
	if got.ModeIndex != 0 || got.Remaining != 3 || got.State != StateIdle {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestEngine_NotificationGating(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		permission notify.Permission
		wantSent   int
	}{
		{"opted in and granted", true, notify.PermissionGranted, 1},
		{"opted out", false, notify.PermissionGranted, 0},
		{"permission denied", true, notify.PermissionDenied, 0},
		{"permission undecided", true, notify.PermissionDefault, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.enabled, tt.permission)
			h.engine.Start()
			h.ticks.Fire(3)
			if len(h.notifier.sent) != tt.wantSent {
				t.Errorf("sent = %d, want %d", len(h.notifier.sent), tt.wantSent)
			}
			// The rest of the expiry chain runs regardless.
			if h.sessions.count != 1 || len(h.prompt.messages) != 1 {
				t.Errorf("sessions = %d, prompts = %d", h.sessions.count, len(h.prompt.messages))
			}
		})
	}
}

func TestEngine_SoundFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)
	h.sound.err = errors.New("autoplay blocked")

	h.engine.Start()
	h.ticks.Fire(3)

	if h.sessions.count != 1 {
		t.Errorf("sessions = %d, want 1", h.sessions.count)
	}
	if len(h.prompt.messages) != 1 {
		t.Errorf("prompts = %d, want 1", len(h.prompt.messages))
	}
}

func TestEngine_ExpiryCountsOnlyOnce(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)
	h.engine.Start()
	h.ticks.Fire(3)
	h.ticks.FireStale()
	h.ticks.FireStale()

	if h.sessions.count != 1 {
		t.Errorf("sessions = %d, want 1", h.sessions.count)
	}
	if got := h.engine.Snapshot().Remaining; got != 3 {
		t.Errorf("Remaining = %d, want 3", got)
	}
}

func TestEngine_CloseClosesSubscribers(t *testing.T) {
	h := newHarness(t, false, notify.PermissionDefault)
	events := h.engine.Subscribe(1)
	h.engine.Close()

	for range events {
	}
	late := h.engine.Subscribe(1)
	if _, ok := <-late; ok {
		t.Error("subscription after Close should be closed")
	}
	h.engine.Start()
	if h.ticks.starts != 0 {
		t.Error("Start() after Close started ticking")
	}
}

func TestNew_NormalizesConfig(t *testing.T) {
	engine := New(model.TimerConfig{FocusIndex: 7}, Dependencies{Ticks: &manualTicks{}})
	defer engine.Close()

	config := engine.Config()
	if len(config.Modes) != 3 {
		t.Fatalf("modes = %d, want defaults", len(config.Modes))
	}
	if config.FocusIndex != 0 {
		t.Errorf("FocusIndex = %d", config.FocusIndex)
	}
	if got := engine.Snapshot().Remaining; got != 1500 {
		t.Errorf("Remaining = %d, want 1500", got)
	}
}

func TestIntervalTicker_StopsAfterCancel(t *testing.T) {
	var mu sync.Mutex
	count := 0
	cancel := IntervalTicker{Interval: 5 * time.Millisecond}.Start(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		got := count
		mu.Unlock()
		if got >= 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	cancel()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	settled := count
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != settled {
		t.Errorf("ticks continued after cancel: %d -> %d", settled, count)
	}
	if settled < 2 {
		t.Errorf("ticks = %d, want at least 2", settled)
	}
}
