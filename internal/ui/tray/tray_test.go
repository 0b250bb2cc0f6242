package tray

import (
	"testing"
	"time"

	"focushub/internal/core/model"
	"focushub/internal/core/timer"

	"fyne.io/fyne/v2"
)

type fakeDesktop struct {
	menu  *fyne.Menu
	icons []fyne.Resource
}

func (desktop *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) {
	desktop.menu = menu
}

func (desktop *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource) {
	desktop.icons = append(desktop.icons, icon)
}

func (desktop *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func (desktop *fakeDesktop) item(label string) *fyne.MenuItem {
	for _, item := range desktop.menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

var (
	idleIcon    = fyne.NewStaticResource("idle.svg", []byte("<svg/>"))
	runningIcon = fyne.NewStaticResource("running.svg", []byte("<svg></svg>"))
	focusMode   = model.Mode{Name: "Focus", Duration: 25 * time.Minute}
)

func TestStatus(t *testing.T) {
	tests := []struct {
		snapshot timer.Snapshot
		want     string
	}{
		{timer.Snapshot{Mode: focusMode, Remaining: 1499, State: timer.StateRunning}, "Focus 24:59"},
		{timer.Snapshot{Mode: focusMode, Remaining: 1500, State: timer.StateIdle}, "Focus 25:00 (paused)"},
	}
	for _, tt := range tests {
		if got := Status(tt.snapshot); got != tt.want {
			t.Errorf("Status() = %q, want %q", got, tt.want)
		}
	}
}

func TestManager_UpdateFlipsToggle(t *testing.T) {
	desktop := &fakeDesktop{}
	manager := New(desktop, Icons{Idle: idleIcon, Running: runningIcon}, Callbacks{})

	if desktop.item("Start") == nil {
		t.Fatal("menu has no Start item")
	}

	manager.Update(timer.Snapshot{Mode: focusMode, Remaining: 1499, State: timer.StateRunning})
	if desktop.item("Pause") == nil {
		t.Error("menu has no Pause item while running")
	}
	if desktop.menu.Items[0].Label != "Focus 24:59" {
		t.Errorf("status = %q", desktop.menu.Items[0].Label)
	}
	if last := desktop.icons[len(desktop.icons)-1]; last != runningIcon {
		t.Errorf("icon = %v, want running icon", last.Name())
	}

	manager.Update(timer.Snapshot{Mode: focusMode, Remaining: 1499, State: timer.StateIdle})
	if desktop.item("Start") == nil {
		t.Error("menu has no Start item after pause")
	}
	if last := desktop.icons[len(desktop.icons)-1]; last != idleIcon {
		t.Errorf("icon = %v, want idle icon", last.Name())
	}
}

func TestManager_Callbacks(t *testing.T) {
	desktop := &fakeDesktop{}
	var calls []string
	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}
	New(desktop, Icons{}, Callbacks{
		OnToggle:      record("toggle"),
		OnReset:       record("reset"),
		OnNextMode:    record("next"),
		OnShow:        record("show"),
		OnPreferences: record("prefs"),
		OnQuit:        record("quit"),
	})

	for _, label := range []string{"Start", "Reset", "Next mode", "Show dashboard", "Preferences", "Quit"} {
		item := desktop.item(label)
		if item == nil {
			t.Fatalf("menu has no %q item", label)
		}
		item.Action()
	}

	want := []string{"toggle", "reset", "next", "show", "prefs", "quit"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}
