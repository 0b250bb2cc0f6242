// Package tray keeps the system tray menu in sync with the timer.
package tray

import (
	"fmt"

	"focushub/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "FocusHub"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnReset       func()
	OnNextMode    func()
	OnQuit        func()
}

// Icons are swapped as the timer starts and stops.
type Icons struct {
	Idle    fyne.Resource
	Running fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	icons      Icons
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	callbacks  Callbacks
	running    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		call(manager.callbacks.OnToggle)
	})

	manager.refreshMenu()
	if app != nil && icons.Idle != nil {
		app.SetSystemTrayIcon(icons.Idle)
	}
	return manager
}

// Update shows the snapshot in the status line and flips the start/pause
// item and icon when the run state changes.
func (manager *Manager) Update(snapshot timer.Snapshot) {
	manager.statusItem.Label = Status(snapshot)

	running := snapshot.State == timer.StateRunning
	if running != manager.running {
		manager.running = running
		if running {
			manager.toggleItem.Label = "Pause"
		} else {
			manager.toggleItem.Label = "Start"
		}
		manager.refreshIcon()
	}
	manager.refreshMenu()
}

// Status renders the tray status line.
func Status(snapshot timer.Snapshot) string {
	status := fmt.Sprintf("%s %s", snapshot.Mode.Name, snapshot.Display())
	if snapshot.State != timer.StateRunning {
		status += " (paused)"
	}
	return status
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Idle
	if manager.running && manager.icons.Running != nil {
		icon = manager.icons.Running
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItem("Reset", func() {
			call(manager.callbacks.OnReset)
		}),
		fyne.NewMenuItem("Next mode", func() {
			call(manager.callbacks.OnNextMode)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show dashboard", func() {
			call(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItem("Preferences", func() {
			call(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	))
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
