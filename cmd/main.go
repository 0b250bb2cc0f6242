package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"focushub/internal/app"
	"focushub/internal/cli"
	"focushub/internal/core/timer"
	"focushub/internal/platform"
	"focushub/internal/ui/dashboard"
	"focushub/internal/ui/preferences"
	"focushub/internal/ui/tray"
	"focushub/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const timerEventBuffer = 8

func main() {
	cli.Execute(runDesktop)
}

// runDesktop wires the dashboard, the preferences window and the tray around
// one core and runs the fyne event loop.
func runDesktop(options app.Options) error {
	fyneApp := fyneapp.NewWithID(app.ID)
	fyneApp.SetIcon(resources.MustLogo(resources.IconIdle))

	options.Preferences = fyneApp.Preferences()
	options.Sender = dashboard.NewNotificationSender(fyneApp)
	options.SystemDark = func() bool {
		return fyneApp.Settings().ThemeVariant() == theme.VariantDark
	}

	core, err := app.New(options)
	if err != nil {
		return err
	}
	defer core.Close()

	storePath, _ := core.StorePath()
	guard, err := platform.AcquireSingleInstance(app.Name, storePath)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v; asked the running dashboard to show", err)
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	desktopApp, hasTray := fyneApp.(desktop.App)

	var prefsWindow *preferences.Window
	dashboardWindow := dashboard.New(fyneApp, core, dashboard.Options{
		OnPreferences: func() {
			prefsWindow.Show()
		},
		HideOnClose: hasTray,
	})
	defer dashboardWindow.Close()
	guard.OnActivate(func() {
		fyne.Do(dashboardWindow.Show)
	})

	prefsWindow = preferences.New(fyneApp, core, func() {
		dashboardWindow.ApplyAppearance()
		dashboardWindow.RefreshMusic()
	})

	core.Prompt.SetPresenter(dashboard.NewDialogPresenter(dashboardWindow.Window(), core.Prompt))
	core.Toasts.SetTarget(dashboardWindow)
	dashboardWindow.ApplyAppearance()
	dashboardWindow.Listen(core.Timer.Subscribe(timerEventBuffer))

	if hasTray {
		trayManager := tray.New(desktopApp, tray.Icons{
			Idle:    resources.MustLogo(resources.IconIdle),
			Running: resources.MustLogo(resources.IconRunning),
		}, tray.Callbacks{
			OnShow:        dashboardWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle:      core.Timer.Toggle,
			OnReset:       core.Timer.Reset,
			OnNextMode:    core.Timer.MoveToNextMode,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Update(core.Timer.Snapshot())

		events := core.Timer.Subscribe(timerEventBuffer)
		go func() {
			for event := range events {
				if event.Type == timer.EventExpired {
					continue
				}
				snapshot := core.Timer.Snapshot()
				fyne.Do(func() {
					trayManager.Update(snapshot)
				})
			}
		}()
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	core.Start(context.Background())
	dashboardWindow.Show()
	fyneApp.Run()
	return nil
}
