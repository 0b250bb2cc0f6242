// Package dashboard implements the main FocusHub window: timer, focus title,
// session statistics, tasks and the themed background.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"net/url"
	"sync/atomic"

	"focushub/internal/app"
	"focushub/internal/core/focus"
	"focushub/internal/core/stats"
	"focushub/internal/core/tasks"
	"focushub/internal/core/timer"
	"focushub/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	historyTimeLayout = "Jan 2, 15:04"
	timerTextSize     = 72
)

// Options configure the dashboard shell.
type Options struct {
	Animation     animation.Config
	OnPreferences func()
	// HideOnClose keeps the app running in the tray when the window closes.
	HideOnClose bool
}

// Window manages the dashboard UI.
type Window struct {
	fyneApp fyne.App
	window  fyne.Window
	core    *app.App
	options Options

	ctx    context.Context
	cancel context.CancelFunc

	typewriter    *animation.Engine
	toasts        *animation.Engine
	gif           *animation.Engine
	backgroundGen atomic.Uint64

	background         *canvas.Image
	focusLabel         *widget.Label
	focusEntry         *widget.Entry
	focusEditButton    *widget.Button
	timerText          *canvas.Text
	modeButtons        []*widget.Button
	startButton        *widget.Button
	resetButton        *widget.Button
	statsLabel         *widget.Label
	taskEntry          *widget.Entry
	addButton          *widget.Button
	taskBox            *fyne.Container
	historyBox         *fyne.Container
	clearHistoryButton *widget.Button
	musicLink          *widget.Hyperlink
	toastLabel         *widget.Label
	fullscreenButton   *widget.Button
}

// New builds the dashboard window. It does not show it.
func New(fyneApp fyne.App, core *app.App, options Options) *Window {
	if options.Animation == (animation.Config{}) {
		options.Animation = animation.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())

	dashboard := &Window{
		fyneApp:    fyneApp,
		window:     fyneApp.NewWindow(app.Name),
		core:       core,
		options:    options,
		ctx:        ctx,
		cancel:     cancel,
		typewriter: animation.New(options.Animation),
		toasts:     animation.New(options.Animation),
		gif:        animation.New(options.Animation),
	}
	if fyneApp.Icon() != nil {
		dashboard.window.SetIcon(fyneApp.Icon())
	}

	dashboard.background = canvas.NewImageFromResource(nil)
	dashboard.background.FillMode = canvas.ImageFillStretch
	dashboard.background.Hide()

	dashboard.focusLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	dashboard.focusEntry = widget.NewEntry()
	dashboard.focusEntry.SetPlaceHolder(focus.Placeholder)
	dashboard.focusEntry.OnSubmitted = dashboard.setFocus
	dashboard.focusEntry.Hide()
	dashboard.focusEditButton = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), dashboard.editFocus)

	dashboard.timerText = canvas.NewText(timer.Format(0), theme.Color(theme.ColorNameForeground))
	dashboard.timerText.Alignment = fyne.TextAlignCenter
	dashboard.timerText.TextStyle = fyne.TextStyle{Monospace: true}
	dashboard.timerText.TextSize = timerTextSize

	modes := container.NewHBox(layout.NewSpacer())
	for index, mode := range core.Timer.Config().Modes {
		button := widget.NewButton(mode.Name, func() {
			if err := core.Timer.SwitchMode(index); err != nil {
				log.Printf("switch mode: %v", err)
			}
		})
		dashboard.modeButtons = append(dashboard.modeButtons, button)
		modes.Add(button)
	}
	modes.Add(layout.NewSpacer())

	dashboard.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), core.Timer.Toggle)
	dashboard.startButton.Importance = widget.HighImportance
	dashboard.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), core.Timer.Reset)
	controls := container.NewHBox(layout.NewSpacer(), dashboard.startButton, dashboard.resetButton, layout.NewSpacer())

	dashboard.statsLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	dashboard.taskEntry = widget.NewEntry()
	dashboard.taskEntry.SetPlaceHolder("Add a new task...")
	dashboard.taskEntry.OnSubmitted = func(string) { dashboard.addTask() }
	dashboard.addButton = widget.NewButtonWithIcon("", theme.ContentAddIcon(), dashboard.addTask)
	dashboard.taskBox = container.NewVBox()
	dashboard.historyBox = container.NewVBox()
	dashboard.clearHistoryButton = widget.NewButton("Clear history", core.Tasks.ClearHistory)

	taskPanel := container.NewBorder(
		container.NewBorder(nil, nil, nil, dashboard.addButton, dashboard.taskEntry),
		nil, nil, nil,
		container.NewVScroll(dashboard.taskBox),
	)
	historyPanel := container.NewBorder(nil, dashboard.clearHistoryButton, nil, nil,
		container.NewVScroll(dashboard.historyBox))
	lists := container.NewAppTabs(
		container.NewTabItem("Tasks", taskPanel),
		container.NewTabItem("History", historyPanel),
	)

	dashboard.musicLink = widget.NewHyperlink("", nil)
	dashboard.musicLink.Hide()

	dashboard.toastLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	dashboard.toastLabel.Hide()

	dashboard.fullscreenButton = widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), dashboard.toggleFullScreen)
	preferencesButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if dashboard.options.OnPreferences != nil {
			dashboard.options.OnPreferences()
		}
	})

	header := container.NewBorder(nil, nil, nil,
		container.NewHBox(dashboard.fullscreenButton, preferencesButton),
		container.NewVBox(
			container.NewBorder(nil, nil, nil, dashboard.focusEditButton, dashboard.focusLabel),
			dashboard.focusEntry,
		),
	)
	top := container.NewVBox(header, modes, dashboard.timerText, controls, dashboard.statsLabel)
	footer := container.NewVBox(dashboard.toastLabel, container.NewCenter(dashboard.musicLink))
	content := container.NewBorder(top, footer, nil, nil, lists)

	dashboard.window.SetContent(container.NewStack(dashboard.background, container.NewPadded(content)))
	dashboard.window.Resize(fyne.NewSize(720, 680))
	dashboard.window.SetCloseIntercept(func() {
		if dashboard.options.HideOnClose {
			dashboard.window.Hide()
			return
		}
		fyneApp.Quit()
	})

	core.Tasks.OnChange(func() {
		fyne.Do(dashboard.renderTasks)
	})
	core.Stats.OnChange(func(current stats.Stats) {
		fyne.Do(func() {
			dashboard.refreshStats(current)
		})
	})

	dashboard.Refresh(core.Timer.Snapshot())
	dashboard.refreshStats(core.Stats.Snapshot())
	dashboard.renderTasks()
	dashboard.RefreshMusic()
	dashboard.showFocus(core.Focus.Get())

	return dashboard
}

// Window returns the underlying fyne window.
func (dashboard *Window) Window() fyne.Window {
	return dashboard.window
}

// Show displays the dashboard.
func (dashboard *Window) Show() {
	dashboard.window.Show()
	dashboard.window.RequestFocus()
}

// Listen applies timer events until the channel closes.
func (dashboard *Window) Listen(events <-chan timer.Event) {
	go func() {
		for event := range events {
			if event.Type == timer.EventExpired {
				continue
			}
			snapshot := timer.Snapshot{
				ModeIndex: event.ModeIndex,
				Mode:      event.Mode,
				Remaining: event.Remaining,
				State:     event.State,
			}
			fyne.Do(func() {
				dashboard.Refresh(snapshot)
			})
		}
	}()
}

// Refresh renders a timer snapshot. It must run on the UI goroutine.
func (dashboard *Window) Refresh(snapshot timer.Snapshot) {
	dashboard.timerText.Text = snapshot.Display()
	dashboard.timerText.Refresh()
	dashboard.window.SetTitle(timer.Title(snapshot.Remaining))

	if snapshot.State == timer.StateRunning {
		dashboard.startButton.SetText("Pause")
		dashboard.startButton.SetIcon(theme.MediaPauseIcon())
	} else {
		dashboard.startButton.SetText("Start")
		dashboard.startButton.SetIcon(theme.MediaPlayIcon())
	}

	for index, button := range dashboard.modeButtons {
		importance := widget.MediumImportance
		if index == snapshot.ModeIndex {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}
}

// Toast shows message briefly. Safe from any goroutine.
func (dashboard *Window) Toast(message string) {
	dashboard.toasts.Flash(dashboard.ctx, func() {
		fyne.Do(func() {
			dashboard.toastLabel.SetText(message)
			dashboard.toastLabel.Show()
		})
	}, func() {
		fyne.Do(dashboard.toastLabel.Hide)
	})
}

// ApplyAppearance installs the stored theme and background.
func (dashboard *Window) ApplyAppearance() {
	settings := dashboard.core.Appearance
	palette := settings.Palette()
	dashboard.fyneApp.Settings().SetTheme(newAccentTheme(settings.Dark(), palette))
	if primary := hexColor(palette.Primary); primary != nil {
		dashboard.timerText.Color = primary
		dashboard.timerText.Refresh()
	}
	dashboard.applyBackground()
}

// RefreshMusic shows a link to the saved music, if any.
func (dashboard *Window) RefreshMusic() {
	link, ok := dashboard.core.Music.Link()
	if !ok {
		dashboard.musicLink.Hide()
		return
	}
	parsed, err := url.Parse(link)
	if err != nil {
		dashboard.musicLink.Hide()
		return
	}
	dashboard.musicLink.SetText("Open music")
	dashboard.musicLink.SetURL(parsed)
	dashboard.musicLink.Show()
}

// Close stops the dashboard's animations.
func (dashboard *Window) Close() {
	dashboard.cancel()
	dashboard.typewriter.Stop()
	dashboard.toasts.Stop()
	dashboard.gif.Stop()
}

func (dashboard *Window) showFocus(title string) {
	dashboard.typewriter.Typewriter(dashboard.ctx, title, func(visible string) {
		fyne.Do(func() {
			dashboard.focusLabel.SetText(visible)
		})
	}, nil)
}

func (dashboard *Window) editFocus() {
	dashboard.focusEntry.SetText(dashboard.core.Focus.EditValue())
	dashboard.focusEntry.Show()
	dashboard.window.Canvas().Focus(dashboard.focusEntry)
}

func (dashboard *Window) setFocus(text string) {
	title, err := dashboard.core.Focus.Set(text)
	if err != nil {
		log.Printf("save focus: %v", err)
		dashboard.Toast("Could not save your focus.")
	}
	dashboard.focusEntry.Hide()
	dashboard.showFocus(title)
}

func (dashboard *Window) addTask() {
	_, err := dashboard.core.Tasks.Add(dashboard.taskEntry.Text)
	if errors.Is(err, tasks.ErrEmptyTask) {
		return
	}
	if err != nil {
		log.Printf("add task: %v", err)
		return
	}
	dashboard.taskEntry.SetText("")
}

func (dashboard *Window) editTask(id int) {
	task, ok := dashboard.core.Tasks.Find(id)
	if !ok || task.Completed {
		return
	}
	entry := widget.NewEntry()
	entry.SetText(task.Text)
	dialog.ShowForm("Edit task", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Task", entry)},
		func(save bool) {
			if !save {
				return
			}
			if err := dashboard.core.Tasks.Edit(id, entry.Text); err != nil {
				log.Printf("edit task: %v", err)
			}
		}, dashboard.window)
}

// renderTasks rebuilds the task and history lists. It must run on the UI
// goroutine.
func (dashboard *Window) renderTasks() {
	list := dashboard.core.Tasks

	rows := make([]fyne.CanvasObject, 0)
	for _, task := range list.Tasks() {
		id := task.ID
		check := widget.NewCheck(task.Text, nil)
		check.SetChecked(task.Completed)
		check.OnChanged = func(done bool) {
			if err := list.SetCompleted(id, done); err != nil {
				log.Printf("complete task: %v", err)
			}
		}
		edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
			dashboard.editTask(id)
		})
		if task.Completed {
			edit.Disable()
		}
		remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			if err := list.Delete(id); err != nil {
				log.Printf("delete task: %v", err)
			}
		})
		rows = append(rows, container.NewBorder(nil, nil, nil, container.NewHBox(edit, remove), check))
	}
	if len(rows) == 0 {
		rows = append(rows, widget.NewLabel("No tasks yet."))
	}
	dashboard.taskBox.Objects = rows
	dashboard.taskBox.Refresh()

	history := list.History()
	entries := make([]fyne.CanvasObject, 0, len(history))
	for _, entry := range history {
		label := entry.Text
		if !entry.CompletedAt.IsZero() {
			label = fmt.Sprintf("%s (%s)", entry.Text, entry.CompletedAt.Local().Format(historyTimeLayout))
		}
		entries = append(entries, widget.NewLabel(label))
	}
	if len(entries) == 0 {
		entries = append(entries, widget.NewLabel("No completed tasks."))
		dashboard.clearHistoryButton.Disable()
	} else {
		dashboard.clearHistoryButton.Enable()
	}
	dashboard.historyBox.Objects = entries
	dashboard.historyBox.Refresh()
}

func (dashboard *Window) refreshStats(current stats.Stats) {
	dashboard.statsLabel.SetText(fmt.Sprintf("Today: %d   Total: %d", current.Today, current.Total))
}

func (dashboard *Window) toggleFullScreen() {
	full := !dashboard.window.FullScreen()
	dashboard.window.SetFullScreen(full)
	if full {
		dashboard.fullscreenButton.SetIcon(theme.ViewRestoreIcon())
		return
	}
	dashboard.fullscreenButton.SetIcon(theme.ViewFullScreenIcon())
}

// applyBackground shows the GIF when animation is on, else the stored image.
func (dashboard *Window) applyBackground() {
	generation := dashboard.backgroundGen.Add(1)
	dashboard.gif.Stop()
	settings := dashboard.core.Appearance

	if settings.AnimationActive() {
		location := settings.ActiveGIF()
		minDelay := dashboard.options.Animation.MinFrameDelay
		go func() {
			data, err := fetchMedia(location)
			if err != nil {
				log.Printf("load gif background: %v", err)
				return
			}
			frames, err := animation.DecodeGIF(data, minDelay)
			if err != nil {
				log.Printf("load gif background: %v", err)
				return
			}
			if dashboard.backgroundGen.Load() != generation {
				return
			}
			dashboard.gif.Play(dashboard.ctx, frames, func(frame image.Image) {
				fyne.Do(func() {
					if dashboard.backgroundGen.Load() != generation {
						return
					}
					dashboard.background.Resource = nil
					dashboard.background.Image = frame
					dashboard.background.Show()
					dashboard.background.Refresh()
				})
			})
		}()
		return
	}

	dashboard.background.Image = nil
	value, ok := settings.Background()
	if !ok {
		dashboard.background.Resource = nil
		dashboard.background.Hide()
		return
	}
	resource, err := imageResource(value)
	if err != nil {
		log.Printf("load background: %v", err)
		dashboard.background.Resource = nil
		dashboard.background.Hide()
		return
	}
	dashboard.background.Resource = resource
	dashboard.background.Show()
	dashboard.background.Refresh()
}
