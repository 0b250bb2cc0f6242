// Package tui implements the terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"focushub/internal/app"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugLogEnv names a file that receives the dashboard's debug log.
const DebugLogEnv = "FOCUSHUB_TUI_DEBUG"

// RedirectLog sends the standard logger to the debug file named by
// DebugLogEnv, or discards it, so that log lines do not tear the screen. Call
// it before building loggers from log.Default(). The returned function
// restores stderr.
func RedirectLog() (func(), error) {
	restore := func() { log.SetOutput(os.Stderr) }

	path := os.Getenv(DebugLogEnv)
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}

	logFile, err := tea.LogToFile(path, "[tui] ")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	log.Println("=== TUI session started ===")
	return func() {
		restore()
		logFile.Close()
	}, nil
}

// Run starts the terminal dashboard and blocks until the user quits.
func Run(core *app.App) error {
	model := NewModel(core)
	core.Prompt.SetPresenter(model.bridge)
	core.Toasts.SetTarget(model.bridge)
	defer core.Prompt.SetPresenter(nil)
	defer core.Toasts.SetTarget(nil)

	core.Start(context.Background())

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal dashboard: %w", err)
	}
	return nil
}
