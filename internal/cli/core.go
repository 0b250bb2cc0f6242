package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"focushub/internal/app"
	"focushub/internal/core/confirm"
	"focushub/internal/storage"

	"github.com/spf13/cobra"
)

// baseOptions resolves the global flags.
func baseOptions() app.Options {
	return app.Options{
		ConfigDir: configDir,
		StorePath: storePath,
	}
}

// openCore opens the preference store for a one-shot command. Audio and
// desktop notifications stay off. Confirmations are read from stdin unless
// yes is set.
func openCore(cmd *cobra.Command, yes bool) (*app.App, error) {
	options := baseOptions()
	options.Silent = true
	options.Logger = log.New(cmd.ErrOrStderr(), "", 0)

	core, err := app.New(options)
	if err != nil {
		return nil, err
	}
	core.Prompt.SetPresenter(&linePresenter{
		prompt: core.Prompt,
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		yes:    yes,
	})
	core.Toasts.SetTarget(linePrinter{out: cmd.OutOrStdout()})
	return core, nil
}

// linePresenter answers confirmation prompts on the terminal.
type linePresenter struct {
	prompt *confirm.Prompt
	in     *bufio.Reader
	out    io.Writer
	yes    bool
}

func (presenter *linePresenter) Show(message string) {
	fmt.Fprintln(presenter.out, message)
	if presenter.yes {
		presenter.prompt.Resolve(true)
		return
	}
	fmt.Fprint(presenter.out, "[y/N]: ")
	line, _ := presenter.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	presenter.prompt.Resolve(answer == "y" || answer == "yes")
}

func (presenter *linePresenter) Dismiss() {}

type linePrinter struct {
	out io.Writer
}

func (printer linePrinter) Toast(message string) {
	fmt.Fprintln(printer.out, message)
}

// watchStore re-renders after every change to the preference file until
// interrupted.
func watchStore(cmd *cobra.Command, core *app.App, render func() error) error {
	path, ok := core.StorePath()
	if !ok {
		return fmt.Errorf("watch: the %s store has no file to watch", core.Config.Store.Backend)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	return storage.Watch(ctx, path, func() {
		if err := render(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
