package cli

import (
	"focushub/internal/app"
	"focushub/internal/tui"

	"github.com/spf13/cobra"
)

func newGUICmd(launch Launcher) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(launch)
		},
	}
}

func runGUI(launch Launcher) error {
	if launch == nil {
		return ErrNoDesktop
	}
	return launch(baseOptions())
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			restoreLog, err := tui.RedirectLog()
			if err != nil {
				return err
			}
			defer restoreLog()

			core, err := app.New(baseOptions())
			if err != nil {
				return err
			}
			defer core.Close()
			return tui.Run(core)
		},
	}
}
