package cli

import (
	"fmt"
	"io"

	"focushub/internal/app"

	"github.com/spf13/cobra"
)

func newAutostartCmd() *cobra.Command {
	status := func(cmd *cobra.Command, args []string) error {
		core, err := openCore(cmd, false)
		if err != nil {
			return err
		}
		defer core.Close()
		return printAutostart(cmd.OutOrStdout(), core)
	}

	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Start FocusHub at login",
		Args:  cobra.NoArgs,
		RunE:  status,
	}

	cmd.AddCommand(
		newAutostartSetCmd("on", "Start at login", true),
		newAutostartSetCmd("off", "Do not start at login", false),
		&cobra.Command{
			Use:   "status",
			Short: "Show whether FocusHub starts at login",
			Args:  cobra.NoArgs,
			RunE:  status,
		},
	)

	return cmd
}

func newAutostartSetCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			if err := core.SetAutostart(enabled); err != nil {
				return err
			}
			return printAutostart(cmd.OutOrStdout(), core)
		},
	}
}

func printAutostart(out io.Writer, core *app.App) error {
	enabled, err := core.AutostartEnabled()
	if err != nil {
		return fmt.Errorf("check autostart: %w", err)
	}
	state := "off"
	if enabled {
		state = "on"
	}
	fmt.Fprintf(out, "Autostart: %s\n", state)
	return nil
}
