package cli

import (
	"fmt"
	"strconv"

	"focushub/internal/core/timer"
	"focushub/internal/storage"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration and mode sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			out := cmd.OutOrStdout()
			config := core.Config
			source := config.Source
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(out, "Config dir: %s\n", core.ConfigDir)
			fmt.Fprintf(out, "Source:     %s\n", source)
			fmt.Fprintf(out, "Store:      %s", config.Store.Backend)
			if path, ok := core.StorePath(); ok {
				fmt.Fprintf(out, " (%s)", path)
			}
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(config.Timer.Modes))
			for i, mode := range config.Timer.Modes {
				next := config.Timer.Modes[config.Timer.NextIndex(i)].Name
				role := "break"
				if config.Timer.IsFocus(i) {
					role = "focus"
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), mode.Name, timer.Format(mode.Seconds()), role, next})
			}
			fmt.Fprint(out, renderTable([]string{"#", "MODE", "DURATION", "ROLE", "NEXT"}, rows))

			if write {
				if err := storage.SaveConfig(core.ConfigDir, config); err != nil {
					return err
				}
				fmt.Fprintln(out, "Wrote config.yaml.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Save the resolved configuration as config.yaml")

	return cmd
}
