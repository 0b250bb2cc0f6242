package cli

import (
	"fmt"
	"io"

	"focushub/internal/core/stats"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completed focus sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			out := cmd.OutOrStdout()
			printStats(out, core.Stats.Snapshot())
			if !watch {
				return nil
			}
			return watchStore(cmd, core, func() error {
				fmt.Fprintln(out)
				printStats(out, core.Stats.Load())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep printing as sessions complete")
	cmd.AddCommand(newStatsResetCmd())

	return cmd
}

func newStatsResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all session analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, yes)
			if err != nil {
				return err
			}
			defer core.Close()

			core.Stats.Reset()
			printStats(cmd.OutOrStdout(), core.Stats.Snapshot())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func printStats(out io.Writer, current stats.Stats) {
	last := "never"
	if current.LastSessionDate != nil {
		last = *current.LastSessionDate
	}
	fmt.Fprint(out, renderTable(
		[]string{"TODAY", "TOTAL", "LAST SESSION"},
		[][]string{{fmt.Sprint(current.Today), fmt.Sprint(current.Total), last}},
	))
}
