package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFocusCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "focus [text]",
		Short: "Show or set the main focus",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			title := core.Focus.Get()
			if reset || len(args) > 0 {
				title, err = core.Focus.Set(strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("save focus: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "clear", false, "Restore the default focus title")

	return cmd
}
