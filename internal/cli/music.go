package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMusicCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "music [link]",
		Short: "Show or set the music player link",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			out := cmd.OutOrStdout()
			switch {
			case remove:
				return core.Music.Clear()
			case len(args) == 1:
				embed, err := core.Music.SetLink(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, embed)
			default:
				link, ok := core.Music.Link()
				if !ok {
					fmt.Fprintln(out, "No music link saved.")
					return nil
				}
				fmt.Fprintln(out, link)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "clear", false, "Remove the saved link")

	return cmd
}
