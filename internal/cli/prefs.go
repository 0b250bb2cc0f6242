package cli

import (
	"fmt"

	"focushub/internal/storage"

	"github.com/spf13/cobra"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Short:   "Read and write stored preferences",
		Aliases: []string{"pref"},
	}

	cmd.AddCommand(
		newPrefsListCmd(),
		newPrefsGetCmd(),
		newPrefsSetCmd(),
		newPrefsRemoveCmd(),
	)

	return cmd
}

func newPrefsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List every known key and its stored value",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			var rows [][]string
			for _, spec := range storage.Schema() {
				value, ok := core.Store.Raw(spec.Key)
				if !ok {
					value = "-"
				}
				rows = append(rows, []string{spec.Key, string(spec.Kind), truncateCell(value)})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"KEY", "KIND", "VALUE"}, rows))
			return nil
		},
	}
}

func newPrefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := storage.Lookup(key); !ok {
				return fmt.Errorf("get %q: %w", key, storage.ErrUnknownKey)
			}

			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			value, ok := core.Store.Raw(key)
			if !ok {
				return fmt.Errorf("%s is not set", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a raw value after checking it against the key's kind",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := storage.Validate(key, value); err != nil {
				return err
			}

			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			return core.Store.SetString(key, value)
		},
	}
}

func newPrefsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key>",
		Short:   "Remove a stored value",
		Aliases: []string{"unset"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := storage.Lookup(key); !ok {
				return fmt.Errorf("remove %q: %w", key, storage.ErrUnknownKey)
			}

			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			return core.Store.Remove(key)
		},
	}
}
