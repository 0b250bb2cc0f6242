package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagAliases maps alternate spellings onto canonical flag names.
var flagAliases = map[string]string{
	"config": "config-dir",
	"force":  "yes",
}

// setFlagAliases installs flagAliases on cmd and every subcommand. Call it
// after all subcommands are added.
func setFlagAliases(cmd *cobra.Command, aliases map[string]string) {
	cmd.SetGlobalNormalizationFunc(func(flags *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return pflag.NormalizedName(name)
	})
}
