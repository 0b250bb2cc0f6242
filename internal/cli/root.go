// Package cli implements the focushub command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"focushub/internal/app"

	"github.com/spf13/cobra"
)

// ErrNoDesktop is returned by the gui command when the binary was built
// without a desktop launcher.
var ErrNoDesktop = errors.New("desktop dashboard unavailable")

// Launcher starts the desktop dashboard. It receives the options resolved
// from the global flags and blocks until the app quits.
type Launcher func(options app.Options) error

var (
	configDir string
	storePath string
)

// NewRootCmd creates the root command. With no subcommand it runs launch.
func NewRootCmd(launch Launcher) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "focushub",
		Short: "FocusHub - focus timer, tasks and session stats",
		Long: `FocusHub is a focus timer with a task list, session analytics and ambient
sound. Run it without a command for the desktop dashboard, use "tui" for the
terminal dashboard, or script the stored data with the other commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(launch)
		},
	}

	rootCmd.SetHelpTemplate(helpTemplate)

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Directory holding config.yaml and the preference store (default $"+app.ConfigDirEnv+" or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Preference file to use instead of the configured store")

	dashboards := []*cobra.Command{
		addAnnotation(newGUICmd(launch), "dashboard"),
		addAnnotation(newTUICmd(), "dashboard"),
	}
	data := []*cobra.Command{
		addAnnotation(newStatsCmd(), "data"),
		addAnnotation(newTasksCmd(), "data"),
		addAnnotation(newFocusCmd(), "data"),
		addAnnotation(newMusicCmd(), "data"),
	}
	setup := []*cobra.Command{
		addAnnotation(newPrefsCmd(), "setup"),
		addAnnotation(newConfigCmd(), "setup"),
		addAnnotation(newAutostartCmd(), "setup"),
	}

	for _, group := range [][]*cobra.Command{dashboards, data, setup} {
		for _, cmd := range group {
			rootCmd.AddCommand(cmd)
		}
	}
	setFlagAliases(rootCmd, flagAliases)

	return rootCmd
}

// addAnnotation adds a group annotation to a command
func addAnnotation(cmd *cobra.Command, group string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations["group"] = group
	return cmd
}

const helpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}{{if and .HasAvailableSubCommands (not .HasParent)}}

Dashboards:{{range .Commands}}{{if and (eq .Annotations.group "dashboard") .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Data:{{range .Commands}}{{if and (eq .Annotations.group "data") .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Setup:{{range .Commands}}{{if and (eq .Annotations.group "setup") .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}
`

// Run executes the command line and returns the process exit code.
func Run(launch Launcher) int {
	rootCmd := NewRootCmd(launch)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Execute runs the root command and exits.
func Execute(launch Launcher) {
	os.Exit(Run(launch))
}
