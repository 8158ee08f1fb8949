package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Running the root command starts the
// TUI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "timesdrill",
		Short:         "Multiplication table practice for kids",
		Long:          "timesdrill drills the 1-10 multiplication table, repeats weak exercises more often and rewards fast correct answers.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to the TOML config file (default $XDG_CONFIG_HOME/timesdrill/config.toml)")
	pf.String("db", "", "Path to SQLite database file (overrides TIMESDRILL_DB)")
	pf.String("profile", "", "Learner profile name (overrides TIMESDRILL_PROFILE)")
	pf.Bool("memory", false, "Keep progress in memory only; nothing is saved")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Log file path; empty disables logging")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newCharacterCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newRestoreCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start practicing (same as running without a command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}
}
