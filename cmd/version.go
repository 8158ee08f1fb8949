package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/abhisek/timesdrill/internal/profile"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v := version
			if semver.IsValid(v) {
				v = semver.Canonical(v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "timesdrill %s (profile format %s)\n", v, profile.FormatVersion)
		},
	}
}
