package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/timesdrill/internal/practice"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Bring back the progress saved before the last reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			reason, err := e.engine.Restore(cmd.Context())
			if errors.Is(err, practice.ErrNoBackup) {
				return fmt.Errorf("profile %q has no backup", e.engine.Profile())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored profile %q from the %s backup\n", e.engine.Profile(), reason)
			return nil
		},
	}
}
