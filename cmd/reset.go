package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reset",
		Short: "Reset learner data",
		Long:  "Removes all progress of the profile. The old data is kept as a backup snapshot in the database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errors.New("reset deletes all progress; pass --yes to confirm")
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.engine.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q reset\n", e.engine.Profile())
			return nil
		},
	}
	c.Flags().Bool("yes", false, "Confirm the reset")
	return c
}
