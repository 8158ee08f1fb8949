package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/timesdrill/internal/profile"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name> <boy|girl>",
		Short: "Register the learner of this profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gender, err := parseGender(args[1])
			if err != nil {
				return err
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := e.engine.RegisterUser(cmd.Context(), strings.TrimSpace(args[0]), gender)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s) on profile %q\n", u.Name, u.Gender, e.engine.Profile())
			return nil
		},
	}
}

func parseGender(s string) (profile.Gender, error) {
	switch strings.ToLower(s) {
	case "boy", "male", "m":
		return profile.GenderMale, nil
	case "girl", "female", "f":
		return profile.GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender %q: use boy or girl", s)
	}
}
