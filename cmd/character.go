package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/timesdrill/internal/character"
)

func newCharacterCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "character",
		Short: "Show the character being grown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			snap := e.engine.Snapshot(cmd.Context())
			out := cmd.OutOrStdout()
			cur := snap.Character.Current
			fmt.Fprintf(out, "Stage %d/%d", cur.Stage, character.MaxStage)
			var traits []string
			for _, t := range []string{string(cur.Color), string(cur.Skin), string(cur.Animation)} {
				if t != "" {
					traits = append(traits, t)
				}
			}
			if len(traits) > 0 {
				fmt.Fprintf(out, " (%s)", strings.Join(traits, ", "))
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Points: %d", snap.TotalPoints)
			if cur.Stage < character.MaxStage {
				fmt.Fprintf(out, " of %d for the next stage", snap.Threshold)
			}
			fmt.Fprintln(out)
			if snap.CanAdvance {
				fmt.Fprintf(out, "Ready! Choose a %s: %s\n",
					character.OptionLabel(cur.Stage), strings.Join(character.Options(cur.Stage), ", "))
			}
			fmt.Fprintf(out, "Finished characters: %d\n", len(snap.Character.Completed))
			return nil
		},
	}
	c.AddCommand(newCharacterSelectCmd())
	c.AddCommand(newCharacterCompleteCmd())
	return c
}

func newCharacterSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <stage> <choice>",
		Short: "Unlock the next stage with a color, skin or animation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid stage %q: %w", args[0], err)
			}

			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			cur, err := e.engine.SelectCharacterOption(cmd.Context(), stage, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Character is now at stage %d\n", cur.Stage)
			return nil
		},
	}
}

func newCharacterCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Finish a fully grown character and start a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			done, err := e.engine.CompleteCharacter(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Finished a %s character (%s, %s)\n", done.Color, done.Skin, done.Animation)
			return nil
		},
	}
}
