package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "List awards earned: streaks, records, stages and characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			if !e.engine.HasHistory() {
				fmt.Fprintln(out, "No history is kept in memory mode.")
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")
			events, err := e.engine.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No awards yet.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tKIND\tVALUE\tDETAIL")
			for _, ev := range events {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", ev.Timestamp.Format(time.DateTime), ev.Kind, ev.Value, ev.Detail)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			counts, err := e.engine.AwardCounts(cmd.Context())
			if err != nil {
				return err
			}
			kinds := make([]string, 0, len(counts))
			for k := range counts {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			fmt.Fprintln(out)
			for _, k := range kinds {
				fmt.Fprintf(out, "%s: %d\n", k, counts[k])
			}
			return nil
		},
	}
	c.Flags().Int("limit", 20, "Maximum number of awards to list")
	return c
}
