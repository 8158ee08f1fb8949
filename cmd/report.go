package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/report"
)

func newReportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "report",
		Short: "Show practice statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			r := e.engine.Report(cmd.Context())
			if err := printReport(cmd.OutOrStdout(), r); err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("xlsx")
			if path == "" {
				return nil
			}
			if err := exportXLSX(path, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", path)
			return nil
		},
	}
	c.Flags().String("xlsx", "", "Also write the report to this .xlsx file")
	return c
}

func printReport(w io.Writer, r report.Report) error {
	if r.User != nil {
		fmt.Fprintf(w, "Learner: %s\n\n", r.User.Name)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tANSWERS\tCORRECT\tWRONG\tTIME")
	for _, s := range r.Windows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n",
			s.Window.Label(), s.Total, s.Correct, s.Wrong, report.FormatDuration(s.TotalTime))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, g := range exercise.AllGroups() {
		fmt.Fprintf(w, "Group %d: %d exercises\n", int(g), len(r.Groups[g]))
	}
	fmt.Fprintf(w, "\nHigh score %d, %d points in total, %d characters finished\n",
		r.Incentive.HighScore, r.Incentive.TotalPoints, len(r.Character.Completed))
	return nil
}

func exportXLSX(path string, r report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.WriteXLSX(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
