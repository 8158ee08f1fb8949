package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/timesdrill/internal/exercise"
)

// Sheet names of the exported workbook.
const (
	SheetSummary = "Summary"
	SheetGroups  = "Groups"
	SheetResults = "Results"
)

// WriteXLSX writes r as a workbook with a summary, the mastery groups and
// the full answer log.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetGroups, SheetResults} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSummary(f, r, header); err != nil {
		return err
	}
	if err := writeGroups(f, r, header); err != nil {
		return err
	}
	if err := writeResults(f, r, header); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r Report, header int) error {
	rows := [][]any{
		{"Generated", r.GeneratedAt.Format(time.DateTime)},
	}
	if r.User != nil {
		rows = append(rows, []any{"Learner", r.User.Name})
	}
	rows = append(rows,
		[]any{"High score", r.Incentive.HighScore},
		[]any{"Total points", r.Incentive.TotalPoints},
		[]any{"Characters completed", len(r.Character.Completed)},
		[]any{},
		[]any{"Period", "Answers", "Correct", "Wrong", "Time"},
	)
	headerRow := len(rows)
	for _, s := range r.Windows {
		rows = append(rows, []any{s.Window.Label(), s.Total, s.Correct, s.Wrong, FormatDuration(s.TotalTime)})
	}

	if err := setRows(f, SheetSummary, rows); err != nil {
		return err
	}
	return styleRow(f, SheetSummary, headerRow, 5, header)
}

func writeGroups(f *excelize.File, r Report, header int) error {
	rows := [][]any{{"Group", "Count", "Exercises"}}
	for _, g := range exercise.AllGroups() {
		list := r.Groups[g]
		names := make([]string, len(list))
		for i, e := range list {
			names[i] = e.String()
		}
		rows = append(rows, []any{int(g), len(list), strings.Join(names, ", ")})
	}
	if err := setRows(f, SheetGroups, rows); err != nil {
		return err
	}
	return styleRow(f, SheetGroups, 1, 3, header)
}

func writeResults(f *excelize.File, r Report, header int) error {
	rows := make([][]any, 0, len(r.Results)+1)
	rows = append(rows, []any{"Time", "Exercise", "Answer", "Correct answer", "Correct", "Response (ms)"})
	for _, res := range r.Results {
		rows = append(rows, []any{
			res.Time().Local().Format(time.DateTime),
			fmt.Sprintf("%d × %d", res.A, res.B),
			res.UserAnswer,
			res.CorrectAnswer,
			res.IsCorrect,
			res.ResponseTime,
		})
	}
	if err := setRows(f, SheetResults, rows); err != nil {
		return err
	}
	return styleRow(f, SheetResults, 1, 6, header)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("style %s row %d: %w", sheet, row, err)
	}
	return nil
}
