package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Workbook sheet names.
const (
	SheetOverview    = "Overview"
	SheetSubjects    = "Subjects"
	SheetStandings   = "Standings"
	SheetElectives   = "Electives"
	SheetCorrelation = "Correlation"

	defaultSheet = "Sheet1"
	headerFill   = "#E0E7FF"
)

// WriteXLSX writes the class report as a workbook with one sheet per table.
// Standings lists every student, not only the top N.
func (r *Reporter) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	s := r.Summary()
	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetOverview, overviewRows(s.Title, s.Overview)},
		{SheetSubjects, subjectRows(s.Subjects)},
		{SheetStandings, standingRows(views.Leaderboard(r.students, len(r.students)))},
		{SheetElectives, electiveRows(s.Electives)},
		{SheetCorrelation, correlationRows(s.Correlation)},
	}

	for _, sh := range sheets {
		_, sheetErr := f.NewSheet(sh.name)
		if sheetErr != nil {
			return fmt.Errorf("create sheet %s: %w", sh.name, sheetErr)
		}

		writeErr := writeRows(f, sh.name, sh.rows, header)
		if writeErr != nil {
			return writeErr
		}
	}

	err = f.DeleteSheet(defaultSheet)
	if err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	f.SetActiveSheet(0)

	_, err = f.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}

		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(rows) == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("sheet %s header: %w", sheet, err)
	}

	err = f.SetCellStyle(sheet, "A1", last, headerStyle)
	if err != nil {
		return fmt.Errorf("sheet %s header style: %w", sheet, err)
	}

	return nil
}

func overviewRows(title string, ov analytics.ClassOverview) [][]any {
	rows := [][]any{
		{"Metric", "Value"},
		{"Cohort", title},
		{"Students", ov.TotalStudents},
		{"Average %", stats.Round(ov.AveragePercentage, 2)},
		{"Highest %", stats.Round(ov.HighestPercentage, 2)},
		{"Lowest %", stats.Round(ov.LowestPercentage, 2)},
		{"Passed", ov.Passed},
		{"Failed", ov.Failed},
	}

	for _, g := range subject.Grades() {
		rows = append(rows, []any{"Grade " + g.String(), ov.GradeDistribution[g]})
	}

	for _, e := range subject.Electives() {
		rows = append(rows, []any{e.String() + " enrolled", ov.Electives[e]})
	}

	return rows
}

func subjectRows(all []analytics.SubjectStats) [][]any {
	rows := [][]any{{"Subject", "Max marks", "Mean", "Median", "Std dev", "Min", "Max", "P25", "P50", "P75", "P90", "Pass rate %", "Passed", "Scored"}}

	for _, st := range all {
		rows = append(rows, []any{
			st.Subject.Name,
			st.Subject.MaxMarks,
			stats.Round(st.Mean, 2),
			stats.Round(st.Median, 2),
			stats.Round(st.StdDev, 2),
			st.Min,
			st.Max,
			stats.Round(st.Percentiles.P25, 2),
			stats.Round(st.Percentiles.P50, 2),
			stats.Round(st.Percentiles.P75, 2),
			stats.Round(st.Percentiles.P90, 2),
			stats.Round(st.PassRate, 2),
			st.Passed,
			st.Total,
		})
	}

	return rows
}

func standingRows(board []views.LeaderboardRow) [][]any {
	rows := [][]any{{"Rank", "USN", "Name", "Elective", "Total", "Percentage", "Grade"}}

	for _, row := range board {
		rows = append(rows, []any{row.Rank, row.USN, row.Name, row.Elective, row.Total, row.Percentage, row.Grade.String()})
	}

	return rows
}

func electiveRows(electives []views.ElectiveRow) [][]any {
	rows := [][]any{{"Elective", "Enrolled", "Average", "Pass rate %"}}

	for _, row := range electives {
		rows = append(rows, []any{row.Elective, row.Count, row.Average, row.PassRate})
	}

	return rows
}

func correlationRows(pairs []analytics.CorrelationPair) [][]any {
	rows := [][]any{{"Subject", "Subject", "r", "Strength"}}

	for _, p := range pairs {
		rows = append(rows, []any{shortName(p.X), shortName(p.Y), stats.Round(p.Value, 4), p.Strength()})
	}

	return rows
}
