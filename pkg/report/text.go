package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

const msgNoStudents = "No student data available"

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Title.Align = text.AlignLeft

	return tbl
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func num(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// WriteText writes the class report as terminal tables.
func (r *Reporter) WriteText(w io.Writer) error {
	s := r.Summary()

	parts := []string{r.palette.title.Sprintf("=== %s ===", strings.ToUpper(headerTitle(s.Title)))}

	if s.Overview.TotalStudents == 0 {
		parts = append(parts, msgNoStudents)
	} else {
		parts = append(parts,
			r.overviewTable(s.Overview),
			r.gradeTable(s.Overview.GradeDistribution),
			r.subjectTable(s.Subjects),
			r.leaderboardTable(s.Leaderboard),
			r.electiveTable(s.Electives),
			correlationTable(s.Correlation),
		)
	}

	_, err := io.WriteString(w, strings.Join(parts, "\n\n")+"\n")
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func headerTitle(title string) string {
	if title == "" {
		return "class report"
	}

	return title
}

func (r *Reporter) overviewTable(ov analytics.ClassOverview) string {
	tbl := newTable("Overview")
	tbl.AppendRows([]table.Row{
		{"Students", humanize.Comma(int64(ov.TotalStudents))},
		{"Average", pct(ov.AveragePercentage)},
		{"Highest", pct(ov.HighestPercentage)},
		{"Lowest", pct(ov.LowestPercentage)},
		{"Passed", humanize.Comma(int64(ov.Passed))},
		{"Failed", r.palette.bad.Sprint(humanize.Comma(int64(ov.Failed)))},
	})

	if ov.TopStudent != nil {
		tbl.AppendRow(table.Row{"Top student", fmt.Sprintf("%s (%s) %s", ov.TopStudent.Name(), ov.TopStudent.USN(), pct(ov.TopStudent.Percentage()))})
	}

	return tbl.Render()
}

func (r *Reporter) gradeTable(dist analytics.GradeDistribution) string {
	tbl := newTable("Grades")
	tbl.AppendHeader(table.Row{"Grade", "Min %", "Students"})

	for _, g := range subject.Grades() {
		tbl.AppendRow(table.Row{r.palette.grade(g), g.MinPercent(), dist[g]})
	}

	tbl.AppendFooter(table.Row{"", "Total", dist.Total()})

	return tbl.Render()
}

func (r *Reporter) subjectTable(all []analytics.SubjectStats) string {
	tbl := newTable("Subjects")
	tbl.AppendHeader(table.Row{"Subject", "Max", "Mean", "Median", "Std dev", "Min", "Max scored", "P90", "Pass rate", "Scored"})

	for _, st := range all {
		tbl.AppendRow(table.Row{
			st.Subject.ShortName,
			num(st.Subject.MaxMarks),
			num(stats.Round(st.Mean, 1)),
			num(stats.Round(st.Median, 1)),
			num(stats.Round(st.StdDev, 2)),
			num(st.Min),
			num(st.Max),
			num(stats.Round(st.Percentiles.P90, 1)),
			r.palette.passRate(st.PassRate, pct(st.PassRate)),
			st.Total,
		})
	}

	return tbl.Render()
}

func (r *Reporter) leaderboardTable(rows []views.LeaderboardRow) string {
	tbl := newTable(fmt.Sprintf("Top %d", len(rows)))
	tbl.AppendHeader(table.Row{"Rank", "USN", "Name", "Elective", "Total", "%", "Grade"})

	for _, row := range rows {
		tbl.AppendRow(table.Row{
			humanize.Ordinal(row.Rank),
			row.USN,
			row.Name,
			row.Elective,
			num(row.Total),
			pct(row.Percentage),
			r.palette.grade(row.Grade),
		})
	}

	return tbl.Render()
}

func (r *Reporter) electiveTable(rows []views.ElectiveRow) string {
	tbl := newTable("Electives")
	tbl.AppendHeader(table.Row{"Elective", "Enrolled", "Average", "Pass rate"})

	for _, row := range rows {
		tbl.AppendRow(table.Row{
			row.Elective,
			row.Count,
			num(row.Average),
			r.palette.passRate(float64(row.PassRate), strconv.Itoa(row.PassRate)+"%"),
		})
	}

	return tbl.Render()
}

func correlationTable(pairs []analytics.CorrelationPair) string {
	tbl := newTable("Correlation")
	tbl.AppendHeader(table.Row{"Pair", "r", "Strength"})

	for _, p := range pairs {
		tbl.AppendRow(table.Row{
			shortName(p.X) + " / " + shortName(p.Y),
			strconv.FormatFloat(stats.Round(p.Value, 2), 'f', 2, 64),
			p.Strength(),
		})
	}

	return tbl.Render()
}

func shortName(k subject.Key) string {
	return subject.MustLookup(k).ShortName
}

// WriteStudentText writes one student's profile.
func (r *Reporter) WriteStudentText(w io.Writer, usn string) error {
	p, err := r.Profile(usn)
	if err != nil {
		return err
	}

	s := p.Student

	head := newTable(fmt.Sprintf("%s (%s)", s.Name(), s.USN()))
	head.AppendRows([]table.Row{
		{"Elective", s.Elective().Course.String()},
		{"Total", num(s.Total()) + " / " + num(subject.TotalMaxMarks())},
		{"Percentage", pct(s.Percentage())},
		{"Grade", r.palette.grade(s.Grade())},
		{"Rank", fmt.Sprintf("%s of %d", humanize.Ordinal(p.Rank), p.ClassSize)},
		{"Percentile", pct(p.PercentileRank)},
	})

	lines := newTable("Subjects")
	lines.AppendHeader(table.Row{"Subject", "Score", "Max", "%", "Class avg %", "Grade"})

	for _, l := range p.Subjects {
		grade := r.palette.subdued.Sprint("absent")
		if l.Score.IsPresent() {
			grade = r.palette.grade(l.Grade)
		}

		lines.AppendRow(table.Row{l.Label, l.Score.String(), num(l.MaxMarks), pct(l.Percentage), pct(l.ClassAverage), grade})
	}

	_, err = io.WriteString(w, head.Render()+"\n\n"+lines.Render()+"\n")
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	return nil
}
