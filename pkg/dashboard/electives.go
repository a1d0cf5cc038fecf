package dashboard

import (
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Electives builds the elective comparison page.
func (b *Builder) Electives() *plotpage.Page {
	rows := views.ElectiveComparison(b.students)
	page := b.newPage(PageElectives, "Elective Analysis", "Cloud Computing, NLP and Quantum Computing side by side.")

	strongest := views.StrongestElective(b.students)

	tabs := make([]plotpage.TabItem, 0, len(subject.Electives()))
	for _, e := range subject.Electives() {
		tabs = append(tabs, plotpage.TabItem{
			ID:      "elective-" + slug(e.String()),
			Label:   e.String(),
			Content: subjectRankTable(views.ElectiveTopPerformers(b.students, e, b.opts.TopN)),
		})
	}

	page.Add(
		plotpage.Section{
			Chart: plotpage.NewGrid(2,
				plotpage.NewStat("Highest elective average", strongest.String()).
					WithDetail(num(stats.Round(views.SummarizeElective(b.students, strongest).Mean, 1))+" mean", plotpage.ToneAccent),
				plotpage.NewStat("Electives offered", count(len(subject.Electives()))),
			),
		},
		plotpage.Section{
			Title: "Enrollment and Results",
			Chart: plotpage.NewGrid(2,
				plotpage.NewCard("Enrollment", "Students per elective").
					WithContent(plotpage.WrapChart(b.datumPie("Electives", views.ElectiveEnrollment(b.students)))),
				plotpage.NewCard("Average and pass rate", "Mean elective score and share scoring 40 or more").
					WithContent(plotpage.WrapChart(b.electiveChart(rows))),
			),
		},
		plotpage.Section{
			Title:    "Elective Statistics",
			Subtitle: "Scored counts exclude enrolled students without a mark.",
			Chart:    b.electiveTable(),
		},
		plotpage.Section{
			Title: "Top Performers",
			Chart: plotpage.NewTabs("elective-tabs", tabs...),
		},
	)

	return page
}

func (b *Builder) electiveChart(rows []views.ElectiveRow) plotpage.Renderable {
	labels := make([]string, len(rows))
	avg := make([]plotpage.SeriesData, len(rows))
	pass := make([]plotpage.SeriesData, len(rows))
	colors := make([]string, len(rows))

	for i, r := range rows {
		labels[i] = r.Elective
		avg[i] = r.Average
		pass[i] = r.PassRate
		colors[i] = subject.Electives()[i].ChartColor()
	}

	return plotpage.BuildBarChart(b.chart, labels, []plotpage.BarSeries{
		{Name: "Average", Data: avg, Colors: colors},
		{Name: "Pass rate %", Data: pass, Color: b.chart.MutedColor()},
	}, "Score / %")
}

func (b *Builder) electiveTable() *plotpage.Table {
	table := plotpage.NewTable("Elective", "Enrolled", "Scored", "Mean", "Median", "Std dev", "Min", "Max")

	for _, e := range subject.Electives() {
		s := views.SummarizeElective(b.students, e)
		table.AddHTMLRow(
			electiveBadge(e),
			esc(count(s.Enrolled)),
			esc(count(s.Scored)),
			esc(num(stats.Round(s.Mean, 1))),
			esc(num(stats.Round(s.Median, 1))),
			esc(num(stats.Round(s.StdDev, 2))),
			esc(num(s.Min)),
			esc(num(s.Max)),
		)
	}

	return table
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
