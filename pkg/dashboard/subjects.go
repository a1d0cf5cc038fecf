package dashboard

import (
	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Subjects builds the subject analysis page.
func (b *Builder) Subjects() *plotpage.Page {
	all := analytics.AllSubjectStats(b.students)
	page := b.newPage(PageSubjects, "Subject Analysis", "Descriptive statistics for each subject and the elective.")

	tabs := make([]plotpage.TabItem, 0, len(all))
	for _, st := range all {
		tabs = append(tabs, plotpage.TabItem{
			ID:      "subject-" + string(st.Subject.Key),
			Label:   st.Subject.ShortName,
			Content: b.subjectDetail(st),
		})
	}

	page.Add(
		plotpage.Section{
			Title:    "Average, Highest and Lowest",
			Subtitle: "Normalized to a 0-100 scale so subjects with different maximums compare.",
			Chart:    b.comparisonChart(views.SubjectComparison(b.students)),
		},
		plotpage.Section{
			Title:    "Summary Statistics",
			Subtitle: "Raw marks; pass mark is 40% of the subject maximum.",
			Chart:    subjectStatsTable(all),
			Hint: plotpage.Hint{
				Title: "How to read:",
				Items: []string{
					"<strong>Std dev</strong> is the population standard deviation of present scores",
					"<strong>P25 / P75 / P90</strong> use linear interpolation between ranks",
					"Absent scores are excluded from every column",
				},
			},
		},
		plotpage.Section{
			Title: "Per Subject",
			Chart: plotpage.NewTabs("subject-tabs", tabs...),
		},
	)

	return page
}

func (b *Builder) comparisonChart(rows []views.ComparisonRow) plotpage.Renderable {
	labels := make([]string, len(rows))
	avg := make([]plotpage.SeriesData, len(rows))
	high := make([]plotpage.SeriesData, len(rows))
	low := make([]plotpage.SeriesData, len(rows))

	for i, r := range rows {
		labels[i] = r.Subject
		avg[i] = r.Average
		high[i] = r.Highest
		low[i] = r.Lowest
	}

	return plotpage.BuildBarChart(b.chart, labels, []plotpage.BarSeries{
		{Name: "Average", Data: avg, Color: b.chart.AccentColor()},
		{Name: "Highest", Data: high, Color: subject.GradeO.ChartColor()},
		{Name: "Lowest", Data: low, Color: subject.GradeF.ChartColor()},
	}, "%")
}

func subjectStatsTable(all []analytics.SubjectStats) *plotpage.Table {
	table := plotpage.NewTable("Subject", "Max", "Mean", "Median", "Std dev", "Min", "Max scored",
		"P25", "P75", "P90", "Pass rate", "Passed")

	for _, st := range all {
		table.AddRow(
			st.Subject.Name,
			num(st.Subject.MaxMarks),
			num(stats.Round(st.Mean, 1)),
			num(stats.Round(st.Median, 1)),
			num(stats.Round(st.StdDev, 2)),
			num(st.Min),
			num(st.Max),
			num(stats.Round(st.Percentiles.P25, 1)),
			num(stats.Round(st.Percentiles.P75, 1)),
			num(stats.Round(st.Percentiles.P90, 1)),
			pct(st.PassRate),
			count(st.Passed)+" / "+count(st.Total),
		)
	}

	return table
}

func (b *Builder) subjectDetail(st analytics.SubjectStats) plotpage.Renderable {
	d := st.Subject

	return plotpage.Rows{
		plotpage.NewGrid(4,
			plotpage.NewStat("Mean", num(stats.Round(st.Mean, 1))+" / "+num(d.MaxMarks)),
			plotpage.NewStat("Median", num(stats.Round(st.Median, 1))),
			plotpage.NewStat("Pass rate", pct(st.PassRate)).WithDetail(count(st.Passed)+" passed", plotpage.ToneSuccess),
			plotpage.NewStat("Students scored", count(st.Total)),
		),
		plotpage.NewGrid(2,
			plotpage.NewCard("Grades", "Per-subject grade from the normalized score").
				WithContent(plotpage.WrapChart(b.datumBar("Students", views.GradeSeries(st.Distribution), "Students"))),
			plotpage.NewCard("Score ranges", "Equal-width buckets of raw marks").
				WithContent(plotpage.WrapChart(bucketBar(b, d.ShortName, views.SubjectBuckets(b.students, d.Key, b.opts.BucketCount), d.ChartColor))),
		),
		plotpage.NewCard("Leaders", "Best "+count(b.opts.TopN)+" in "+d.Name).
			WithContent(subjectRankTable(views.SubjectRanking(b.students, d.Key, b.opts.TopN))),
	}
}

func subjectRankTable(rows []views.SubjectRankRow) *plotpage.Table {
	table := plotpage.NewTable("Rank", "USN", "Name", "Score", "Subject %", "Overall %", "Grade")

	for _, r := range rows {
		table.AddHTMLRow(
			esc(count(r.Rank)),
			esc(r.USN),
			esc(r.Name),
			esc(num(r.Score)),
			esc(pct(r.Percentage)),
			esc(pct(r.Overall)),
			gradeBadge(r.Grade),
		)
	}

	return table
}
