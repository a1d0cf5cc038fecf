package dashboard

import (
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Overview builds the landing page: headline numbers, grade and elective
// breakdowns, subject averages and the leaderboard.
func (b *Builder) Overview() *plotpage.Page {
	ov := analytics.Overview(b.students)
	page := b.newPage(PageOverview, "Class Overview", "Headline results for the whole cohort.")

	top := plotpage.NewStat("Top student", "-")
	if ov.TopStudent != nil {
		top = plotpage.NewStat("Top student", ov.TopStudent.Name()).
			WithDetail(ov.TopStudent.USN()+" · "+pct(ov.TopStudent.Percentage()), plotpage.ToneAccent)
	}

	page.Add(
		plotpage.Section{
			Chart: plotpage.NewGrid(4,
				plotpage.NewStat("Students", count(ov.TotalStudents)),
				plotpage.NewStat("Class average", pct(ov.AveragePercentage)).
					WithDetail("range "+pct(ov.LowestPercentage)+" to "+pct(ov.HighestPercentage), plotpage.ToneDefault),
				plotpage.NewStat("Passed", count(ov.Passed)).
					WithDetail(count(ov.Failed)+" failed", failTone(ov.Failed)),
				top,
			),
		},
		plotpage.Section{
			Title:    "Grade Distribution",
			Subtitle: "Students per overall grade.",
			Chart:    b.datumBar("Students", views.GradeSeries(ov.GradeDistribution), "Students"),
			Hint: plotpage.Hint{
				Title: "Grade bands:",
				Items: []string{
					"<strong>O</strong> 90% and above, <strong>A+</strong> 80%, <strong>A</strong> 70%, <strong>B+</strong> 60%",
					"<strong>B</strong> 50%, <strong>C</strong> 40%, <strong>F</strong> below 40%",
				},
			},
		},
		plotpage.Section{
			Title: "Subjects and Electives",
			Chart: plotpage.NewGrid(2,
				plotpage.NewCard("Subject averages", "Class mean as a percentage of each subject's maximum").
					WithContent(plotpage.WrapChart(b.datumBar("Average %", views.SubjectAverages(b.students), "%"))),
				plotpage.NewCard("Elective enrollment", "Students per elective").
					WithContent(plotpage.WrapChart(b.datumPie("Electives", views.ElectiveEnrollment(b.students)))),
			),
		},
		plotpage.Section{
			Title:    "Top Students",
			Subtitle: "Ranked by overall percentage; ties go to the lower USN.",
			Chart:    b.leaderboardTable(views.Leaderboard(b.students, b.opts.TopN)),
		},
	)

	return page
}

func failTone(failed int) plotpage.Tone {
	if failed > 0 {
		return plotpage.ToneError
	}

	return plotpage.ToneSuccess
}

func (b *Builder) leaderboardTable(rows []views.LeaderboardRow) *plotpage.Table {
	table := plotpage.NewTable("Rank", "USN", "Name", "Elective", "Total", "Percentage", "Grade")

	for _, r := range rows {
		table.AddHTMLRow(
			esc(count(r.Rank)),
			esc(r.USN),
			esc(r.Name),
			esc(r.Elective),
			esc(num(r.Total)),
			esc(pct(r.Percentage)),
			gradeBadge(r.Grade),
		)
	}

	return table
}
