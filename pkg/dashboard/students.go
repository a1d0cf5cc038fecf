package dashboard

import (
	"net/url"
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Students builds the lookup page. query filters the result list; usn
// selects the student whose profile is shown. A query matching exactly one
// student selects that student.
func (b *Builder) Students(query, usn string) *plotpage.Page {
	page := b.newPage(PageStudents, "Student Lookup", "Find a student by name or USN.")
	query = strings.TrimSpace(query)
	matches := views.Search(b.students, query)

	if b.opts.SearchAction != "" {
		page.Add(plotpage.Section{Title: "Search", Chart: b.searchForm(query, matches)})
	}

	if usn == "" && len(matches) == 1 {
		usn = matches[0].USN()
	}

	switch selected, ok := b.ds.Lookup(usn); {
	case ok:
		page.Add(b.profileSections(views.Profile(selected, b.students))...)
	case usn != "":
		page.Add(plotpage.Section{
			Chart: plotpage.NewAlert("Not found", "No student with USN "+usn+".", plotpage.ToneError),
		})
	case query != "" && len(matches) == 0:
		page.Add(plotpage.Section{
			Chart: plotpage.NewAlert("No matches", searchHelp(query), plotpage.ToneInfo),
		})
	}

	page.Add(plotpage.Section{
		Title:    "All Students",
		Subtitle: "Full standings by overall percentage.",
		Chart:    b.leaderboardTable(views.Leaderboard(b.students, len(b.students))),
	})

	return page
}

func searchHelp(query string) string {
	if len([]rune(query)) < views.MinSearchLength {
		return "Type at least two characters of a name or USN."
	}

	return "Nothing matches \"" + query + "\"."
}

func (b *Builder) searchForm(query string, matches []cohort.Student) *plotpage.SearchForm {
	form := plotpage.NewSearchForm(b.opts.SearchAction, "q", query)
	form.Placeholder = "Name or USN"

	for i, s := range matches {
		if i == b.opts.SearchLimit {
			break
		}

		form.AddResult(s.Name()+" ("+s.USN()+")", b.opts.SearchAction, url.Values{"q": {query}, "usn": {s.USN()}})
	}

	return form
}

func (b *Builder) profileSections(p views.StudentProfile) []plotpage.Section {
	s := p.Student

	return []plotpage.Section{
		{
			Title:    s.Name(),
			Subtitle: s.USN() + " · " + s.Elective().Course.String(),
			Chart: plotpage.NewGrid(4,
				plotpage.NewStat("Total", num(s.Total())+" / "+num(subject.TotalMaxMarks())),
				plotpage.NewStat("Percentage", pct(s.Percentage())).WithDetail("Grade "+s.Grade().String(), gradeTone(s.Grade())),
				plotpage.NewStat("Rank", ordinalOf(p.Rank, p.ClassSize)),
				plotpage.NewStat("Percentile", pct(p.PercentileRank)).WithDetail("of classmates scored lower", plotpage.ToneDefault),
			),
		},
		{
			Title:    "Subject Breakdown",
			Subtitle: "Marks against each subject's maximum and the class average.",
			Chart: plotpage.NewGrid(2,
				profileTable(p.Subjects),
				plotpage.WrapChart(b.radar(p.Radar)),
			),
		},
	}
}

func profileTable(lines []views.SubjectLine) *plotpage.Table {
	table := plotpage.NewTable("Subject", "Score", "Max", "%", "Class avg %", "Grade")

	for _, l := range lines {
		grade := gradeBadge(l.Grade)
		if !l.Score.IsPresent() {
			grade = esc("absent")
		}

		table.AddHTMLRow(esc(l.Label), scoreCell(l.Score), esc(num(l.MaxMarks)), esc(pct(l.Percentage)), esc(pct(l.ClassAverage)), grade)
	}

	return table
}

func (b *Builder) radar(points []views.RadarPoint) plotpage.Renderable {
	axes := make([]plotpage.RadarAxis, len(points))
	student := make([]float64, len(points))
	class := make([]float64, len(points))

	for i, p := range points {
		axes[i] = plotpage.RadarAxis{Name: p.Subject, Max: float64(p.FullMark)}
		student[i] = float64(p.Student)
		class[i] = float64(p.ClassAverage)
	}

	return plotpage.BuildRadarChart(b.chart, axes, []plotpage.RadarSeries{
		{Name: "Student", Values: student, Color: b.chart.AccentColor()},
		{Name: "Class average", Values: class, Color: b.chart.MutedColor()},
	})
}

func gradeTone(g subject.Grade) plotpage.Tone {
	switch {
	case !g.Passing():
		return plotpage.ToneError
	case g.MinPercent() >= subject.GradeA.MinPercent():
		return plotpage.ToneSuccess
	default:
		return plotpage.ToneWarning
	}
}
