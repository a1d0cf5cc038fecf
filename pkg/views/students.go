package views

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/levenshtein"
	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// MinSearchLength is the shortest trimmed query Search will match.
const MinSearchLength = 2

// ScatterPoint is one student plotted on two normalized subject axes.
type ScatterPoint struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
	USN  string `json:"usn"`
}

// ScatterPoints returns a point per student with both scores present.
func ScatterPoints(students []cohort.Student, x, y subject.Key) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(students))

	for _, s := range students {
		if !s.Score(x).IsPresent() || !s.Score(y).IsPresent() {
			continue
		}

		out = append(out, ScatterPoint{
			X:    stats.RoundInt(s.Normalized(x)),
			Y:    stats.RoundInt(s.Normalized(y)),
			Name: s.Name(),
			USN:  s.USN(),
		})
	}

	return out
}

// TopStudents returns the n best students in standing order.
func TopStudents(students []cohort.Student, n int) []cohort.Student {
	if n <= 0 {
		return []cohort.Student{}
	}

	standings := analytics.Standings(students)

	return standings[:min(n, len(standings))]
}

// LeaderboardRow is one line of an overall leaderboard.
type LeaderboardRow struct {
	Rank       int           `json:"rank"`
	USN        string        `json:"usn"`
	Name       string        `json:"name"`
	Elective   string        `json:"elective"`
	Total      float64       `json:"totalMarks"`
	Percentage float64       `json:"percentage"`
	Grade      subject.Grade `json:"grade"`
}

// Leaderboard returns TopStudents as ranked rows.
func Leaderboard(students []cohort.Student, n int) []LeaderboardRow {
	top := TopStudents(students, n)
	out := make([]LeaderboardRow, 0, len(top))

	for i, s := range top {
		out = append(out, leaderboardRow(s, i+1))
	}

	return out
}

// SubjectRankRow is one line of a per-subject leaderboard.
type SubjectRankRow struct {
	Rank       int           `json:"rank"`
	USN        string        `json:"usn"`
	Name       string        `json:"name"`
	Score      float64       `json:"score"`
	Percentage float64       `json:"percentage"`
	Overall    float64       `json:"overall"`
	Grade      subject.Grade `json:"grade"`
}

// SubjectRanking ranks students with a present score for key by that score,
// highest first, ties by ID. The grade is the per-subject grade.
func SubjectRanking(students []cohort.Student, key subject.Key, limit int) []SubjectRankRow {
	scored := make([]cohort.Student, 0, len(students))

	for _, s := range students {
		if s.Score(key).IsPresent() {
			scored = append(scored, s)
		}
	}

	slices.SortStableFunc(scored, func(a, b cohort.Student) int {
		if c := cmp.Compare(b.Score(key).OrZero(), a.Score(key).OrZero()); c != 0 {
			return c
		}

		return cmp.Compare(a.USN(), b.USN())
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]SubjectRankRow, 0, len(scored))

	for i, s := range scored {
		pct := s.Normalized(key)

		out = append(out, SubjectRankRow{
			Rank:       i + 1,
			USN:        s.USN(),
			Name:       s.Name(),
			Score:      s.Score(key).OrZero(),
			Percentage: stats.Round(pct, 1),
			Overall:    stats.Round(s.Percentage(), 1),
			Grade:      subject.GradeFor(pct),
		})
	}

	return out
}

// StudentsByElective returns the students enrolled in e, in input order.
func StudentsByElective(students []cohort.Student, e subject.ElectiveCourse) []cohort.Student {
	out := make([]cohort.Student, 0)

	for _, s := range students {
		if s.Elective().Course == e {
			out = append(out, s)
		}
	}

	return out
}

// Search matches query case-insensitively against name or ID. Queries
// shorter than MinSearchLength after trimming match nothing.
func Search(students []cohort.Student, query string) []cohort.Student {
	needle := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(needle)) < MinSearchLength {
		return nil
	}

	var out []cohort.Student

	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name()), needle) || strings.Contains(strings.ToLower(s.USN()), needle) {
			out = append(out, s)
		}
	}

	return out
}

// SearchPage is a capped page of search matches.
type SearchPage struct {
	Total     int
	Truncated bool
	Rows      []LeaderboardRow
}

// SearchRows runs Search and returns at most limit matches, in input order,
// carrying each student's rank in the whole class. A non-positive limit
// returns every match.
func SearchRows(students []cohort.Student, query string, limit int) SearchPage {
	matches := Search(students, query)

	shown := matches
	if limit > 0 && len(matches) > limit {
		shown = matches[:limit]
	}

	ranks := analytics.Ranks(students)
	rows := make([]LeaderboardRow, 0, len(shown))

	for _, s := range shown {
		rows = append(rows, leaderboardRow(s, ranks[s.USN()]))
	}

	return SearchPage{
		Total:     len(matches),
		Truncated: len(shown) < len(matches),
		Rows:      rows,
	}
}

func leaderboardRow(s cohort.Student, rank int) LeaderboardRow {
	return LeaderboardRow{
		Rank:       rank,
		USN:        s.USN(),
		Name:       s.Name(),
		Elective:   s.Elective().Course.String(),
		Total:      s.Total(),
		Percentage: stats.Round(s.Percentage(), 2),
		Grade:      s.Grade(),
	}
}

// usnHintDistance bounds how far a mistyped ID may be from its suggestion.
const usnHintDistance = 2

// USNHint returns " (did you mean X?)" naming the ID closest to usn, or "" when
// no student is within a couple of edits.
func USNHint(students []cohort.Student, usn string) string {
	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.USN()
	}

	return levenshtein.Hint(usn, ids, usnHintDistance)
}

// SubjectLine is one subject row of a student profile.
type SubjectLine struct {
	Subject      subject.Key   `json:"subject"`
	Label        string        `json:"label"`
	Score        cohort.Score  `json:"score"`
	MaxMarks     float64       `json:"maxMarks"`
	Percentage   float64       `json:"percentage"`
	ClassAverage float64       `json:"classAverage"`
	Grade        subject.Grade `json:"grade"`
}

// StudentProfile is everything the student lookup page shows for one student.
type StudentProfile struct {
	Student        cohort.Student `json:"student"`
	Rank           int            `json:"rank"`
	ClassSize      int            `json:"classSize"`
	PercentileRank float64        `json:"percentileRank"`
	Subjects       []SubjectLine  `json:"subjects"`
	Radar          []RadarPoint   `json:"radar"`
}

// Profile builds the lookup view of student within all.
func Profile(student cohort.Student, all []cohort.Student) StudentProfile {
	averages := analytics.ClassAverages(all)
	lines := make([]SubjectLine, 0, len(subject.Keys()))

	for _, d := range subject.Descriptors() {
		score := student.Score(d.Key)
		pct := student.Normalized(d.Key)

		lines = append(lines, SubjectLine{
			Subject:      d.Key,
			Label:        d.ShortName,
			Score:        score,
			MaxMarks:     d.MaxMarks,
			Percentage:   stats.Round(pct, 1),
			ClassAverage: stats.Round(averages[d.Key], 1),
			Grade:        subject.GradeFor(pct),
		})
	}

	return StudentProfile{
		Student:        student,
		Rank:           analytics.Rank(student, all),
		ClassSize:      len(all),
		PercentileRank: stats.Round(analytics.PercentileRank(student, all), 1),
		Subjects:       lines,
		Radar:          RadarProfile(student, averages),
	}
}
