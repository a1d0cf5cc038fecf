// Package views shapes analytics output into the series, rows and points the
// rendering layers consume. Views only round and label; they never fail on
// empty or partial input.
package views

import (
	"fmt"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// FullMark is the top of every normalized scale.
const FullMark = 100

// Cumulative distribution thresholds, in percent.
const (
	cumulativeStep = 5
	cumulativeMax  = 100
)

// BarDatum is one labeled value of a bar or pie series.
type BarDatum struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"fill,omitempty"`
}

// SubjectAverages returns each subject's class mean normalized to 0-100 and
// rounded to one decimal, so subjects with different maximums compare.
func SubjectAverages(students []cohort.Student) []BarDatum {
	out := make([]BarDatum, 0, len(subject.Keys()))

	for _, st := range analytics.AllSubjectStats(students) {
		out = append(out, BarDatum{
			Name:  st.Subject.ShortName,
			Value: stats.Round(st.Subject.Normalize(st.Mean), 1),
			Color: st.Subject.ChartColor,
		})
	}

	return out
}

// GradeSeries converts a distribution into one datum per grade in canonical
// order, zero counts included.
func GradeSeries(dist analytics.GradeDistribution) []BarDatum {
	out := make([]BarDatum, 0, len(subject.Grades()))

	for _, g := range subject.Grades() {
		out = append(out, BarDatum{
			Name:  g.String(),
			Value: float64(dist[g]),
			Color: g.ChartColor(),
		})
	}

	return out
}

// ElectiveEnrollment returns the head count of each offered elective.
func ElectiveEnrollment(students []cohort.Student) []BarDatum {
	counts := analytics.ElectiveEnrollment(students)
	out := make([]BarDatum, 0, len(counts))

	for _, e := range subject.Electives() {
		out = append(out, BarDatum{Name: e.String(), Value: float64(counts[e]), Color: e.ChartColor()})
	}

	return out
}

// CumulativeDistribution returns, for thresholds 0%, 5%, ... 100%, the share
// of students (rounded percent) whose overall percentage is at or below it.
func CumulativeDistribution(students []cohort.Student) []BarDatum {
	out := make([]BarDatum, 0, cumulativeMax/cumulativeStep+1)

	for pct := 0; pct <= cumulativeMax; pct += cumulativeStep {
		var atOrBelow int

		for _, s := range students {
			if s.Percentage() <= float64(pct) {
				atOrBelow++
			}
		}

		out = append(out, BarDatum{
			Name:  fmt.Sprintf("%d%%", pct),
			Value: float64(stats.RoundInt(stats.Ratio(atOrBelow, len(students)))),
		})
	}

	return out
}

// ComparisonRow holds a subject's normalized class average and extremes.
type ComparisonRow struct {
	Subject string `json:"subject"`
	Average int    `json:"average"`
	Highest int    `json:"highest"`
	Lowest  int    `json:"lowest"`
}

// SubjectComparison returns normalized average, highest and lowest scores per
// subject, rounded to integers.
func SubjectComparison(students []cohort.Student) []ComparisonRow {
	out := make([]ComparisonRow, 0, len(subject.Keys()))

	for _, st := range analytics.AllSubjectStats(students) {
		out = append(out, ComparisonRow{
			Subject: st.Subject.ShortName,
			Average: stats.RoundInt(st.Subject.Normalize(st.Mean)),
			Highest: stats.RoundInt(st.Subject.Normalize(st.Max)),
			Lowest:  stats.RoundInt(st.Subject.Normalize(st.Min)),
		})
	}

	return out
}

// RadarPoint compares one student against the class on one subject.
type RadarPoint struct {
	Subject      string `json:"subject"`
	Student      int    `json:"student"`
	ClassAverage int    `json:"classAverage"`
	FullMark     int    `json:"fullMark"`
}

// RadarProfile returns the student's normalized score (0 when absent) and the
// class's normalized average for each subject. classAverages holds raw means,
// as returned by analytics.ClassAverages.
func RadarProfile(student cohort.Student, classAverages map[subject.Key]float64) []RadarPoint {
	out := make([]RadarPoint, 0, len(subject.Keys()))

	for _, d := range subject.Descriptors() {
		out = append(out, RadarPoint{
			Subject:      d.ShortName,
			Student:      stats.Clamp(stats.RoundInt(student.Normalized(d.Key)), 0, FullMark),
			ClassAverage: stats.Clamp(stats.RoundInt(d.Normalize(classAverages[d.Key])), 0, FullMark),
			FullMark:     FullMark,
		})
	}

	return out
}

// HeatCell is one cell of the correlation heat map, indexed by subject position.
type HeatCell struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Value float64 `json:"value"`
}

// CorrelationCells flattens a matrix into heat-map cells rounded to two decimals.
func CorrelationCells(m analytics.CorrelationMatrix) []HeatCell {
	out := make([]HeatCell, 0, len(m.Keys)*len(m.Keys))

	for i := range m.Keys {
		for j := range m.Keys {
			out = append(out, HeatCell{X: i, Y: j, Value: stats.Round(m.Values[i][j], 2)})
		}
	}

	return out
}
