// Package analytics derives class-level statistics from a student collection:
// per-subject summaries, grade distributions, standings, correlations and
// box-plot figures. Every function is pure and tolerates empty input.
package analytics

import (
	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// GradeDistribution counts occurrences of each of the seven grades.
// Every grade key is always present, zero or not.
type GradeDistribution map[subject.Grade]int

// NewGradeDistribution returns a distribution with every grade at zero.
func NewGradeDistribution() GradeDistribution {
	d := make(GradeDistribution, len(subject.Grades()))

	for _, g := range subject.Grades() {
		d[g] = 0
	}

	return d
}

// Total returns the sum of all counts.
func (d GradeDistribution) Total() int {
	var total int

	for _, n := range d {
		total += n
	}

	return total
}

// GradeDistributionOf buckets percentages by grade.
func GradeDistributionOf(percentages []float64) GradeDistribution {
	d := NewGradeDistribution()

	for _, pct := range percentages {
		d[subject.GradeFor(pct)]++
	}

	return d
}

// SubjectGradeDistribution buckets raw scores by grade after normalizing
// them against maxMarks.
func SubjectGradeDistribution(scores []float64, maxMarks float64) GradeDistribution {
	d := NewGradeDistribution()
	desc := subject.Descriptor{MaxMarks: maxMarks}

	for _, s := range scores {
		d[subject.GradeFor(desc.Normalize(s))]++
	}

	return d
}

// SubjectScores returns the present scores for key, in input order.
func SubjectScores(students []cohort.Student, key subject.Key) []float64 {
	scores := make([]float64, 0, len(students))

	for _, s := range students {
		if v, ok := s.Score(key).Get(); ok {
			scores = append(scores, v)
		}
	}

	return scores
}

// SubjectStats summarizes one subject. Central tendency and spread are on
// raw marks; PassRate and Distribution use the normalized percentage.
type SubjectStats struct {
	Subject      subject.Descriptor `json:"subject"`
	Mean         float64            `json:"mean"`
	Median       float64            `json:"median"`
	StdDev       float64            `json:"stdDev"`
	Min          float64            `json:"min"`
	Max          float64            `json:"max"`
	PassRate     float64            `json:"passRate"`
	Total        int                `json:"totalStudents"`
	Passed       int                `json:"passedStudents"`
	Distribution GradeDistribution  `json:"distribution"`
	Percentiles  stats.Percentiles  `json:"percentiles"`
}

// SubjectStatsFor computes the summary for key. A student passes when the raw
// score is at least 40% of the subject maximum.
func SubjectStatsFor(students []cohort.Student, key subject.Key) SubjectStats {
	desc := subject.MustLookup(key)
	scores := SubjectScores(students, key)
	passMark := desc.PassMark()

	var passed int

	for _, s := range scores {
		if s >= passMark {
			passed++
		}
	}

	mean, stddev := stats.MeanStdDev(scores)

	return SubjectStats{
		Subject:      desc,
		Mean:         mean,
		Median:       stats.Median(scores),
		StdDev:       stddev,
		Min:          stats.Min(scores),
		Max:          stats.Max(scores),
		PassRate:     stats.Ratio(passed, len(scores)),
		Total:        len(scores),
		Passed:       passed,
		Distribution: SubjectGradeDistribution(scores, desc.MaxMarks),
		Percentiles:  stats.Quartiles(scores),
	}
}

// AllSubjectStats returns SubjectStatsFor every subject in canonical order.
func AllSubjectStats(students []cohort.Student) []SubjectStats {
	out := make([]SubjectStats, 0, len(subject.Keys()))

	for _, key := range subject.Keys() {
		out = append(out, SubjectStatsFor(students, key))
	}

	return out
}

// ClassAverages returns the raw mean score of every subject.
func ClassAverages(students []cohort.Student) map[subject.Key]float64 {
	out := make(map[subject.Key]float64, len(subject.Keys()))

	for _, key := range subject.Keys() {
		out[key] = stats.Mean(SubjectScores(students, key))
	}

	return out
}
