package views

import (
	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// electivePassScore is the raw pass mark of every elective.
const electivePassScore = 40

// ElectiveRow compares one elective against the others.
type ElectiveRow struct {
	Elective string  `json:"elective"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
	PassRate int     `json:"passRate"`
}

// ElectiveComparison returns one row per offered elective: the mean score to
// one decimal, the enrollment, and the rounded pass rate over scored
// students. Electives nobody took report zeros.
func ElectiveComparison(students []cohort.Student) []ElectiveRow {
	out := make([]ElectiveRow, 0, len(subject.Electives()))

	for _, e := range subject.Electives() {
		enrolled := StudentsByElective(students, e)
		scores := electiveScores(enrolled)

		var passed int

		for _, s := range scores {
			if s >= electivePassScore {
				passed++
			}
		}

		out = append(out, ElectiveRow{
			Elective: e.String(),
			Average:  stats.Round(stats.Mean(scores), 1),
			Count:    len(enrolled),
			PassRate: stats.RoundInt(stats.Ratio(passed, len(scores))),
		})
	}

	return out
}

// ElectiveSummary is descriptive statistics over one elective's scores.
type ElectiveSummary struct {
	Course   subject.ElectiveCourse `json:"course"`
	Enrolled int                    `json:"enrolled"`
	Scored   int                    `json:"scored"`
	Mean     float64                `json:"mean"`
	Median   float64                `json:"median"`
	StdDev   float64                `json:"stdDev"`
	Min      float64                `json:"min"`
	Max      float64                `json:"max"`
}

// SummarizeElective computes ElectiveSummary for e.
func SummarizeElective(students []cohort.Student, e subject.ElectiveCourse) ElectiveSummary {
	enrolled := StudentsByElective(students, e)
	scores := electiveScores(enrolled)
	mean, stddev := stats.MeanStdDev(scores)

	return ElectiveSummary{
		Course:   e,
		Enrolled: len(enrolled),
		Scored:   len(scores),
		Mean:     mean,
		Median:   stats.Median(scores),
		StdDev:   stddev,
		Min:      stats.Min(scores),
		Max:      stats.Max(scores),
	}
}

// ElectiveTopPerformers ranks e's students with a present elective score.
func ElectiveTopPerformers(students []cohort.Student, e subject.ElectiveCourse, limit int) []SubjectRankRow {
	return SubjectRanking(StudentsByElective(students, e), subject.Elective, limit)
}

// StrongestElective returns the elective with the highest mean score; ties
// resolve to the earlier course in display order.
func StrongestElective(students []cohort.Student) subject.ElectiveCourse {
	best := subject.CloudComputing
	bestMean := -1.0

	for _, e := range subject.Electives() {
		mean := stats.Mean(electiveScores(StudentsByElective(students, e)))
		if mean > bestMean {
			best, bestMean = e, mean
		}
	}

	return best
}

func electiveScores(students []cohort.Student) []float64 {
	scores := make([]float64, 0, len(students))

	for _, s := range students {
		if v, ok := s.Elective().Score.Get(); ok {
			scores = append(scores, v)
		}
	}

	return scores
}
