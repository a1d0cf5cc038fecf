package analytics

import (
	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// ElectiveCounts maps each offered elective to its enrollment.
type ElectiveCounts map[subject.ElectiveCourse]int

// ElectiveEnrollment partitions students by elective course. Every offered
// course is present in the result.
func ElectiveEnrollment(students []cohort.Student) ElectiveCounts {
	counts := make(ElectiveCounts, len(subject.Electives()))

	for _, e := range subject.Electives() {
		counts[e] = 0
	}

	for _, s := range students {
		switch course := s.Elective().Course; course {
		case subject.CloudComputing, subject.NLP, subject.QuantumComputing:
			counts[course]++
		}
	}

	return counts
}

// ClassOverview is the headline summary of a cohort.
type ClassOverview struct {
	TotalStudents     int               `json:"totalStudents"`
	AveragePercentage float64           `json:"averagePercentage"`
	HighestPercentage float64           `json:"highestPercentage"`
	LowestPercentage  float64           `json:"lowestPercentage"`
	TopStudent        *cohort.Student   `json:"topStudent,omitempty"`
	GradeDistribution GradeDistribution `json:"gradeDistribution"`
	Electives         ElectiveCounts    `json:"electiveDistribution"`
	Passed            int               `json:"passed"`
	Failed            int               `json:"failed"`
}

// Overview summarizes students. An empty collection yields zero values and no
// top student.
func Overview(students []cohort.Student) ClassOverview {
	percentages := make([]float64, 0, len(students))

	var passed int

	for _, s := range students {
		percentages = append(percentages, s.Percentage())

		if s.Grade().Passing() {
			passed++
		}
	}

	overview := ClassOverview{
		TotalStudents:     len(students),
		AveragePercentage: stats.Mean(percentages),
		HighestPercentage: stats.Max(percentages),
		LowestPercentage:  stats.Min(percentages),
		GradeDistribution: GradeDistributionOf(percentages),
		Electives:         ElectiveEnrollment(students),
		Passed:            passed,
		Failed:            len(students) - passed,
	}

	if standings := Standings(students); len(standings) > 0 {
		top := standings[0]
		overview.TopStudent = &top
	}

	return overview
}
