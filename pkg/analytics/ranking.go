package analytics

import (
	"cmp"
	"slices"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
)

// CompareStanding orders students by descending percentage, breaking ties by
// ascending ID so that ranks are stable across loads.
func CompareStanding(a, b cohort.Student) int {
	if c := cmp.Compare(b.Percentage(), a.Percentage()); c != 0 {
		return c
	}

	return cmp.Compare(a.USN(), b.USN())
}

// Standings returns a copy of students in rank order.
func Standings(students []cohort.Student) []cohort.Student {
	sorted := slices.Clone(students)
	slices.SortStableFunc(sorted, CompareStanding)

	return sorted
}

// Rank returns the 1-based position of student in the standings of all.
// It returns 0 when the student is not part of all.
func Rank(student cohort.Student, all []cohort.Student) int {
	for i, s := range Standings(all) {
		if s.USN() == student.USN() {
			return i + 1
		}
	}

	return 0
}

// Ranks returns the rank of every student keyed by ID.
func Ranks(all []cohort.Student) map[string]int {
	out := make(map[string]int, len(all))

	for i, s := range Standings(all) {
		out[s.USN()] = i + 1
	}

	return out
}

// PercentileRank returns the share of students in all, in percent, whose
// percentage is strictly below the student's. Tied students share a value.
func PercentileRank(student cohort.Student, all []cohort.Student) float64 {
	var below int

	for _, s := range all {
		if s.Percentage() < student.Percentage() {
			below++
		}
	}

	return stats.Ratio(below, len(all))
}
