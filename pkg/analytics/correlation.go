package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// MinCorrelationPairs is the number of complete observations required before
// a coefficient is reported; below it the coefficient is 0.
const MinCorrelationPairs = 3

// Correlation strength thresholds on |r|.
const (
	strongThreshold   = 0.7
	moderateThreshold = 0.5
	weakThreshold     = 0.3
)

// ComputeCorrelation returns the Pearson coefficient between the normalized
// scores of x and y over students who have both.
func ComputeCorrelation(students []cohort.Student, x, y subject.Key) float64 {
	xs, ys := pairedPercentages(students, x, y)
	if len(xs) < MinCorrelationPairs {
		return 0
	}

	return stats.Correlation(xs, ys)
}

func pairedPercentages(students []cohort.Student, x, y subject.Key) (xs, ys []float64) {
	dx := subject.MustLookup(x)
	dy := subject.MustLookup(y)

	for _, s := range students {
		vx, okX := s.Score(x).Get()
		vy, okY := s.Score(y).Get()

		if !okX || !okY {
			continue
		}

		xs = append(xs, dx.Normalize(vx))
		ys = append(ys, dy.Normalize(vy))
	}

	return xs, ys
}

// CorrelationPair is the coefficient between two distinct subjects.
type CorrelationPair struct {
	X     subject.Key `json:"x"`
	Y     subject.Key `json:"y"`
	Value float64     `json:"value"`
}

// Strength returns the signed label for the pair.
func (p CorrelationPair) Strength() string {
	return Strength(p.Value)
}

// CorrelationMatrix holds the coefficient for every ordered subject pair.
type CorrelationMatrix struct {
	Keys   []subject.Key `json:"keys"`
	Values [][]float64   `json:"values"`
}

// NewCorrelationMatrix computes the full matrix over every subject.
func NewCorrelationMatrix(students []cohort.Student) CorrelationMatrix {
	keys := subject.Keys()
	values := make([][]float64, len(keys))

	for i, x := range keys {
		values[i] = make([]float64, len(keys))

		for j, y := range keys {
			if j < i {
				values[i][j] = values[j][i]

				continue
			}

			values[i][j] = ComputeCorrelation(students, x, y)
		}
	}

	return CorrelationMatrix{Keys: keys, Values: values}
}

// At returns the coefficient for x and y, or 0 for unknown keys.
func (m CorrelationMatrix) At(x, y subject.Key) float64 {
	i := slices.Index(m.Keys, x)
	j := slices.Index(m.Keys, y)

	if i < 0 || j < 0 {
		return 0
	}

	return m.Values[i][j]
}

// Pairs returns every unordered pair of distinct subjects, strongest first by
// absolute value. Equal magnitudes keep canonical subject order.
func (m CorrelationMatrix) Pairs() []CorrelationPair {
	var pairs []CorrelationPair

	for i, x := range m.Keys {
		for j := i + 1; j < len(m.Keys); j++ {
			pairs = append(pairs, CorrelationPair{X: x, Y: m.Keys[j], Value: m.Values[i][j]})
		}
	}

	slices.SortStableFunc(pairs, func(a, b CorrelationPair) int {
		return cmp.Compare(math.Abs(b.Value), math.Abs(a.Value))
	})

	return pairs
}

// Strength labels a signed coefficient.
func Strength(r float64) string {
	switch {
	case r >= strongThreshold:
		return "Strong Positive"
	case r >= moderateThreshold:
		return "Moderate Positive"
	case r >= weakThreshold:
		return "Weak Positive"
	case r >= -weakThreshold:
		return "No Correlation"
	case r >= -moderateThreshold:
		return "Weak Negative"
	case r >= -strongThreshold:
		return "Moderate Negative"
	default:
		return "Strong Negative"
	}
}

// Magnitude labels the absolute value of a coefficient.
func Magnitude(r float64) string {
	abs := math.Abs(r)

	switch {
	case abs >= strongThreshold:
		return "Strong"
	case abs >= moderateThreshold:
		return "Moderate"
	case abs >= weakThreshold:
		return "Weak"
	default:
		return "Very Weak"
	}
}
