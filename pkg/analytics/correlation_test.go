package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

func TestComputeCorrelationNeedsThreePairs(t *testing.T) {
	t.Parallel()

	students := []cohort.Student{
		student(1, "A", 10, 15, -1, 10, subject.NLP, 10),
		student(2, "B", 20, 30, -1, 20, subject.NLP, 20),
		student(3, "C", 30, -1, 30, 30, subject.NLP, 30),
	}

	// POME/DBMS have only two complete pairs.
	assert.InDelta(t, 0.0, ComputeCorrelation(students, subject.POME, subject.DBMS), 0.0001)
	// POME/TOC have three identical-shape pairs.
	assert.InDelta(t, 1.0, ComputeCorrelation(students, subject.POME, subject.TOC), 0.0001)
}

func TestComputeCorrelationUsesNormalizedScores(t *testing.T) {
	t.Parallel()

	students := []cohort.Student{
		student(1, "A", 20, 30, 0, 0, subject.NLP, 0),
		student(2, "B", 40, 60, 0, 0, subject.NLP, 0),
		student(3, "C", 60, 90, 0, 0, subject.NLP, 0),
		student(4, "D", 80, 60, 0, 0, subject.NLP, 0),
	}

	r := ComputeCorrelation(students, subject.POME, subject.DBMS)
	assert.InDelta(t, r, ComputeCorrelation(students, subject.DBMS, subject.POME), 0.0001)
	assert.Greater(t, r, 0.0)
	assert.Less(t, r, 1.0)
}

func TestCorrelationMatrix(t *testing.T) {
	t.Parallel()

	m := NewCorrelationMatrix(sampleClass())

	require.Len(t, m.Keys, 5)
	require.Len(t, m.Values, 5)

	for i := range m.Keys {
		assert.InDelta(t, 1.0, m.Values[i][i], 0.0001)

		for j := range m.Keys {
			assert.InDelta(t, m.Values[i][j], m.Values[j][i], 0.0001)
			assert.GreaterOrEqual(t, m.Values[i][j], -1.0)
			assert.LessOrEqual(t, m.Values[i][j], 1.0)
		}
	}

	assert.InDelta(t, m.Values[1][2], m.At(subject.DBMS, subject.AIML), 0.0001)
	assert.InDelta(t, 0.0, m.At("physics", subject.AIML), 0.0001)
}

func TestCorrelationMatrixPairsSortedByMagnitude(t *testing.T) {
	t.Parallel()

	pairs := NewCorrelationMatrix(sampleClass()).Pairs()
	require.Len(t, pairs, 10)

	for i := 1; i < len(pairs); i++ {
		prev := pairs[i-1].Value
		cur := pairs[i].Value

		assert.GreaterOrEqual(t, abs(prev), abs(cur))
		assert.NotEqual(t, pairs[i].X, pairs[i].Y)
	}
}

func TestCorrelationMatrixEmpty(t *testing.T) {
	t.Parallel()

	m := NewCorrelationMatrix(nil)

	for _, p := range m.Pairs() {
		assert.InDelta(t, 0.0, p.Value, 0)
	}
}

func TestStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r         float64
		signed    string
		magnitude string
	}{
		{r: 0.95, signed: "Strong Positive", magnitude: "Strong"},
		{r: 0.7, signed: "Strong Positive", magnitude: "Strong"},
		{r: 0.6, signed: "Moderate Positive", magnitude: "Moderate"},
		{r: 0.3, signed: "Weak Positive", magnitude: "Weak"},
		{r: 0.1, signed: "No Correlation", magnitude: "Very Weak"},
		{r: -0.3, signed: "No Correlation", magnitude: "Weak"},
		{r: -0.4, signed: "Weak Negative", magnitude: "Weak"},
		{r: -0.6, signed: "Moderate Negative", magnitude: "Moderate"},
		{r: -0.9, signed: "Strong Negative", magnitude: "Strong"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.signed, Strength(tt.r), "r=%v", tt.r)
		assert.Equal(t, tt.magnitude, Magnitude(tt.r), "r=%v", tt.r)
	}

	assert.Equal(t, "Strong Positive", CorrelationPair{Value: 0.8}.Strength())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
