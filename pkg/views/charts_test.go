package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

func TestSubjectAverages(t *testing.T) {
	t.Parallel()

	got := SubjectAverages(sampleClass())
	require.Len(t, got, 5)

	assert.Equal(t, "POME", got[0].Name)
	assert.InDelta(t, 67.0, got[0].Value, 0.0001)
	// DBMS raw mean 99 of 150.
	assert.Equal(t, "DBMS", got[1].Name)
	assert.InDelta(t, 66.0, got[1].Value, 0.0001)
	// AIML raw mean 106.25 of 150 is 70.83.
	assert.InDelta(t, 70.8, got[2].Value, 0.0001)
	assert.NotEmpty(t, got[0].Color)
}

func TestSubjectAveragesEmpty(t *testing.T) {
	t.Parallel()

	for _, d := range SubjectAverages(nil) {
		assert.InDelta(t, 0.0, d.Value, 0)
	}
}

func TestGradeSeriesKeepsZeroGrades(t *testing.T) {
	t.Parallel()

	dist := analytics.GradeDistributionOf([]float64{95, 41})
	got := GradeSeries(dist)

	require.Len(t, got, 7)

	names := make([]string, 0, len(got))
	for _, d := range got {
		names = append(names, d.Name)
	}

	assert.Equal(t, []string{"O", "A+", "A", "B+", "B", "C", "F"}, names)
	assert.InDelta(t, 1.0, got[0].Value, 0)
	assert.InDelta(t, 0.0, got[1].Value, 0)
	assert.InDelta(t, 1.0, got[5].Value, 0)
}

func TestElectiveEnrollment(t *testing.T) {
	t.Parallel()

	got := ElectiveEnrollment(sampleClass())
	require.Len(t, got, 3)

	assert.Equal(t, BarDatum{Name: "Cloud Computing", Value: 3, Color: subject.CloudComputing.ChartColor()}, got[0])
	assert.InDelta(t, 2.0, got[1].Value, 0)
	assert.InDelta(t, 0.0, got[2].Value, 0)
}

func TestCumulativeDistribution(t *testing.T) {
	t.Parallel()

	got := CumulativeDistribution(sampleClass())
	require.Len(t, got, 21)

	assert.Equal(t, "0%", got[0].Name)
	assert.Equal(t, "100%", got[20].Name)
	assert.InDelta(t, 100.0, got[20].Value, 0)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].Value, got[i-1].Value)
	}

	// 31.67% and 34.17% are at or below 35%.
	assert.InDelta(t, 40.0, got[7].Value, 0)
}

func TestCumulativeDistributionEmpty(t *testing.T) {
	t.Parallel()

	got := CumulativeDistribution([]cohort.Student{})
	require.Len(t, got, 21)

	for _, d := range got {
		assert.InDelta(t, 0.0, d.Value, 0)
	}
}

func TestSubjectComparison(t *testing.T) {
	t.Parallel()

	got := SubjectComparison(sampleClass())
	require.Len(t, got, 5)

	assert.Equal(t, ComparisonRow{Subject: "DBMS", Average: 66, Highest: 90, Lowest: 33}, got[1])
}

func TestRadarProfile(t *testing.T) {
	t.Parallel()

	students := sampleClass()
	got := RadarProfile(students[3], analytics.ClassAverages(students))

	require.Len(t, got, 5)
	assert.Equal(t, RadarPoint{Subject: "POME", Student: 60, ClassAverage: 67, FullMark: 100}, got[0])
	assert.Equal(t, 0, got[2].Student, "absent AIML plots as zero")
	assert.Equal(t, 71, got[2].ClassAverage)
}

func TestRadarProfileClampsToFullMark(t *testing.T) {
	t.Parallel()

	averages := map[subject.Key]float64{subject.POME: 250}
	got := RadarProfile(sampleClass()[0], averages)

	assert.Equal(t, FullMark, got[0].ClassAverage)
	assert.Equal(t, 0, got[1].ClassAverage)
}

func TestCorrelationCells(t *testing.T) {
	t.Parallel()

	cells := CorrelationCells(analytics.NewCorrelationMatrix(sampleClass()))

	require.Len(t, cells, 25)
	assert.InDelta(t, 1.0, cells[0].Value, 0.0001)
	assert.Equal(t, 0, cells[0].X)
	assert.Equal(t, 4, cells[4].Y)
}
