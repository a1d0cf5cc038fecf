package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

func TestOverview(t *testing.T) {
	t.Parallel()

	o := Overview(sampleClass())

	assert.Equal(t, 5, o.TotalStudents)
	assert.InDelta(t, 90.0, o.HighestPercentage, 0.0001)
	assert.InDelta(t, 190.0/6, o.LowestPercentage, 0.0001)
	assert.InDelta(t, (540.0+420+190+205+498)/600*100/5, o.AveragePercentage, 0.0001)
	require.NotNil(t, o.TopStudent)
	assert.Equal(t, "CS001", o.TopStudent.USN())
	assert.Equal(t, 3, o.Passed)
	assert.Equal(t, 2, o.Failed)
	assert.Equal(t, 5, o.GradeDistribution.Total())
	assert.Equal(t, 2, o.Electives[subject.CloudComputing])
	assert.Equal(t, 2, o.Electives[subject.NLP])
	assert.Equal(t, 1, o.Electives[subject.QuantumComputing])
}

func TestOverviewEmpty(t *testing.T) {
	t.Parallel()

	o := Overview(nil)

	assert.Equal(t, 0, o.TotalStudents)
	assert.Nil(t, o.TopStudent)
	assert.InDelta(t, 0.0, o.AveragePercentage, 0)
	assert.InDelta(t, 0.0, o.HighestPercentage, 0)
	assert.Len(t, o.Electives, 3)
}

func TestOverviewJSONUsesElectiveNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Overview(sampleClass()))
	require.NoError(t, err)

	var decoded struct {
		Electives map[string]int `json:"electiveDistribution"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, map[string]int{"Cloud Computing": 2, "NLP": 2, "Quantum Computing": 1}, decoded.Electives)
}

func TestElectiveEnrollmentHasEveryCourse(t *testing.T) {
	t.Parallel()

	counts := ElectiveEnrollment(sampleClass()[:1])

	assert.Len(t, counts, 3)
	assert.Equal(t, 1, counts[subject.NLP])
	assert.Equal(t, 0, counts[subject.QuantumComputing])
}
