package subject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTotalMaxMarks(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 600.0, TotalMaxMarks(), 0.0001)
}

func TestKeysCanonicalOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Key{POME, DBMS, AIML, TOC, Elective}, Keys())
	assert.Equal(t, []Key{POME, DBMS, AIML, TOC}, CoreKeys())

	descs := Descriptors()
	require.Len(t, descs, 5)

	for i, k := range Keys() {
		assert.Equal(t, k, descs[i].Key)
	}
}

func TestKeysReturnsCopy(t *testing.T) {
	t.Parallel()

	k := Keys()
	k[0] = "mutated"

	assert.Equal(t, POME, Keys()[0])
}

func TestDescriptorMaxMarks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  Key
		want float64
	}{
		{key: POME, want: 100},
		{key: DBMS, want: 150},
		{key: AIML, want: 150},
		{key: TOC, want: 100},
		{key: Elective, want: 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			t.Parallel()

			d, ok := Lookup(tt.key)
			require.True(t, ok)
			assert.InDelta(t, tt.want, d.MaxMarks, 0.0001)
			assert.InDelta(t, tt.want*0.4, d.PassMark(), 0.0001)
		})
	}
}

func TestDescriptorNormalize(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 90.0, MustLookup(DBMS).Normalize(135), 0.0001)
	assert.InDelta(t, 0.0, Descriptor{}.Normalize(50), 0.0001)
}

func TestParseKeySuggestsNearMiss(t *testing.T) {
	t.Parallel()

	_, err := ParseKey("dmbs")
	require.ErrorIs(t, err, ErrUnknownSubject)
	assert.Contains(t, err.Error(), "did you mean dbms?")

	_, err = ParseKey("physics")
	require.ErrorIs(t, err, ErrUnknownSubject)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Key
		wantErr bool
	}{
		{name: "key", input: "dbms", want: DBMS},
		{name: "short_name_upper", input: "AIML", want: AIML},
		{name: "padded", input: "  toc ", want: TOC},
		{name: "elective", input: "Elective", want: Elective},
		{name: "unknown", input: "physics", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseKey(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownSubject)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct  float64
		want Grade
	}{
		{pct: 100, want: GradeO},
		{pct: 90, want: GradeO},
		{pct: 89.99, want: GradeAPlus},
		{pct: 80, want: GradeAPlus},
		{pct: 70, want: GradeA},
		{pct: 60, want: GradeBPlus},
		{pct: 50, want: GradeB},
		{pct: 40, want: GradeC},
		{pct: 39.99, want: GradeF},
		{pct: 0, want: GradeF},
		{pct: -5, want: GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.pct), "pct=%v", tt.pct)
	}
}

func TestGradeStepFunctionHasNoGaps(t *testing.T) {
	t.Parallel()

	grades := Grades()
	prevIdx := 0

	for pct := 100.0; pct >= 0; pct -= 0.25 {
		g := GradeFor(pct)
		idx := indexOf(grades, g)

		require.GreaterOrEqual(t, idx, prevIdx, "grade went back up at %v", pct)
		require.LessOrEqual(t, idx-prevIdx, 1, "grade skipped at %v", pct)

		prevIdx = idx
	}

	assert.Equal(t, len(grades)-1, prevIdx)
}

func TestGradeMetadata(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Grade{GradeO, GradeAPlus, GradeA, GradeBPlus, GradeB, GradeC, GradeF}, Grades())
	assert.InDelta(t, 80.0, GradeAPlus.MinPercent(), 0.0001)
	assert.Equal(t, "oklch(0.65 0.2 25)", GradeF.Color())
	assert.NotEmpty(t, GradeO.ChartColor())
	assert.True(t, GradeC.Passing())
	assert.False(t, GradeF.Passing())
}

func TestParseElective(t *testing.T) {
	t.Parallel()

	for _, e := range Electives() {
		got, err := ParseElective(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
		assert.NotEmpty(t, e.Color())
	}

	got, err := ParseElective("nlp")
	require.NoError(t, err)
	assert.Equal(t, NLP, got)

	_, err = ParseElective("Blockchain")
	require.ErrorIs(t, err, ErrUnknownElective)
}

func TestElectiveJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(QuantumComputing)
	require.NoError(t, err)
	assert.JSONEq(t, `"Quantum Computing"`, string(data))

	var e ElectiveCourse
	require.NoError(t, json.Unmarshal([]byte(`"Cloud Computing"`), &e))
	assert.Equal(t, CloudComputing, e)

	require.ErrorIs(t, json.Unmarshal([]byte(`"Robotics"`), &e), ErrUnknownElective)

	_, err = json.Marshal(ElectiveCourse(0))
	require.Error(t, err)
}

func TestElectiveYAML(t *testing.T) {
	t.Parallel()

	var doc struct {
		Course ElectiveCourse `yaml:"course"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("course: NLP\n"), &doc))
	assert.Equal(t, NLP, doc.Course)

	err := yaml.Unmarshal([]byte("course: Robotics\n"), &doc)
	require.ErrorIs(t, err, ErrUnknownElective)
}

func indexOf(grades []Grade, g Grade) int {
	for i, candidate := range grades {
		if candidate == g {
			return i
		}
	}

	return -1
}
