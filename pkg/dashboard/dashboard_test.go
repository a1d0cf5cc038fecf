package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

func record(slNo int, usn, name string, pome, dbms, aiml, toc float64, course subject.ElectiveCourse, elective float64) cohort.Record {
	return cohort.Record{
		SlNo:     slNo,
		USN:      usn,
		Name:     name,
		POME:     cohort.Present(pome),
		DBMS:     cohort.Present(dbms),
		AIML:     cohort.Present(aiml),
		TOC:      cohort.Present(toc),
		Elective: cohort.Enrollment{Course: course, Score: cohort.Present(elective)},
	}
}

func sampleDataset(t *testing.T) *cohort.Dataset {
	t.Helper()

	recs := []cohort.Record{
		record(1, "CS001", "Asha Rao", 90, 135, 135, 90, subject.CloudComputing, 90),
		record(2, "CS002", "Bharath K", 70, 105, 105, 70, subject.NLP, 70),
		record(3, "CS003", "Chitra M", 30, 45, 50, 35, subject.QuantumComputing, 30),
		record(4, "CS004", "Dinesh P", 65, 100, 90, 60, subject.CloudComputing, 55),
		record(5, "CS005", "Esha N", 85, 120, 130, 80, subject.NLP, 83),
	}

	students := make([]cohort.Student, len(recs))
	for i, r := range recs {
		students[i] = cohort.MustStudent(r)
	}

	ds, err := cohort.NewDataset("CSE 2024", students)
	require.NoError(t, err)

	return ds
}

func renderPage(t *testing.T, page *plotpage.Page) string {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	return buf.String()
}

func TestBuildEveryPage(t *testing.T) {
	t.Parallel()

	b := New(sampleDataset(t), Options{Nav: plotpage.RouteLinks(Pages()), SearchAction: "/students"})

	tests := []struct {
		id   string
		want []string
	}{
		{PageOverview, []string{"Class Overview", "Grade Distribution", "Asha Rao", "CSE 2024"}},
		{PageSubjects, []string{"Subject Analysis", "Summary Statistics", "Database Management Systems"}},
		{PageStudents, []string{"Student Lookup", "All Students", `name="q"`}},
		{PageElectives, []string{"Elective Analysis", "Quantum Computing", "Top Performers"}},
		{PageDistribution, []string{"Score Distribution", "Cumulative Distribution", "Spread by Subject"}},
		{PageCorrelation, []string{"Correlation Matrix", "Pairs by Strength"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			page, err := b.Build(tt.id)
			require.NoError(t, err)

			html := renderPage(t, page)
			for _, want := range tt.want {
				assert.Contains(t, html, want)
			}

			assert.Contains(t, html, `href="/`+tt.id+`" class="px-3 py-2 rounded-t-md bg-indigo-600`)
			assert.NotContains(t, html, "No student data")
		})
	}
}

func TestBuildUnknownPage(t *testing.T) {
	t.Parallel()

	_, err := New(sampleDataset(t), Options{}).Build("grades")
	require.ErrorIs(t, err, ErrUnknownPage)
}

func TestEmptyDatasetRendersWarning(t *testing.T) {
	t.Parallel()

	b := New(cohort.Empty("empty"), Options{})

	for _, meta := range Pages() {
		page, err := b.Build(meta.ID)
		require.NoError(t, err)
		assert.Contains(t, renderPage(t, page), "No student data", meta.ID)
	}
}

func TestStudentsSingleMatchSelectsProfile(t *testing.T) {
	t.Parallel()

	b := New(sampleDataset(t), Options{SearchAction: "/students"})
	html := renderPage(t, b.Students("esha", ""))

	assert.Contains(t, html, "Subject Breakdown")
	assert.Contains(t, html, "2nd of 5")
	assert.Contains(t, html, "CS005 · NLP")
}

func TestStudentsExplicitUSN(t *testing.T) {
	t.Parallel()

	b := New(sampleDataset(t), Options{SearchAction: "/students"})

	html := renderPage(t, b.Students("", "cs003"))
	assert.Contains(t, html, "Chitra M")
	assert.Contains(t, html, "5th of 5")

	html = renderPage(t, b.Students("", "CS999"))
	assert.Contains(t, html, "No student with USN CS999.")
	assert.NotContains(t, html, "Subject Breakdown")
}

func TestStudentsSearchResults(t *testing.T) {
	t.Parallel()

	b := New(sampleDataset(t), Options{SearchAction: "/students", SearchLimit: 1})

	html := renderPage(t, b.Students("CS00", ""))
	assert.Contains(t, html, "/students?q=CS00&amp;usn=CS001")
	assert.NotContains(t, html, "usn=CS002", "results are capped by SearchLimit")
	assert.NotContains(t, html, "Subject Breakdown")

	html = renderPage(t, b.Students("a", ""))
	assert.Contains(t, html, "at least two characters")

	html = renderPage(t, b.Students("zz", ""))
	assert.Contains(t, html, "Nothing matches")
}

func TestStudentsWithoutSearchActionHidesForm(t *testing.T) {
	t.Parallel()

	html := renderPage(t, New(sampleDataset(t), Options{}).Students("", ""))

	assert.NotContains(t, html, `name="q"`)
	assert.Contains(t, html, "Esha N")
}

func TestRenderAllWritesSite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := &plotpage.MultiPageRenderer{
		OutputDir: dir,
		Theme:     plotpage.ThemeDark,
		Nav:       plotpage.StaticLinks(Pages()),
	}

	b := New(sampleDataset(t), Options{Theme: plotpage.ThemeDark, Nav: r.Nav})
	require.NoError(t, b.RenderAll(r))

	for _, meta := range Pages() {
		_, err := os.Stat(filepath.Join(dir, meta.ID+".html"))
		require.NoError(t, err, meta.ID)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="electives.html"`)
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	o := Options{}.WithDefaults()

	assert.Equal(t, plotpage.ThemeLight, o.Theme)
	assert.Equal(t, DefaultTopN, o.TopN)
	assert.Equal(t, DefaultSearchLimit, o.SearchLimit)
	assert.Positive(t, o.BucketCount)
}
