package plotpage

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRenderLightDefault(t *testing.T) {
	t.Parallel()

	page := NewPage("Overview", "Class at a glance")
	page.Add(Section{
		Title:    "Grades",
		Subtitle: "Overall grade counts",
		Hint:     Hint{Title: "Reading", Items: []string{"Taller is more students"}},
	})

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "cdn.tailwindcss.com")
	assert.Contains(t, html, "echarts.min.js")
	assert.NotContains(t, html, `class="dark"`)
	assert.Contains(t, html, "Overview")
	assert.Contains(t, html, "Class at a glance")
	assert.Contains(t, html, "Grades")
	assert.Contains(t, html, "Taller is more students")
	assert.Contains(t, html, "markboard")
}

func TestPageRenderDark(t *testing.T) {
	t.Parallel()

	page := NewPage("Dark", "").WithTheme(ThemeDark)

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))
	assert.Contains(t, buf.String(), `class="dark"`)
	assert.Contains(t, buf.String(), darkTheme.Background)
}

func TestPageNavMarksActive(t *testing.T) {
	t.Parallel()

	links := RouteLinks([]PageMeta{
		{ID: "overview", Title: "Overview"},
		{ID: "subjects", Title: "Subjects"},
	})

	page := NewPage("Subjects", "").WithNav(links, "subjects")

	require.Len(t, page.Nav, 2)
	assert.False(t, page.Nav[0].Active)
	assert.True(t, page.Nav[1].Active)
	assert.False(t, links[1].Active, "input links must not be mutated")

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))
	assert.Contains(t, buf.String(), `href="/subjects"`)
}

func TestPageEscapesUserText(t *testing.T) {
	t.Parallel()

	page := NewPage("<script>alert(1)</script>", "")

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

type failingRenderable struct{}

func (failingRenderable) Render(io.Writer) error {
	return errors.New("boom")
}

func TestPageRenderPropagatesSectionErrors(t *testing.T) {
	t.Parallel()

	page := NewPage("Broken", "")
	page.Add(Section{Title: "bad", Chart: failingRenderable{}})

	err := page.Render(io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestExtractChartContent(t *testing.T) {
	t.Parallel()

	full := `<!DOCTYPE html><html><head><script src="x.js"></script></head><body>` +
		`<div class="container"><div class="item" id="c1"></div></div>` +
		`<style>.container{}</style><script>init()</script></body></html>`

	got := extractChartContent(full)

	assert.True(t, strings.HasPrefix(got, `<div class="echart-box">`))
	assert.Contains(t, got, "init()")
	assert.NotContains(t, got, "<style>")
	assert.NotContains(t, got, "x.js")

	fragment := `<span>already a fragment</span>`
	assert.Equal(t, fragment, extractChartContent(fragment))
}

func TestWrapChartRendersFragment(t *testing.T) {
	t.Parallel()

	chart := BuildBarChart(nil, []string{"POME"}, []BarSeries{{Name: "avg", Data: []SeriesData{72.5}}}, "%")

	var buf bytes.Buffer

	require.NoError(t, WrapChart(chart).Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "echart-box")
	assert.NotContains(t, html, "<!DOCTYPE")
	assert.Contains(t, html, "72.5")
}
