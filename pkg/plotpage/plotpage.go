// Package plotpage renders dashboard pages: a themed HTML shell with
// sections, layout components and go-echarts charts.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = len("</style>")

// Hint is interpretive guidance shown under a section.
type Hint struct {
	Title string
	Items []string
}

// Section is a titled block of a page.
type Section struct {
	ID       string
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// NavLink is one entry of the page navigation bar.
type NavLink struct {
	ID     string
	Title  string
	Href   string
	Active bool
}

// Page is a complete dashboard page.
type Page struct {
	Title           string
	Description     string
	ProjectName     string
	ProjectSubtitle string
	ShowThemeToggle bool
	Theme           Theme
	Nav             []NavLink
	Sections        []Section
}

// NewPage creates a page with the markboard branding and the light theme.
func NewPage(title, description string) *Page {
	return &Page{
		Title:           title,
		Description:     description,
		ProjectName:     "markboard",
		ProjectSubtitle: "Exam Analytics",
		ShowThemeToggle: true,
		Theme:           ThemeLight,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// WithNav sets the navigation links, marking activeID as current.
func (p *Page) WithNav(links []NavLink, activeID string) *Page {
	p.Nav = make([]NavLink, len(links))
	for i, l := range links {
		l.Active = l.ID == activeID
		p.Nav[i] = l
	}

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// Renderable is anything that writes an HTML fragment.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as standalone HTML documents.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	header, err := renderTemplate("header.html", headerData{
		ProjectName:     page.ProjectName,
		Subtitle:        page.ProjectSubtitle,
		Title:           page.Title,
		Description:     page.Description,
		ShowThemeToggle: page.ShowThemeToggle,
		Nav:             page.Nav,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var sectionsHTML bytes.Buffer

	for _, section := range page.Sections {
		sectionHTML, sectionErr := r.renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section %q: %w", section.Title, sectionErr)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	scripts, err := renderTemplate("scripts.html", nil)
	if err != nil {
		return fmt.Errorf("render scripts: %w", err)
	}

	darkClass := ""
	if page.Theme == ThemeDark {
		darkClass = "dark"
	}

	html, err := renderTemplate("page.html", pageData{
		Title:       page.Title,
		ProjectName: page.ProjectName,
		DarkClass:   darkClass,
		Theme:       GetThemeConfig(page.Theme),
		ExtraCSS:    template.CSS(r.ExtraCSS),
		Header:      header,
		Content:     template.HTML(sectionsHTML.String()),
		Scripts:     scripts,
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderSection(section Section) (template.HTML, error) {
	body, err := renderFragment(section.Chart)
	if err != nil {
		return "", err
	}

	var hint *hintData

	if len(section.Hint.Items) > 0 {
		items := make([]template.HTML, len(section.Hint.Items))
		for i, item := range section.Hint.Items {
			items[i] = template.HTML(item)
		}

		hint = &hintData{Title: section.Hint.Title, Items: items}
	}

	return renderTemplate("section.html", sectionData{
		ID:       section.ID,
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Body:     body,
		Hint:     hint,
	})
}

// ChartWrapper renders a go-echarts chart as a fragment instead of a full page.
type ChartWrapper struct {
	chart Renderable
}

// WrapChart wraps a chart so that only its container and script are emitted.
func WrapChart(chart Renderable) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script.
func (cw *ChartWrapper) Render(w io.Writer) error {
	if cw.chart == nil {
		return nil
	}

	var buf bytes.Buffer

	err := cw.chart.Render(&buf)
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	_, err = io.WriteString(w, extractChartContent(buf.String()))
	if err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

// renderFragment renders r into a string, stripping the document shell that
// go-echarts emits around charts.
func renderFragment(r Renderable) (template.HTML, error) {
	if r == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := r.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering fragment: %w", err)
	}

	return template.HTML(extractChartContent(buf.String())), nil
}

func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}
