package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

var funcMap = template.FuncMap{
	"odd": func(i int) bool {
		return i%2 == 1
	},
}

// getTemplates returns the parsed templates, loading them once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").
			Funcs(funcMap).
			ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil
}

type pageData struct {
	Title       string
	ProjectName string
	DarkClass   string
	Theme       ThemeConfig
	ExtraCSS    template.CSS
	Header      template.HTML
	Content     template.HTML
	Scripts     template.HTML
}

type headerData struct {
	ProjectName     string
	Subtitle        string
	Title           string
	Description     string
	ShowThemeToggle bool
	Nav             []NavLink
}

type sectionData struct {
	ID       string
	Title    string
	Subtitle string
	Body     template.HTML
	Hint     *hintData
}

type hintData struct {
	Title string
	Items []template.HTML
}

type cardData struct {
	Title    string
	Subtitle string
	Content  template.HTML
}

type tabsData struct {
	ID    string
	Items []tabItemData
}

type tabItemData struct {
	ID      string
	Label   string
	Content template.HTML
}

type badgeData struct {
	Text    string
	Color   string
	Classes string
}

type gridData struct {
	ColClass string
	Items    []template.HTML
}

type statData struct {
	Label      string
	Value      string
	Detail     string
	DetailTone string
}

type alertData struct {
	Title   string
	Message string
	Classes string
}

type tableData struct {
	Headers []string
	Rows    [][]template.HTML
	Striped bool
}

type searchData struct {
	Action      string
	Name        string
	Value       string
	Placeholder string
	Results     []SearchResult
}

type indexData struct {
	Pages []indexEntry
}

type indexEntry struct {
	Href        string
	Title       string
	Description string
}
