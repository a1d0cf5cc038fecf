package plotpage

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
)

const maxGridColumns = 4

// Tone is a semantic colour for badges, stats and alerts.
type Tone string

// Tone values.
const (
	ToneDefault Tone = "default"
	ToneAccent  Tone = "accent"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

func (t Tone) softClasses() string {
	switch t {
	case ToneAccent:
		return "bg-indigo-100 text-indigo-800 dark:bg-indigo-950 dark:text-indigo-200"
	case ToneSuccess:
		return "bg-green-100 text-green-800 dark:bg-green-950 dark:text-green-200"
	case ToneWarning:
		return "bg-amber-100 text-amber-800 dark:bg-amber-950 dark:text-amber-200"
	case ToneError:
		return "bg-red-100 text-red-800 dark:bg-red-950 dark:text-red-200"
	case ToneInfo:
		return "bg-sky-100 text-sky-800 dark:bg-sky-950 dark:text-sky-200"
	case ToneDefault:
		return "bg-slate-100 text-slate-800 dark:bg-slate-800 dark:text-slate-200"
	default:
		return "bg-slate-100 text-slate-800 dark:bg-slate-800 dark:text-slate-200"
	}
}

func (t Tone) textClass() string {
	switch t {
	case ToneSuccess:
		return "text-green-600 dark:text-green-400"
	case ToneError:
		return "text-red-600 dark:text-red-400"
	case ToneWarning:
		return "text-amber-600 dark:text-amber-400"
	case ToneAccent, ToneInfo:
		return "text-indigo-600 dark:text-indigo-400"
	case ToneDefault:
		return "text-slate-500"
	default:
		return "text-slate-500"
	}
}

func writeTemplate(w io.Writer, name string, data any) error {
	html, err := renderTemplate(name, data)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

// TabItem is a single tab of a tab group.
type TabItem struct {
	ID      string
	Label   string
	Content Renderable
}

// Tabs renders a tabbed interface.
type Tabs struct {
	ID    string
	Items []TabItem
}

// NewTabs creates a tab group.
func NewTabs(id string, items ...TabItem) *Tabs {
	return &Tabs{ID: id, Items: items}
}

// Render writes the tabs HTML.
func (t *Tabs) Render(w io.Writer) error {
	if len(t.Items) == 0 {
		return nil
	}

	items := make([]tabItemData, len(t.Items))

	for i, item := range t.Items {
		content, err := renderFragment(item.Content)
		if err != nil {
			return fmt.Errorf("rendering tab %s: %w", item.ID, err)
		}

		items[i] = tabItemData{ID: item.ID, Label: item.Label, Content: content}
	}

	return writeTemplate(w, "tabs.html", tabsData{ID: t.ID, Items: items})
}

// Card renders a bordered container.
type Card struct {
	Title    string
	Subtitle string
	Content  Renderable
}

// NewCard creates a card.
func NewCard(title, subtitle string) *Card {
	return &Card{Title: title, Subtitle: subtitle}
}

// WithContent sets the card content.
func (c *Card) WithContent(content Renderable) *Card {
	c.Content = content

	return c
}

// Render writes the card HTML.
func (c *Card) Render(w io.Writer) error {
	content, err := renderFragment(c.Content)
	if err != nil {
		return fmt.Errorf("rendering card content: %w", err)
	}

	return writeTemplate(w, "card.html", cardData{Title: c.Title, Subtitle: c.Subtitle, Content: content})
}

// Badge renders an inline tag. A non-empty Color overrides the tone with an
// explicit background colour.
type Badge struct {
	Text  string
	Tone  Tone
	Color string
}

// NewBadge creates a badge in the default tone.
func NewBadge(text string) *Badge {
	return &Badge{Text: text, Tone: ToneDefault}
}

// WithTone sets the badge tone.
func (b *Badge) WithTone(t Tone) *Badge {
	b.Tone = t

	return b
}

// WithColor sets an explicit CSS background colour.
func (b *Badge) WithColor(color string) *Badge {
	b.Color = color

	return b
}

// Render writes the badge HTML.
func (b *Badge) Render(w io.Writer) error {
	data := badgeData{Text: b.Text, Classes: b.Tone.softClasses()}
	if b.Color != "" {
		data.Classes = "text-white"
		data.Color = b.Color
	}

	return writeTemplate(w, "badge.html", data)
}

// HTML renders the badge into a string for embedding in table cells.
func (b *Badge) HTML() template.HTML {
	html, err := renderFragment(b)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(b.Text))
	}

	return html
}

// Text renders escaped plain text.
type Text struct {
	Content string
}

// NewText creates a text block.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// Render writes the escaped text.
func (t *Text) Render(w io.Writer) error {
	_, err := io.WriteString(w, template.HTMLEscapeString(t.Content))
	if err != nil {
		return fmt.Errorf("writing text: %w", err)
	}

	return nil
}

// Grid renders a responsive grid of components.
type Grid struct {
	Columns int
	Items   []Renderable
}

// NewGrid creates a grid with 1 to 4 columns.
func NewGrid(columns int, items ...Renderable) *Grid {
	return &Grid{Columns: max(1, min(columns, maxGridColumns)), Items: items}
}

// Render writes the grid HTML.
func (g *Grid) Render(w io.Writer) error {
	colClass := map[int]string{
		1: "grid-cols-1",
		2: "grid-cols-1 md:grid-cols-2",
		3: "grid-cols-1 md:grid-cols-3",
		4: "grid-cols-2 lg:grid-cols-4",
	}[g.Columns]

	items := make([]template.HTML, len(g.Items))

	for i, item := range g.Items {
		html, err := renderFragment(item)
		if err != nil {
			return fmt.Errorf("rendering grid item %d: %w", i, err)
		}

		items[i] = html
	}

	return writeTemplate(w, "grid.html", gridData{ColClass: colClass, Items: items})
}

// Stat renders a headline metric.
type Stat struct {
	Label  string
	Value  string
	Detail string
	Tone   Tone
}

// NewStat creates a stat.
func NewStat(label, value string) *Stat {
	return &Stat{Label: label, Value: value, Tone: ToneDefault}
}

// WithDetail sets the secondary line shown under the value.
func (s *Stat) WithDetail(detail string, tone Tone) *Stat {
	s.Detail = detail
	s.Tone = tone

	return s
}

// Render writes the stat HTML.
func (s *Stat) Render(w io.Writer) error {
	return writeTemplate(w, "stat.html", statData{
		Label:      s.Label,
		Value:      s.Value,
		Detail:     s.Detail,
		DetailTone: s.Tone.textClass(),
	})
}

// Alert renders a notification box.
type Alert struct {
	Title   string
	Message string
	Tone    Tone
}

// NewAlert creates an alert.
func NewAlert(title, message string, tone Tone) *Alert {
	return &Alert{Title: title, Message: message, Tone: tone}
}

// Render writes the alert HTML.
func (a *Alert) Render(w io.Writer) error {
	return writeTemplate(w, "alert.html", alertData{
		Title:   a.Title,
		Message: a.Message,
		Classes: a.Tone.softClasses(),
	})
}

// Table renders an HTML table. Cells added with AddRow are escaped; AddHTMLRow
// accepts trusted markup such as badges.
type Table struct {
	Headers []string
	Rows    [][]template.HTML
	Striped bool
}

// NewTable creates a striped table.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Striped: true}
}

// AddRow appends a row of plain-text cells.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]template.HTML, len(cells))
	for i, c := range cells {
		row[i] = template.HTML(template.HTMLEscapeString(c))
	}

	t.Rows = append(t.Rows, row)

	return t
}

// AddHTMLRow appends a row of trusted HTML cells.
func (t *Table) AddHTMLRow(cells ...template.HTML) *Table {
	t.Rows = append(t.Rows, cells)

	return t
}

// Render writes the table HTML.
func (t *Table) Render(w io.Writer) error {
	return writeTemplate(w, "table.html", tableData{Headers: t.Headers, Rows: t.Rows, Striped: t.Striped})
}

// SearchResult is one link listed under a search box.
type SearchResult struct {
	Label string
	Href  string
}

// SearchForm renders a GET form with a single query field and its results.
type SearchForm struct {
	Action      string
	Name        string
	Value       string
	Placeholder string
	Results     []SearchResult
}

// NewSearchForm creates a search form submitting field name to action.
func NewSearchForm(action, name, value string) *SearchForm {
	return &SearchForm{Action: action, Name: name, Value: value}
}

// AddResult lists a result linking to href with query parameters merged in.
func (f *SearchForm) AddResult(label, href string, query url.Values) *SearchForm {
	if len(query) > 0 {
		href += "?" + query.Encode()
	}

	f.Results = append(f.Results, SearchResult{Label: label, Href: href})

	return f
}

// Render writes the form HTML.
func (f *SearchForm) Render(w io.Writer) error {
	return writeTemplate(w, "search.html", searchData{
		Action:      f.Action,
		Name:        f.Name,
		Value:       f.Value,
		Placeholder: f.Placeholder,
		Results:     f.Results,
	})
}

// Rows stacks components vertically.
type Rows []Renderable

// Render writes each component in order.
func (r Rows) Render(w io.Writer) error {
	for i, item := range r {
		html, err := renderFragment(item)
		if err != nil {
			return fmt.Errorf("rendering row %d: %w", i, err)
		}

		_, err = io.WriteString(w, `<div class="mb-4">`+string(html)+`</div>`)
		if err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	return nil
}

// rawHTML writes pre-rendered HTML.
type rawHTML template.HTML

// Render writes the raw HTML content.
func (r rawHTML) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(r))
	if err != nil {
		return fmt.Errorf("write raw html: %w", err)
	}

	return nil
}
