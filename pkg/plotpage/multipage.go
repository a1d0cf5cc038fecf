package plotpage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	indexFileName    = "index.html"
	indexTitle       = "Dashboard"
	indexDescription = "Pick a view of the cohort."
	dirPerm          = 0o755
)

// PageMeta describes a page for navigation and the index.
type PageMeta struct {
	ID          string // Route and file stem, e.g. "subjects".
	Title       string
	Description string
}

// StaticLinks builds navigation links pointing at <id>.html files.
func StaticLinks(pages []PageMeta) []NavLink {
	links := make([]NavLink, len(pages))
	for i, p := range pages {
		links[i] = NavLink{ID: p.ID, Title: p.Title, Href: p.ID + ".html"}
	}

	return links
}

// RouteLinks builds navigation links pointing at /<id> routes.
func RouteLinks(pages []PageMeta) []NavLink {
	links := make([]NavLink, len(pages))
	for i, p := range pages {
		links[i] = NavLink{ID: p.ID, Title: p.Title, Href: "/" + p.ID}
	}

	return links
}

// MultiPageRenderer writes one standalone HTML file per page plus an index.
type MultiPageRenderer struct {
	OutputDir string
	Title     string
	Theme     Theme
	Nav       []NavLink
}

// RenderPage writes page to <OutputDir>/<id>.html, stamping the renderer's
// project title, theme and navigation onto it.
func (r *MultiPageRenderer) RenderPage(id string, page *Page) (err error) {
	mkErr := os.MkdirAll(r.OutputDir, dirPerm)
	if mkErr != nil {
		return fmt.Errorf("create %s: %w", r.OutputDir, mkErr)
	}

	page.Theme = r.Theme
	if r.Title != "" {
		page.ProjectName = r.Title
	}

	page.WithNav(r.Nav, id)

	outPath := filepath.Join(r.OutputDir, id+".html")

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}

	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", outPath, closeErr)
		}
	}()

	renderErr := page.Render(f)
	if renderErr != nil {
		return fmt.Errorf("render %s: %w", id, renderErr)
	}

	return nil
}

// RenderIndex writes <OutputDir>/index.html with a card per page.
func (r *MultiPageRenderer) RenderIndex(pages []PageMeta) error {
	page, err := Index(pages, StaticLinks(pages))
	if err != nil {
		return err
	}

	return r.RenderPage("index", page)
}

// Index builds the landing page: one card per page, linked through links.
// Pages without a matching link are omitted.
func Index(pages []PageMeta, links []NavLink) (*Page, error) {
	hrefs := make(map[string]string, len(links))
	for _, l := range links {
		hrefs[l.ID] = l.Href
	}

	entries := make([]indexEntry, 0, len(pages))

	for _, p := range pages {
		href, ok := hrefs[p.ID]
		if !ok {
			continue
		}

		entries = append(entries, indexEntry{Href: href, Title: p.Title, Description: p.Description})
	}

	content, err := renderTemplate("index.html", indexData{Pages: entries})
	if err != nil {
		return nil, fmt.Errorf("render index content: %w", err)
	}

	page := NewPage(indexTitle, indexDescription)
	page.Add(Section{Chart: rawHTML(content)})

	return page, nil
}
