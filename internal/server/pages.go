package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/lru"
	"github.com/Sumatoshi-tech/markboard/pkg/dashboard"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
)

func (s *Server) builder(r *http.Request) *dashboard.Builder {
	return dashboard.New(s.source.Dataset(r.Context()), s.opts.Render)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, dashboard.PageOverview)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, chi.URLParam(r, "page"))
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, id string) {
	if s.writeCached(w, r, id, id) {
		return
	}

	page, err := s.builder(r).Build(id)
	if errors.Is(err, dashboard.ErrUnknownPage) {
		http.NotFound(w, r)

		return
	}

	if err != nil {
		s.pageError(w, r, id, err)

		return
	}

	s.writePage(w, r, id, id, page)
}

func (s *Server) handleStudentsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, usn := q.Get("q"), q.Get("usn")
	key := dashboard.PageStudents + "?" + url.Values{"q": {query}, "usn": {usn}}.Encode()

	if s.writeCached(w, r, key, dashboard.PageStudents) {
		return
	}

	s.writePage(w, r, key, dashboard.PageStudents, s.builder(r).Students(query, usn))
}

// writeCached serves a previously rendered page. The dataset never changes
// after the first load, so cached pages stay valid for the process lifetime.
func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, key, id string) bool {
	if s.pages == nil {
		return false
	}

	body, ok := s.pages.Get(key)
	if !ok {
		return false
	}

	s.sendHTML(w, r, id, body)

	return true
}

// writePage renders into a buffer first so a template failure becomes a 500
// instead of a truncated page.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, key, id string, page *plotpage.Page) {
	var buf bytes.Buffer

	err := page.Render(&buf)
	if err != nil {
		s.pageError(w, r, id, err)

		return
	}

	body := buf.Bytes()
	if s.pages != nil {
		s.pages.Put(key, body)
	}

	s.sendHTML(w, r, id, body)
}

func (s *Server) sendHTML(w http.ResponseWriter, r *http.Request, id string, body []byte) {
	s.opts.Metrics.RecordPage(r.Context(), id)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) pageError(w http.ResponseWriter, r *http.Request, id string, err error) {
	s.opts.Logger.ErrorContext(r.Context(), "render page", "page", id, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// PageCacheStats reports rendered-page cache counters; zero when disabled.
func (s *Server) PageCacheStats() lru.Stats {
	if s.pages == nil {
		return lru.Stats{}
	}

	return s.pages.Stats()
}
