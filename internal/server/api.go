package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// OverviewResponse is served at /api/overview.
type OverviewResponse struct {
	Title           string                  `json:"title"`
	Overview        analytics.ClassOverview `json:"overview"`
	Grades          []views.BarDatum        `json:"grades"`
	SubjectAverages []views.BarDatum        `json:"subjectAverages"`
	Electives       []views.BarDatum        `json:"electives"`
	TopStudents     []views.LeaderboardRow  `json:"topStudents"`
}

// SubjectsResponse is served at /api/subjects.
type SubjectsResponse struct {
	Subjects   []analytics.SubjectStats `json:"subjects"`
	Comparison []views.ComparisonRow    `json:"comparison"`
}

// SubjectResponse is served at /api/subjects/{key}.
type SubjectResponse struct {
	Stats   analytics.SubjectStats `json:"stats"`
	Buckets []views.Bucket         `json:"buckets"`
	Leaders []views.SubjectRankRow `json:"leaders"`
}

// StudentsResponse is served at /api/students. Without a query it lists the
// full standings; with one it lists matches in input order.
type StudentsResponse struct {
	Query     string                 `json:"query,omitempty"`
	Total     int                    `json:"total"`
	Truncated bool                   `json:"truncated"`
	Students  []views.LeaderboardRow `json:"students"`
}

// ElectivesResponse is served at /api/electives.
type ElectivesResponse struct {
	Strongest  subject.ElectiveCourse                            `json:"strongest"`
	Comparison []views.ElectiveRow                               `json:"comparison"`
	Summaries  []views.ElectiveSummary                           `json:"summaries"`
	Top        map[subject.ElectiveCourse][]views.SubjectRankRow `json:"topPerformers"`
}

// DistributionResponse is served at /api/distribution.
type DistributionResponse struct {
	Overall    []views.Bucket                 `json:"overall"`
	Cumulative []views.BarDatum               `json:"cumulative"`
	BoxPlots   []analytics.BoxPlot            `json:"boxPlots"`
	Subjects   map[subject.Key][]views.Bucket `json:"subjects"`
}

// CorrelationResponse is served at /api/correlation.
type CorrelationResponse struct {
	Subjects []subject.Key               `json:"subjects"`
	Cells    []views.HeatCell            `json:"cells"`
	Pairs    []analytics.CorrelationPair `json:"pairs"`
}

func (s *Server) students(r *http.Request) []cohort.Student {
	return s.source.Dataset(r.Context()).Students()
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ds := s.source.Dataset(r.Context())
	students := ds.Students()
	overview := analytics.Overview(students)

	writeJSON(r.Context(), w, http.StatusOK, OverviewResponse{
		Title:           ds.Title(),
		Overview:        overview,
		Grades:          views.GradeSeries(overview.GradeDistribution),
		SubjectAverages: views.SubjectAverages(students),
		Electives:       views.ElectiveEnrollment(students),
		TopStudents:     views.Leaderboard(students, s.opts.Render.TopN),
	})
}

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	students := s.students(r)

	writeJSON(r.Context(), w, http.StatusOK, SubjectsResponse{
		Subjects:   analytics.AllSubjectStats(students),
		Comparison: views.SubjectComparison(students),
	})
}

func (s *Server) handleSubject(w http.ResponseWriter, r *http.Request) {
	key, err := subject.ParseKey(chi.URLParam(r, "key"))
	if err != nil {
		writeError(r.Context(), w, http.StatusNotFound, err.Error())

		return
	}

	students := s.students(r)

	writeJSON(r.Context(), w, http.StatusOK, SubjectResponse{
		Stats:   analytics.SubjectStatsFor(students, key),
		Buckets: views.SubjectBuckets(students, key, s.opts.Render.BucketCount),
		Leaders: views.SubjectRanking(students, key, s.opts.Render.TopN),
	})
}

func (s *Server) handleStudents(w http.ResponseWriter, r *http.Request) {
	students := s.students(r)
	query := r.URL.Query().Get("q")

	if query == "" {
		rows := views.Leaderboard(students, len(students))
		writeJSON(r.Context(), w, http.StatusOK, StudentsResponse{Total: len(rows), Students: rows})

		return
	}

	page := views.SearchRows(students, query, s.opts.Render.SearchLimit)

	writeJSON(r.Context(), w, http.StatusOK, StudentsResponse{
		Query:     query,
		Total:     page.Total,
		Truncated: page.Truncated,
		Students:  page.Rows,
	})
}

func (s *Server) handleStudent(w http.ResponseWriter, r *http.Request) {
	ds := s.source.Dataset(r.Context())
	usn := chi.URLParam(r, "usn")

	student, ok := ds.Lookup(usn)
	if !ok {
		writeError(r.Context(), w, http.StatusNotFound, "student not found: "+usn+views.USNHint(ds.Students(), usn))

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, views.Profile(student, ds.Students()))
}

func (s *Server) handleElectives(w http.ResponseWriter, r *http.Request) {
	students := s.students(r)
	resp := ElectivesResponse{
		Strongest:  views.StrongestElective(students),
		Comparison: views.ElectiveComparison(students),
		Top:        make(map[subject.ElectiveCourse][]views.SubjectRankRow, len(subject.Electives())),
	}

	for _, e := range subject.Electives() {
		resp.Summaries = append(resp.Summaries, views.SummarizeElective(students, e))
		resp.Top[e] = views.ElectiveTopPerformers(students, e, s.opts.Render.TopN)
	}

	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	students := s.students(r)
	count := s.opts.Render.BucketCount

	percentages := make([]float64, 0, len(students))
	for _, st := range students {
		percentages = append(percentages, st.Percentage())
	}

	resp := DistributionResponse{
		Overall:    views.DistributionBuckets(percentages, views.FullMark, count),
		Cumulative: views.CumulativeDistribution(students),
		BoxPlots:   analytics.BoxPlots(students),
		Subjects:   make(map[subject.Key][]views.Bucket, len(subject.Keys())),
	}

	for _, key := range subject.Keys() {
		resp.Subjects[key] = views.SubjectBuckets(students, key, count)
	}

	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	m := analytics.NewCorrelationMatrix(s.students(r))

	writeJSON(r.Context(), w, http.StatusOK, CorrelationResponse{
		Subjects: subject.Keys(),
		Cells:    views.CorrelationCells(m),
		Pairs:    m.Pairs(),
	})
}
