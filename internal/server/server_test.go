package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/markboard/internal/ingest"
	"github.com/Sumatoshi-tech/markboard/internal/server"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/config"
	"github.com/Sumatoshi-tech/markboard/pkg/observability"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

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

func sampleLoader(_ context.Context, _, title string) (*cohort.Dataset, error) {
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

	return cohort.NewDataset(title, students)
}

func serverConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            1,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		CORSOrigins:     []string{"*"},

		PageCacheEntries: 8,
	}
}

func newServer(t *testing.T, loader ingest.LoaderFunc, opts server.Options) *server.Server {
	t.Helper()

	opts.Logger = quietLogger
	src := ingest.NewSource("mem", "CSE 2024", ingest.WithLogger(quietLogger), ingest.WithLoader(loader))

	return server.New(serverConfig(), src, opts)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T

	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

func TestAPIOverview(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()
	rec := get(t, h, "/api/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "CSE 2024", body["title"])

	overview, ok := body["overview"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 5, overview["totalStudents"], 0)

	top, ok := body["topStudents"].([]any)
	require.True(t, ok)
	require.Len(t, top, 5)
	assert.Equal(t, "CS001", top[0].(map[string]any)["usn"])
}

func TestAPISubjects(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()

	rec := get(t, h, "/api/subjects")
	require.Equal(t, http.StatusOK, rec.Code)

	all := decode[server.SubjectsResponse](t, rec)
	assert.Len(t, all.Subjects, len(subject.Keys()))
	assert.Len(t, all.Comparison, len(subject.Keys()))

	rec = get(t, h, "/api/subjects/dbms")
	require.Equal(t, http.StatusOK, rec.Code)

	one := decode[map[string]any](t, rec)
	leaders, ok := one["leaders"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, leaders)
	assert.Equal(t, "CS001", leaders[0].(map[string]any)["usn"])
}

func TestAPIUnknownSubjectIs404(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()
	rec := get(t, h, "/api/subjects/astrology")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Contains(t, body["error"], "unknown subject")
	assert.InDelta(t, http.StatusNotFound, body["status"], 0)
}

func TestAPIStudentsSearch(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()

	rec := get(t, h, "/api/students?q=sh")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[server.StudentsResponse](t, rec)
	assert.Equal(t, "sh", resp.Query)
	assert.Equal(t, 3, resp.Total)
	assert.False(t, resp.Truncated)
	require.Len(t, resp.Students, 3)

	usns := make([]string, 0, len(resp.Students))
	ranks := make([]int, 0, len(resp.Students))

	for _, row := range resp.Students {
		usns = append(usns, row.USN)
		ranks = append(ranks, row.Rank)
	}

	assert.Equal(t, []string{"CS001", "CS004", "CS005"}, usns)
	assert.Equal(t, []int{1, 4, 2}, ranks)
}

func TestAPIStudentsSearchLimit(t *testing.T) {
	t.Parallel()

	opts := server.Options{}
	opts.Render.SearchLimit = 1

	h := newServer(t, sampleLoader, opts).Handler()
	resp := decode[server.StudentsResponse](t, get(t, h, "/api/students?q=sh"))

	assert.Equal(t, 3, resp.Total)
	assert.True(t, resp.Truncated)
	assert.Len(t, resp.Students, 1)
}

func TestAPIStudentsWithoutQueryListsStandings(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()
	resp := decode[server.StudentsResponse](t, get(t, h, "/api/students"))

	require.Len(t, resp.Students, 5)
	assert.Equal(t, "CS001", resp.Students[0].USN)
	assert.Equal(t, "CS003", resp.Students[4].USN)
}

func TestAPIStudentProfile(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()

	rec := get(t, h, "/api/students/CS003")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.InDelta(t, 5, body["rank"], 0)
	assert.InDelta(t, 5, body["classSize"], 0)

	rec = get(t, h, "/api/students/CS999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec)["error"], "CS999")
}

func TestAPIAggregates(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()

	tests := []struct {
		path string
		keys []string
	}{
		{"/api/electives", []string{"strongest", "comparison", "summaries", "topPerformers"}},
		{"/api/distribution", []string{"overall", "cumulative", "boxPlots", "subjects"}},
		{"/api/correlation", []string{"subjects", "cells", "pairs"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			rec := get(t, h, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode[map[string]any](t, rec)
			for _, k := range tt.keys {
				assert.Contains(t, body, k)
			}
		})
	}
}

func TestAPIUnknownEndpointIsJSON404(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()
	rec := get(t, h, "/api/teachers")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestAPICORS(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/overview", http.NoBody)
	req.Header.Set("Origin", "https://example.edu")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPageCache(t *testing.T) {
	t.Parallel()

	srv := newServer(t, sampleLoader, server.Options{})
	h := srv.Handler()

	first := get(t, h, "/subjects")
	second := get(t, h, "/subjects")

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	get(t, h, "/students?q=sh")
	get(t, h, "/students?q=es")
	get(t, h, "/students?q=sh")

	st := srv.PageCacheStats()
	assert.Equal(t, int64(2), st.Hits)
	assert.Equal(t, int64(3), st.Misses)
	assert.Equal(t, 3, st.Entries)
}

func TestPageCacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := serverConfig()
	cfg.PageCacheEntries = 0

	src := ingest.NewSource("mem", "CSE 2024", ingest.WithLogger(quietLogger), ingest.WithLoader(sampleLoader))
	srv := server.New(cfg, src, server.Options{Logger: quietLogger})

	require.Equal(t, http.StatusOK, get(t, srv.Handler(), "/").Code)
	assert.Zero(t, srv.PageCacheStats().Entries)
}

func TestPages(t *testing.T) {
	t.Parallel()

	h := newServer(t, sampleLoader, server.Options{}).Handler()

	tests := []struct {
		target string
		code   int
		want   string
	}{
		{"/", http.StatusOK, "Class Overview"},
		{"/subjects", http.StatusOK, "Subject Analysis"},
		{"/electives", http.StatusOK, "Elective Analysis"},
		{"/distribution", http.StatusOK, "Score Distribution"},
		{"/correlation", http.StatusOK, "Correlation Matrix"},
		{"/students?q=Esha", http.StatusOK, "Esha N"},
		{"/students?usn=CS002", http.StatusOK, "Bharath K"},
		{"/gradebook", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			rec := get(t, h, tt.target)
			require.Equal(t, tt.code, rec.Code)

			if tt.want != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
				assert.Contains(t, rec.Body.String(), tt.want)
				assert.Contains(t, rec.Body.String(), `href="/subjects"`)
			}
		})
	}
}

func TestHealthAndReadiness(t *testing.T) {
	t.Parallel()

	ok := newServer(t, sampleLoader, server.Options{}).Handler()
	assert.Equal(t, http.StatusOK, get(t, ok, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, ok, "/readyz").Code)

	broken := newServer(t, func(context.Context, string, string) (*cohort.Dataset, error) {
		return nil, errors.New("no such file")
	}, server.Options{}).Handler()

	assert.Equal(t, http.StatusOK, get(t, broken, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, broken, "/readyz").Code)

	rec := get(t, broken, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No student data")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	providers, err := observability.InitWithWriter(observability.DefaultConfig(), io.Discard)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	red, err := observability.NewREDMetrics(providers.Meter)
	require.NoError(t, err)

	dm, err := observability.NewDatasetMetrics(providers.Meter)
	require.NoError(t, err)

	h := newServer(t, sampleLoader, server.Options{
		RED:            red,
		Metrics:        dm,
		MetricsHandler: providers.MetricsHandler,
	}).Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/api/overview").Code)
	require.Equal(t, http.StatusOK, get(t, h, "/").Code)

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "markboard_requests")
	assert.Contains(t, rec.Body.String(), "markboard_pages_rendered")
}

func TestTracingUsesRoutePatterns(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() { require.NoError(t, tp.Shutdown(context.Background())) })

	h := newServer(t, sampleLoader, server.Options{Tracer: tp.Tracer("test")}).Handler()
	require.Equal(t, http.StatusOK, get(t, h, "/api/students/CS001").Code)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/students/{usn}", spans[0].Name)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	cfg := serverConfig()
	cfg.Port = 0

	src := ingest.NewSource("mem", "CSE 2024", ingest.WithLogger(quietLogger), ingest.WithLoader(sampleLoader))
	srv := server.New(cfg, src, server.Options{Logger: quietLogger})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, srv.Listen(ctx))

	done := make(chan error, 1)

	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
