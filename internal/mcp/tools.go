package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/markboard/internal/ingest"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Tool name constants.
const (
	ToolNameClassOverview = "class_overview"
	ToolNameSubjectStats  = "subject_stats"
	ToolNameStudentLookup = "student_lookup"
	ToolNameCorrelation   = "correlation"
)

// Sentinel errors for tool input validation.
var (
	// ErrNoDataset indicates the server was started without a dataset source.
	ErrNoDataset = errors.New("no dataset configured")
	// ErrEmptySubject indicates the subject parameter is empty.
	ErrEmptySubject = errors.New("subject parameter is required and must not be empty")
	// ErrEmptyLookup indicates neither usn nor query was given.
	ErrEmptyLookup = errors.New("either usn or query is required")
	// ErrStudentNotFound indicates no student has the requested USN.
	ErrStudentNotFound = errors.New("student not found")
)

// Input types (auto-generate JSON schemas via struct tags).

// ClassOverviewInput is the input schema for the class_overview tool.
type ClassOverviewInput struct {
	TopN int `json:"top_n,omitempty" jsonschema:"number of top students to include (default: 10)"`
}

// SubjectStatsInput is the input schema for the subject_stats tool.
type SubjectStatsInput struct {
	Subject string `json:"subject"           jsonschema:"subject key or short name (e.g. dbms or AIML)"`
	Buckets int    `json:"buckets,omitempty" jsonschema:"number of score buckets (default: 10)"`
}

// StudentLookupInput is the input schema for the student_lookup tool.
type StudentLookupInput struct {
	USN   string `json:"usn,omitempty"   jsonschema:"exact university seat number"`
	Query string `json:"query,omitempty" jsonschema:"case-insensitive part of a name or USN"`
}

// CorrelationInput is the input schema for the correlation tool.
type CorrelationInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of pairs to return (default: all)"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// OverviewResult is the class_overview payload.
type OverviewResult struct {
	Title       string                  `json:"title"`
	Overview    analytics.ClassOverview `json:"overview"`
	TopStudents []views.LeaderboardRow  `json:"topStudents"`
}

// SubjectResult is the subject_stats payload.
type SubjectResult struct {
	Stats   analytics.SubjectStats `json:"stats"`
	Buckets []views.Bucket         `json:"buckets"`
	Leaders []views.SubjectRankRow `json:"leaders"`
}

// SearchResult is the student_lookup payload for a query.
type SearchResult struct {
	Query     string                 `json:"query"`
	Total     int                    `json:"total"`
	Truncated bool                   `json:"truncated"`
	Matches   []views.LeaderboardRow `json:"matches"`
}

// CorrelationResult is the correlation payload.
type CorrelationResult struct {
	Pairs []CorrelationRow `json:"pairs"`
}

// CorrelationRow is one subject pair with a readable strength label.
type CorrelationRow struct {
	X        subject.Key `json:"x"`
	Y        subject.Key `json:"y"`
	R        float64     `json:"r"`
	Strength string      `json:"strength"`
}

type handlers struct {
	source      *ingest.Source
	topN        int
	searchLimit int
}

func (h *handlers) dataset(ctx context.Context) (*cohort.Dataset, error) {
	if h.source == nil {
		return nil, ErrNoDataset
	}

	return h.source.Dataset(ctx), nil
}

func (h *handlers) classOverview(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input ClassOverviewInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	ds, err := h.dataset(ctx)
	if err != nil {
		return errorResult(err)
	}

	topN := input.TopN
	if topN <= 0 {
		topN = h.topN
	}

	students := ds.Students()

	return jsonResult(OverviewResult{
		Title:       ds.Title(),
		Overview:    analytics.Overview(students),
		TopStudents: views.Leaderboard(students, topN),
	})
}

func (h *handlers) subjectStats(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input SubjectStatsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return errorResult(ErrEmptySubject)
	}

	key, err := subject.ParseKey(input.Subject)
	if err != nil {
		return errorResult(err)
	}

	ds, err := h.dataset(ctx)
	if err != nil {
		return errorResult(err)
	}

	buckets := input.Buckets
	if buckets <= 0 {
		buckets = views.DefaultBucketCount
	}

	students := ds.Students()

	return jsonResult(SubjectResult{
		Stats:   analytics.SubjectStatsFor(students, key),
		Buckets: views.SubjectBuckets(students, key, buckets),
		Leaders: views.SubjectRanking(students, key, h.topN),
	})
}

func (h *handlers) studentLookup(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input StudentLookupInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	usn := strings.TrimSpace(input.USN)
	query := strings.TrimSpace(input.Query)

	if usn == "" && query == "" {
		return errorResult(ErrEmptyLookup)
	}

	ds, err := h.dataset(ctx)
	if err != nil {
		return errorResult(err)
	}

	if usn != "" {
		student, ok := ds.Lookup(usn)
		if !ok {
			return errorResult(fmt.Errorf("%w: %s%s", ErrStudentNotFound, usn, views.USNHint(ds.Students(), usn)))
		}

		return jsonResult(views.Profile(student, ds.Students()))
	}

	page := views.SearchRows(ds.Students(), query, h.searchLimit)

	return jsonResult(SearchResult{
		Query:     query,
		Total:     page.Total,
		Truncated: page.Truncated,
		Matches:   page.Rows,
	})
}

func (h *handlers) correlation(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input CorrelationInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	ds, err := h.dataset(ctx)
	if err != nil {
		return errorResult(err)
	}

	pairs := analytics.NewCorrelationMatrix(ds.Students()).Pairs()
	if input.Limit > 0 && input.Limit < len(pairs) {
		pairs = pairs[:input.Limit]
	}

	result := CorrelationResult{Pairs: make([]CorrelationRow, 0, len(pairs))}
	for _, p := range pairs {
		result.Pairs = append(result.Pairs, CorrelationRow{X: p.X, Y: p.Y, R: p.Value, Strength: p.Strength()})
	}

	return jsonResult(result)
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
