// Package report renders cohort analytics for terminals and files: go-pretty
// tables with coloured grades, an indented JSON summary and an xlsx workbook.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Format selects the report encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

const (
	defaultTopN = 10
	filePerm    = 0o644
)

// Sentinel errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrStudentNotFound   = errors.New("student not found")
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatXLSX}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatForPath infers the format from a file extension, defaulting to text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatText
	}
}

// Options configures a Reporter.
type Options struct {
	TopN    int
	NoColor bool
}

// Summary is the machine-readable class report.
type Summary struct {
	Title       string                      `json:"title"`
	Overview    analytics.ClassOverview     `json:"overview"`
	Subjects    []analytics.SubjectStats    `json:"subjects"`
	Electives   []views.ElectiveRow         `json:"electives"`
	Leaderboard []views.LeaderboardRow      `json:"leaderboard"`
	Correlation []analytics.CorrelationPair `json:"correlation"`
}

// Reporter renders reports for one dataset.
type Reporter struct {
	ds       *cohort.Dataset
	students []cohort.Student
	opts     Options
	palette  palette
}

// New creates a Reporter.
func New(ds *cohort.Dataset, opts Options) *Reporter {
	if opts.TopN <= 0 {
		opts.TopN = defaultTopN
	}

	return &Reporter{
		ds:       ds,
		students: ds.Students(),
		opts:     opts,
		palette:  newPalette(opts.NoColor),
	}
}

// Summary computes the class report.
func (r *Reporter) Summary() Summary {
	return Summary{
		Title:       r.ds.Title(),
		Overview:    analytics.Overview(r.students),
		Subjects:    analytics.AllSubjectStats(r.students),
		Electives:   views.ElectiveComparison(r.students),
		Leaderboard: views.Leaderboard(r.students, r.opts.TopN),
		Correlation: analytics.NewCorrelationMatrix(r.students).Pairs(),
	}
}

// Write renders the class report to w in the given format.
func (r *Reporter) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		return r.WriteText(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatXLSX:
		return r.WriteXLSX(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveToFile writes the class report to path.
func (r *Reporter) SaveToFile(path string, format Format) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return r.Write(f, format)
}

// WriteJSON writes Summary as indented JSON.
func (r *Reporter) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(r.Summary())
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	return nil
}

// Profile looks up a student by USN.
func (r *Reporter) Profile(usn string) (views.StudentProfile, error) {
	s, ok := r.ds.Lookup(usn)
	if !ok {
		return views.StudentProfile{}, fmt.Errorf("%w: %s%s", ErrStudentNotFound, usn, views.USNHint(r.students, usn))
	}

	return views.Profile(s, r.students), nil
}
