// Package dashboard assembles the markboard pages from a cohort dataset.
package dashboard

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Page identifiers, also used as routes and file stems.
const (
	PageOverview     = "overview"
	PageSubjects     = "subjects"
	PageStudents     = "students"
	PageElectives    = "electives"
	PageDistribution = "distribution"
	PageCorrelation  = "correlation"
)

// Defaults applied when Options leave a field at zero.
const (
	DefaultTopN        = 10
	DefaultSearchLimit = 20
)

// ErrUnknownPage is returned by Build for an unregistered page ID.
var ErrUnknownPage = errors.New("unknown dashboard page")

// Pages lists every dashboard page in navigation order.
func Pages() []plotpage.PageMeta {
	return []plotpage.PageMeta{
		{ID: PageOverview, Title: "Overview", Description: "Class size, averages, grades and the top of the class."},
		{ID: PageSubjects, Title: "Subjects", Description: "Per-subject statistics, pass rates and leaders."},
		{ID: PageStudents, Title: "Students", Description: "Search a student and compare them with the class."},
		{ID: PageElectives, Title: "Electives", Description: "Enrollment and results across the three electives."},
		{ID: PageDistribution, Title: "Distribution", Description: "How percentages and subject scores are spread."},
		{ID: PageCorrelation, Title: "Correlation", Description: "How performance in one subject tracks another."},
	}
}

// Options tunes page content.
type Options struct {
	Theme       plotpage.Theme
	TopN        int
	BucketCount int
	SearchLimit int
	// Nav is the navigation bar; nil renders pages without one.
	Nav []plotpage.NavLink
	// SearchAction is the student search form target; empty hides the form.
	SearchAction string
}

// WithDefaults fills zero fields with package defaults.
func (o Options) WithDefaults() Options {
	if o.Theme == "" {
		o.Theme = plotpage.ThemeLight
	}

	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}

	if o.BucketCount <= 0 {
		o.BucketCount = views.DefaultBucketCount
	}

	if o.SearchLimit <= 0 {
		o.SearchLimit = DefaultSearchLimit
	}

	return o
}

// Builder renders pages for one dataset. It is safe for concurrent use.
type Builder struct {
	ds       *cohort.Dataset
	students []cohort.Student
	opts     Options
	chart    *plotpage.ChartOpts
}

// New creates a Builder over ds.
func New(ds *cohort.Dataset, opts Options) *Builder {
	opts = opts.WithDefaults()

	return &Builder{
		ds:       ds,
		students: ds.Students(),
		opts:     opts,
		chart:    plotpage.NewChartOpts(opts.Theme),
	}
}

// Build returns the page with the given ID. The students page is built
// without a selection.
func (b *Builder) Build(id string) (*plotpage.Page, error) {
	var page *plotpage.Page

	switch id {
	case PageOverview:
		page = b.Overview()
	case PageSubjects:
		page = b.Subjects()
	case PageStudents:
		page = b.Students("", "")
	case PageElectives:
		page = b.Electives()
	case PageDistribution:
		page = b.Distribution()
	case PageCorrelation:
		page = b.Correlation()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}

	return page, nil
}

// RenderAll writes every page and the index through r.
func (b *Builder) RenderAll(r *plotpage.MultiPageRenderer) error {
	for _, meta := range Pages() {
		page, err := b.Build(meta.ID)
		if err != nil {
			return err
		}

		renderErr := r.RenderPage(meta.ID, page)
		if renderErr != nil {
			return fmt.Errorf("render %s: %w", meta.ID, renderErr)
		}
	}

	return r.RenderIndex(Pages())
}

func (b *Builder) newPage(id, title, description string) *plotpage.Page {
	page := plotpage.NewPage(title, description).WithTheme(b.opts.Theme)
	if b.ds.Title() != "" {
		page.ProjectSubtitle = b.ds.Title()
	}

	if b.opts.Nav != nil {
		page.WithNav(b.opts.Nav, id)
	}

	if len(b.students) == 0 {
		page.Add(plotpage.Section{
			Chart: plotpage.NewAlert("No student data", "The dataset is empty or failed to load; figures below are zero.", plotpage.ToneWarning),
		})
	}

	return page
}
