package ingest

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
)

// LoaderFunc produces a dataset. Load is the production implementation.
type LoaderFunc func(ctx context.Context, path, title string) (*cohort.Dataset, error)

// LoadObserver is notified once when a load attempt completes.
type LoadObserver func(ctx context.Context, students int, duration time.Duration, err error)

// Source loads a dataset once and serves the same immutable snapshot to
// every caller afterwards. A failed load is logged and replaced by an empty
// dataset; it is not retried.
type Source struct {
	path   string
	title  string
	load   LoaderFunc
	logger *slog.Logger
	notify LoadObserver

	once    sync.Once
	dataset *cohort.Dataset
	err     error
	loaded  atomic.Bool
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithLoader replaces the loader, mainly for tests.
func WithLoader(fn LoaderFunc) SourceOption {
	return func(s *Source) { s.load = fn }
}

// WithLogger sets the logger used to report load results.
func WithLogger(logger *slog.Logger) SourceOption {
	return func(s *Source) { s.logger = logger }
}

// WithObserver registers a callback for the load result, such as a metrics recorder.
func WithObserver(fn LoadObserver) SourceOption {
	return func(s *Source) { s.notify = fn }
}

// NewSource creates a lazily loaded source for the dataset at path.
func NewSource(path, title string, opts ...SourceOption) *Source {
	s := &Source{
		path:   path,
		title:  title,
		load:   Load,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Dataset returns the snapshot, loading it on first use.
func (s *Source) Dataset(ctx context.Context) *cohort.Dataset {
	s.once.Do(func() {
		start := time.Now()

		// The snapshot outlives the first caller; its cancellation is ignored.
		ds, err := s.load(context.WithoutCancel(ctx), s.path, s.title)
		elapsed := time.Since(start)

		if err != nil {
			s.err = err
			s.dataset = cohort.Empty(s.title)
			s.logger.ErrorContext(ctx, "load dataset", "path", s.path, "error", err)
		} else {
			s.dataset = ds
			s.logger.InfoContext(ctx, "loaded dataset",
				"path", s.path, "students", ds.Len(), "duration_ms", elapsed.Milliseconds())
		}

		if s.notify != nil {
			s.notify(ctx, s.dataset.Len(), elapsed, err)
		}

		s.loaded.Store(true)
	})

	return s.dataset
}

// Err returns the load error, if any. It is nil until the load completes.
func (s *Source) Err() error {
	if !s.loaded.Load() {
		return nil
	}

	return s.err
}

// Loaded reports whether the load attempt has completed.
func (s *Source) Loaded() bool {
	return s.loaded.Load()
}

// Path returns the dataset location.
func (s *Source) Path() string {
	return s.path
}
