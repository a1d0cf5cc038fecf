package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricDatasetLoads        = "markboard.dataset.loads.total"
	metricDatasetLoadDuration = "markboard.dataset.load.duration.seconds"
	metricDatasetStudents     = "markboard.dataset.students"
	metricPagesRendered       = "markboard.pages.rendered.total"

	attrResult = "result"
	attrPage   = "page"
)

// DatasetMetrics holds OTel instruments for dataset loading and page rendering.
type DatasetMetrics struct {
	loads         metric.Int64Counter
	loadDuration  metric.Float64Histogram
	students      metric.Int64Gauge
	pagesRendered metric.Int64Counter
}

// NewDatasetMetrics creates dataset metric instruments from the given meter.
func NewDatasetMetrics(mt metric.Meter) (*DatasetMetrics, error) {
	b := newMetricBuilder(mt)

	dm := &DatasetMetrics{
		loads:         b.counter(metricDatasetLoads, "Dataset load attempts by result", "{load}"),
		loadDuration:  b.histogram(metricDatasetLoadDuration, "Dataset load duration in seconds", "s", durationBucketBoundaries...),
		students:      b.gauge(metricDatasetStudents, "Students in the loaded dataset", "{student}"),
		pagesRendered: b.counter(metricPagesRendered, "Dashboard pages rendered", "{page}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return dm, nil
}

// RecordLoad records one dataset load attempt.
// Safe to call on a nil receiver (no-op).
func (dm *DatasetMetrics) RecordLoad(ctx context.Context, students int, duration time.Duration, err error) {
	if dm == nil {
		return
	}

	result := statusOK
	if err != nil {
		result = statusError
	}

	attrs := metric.WithAttributes(attribute.String(attrResult, result))

	dm.loads.Add(ctx, 1, attrs)
	dm.loadDuration.Record(ctx, duration.Seconds(), attrs)
	dm.students.Record(ctx, int64(students))
}

// RecordPage counts a rendered dashboard page.
// Safe to call on a nil receiver (no-op).
func (dm *DatasetMetrics) RecordPage(ctx context.Context, page string) {
	if dm == nil {
		return
	}

	dm.pagesRendered.Add(ctx, 1, metric.WithAttributes(attribute.String(attrPage, page)))
}
