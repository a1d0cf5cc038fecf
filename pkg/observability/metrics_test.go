package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/markboard/pkg/observability"
)

func newManualMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()

	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestREDMetrics_RecordRequest(t *testing.T) {
	t.Parallel()

	reader, mp := newManualMeter()

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "GET /", "ok", 100*time.Millisecond)

	rm := collectMetrics(t, reader)
	require.NotNil(t, findMetric(rm, "markboard.requests.total"))
	require.NotNil(t, findMetric(rm, "markboard.request.duration.seconds"))
	assert.Nil(t, findMetric(rm, "markboard.errors.total"))
}

func TestREDMetrics_TrackInflight(t *testing.T) {
	t.Parallel()

	reader, mp := newManualMeter()

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	done := red.TrackInflight(context.Background(), "GET")

	inflight := findMetric(collectMetrics(t, reader), "markboard.inflight.requests")
	require.NotNil(t, inflight)

	sum, ok := inflight.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	done()

	sum, ok = findMetric(collectMetrics(t, reader), "markboard.inflight.requests").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(0), sum.DataPoints[0].Value)
}

func TestDatasetMetrics_RecordLoad(t *testing.T) {
	t.Parallel()

	reader, mp := newManualMeter()

	dm, err := observability.NewDatasetMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	dm.RecordLoad(ctx, 120, 40*time.Millisecond, nil)
	dm.RecordLoad(ctx, 0, time.Millisecond, errors.New("boom"))
	dm.RecordPage(ctx, "overview")

	rm := collectMetrics(t, reader)

	students := findMetric(rm, "markboard.dataset.students")
	require.NotNil(t, students)

	gauge, ok := students.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(0), gauge.DataPoints[0].Value)

	loads, ok := findMetric(rm, "markboard.dataset.loads.total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, loads.DataPoints, 2)

	require.NotNil(t, findMetric(rm, "markboard.pages.rendered.total"))
}

func TestDatasetMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var dm *observability.DatasetMetrics

	assert.NotPanics(t, func() {
		dm.RecordLoad(context.Background(), 1, time.Millisecond, nil)
		dm.RecordPage(context.Background(), "students")
	})
}
