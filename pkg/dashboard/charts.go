package dashboard

import (
	"github.com/go-echarts/go-echarts/v2/charts"

	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// datumBar draws one bar per datum, each in the datum's own colour.
func (b *Builder) datumBar(series string, data []views.BarDatum, yLabel string) *charts.Bar {
	labels := make([]string, len(data))
	values := make([]plotpage.SeriesData, len(data))
	colors := make([]string, len(data))

	for i, d := range data {
		labels[i] = d.Name
		values[i] = d.Value
		colors[i] = d.Color
	}

	return plotpage.BuildBarChart(b.chart, labels, []plotpage.BarSeries{
		{Name: series, Data: values, Colors: colors, Color: b.chart.AccentColor()},
	}, yLabel)
}

// datumPie draws one slice per datum.
func (b *Builder) datumPie(series string, data []views.BarDatum) *charts.Pie {
	slices := make([]plotpage.PieSlice, len(data))
	for i, d := range data {
		slices[i] = plotpage.PieSlice{Name: d.Name, Value: d.Value, Color: d.Color}
	}

	return plotpage.BuildPieChart(b.chart, series, slices, true)
}

func bucketBar(b *Builder, series string, buckets []views.Bucket, color string) *charts.Bar {
	labels := make([]string, len(buckets))
	values := make([]plotpage.SeriesData, len(buckets))

	for i, bk := range buckets {
		labels[i] = bk.Range
		values[i] = bk.Count
	}

	return plotpage.BuildBarChart(b.chart, labels, []plotpage.BarSeries{
		{Name: series, Data: values, Color: color},
	}, "Students")
}
