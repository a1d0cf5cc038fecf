package dashboard

import (
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

// Distribution builds the score distribution page.
func (b *Builder) Distribution() *plotpage.Page {
	page := b.newPage(PageDistribution, "Score Distribution", "Spread of overall percentages and subject marks.")

	tabs := make([]plotpage.TabItem, 0, len(subject.Keys()))
	for _, d := range subject.Descriptors() {
		tabs = append(tabs, plotpage.TabItem{
			ID:      "dist-" + string(d.Key),
			Label:   d.ShortName,
			Content: plotpage.WrapChart(bucketBar(b, d.ShortName, views.SubjectBuckets(b.students, d.Key, b.opts.BucketCount), d.ChartColor)),
		})
	}

	page.Add(
		plotpage.Section{
			Title:    "Overall Percentage",
			Subtitle: "Students per equal-width percentage band; 100% falls in the last band.",
			Chart:    bucketBar(b, "Students", views.DistributionBuckets(percentages(b.students), views.FullMark, b.opts.BucketCount), b.chart.AccentColor()),
		},
		plotpage.Section{
			Title:    "Cumulative Distribution",
			Subtitle: "Share of students at or below each percentage.",
			Chart:    b.cumulativeChart(views.CumulativeDistribution(b.students)),
			Hint: plotpage.Hint{
				Title: "How to read:",
				Items: []string{
					"The value at <strong>40%</strong> is the share of the class below the pass line (inclusive)",
					"A steep rise marks where most of the class is concentrated",
				},
			},
		},
		plotpage.Section{
			Title:    "Spread by Subject",
			Subtitle: "Box shows the middle half of raw marks; whiskers reach the furthest marks within 1.5 IQR.",
			Chart:    b.boxPlot(analytics.BoxPlots(b.students)),
		},
		plotpage.Section{
			Title: "Subject Histograms",
			Chart: plotpage.NewTabs("dist-tabs", tabs...),
		},
	)

	return page
}

func percentages(students []cohort.Student) []float64 {
	out := make([]float64, len(students))
	for i, s := range students {
		out[i] = s.Percentage()
	}

	return out
}

func (b *Builder) cumulativeChart(data []views.BarDatum) plotpage.Renderable {
	labels := make([]string, len(data))
	values := make([]plotpage.SeriesData, len(data))

	for i, d := range data {
		labels[i] = d.Name
		values[i] = d.Value
	}

	return plotpage.BuildLineChart(b.chart, labels, []plotpage.LineSeries{
		{Name: "At or below", Data: values, Color: b.chart.AccentColor(), AreaOpacity: 0.2, Smooth: true},
	}, "% of students")
}

func (b *Builder) boxPlot(plots []analytics.BoxPlot) plotpage.Renderable {
	boxes := make([]plotpage.Box, len(plots))
	for i, p := range plots {
		boxes[i] = plotpage.Box{
			Label:    p.Label,
			Min:      p.Min,
			Q1:       p.Q1,
			Median:   p.Median,
			Q3:       p.Q3,
			Max:      p.Max,
			Outliers: p.Outliers,
		}
	}

	var limit float64
	for _, d := range subject.Descriptors() {
		limit = max(limit, d.MaxMarks)
	}

	return plotpage.BuildBoxPlot(b.chart, boxes, "Marks", limit)
}
