package dashboard

import (
	"strconv"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
	"github.com/Sumatoshi-tech/markboard/pkg/views"
)

const scatterPairs = 3

// Correlation builds the subject correlation page.
func (b *Builder) Correlation() *plotpage.Page {
	m := analytics.NewCorrelationMatrix(b.students)
	pairs := m.Pairs()
	page := b.newPage(PageCorrelation, "Subject Correlation", "Pearson correlation of normalized scores between subjects.")

	tabs := make([]plotpage.TabItem, 0, scatterPairs)
	for i, p := range pairs {
		if i == scatterPairs {
			break
		}

		tabs = append(tabs, plotpage.TabItem{
			ID:      "pair-" + string(p.X) + "-" + string(p.Y),
			Label:   label(p.X) + " vs " + label(p.Y),
			Content: plotpage.WrapChart(b.scatter(p)),
		})
	}

	page.Add(
		plotpage.Section{
			Title:    "Correlation Matrix",
			Subtitle: "Only students with both scores count toward a pair; fewer than three pairs reads 0.",
			Chart:    b.heatMap(m),
			Hint: plotpage.Hint{
				Title: "How to interpret:",
				Items: []string{
					"<strong>0.7 and above</strong> = strong, <strong>0.5</strong> = moderate, <strong>0.3</strong> = weak",
					"Negative values mean a high mark in one subject goes with a low mark in the other",
				},
			},
		},
		plotpage.Section{
			Title:    "Pairs by Strength",
			Subtitle: "All ten subject pairs, strongest first.",
			Chart:    pairsTable(pairs),
		},
		plotpage.Section{
			Title: "Strongest Pairs",
			Chart: plotpage.NewTabs("pair-tabs", tabs...),
		},
	)

	return page
}

func label(k subject.Key) string {
	return subject.MustLookup(k).ShortName
}

func (b *Builder) heatMap(m analytics.CorrelationMatrix) plotpage.Renderable {
	labels := make([]string, len(m.Keys))
	for i, k := range m.Keys {
		labels[i] = label(k)
	}

	src := views.CorrelationCells(m)
	cells := make([]plotpage.HeatCell, len(src))

	for i, c := range src {
		cells[i] = plotpage.HeatCell{X: c.X, Y: c.Y, Value: c.Value}
	}

	return plotpage.BuildHeatMap(b.chart, labels, labels, cells, -1, 1)
}

func pairsTable(pairs []analytics.CorrelationPair) *plotpage.Table {
	table := plotpage.NewTable("Subjects", "r", "Strength")

	for _, p := range pairs {
		table.AddRow(label(p.X)+" / "+label(p.Y), strconv.FormatFloat(stats.Round(p.Value, 2), 'f', 2, 64), p.Strength())
	}

	return table
}

func (b *Builder) scatter(p analytics.CorrelationPair) plotpage.Renderable {
	src := views.ScatterPoints(b.students, p.X, p.Y)
	points := make([]plotpage.ScatterPoint, len(src))

	for i, sp := range src {
		points[i] = plotpage.ScatterPoint{X: float64(sp.X), Y: float64(sp.Y), Label: sp.Name + " (" + sp.USN + ")"}
	}

	return plotpage.BuildScatterChart(b.chart, label(p.X)+" %", label(p.Y)+" %", views.FullMark, []plotpage.ScatterSeries{
		{Name: "Students", Points: points, Color: b.chart.AccentColor()},
	})
}
