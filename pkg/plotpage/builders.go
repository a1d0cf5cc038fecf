package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SeriesData is a single numeric value in a chart series.
type SeriesData any

// BarSeries is one named bar series. Colors, when set, colour each bar
// individually and take precedence over Color.
type BarSeries struct {
	Name   string
	Data   []SeriesData
	Color  string
	Colors []string
	Stack  string
}

// LineSeries is one named line series; AreaOpacity > 0 fills below the line.
type LineSeries struct {
	Name        string
	Data        []SeriesData
	Color       string
	AreaOpacity float32
	Smooth      bool
}

// PieSlice is one sector of a pie or donut chart.
type PieSlice struct {
	Name  string
	Value float64
	Color string
}

// RadarAxis is one spoke of a radar chart.
type RadarAxis struct {
	Name string
	Max  float64
}

// RadarSeries is a polygon drawn over the radar axes, one value per axis.
type RadarSeries struct {
	Name   string
	Values []float64
	Color  string
}

// ScatterPoint is one labelled point of a scatter series.
type ScatterPoint struct {
	X     float64
	Y     float64
	Label string
}

// ScatterSeries is a named group of points.
type ScatterSeries struct {
	Name   string
	Points []ScatterPoint
	Color  string
}

// HeatCell is a value at column X, row Y of a heat map.
type HeatCell struct {
	X     int
	Y     int
	Value float64
}

// Box is the five-number summary of one box-plot category.
type Box struct {
	Label    string
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	Outliers []float64
}

func resolveOpts(cOpts *ChartOpts) *ChartOpts {
	if cOpts == nil {
		return DefaultChartOpts()
	}

	return cOpts
}

// BuildBarChart constructs a vertical bar chart with one bar group per label.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, yAxisLabel string) *charts.Bar {
	cOpts = resolveOpts(cOpts)

	legend := cOpts.Legend()
	if len(series) < 2 {
		legend = cOpts.HiddenLegend()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(legend),
	)

	bar.SetXAxis(labels)

	for _, s := range series {
		barData := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			barData[i] = opts.BarData{Value: v}
			if i < len(s.Colors) && s.Colors[i] != "" {
				barData[i].ItemStyle = &opts.ItemStyle{Color: s.Colors[i]}
			}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" && len(s.Colors) == 0 {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		if s.Stack != "" {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: s.Stack}))
		}

		bar.AddSeries(s.Name, barData, seriesOpts...)
	}

	return bar
}

// BuildLineChart constructs a line (or area) chart over the labels.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildLineChart(cOpts *ChartOpts, labels []string, series []LineSeries, yAxisLabel string) *charts.Line {
	cOpts = resolveOpts(cOpts)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	line.SetXAxis(labels)

	for _, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			lineData[i] = opts.LineData{Value: v}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			)
		}

		if s.Smooth {
			seriesOpts = append(seriesOpts, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		}

		if s.AreaOpacity > 0 {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(s.AreaOpacity)}))
		}

		line.AddSeries(s.Name, lineData, seriesOpts...)
	}

	return line
}

// BuildPieChart constructs a pie chart; donut leaves a hole in the middle.
// Zero-valued slices are kept so the legend lists every category.
func BuildPieChart(cOpts *ChartOpts, name string, slices []PieSlice, donut bool) *charts.Pie {
	cOpts = resolveOpts(cOpts)

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Name, Value: s.Value}
		if s.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: s.Color}
		}
	}

	var radius any = "65%"
	if donut {
		radius = []string{"40%", "65%"}
	}

	pie.AddSeries(name, data,
		charts.WithPieChartOpts(opts.PieChart{Radius: radius, Center: []string{"50%", "55%"}}),
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Color:     cOpts.TextColor(),
			Formatter: "{b}: {c}",
		}),
	)

	return pie
}

// BuildRadarChart constructs a radar chart with one polygon per series.
func BuildRadarChart(cOpts *ChartOpts, axes []RadarAxis, series []RadarSeries) *charts.Radar {
	cOpts = resolveOpts(cOpts)

	indicators := make([]*opts.Indicator, len(axes))
	for i, a := range axes {
		indicators[i] = &opts.Indicator{Name: a.Name, Max: float32(a.Max)}
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithLegendOpts(cOpts.Legend()),
		charts.WithRadarComponentOpts(cOpts.RadarComponent(indicators, radarSplits)),
	)

	for _, s := range series {
		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			)
		}

		seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(radarFill)}))

		radar.AddSeries(s.Name, []opts.RadarData{{Name: s.Name, Value: s.Values}}, seriesOpts...)
	}

	return radar
}

const (
	radarSplits = 5
	radarFill   = 0.25
	scatterSize = 10
)

// BuildScatterChart constructs a scatter chart on value axes bounded to
// [0, limit]. Point labels show in the tooltip.
func BuildScatterChart(cOpts *ChartOpts, xName, yName string, limit float64, series []ScatterSeries) *charts.Scatter {
	cOpts = resolveOpts(cOpts)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.ValueXAxis(xName, 0, limit)),
		charts.WithYAxisOpts(cOpts.BoundedYAxis(yName, 0, limit)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	for _, s := range series {
		data := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.ScatterData{
				Name:       p.Label,
				Value:      []float64{p.X, p.Y},
				SymbolSize: scatterSize,
			}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		scatter.AddSeries(s.Name, data, seriesOpts...)
	}

	return scatter
}

// BuildHeatMap constructs a labelled heat map. Values outside [lo, hi] are
// drawn with the end colours of the ramp.
func BuildHeatMap(cOpts *ChartOpts, xLabels, yLabels []string, cells []HeatCell, lo, hi float32) *charts.HeatMap {
	cOpts = resolveOpts(cOpts)

	yAxis := cOpts.YAxis("")
	yAxis.Type = "category"
	yAxis.Data = yLabels
	yAxis.SplitArea = &opts.SplitArea{Show: opts.Bool(true)}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(yAxis),
		charts.WithVisualMapOpts(cOpts.HeatRange(lo, hi)),
		charts.WithLegendOpts(cOpts.HiddenLegend()),
	)

	hm.SetXAxis(xLabels)

	data := make([]opts.HeatMapData, len(cells))
	for i, c := range cells {
		data[i] = opts.HeatMapData{Value: [3]any{c.X, c.Y, c.Value}}
	}

	hm.AddSeries("value", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Color: cOpts.TextColor()}))

	return hm
}

// BuildBoxPlot constructs a box-and-whisker chart with outliers overlaid as
// scatter points.
func BuildBoxPlot(cOpts *ChartOpts, boxes []Box, yAxisLabel string, limit float64) *charts.BoxPlot {
	cOpts = resolveOpts(cOpts)

	labels := make([]string, len(boxes))
	data := make([]opts.BoxPlotData, len(boxes))

	var outliers []opts.ScatterData

	for i, b := range boxes {
		labels[i] = b.Label
		data[i] = opts.BoxPlotData{Name: b.Label, Value: []float64{b.Min, b.Q1, b.Median, b.Q3, b.Max}}

		for _, o := range b.Outliers {
			outliers = append(outliers, opts.ScatterData{Value: []any{b.Label, o}, SymbolSize: scatterSize})
		}
	}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init()),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(cOpts.BoundedYAxis(yAxisLabel, 0, limit)),
		charts.WithLegendOpts(cOpts.HiddenLegend()),
	)

	bp.SetXAxis(labels)
	bp.AddSeries("scores", data, charts.WithItemStyleOpts(opts.ItemStyle{
		Color:       cOpts.theme.AccentSubtle,
		BorderColor: cOpts.AccentColor(),
	}))

	if len(outliers) > 0 {
		overlay := charts.NewScatter()
		overlay.AddSeries("outliers", outliers, charts.WithItemStyleOpts(opts.ItemStyle{Color: cOpts.theme.Heat[0]}))
		bp.Overlap(overlay)
	}

	return bp
}
