package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Default chart canvas size.
const (
	DefaultChartWidth  = "100%"
	DefaultChartHeight = "420px"
)

// ChartOpts produces go-echarts option structs coloured for a theme.
type ChartOpts struct {
	theme  ThemeConfig
	height string
}

// NewChartOpts creates chart options for the given theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme), height: DefaultChartHeight}
}

// DefaultChartOpts returns chart options for the light theme.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeLight)
}

// WithHeight returns a copy whose charts use the given canvas height.
func (c *ChartOpts) WithHeight(height string) *ChartOpts {
	cp := *c
	cp.height = height

	return &cp
}

// Init returns initialization options with the themed background.
func (c *ChartOpts) Init() opts.Initialization {
	return opts.Initialization{
		Width:           DefaultChartWidth,
		Height:          c.height,
		BackgroundColor: c.theme.ChartBackground,
	}
}

// Legend returns a scrollable legend along the top edge.
func (c *ChartOpts) Legend() opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(true),
		Type:      "scroll",
		Top:       "2%",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// HiddenLegend returns a legend that is not drawn.
func (c *ChartOpts) HiddenLegend() opts.Legend {
	return opts.Legend{Show: opts.Bool(false)}
}

// XAxis returns category or value x-axis options.
func (c *ChartOpts) XAxis(name string) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// ValueXAxis returns a value x-axis bounded to [lo, hi].
func (c *ChartOpts) ValueXAxis(name string, lo, hi float64) opts.XAxis {
	axis := c.XAxis(name)
	axis.Type = "value"
	axis.Min = lo
	axis.Max = hi
	axis.SplitLine = &opts.SplitLine{
		Show:      opts.Bool(true),
		LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
	}

	return axis
}

// YAxis returns y-axis options with themed split lines.
func (c *ChartOpts) YAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.theme.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
		},
	}
}

// BoundedYAxis returns a value y-axis bounded to [lo, hi].
func (c *ChartOpts) BoundedYAxis(name string, lo, hi float64) opts.YAxis {
	axis := c.YAxis(name)
	axis.Type = "value"
	axis.Min = lo
	axis.Max = hi

	return axis
}

// Grid returns plot-area margins that leave room for the legend.
func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{
		Top:          "14%",
		Bottom:       "8%",
		Left:         "4%",
		Right:        "4%",
		ContainLabel: opts.Bool(true),
	}
}

// Tooltip returns tooltip options for the given trigger ("axis" or "item").
func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}

// RadarComponent returns radar axes with themed split lines.
func (c *ChartOpts) RadarComponent(indicators []*opts.Indicator, splitNumber int) opts.RadarComponent {
	return opts.RadarComponent{
		Indicator:   indicators,
		Shape:       "polygon",
		SplitNumber: splitNumber,
		SplitLine:   &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid}},
		SplitArea:   &opts.SplitArea{Show: opts.Bool(false)},
		AxisLine:    &opts.AxisLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		AxisName:    &opts.AxisName{Color: c.theme.ChartTextMuted},
	}
}

// HeatRange returns a continuous visual map over [lo, hi].
func (c *ChartOpts) HeatRange(lo, hi float32) opts.VisualMap {
	return opts.VisualMap{
		Calculable: opts.Bool(true),
		Min:        lo,
		Max:        hi,
		Orient:     "horizontal",
		Left:       "center",
		Bottom:     "0",
		InRange:    &opts.VisualMapInRange{Color: c.theme.Heat[:]},
		TextStyle:  &opts.TextStyle{Color: c.theme.ChartTextMuted},
	}
}

// TextColor returns the primary chart text colour.
func (c *ChartOpts) TextColor() string {
	return c.theme.ChartText
}

// AccentColor returns the theme accent colour.
func (c *ChartOpts) AccentColor() string {
	return c.theme.Accent
}

// MutedColor returns the muted chart text colour.
func (c *ChartOpts) MutedColor() string {
	return c.theme.ChartTextMuted
}
