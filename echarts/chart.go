package echarts

import (
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vench/pivotchart"
)

// ChartOpts holds presentation settings shared by bar and line charts.
type ChartOpts struct {
	Title   string
	Width   string
	Height  string
	Palette []string
}

func DefaultChartOpts() *ChartOpts {
	return &ChartOpts{
		Width:   "100%",
		Height:  "500px",
		Palette: Light24,
	}
}

// Renderer is implemented by go-echarts charts.
type Renderer interface {
	Render(w io.Writer) error
}

// Build returns a bar or line chart for series.
func Build(cOpts *ChartOpts, series *pivotchart.ChartSeries) Renderer {
	if series.Kind == pivotchart.ChartLine {
		return BuildLineChart(cOpts, series)
	}

	return BuildBarChart(cOpts, series)
}

// DisplayName turns a column name such as "Starting_Year" into an axis title.
func DisplayName(column string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(column, "_", " "))
}

func globalOptions(cOpts *ChartOpts, series *pivotchart.ChartSeries) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: cOpts.Width, Height: cOpts.Height}),
		charts.WithTitleOpts(opts.Title{Title: cOpts.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(series.ColorBy != pivotchart.NoDimension || series.PatternBy != pivotchart.NoDimension)}),
		charts.WithXAxisOpts(opts.XAxis{Name: pivotchart.CategoryColumn}),
		charts.WithYAxisOpts(opts.YAxis{Name: DisplayName(series.Measure)}),
	}
}

func labelOpts(show bool) opts.Label {
	return opts.Label{
		Show:      opts.Bool(show),
		Position:  "top",
		Formatter: "{b}",
	}
}

// BuildBarChart constructs a go-echarts Bar chart. If cOpts is nil,
// DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, series *pivotchart.ChartSeries) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(cOpts, series)...)
	bar.SetXAxis(series.Categories)

	for _, s := range BuildSeries(series, cOpts.Palette) {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{Name: s.Labels[i], Value: v}
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLabelOpts(labelOpts(series.ShowLabels)),
		}
		switch series.BarMode {
		case pivotchart.BarModeRelative, pivotchart.BarModeStack:
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
		case pivotchart.BarModeOverlay:
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{BarGap: "-100%"}))
		}

		bar.AddSeries(s.Name, data, seriesOpts...)
	}

	return bar
}

// BuildLineChart constructs a go-echarts Line chart. If cOpts is nil,
// DefaultChartOpts() is used.
func BuildLineChart(cOpts *ChartOpts, series *pivotchart.ChartSeries) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(cOpts, series)...)
	line.SetXAxis(series.Categories)

	for _, s := range BuildSeries(series, cOpts.Palette) {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Name: s.Labels[i], Value: v}
		}

		lineStyle := opts.LineStyle{Color: s.Color}
		if s.Dash != "" {
			lineStyle.Type = s.Dash
		}

		line.AddSeries(s.Name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLineStyleOpts(lineStyle),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(series.Markers)}),
			charts.WithLabelOpts(labelOpts(series.ShowLabels)),
		)
	}

	return line
}
