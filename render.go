package pivotchart

import "math"

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
)

type BarMode string

const (
	BarModeGroup    BarMode = "group"
	BarModeRelative BarMode = "relative"
	BarModeStack    BarMode = "stack"
	BarModeOverlay  BarMode = "overlay"
)

// PatternStyle says how the pattern dimension is drawn: hatching for
// bars, dash style for lines.
type PatternStyle string

const (
	PatternHatch PatternStyle = "hatch"
	PatternDash  PatternStyle = "dash"
)

// ChartPoint is one aggregated row as seen by the charting collaborator.
type ChartPoint struct {
	Category string      `json:"category"`
	Value    ValueNumber `json:"value"`
	// Label is the rounded on-chart label; empty when labels are hidden.
	Label   string `json:"label,omitempty"`
	Color   string `json:"color,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// ChartSeries describes a chart without rendering it.
type ChartSeries struct {
	Kind         ChartKind    `json:"kind"`
	Measure      string       `json:"measure"`
	Categories   []string     `json:"categories"`
	ColorBy      DimensionKey `json:"color_by,omitempty"`
	PatternBy    DimensionKey `json:"pattern_by,omitempty"`
	PatternStyle PatternStyle `json:"pattern_style,omitempty"`
	BarMode      BarMode      `json:"bar_mode,omitempty"`
	Markers      bool         `json:"markers"`
	ShowLabels   bool         `json:"show_labels"`
	Points       []ChartPoint `json:"points"`
}

// Record is one row of the exported table.
type Record map[string]interface{}

// TableOutput is the row-oriented view of the aggregated table.
type TableOutput struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

type renderOptions struct {
	barMode        BarMode
	labelPrecision *int
	tablePrecision *int
	markers        bool
	hideLabels     bool
}

// RenderOption configures RenderBars and RenderLines.
type RenderOption func(*renderOptions)

// WithBarMode sets the bar mode used when more than one dimension is compared.
func WithBarMode(mode BarMode) RenderOption {
	return func(o *renderOptions) {
		if mode != "" {
			o.barMode = mode
		}
	}
}

// WithLabelPrecision rounds on-chart labels to n decimal places.
func WithLabelPrecision(n int) RenderOption {
	return func(o *renderOptions) {
		o.labelPrecision = &n
	}
}

// WithTablePrecision rounds table values to n decimal places.
func WithTablePrecision(n int) RenderOption {
	return func(o *renderOptions) {
		o.tablePrecision = &n
	}
}

// WithMarkers draws point markers on lines.
func WithMarkers(on bool) RenderOption {
	return func(o *renderOptions) {
		o.markers = on
	}
}

// WithoutLabels suppresses in-chart value labels.
func WithoutLabels() RenderOption {
	return func(o *renderOptions) {
		o.hideLabels = true
	}
}

func applyRenderOptions(opts []RenderOption) *renderOptions {
	o := &renderOptions{barMode: BarModeGroup}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// RenderBars builds the bar chart series and table for resp. A single
// compared dimension already explains every bar, so the bar mode is
// relative in that case.
func RenderBars(
	resp *ItemsResponse, measure string, dimensions []DimensionKey, color, pattern DimensionKey, opts ...RenderOption,
) (*ChartSeries, *TableOutput) {
	o := applyRenderOptions(opts)

	mode := o.barMode
	if len(dimensions) == 1 {
		mode = BarModeRelative
	}

	chart := buildSeries(resp, measure, color, pattern, o)
	chart.Kind = ChartBar
	chart.BarMode = mode
	if chart.PatternBy != NoDimension {
		chart.PatternStyle = PatternHatch
	}

	return chart, buildTable(resp, measure, o.tablePrecision)
}

// RenderLines builds the line chart series and table for resp. The
// pattern dimension becomes the line dash style.
func RenderLines(
	resp *ItemsResponse, measure string, dimensions []DimensionKey, color, pattern DimensionKey, opts ...RenderOption,
) (*ChartSeries, *TableOutput) {
	o := applyRenderOptions(opts)

	chart := buildSeries(resp, measure, color, pattern, o)
	chart.Kind = ChartLine
	chart.Markers = o.markers
	if chart.PatternBy != NoDimension {
		chart.PatternStyle = PatternDash
	}

	return chart, buildTable(resp, measure, o.tablePrecision)
}

func buildSeries(resp *ItemsResponse, measure string, color, pattern DimensionKey, o *renderOptions) *ChartSeries {
	if !resp.hasDimension(color) {
		color = NoDimension
	}
	if !resp.hasDimension(pattern) {
		pattern = NoDimension
	}

	chart := &ChartSeries{
		Measure:    measure,
		Categories: make([]string, 0),
		ColorBy:    color,
		PatternBy:  pattern,
		ShowLabels: !o.hideLabels,
		Points:     make([]ChartPoint, 0, len(resp.Rows)),
	}

	seen := make(map[string]struct{})
	for _, row := range resp.Rows {
		if _, ok := seen[row.Category]; !ok {
			seen[row.Category] = struct{}{}
			chart.Categories = append(chart.Categories, row.Category)
		}

		value := float64(row.Metrics[measure])
		point := ChartPoint{
			Category: row.Category,
			Value:    ValueNumber(value),
		}
		if chart.ShowLabels {
			point.Label = valueKey(round(value, o.labelPrecision))
		}
		if color != NoDimension {
			point.Color = valueKey(row.Dimensions[string(color)])
		}
		if pattern != NoDimension {
			point.Pattern = valueKey(row.Dimensions[string(pattern)])
		}
		chart.Points = append(chart.Points, point)
	}

	return chart
}

func buildTable(resp *ItemsResponse, measure string, precision *int) *TableOutput {
	columns := make([]string, 0, len(resp.Dimensions)+2)
	for _, d := range resp.Dimensions {
		columns = append(columns, string(d))
	}
	columns = append(columns, CategoryColumn, measure)

	table := &TableOutput{
		Columns: columns,
		Records: make([]Record, 0, len(resp.Rows)),
	}

	for _, row := range resp.Rows {
		record := make(Record, len(columns))
		for _, d := range resp.Dimensions {
			record[string(d)] = row.Dimensions[string(d)]
		}
		record[CategoryColumn] = row.Category
		record[measure] = round(float64(row.Metrics[measure]), precision)
		table.Records = append(table.Records, record)
	}

	return table
}

// round uses round-half-to-even; a nil precision keeps full precision,
// as does a precision too large to scale by.
func round(v float64, precision *int) float64 {
	if precision == nil {
		return v
	}

	scale := math.Pow(10, float64(*precision))
	scaled := v * scale
	if math.IsInf(scale, 0) || math.IsInf(scaled, 0) || scale == 0 {
		return v
	}

	return math.RoundToEven(scaled) / scale
}
