package pivotchart

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Schema names the columns a page works with instead of hard-coding them.
type Schema struct {
	Metric Metric
	// Dimensions are the comparison options offered to the user.
	Dimensions []*Dimension
	// Filterable lists the columns offered as filters, in display order.
	Filterable []DimensionKey
	// SortBy is the column whose values order the categories.
	SortBy DimensionKey
}

// Ranks returns the rank map of the SortBy dimension, if any.
func (s *Schema) Ranks() RankMap {
	for _, d := range s.Dimensions {
		if d.Name == s.SortBy {
			return d.Ranks
		}
	}

	return nil
}

// Page is one dashboard view over a dataset.
type Page struct {
	Name  string
	Path  string
	Title string
	// Table is the name of the dataset the page reads.
	Table  string
	Schema Schema
	Chart  ChartKind

	// FixedDimensions are always compared, ahead of the user's choices.
	FixedDimensions []DimensionKey
	// EncodingOptions are extra columns offered for color and pattern.
	EncodingOptions []DimensionKey
	// AutoEncodings takes color and pattern from the first two user
	// comparisons and ignores the rest.
	AutoEncodings bool

	DefaultGroups []DimensionKey
	DefaultColor  DimensionKey

	BarMode        BarMode
	LabelPrecision *int
	TablePrecision *int
	Markers        bool
	HideLabels     bool
}

// Result is what a page hands to the chart and table collaborators.
type Result struct {
	Page       string         `json:"page"`
	Dimensions []DimensionKey `json:"dimensions"`
	Color      DimensionKey   `json:"color,omitempty"`
	Pattern    DimensionKey   `json:"pattern,omitempty"`
	Chart      *ChartSeries   `json:"chart"`
	Table      *TableOutput   `json:"table"`
}

// Engine runs the page pipeline.
type Engine struct {
	logger *zap.Logger
}

type EngineOption func(*Engine)

// LoggerEngineOption sets the logger used for pipeline diagnostics.
func LoggerEngineOption(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run filters ds, aggregates it by the requested dimensions and renders
// the chart and table for page. ds is never modified and nothing is
// cached between calls. A nil req is the empty selection.
func (e *Engine) Run(ds *Dataset, page *Page, req *ItemsRequest) (*Result, error) {
	start := time.Now()
	if req == nil {
		req = &ItemsRequest{}
	}

	filtered, err := Filter(ds, req.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to filter %s: %w", page.Name, err)
	}

	dimensions, color, pattern := page.Encodings(req)
	color, pattern = ResolveEncodings(color, pattern, dimensions)

	metric := page.Schema.Metric
	resp, err := Aggregate(filtered, dimensions, metric.Name, metric.Aggregate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", page.Name, err)
	}

	BuildCategoryKey(resp, dimensions, color, pattern, KeyOptions{})
	Order(resp, page.Schema.SortBy, page.Schema.Ranks())

	var (
		chart *ChartSeries
		table *TableOutput
	)
	opts := page.renderOptions()
	if page.Chart == ChartLine {
		chart, table = RenderLines(resp, metric.Name, dimensions, color, pattern, opts...)
	} else {
		chart, table = RenderBars(resp, metric.Name, dimensions, color, pattern, opts...)
	}

	e.logger.Debug("pipeline run",
		zap.String("page", page.Name),
		zap.Int("rows", ds.Len()),
		zap.Int("filtered", filtered.Len()),
		zap.Int("groups", len(resp.Rows)),
		zap.Any("dimensions", dimensions),
		zap.String("color", string(color)),
		zap.String("pattern", string(pattern)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{
		Page:       page.Name,
		Dimensions: dimensions,
		Color:      color,
		Pattern:    pattern,
		Chart:      chart,
		Table:      table,
	}, nil
}

// Encodings returns the compared dimensions and the requested color and
// pattern, applying the page's fixed dimensions and automatic encodings.
func (p *Page) Encodings(req *ItemsRequest) ([]DimensionKey, DimensionKey, DimensionKey) {
	groups := req.Groups
	color, pattern := req.Color, req.Pattern

	if p.AutoEncodings {
		color, pattern = NoDimension, NoDimension
		if len(groups) > 2 {
			groups = groups[:2]
		}
		if len(groups) > 0 {
			color = groups[0]
		}
		if len(groups) > 1 {
			pattern = groups[1]
		}
	}

	dimensions := make([]DimensionKey, 0, len(p.FixedDimensions)+len(groups))
	seen := make(map[DimensionKey]struct{})
	for _, list := range [][]DimensionKey{p.FixedDimensions, groups} {
		for _, d := range list {
			if d == NoDimension {
				continue
			}
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dimensions = append(dimensions, d)
		}
	}

	return dimensions, color, pattern
}

func (p *Page) renderOptions() []RenderOption {
	opts := []RenderOption{WithBarMode(p.BarMode), WithMarkers(p.Markers)}
	if p.LabelPrecision != nil {
		opts = append(opts, WithLabelPrecision(*p.LabelPrecision))
	}
	if p.TablePrecision != nil {
		opts = append(opts, WithTablePrecision(*p.TablePrecision))
	}
	if p.HideLabels {
		opts = append(opts, WithoutLabels())
	}

	return opts
}
