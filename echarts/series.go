// Package echarts turns pivotchart series descriptions into go-echarts
// bar and line charts.
package echarts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vench/pivotchart"
)

// Light24 is the default categorical palette.
var Light24 = []string{
	"#FD3216", "#00FE35", "#6A76FC", "#FED4C4", "#FE00CE", "#0DF9FF",
	"#F6F926", "#FF9616", "#479B55", "#EEA6FB", "#DC587D", "#D626FF",
	"#6E899C", "#00B5F7", "#B68E00", "#C9FBE5", "#FF0092", "#22FFA7",
	"#E3EE9E", "#86CE00", "#BC7196", "#7E7DCD", "#FC6955", "#E48F72",
}

// DashTypes are the line styles cycled through for the pattern dimension.
var DashTypes = []string{"solid", "dashed", "dotted"}

// Series is one drawn series: a color/pattern combination aligned to
// the chart categories.
type Series struct {
	Name    string
	Color   string
	Dash    string
	Values  []interface{}
	Labels  []string
	pattern int
}

// BuildSeries groups chart points into series, one per distinct
// (color, pattern) pair in first-seen order. Categories a series has no
// point for hold "-", which echarts draws as a gap.
func BuildSeries(chart *pivotchart.ChartSeries, palette []string) []*Series {
	if len(palette) == 0 {
		palette = Light24
	}

	position := make(map[string]int, len(chart.Categories))
	for i, c := range chart.Categories {
		position[c] = i
	}

	colors := make(map[string]int)
	patterns := make(map[string]int)
	index := make(map[string]*Series)
	series := make([]*Series, 0)

	for _, p := range chart.Points {
		key := p.Color + "\x00" + p.Pattern
		s, ok := index[key]
		if !ok {
			ci, ok := colors[p.Color]
			if !ok {
				ci = len(colors)
				colors[p.Color] = ci
			}
			pi, ok := patterns[p.Pattern]
			if !ok {
				pi = len(patterns)
				patterns[p.Pattern] = pi
			}

			s = &Series{
				Name:    seriesName(chart, p),
				Color:   palette[ci%len(palette)],
				Values:  make([]interface{}, len(chart.Categories)),
				Labels:  make([]string, len(chart.Categories)),
				pattern: pi,
			}
			for i := range s.Values {
				s.Values[i] = "-"
			}
			if chart.PatternBy != pivotchart.NoDimension {
				switch chart.PatternStyle {
				case pivotchart.PatternDash:
					s.Dash = DashTypes[pi%len(DashTypes)]
				default:
					s.Color = shade(s.Color, pi)
				}
			}

			index[key] = s
			series = append(series, s)
		}

		i := position[p.Category]
		s.Values[i] = float64(p.Value)
		s.Labels[i] = p.Label
	}

	return series
}

func seriesName(chart *pivotchart.ChartSeries, p pivotchart.ChartPoint) string {
	parts := make([]string, 0, 2)
	if chart.ColorBy != pivotchart.NoDimension {
		parts = append(parts, p.Color)
	}
	if chart.PatternBy != pivotchart.NoDimension {
		parts = append(parts, p.Pattern)
	}
	if len(parts) == 0 {
		return chart.Measure
	}

	return strings.Join(parts, ", ")
}

// shade mixes hex with white, a quarter step per pattern index.
func shade(hex string, step int) string {
	if step == 0 || len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return hex
	}

	mix := float64(step%4) * 0.25
	channel := func(c uint64) uint64 {
		return c + uint64(float64(255-c)*mix)
	}
	r := channel(v >> 16 & 0xff)
	g := channel(v >> 8 & 0xff)
	b := channel(v & 0xff)

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
