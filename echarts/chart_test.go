package echarts

import (
	"bytes"
	"testing"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/stretchr/testify/require"

	"github.com/vench/pivotchart"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name  string
		kind  pivotchart.ChartKind
		style pivotchart.PatternStyle
		mode  pivotchart.BarMode
	}{
		{name: "bar group", kind: pivotchart.ChartBar, style: pivotchart.PatternHatch, mode: pivotchart.BarModeGroup},
		{name: "bar relative", kind: pivotchart.ChartBar, style: pivotchart.PatternHatch, mode: pivotchart.BarModeRelative},
		{name: "bar overlay", kind: pivotchart.ChartBar, style: pivotchart.PatternHatch, mode: pivotchart.BarModeOverlay},
		{name: "line", kind: pivotchart.ChartLine, style: pivotchart.PatternDash},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			series := testChart(tc.style)
			series.Kind = tc.kind
			series.BarMode = tc.mode

			cOpts := DefaultChartOpts()
			cOpts.Title = "Current Enrollment"
			chart := Build(cOpts, series)

			switch tc.kind {
			case pivotchart.ChartLine:
				require.IsType(t, &charts.Line{}, chart)
			default:
				require.IsType(t, &charts.Bar{}, chart)
			}

			var buf bytes.Buffer
			require.NoError(t, chart.Render(&buf))
			require.Contains(t, buf.String(), "echarts")
			require.Contains(t, buf.String(), "Current Enrollment")
			require.Contains(t, buf.String(), "Kennedy, Male")
		})
	}
}

func TestBuildBarChart_NilOpts(t *testing.T) {
	t.Parallel()

	bar := BuildBarChart(nil, testChart(pivotchart.PatternHatch))
	require.Len(t, bar.MultiSeries, 3)

	line := BuildLineChart(nil, testChart(pivotchart.PatternDash))
	require.Len(t, line.MultiSeries, 3)
}
