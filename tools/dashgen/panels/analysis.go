package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// AnalysisRuns returns a timeseries panel showing analysis runs per second
// split by operation and outcome.
func AnalysisRuns() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Analysis Runs").
		Description("Analysis runs per second by operation and outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`nlm:analysis_runs:rate5m`,
			"{{operation}} {{outcome}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// AnalysisDuration returns a timeseries panel showing p95 run duration per
// operation.
func AnalysisDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Analysis Duration p95").
		Description("95th percentile analysis wall time by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(
				`histogram_quantile(0.95, sum(rate(%s[5m])) by (le, operation))`,
				Sel("nlm_analysis_duration_seconds_bucket"),
			),
			"{{operation}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(5, 30)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// DatasetSize returns a bar gauge showing the distribution of input row
// counts seen by analysis runs.
func DatasetSize() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Dataset Size").
		Description("Rows per analyzed dataset over the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(%s[24h])) by (le)`, Sel("nlm_analysis_rows_bucket")),
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// AnalysisFailures returns a stat panel counting failed runs in the last
// 24 hours.
func AnalysisFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Failed Runs (24h)").
		Description("Analysis runs rejected for bad input or internal errors").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(%s[24h]))`, Sel("nlm_analysis_runs_total", `outcome="error"`)),
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
