package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// IngestRows returns a timeseries panel showing parsed rows per second by
// upload format.
func IngestRows() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rows Ingested").
		Description("Parsed link rows per second by file format").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(%s[5m])) by (format)`, Sel("nlm_ingest_rows_total")),
			"{{format}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// IngestErrors returns a timeseries panel showing rejected uploads by reason.
func IngestErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Ingest Errors").
		Description("Rejected uploads per second by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`nlm:ingest_errors:rate5m`, "{{reason}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}
