package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SessionEvictions returns a timeseries panel showing session evictions by
// reason.
func SessionEvictions() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Session Evictions").
		Description("Sessions dropped per second (idle, capacity, deleted)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(%s[5m])) by (reason)`, Sel("nlm_sessions_evicted_total")),
			"{{reason}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ReferenceBytes returns a timeseries panel showing memory held by stored
// reference uploads.
func ReferenceBytes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Reference Bytes").
		Description("Total bytes of reference datasets held across sessions").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(Sel("nlm_reference_bytes"), "bytes", "A")).
		Unit("bytes").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
