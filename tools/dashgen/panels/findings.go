package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

type finding struct {
	metric string
	legend string
}

var findings = []finding{
	{"nlm_links_missing_total", "missing links"},
	{"nlm_port_corrections_total", "port corrections"},
	{"nlm_duplicate_ports_total", "duplicate port rows"},
	{"nlm_duplicate_links_removed_total", "duplicate links removed"},
}

// FindingsRate returns a timeseries panel plotting every finding counter.
func FindingsRate() *timeseries.PanelBuilder {
	b := timeseries.NewPanelBuilder().
		Title("Findings").
		Description("Reconciliation findings per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth)

	for i, f := range findings {
		b.WithTarget(PromQuery(
			fmt.Sprintf(`sum(rate(%s[5m]))`, Sel(f.metric)),
			f.legend, string(rune('A'+i)),
		))
	}

	return b.
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FindingsTotals returns a bar gauge with 24h totals for each finding.
func FindingsTotals() *bargauge.PanelBuilder {
	b := bargauge.NewPanelBuilder().
		Title("Findings (24h)").
		Description("Findings reported over the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth)

	for i, f := range findings {
		b.WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(%s[24h]))`, Sel(f.metric)),
			f.legend, string(rune('A'+i)),
		))
	}

	return b.
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
