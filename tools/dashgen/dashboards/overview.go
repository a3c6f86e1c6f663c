// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/network-link-manager/tools/dashgen/panels"
)

// BuildOverview constructs the NLM Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("NLM Overview").
		Uid("nlm-overview").
		Tags([]string{"nlm", "network-link-manager"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.ActiveSessionsStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RateLimited()))

	b.WithRow(dashboard.NewRowBuilder("Analysis").
		WithPanel(panels.AnalysisRuns()).
		WithPanel(panels.AnalysisDuration()).
		WithPanel(panels.DatasetSize()).
		WithPanel(panels.AnalysisFailures()))

	b.WithRow(dashboard.NewRowBuilder("Findings").
		WithPanel(panels.FindingsRate()).
		WithPanel(panels.FindingsTotals()))

	b.WithRow(dashboard.NewRowBuilder("Ingest").
		WithPanel(panels.IngestRows()).
		WithPanel(panels.IngestErrors()))

	b.WithRow(dashboard.NewRowBuilder("Sessions").
		WithPanel(panels.SessionEvictions()).
		WithPanel(panels.ReferenceBytes()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationRate()).
		WithPanel(panels.NotificationLatency()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
