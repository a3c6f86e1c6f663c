package main

import "errors"

// KnownMetrics is the set of metric names exported by network-link-manager
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"nlm_http_request_duration_seconds": true,
	"nlm_http_requests_total":           true,
	"nlm_http_rate_limited_total":       true,

	// Health metrics.
	"nlm_healthz_up": true,
	"nlm_readyz_up":  true,

	// Ingest metrics.
	"nlm_ingest_rows_total":   true,
	"nlm_ingest_errors_total": true,

	// Analysis metrics.
	"nlm_analysis_runs_total":           true,
	"nlm_analysis_duration_seconds":     true,
	"nlm_analysis_rows":                 true,
	"nlm_links_missing_total":           true,
	"nlm_port_corrections_total":        true,
	"nlm_duplicate_ports_total":         true,
	"nlm_duplicate_links_removed_total": true,

	// Session metrics.
	"nlm_sessions_active":        true,
	"nlm_sessions_evicted_total": true,
	"nlm_reference_bytes":        true,

	// Notification metrics.
	"nlm_notifications_sent_total":      true,
	"nlm_notification_failures_total":   true,
	"nlm_notification_duration_seconds": true,

	// Recording rules.
	"nlm:http_requests:rate5m":         true,
	"nlm:http_errors:rate5m":           true,
	"nlm:analysis_runs:rate5m":         true,
	"nlm:ingest_errors:rate5m":         true,
	"nlm:notification_failures:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
