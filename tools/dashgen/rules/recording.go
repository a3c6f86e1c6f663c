package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "nlm-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "nlm-recording",
					Rules: []Rule{
						{
							Record: "nlm:http_requests:rate5m",
							Expr:   `sum(rate(nlm_http_requests_total[5m]))`,
						},
						{
							Record: "nlm:http_errors:rate5m",
							Expr:   `sum(rate(nlm_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "nlm:analysis_runs:rate5m",
							Expr:   `sum(rate(nlm_analysis_runs_total[5m])) by (operation, outcome)`,
						},
						{
							Record: "nlm:ingest_errors:rate5m",
							Expr:   `sum(rate(nlm_ingest_errors_total[5m])) by (reason)`,
						},
						{
							Record: "nlm:notification_failures:rate5m",
							Expr:   `sum(rate(nlm_notification_failures_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
