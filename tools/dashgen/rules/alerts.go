package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// network-link-manager operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "nlm-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "nlm-alerts",
					Rules: []Rule{
						{
							Alert: "NlmDown",
							Expr:  `absent(up{job="network-link-manager"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Network Link Manager is down",
								"description": "The network-link-manager job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "NlmReadinessDown",
							Expr:  `nlm_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Network Link Manager readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "NlmHighErrorRate",
							Expr:  `nlm:http_errors:rate5m / nlm:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Network Link Manager",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "NlmAnalysisErrors",
							Expr:  `sum(nlm:analysis_runs:rate5m{outcome="error"}) > 0.1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Analysis runs are failing",
								"description": "Analysis runs have been failing at more than 0.1/s for 10 minutes.",
							},
						},
						{
							Alert: "NlmIngestErrors",
							Expr:  `sum(nlm:ingest_errors:rate5m) > 0.1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Uploads are being rejected",
								"description": "Dataset uploads have been rejected at more than 0.1/s for 10 minutes.",
							},
						},
						{
							Alert: "NlmRateLimited",
							Expr:  `sum(increase(nlm_http_rate_limited_total[15m])) > 100`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Clients are being rate limited",
								"description": "More than 100 requests were rejected with 429 in the last 15 minutes.",
							},
						},
						{
							Alert: "NlmNotificationFailures",
							Expr:  `increase(nlm_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more analysis summaries (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
