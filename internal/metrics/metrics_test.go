package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRateLimitedTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, IngestRowsTotal)
	assert.NotNil(t, IngestErrorsTotal)
	assert.NotNil(t, AnalysisRunsTotal)
	assert.NotNil(t, AnalysisDuration)
	assert.NotNil(t, AnalysisRows)
	assert.NotNil(t, LinksMissingTotal)
	assert.NotNil(t, PortCorrectionsTotal)
	assert.NotNil(t, DuplicatePortsTotal)
	assert.NotNil(t, DuplicateLinksRemovedTotal)
	assert.NotNil(t, SessionsActive)
	assert.NotNil(t, SessionsEvictedTotal)
	assert.NotNil(t, ReferenceBytes)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
}

func TestMetricNames(t *testing.T) {
	t.Parallel()

	problems, err := testutil.CollectAndLint(AnalysisRunsTotal)
	assert.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = testutil.CollectAndLint(SessionsActive)
	assert.NoError(t, err)
	assert.Empty(t, problems)
}
