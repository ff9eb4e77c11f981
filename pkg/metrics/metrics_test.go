package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	PaperOperations.WithLabelValues("create", OutcomeOK).Inc()
	HTTPRequests.WithLabelValues("GET", "/api/papers", "200").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/api/papers").Observe(0.01)
	RateLimitAllowed.WithLabelValues("memory").Inc()
	RateLimitRejected.WithLabelValues("memory").Inc()
	PapersStored.Set(3)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"paperstore_paper_operations_total",
		"paperstore_papers_stored",
		"paperstore_http_requests_total",
		"paperstore_http_request_duration_seconds",
		"paperstore_rate_limit_allowed_total",
		"paperstore_rate_limit_rejected_total",
	} {
		require.True(t, names[want], "missing metric %s", want)
	}
	require.Equal(t, 3.0, testutil.ToFloat64(PapersStored))

	// a second registration on the same registry must fail loudly
	require.Panics(t, func() { RegisterCollectors(reg) })
}
