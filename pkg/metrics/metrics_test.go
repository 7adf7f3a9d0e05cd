package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parcerias-admin/pkg/metrics"
)

func TestMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.IncCreation("created")
	m.IncCreation("CREATED")
	m.IncToggle("busy")
	m.IncToggle("")
	m.ObserveUpstream("partnership.list", "ok", 15*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"partnership_creations_total",
		"partnership_status_toggles_total",
		"upstream_request_duration_seconds",
	}, names)

	n, err := testutil.GatherAndCount(reg, "partnership_creations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "las etiquetas se normalizan a minúsculas")

	n, err = testutil.GatherAndCount(reg, "partnership_status_toggles_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "busy y unknown")
}

func TestMetrics_NilEsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.IncCreation("created")
		m.IncToggle("changed")
		m.ObserveUpstream("x", "ok", time.Second)
	})

	empty := metrics.New(nil)
	assert.NotPanics(t, func() { empty.IncToggle("changed") })
}
