package selktprom

import (
	"testing"

	"github.com/delaneyj/selkt/selkt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	require.NotNil(t, m.Histogram, "expected histogram metric to have Histogram field")
	return m.GetHistogram().GetSampleCount()
}

func histogramSum(t *testing.T, h prometheus.Histogram) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleSum()
}

func TestCollectorRecordsRuntimeActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(WithRegistry(reg))
	rt := selkt.New(selkt.WithHooks(c.Hooks()))

	count := selkt.NewStore(rt, 0, selkt.WithName("count"))
	other := selkt.NewStore(rt, 0, selkt.WithName("other"))
	selkt.Select(rt, count.State, nil)
	selkt.Select(rt, count.State, func(next, _ int) {
		other.SetValue(next)
	})

	count.SetValue(1)
	count.SetValue(2)
	rt.Flush(func() {
		count.SetValue(3)
		count.SetValue(4)
	})

	assert.Equal(t, float64(4), testutil.ToFloat64(c.storeSets.WithLabelValues("count")))
	assert.Equal(t, float64(4), testutil.ToFloat64(c.storeSets.WithLabelValues("other")))
	assert.Equal(t, float64(3), testutil.ToFloat64(c.drains))
	assert.Equal(t, float64(6), testutil.ToFloat64(c.notifications))
	// two initial evaluations plus two per drain
	assert.Equal(t, float64(8), testutil.ToFloat64(c.selectionChanges))

	assert.Equal(t, uint64(3), histogramCount(t, c.drainPasses))
	assert.Equal(t, float64(3), histogramSum(t, c.drainPasses))
	assert.Equal(t, uint64(3), histogramCount(t, c.drainDuration))
}

func TestCollectorOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(
		WithRegistry(reg),
		WithNamespace("app"),
		WithSubsystem("state"),
		WithConstLabels(prometheus.Labels{"instance": "a"}),
		WithBuckets([]float64{0.001, 0.01}),
	)

	families, err := reg.Gather()
	require.NoError(t, err)

	// only metrics without labels are exported before the first observation
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
		for _, m := range f.GetMetric() {
			require.Len(t, m.GetLabel(), 1)
			assert.Equal(t, "instance", m.GetLabel()[0].GetName())
		}
		if f.GetName() == "app_state_drain_duration_seconds" {
			assert.Len(t, f.GetMetric()[0].GetHistogram().GetBucket(), 2)
		}
	}
	assert.ElementsMatch(t, []string{
		"app_state_drains_total",
		"app_state_drain_passes",
		"app_state_notifications_total",
		"app_state_drain_duration_seconds",
		"app_state_selection_changes_total",
	}, names)
}

func TestCollectorRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(WithRegistry(reg))
	assert.Panics(t, func() {
		New(WithRegistry(reg))
	})
}
