package provisioning

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/topology"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics
	m.RecordRuntimeOp("create_network", "created", time.Second)
	m.RecordHealthWait(true, time.Second)
	m.SetInstances("lb1", "primary", "running", 1)
	require.NoError(t, m.WriteToTextfile("/nonexistent/metrics.prom"))
}

func TestMetrics_RecordHealthWait(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.RecordHealthWait(true, 3*time.Second)
	m.RecordHealthWait(false, 90*time.Second)
	m.RecordHealthWait(false, 90*time.Second)

	assert.InDelta(t, 1, testutil.ToFloat64(m.healthWaits.WithLabelValues("healthy")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.healthWaits.WithLabelValues("timeout")), 0)
}

func TestInstrumentRuntime(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	mock := &docker.MockClient{
		RemoveInstanceFunc: func(context.Context, string) (docker.Result, error) {
			return docker.Result{}, errors.New("daemon down")
		},
	}
	rt := InstrumentRuntime(mock, m)
	ctx := context.Background()

	_, err := rt.CreateNetwork(ctx, "demo-net", "172.30.0.0/16")
	require.NoError(t, err)
	_, err = rt.CreateNodeInstance(ctx, topology.NewNode(0, topology.RolePrimary, "h", 15432, "lb1_primary", "172.30.0.11"), "demo-net")
	require.NoError(t, err)
	_, err = rt.RemoveInstance(ctx, "lb1_primary")
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(m.runtimeOps.WithLabelValues("create_network", "created")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.runtimeOps.WithLabelValues("create_node_instance", "created")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.runtimeOps.WithLabelValues("remove_instance", "error")), 0)

	// Inspection passes straight through.
	assert.Equal(t, docker.HealthHealthy, rt.InstanceHealth(ctx, "lb1_primary"))
}

func TestInstrumentRuntime_NilMetrics(t *testing.T) {
	t.Parallel()
	mock := &docker.MockClient{}
	assert.Same(t, mock, InstrumentRuntime(mock, nil))
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.SetInstances("lb1", "replica", "running", 2)

	path := filepath.Join(t.TempDir(), "pgbcluster.prom")
	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pgbcluster_cluster_instances{group="lb1",role="replica",status="running"} 2`)
}

func TestMetrics_HealthDurationHistogram(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.RecordHealthWait(true, 2*time.Second)
	m.RecordHealthWait(true, 6*time.Second)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	var hist *dto.Histogram
	for _, mf := range families {
		if mf.GetName() != "pgbcluster_health_wait_duration_seconds" {
			continue
		}
		require.Equal(t, dto.MetricType_HISTOGRAM, mf.GetType())
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "result" && lp.GetValue() == "healthy" {
					hist = metric.GetHistogram()
				}
			}
		}
	}
	require.NotNil(t, hist)
	assert.Equal(t, uint64(2), hist.GetSampleCount())
	assert.InDelta(t, 8, hist.GetSampleSum(), 0.001)
}
