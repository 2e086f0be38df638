package orchestration

import (
	"errors"
	"strings"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
	testutil "github.com/imamik/pgbcluster/internal/testing"
	"github.com/imamik/pgbcluster/internal/topology"
)

func newTestOrchestrator(cluster *topology.Cluster, rt docker.Runtime) (*Orchestrator, *testutil.RecordingObserver) {
	obs := testutil.NewRecordingObserver()
	return New(cluster, rt, Options{Observer: obs, Settings: testutil.FastSettings()}), obs
}

func mutations(m *docker.MockClient) []string {
	var out []string
	for _, c := range m.Calls() {
		if strings.HasPrefix(c, "Create") || strings.HasPrefix(c, "Remove") || strings.HasPrefix(c, "Stop") {
			out = append(out, c)
		}
	}
	return out
}

func TestInit_CreatesEverythingInOrder(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	orch, obs := newTestOrchestrator(testutil.SampleCluster(), mock)

	report, err := orch.Init(testutil.TestContext(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CreateNetwork demo-net",
		"CreateNodeInstance lb1_primary",
		"CreateNodeInstance lb1_replica1",
		"CreateNodeInstance lb1_replica2",
		"CreateGroupInstance lb1",
		"CreateNodeInstance lb2_primary",
		"CreateGroupInstance lb2",
	}, mutations(mock))

	require.NotNil(t, report)
	require.Len(t, report.Groups, 2)
	for _, g := range report.Groups {
		assert.True(t, g.Balancer.Healthy(), g.Name)
		for _, n := range g.Nodes {
			assert.True(t, n.Healthy(), n.Name)
		}
	}
	assert.True(t, obs.HasMessage("Cluster demo initialized"))
	assert.True(t, obs.HasMessage("lb1: 1 primary + 2 replicas"))
	assert.Empty(t, obs.Warnings())
}

func TestInit_SecondRunSkipsExisting(t *testing.T) {
	t.Parallel()

	fixture := testutil.NewRuntimeFixture()
	mock := fixture.Healthy()
	orch, obs := newTestOrchestrator(testutil.SampleCluster(), mock)
	ctx := testutil.TestContext(t)

	_, err := orch.Init(ctx)
	require.NoError(t, err)
	_, err = orch.Init(ctx)
	require.NoError(t, err)

	assert.Len(t, obs.EventsOfType(provisioning.EventResourceExists), 6)
}

func TestInit_NetworkFailureAborts(t *testing.T) {
	t.Parallel()

	fixture := testutil.NewRuntimeFixture()
	fixture.Healthy()
	mock := fixture.WithNetworkError(errors.New("permission denied"))
	orch, _ := newTestOrchestrator(testutil.SampleCluster(), mock)

	report, err := orch.Init(testutil.TestContext(t))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "network phase failed")
	assert.Contains(t, err.Error(), "permission denied")
	assert.Empty(t, mock.CallsTo("CreateNodeInstance"))
}

func TestInit_ValidationFailure(t *testing.T) {
	t.Parallel()

	cluster := testutil.SampleCluster()
	cluster.Groups[1].Primary = nil
	mock := testutil.NewRuntimeFixture().Healthy()
	orch, _ := newTestOrchestrator(cluster, mock)

	_, err := orch.Init(testutil.TestContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation phase failed")
	assert.Empty(t, mutations(mock))
}

func TestInit_MissingBalancerImageOnlyWarns(t *testing.T) {
	t.Parallel()

	fixture := testutil.NewRuntimeFixture()
	fixture.Healthy()
	mock := fixture.WithMissingBalancerImage()
	orch, obs := newTestOrchestrator(testutil.SampleCluster(), mock)

	_, err := orch.Init(testutil.TestContext(t))
	require.NoError(t, err)
	assert.True(t, obs.HasWarning("not found"))
}

func TestInit_RecordsMetrics(t *testing.T) {
	t.Parallel()

	metrics := provisioning.NewMetrics()
	mock := testutil.NewRuntimeFixture().Healthy()
	orch := New(testutil.SampleCluster(), mock, Options{Settings: testutil.FastSettings(), Metrics: metrics})

	_, err := orch.Init(testutil.TestContext(t))
	require.NoError(t, err)

	n, err := promtestutil.GatherAndCount(metrics.Registry, "pgbcluster_runtime_operations_total")
	require.NoError(t, err)
	// create_network, create_node_instance and create_group_instance, all "created".
	assert.Equal(t, 3, n)
}

func TestDestroyThenInit_ReproducesTopology(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	cluster := testutil.SampleCluster()
	orch, _ := newTestOrchestrator(cluster, mock)
	ctx := testutil.TestContext(t)

	first, err := orch.Init(ctx)
	require.NoError(t, err)
	require.NoError(t, orch.Destroy(ctx))

	for _, g := range cluster.Groups {
		assert.Equal(t, topology.StatusStopped, g.Status)
	}
	afterDestroy := orch.Status(ctx)
	for _, g := range afterDestroy.Groups {
		assert.Equal(t, docker.StatusNotFound, g.Balancer.Status)
	}

	second, err := orch.Init(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDestroy_Order(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	orch, obs := newTestOrchestrator(testutil.SampleCluster(), mock)

	require.NoError(t, orch.Destroy(testutil.TestContext(t)))

	assert.Equal(t, []string{
		"RemoveInstance lb1",
		"RemoveInstance lb1_primary",
		"RemoveInstance lb1_replica1",
		"RemoveInstance lb1_replica2",
		"RemoveInstance lb2",
		"RemoveInstance lb2_primary",
		"RemoveNetwork demo-net",
	}, mutations(mock))
	assert.True(t, obs.HasMessage("Cluster demo destroyed"))
}

func TestDestroy_StopFirst(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	orch := New(testutil.SampleCluster(), mock, Options{Settings: testutil.FastSettings(), StopFirst: true})

	require.NoError(t, orch.Destroy(testutil.TestContext(t)))
	assert.Len(t, mock.CallsTo("StopInstance"), 6)
}

func TestStatus_IsReadOnly(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	orch, _ := newTestOrchestrator(testutil.SampleCluster(), mock)

	report := orch.Status(testutil.TestContext(t))

	assert.Empty(t, mutations(mock))
	require.Len(t, report.Groups, 2)
	assert.Equal(t, docker.StatusNotFound, report.Groups[0].Nodes[0].Status)
}

func TestAddReplicas(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	orch, obs := newTestOrchestrator(testutil.SampleCluster(), mock)

	added, err := orch.AddReplicas(testutil.TestContext(t), "lb2", 2)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, 1, added[0].ID)
	assert.Equal(t, 2, added[1].ID)
	assert.True(t, obs.HasMessage("Added 2 replicas to lb2"))

	g, _ := orch.Cluster().Group("lb2")
	assert.Len(t, g.Replicas, 2)
}

func TestAddReplicas_UnknownGroup(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(testutil.SampleCluster(), testutil.NewRuntimeFixture().Healthy())

	_, err := orch.AddReplicas(testutil.TestContext(t), "nope", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `balancer group "nope" not found`)
}

func TestRemoveReplica(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	orch, _ := newTestOrchestrator(testutil.SampleCluster(), mock)
	ctx := testutil.TestContext(t)

	removed, err := orch.RemoveReplica(ctx, "lb1", 2)
	require.NoError(t, err)
	assert.Equal(t, "lb1_replica2", removed.InstanceName)

	added, err := orch.AddReplicas(ctx, "lb1", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, added[0].ID, "removed identifiers are not reused")

	_, err = orch.RemoveReplica(ctx, "lb1", 9)
	assert.Error(t, err)
}

func TestScaling_AcrossInvocations(t *testing.T) {
	t.Parallel()

	mock := testutil.NewRuntimeFixture().Healthy()
	ctx := testutil.TestContext(t)

	// Each invocation starts from the configuration, which never lists
	// replicas added at runtime.
	fresh := func() *Orchestrator {
		orch, _ := newTestOrchestrator(testutil.SampleCluster(), mock)
		return orch
	}

	_, err := fresh().Init(ctx)
	require.NoError(t, err)

	first, err := fresh().AddReplicas(ctx, "lb1", 1)
	require.NoError(t, err)
	second, err := fresh().AddReplicas(ctx, "lb1", 1)
	require.NoError(t, err)

	assert.Equal(t, 3, first[0].ID)
	assert.Equal(t, 4, second[0].ID)
	assert.NotEqual(t, first[0].IPAddress, second[0].IPAddress)
	assert.NotEqual(t, first[0].Port, second[0].Port)

	removed, err := fresh().RemoveReplica(ctx, "lb1", 3)
	require.NoError(t, err)
	assert.Equal(t, "lb1_replica3", removed.InstanceName)

	require.NoError(t, fresh().Destroy(ctx))
	assert.Contains(t, mock.CallsTo("RemoveInstance"), "lb1_replica4")
	assert.Equal(t, docker.StatusNotFound, mock.InstanceStatus(ctx, "lb1_replica4"))
}
