package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/platform/docker"
	testutil "github.com/imamik/pgbcluster/internal/testing"
	"github.com/imamik/pgbcluster/internal/topology"
)

// stubEnv replaces the factories with in-memory fakes and returns the
// buffer receiving command output and the runtime options seen.
func stubEnv(t *testing.T, rt docker.Runtime) (*bytes.Buffer, *docker.Options) {
	t.Helper()

	origLoad, origRuntime, origLogger := loadCluster, newRuntime, newLogger
	origSettings, origRunID, origStdout := loadSettings, newRunID, stdout
	t.Cleanup(func() {
		loadCluster, newRuntime, newLogger = origLoad, origRuntime, origLogger
		loadSettings, newRunID, stdout = origSettings, origRunID, origStdout
	})

	seen := &docker.Options{}
	loadCluster = func(string) (*topology.Cluster, *config.File, error) {
		return testutil.SampleCluster(), &config.File{
			Images: config.ImageSpec{Node: config.DefaultNodeImage, Balancer: config.DefaultBalancerImage},
		}, nil
	}
	newRuntime = func(opts docker.Options) docker.Runtime {
		*seen = opts
		return rt
	}
	newLogger = func(bool) logr.Logger { return logr.Discard() }
	loadSettings = testutil.FastSettings
	newRunID = func() string { return "run-42" }

	var out bytes.Buffer
	stdout = &out
	return &out, seen
}

func TestInit(t *testing.T) {
	mock := testutil.NewRuntimeFixture().Healthy()
	out, seen := stubEnv(t, mock)

	err := Init(context.Background(), Options{ConfigPath: "c.json", Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, "demo", seen.ClusterName)
	assert.Equal(t, "run-42", seen.RunID)
	assert.True(t, seen.Verbose)
	assert.Equal(t, "pgbalancer:latest", seen.BalancerImage)
	assert.Len(t, mock.CallsTo("CreateNodeInstance"), 4)
	assert.Contains(t, out.String(), "lb1_replica2")
	assert.Contains(t, out.String(), "healthy")
}

func TestInit_LoadError(t *testing.T) {
	stubEnv(t, &docker.MockClient{})
	loadCluster = func(string) (*topology.Cluster, *config.File, error) {
		return nil, nil, errors.New("configuration file not found: c.json")
	}

	err := Init(context.Background(), Options{ConfigPath: "c.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInit_RuntimeFailure(t *testing.T) {
	fixture := testutil.NewRuntimeFixture()
	fixture.Healthy()
	mock := fixture.WithNetworkError(errors.New("daemon not running"))
	stubEnv(t, mock)

	err := Init(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init failed")
	assert.Contains(t, err.Error(), "daemon not running")
}

func TestInit_Cancelled(t *testing.T) {
	stubEnv(t, testutil.NewRuntimeFixture().Healthy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Init(ctx, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInit_WritesMetricsFile(t *testing.T) {
	stubEnv(t, testutil.NewRuntimeFixture().Healthy())
	path := filepath.Join(t.TempDir(), "pgbcluster.prom")

	require.NoError(t, Init(context.Background(), Options{MetricsFile: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pgbcluster_runtime_operations_total")
	assert.Contains(t, string(data), "pgbcluster_cluster_instances")
}

func TestDestroy(t *testing.T) {
	mock := testutil.NewRuntimeFixture().Healthy()
	stubEnv(t, mock)

	require.NoError(t, Destroy(context.Background(), Options{}, true))

	assert.Len(t, mock.CallsTo("StopInstance"), 6)
	assert.Len(t, mock.CallsTo("RemoveInstance"), 6)
	assert.Equal(t, []string{"demo-net"}, mock.CallsTo("RemoveNetwork"))
}

func TestStatus(t *testing.T) {
	mock := &docker.MockClient{}
	out, _ := stubEnv(t, mock)

	require.NoError(t, Status(context.Background(), Options{}, "json"))

	assert.Contains(t, out.String(), `"cluster_name": "demo"`)
	assert.Empty(t, mock.CallsTo("CreateNodeInstance"))
}

func TestStatus_InvalidFormat(t *testing.T) {
	stubEnv(t, &docker.MockClient{})

	err := Status(context.Background(), Options{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestAddReplica(t *testing.T) {
	mock := testutil.NewRuntimeFixture().Healthy()
	out, _ := stubEnv(t, mock)

	require.NoError(t, AddReplica(context.Background(), Options{}, "lb1", 2))

	assert.Equal(t, []string{"lb1_replica3", "lb1_replica4"}, mock.CallsTo("CreateNodeInstance"))
	assert.Contains(t, out.String(), "replica 3: lb1_replica3")
}

func TestAddReplica_Validation(t *testing.T) {
	stubEnv(t, &docker.MockClient{})

	err := AddReplica(context.Background(), Options{}, "", 1)
	assert.ErrorContains(t, err, "--balancer")

	err = AddReplica(context.Background(), Options{}, "lb1", 0)
	assert.ErrorContains(t, err, "--count")

	err = AddReplica(context.Background(), Options{}, "nope", 1)
	assert.ErrorContains(t, err, `balancer group "nope" not found`)
}

func TestRemoveReplica(t *testing.T) {
	mock := &docker.MockClient{}
	out, _ := stubEnv(t, mock)

	require.NoError(t, RemoveReplica(context.Background(), Options{}, "lb1", 1))
	assert.Equal(t, []string{"lb1_replica1"}, mock.CallsTo("RemoveInstance"))
	assert.Contains(t, out.String(), "removed replica 1")

	err := RemoveReplica(context.Background(), Options{}, "lb1", 0)
	assert.ErrorContains(t, err, "--node")
}
