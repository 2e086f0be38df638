package docker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/pgbcluster/internal/topology"
)

// absentInstances makes every container inspect report a missing instance.
func absentInstances(args []string) (Output, error) {
	if args[0] == "container" && args[1] == "inspect" {
		return Output{}, cmdErr("Error: No such container: " + args[len(args)-1])
	}
	return Output{}, nil
}

func sampleGroup() *topology.Group {
	g := &topology.Group{
		Name:         "lb1",
		Port:         6432,
		PCPPort:      9898,
		RESTAPIPort:  8080,
		InstanceName: "lb1",
		IPAddress:    "172.30.0.10",
		Primary:      topology.NewNode(0, topology.RolePrimary, "lb1-primary", 15432, "lb1_primary", "172.30.0.11"),
		Config:       map[string]any{"max_pool": 8, "connection_life_time": 300},
	}
	_ = g.AddReplica(topology.NewNode(1, topology.RoleReplica, "lb1-replica1", 15433, "lb1_replica1", "172.30.0.12"))
	return g
}

// argValues returns every value that follows flag in args.
func argValues(args []string, flag string) []string {
	var out []string
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			out = append(out, args[i+1])
		}
	}
	return out
}

func TestCreateNodeInstance_Replica(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: absentInstances}
	c := newTestClient(r)
	node := topology.NewNode(2, topology.RoleReplica, "lb1-replica2", 15434, "lb1_replica2", "172.30.0.13")

	res, err := c.CreateNodeInstance(context.Background(), node, "demo-net")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)

	args := r.lastCall()
	assert.Equal(t, []string{"run", "-d"}, args[:2])
	assert.Equal(t, []string{"lb1_replica2"}, argValues(args, "--name"))
	assert.Equal(t, []string{"lb1-replica2"}, argValues(args, "--hostname"))
	assert.Equal(t, []string{"demo-net"}, argValues(args, "--network"))
	assert.Equal(t, []string{"172.30.0.13"}, argValues(args, "--ip"))
	assert.Equal(t, []string{"15434:5432"}, argValues(args, "-p"))
	assert.Contains(t, argValues(args, "-e"), "PGDATA=/var/lib/postgresql/data/pgdata")
	assert.Contains(t, argValues(args, "-e"), "POSTGRES_DB=testdb")
	assert.Equal(t, []string{"pg_isready -U postgres"}, argValues(args, "--health-cmd"))
	assert.Contains(t, argValues(args, "--label"), "pgbcluster.io/role=replica")
	assert.Contains(t, argValues(args, "--label"), "pgbcluster.io/node-id=2")
	assert.Empty(t, argValues(args, "-v"), "replicas never mount the init script")
	assert.Equal(t, "postgres:17", args[len(args)-1])
}

func TestCreateNodeInstance_PrimaryInitScript(t *testing.T) {
	t.Parallel()

	script := filepath.Join(t.TempDir(), "init.sql")
	require.NoError(t, os.WriteFile(script, []byte("SELECT 1;"), 0o600))

	r := &fakeRunner{handle: absentInstances}
	c := NewClient(Options{ClusterName: "demo", InitScript: script}, WithRunner(r))
	primary := topology.NewNode(0, topology.RolePrimary, "lb1-primary", 15432, "lb1_primary", "172.30.0.11")

	_, err := c.CreateNodeInstance(context.Background(), primary, "demo-net")
	require.NoError(t, err)
	assert.Equal(t, []string{script + ":/docker-entrypoint-initdb.d/01-init.sql:ro"}, argValues(r.lastCall(), "-v"))
}

func TestCreateNodeInstance_MissingInitScriptNotMounted(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: absentInstances}
	c := NewClient(Options{InitScript: filepath.Join(t.TempDir(), "missing.sql")}, WithRunner(r))
	primary := topology.NewNode(0, topology.RolePrimary, "lb1-primary", 15432, "lb1_primary", "172.30.0.11")

	_, err := c.CreateNodeInstance(context.Background(), primary, "demo-net")
	require.NoError(t, err)
	assert.Empty(t, argValues(r.lastCall(), "-v"))
}

func TestCreateNodeInstance_AlreadyExists(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	c := newTestClient(r)
	node := topology.NewNode(1, topology.RoleReplica, "h", 15433, "lb1_replica1", "172.30.0.12")

	res, err := c.CreateNodeInstance(context.Background(), node, "demo-net")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyExists, res.Outcome)
	for _, cmd := range r.commands() {
		assert.False(t, strings.HasPrefix(cmd, "run "), "must not launch an existing instance")
	}
}

func TestCreateNodeInstance_RuntimeFailure(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: func(args []string) (Output, error) {
		if args[0] == "run" {
			return Output{}, cmdErr("Bind for 0.0.0.0:15432 failed: port is already allocated")
		}
		return absentInstances(args)
	}}
	c := newTestClient(r)
	node := topology.NewNode(0, topology.RolePrimary, "h", 15432, "lb1_primary", "172.30.0.11")

	_, err := c.CreateNodeInstance(context.Background(), node, "demo-net")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port is already allocated")
}

func TestCreateGroupInstance(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: absentInstances}
	c := newTestClient(r)

	res, err := c.CreateGroupInstance(context.Background(), sampleGroup(), "demo-net")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)

	args := r.lastCall()
	assert.Equal(t, []string{"6432:9999", "9898:9898", "8080:8080"}, argValues(args, "-p"))
	assert.Equal(t, []string{"lb1"}, argValues(args, "--hostname"))

	env := argValues(args, "-e")
	assert.Contains(t, env, "BACKEND0_HOST=lb1-primary")
	assert.Contains(t, env, "BACKEND0_PORT=5432")
	assert.Contains(t, env, "BACKEND1_HOST=lb1-replica1")
	assert.Contains(t, env, "BACKEND1_WEIGHT=1")
	assert.Contains(t, env, "BACKEND1_DATA_DIRECTORY=/var/lib/postgresql/data/pgdata")
	assert.NotContains(t, strings.Join(env, " "), "BACKEND2_")
	assert.Contains(t, env, "NUM_INIT_CHILDREN=32")
	assert.Contains(t, env, "MAX_POOL=8")
	assert.Contains(t, env, "CONNECTION_LIFE_TIME=300")
	assert.Contains(t, env, "REST_API_PORT=8080")
	assert.Contains(t, env, "WAIT_FOR_BACKENDS=yes")
	assert.Contains(t, argValues(args, "--label"), "pgbcluster.io/role=balancer")
	assert.Contains(t, argValues(args, "--label"), "pgbcluster.io/group=lb1")
	assert.Equal(t, "pgbalancer:latest", args[len(args)-1])
}

func TestCreateGroupInstance_TunablesOverrideDefaults(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: absentInstances}
	g := sampleGroup()
	g.Config = map[string]any{"load_balance_mode": "off"}

	_, err := newTestClient(r).CreateGroupInstance(context.Background(), g, "demo-net")
	require.NoError(t, err)

	var modes []string
	for _, kv := range argValues(r.lastCall(), "-e") {
		if strings.HasPrefix(kv, "LOAD_BALANCE_MODE=") {
			modes = append(modes, kv)
		}
	}
	assert.Equal(t, []string{"LOAD_BALANCE_MODE=on", "LOAD_BALANCE_MODE=off"}, modes,
		"the configured value comes last so the runtime keeps it")
}

func TestCreateGroupInstance_ImageMissing(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: func(args []string) (Output, error) {
		if args[0] == "image" {
			return Output{}, cmdErr("Error: No such image: pgbalancer:latest")
		}
		return Output{}, nil
	}}
	c := newTestClient(r)

	res, err := c.CreateGroupInstance(context.Background(), sampleGroup(), "demo-net")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Contains(t, res.Reason, "pgbalancer:latest")
	assert.Len(t, r.commands(), 1)
}

func TestCreateGroupInstance_InvalidTunables(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: absentInstances}
	g := sampleGroup()
	g.Config = map[string]any{"max_pool": "lots"}

	_, err := newTestClient(r).CreateGroupInstance(context.Background(), g, "demo-net")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config for balancer lb1")
}

func TestStopAndRemoveInstance(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	c := newTestClient(r)

	res, err := c.StopInstance(context.Background(), "lb1_primary")
	require.NoError(t, err)
	assert.Equal(t, OutcomeStopped, res.Outcome)
	assert.Equal(t, []string{"stop", "lb1_primary"}, r.lastCall())

	res, err = c.RemoveInstance(context.Background(), "lb1_primary")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, res.Outcome)
	assert.Equal(t, []string{"rm", "-f", "lb1_primary"}, r.lastCall())
}

func TestStopInstance_AlreadyStopped(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: func(args []string) (Output, error) {
		if args[0] == "stop" {
			return Output{}, cmdErr("Error response from daemon: container lb1_primary is not running")
		}
		return Output{}, nil
	}}
	res, err := newTestClient(r).StopInstance(context.Background(), "lb1_primary")
	require.NoError(t, err)
	assert.Equal(t, OutcomeStopped, res.Outcome)
}

func TestRemoveInstance_Absent(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: absentInstances}
	res, err := newTestClient(r).RemoveInstance(context.Background(), "gone")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAbsent, res.Outcome)
}

func TestListInstances(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{handle: func([]string) (Output, error) {
		return Output{Stdout: "lb1_primary\nlb1_replica3\n\n"}, nil
	}}

	names, err := newTestClient(r).ListInstances(context.Background(), map[string]string{"pgbcluster.io/cluster": "demo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lb1_primary", "lb1_replica3"}, names)
	assert.Equal(t, []string{"ps", "-a", "--format", "{{.Names}}", "--filter", "label=pgbcluster.io/cluster=demo"}, r.lastCall())
}
