package docker

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/labels"
)

// Ports the images listen on inside the instance.
const (
	nodeInternalPort     = 5432
	balancerInternalPort = 9999
	pcpInternalPort      = 9898
	restInternalPort     = 8080
)

const initScriptTarget = "/docker-entrypoint-initdb.d/01-init.sql"

// CreateNodeInstance launches a database instance for node on network.
func (c *Client) CreateNodeInstance(ctx context.Context, node *topology.Node, network string) (Result, error) {
	return (&EnsureOperation{
		Name:         node.InstanceName,
		ResourceType: "instance",
		Exists: func(ctx context.Context) (bool, error) {
			return c.exists(ctx, "container", node.InstanceName)
		},
		Create: func(ctx context.Context) error {
			_, err := c.run(ctx, c.nodeRunArgs(node, network)...)
			return err
		},
	}).Execute(ctx)
}

// CreateGroupInstance launches the balancer of group. Every node of the
// group is registered as a backend in identifier order.
func (c *Client) CreateGroupInstance(ctx context.Context, group *topology.Group, network string) (Result, error) {
	ok, err := c.ImageExists(ctx, c.opts.BalancerImage)
	if err != nil {
		return Result{}, fmt.Errorf("failed to inspect image %s: %w", c.opts.BalancerImage, err)
	}
	if !ok {
		return Result{
			Outcome: OutcomeSkipped,
			Reason:  fmt.Sprintf("image %s not found, build it before starting balancer %s", c.opts.BalancerImage, group.Name),
		}, nil
	}

	tunables, err := config.DecodeTunables(group.Config)
	if err != nil {
		return Result{}, fmt.Errorf("invalid config for balancer %s: %w", group.Name, err)
	}

	return (&EnsureOperation{
		Name:         group.InstanceName,
		ResourceType: "instance",
		Exists: func(ctx context.Context) (bool, error) {
			return c.exists(ctx, "container", group.InstanceName)
		},
		Create: func(ctx context.Context) error {
			_, err := c.run(ctx, c.balancerRunArgs(group, network, tunables)...)
			return err
		},
	}).Execute(ctx)
}

// StopInstance stops a running instance. An instance that is already
// stopped counts as stopped.
func (c *Client) StopInstance(ctx context.Context, name string) (Result, error) {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "instance",
		Exists: func(ctx context.Context) (bool, error) {
			return c.exists(ctx, "container", name)
		},
		Delete: func(ctx context.Context) error {
			_, err := c.run(ctx, "stop", name)
			if IsNotRunning(err) {
				return nil
			}
			return err
		},
		Done: OutcomeStopped,
	}).Execute(ctx)
}

// RemoveInstance force-removes an instance, stopping it if needed.
func (c *Client) RemoveInstance(ctx context.Context, name string) (Result, error) {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "instance",
		Exists: func(ctx context.Context) (bool, error) {
			return c.exists(ctx, "container", name)
		},
		Delete: func(ctx context.Context) error {
			_, err := c.run(ctx, "rm", "-f", name)
			return err
		},
		Done: OutcomeRemoved,
	}).Execute(ctx)
}

// ListInstances returns the names of all instances, running or not, that
// carry every given label.
func (c *Client) ListInstances(ctx context.Context, selector map[string]string) ([]string, error) {
	args := []string{"ps", "-a", "--format", "{{.Names}}"}
	for _, p := range labels.Pairs(selector) {
		args = append(args, "--filter", "label="+p)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return splitLines(out.Stdout), nil
}

func (c *Client) nodeRunArgs(node *topology.Node, network string) []string {
	args := []string{
		"run", "-d",
		"--name", node.InstanceName,
		"--hostname", node.Host,
		"--network", network,
		"--network-alias", node.Host,
		"--ip", node.IPAddress,
		"-p", fmt.Sprintf("%d:%d", node.Port, nodeInternalPort),
		"-e", "POSTGRES_PASSWORD=postgres",
		"-e", "POSTGRES_USER=postgres",
		"-e", "POSTGRES_DB=testdb",
		"-e", "PGDATA=" + node.DataDirectory,
		"--health-cmd", "pg_isready -U postgres",
		"--health-interval", "10s",
		"--health-timeout", "5s",
		"--health-retries", "5",
		"--health-start-period", "30s",
	}

	l := c.resourceLabels().WithRole(string(node.Role)).WithNodeID(node.ID)
	args = append(args, labelArgs(l.Build())...)

	if node.IsPrimary() && c.opts.InitScript != "" {
		if _, err := os.Stat(c.opts.InitScript); err == nil {
			args = append(args, "-v", c.opts.InitScript+":"+initScriptTarget+":ro")
		}
	}

	return append(args, c.opts.NodeImage)
}

func (c *Client) balancerRunArgs(group *topology.Group, network string, tunables config.Tunables) []string {
	args := []string{
		"run", "-d",
		"--name", group.InstanceName,
		"--hostname", group.Name,
		"--network", network,
		"--ip", group.IPAddress,
		"-p", fmt.Sprintf("%d:%d", group.Port, balancerInternalPort),
		"-p", fmt.Sprintf("%d:%d", group.PCPPort, pcpInternalPort),
		"-p", fmt.Sprintf("%d:%d", group.RESTAPIPort, restInternalPort),
	}

	for i, n := range group.AllNodes() {
		prefix := "BACKEND" + strconv.Itoa(i)
		args = append(args,
			"-e", prefix+"_HOST="+n.Host,
			"-e", fmt.Sprintf("%s_PORT=%d", prefix, nodeInternalPort),
			"-e", prefix+"_WEIGHT=1",
			"-e", prefix+"_DATA_DIRECTORY="+n.DataDirectory,
		)
	}

	args = append(args,
		"-e", "LOAD_BALANCE_MODE=on",
		"-e", "ENABLE_REST_API=on",
		"-e", fmt.Sprintf("REST_API_PORT=%d", group.RESTAPIPort),
		"-e", "HEALTH_CHECK_USER=postgres",
		"-e", "HEALTH_CHECK_PASSWORD=postgres",
		"-e", "SR_CHECK_USER=postgres",
		"-e", "SR_CHECK_PASSWORD=postgres",
		"-e", "WAIT_FOR_BACKENDS=yes",
	)

	// Tunables come after the defaults; the runtime keeps the last value of a key.
	for _, kv := range tunables.Env() {
		args = append(args, "-e", kv)
	}
	args = append(args,
		"--health-cmd", "pgrep pgbalancer",
		"--health-interval", "30s",
		"--health-timeout", "10s",
		"--health-retries", "3",
		"--health-start-period", "60s",
	)

	l := c.resourceLabels().WithGroup(group.Name).WithRole(labels.RoleBalancer)
	args = append(args, labelArgs(l.Build())...)

	return append(args, c.opts.BalancerImage)
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
