package docker

import (
	"context"

	"github.com/imamik/pgbcluster/internal/util/labels"
)

// CreateNetwork creates a bridge network with the given subnet.
func (c *Client) CreateNetwork(ctx context.Context, name, subnet string) (Result, error) {
	return (&EnsureOperation{
		Name:         name,
		ResourceType: "network",
		Exists: func(ctx context.Context) (bool, error) {
			return c.exists(ctx, "network", name)
		},
		Create: func(ctx context.Context) error {
			args := []string{"network", "create", "--driver", "bridge", "--subnet", subnet}
			args = append(args, labelArgs(c.resourceLabels().Build())...)
			args = append(args, name)
			_, err := c.run(ctx, args...)
			return err
		},
	}).Execute(ctx)
}

// RemoveNetwork removes the network.
func (c *Client) RemoveNetwork(ctx context.Context, name string) (Result, error) {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "network",
		Exists: func(ctx context.Context) (bool, error) {
			return c.exists(ctx, "network", name)
		},
		Delete: func(ctx context.Context) error {
			_, err := c.run(ctx, "network", "rm", name)
			return err
		},
		Done: OutcomeRemoved,
	}).Execute(ctx)
}

// exists inspects an object of the given kind (container, network, image).
func (c *Client) exists(ctx context.Context, kind, name string) (bool, error) {
	var args []string
	switch kind {
	case "container":
		args = []string{"container", "inspect", "--format", "{{.Name}}", name}
	case "network":
		args = []string{"network", "inspect", "--format", "{{.Name}}", name}
	default:
		args = []string{"image", "inspect", "--format", "{{.Id}}", name}
	}

	if _, err := c.run(ctx, args...); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) resourceLabels() *labels.LabelBuilder {
	return labels.NewLabelBuilder(c.opts.ClusterName).WithRunIDIfSet(c.opts.RunID)
}

func labelArgs(l map[string]string) []string {
	pairs := labels.Pairs(l)
	args := make([]string, 0, 2*len(pairs))
	for _, p := range pairs {
		args = append(args, "--label", p)
	}
	return args
}
