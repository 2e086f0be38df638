package docker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// InstanceStatus returns the runtime state of an instance ("running",
// "exited", ...), StatusNotFound when it does not exist, and StatusUnknown
// when the runtime could not be queried.
func (c *Client) InstanceStatus(ctx context.Context, name string) string {
	out, err := c.run(ctx, "inspect", "--type", "container", "--format", "{{.State.Status}}", name)
	if err != nil {
		if IsNotFound(err) {
			return StatusNotFound
		}
		return StatusUnknown
	}
	return strings.TrimSpace(out.Stdout)
}

// InstanceHealth returns the health state of an instance. Instances without
// a health check report HealthNoHealthcheck; any inspect failure, including
// a missing instance, reports HealthUnknown.
func (c *Client) InstanceHealth(ctx context.Context, name string) Health {
	out, err := c.run(ctx, "inspect", "--type", "container",
		"--format", "{{if .State.Health}}{{.State.Health.Status}}{{end}}", name)
	if err != nil {
		return HealthUnknown
	}
	return parseHealth(out.Stdout)
}

func parseHealth(s string) Health {
	switch h := Health(strings.TrimSpace(s)); h {
	case "":
		return HealthNoHealthcheck
	case HealthHealthy, HealthUnhealthy, HealthStarting:
		return h
	default:
		return HealthUnknown
	}
}

// InstanceLogs returns the last tail lines the instance wrote to either stream.
func (c *Client) InstanceLogs(ctx context.Context, name string, tail int) ([]string, error) {
	out, err := c.run(ctx, "logs", "--tail", strconv.Itoa(tail), name)
	if err != nil {
		return nil, err
	}
	lines := splitLines(out.Stdout)
	return append(lines, splitLines(out.Stderr)...), nil
}

// InstanceAddress returns the address of an instance on network. An
// instance that is not attached to network is an error.
func (c *Client) InstanceAddress(ctx context.Context, name, network string) (string, error) {
	format := fmt.Sprintf("{{with index .NetworkSettings.Networks %q}}{{.IPAddress}}{{end}}", network)
	out, err := c.run(ctx, "inspect", "--type", "container", "--format", format, name)
	if err != nil {
		return "", fmt.Errorf("failed to inspect instance %s: %w", name, err)
	}
	ip := strings.TrimSpace(out.Stdout)
	if ip == "" {
		return "", fmt.Errorf("instance %s is not attached to network %s", name, network)
	}
	return ip, nil
}

// ImageExists reports whether image is present locally.
func (c *Client) ImageExists(ctx context.Context, image string) (bool, error) {
	return c.exists(ctx, "image", image)
}
