package docker

import (
	"context"

	"github.com/imamik/pgbcluster/internal/topology"
)

// Outcome tells the caller how a create/stop/remove call was resolved.
type Outcome string

const (
	OutcomeCreated       Outcome = "created"
	OutcomeAlreadyExists Outcome = "already_exists"
	OutcomeStopped       Outcome = "stopped"
	OutcomeRemoved       Outcome = "removed"
	OutcomeAbsent        Outcome = "absent"
	OutcomeSkipped       Outcome = "skipped"
)

// Result is the non-error result of a runtime mutation.
type Result struct {
	Outcome Outcome
	// Reason explains a skipped or already-existing outcome.
	Reason string
}

// Health is the health state reported by the runtime for an instance.
type Health string

const (
	HealthHealthy       Health = "healthy"
	HealthUnhealthy     Health = "unhealthy"
	HealthStarting      Health = "starting"
	HealthNoHealthcheck Health = "no_healthcheck"
	HealthUnknown       Health = "unknown"
)

// StatusNotFound is returned by InstanceStatus when the runtime has no such instance.
const StatusNotFound = "not_found"

// StatusUnknown is returned by InstanceStatus when the runtime could not be queried.
const StatusUnknown = "unknown"

// NetworkManager creates and removes the cluster's private network.
type NetworkManager interface {
	// CreateNetwork creates a bridge network; an existing network of the same
	// name yields OutcomeAlreadyExists.
	CreateNetwork(ctx context.Context, name, subnet string) (Result, error)
	// RemoveNetwork removes the network; absence yields OutcomeAbsent.
	RemoveNetwork(ctx context.Context, name string) (Result, error)
}

// InstanceManager launches, stops and removes instances.
type InstanceManager interface {
	CreateNodeInstance(ctx context.Context, node *topology.Node, network string) (Result, error)
	// CreateGroupInstance launches the balancer for group with every node of
	// the group registered as a backend. A missing balancer image yields
	// OutcomeSkipped and no error.
	CreateGroupInstance(ctx context.Context, group *topology.Group, network string) (Result, error)
	StopInstance(ctx context.Context, name string) (Result, error)
	RemoveInstance(ctx context.Context, name string) (Result, error)
	// ListInstances returns the names of all instances carrying every given label.
	ListInstances(ctx context.Context, labels map[string]string) ([]string, error)
}

// Inspector reads instance and image state. InstanceStatus and
// InstanceHealth never fail.
type Inspector interface {
	InstanceStatus(ctx context.Context, name string) string
	InstanceHealth(ctx context.Context, name string) Health
	InstanceLogs(ctx context.Context, name string, tail int) ([]string, error)
	// InstanceAddress returns the address of an instance on network.
	InstanceAddress(ctx context.Context, name, network string) (string, error)
	ImageExists(ctx context.Context, image string) (bool, error)
}

// Runtime is the full set of runtime operations used by the orchestrator.
type Runtime interface {
	NetworkManager
	InstanceManager
	Inspector
}
