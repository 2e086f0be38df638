package docker

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/imamik/pgbcluster/internal/topology"
)

// MockClient is a mock implementation of Runtime. Unset funcs succeed with
// OutcomeCreated/OutcomeRemoved, report instances as running and healthy,
// list no instances, and report every image as present. Every call is recorded in order.
type MockClient struct {
	// Network
	CreateNetworkFunc func(ctx context.Context, name, subnet string) (Result, error)
	RemoveNetworkFunc func(ctx context.Context, name string) (Result, error)

	// Instances
	CreateNodeInstanceFunc  func(ctx context.Context, node *topology.Node, network string) (Result, error)
	CreateGroupInstanceFunc func(ctx context.Context, group *topology.Group, network string) (Result, error)
	StopInstanceFunc        func(ctx context.Context, name string) (Result, error)
	RemoveInstanceFunc      func(ctx context.Context, name string) (Result, error)
	ListInstancesFunc       func(ctx context.Context, labels map[string]string) ([]string, error)

	// Inspection
	InstanceStatusFunc  func(ctx context.Context, name string) string
	InstanceHealthFunc  func(ctx context.Context, name string) Health
	InstanceLogsFunc    func(ctx context.Context, name string, tail int) ([]string, error)
	InstanceAddressFunc func(ctx context.Context, name, network string) (string, error)
	ImageExistsFunc     func(ctx context.Context, image string) (bool, error)

	mu    sync.Mutex
	calls []string
}

// Ensure interface compliance
var _ Runtime = (*MockClient)(nil)

// Calls returns the recorded calls as "Method name" strings.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsTo returns the recorded calls of one method.
func (m *MockClient) CallsTo(method string) []string {
	var out []string
	for _, c := range m.Calls() {
		if arg, ok := strings.CutPrefix(c, method+" "); ok {
			out = append(out, arg)
		}
	}
	return out
}

func (m *MockClient) record(method, arg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("%s %s", method, arg))
}

// CreateNetwork mocks network creation.
func (m *MockClient) CreateNetwork(ctx context.Context, name, subnet string) (Result, error) {
	m.record("CreateNetwork", name)
	if m.CreateNetworkFunc != nil {
		return m.CreateNetworkFunc(ctx, name, subnet)
	}
	return Result{Outcome: OutcomeCreated}, nil
}

// RemoveNetwork mocks network removal.
func (m *MockClient) RemoveNetwork(ctx context.Context, name string) (Result, error) {
	m.record("RemoveNetwork", name)
	if m.RemoveNetworkFunc != nil {
		return m.RemoveNetworkFunc(ctx, name)
	}
	return Result{Outcome: OutcomeRemoved}, nil
}

// CreateNodeInstance mocks database instance creation.
func (m *MockClient) CreateNodeInstance(ctx context.Context, node *topology.Node, network string) (Result, error) {
	m.record("CreateNodeInstance", node.InstanceName)
	if m.CreateNodeInstanceFunc != nil {
		return m.CreateNodeInstanceFunc(ctx, node, network)
	}
	return Result{Outcome: OutcomeCreated}, nil
}

// CreateGroupInstance mocks balancer creation.
func (m *MockClient) CreateGroupInstance(ctx context.Context, group *topology.Group, network string) (Result, error) {
	m.record("CreateGroupInstance", group.InstanceName)
	if m.CreateGroupInstanceFunc != nil {
		return m.CreateGroupInstanceFunc(ctx, group, network)
	}
	return Result{Outcome: OutcomeCreated}, nil
}

// StopInstance mocks instance stop.
func (m *MockClient) StopInstance(ctx context.Context, name string) (Result, error) {
	m.record("StopInstance", name)
	if m.StopInstanceFunc != nil {
		return m.StopInstanceFunc(ctx, name)
	}
	return Result{Outcome: OutcomeStopped}, nil
}

// RemoveInstance mocks instance removal.
func (m *MockClient) RemoveInstance(ctx context.Context, name string) (Result, error) {
	m.record("RemoveInstance", name)
	if m.RemoveInstanceFunc != nil {
		return m.RemoveInstanceFunc(ctx, name)
	}
	return Result{Outcome: OutcomeRemoved}, nil
}

// ListInstances mocks label-filtered listing.
func (m *MockClient) ListInstances(ctx context.Context, labels map[string]string) ([]string, error) {
	m.record("ListInstances", fmt.Sprint(labels))
	if m.ListInstancesFunc != nil {
		return m.ListInstancesFunc(ctx, labels)
	}
	return nil, nil
}

// InstanceStatus mocks status inspection.
func (m *MockClient) InstanceStatus(ctx context.Context, name string) string {
	m.record("InstanceStatus", name)
	if m.InstanceStatusFunc != nil {
		return m.InstanceStatusFunc(ctx, name)
	}
	return "running"
}

// InstanceHealth mocks health inspection.
func (m *MockClient) InstanceHealth(ctx context.Context, name string) Health {
	m.record("InstanceHealth", name)
	if m.InstanceHealthFunc != nil {
		return m.InstanceHealthFunc(ctx, name)
	}
	return HealthHealthy
}

// InstanceLogs mocks log retrieval.
func (m *MockClient) InstanceLogs(ctx context.Context, name string, tail int) ([]string, error) {
	m.record("InstanceLogs", name)
	if m.InstanceLogsFunc != nil {
		return m.InstanceLogsFunc(ctx, name, tail)
	}
	return nil, nil
}

// InstanceAddress mocks address lookup. Unset, it reports the instance as
// detached from network.
func (m *MockClient) InstanceAddress(ctx context.Context, name, network string) (string, error) {
	m.record("InstanceAddress", name)
	if m.InstanceAddressFunc != nil {
		return m.InstanceAddressFunc(ctx, name, network)
	}
	return "", fmt.Errorf("instance %s is not attached to network %s", name, network)
}

// ImageExists mocks image lookup.
func (m *MockClient) ImageExists(ctx context.Context, image string) (bool, error) {
	m.record("ImageExists", image)
	if m.ImageExistsFunc != nil {
		return m.ImageExistsFunc(ctx, image)
	}
	return true, nil
}
