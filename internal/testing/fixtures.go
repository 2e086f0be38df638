package testing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/topology"
)

// RuntimeFixture provides pre-configured mock runtimes for common test scenarios.
type RuntimeFixture struct {
	mock *docker.MockClient

	mu      sync.Mutex
	created map[string]bool
	addrs   map[string]string
}

// NewRuntimeFixture creates a new runtime fixture.
func NewRuntimeFixture() *RuntimeFixture {
	return &RuntimeFixture{
		mock:    &docker.MockClient{},
		created: make(map[string]bool),
		addrs:   make(map[string]string),
	}
}

// Mock returns the underlying MockClient for custom configuration.
func (f *RuntimeFixture) Mock() *docker.MockClient {
	return f.mock
}

// Healthy configures the mock so that every created instance is running,
// healthy and listed, and anything never created is not found.
// Returns the same mock for chaining.
func (f *RuntimeFixture) Healthy() *docker.MockClient {
	track := func(name string) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.created[name] = true
	}
	exists := func(name string) bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.created[name]
	}

	f.mock.CreateNodeInstanceFunc = func(_ context.Context, n *topology.Node, _ string) (docker.Result, error) {
		if exists(n.InstanceName) {
			return docker.Result{Outcome: docker.OutcomeAlreadyExists}, nil
		}
		track(n.InstanceName)
		f.mu.Lock()
		f.addrs[n.InstanceName] = n.IPAddress
		f.mu.Unlock()
		return docker.Result{Outcome: docker.OutcomeCreated}, nil
	}
	f.mock.CreateGroupInstanceFunc = func(_ context.Context, g *topology.Group, _ string) (docker.Result, error) {
		if exists(g.InstanceName) {
			return docker.Result{Outcome: docker.OutcomeAlreadyExists}, nil
		}
		track(g.InstanceName)
		return docker.Result{Outcome: docker.OutcomeCreated}, nil
	}
	f.mock.RemoveInstanceFunc = func(_ context.Context, name string) (docker.Result, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.created[name] {
			return docker.Result{Outcome: docker.OutcomeAbsent}, nil
		}
		delete(f.created, name)
		return docker.Result{Outcome: docker.OutcomeRemoved}, nil
	}
	f.mock.ListInstancesFunc = func(context.Context, map[string]string) ([]string, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		names := make([]string, 0, len(f.created))
		for name := range f.created {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
	f.mock.InstanceAddressFunc = func(_ context.Context, name, network string) (string, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if ip, ok := f.addrs[name]; ok && f.created[name] {
			return ip, nil
		}
		return "", fmt.Errorf("instance %s is not attached to network %s", name, network)
	}
	f.mock.InstanceStatusFunc = func(_ context.Context, name string) string {
		if exists(name) {
			return "running"
		}
		return docker.StatusNotFound
	}
	f.mock.InstanceHealthFunc = func(_ context.Context, name string) docker.Health {
		if exists(name) {
			return docker.HealthHealthy
		}
		return docker.HealthUnknown
	}
	return f.mock
}

// WithUnhealthy makes the named instances report "starting" forever.
func (f *RuntimeFixture) WithUnhealthy(names ...string) *docker.MockClient {
	unhealthy := make(map[string]bool, len(names))
	for _, n := range names {
		unhealthy[n] = true
	}
	next := f.mock.InstanceHealthFunc
	f.mock.InstanceHealthFunc = func(ctx context.Context, name string) docker.Health {
		if unhealthy[name] {
			return docker.HealthStarting
		}
		if next != nil {
			return next(ctx, name)
		}
		return docker.HealthHealthy
	}
	return f.mock
}

// WithMissingBalancerImage makes every balancer creation report skipped.
func (f *RuntimeFixture) WithMissingBalancerImage() *docker.MockClient {
	f.mock.CreateGroupInstanceFunc = func(context.Context, *topology.Group, string) (docker.Result, error) {
		return docker.Result{Outcome: docker.OutcomeSkipped, Reason: "image pgbalancer:latest not found"}, nil
	}
	f.mock.ImageExistsFunc = func(_ context.Context, image string) (bool, error) {
		return image != config.DefaultBalancerImage, nil
	}
	return f.mock
}

// WithNetworkError makes network creation fail with err.
func (f *RuntimeFixture) WithNetworkError(err error) *docker.MockClient {
	if err == nil {
		err = errors.New("network create failed")
	}
	f.mock.CreateNetworkFunc = func(context.Context, string, string) (docker.Result, error) {
		return docker.Result{}, err
	}
	return f.mock
}

// FastSettings returns settings with millisecond-scale timeouts and no settle delays.
func FastSettings() *config.Settings {
	return &config.Settings{
		PrimaryHealthTimeout: 20 * time.Millisecond,
		ReplicaHealthTimeout: 20 * time.Millisecond,
		HealthPollInterval:   time.Millisecond,
		LogTailLines:         5,
	}
}

// NewProvisioningContext builds a provisioning context around rt with a
// recording observer and FastSettings.
func NewProvisioningContext(t *testing.T, cluster *topology.Cluster, rt docker.Runtime) (*provisioning.Context, *RecordingObserver) {
	t.Helper()
	obs := NewRecordingObserver()
	ctx := provisioning.NewContext(TestContext(t), cluster, rt, obs, FastSettings())
	return ctx, obs
}
