package orchestration

import (
	"context"
	"fmt"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/provisioning/compute"
	"github.com/imamik/pgbcluster/internal/provisioning/destroy"
	"github.com/imamik/pgbcluster/internal/provisioning/infrastructure"
	"github.com/imamik/pgbcluster/internal/provisioning/scale"
	"github.com/imamik/pgbcluster/internal/provisioning/status"
	"github.com/imamik/pgbcluster/internal/topology"
)

// Options configures an Orchestrator. Zero values are valid.
type Options struct {
	Observer provisioning.Observer
	Settings *config.Settings
	Metrics  *provisioning.Metrics

	// StopFirst stops instances gracefully before Destroy removes them.
	StopFirst bool
}

// Orchestrator runs the cluster lifecycle commands against one topology.
type Orchestrator struct {
	cluster  *topology.Cluster
	runtime  docker.Runtime
	observer provisioning.Observer
	settings *config.Settings
	metrics  *provisioning.Metrics

	// Phases
	networkProvisioner *infrastructure.Provisioner
	computeProvisioner *compute.Provisioner
	destroyProvisioner *destroy.Provisioner
	scaler             *scale.Scaler
	reporter           *status.Reporter
}

// New creates an orchestrator for cluster. When opts.Metrics is set every
// runtime mutation is counted.
func New(cluster *topology.Cluster, rt docker.Runtime, opts Options) *Orchestrator {
	observer := opts.Observer
	if observer == nil {
		observer = provisioning.NewDiscardObserver()
	}
	settings := opts.Settings
	if settings == nil {
		settings = config.LoadSettings()
	}

	return &Orchestrator{
		cluster:            cluster,
		runtime:            provisioning.InstrumentRuntime(rt, opts.Metrics),
		observer:           observer,
		settings:           settings,
		metrics:            opts.Metrics,
		networkProvisioner: infrastructure.NewProvisioner(),
		computeProvisioner: compute.NewProvisioner(),
		destroyProvisioner: &destroy.Provisioner{StopFirst: opts.StopFirst},
		scaler:             scale.NewScaler(),
		reporter:           status.NewReporter(),
	}
}

// Cluster returns the topology managed by the orchestrator.
func (o *Orchestrator) Cluster() *topology.Cluster {
	return o.cluster
}

func (o *Orchestrator) newContext(ctx context.Context) *provisioning.Context {
	pCtx := provisioning.NewContext(ctx, o.cluster, o.runtime, o.observer, o.settings)
	pCtx.Metrics = o.metrics
	return pCtx
}

// Init creates the network, then every group in configuration order, and
// reports the resulting status. Instances that already exist are left
// untouched. Runtime failures abort Init without rolling back what was
// already created; health timeouts and missing images only warn.
func (o *Orchestrator) Init(ctx context.Context) (*status.Report, error) {
	pCtx := o.newContext(ctx)

	o.observer.Printf("Initializing cluster %s (%d groups, %d database nodes)",
		o.cluster.Name, len(o.cluster.Groups), o.cluster.NodeCount())

	phases := []provisioning.Phase{
		provisioning.NewValidationPhase(),
		o.networkProvisioner,
		o.computeProvisioner,
		provisioning.PhaseFunc{PhaseName: "settle", Fn: func(c *provisioning.Context) error {
			c.Observer.Printf("Waiting %s for the cluster to settle", c.Settings.StatusSettle)
			return c.Settle(c.Settings.StatusSettle)
		}},
	}
	if err := provisioning.RunPhases(pCtx, phases); err != nil {
		return nil, err
	}

	report := o.reporter.Collect(pCtx)
	o.observer.Printf("Cluster %s initialized", o.cluster.Name)
	for _, line := range o.cluster.Summary() {
		o.observer.Printf("  %s", line)
	}
	return report, nil
}

// Destroy removes every balancer, then its primary and replicas, then any
// leftover instance labelled with the cluster name, and finally the network.
// Missing resources are not an error.
func (o *Orchestrator) Destroy(ctx context.Context) error {
	pCtx := o.newContext(ctx)
	o.observer.Printf("Destroying cluster %s", o.cluster.Name)

	if err := provisioning.RunPhases(pCtx, []provisioning.Phase{o.destroyProvisioner}); err != nil {
		return err
	}

	for _, g := range o.cluster.Groups {
		g.Status = topology.StatusStopped
		for _, n := range g.AllNodes() {
			n.Status = topology.StatusStopped
		}
	}
	o.observer.Printf("Cluster %s destroyed", o.cluster.Name)
	return nil
}

// Status inspects every instance without changing anything.
func (o *Orchestrator) Status(ctx context.Context) *status.Report {
	return o.reporter.Collect(o.newContext(ctx))
}

// AddReplicas creates count replicas in the named group. The replicas
// created before a failure are returned together with the error.
func (o *Orchestrator) AddReplicas(ctx context.Context, group string, count int) ([]*topology.Node, error) {
	pCtx := o.newContext(ctx)
	added, err := o.scaler.AddReplicas(pCtx, group, count)
	if err != nil {
		return added, fmt.Errorf("failed to add replicas to %s: %w", group, err)
	}
	o.observer.Printf("Added %d replicas to %s", len(added), group)
	return added, nil
}

// RemoveReplica removes the replica with the given identifier from the named group.
func (o *Orchestrator) RemoveReplica(ctx context.Context, group string, id int) (*topology.Node, error) {
	pCtx := o.newContext(ctx)
	removed, err := o.scaler.RemoveReplica(pCtx, group, id)
	if err != nil {
		return nil, fmt.Errorf("failed to remove replica %d from %s: %w", id, group, err)
	}
	o.observer.Printf("Removed replica %s from %s", removed.InstanceName, group)
	return removed, nil
}
