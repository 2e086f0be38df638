package compute

import (
	"fmt"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/provisioning/health"
	"github.com/imamik/pgbcluster/internal/topology"
)

const phase = "compute"

// Provisioner handles instance provisioning for all groups.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	gate := health.NewGate(ctx)
	for i, g := range ctx.Cluster.Groups {
		ctx.Observer.Progress(phase, i, len(ctx.Cluster.Groups))
		if err := p.ProvisionGroup(ctx, gate, g); err != nil {
			return err
		}
	}
	ctx.Observer.Progress(phase, len(ctx.Cluster.Groups), len(ctx.Cluster.Groups))
	return nil
}

// ProvisionGroup brings up one group: primary, replicas, balancer.
func (p *Provisioner) ProvisionGroup(ctx *provisioning.Context, gate *health.Gate, g *topology.Group) error {
	obs := ctx.Observer.WithFields(map[string]string{"group": g.Name})
	gctx := *ctx
	gctx.Observer = obs

	if g.Primary == nil {
		return fmt.Errorf("group %s has no primary", g.Name)
	}
	if err := createNode(&gctx, g.Primary); err != nil {
		return err
	}
	gate.Observer = obs
	gate.WaitUntilHealthy(ctx, g.Primary.InstanceName, ctx.Settings.PrimaryHealthTimeout)

	if err := p.provisionReplicas(&gctx, gate, g); err != nil {
		return err
	}

	if err := gctx.Settle(ctx.Settings.BalancerSettle); err != nil {
		return err
	}
	return createBalancer(&gctx, g)
}

func createNode(ctx *provisioning.Context, n *topology.Node) error {
	provisioning.LogResourceCreating(ctx.Observer, phase, "instance", n.InstanceName)
	res, err := ctx.Runtime.CreateNodeInstance(ctx, n, ctx.Cluster.NetworkName)
	if err != nil {
		return fmt.Errorf("failed to create %s %s: %w", n.Role, n.InstanceName, err)
	}
	provisioning.LogResult(ctx.Observer, phase, "instance", n.InstanceName, res)
	n.Status = topology.StatusRunning
	return nil
}

func createBalancer(ctx *provisioning.Context, g *topology.Group) error {
	provisioning.LogResourceCreating(ctx.Observer, phase, "balancer", g.InstanceName)
	res, err := ctx.Runtime.CreateGroupInstance(ctx, g, ctx.Cluster.NetworkName)
	if err != nil {
		return fmt.Errorf("failed to create balancer %s: %w", g.InstanceName, err)
	}
	provisioning.LogResult(ctx.Observer, phase, "balancer", g.InstanceName, res)
	if res.Outcome != docker.OutcomeSkipped {
		g.Status = topology.StatusRunning
	}
	return nil
}
