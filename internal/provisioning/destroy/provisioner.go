package destroy

import (
	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/util/labels"
)

const phase = "destroy"

// Provisioner handles cluster destruction.
type Provisioner struct {
	// StopFirst stops each instance gracefully before removing it.
	StopFirst bool
}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision destroys the cluster's instances and network. It only fails
// when the context is cancelled.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	removed := make(map[string]bool)

	for _, g := range ctx.Cluster.Groups {
		names := []string{g.InstanceName}
		for _, n := range g.AllNodes() {
			names = append(names, n.InstanceName)
		}
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.removeInstance(ctx, name)
			removed[name] = true
		}
	}

	p.sweep(ctx, removed)

	if err := ctx.Err(); err != nil {
		return err
	}
	provisioning.LogResourceDeleting(ctx.Observer, phase, "network", ctx.Cluster.NetworkName)
	res, err := ctx.Runtime.RemoveNetwork(ctx, ctx.Cluster.NetworkName)
	if err != nil {
		ctx.Observer.Warnf("failed to remove network %s: %v", ctx.Cluster.NetworkName, err)
		return nil
	}
	provisioning.LogResult(ctx.Observer, phase, "network", ctx.Cluster.NetworkName, res)
	return nil
}

func (p *Provisioner) removeInstance(ctx *provisioning.Context, name string) {
	if p.StopFirst {
		if _, err := ctx.Runtime.StopInstance(ctx, name); err != nil {
			ctx.Observer.Debugf("failed to stop %s: %v", name, err)
		}
	}

	provisioning.LogResourceDeleting(ctx.Observer, phase, "instance", name)
	res, err := ctx.Runtime.RemoveInstance(ctx, name)
	if err != nil {
		ctx.Observer.Warnf("failed to remove %s: %v", name, err)
		return
	}
	provisioning.LogResult(ctx.Observer, phase, "instance", name, res)
}

// sweep removes instances labeled with the cluster name that the ordered
// pass did not cover.
func (p *Provisioner) sweep(ctx *provisioning.Context, removed map[string]bool) {
	names, err := ctx.Runtime.ListInstances(ctx, labels.SelectorForCluster(ctx.Cluster.Name))
	if err != nil {
		ctx.Observer.Warnf("failed to list leftover instances of cluster %s: %v", ctx.Cluster.Name, err)
		return
	}
	for _, name := range names {
		if removed[name] || ctx.Err() != nil {
			continue
		}
		ctx.Observer.Printf("removing unlisted instance %s", name)
		p.removeInstance(ctx, name)
		removed[name] = true
	}
}
