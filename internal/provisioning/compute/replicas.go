package compute

import (
	"context"

	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/provisioning/health"
	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/async"
)

// provisionReplicas creates every replica of g and gates on each. In
// sequential mode all replicas are created first, separated by the replica
// settle delay, and then gated in identifier order.
func (p *Provisioner) provisionReplicas(ctx *provisioning.Context, gate *health.Gate, g *topology.Group) error {
	if len(g.Replicas) == 0 {
		return nil
	}
	if ctx.Settings.ParallelReplicas {
		return p.provisionReplicasParallel(ctx, gate, g)
	}

	for _, r := range g.Replicas {
		if err := createNode(ctx, r); err != nil {
			return err
		}
		if err := ctx.Settle(ctx.Settings.ReplicaSettle); err != nil {
			return err
		}
	}

	for _, r := range g.Replicas {
		gate.WaitUntilHealthy(ctx, r.InstanceName, ctx.Settings.ReplicaHealthTimeout)
	}
	return nil
}

// provisionReplicasParallel creates and gates each replica concurrently.
// The primary is already gated, and the balancer waits for all of them.
func (p *Provisioner) provisionReplicasParallel(ctx *provisioning.Context, gate *health.Gate, g *topology.Group) error {
	tasks := make([]async.Task, 0, len(g.Replicas))
	for _, r := range g.Replicas {
		tasks = append(tasks, async.Task{
			Name: r.InstanceName,
			Func: func(context.Context) error {
				if err := createNode(ctx, r); err != nil {
					return err
				}
				gate.WaitUntilHealthy(ctx, r.InstanceName, ctx.Settings.ReplicaHealthTimeout)
				return nil
			},
		})
	}
	return async.RunParallel(ctx, tasks, 0)
}
