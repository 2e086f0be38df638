package scale

import (
	"fmt"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/labels"
	"github.com/imamik/pgbcluster/internal/util/naming"
)

const phase = "scale"

// Scaler adds and removes replicas on a provisioned cluster.
type Scaler struct{}

// NewScaler creates a new replica scaler.
func NewScaler() *Scaler {
	return &Scaler{}
}

// AddReplicas creates count new replicas in the named group and appends
// each to the group once its instance exists. Replicas that exist in the
// runtime but not in the configuration are adopted first, so identifiers,
// addresses and ports continue after them. On a runtime failure the replicas
// created so far are kept and returned together with the error.
func (s *Scaler) AddReplicas(ctx *provisioning.Context, groupName string, count int) ([]*topology.Node, error) {
	g, ok := ctx.Cluster.Group(groupName)
	if !ok {
		return nil, fmt.Errorf("balancer group %q not found", groupName)
	}
	if err := adoptRuntimeReplicas(ctx, g); err != nil {
		return nil, err
	}

	planned, err := Plan(ctx.Cluster, g, count)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate replicas for %s: %w", groupName, err)
	}

	obs := ctx.Observer.WithFields(map[string]string{"group": g.Name})
	added := make([]*topology.Node, 0, len(planned))
	for _, n := range planned {
		obs.Debugf("replica %d: host=%s ip=%s port=%d", n.ID, n.Host, n.IPAddress, n.Port)
		provisioning.LogResourceCreating(obs, phase, "instance", n.InstanceName)

		res, err := ctx.Runtime.CreateNodeInstance(ctx, n, ctx.Cluster.NetworkName)
		if err != nil {
			return added, fmt.Errorf("failed to create replica %s: %w", n.InstanceName, err)
		}
		if res.Outcome == docker.OutcomeAlreadyExists {
			return added, fmt.Errorf("replica %s already exists in the runtime but is not part of group %s", n.InstanceName, g.Name)
		}
		provisioning.LogResult(obs, phase, "instance", n.InstanceName, res)

		n.Status = topology.StatusRunning
		if err := g.AddReplica(n); err != nil {
			return added, err
		}
		added = append(added, n)
	}

	obs.Warnf("balancer %s was not reconfigured; restart it to register the new replicas", g.InstanceName)
	return added, nil
}

// RemoveReplica removes the replica with the given identifier from the
// named group. Its identifier is not handed out again during this run.
func (s *Scaler) RemoveReplica(ctx *provisioning.Context, groupName string, id int) (*topology.Node, error) {
	g, ok := ctx.Cluster.Group(groupName)
	if !ok {
		return nil, fmt.Errorf("balancer group %q not found", groupName)
	}
	if err := adoptRuntimeReplicas(ctx, g); err != nil {
		return nil, err
	}
	n, ok := g.Replica(id)
	if !ok {
		return nil, fmt.Errorf("group %s has no replica with identifier %d", groupName, id)
	}

	obs := ctx.Observer.WithFields(map[string]string{"group": g.Name})
	provisioning.LogResourceDeleting(obs, phase, "instance", n.InstanceName)
	res, err := ctx.Runtime.RemoveInstance(ctx, n.InstanceName)
	if err != nil {
		return nil, fmt.Errorf("failed to remove replica %s: %w", n.InstanceName, err)
	}
	provisioning.LogResult(obs, phase, "instance", n.InstanceName, res)

	removed, err := g.RemoveReplica(id)
	if err != nil {
		return nil, err
	}
	removed.Status = topology.StatusStopped

	obs.Warnf("balancer %s still lists %s; restart it to deregister the replica", g.InstanceName, n.Host)
	return removed, nil
}

// adoptRuntimeReplicas adds to g every replica instance of the cluster that
// the runtime knows about but the group does not, such as replicas added by
// an earlier invocation. Their addresses are read from the cluster network.
func adoptRuntimeReplicas(ctx *provisioning.Context, g *topology.Group) error {
	selector := labels.NewLabelBuilder(ctx.Cluster.Name).WithRole(string(topology.RoleReplica)).Build()
	names, err := ctx.Runtime.ListInstances(ctx, selector)
	if err != nil {
		return fmt.Errorf("failed to list replicas of %s: %w", g.Name, err)
	}

	for _, name := range names {
		id, ok := naming.ReplicaID(g.Name, name)
		if !ok {
			continue
		}
		if _, known := g.Replica(id); known {
			continue
		}
		ip, err := ctx.Runtime.InstanceAddress(ctx, name, ctx.Cluster.NetworkName)
		if err != nil {
			return fmt.Errorf("failed to adopt replica %s: %w", name, err)
		}

		n := topology.NewNode(id, topology.RoleReplica, naming.ReplicaHost(g.Name, id), g.ReplicaPortFor(id), name, ip)
		n.Status = topology.StatusUnknown
		if err := g.AddReplica(n); err != nil {
			return err
		}
		ctx.Observer.Debugf("adopted replica %s of group %s at %s", name, g.Name, ip)
	}
	return nil
}
