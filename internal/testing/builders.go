package testing

import (
	"fmt"

	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/naming"
)

// groupSpec records a group to add at Build time.
type groupSpec struct {
	name     string
	replicas int
}

// ClusterBuilder provides a fluent interface for constructing test topologies.
// Each method returns a new builder (immutable) for chaining.
type ClusterBuilder struct {
	name    string
	network string
	subnet  string
	groups  []groupSpec
}

// NewClusterBuilder creates a new ClusterBuilder with sensible defaults.
func NewClusterBuilder() *ClusterBuilder {
	return &ClusterBuilder{
		name:    "demo",
		network: "demo-net",
		subnet:  "172.30.0.0/16",
	}
}

// WithName sets the cluster name and derives the network name from it.
func (b *ClusterBuilder) WithName(name string) *ClusterBuilder {
	nb := b.clone()
	nb.name = name
	nb.network = naming.Network(name)
	return nb
}

// WithSubnet sets the network subnet. Addresses are always assigned from
// 172.30.<group>.0, so a different subnet produces out-of-subnet nodes.
func (b *ClusterBuilder) WithSubnet(subnet string) *ClusterBuilder {
	nb := b.clone()
	nb.subnet = subnet
	return nb
}

// WithGroup adds a group with the given number of replicas.
//
// Group i (zero-based) gets balancer address 172.30.i.10, primary .11 and
// replicas from .12 upward. Its balancer ports are 6432+i, 9898+i and
// 8080+i, and its primary listens on 15432+100*i.
func (b *ClusterBuilder) WithGroup(name string, replicas int) *ClusterBuilder {
	nb := b.clone()
	nb.groups = append(nb.groups, groupSpec{name: name, replicas: replicas})
	return nb
}

// Build creates a fresh cluster. Every call returns independent values.
func (b *ClusterBuilder) Build() *topology.Cluster {
	c := &topology.Cluster{
		Name:          b.name,
		NetworkName:   b.network,
		NetworkSubnet: b.subnet,
	}

	for i, gs := range b.groups {
		base := 15432 + 100*i
		g := &topology.Group{
			Name:         gs.name,
			Port:         6432 + i,
			PCPPort:      9898 + i,
			RESTAPIPort:  8080 + i,
			InstanceName: gs.name,
			IPAddress:    fmt.Sprintf("172.30.%d.10", i),
			Primary: topology.NewNode(topology.PrimaryNodeID, topology.RolePrimary,
				naming.PrimaryHost(gs.name), base,
				naming.PrimaryInstance(gs.name), fmt.Sprintf("172.30.%d.11", i)),
			Config: map[string]any{},
			Status: topology.StatusStopped,
		}
		for id := 1; id <= gs.replicas; id++ {
			_ = g.AddReplica(topology.NewNode(id, topology.RoleReplica,
				naming.ReplicaHost(gs.name, id), base+id,
				naming.ReplicaInstance(gs.name, id), fmt.Sprintf("172.30.%d.%d", i, 11+id)))
		}
		c.Groups = append(c.Groups, g)
	}
	return c
}

func (b *ClusterBuilder) clone() *ClusterBuilder {
	nb := *b
	nb.groups = append([]groupSpec(nil), b.groups...)
	return &nb
}

// SampleCluster returns the two-group topology used across tests:
// lb1 with two replicas and lb2 with none.
func SampleCluster() *topology.Cluster {
	return NewClusterBuilder().WithGroup("lb1", 2).WithGroup("lb2", 0).Build()
}
