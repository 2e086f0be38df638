package topology

import (
	"fmt"
	"sort"
)

// Role identifies whether a node is the group's primary or one of its replicas.
type Role string

const (
	RolePrimary Role = "primary"
	RoleReplica Role = "replica"
)

// Status is the last observed lifecycle state of a node. It is informational
// only; the runtime is the source of truth.
type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
	StatusUnknown Status = "unknown"
)

// PrimaryNodeID is the identifier conventionally reserved for a group's primary.
const PrimaryNodeID = 0

// DefaultDataDirectory is the data directory used inside every database instance.
const DefaultDataDirectory = "/var/lib/postgresql/data/pgdata"

// Node is a single database instance.
type Node struct {
	ID            int    `json:"node_id"`
	Role          Role   `json:"role"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	InstanceName  string `json:"container_name"`
	IPAddress     string `json:"ip_address"`
	DataDirectory string `json:"data_directory"`
	Status        Status `json:"status"`
}

// NewNode returns a node with the default data directory and a stopped status.
func NewNode(id int, role Role, host string, port int, instanceName, ip string) *Node {
	return &Node{
		ID:            id,
		Role:          role,
		Host:          host,
		Port:          port,
		InstanceName:  instanceName,
		IPAddress:     ip,
		DataDirectory: DefaultDataDirectory,
		Status:        StatusStopped,
	}
}

// IsPrimary reports whether the node is the group primary.
func (n *Node) IsPrimary() bool {
	return n.Role == RolePrimary
}

// Group is a primary plus its replicas, fronted by one balancer instance.
type Group struct {
	Name         string         `json:"name"`
	Port         int            `json:"port"`
	PCPPort      int            `json:"pcp_port"`
	RESTAPIPort  int            `json:"rest_api_port"`
	InstanceName string         `json:"container_name"`
	IPAddress    string         `json:"ip_address"`
	Primary      *Node          `json:"primary"`
	Replicas     []*Node        `json:"replicas"`
	Config       map[string]any `json:"config"`
	Status       Status         `json:"status"`

	// ReplicaPortBase is the base of the per-group replica port space.
	// Zero means the primary's port is used as the base.
	ReplicaPortBase int `json:"replica_port_base,omitempty"`

	// highWater is the largest replica identifier ever held by this group
	// during the current run, including removed replicas.
	highWater int
}

// AllNodes returns the primary followed by the replicas in identifier order.
func (g *Group) AllNodes() []*Node {
	nodes := make([]*Node, 0, len(g.Replicas)+1)
	if g.Primary != nil {
		nodes = append(nodes, g.Primary)
	}
	return append(nodes, g.Replicas...)
}

// SortReplicas orders replicas by identifier and records the high-water mark.
func (g *Group) SortReplicas() {
	sort.SliceStable(g.Replicas, func(i, j int) bool {
		return g.Replicas[i].ID < g.Replicas[j].ID
	})
	for _, r := range g.Replicas {
		if r.ID > g.highWater {
			g.highWater = r.ID
		}
	}
}

// NextReplicaID returns max(existing replica identifiers)+1, or 1 for a group
// without replicas. Identifiers of replicas removed during this run are never
// handed out again.
func (g *Group) NextReplicaID() int {
	next := g.highWater
	for _, r := range g.Replicas {
		if r.ID > next {
			next = r.ID
		}
	}
	return next + 1
}

// LastNode returns the replica with the highest identifier, or the primary
// when the group has no replicas.
func (g *Group) LastNode() *Node {
	if len(g.Replicas) == 0 {
		return g.Primary
	}
	return g.Replicas[len(g.Replicas)-1]
}

// Replica returns the replica with the given identifier.
func (g *Group) Replica(id int) (*Node, bool) {
	for _, r := range g.Replicas {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// AddReplica appends a replica and keeps the sequence in identifier order.
// It fails if the identifier is already taken.
func (g *Group) AddReplica(n *Node) error {
	if n.ID == PrimaryNodeID {
		return fmt.Errorf("replica identifier %d is reserved for the primary", n.ID)
	}
	if _, exists := g.Replica(n.ID); exists {
		return fmt.Errorf("group %s already has a replica with identifier %d", g.Name, n.ID)
	}
	g.Replicas = append(g.Replicas, n)
	g.SortReplicas()
	return nil
}

// RemoveReplica drops the replica with the given identifier from the group.
func (g *Group) RemoveReplica(id int) (*Node, error) {
	for i, r := range g.Replicas {
		if r.ID == id {
			if id > g.highWater {
				g.highWater = id
			}
			g.Replicas = append(g.Replicas[:i], g.Replicas[i+1:]...)
			return r, nil
		}
	}
	return nil, fmt.Errorf("group %s has no replica with identifier %d", g.Name, id)
}

// ReplicaPortFor returns the port assigned to a replica with the given identifier.
func (g *Group) ReplicaPortFor(id int) int {
	return g.PortBase() + id
}

// PortBase returns the base of the group's replica port space.
func (g *Group) PortBase() int {
	if g.ReplicaPortBase > 0 {
		return g.ReplicaPortBase
	}
	if g.Primary != nil {
		return g.Primary.Port
	}
	return 0
}

// Cluster is the full topology managed by one configuration file.
type Cluster struct {
	Name          string   `json:"cluster_name"`
	NetworkName   string   `json:"network_name"`
	NetworkSubnet string   `json:"network_subnet"`
	Groups        []*Group `json:"balancers"`
}

// Group returns the group with the given name.
func (c *Cluster) Group(name string) (*Group, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// NodeCount returns the number of database nodes across all groups.
func (c *Cluster) NodeCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.AllNodes())
	}
	return n
}

// UsedAddresses returns every network address assigned to a node or balancer.
func (c *Cluster) UsedAddresses() map[string]bool {
	used := make(map[string]bool)
	for _, g := range c.Groups {
		if g.IPAddress != "" {
			used[g.IPAddress] = true
		}
		for _, n := range g.AllNodes() {
			used[n.IPAddress] = true
		}
	}
	return used
}

// UsedPorts returns every externally published port in the cluster.
func (c *Cluster) UsedPorts() map[int]bool {
	used := make(map[int]bool)
	for _, g := range c.Groups {
		for _, p := range []int{g.Port, g.PCPPort, g.RESTAPIPort} {
			if p > 0 {
				used[p] = true
			}
		}
		for _, n := range g.AllNodes() {
			used[n.Port] = true
		}
	}
	return used
}

// Summary returns one human-readable line per group.
func (c *Cluster) Summary() []string {
	lines := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		lines = append(lines, fmt.Sprintf("%s: 1 primary + %d replicas", g.Name, len(g.Replicas)))
	}
	return lines
}
