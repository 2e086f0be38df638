package status

import (
	"context"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/async"
)

// RoleBalancer is the role reported for a group's balancer instance.
const RoleBalancer = "balancer"

// defaultConcurrency bounds the number of inspect calls in flight when
// parallel runtime commands are enabled.
const defaultConcurrency = 8

// Instance is the observed state of one instance plus its static attributes.
type Instance struct {
	Name        string `json:"container_name" yaml:"container_name"`
	Role        string `json:"role" yaml:"role"`
	NodeID      int    `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	Host        string `json:"host,omitempty" yaml:"host,omitempty"`
	Port        int    `json:"port" yaml:"port"`
	PCPPort     int    `json:"pcp_port,omitempty" yaml:"pcp_port,omitempty"`
	RESTAPIPort int    `json:"rest_api_port,omitempty" yaml:"rest_api_port,omitempty"`
	IPAddress   string `json:"ip_address" yaml:"ip_address"`
	Status      string `json:"status" yaml:"status"`
	Health      string `json:"health" yaml:"health"`
}

// Healthy reports whether the instance is running and healthy.
func (i Instance) Healthy() bool {
	return i.Status == "running" && i.Health == string(docker.HealthHealthy)
}

// GroupReport holds the balancer followed by the primary and the replicas.
type GroupReport struct {
	Name     string     `json:"name" yaml:"name"`
	Balancer Instance   `json:"balancer" yaml:"balancer"`
	Nodes    []Instance `json:"nodes" yaml:"nodes"`
}

// Report is the observed state of a whole cluster.
type Report struct {
	Cluster string        `json:"cluster_name" yaml:"cluster_name"`
	Network string        `json:"network_name" yaml:"network_name"`
	Subnet  string        `json:"network_subnet" yaml:"network_subnet"`
	Groups  []GroupReport `json:"balancers" yaml:"balancers"`
}

// Reporter queries the runtime for every instance of a cluster.
type Reporter struct {
	// Concurrency bounds parallel inspect calls when Settings.ParallelReplicas
	// is set. Zero uses a default. Otherwise inspects run one at a time.
	Concurrency int
}

// NewReporter creates a reporter with the default concurrency.
func NewReporter() *Reporter {
	return &Reporter{Concurrency: defaultConcurrency}
}

type probe struct {
	group string
	inst  Instance
}

// Collect inspects the balancer and every node of each group. Groups keep
// their configured order, and nodes are listed primary first, then replicas
// in identifier order.
func (r *Reporter) Collect(ctx *provisioning.Context) *Report {
	c := ctx.Cluster
	report := &Report{
		Cluster: c.Name,
		Network: c.NetworkName,
		Subnet:  c.NetworkSubnet,
	}

	var probes []probe
	for _, g := range c.Groups {
		probes = append(probes, probe{group: g.Name, inst: balancerInstance(g)})
		for _, n := range g.AllNodes() {
			probes = append(probes, probe{group: g.Name, inst: nodeInstance(n)})
		}
	}

	limit := 1
	if ctx.Settings != nil && ctx.Settings.ParallelReplicas {
		limit = r.Concurrency
		if limit <= 0 {
			limit = defaultConcurrency
		}
	}
	observed := async.Map(ctx, probes, limit, func(cctx context.Context, p probe) probe {
		p.inst.Status = ctx.Runtime.InstanceStatus(cctx, p.inst.Name)
		p.inst.Health = string(ctx.Runtime.InstanceHealth(cctx, p.inst.Name))
		return p
	})

	i := 0
	for _, g := range c.Groups {
		gr := GroupReport{Name: g.Name, Balancer: observed[i].inst}
		i++
		for range g.AllNodes() {
			gr.Nodes = append(gr.Nodes, observed[i].inst)
			i++
		}
		report.Groups = append(report.Groups, gr)
	}

	recordInstances(ctx.Metrics, report)
	return report
}

func balancerInstance(g *topology.Group) Instance {
	return Instance{
		Name:        g.InstanceName,
		Role:        RoleBalancer,
		Port:        g.Port,
		PCPPort:     g.PCPPort,
		RESTAPIPort: g.RESTAPIPort,
		IPAddress:   g.IPAddress,
	}
}

func nodeInstance(n *topology.Node) Instance {
	return Instance{
		Name:      n.InstanceName,
		Role:      string(n.Role),
		NodeID:    n.ID,
		Host:      n.Host,
		Port:      n.Port,
		IPAddress: n.IPAddress,
	}
}

func recordInstances(m *provisioning.Metrics, report *Report) {
	if m == nil {
		return
	}
	for _, g := range report.Groups {
		counts := make(map[[2]string]int)
		for _, inst := range append([]Instance{g.Balancer}, g.Nodes...) {
			counts[[2]string{inst.Role, inst.Status}]++
		}
		for k, n := range counts {
			m.SetInstances(g.Name, k[0], k[1], n)
		}
	}
}
