package topology

import (
	"fmt"
	"net/netip"
)

// Check reports address and naming problems in the cluster: addresses that
// fall outside the network subnet, and addresses or instance names used more
// than once. An empty result means no problems were found. Check never
// modifies the cluster.
func (c *Cluster) Check() []string {
	var problems []string

	prefix, err := netip.ParsePrefix(c.NetworkSubnet)
	if err != nil {
		problems = append(problems, fmt.Sprintf("network subnet %q is not a valid CIDR: %v", c.NetworkSubnet, err))
	}

	addrOwner := make(map[string]string)
	nameOwner := make(map[string]string)

	claim := func(owner, instance, ip string) {
		if prev, ok := nameOwner[instance]; ok {
			problems = append(problems, fmt.Sprintf("instance name %s is used by both %s and %s", instance, prev, owner))
		} else {
			nameOwner[instance] = owner
		}

		if prev, ok := addrOwner[ip]; ok {
			problems = append(problems, fmt.Sprintf("address %s is used by both %s and %s", ip, prev, owner))
		} else {
			addrOwner[ip] = owner
		}

		addr, err := netip.ParseAddr(ip)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s has an invalid address %q", owner, ip))
			return
		}
		if prefix.IsValid() && !prefix.Contains(addr) {
			problems = append(problems, fmt.Sprintf("%s address %s is outside subnet %s", owner, ip, c.NetworkSubnet))
		}
	}

	for _, g := range c.Groups {
		claim("balancer "+g.Name, g.InstanceName, g.IPAddress)
		for _, n := range g.AllNodes() {
			claim(fmt.Sprintf("%s %s/%d", n.Role, g.Name, n.ID), n.InstanceName, n.IPAddress)
		}
	}

	return problems
}
