package scale

import (
	"fmt"
	"net/netip"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/naming"
)

// maxHostOctet is the highest last octet handed out; .255 is broadcast.
const maxHostOctet = 254

// Plan returns count new replica nodes for g without modifying the cluster.
func Plan(c *topology.Cluster, g *topology.Group, count int) ([]*topology.Node, error) {
	if count <= 0 {
		return nil, fmt.Errorf("replica count must be positive, got %d", count)
	}
	if g.Primary == nil {
		return nil, fmt.Errorf("group %s has no primary", g.Name)
	}

	addrs, err := allocateAddresses(c, g, count)
	if err != nil {
		return nil, err
	}

	usedPorts := c.UsedPorts()
	first := g.NextReplicaID()
	nodes := make([]*topology.Node, 0, count)
	for i := 0; i < count; i++ {
		id := first + i
		port := g.ReplicaPortFor(id)
		if port > 65535 {
			return nil, fmt.Errorf("port %d for replica %d of group %s is out of range", port, id, g.Name)
		}
		if usedPorts[port] {
			return nil, fmt.Errorf("port %d for replica %d of group %s is already in use", port, id, g.Name)
		}
		nodes = append(nodes, topology.NewNode(
			id,
			topology.RoleReplica,
			naming.ReplicaHost(g.Name, id),
			port,
			naming.ReplicaInstance(g.Name, id),
			addrs[i],
		))
	}
	return nodes, nil
}

// allocateAddresses hands out count addresses sharing the first three
// octets of the group's own address. The last octet continues from the
// group's last node and skips any address already used in the cluster.
func allocateAddresses(c *topology.Cluster, g *topology.Group, count int) ([]string, error) {
	groupAddr, err := netip.ParseAddr(g.IPAddress)
	if err != nil || !groupAddr.Is4() {
		return nil, fmt.Errorf("group %s has invalid address %q", g.Name, g.IPAddress)
	}
	last := g.LastNode()
	lastAddr, err := netip.ParseAddr(last.IPAddress)
	if err != nil || !lastAddr.Is4() {
		return nil, fmt.Errorf("node %s has invalid address %q", last.InstanceName, last.IPAddress)
	}

	prefix := groupAddr.As4()
	octet := int(lastAddr.As4()[3])
	used := c.UsedAddresses()

	addrs := make([]string, 0, count)
	for len(addrs) < count {
		octet++
		if octet > maxHostOctet {
			return nil, fmt.Errorf("no free address left for group %s after %s", g.Name, last.IPAddress)
		}
		prefix[3] = byte(octet)
		ip := netip.AddrFrom4(prefix).String()
		if used[ip] {
			continue
		}

		if c.NetworkSubnet != "" {
			ok, err := config.CIDRContains(c.NetworkSubnet, ip)
			if err != nil {
				return nil, fmt.Errorf("invalid network subnet: %w", err)
			}
			if !ok {
				return nil, fmt.Errorf("address %s for group %s is outside subnet %s", ip, g.Name, c.NetworkSubnet)
			}
		}

		used[ip] = true
		addrs = append(addrs, ip)
	}
	return addrs, nil
}
