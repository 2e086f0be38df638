package config

import (
	"errors"
	"fmt"
)

// Validate checks that every required key is present and that group names
// and replica identifiers are unique. All problems are returned joined.
func (f *File) Validate() error {
	var errs []error
	missing := func(key string) {
		errs = append(errs, fmt.Errorf("missing required key %q", key))
	}

	if f.ClusterName == "" {
		missing("cluster_name")
	}
	if f.Network.Name == "" {
		missing("network.name")
	}
	if f.Network.Subnet == "" {
		missing("network.subnet")
	}
	if f.Balancers == nil {
		missing("balancers")
	}

	names := make(map[string]bool)
	for i := range f.Balancers {
		b := &f.Balancers[i]
		prefix := fmt.Sprintf("balancers[%d]", i)

		if b.Name == "" {
			missing(prefix + ".name")
		} else if names[b.Name] {
			errs = append(errs, fmt.Errorf("duplicate balancer name %q", b.Name))
		}
		names[b.Name] = true

		if b.Port == nil {
			missing(prefix + ".port")
		}
		if b.PCPPort == nil {
			missing(prefix + ".pcp_port")
		}
		if b.RESTAPIPort == nil {
			missing(prefix + ".rest_api_port")
		}
		if b.ContainerName == "" {
			missing(prefix + ".container_name")
		}
		if b.IPAddress == "" {
			missing(prefix + ".ip_address")
		}

		if b.Primary == nil {
			missing(prefix + ".primary")
		} else {
			errs = append(errs, validateNode(prefix+".primary", b.Primary, false)...)
		}

		ids := make(map[int]bool)
		for j := range b.Replicas {
			r := &b.Replicas[j]
			errs = append(errs, validateNode(fmt.Sprintf("%s.replicas[%d]", prefix, j), r, true)...)
			if r.NodeID == nil {
				continue
			}
			if *r.NodeID <= 0 {
				errs = append(errs, fmt.Errorf("%s.replicas[%d].node_id must be positive, got %d", prefix, j, *r.NodeID))
			} else if ids[*r.NodeID] {
				errs = append(errs, fmt.Errorf("%s has duplicate replica node_id %d", prefix, *r.NodeID))
			}
			ids[*r.NodeID] = true
		}

		if _, err := DecodeTunables(b.Config); err != nil {
			errs = append(errs, fmt.Errorf("%s.config: %w", prefix, err))
		}
	}

	return errors.Join(errs...)
}

func validateNode(prefix string, n *NodeSpec, replica bool) []error {
	var errs []error
	missing := func(key string) {
		errs = append(errs, fmt.Errorf("missing required key %q", prefix+"."+key))
	}

	if replica && n.NodeID == nil {
		missing("node_id")
	}
	if n.Host == "" {
		missing("host")
	}
	if n.Port == nil {
		missing("port")
	}
	if n.ContainerName == "" {
		missing("container_name")
	}
	if n.IPAddress == "" {
		missing("ip_address")
	}
	return errs
}
