package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/ptr"
)

// LoadFile reads, parses and validates the configuration file at path.
// Missing required keys are reported together in one error.
func LoadFile(path string) (*File, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if f.InitScript != "" && !filepath.IsAbs(f.InitScript) {
		f.InitScript = filepath.Join(filepath.Dir(path), f.InitScript)
	}
	return f, nil
}

// Parse decodes and validates configuration bytes. Defaults for images and
// the init script are filled in; the init script stays relative.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if f.Images.Node == "" {
		f.Images.Node = DefaultNodeImage
	}
	if f.Images.Balancer == "" {
		f.Images.Balancer = DefaultBalancerImage
	}
	if f.InitScript == "" {
		f.InitScript = DefaultInitScript
	}

	return &f, nil
}

// Load reads the configuration file and returns the cluster it describes.
func Load(path string) (*topology.Cluster, *File, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return f.Cluster(), f, nil
}

// Cluster converts a validated file into the in-memory topology.
func (f *File) Cluster() *topology.Cluster {
	cluster := &topology.Cluster{
		Name:          f.ClusterName,
		NetworkName:   f.Network.Name,
		NetworkSubnet: f.Network.Subnet,
		Groups:        make([]*topology.Group, 0, len(f.Balancers)),
	}

	for _, b := range f.Balancers {
		group := &topology.Group{
			Name:            b.Name,
			Port:            *b.Port,
			PCPPort:         *b.PCPPort,
			RESTAPIPort:     *b.RESTAPIPort,
			InstanceName:    b.ContainerName,
			IPAddress:       b.IPAddress,
			Config:          b.Config,
			Status:          topology.StatusStopped,
			ReplicaPortBase: ptr.Deref(b.ReplicaPortBase, 0),
			Primary: topology.NewNode(topology.PrimaryNodeID, topology.RolePrimary,
				b.Primary.Host, *b.Primary.Port, b.Primary.ContainerName, b.Primary.IPAddress),
		}
		if group.Config == nil {
			group.Config = map[string]any{}
		}
		for _, r := range b.Replicas {
			group.Replicas = append(group.Replicas, topology.NewNode(*r.NodeID, topology.RoleReplica,
				r.Host, *r.Port, r.ContainerName, r.IPAddress))
		}
		group.SortReplicas()
		cluster.Groups = append(cluster.Groups, group)
	}

	return cluster
}
