package wizard

import (
	"fmt"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/util/naming"
	"github.com/imamik/pgbcluster/internal/util/ptr"
)

// BuildConfig creates a configuration file from the wizard result. Groups
// are named lb1, lb2, ... and receive consecutive ports and address blocks.
func BuildConfig(result *WizardResult) (*config.File, error) {
	if result.GroupCount <= 0 {
		return nil, fmt.Errorf("at least one balancer group is required")
	}
	if result.ReplicasPerGroup < 0 || result.ReplicasPerGroup > hostsPerGroup-2 {
		return nil, fmt.Errorf("replicas per group must be between 0 and %d", hostsPerGroup-2)
	}

	f := &config.File{
		ClusterName: result.ClusterName,
		Network: config.NetworkSpec{
			Name:   naming.Network(result.ClusterName),
			Subnet: result.Subnet,
		},
		Balancers: make([]config.BalancerSpec, 0, result.GroupCount),
	}

	for i := 0; i < result.GroupCount; i++ {
		b, err := buildBalancer(result, i)
		if err != nil {
			return nil, err
		}
		f.Balancers = append(f.Balancers, b)
	}

	if adv := result.AdvancedOptions; adv != nil {
		f.Images = config.ImageSpec{Node: adv.NodeImage, Balancer: adv.BalancerImage}
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("generated configuration is invalid: %w", err)
	}
	return f, nil
}

func buildBalancer(result *WizardResult, i int) (config.BalancerSpec, error) {
	name := fmt.Sprintf("lb%d", i+1)
	first := firstHost + i*hostsPerGroup

	host := func(offset int) (string, error) {
		addr, err := config.CIDRHost(result.Subnet, first+offset)
		if err != nil {
			return "", fmt.Errorf("subnet %s is too small for group %s: %w", result.Subnet, name, err)
		}
		return addr, nil
	}

	balancerIP, err := host(0)
	if err != nil {
		return config.BalancerSpec{}, err
	}
	primaryIP, err := host(1)
	if err != nil {
		return config.BalancerSpec{}, err
	}

	primaryPort := primaryPortBase + i*primaryPortStep
	b := config.BalancerSpec{
		Name:          name,
		Port:          ptr.Int(balancerPortBase + i),
		PCPPort:       ptr.Int(pcpPortBase + i),
		RESTAPIPort:   ptr.Int(restPortBase + i),
		ContainerName: name,
		IPAddress:     balancerIP,
		Primary: &config.NodeSpec{
			Host:          naming.PrimaryHost(name),
			Port:          ptr.Int(primaryPort),
			ContainerName: naming.PrimaryInstance(name),
			IPAddress:     primaryIP,
		},
	}

	for id := 1; id <= result.ReplicasPerGroup; id++ {
		ip, err := host(1 + id)
		if err != nil {
			return config.BalancerSpec{}, err
		}
		b.Replicas = append(b.Replicas, config.NodeSpec{
			NodeID:        ptr.Int(id),
			Host:          naming.ReplicaHost(name, id),
			Port:          ptr.Int(primaryPort + id),
			ContainerName: naming.ReplicaInstance(name, id),
			IPAddress:     ip,
		})
	}

	if adv := result.AdvancedOptions; adv != nil {
		b.Config = map[string]any{
			"num_init_children": adv.NumInitChildren,
			"max_pool":          adv.MaxPool,
		}
	}
	return b, nil
}
