package wizard

import (
	"context"
	"net"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

// clusterNameRegex validates cluster name format: 1-32 lowercase alphanumeric with hyphens.
var clusterNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,30}[a-z0-9])?$`)

// runClusterIdentityGroup prompts for cluster name and network subnet.
func runClusterIdentityGroup(ctx context.Context, result *WizardResult) error {
	if result.Subnet == "" {
		result.Subnet = DefaultSubnet
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description("1-32 lowercase alphanumeric characters or hyphens").
				Placeholder("pgb-demo").
				Value(&result.ClusterName).
				Validate(validateClusterName),
			huh.NewInput().
				Title("Network Subnet").
				Description("Private subnet shared by every balancer and node").
				Placeholder(DefaultSubnet).
				Value(&result.Subnet).
				Validate(validateCIDR),
		).Title("Cluster Identity"),
	).RunWithContext(ctx)
}

// runTopologyGroup prompts for the number of groups and replicas.
func runTopologyGroup(ctx context.Context, result *WizardResult) error {
	result.GroupCount = DefaultGroupCount
	result.ReplicasPerGroup = DefaultReplicas

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Balancer Groups").
				Description("Each group is one primary, its replicas and one balancer").
				Options(GroupCountOptions...).
				Value(&result.GroupCount),
			huh.NewSelect[int]().
				Title("Replicas per Group").
				Description("Streaming replicas created next to each primary").
				Options(ReplicaCountOptions...).
				Value(&result.ReplicasPerGroup),
		).Title("Topology"),
	).RunWithContext(ctx)
}

// runPoolGroup prompts for balancer pool sizes.
func runPoolGroup(ctx context.Context, opts *AdvancedOptions) error {
	opts.NumInitChildren = 32
	opts.MaxPool = 4

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Balancer Children").
				Description("Number of preforked balancer processes (num_init_children)").
				Options(PoolSizeOptions...).
				Value(&opts.NumInitChildren),
			huh.NewSelect[int]().
				Title("Pool Size").
				Description("Cached connections per child (max_pool)").
				Options(MaxPoolOptions...).
				Value(&opts.MaxPool),
		).Title("Connection Pooling"),
	).RunWithContext(ctx)
}

// runImagesGroup prompts for the node and balancer images.
func runImagesGroup(ctx context.Context, opts *AdvancedOptions, nodeDefault, balancerDefault string) error {
	opts.NodeImage = nodeDefault
	opts.BalancerImage = balancerDefault

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Database Image").
				Value(&opts.NodeImage).
				Validate(validateImage),
			huh.NewInput().
				Title("Balancer Image").
				Description("Must exist locally before init").
				Value(&opts.BalancerImage).
				Validate(validateImage),
		).Title("Images"),
	).RunWithContext(ctx)
}

// validateClusterName validates the cluster name format.
func validateClusterName(s string) error {
	if s == "" {
		return errClusterNameRequired
	}
	if !clusterNameRegex.MatchString(s) {
		return errClusterNameInvalid
	}
	return nil
}

// validateCIDR validates an IPv4 CIDR.
func validateCIDR(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errCIDRRequired
	}
	ip, _, err := net.ParseCIDR(s)
	if err != nil || ip.To4() == nil {
		return errCIDRInvalid
	}
	return nil
}

func validateImage(s string) error {
	if strings.TrimSpace(s) == "" {
		return errImageRequired
	}
	return nil
}
