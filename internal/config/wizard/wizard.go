package wizard

import (
	"context"
	"fmt"

	"github.com/imamik/pgbcluster/internal/config"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Cluster Identity
	ClusterName string
	Subnet      string

	// Topology
	GroupCount       int
	ReplicasPerGroup int

	// Advanced options (only set in advanced mode)
	AdvancedOptions *AdvancedOptions
}

// AdvancedOptions holds advanced configuration options.
type AdvancedOptions struct {
	// Pooling
	NumInitChildren int
	MaxPool         int

	// Images
	NodeImage     string
	BalancerImage string
}

// RunWizard runs the interactive configuration wizard.
// If advanced is true, additional configuration options are shown.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runClusterIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cluster identity: %w", err)
	}

	if err := runTopologyGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}

	if advanced {
		advOpts := &AdvancedOptions{}

		if err := runPoolGroup(ctx, advOpts); err != nil {
			return nil, fmt.Errorf("pooling: %w", err)
		}

		if err := runImagesGroup(ctx, advOpts, config.DefaultNodeImage, config.DefaultBalancerImage); err != nil {
			return nil, fmt.Errorf("images: %w", err)
		}

		result.AdvancedOptions = advOpts
	}

	return result, nil
}
