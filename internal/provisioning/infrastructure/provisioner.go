package infrastructure

import (
	"fmt"

	"github.com/imamik/pgbcluster/internal/provisioning"
)

const phase = "network"

// Provisioner handles network provisioning.
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	return p.ProvisionNetwork(ctx)
}

// ProvisionNetwork creates the cluster network. An existing network of the
// same name is reused.
func (p *Provisioner) ProvisionNetwork(ctx *provisioning.Context) error {
	name, subnet := ctx.Cluster.NetworkName, ctx.Cluster.NetworkSubnet

	provisioning.LogResourceCreating(ctx.Observer, phase, "network", name)
	res, err := ctx.Runtime.CreateNetwork(ctx, name, subnet)
	if err != nil {
		return fmt.Errorf("failed to create network %s (%s): %w", name, subnet, err)
	}
	provisioning.LogResult(ctx.Observer, phase, "network", name, res)
	return nil
}
