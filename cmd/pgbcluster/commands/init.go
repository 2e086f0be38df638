package commands

import "github.com/spf13/cobra"

// Init returns the init command.
//
// The init command creates the network and every group described in the
// configuration file: primary first, then replicas once the primary is
// healthy, then the balancer once its backends are healthy.
func Init(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the network, databases and balancers of the cluster",
		Long: `Init creates the cluster described by the configuration file.

For each balancer group, in configuration order:
  - The primary is started and waited on until healthy
  - Replicas are started and waited on
  - The balancer is started with every backend registered

Instances that already exist are left untouched, so init can be re-run
after a partial failure. Health timeouts and a missing balancer image are
reported as warnings and do not stop the command.

Example:
  pgbcluster init -c pgbalancer_cluster.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), g.options())
		},
	}
}
