package commands

import "github.com/spf13/cobra"

// Destroy returns the destroy command.
//
// The destroy command removes balancers before their backends, then any
// leftover instance labelled with the cluster name, and finally the network.
func Destroy(g *globalFlags) *cobra.Command {
	var stopFirst bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Remove every instance and the network of the cluster",
		Long: `Destroy removes all cluster resources from Docker.

For each group the balancer is removed first, then the primary and the
replicas. Instances labelled with the cluster name that the configuration
does not list (for example replicas added at runtime) are removed next,
and the network last. Missing resources are skipped.

Example:
  pgbcluster destroy -c pgbalancer_cluster.json

WARNING: This operation is irreversible. All database data will be lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDestroy(cmd.Context(), g.options(), stopFirst)
		},
	}

	cmd.Flags().BoolVar(&stopFirst, "stop-first", false, "Stop each instance gracefully before removing it")

	return cmd
}
