package commands

import "github.com/spf13/cobra"

// AddReplica returns the add-replica command.
func AddReplica(g *globalFlags) *cobra.Command {
	var (
		balancer string
		count    int
	)

	cmd := &cobra.Command{
		Use:   "add-replica",
		Short: "Add replicas to a running group",
		Long: `Add-replica creates new replicas in a group. Identifiers continue after
the highest existing one; addresses follow the last node of the group and
ports are derived from the group's port base.

The configuration file is not rewritten and the balancer is not
reconfigured; restart it to route to the new replicas.

Example:
  pgbcluster add-replica --balancer lb1 --count 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAddReplica(cmd.Context(), g.options(), balancer, count)
		},
	}

	cmd.Flags().StringVarP(&balancer, "balancer", "b", "", "Group to add replicas to (required)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of replicas to add")
	_ = cmd.MarkFlagRequired("balancer")

	return cmd
}

// RemoveReplica returns the remove-replica command.
func RemoveReplica(g *globalFlags) *cobra.Command {
	var (
		balancer string
		node     int
	)

	cmd := &cobra.Command{
		Use:   "remove-replica",
		Short: "Remove one replica from a group",
		Long: `Remove-replica removes the replica instance with the given identifier.
The balancer keeps listing it until restarted.

Example:
  pgbcluster remove-replica --balancer lb1 --node 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRemoveReplica(cmd.Context(), g.options(), balancer, node)
		},
	}

	cmd.Flags().StringVarP(&balancer, "balancer", "b", "", "Group the replica belongs to (required)")
	cmd.Flags().IntVar(&node, "node", 0, "Replica identifier (required)")
	_ = cmd.MarkFlagRequired("balancer")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}
