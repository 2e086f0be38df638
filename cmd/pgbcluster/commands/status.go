package commands

import "github.com/spf13/cobra"

// Status returns the status command.
func Status(g *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show status and health of every instance",
		Long: `Status inspects the balancer and every node of each group and prints
their runtime status and health next to their ports and addresses.
It never changes anything.

Examples:
  pgbcluster status
  pgbcluster status -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), g.options(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json or yaml")

	return cmd
}
