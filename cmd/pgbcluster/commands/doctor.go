package commands

import "github.com/spf13/cobra"

// Doctor returns the doctor command.
func Doctor(g *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites and the configuration",
		Long: `Doctor verifies that the cluster can be created:

  - docker is installed (psql is reported as optional)
  - The configuration file loads
  - Addresses and instance names are unique and inside the subnet
  - The node and balancer images exist locally
  - Published ports of instances that are not running are free

Example:
  pgbcluster doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.Context(), g.options(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
