package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/pgbcluster/internal/config"
)

// Configure returns the command for interactively creating a cluster configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "pgbalancer_cluster.json")
//	--advanced, -a: Ask for pool sizes and images
func Configure() *cobra.Command {
	var (
		outputPath string
		advanced   bool
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Interactively create a cluster configuration",
		Long: `Interactively create a cluster configuration file.

The wizard asks for:

  - Cluster name and network subnet
  - Number of balancer groups
  - Number of replicas per group

Use --advanced to also choose pool sizes and images. Files ending in
.json are written as JSON, anything else as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigure(cmd.Context(), outputPath, advanced)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigPath, "Output file path")
	cmd.Flags().BoolVarP(&advanced, "advanced", "a", false, "Show advanced configuration options")

	return cmd
}
