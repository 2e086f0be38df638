// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imamik/pgbcluster/cmd/pgbcluster/handlers"
	"github.com/imamik/pgbcluster/internal/config"
)

// Handler function variables - can be replaced in tests.
var (
	runInit          = handlers.Init
	runDestroy       = handlers.Destroy
	runStatus        = handlers.Status
	runAddReplica    = handlers.AddReplica
	runRemoveReplica = handlers.RemoveReplica
	runDoctor        = handlers.Doctor
	runConfigure     = handlers.Configure
)

// globalFlags are bound to persistent flags on the root command.
type globalFlags struct {
	configPath  string
	verbose     bool
	metricsFile string
	parallel    bool
}

func (g *globalFlags) options() handlers.Options {
	return handlers.Options{
		ConfigPath:  g.configPath,
		Verbose:     g.verbose,
		MetricsFile: g.metricsFile,
		Parallel:    g.parallel,
	}
}

// legacyFlags are the action flags accepted directly on the root command.
type legacyFlags struct {
	init       bool
	destroy    bool
	status     bool
	addReplica bool
	balancer   string
	count      int
}

// Root returns the root command for the pgbcluster CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It also accepts the action flags --init, --destroy, --status and
// --add-replica; at most one may be given. Without any action it prints help.
func Root() *cobra.Command {
	g := &globalFlags{}
	l := &legacyFlags{}

	cmd := &cobra.Command{
		Use:           "pgbcluster",
		Short:         "Manage balancer-fronted PostgreSQL clusters on Docker",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := g.options()
			switch {
			case l.init:
				return runInit(cmd.Context(), opts)
			case l.destroy:
				return runDestroy(cmd.Context(), opts, false)
			case l.status:
				return runStatus(cmd.Context(), opts, "table")
			case l.addReplica:
				if l.balancer == "" {
					return fmt.Errorf("--add-replica requires --balancer")
				}
				return runAddReplica(cmd.Context(), opts, l.balancer, l.count)
			default:
				return cmd.Help()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", config.DefaultConfigPath, "Path to cluster configuration file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Log every runtime command and show diagnostics")
	pf.StringVar(&g.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when the command finishes")
	pf.BoolVar(&g.parallel, "parallel", false, "Create the replicas of a group and inspect status concurrently")

	f := cmd.Flags()
	f.BoolVar(&l.init, "init", false, "Initialize the cluster (same as 'init')")
	f.BoolVar(&l.destroy, "destroy", false, "Destroy the cluster (same as 'destroy')")
	f.BoolVar(&l.status, "status", false, "Show cluster status (same as 'status')")
	f.BoolVar(&l.addReplica, "add-replica", false, "Add replicas to a group (same as 'add-replica')")
	f.StringVar(&l.balancer, "balancer", "", "Group name for --add-replica")
	f.IntVar(&l.count, "count", 1, "Number of replicas for --add-replica")
	cmd.MarkFlagsMutuallyExclusive("init", "destroy", "status", "add-replica")

	// Core commands
	cmd.AddCommand(Init(g))
	cmd.AddCommand(Destroy(g))
	cmd.AddCommand(Status(g))
	cmd.AddCommand(AddReplica(g))
	cmd.AddCommand(RemoveReplica(g))

	// Utility commands
	cmd.AddCommand(Doctor(g))
	cmd.AddCommand(Configure())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
