package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/config/wizard"
)

// Factory function variables for configure - can be replaced in tests.
var (
	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig

	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite
)

// Configure runs the configuration wizard and writes the result to outputPath.
func Configure(ctx context.Context, outputPath string, advanced bool) error {
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Fprintln(stdout, "Aborted, existing file kept.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx, advanced)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	f, err := wizard.BuildConfig(result)
	if err != nil {
		return err
	}

	if err := writeConfig(f, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printConfigureSuccess(outputPath, f)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "pgbcluster - balancer-fronted PostgreSQL clusters on Docker")
	fmt.Fprintln(stdout, "===========================================================")
	fmt.Fprintln(stdout)
}

// printConfigureSuccess prints the success message with summary and next steps.
func printConfigureSuccess(outputPath string, f *config.File) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Cluster Summary")
	fmt.Fprintln(stdout, "---------------")
	fmt.Fprintf(stdout, "  Name:    %s\n", f.ClusterName)
	fmt.Fprintf(stdout, "  Network: %s (%s)\n", f.Network.Name, f.Network.Subnet)
	for _, line := range f.Cluster().Summary() {
		fmt.Fprintf(stdout, "  %s\n", line)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintln(stdout, "  1. Check prerequisites:")
	fmt.Fprintf(stdout, "     pgbcluster doctor -c %s\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  2. Create your cluster:")
	fmt.Fprintf(stdout, "     pgbcluster init -c %s\n", outputPath)
	fmt.Fprintln(stdout)
}
