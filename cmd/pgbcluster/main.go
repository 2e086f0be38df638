// Package main is the entry point for the pgbcluster CLI.
//
// pgbcluster builds and tears down local PostgreSQL clusters made of
// balancer-fronted groups (one primary, its streaming replicas and a
// pgBalancer instance) on a private Docker network, driven by a single
// JSON or YAML configuration file.
//
// Commands: init, destroy, status, add-replica, remove-replica, doctor,
// configure, version, completion.
//
// For detailed usage information, run:
//
//	pgbcluster --help
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/pgbcluster/cmd/pgbcluster/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	err := commands.Root().ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "\noperation cancelled")
		return 1
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
