package config

import (
	"os"
	"strconv"
	"time"
)

// Settings holds the per-invocation knobs that shape timing and output.
// Durations can be customized via environment variables; Verbose and
// ParallelReplicas come from command-line flags.
type Settings struct {
	PrimaryHealthTimeout time.Duration // Health gate timeout for a primary
	ReplicaHealthTimeout time.Duration // Health gate timeout for each replica
	HealthPollInterval   time.Duration // Delay between health polls
	ReplicaSettle        time.Duration // Pause after creating each replica
	BalancerSettle       time.Duration // Pause before creating a balancer
	StatusSettle         time.Duration // Pause before the post-init status report
	LogTailLines         int           // Log lines shown when a health wait times out

	Verbose          bool // Print runtime commands and diagnostics
	ParallelReplicas bool // Create a group's replicas and inspect status concurrently
}

// LoadSettings loads timing configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - PGBCLUSTER_PRIMARY_HEALTH_TIMEOUT (default: 90s)
//   - PGBCLUSTER_REPLICA_HEALTH_TIMEOUT (default: 90s)
//   - PGBCLUSTER_HEALTH_POLL_INTERVAL (default: 2s)
//   - PGBCLUSTER_REPLICA_SETTLE (default: 2s)
//   - PGBCLUSTER_BALANCER_SETTLE (default: 5s)
//   - PGBCLUSTER_STATUS_SETTLE (default: 10s)
//   - PGBCLUSTER_LOG_TAIL_LINES (default: 20)
func LoadSettings() *Settings {
	return &Settings{
		PrimaryHealthTimeout: parseDuration("PGBCLUSTER_PRIMARY_HEALTH_TIMEOUT", 90*time.Second),
		ReplicaHealthTimeout: parseDuration("PGBCLUSTER_REPLICA_HEALTH_TIMEOUT", 90*time.Second),
		HealthPollInterval:   parseDuration("PGBCLUSTER_HEALTH_POLL_INTERVAL", 2*time.Second),
		ReplicaSettle:        parseDuration("PGBCLUSTER_REPLICA_SETTLE", 2*time.Second),
		BalancerSettle:       parseDuration("PGBCLUSTER_BALANCER_SETTLE", 5*time.Second),
		StatusSettle:         parseDuration("PGBCLUSTER_STATUS_SETTLE", 10*time.Second),
		LogTailLines:         parseInt("PGBCLUSTER_LOG_TAIL_LINES", 20),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
