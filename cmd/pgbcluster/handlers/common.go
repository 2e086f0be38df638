package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/orchestration"
	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
	"github.com/imamik/pgbcluster/internal/topology"
)

// Options carries the flags shared by every cluster command.
type Options struct {
	ConfigPath  string
	Verbose     bool
	MetricsFile string
	Parallel    bool
}

// Factory function variables - can be replaced in tests.
var (
	// loadCluster reads the configuration file.
	loadCluster = config.Load

	// newRuntime creates the docker runtime.
	newRuntime = func(opts docker.Options) docker.Runtime {
		return docker.NewClient(opts)
	}

	// loadSettings reads timing settings from the environment.
	loadSettings = config.LoadSettings

	// newLogger creates the console logger.
	newLogger = defaultLogger

	// newRunID returns the identifier stamped on resources created by this invocation.
	newRunID = uuid.NewString

	// stdout receives rendered command output.
	stdout io.Writer = os.Stdout
)

// session bundles everything a cluster command needs.
type session struct {
	cluster  *topology.Cluster
	file     *config.File
	orch     *orchestration.Orchestrator
	runtime  docker.Runtime
	observer provisioning.Observer
	metrics  *provisioning.Metrics
	settings *config.Settings
	opts     Options
}

// newSession loads the configuration and wires the orchestrator.
func newSession(opts Options, stopFirst bool) (*session, error) {
	cluster, file, err := loadCluster(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	log := newLogger(opts.Verbose)
	settings := loadSettings()
	settings.Verbose = opts.Verbose
	settings.ParallelReplicas = opts.Parallel

	var metrics *provisioning.Metrics
	if opts.MetricsFile != "" {
		metrics = provisioning.NewMetrics()
	}

	rt := newRuntime(docker.Options{
		ClusterName:   cluster.Name,
		RunID:         newRunID(),
		NodeImage:     file.Images.Node,
		BalancerImage: file.Images.Balancer,
		InitScript:    file.InitScript,
		Verbose:       opts.Verbose,
		Logger:        log,
	})

	observer := provisioning.NewConsoleObserver(log.WithName("pgbcluster"))
	orch := orchestration.New(cluster, rt, orchestration.Options{
		Observer:  observer,
		Settings:  settings,
		Metrics:   metrics,
		StopFirst: stopFirst,
	})

	return &session{
		cluster:  cluster,
		file:     file,
		orch:     orch,
		runtime:  rt,
		observer: observer,
		metrics:  metrics,
		settings: settings,
		opts:     opts,
	}, nil
}

// close writes the metrics textfile when one was requested.
func (s *session) close() {
	if err := s.metrics.WriteToTextfile(s.opts.MetricsFile); err != nil {
		s.observer.Warnf("failed to write metrics to %s: %v", s.opts.MetricsFile, err)
	}
}

// defaultLogger builds a zap console logger. Verbose lowers the level to
// debug, which enables V(1) output.
func defaultLogger(verbose bool) logr.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.NameKey = ""
	encCfg.LevelKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zapr.NewLogger(zap.New(core))
}

// checkContext returns a readable error when ctx was cancelled.
func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("operation cancelled: %w", err)
	}
	return nil
}
