package provisioning

import (
	"context"
	"time"

	"github.com/imamik/pgbcluster/internal/config"
	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/topology"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Cluster  *topology.Cluster
	Runtime  docker.Runtime
	Observer Observer
	Settings *config.Settings
	Metrics  *Metrics

	// Sleep waits between steps. Tests replace it to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewContext creates a new provisioning context. A nil observer discards
// all output; nil settings are loaded from the environment.
func NewContext(
	ctx context.Context,
	cluster *topology.Cluster,
	runtime docker.Runtime,
	observer Observer,
	settings *config.Settings,
) *Context {
	if observer == nil {
		observer = NewDiscardObserver()
	}
	if settings == nil {
		settings = config.LoadSettings()
	}
	return &Context{
		Context:  ctx,
		Cluster:  cluster,
		Runtime:  runtime,
		Observer: observer,
		Settings: settings,
		Sleep:    Sleep,
	}
}

// Settle pauses for d unless the context is cancelled first.
func (c *Context) Settle(d time.Duration) error {
	if d <= 0 {
		return c.Err()
	}
	sleep := c.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	return sleep(c.Context, d)
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
