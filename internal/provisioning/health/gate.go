package health

import (
	"context"
	"time"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/provisioning"
)

// Gate polls the runtime until an instance is healthy or a timeout elapses.
type Gate struct {
	Runtime  docker.Inspector
	Observer provisioning.Observer
	Metrics  *provisioning.Metrics

	// Interval is the delay between polls.
	Interval time.Duration

	// Verbose prints the last LogTail log lines on timeout.
	Verbose bool
	LogTail int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGate builds a gate from a provisioning context.
func NewGate(ctx *provisioning.Context) *Gate {
	g := &Gate{
		Runtime:  ctx.Runtime,
		Observer: ctx.Observer,
		Metrics:  ctx.Metrics,
		Interval: 2 * time.Second,
		LogTail:  20,
		now:      time.Now,
		sleep:    ctx.Sleep,
	}
	if s := ctx.Settings; s != nil {
		if s.HealthPollInterval > 0 {
			g.Interval = s.HealthPollInterval
		}
		if s.LogTailLines > 0 {
			g.LogTail = s.LogTailLines
		}
		g.Verbose = s.Verbose
	}
	if g.sleep == nil {
		g.sleep = provisioning.Sleep
	}
	return g
}

// WaitUntilHealthy polls the instance's health every Interval. It returns
// true as soon as the instance reports healthy and false once timeout has
// elapsed or ctx is cancelled. It returns within timeout plus one Interval.
func (g *Gate) WaitUntilHealthy(ctx context.Context, name string, timeout time.Duration) bool {
	start := g.now()
	g.Observer.Event(provisioning.Event{
		Type:     provisioning.EventHealthWaiting,
		Phase:    "health",
		Resource: name,
		Message:  "waiting for " + name + " to become healthy",
		Fields:   map[string]string{"timeout": timeout.String()},
	})

	last := docker.HealthUnknown
	for g.now().Sub(start) < timeout {
		last = g.Runtime.InstanceHealth(ctx, name)
		if last == docker.HealthHealthy {
			elapsed := g.now().Sub(start)
			g.Metrics.RecordHealthWait(true, elapsed)
			g.Observer.Event(provisioning.Event{
				Type:     provisioning.EventHealthHealthy,
				Phase:    "health",
				Resource: name,
				Message:  name + " is healthy",
				Fields:   map[string]string{"elapsed": elapsed.Round(time.Millisecond).String()},
			})
			return true
		}
		g.Observer.Debugf("%s health: %s", name, last)

		if err := g.sleep(ctx, g.Interval); err != nil {
			g.Metrics.RecordHealthWait(false, g.now().Sub(start))
			g.Observer.Warnf("stopped waiting for %s: %v", name, err)
			return false
		}
	}

	g.Metrics.RecordHealthWait(false, g.now().Sub(start))
	g.Observer.Warnf("%s did not become healthy within %s (last health: %s)", name, timeout, last)
	g.Observer.Event(provisioning.Event{
		Type:     provisioning.EventHealthTimeout,
		Phase:    "health",
		Resource: name,
		Message:  name + " health wait timed out",
		Fields:   map[string]string{"health": string(last)},
	})

	if g.Verbose {
		g.printLogs(ctx, name)
	}
	return false
}

func (g *Gate) printLogs(ctx context.Context, name string) {
	lines, err := g.Runtime.InstanceLogs(ctx, name, g.LogTail)
	if err != nil {
		g.Observer.Debugf("could not read logs of %s: %v", name, err)
		return
	}
	g.Observer.Printf("last %d log lines of %s:", len(lines), name)
	for _, line := range lines {
		g.Observer.Printf("  %s", line)
	}
}
