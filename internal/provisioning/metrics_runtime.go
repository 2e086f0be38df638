package provisioning

import (
	"context"
	"time"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/topology"
)

// instrumentedRuntime records a metric for every runtime mutation.
type instrumentedRuntime struct {
	docker.Runtime
	metrics *Metrics
}

// InstrumentRuntime wraps rt so that every create, stop and remove call is
// counted in m. A nil m returns rt unchanged.
func InstrumentRuntime(rt docker.Runtime, m *Metrics) docker.Runtime {
	if m == nil {
		return rt
	}
	return &instrumentedRuntime{Runtime: rt, metrics: m}
}

func (r *instrumentedRuntime) observe(op string, start time.Time, res docker.Result, err error) {
	outcome := string(res.Outcome)
	if err != nil {
		outcome = "error"
	}
	r.metrics.RecordRuntimeOp(op, outcome, time.Since(start))
}

func (r *instrumentedRuntime) CreateNetwork(ctx context.Context, name, subnet string) (docker.Result, error) {
	start := time.Now()
	res, err := r.Runtime.CreateNetwork(ctx, name, subnet)
	r.observe("create_network", start, res, err)
	return res, err
}

func (r *instrumentedRuntime) RemoveNetwork(ctx context.Context, name string) (docker.Result, error) {
	start := time.Now()
	res, err := r.Runtime.RemoveNetwork(ctx, name)
	r.observe("remove_network", start, res, err)
	return res, err
}

func (r *instrumentedRuntime) CreateNodeInstance(ctx context.Context, node *topology.Node, network string) (docker.Result, error) {
	start := time.Now()
	res, err := r.Runtime.CreateNodeInstance(ctx, node, network)
	r.observe("create_node_instance", start, res, err)
	return res, err
}

func (r *instrumentedRuntime) CreateGroupInstance(ctx context.Context, group *topology.Group, network string) (docker.Result, error) {
	start := time.Now()
	res, err := r.Runtime.CreateGroupInstance(ctx, group, network)
	r.observe("create_group_instance", start, res, err)
	return res, err
}

func (r *instrumentedRuntime) StopInstance(ctx context.Context, name string) (docker.Result, error) {
	start := time.Now()
	res, err := r.Runtime.StopInstance(ctx, name)
	r.observe("stop_instance", start, res, err)
	return res, err
}

func (r *instrumentedRuntime) RemoveInstance(ctx context.Context, name string) (docker.Result, error) {
	start := time.Now()
	res, err := r.Runtime.RemoveInstance(ctx, name)
	r.observe("remove_instance", start, res, err)
	return res, err
}
