// Package orchestration provides high-level workflow coordination for a
// balancer cluster.
//
// This package orchestrates each command by delegating to the provisioners in
// the internal/provisioning subpackages. It defines the execution order and
// owns the provisioning context; the actual runtime work happens below it.
//
// # Workflow
//
// Init executes the following phases in order:
//  1. Validation - Topology checks (missing primaries, address problems)
//  2. Network - The private network shared by every instance
//  3. Compute - Primary, replicas and balancer of each group, health-gated
//  4. Settle - A fixed delay before the first status report
//  5. Status - One status line per instance
//
// Destroy removes balancers before their backends and the network last.
// Status, AddReplicas and RemoveReplica operate on an already running cluster.
//
// # Usage
//
//	orch := orchestration.New(cluster, runtime, orchestration.Options{Observer: obs})
//	report, err := orch.Init(ctx)
package orchestration
