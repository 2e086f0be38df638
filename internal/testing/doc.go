// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ClusterBuilder: Fluent builder for creating test topologies
//   - RuntimeFixture: Pre-configured mock runtime for common scenarios
//   - RecordingObserver: Observer that records messages, warnings and events
//
// Usage:
//
//	cluster := testing.NewClusterBuilder().
//	    WithGroup("lb1", 2).
//	    Build()
//
//	rt := testing.NewRuntimeFixture().Healthy()
//	ctx, obs := testing.NewProvisioningContext(t, cluster, rt)
package testing
