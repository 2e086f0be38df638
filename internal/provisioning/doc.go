// Package provisioning provides shared types, interfaces, and orchestration for cluster provisioning.
//
// # Subpackages
//
//   - infrastructure/ - the private cluster network
//   - health/ - the health gate that waits for instances to report healthy
//   - compute/ - primaries, replicas and balancers, in gate order
//   - scale/ - replica allocation and runtime scaling
//   - destroy/ - ordered teardown and label sweep
//   - status/ - status collection and rendering
//
// # Core Types
//
// Context carries the cluster topology, runtime driver, settings, metrics and observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// Observer emits structured events through a logr.Logger.
package provisioning
