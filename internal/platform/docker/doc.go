// Package docker drives the container runtime through the docker CLI.
//
// # Architecture
//
//   - client.go: the [Runtime] interface consumed by the orchestrator, result variants and health values
//   - runner.go: command execution ([Runner], [ExecRunner]) and [CommandError]
//   - real_client.go: [Client] construction and options
//   - operations.go: generic ensure/remove operations shared by networks and instances
//   - network.go: network create/remove
//   - container.go: database and balancer instance lifecycle
//   - inspect.go: status, health, logs and image lookups
//   - errors.go: classification of runtime errors
//
// # Result Variants
//
// Create and remove operations never use errors for the benign cases.
// They return a [Result] whose Outcome tells the caller what happened:
//
//   - OutcomeCreated / OutcomeAlreadyExists for create calls
//   - OutcomeRemoved / OutcomeStopped / OutcomeAbsent for stop and remove calls
//   - OutcomeSkipped when a balancer could not be launched because its image is missing
//
// A non-nil error always means the runtime rejected the command for a reason
// other than existence, and carries the failing command line.
//
// # Inspection
//
// InstanceStatus and InstanceHealth never fail. A missing instance yields
// [StatusNotFound]; a runtime communication failure yields [HealthUnknown].
package docker
