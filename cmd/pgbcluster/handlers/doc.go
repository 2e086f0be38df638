// Package handlers implements the business logic behind each CLI command.
//
// Handlers load the cluster configuration, wire the docker runtime, the
// observer and metrics into an orchestrator, and print results. External
// collaborators are created through package-level factory variables so
// tests can replace them.
package handlers
