// Package config loads the cluster configuration file and the runtime settings.
//
// The configuration file is JSON (YAML is accepted as well) and is decoded
// with sigs.k8s.io/yaml into [File], validated for required keys, and then
// converted into a [topology.Cluster]. A load either yields a complete
// cluster or an error; a partially built cluster is never returned.
//
// Timing settings such as health timeouts and settle delays come from
// environment variables; see [LoadSettings].
package config
