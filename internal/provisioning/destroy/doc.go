// Package destroy handles cluster teardown.
//
// For each group in configuration order the balancer is removed first,
// then the primary, then every replica. Instances labeled with the cluster
// name that are not in the configuration (replicas added at runtime) are
// swept afterwards, and the network is removed last. Removal failures are
// reported as warnings and never abort the teardown.
package destroy
