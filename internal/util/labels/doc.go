// Package labels provides consistent labeling for runtime instances and networks.
//
// All labels use the pgbcluster.io domain prefix and follow a builder pattern
// for constructing label sets with cluster name, group, role, and run
// identification. Destroy relies on the cluster label to sweep instances
// that are not listed in the configuration file.
package labels
