// Package scale adds and removes replicas of a running group.
//
// Allocation is deterministic. New identifiers continue from the group's
// highest identifier, addresses continue from the last octet of the group's
// most recently added node, and ports are the group's port base plus the
// identifier. Allocation fails instead of handing out an address outside
// the cluster subnet or a port or address already in use.
//
// The group's balancer is not reconfigured; the caller is warned to
// restart it so that it picks up the new backends.
package scale
