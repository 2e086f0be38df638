// Package compute provisions the database and balancer instances of every
// group.
//
// Groups are processed in configuration order. Within a group the primary
// is created and gated on health first, then the replicas (sequentially
// with a settle delay, or concurrently when parallel replicas are enabled),
// and finally, after a settle delay, the balancer. A health timeout or a
// missing balancer image is reported as a warning and never aborts the
// phase; any other runtime failure does.
package compute
