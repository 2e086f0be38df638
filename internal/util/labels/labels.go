package labels

import (
	"sort"
	"strconv"
)

// Standard label keys for runtime resources.
const (
	// KeyCluster identifies which cluster a resource belongs to
	KeyCluster = "pgbcluster.io/cluster"

	// KeyGroup identifies the balancer group of an instance
	KeyGroup = "pgbcluster.io/group"

	// KeyRole identifies the role of an instance (primary, replica, balancer)
	KeyRole = "pgbcluster.io/role"

	// KeyNodeID carries the node identifier within its group
	KeyNodeID = "pgbcluster.io/node-id"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "pgbcluster.io/managed-by"

	// KeyRunID identifies the invocation that created the resource
	KeyRunID = "pgbcluster.io/run-id"
)

// RoleBalancer is the role label value for balancer instances.
const RoleBalancer = "balancer"

// ManagedByPgbcluster is the value of KeyManagedBy on every created resource.
const ManagedByPgbcluster = "pgbcluster"

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the cluster name pre-set.
func NewLabelBuilder(clusterName string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyCluster:   clusterName,
			KeyManagedBy: ManagedByPgbcluster,
		},
	}
}

// WithGroup adds the balancer group name.
func (lb *LabelBuilder) WithGroup(group string) *LabelBuilder {
	lb.labels[KeyGroup] = group
	return lb
}

// WithRole adds a role label (primary, replica, balancer).
func (lb *LabelBuilder) WithRole(role string) *LabelBuilder {
	lb.labels[KeyRole] = role
	return lb
}

// WithNodeID adds the node identifier.
func (lb *LabelBuilder) WithNodeID(id int) *LabelBuilder {
	lb.labels[KeyNodeID] = strconv.Itoa(id)
	return lb
}

// WithRunIDIfSet adds a run-id label only if runID is non-empty.
func (lb *LabelBuilder) WithRunIDIfSet(runID string) *LabelBuilder {
	if runID != "" {
		lb.labels[KeyRunID] = runID
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// SelectorForCluster returns a label filter matching every resource of a cluster.
func SelectorForCluster(clusterName string) map[string]string {
	return map[string]string{KeyCluster: clusterName}
}

// Pairs renders labels as sorted key=value strings.
func Pairs(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+labels[k])
	}
	return pairs
}
