// Package topology models a balancer-fronted database cluster.
//
// A [Cluster] owns an ordered list of [Group]s sharing one virtual network.
// Each Group owns exactly one primary [Node] and zero or more replica Nodes,
// kept in identifier order. The model is built once from the configuration
// file and held in memory for a single command invocation; the container
// runtime, not this model, is authoritative for instance state.
package topology
