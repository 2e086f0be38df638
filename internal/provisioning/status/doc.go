// Package status collects the observed state of every instance in a cluster
// and renders it as a styled terminal view, a plain table, JSON or YAML.
//
// Collection is read-only: it only inspects the runtime and never changes the
// topology or any instance.
package status
