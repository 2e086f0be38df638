// Package naming provides consistent naming functions for runtime instances.
//
// Replica instances are named {group}_replica{id} and use the hostname
// {group}-replica{id}, matching the names used in hand-written cluster
// configuration files.
package naming
