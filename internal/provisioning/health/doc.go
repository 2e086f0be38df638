// Package health implements the gate that blocks provisioning until an
// instance reports healthy.
//
// A wait never fails the caller: on timeout the gate logs a warning (and,
// in verbose mode, the instance's recent log lines) and returns false so
// provisioning can continue.
package health
