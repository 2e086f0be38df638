// Package infrastructure provisions the private bridge network every
// cluster instance attaches to.
//
// The network is created idempotently and labeled for cluster association.
// Failure to create it aborts initialization; nothing else is attempted.
package infrastructure
