// Package async provides utilities for parallel task execution with
// error collection.
//
// [RunParallel] executes named operations concurrently, bounded by an
// optional limit, and returns all of their errors joined. [Map] fans a
// function out over a slice and returns the results in input order. Both
// are built on golang.org/x/sync/errgroup.
package async
