// Package ptr provides helper functions for creating and reading pointers to primitive types.
package ptr

// Int returns a pointer to the given int value.
func Int(i int) *int { return &i }

// Deref returns the pointed-to value, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
