// Package ptr provides helpers for taking the address of values.
package ptr

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}
