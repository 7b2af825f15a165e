// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package pointer provides utilities for working with pointers in Go.

The catalog schema is full of nullable columns (sort title, series, year),
so the codebase handles many *T values. These generic helpers keep that
boilerplate out of the application logic.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
