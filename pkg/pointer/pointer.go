// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer handles the optional fields of partial updates.

A nil pointer means "not sent", so services read patches with [Fallback]
and tests build them with [To].
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, or returns current when the field was not sent.
func Fallback[T any](p *T, current T) T {
	if p == nil {
		return current
	}
	return *p
}
