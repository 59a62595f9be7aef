// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic helpers [slices] does not provide.
package slice

// Map projects every element of input. A nil input stays nil.
func Map[T, U any](input []T, project func(T) U) []U {
	if input == nil {
		return nil
	}

	out := make([]U, len(input))
	for i, v := range input {
		out[i] = project(v)
	}
	return out
}

// Filter keeps the elements for which keep is true, preserving order.
// The result is never nil, so it encodes as [] in JSON.
func Filter[T any](input []T, keep func(T) bool) []T {
	out := make([]T, 0, len(input))
	for _, v := range input {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
