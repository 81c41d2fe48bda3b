// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package slice complements the standard [slices] package with generic
Map, Filter and Reduce helpers.

A non-nil input always yields a non-nil result, so values built with these
helpers encode as [] rather than null.
*/
package slice

// Map applies transform to every element.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter keeps the elements for which keep returns true, in order.
func Filter[T any](input []T, keep func(T) bool) []T {
	if input == nil {
		return nil
	}

	result := make([]T, 0, len(input))
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}

	return result
}

// Reduce folds the slice into a single value, left to right.
func Reduce[T any, U any](input []T, initial U, reducer func(accumulator U, current T) U) U {
	result := initial
	for _, v := range input {
		result = reducer(result, v)
	}
	return result
}
