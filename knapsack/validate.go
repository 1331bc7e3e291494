// Package knapsack - validation utilities shared by all solvers.
//
// Every public solver validates before allocating anything, so malformed
// input surfaces immediately and never reaches a search loop.
//
// Design principles:
//   - Side-effect free; no logging, no panics on user input.
//   - Sentinels from types.go, wrapped with %w to name the offending item.
//   - O(n) time, O(n) extra space for the index permutation check.
package knapsack

import (
	"fmt"
	"math"
)

// Validate reports the first problem with the instance using the same
// sentinels the solvers return. Loaders call it to reject bad input early.
func Validate(items []Item, capacity int) error {
	return validateProblem(items, capacity)
}

// validateOptions checks Options without looking at the instance.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.MaxNodes < 0 {
		return fmt.Errorf("%w: MaxNodes=%d", ErrBadOption, opts.MaxNodes)
	}
	if opts.MaxQueue < 0 {
		return fmt.Errorf("%w: MaxQueue=%d", ErrBadOption, opts.MaxQueue)
	}
	if opts.TimeLimit < 0 {
		return fmt.Errorf("%w: TimeLimit=%s", ErrBadOption, opts.TimeLimit)
	}
	if opts.MaxTableCells < 0 {
		return fmt.Errorf("%w: MaxTableCells=%d", ErrBadOption, opts.MaxTableCells)
	}
	switch opts.Traversal {
	case BreadthFirst, DepthFirst:
	default:
		return fmt.Errorf("%w: traversal %d", ErrBadOption, int(opts.Traversal))
	}
	if opts.Estimator == nil && opts.BoundAlgo.Func() == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, opts.BoundAlgo)
	}

	return nil
}

// validateProblem checks capacity and items.
func validateProblem(items []Item, capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w: capacity=%d", ErrNegativeCapacity, capacity)
	}

	return validateItems(items)
}

// validateItems enforces finite non-negative values, non-negative weights,
// and indices forming a permutation of 0..n-1.
//
// Complexity: O(n) time, O(n) space.
func validateItems(items []Item) error {
	var (
		n    = len(items)
		seen = make([]bool, n)
		it   Item
	)
	for _, it = range items {
		if math.IsNaN(it.Value) || math.IsInf(it.Value, 0) {
			return fmt.Errorf("%w: item %d value=%v", ErrInvalidValue, it.Index, it.Value)
		}
		if it.Value < 0 {
			return fmt.Errorf("%w: item %d value=%v", ErrNegativeValue, it.Index, it.Value)
		}
		if it.Weight < 0 {
			return fmt.Errorf("%w: item %d weight=%d", ErrNegativeWeight, it.Index, it.Weight)
		}
		if it.Index < 0 || it.Index >= n || seen[it.Index] {
			return fmt.Errorf("%w: index %d among %d items", ErrIndexMismatch, it.Index, n)
		}
		seen[it.Index] = true
	}

	return nil
}
