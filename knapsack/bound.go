// Package knapsack — upper-bound estimators for branch and bound.
//
// An estimator receives the undecided suffix of items and the residual
// capacity and returns an upper bound on the value that suffix can still add.
// The engine adds the accumulated value of the node itself, so estimators
// never see partial-selection state and stay pure.
//
// Both built-in estimators are admissible and monotone: removing items from
// the suffix or shrinking the capacity never increases the estimate. The
// engine relies on the latter when an exclusion child inherits its parent's
// bound.
package knapsack

import (
	"fmt"
	"math"
	"strings"
)

var posInf = math.Inf(1)

// BoundFunc estimates the best value achievable from items within capacity.
// Implementations must be pure and must never underestimate.
type BoundFunc func(items []Item, capacity int) float64

// BoundAlgo selects a built-in BoundFunc.
type BoundAlgo int

const (
	// FractionalBoundAlgo is the LP-relaxation style bound (default).
	FractionalBoundAlgo BoundAlgo = iota

	// SimpleBoundAlgo sums all remaining values and ignores capacity.
	SimpleBoundAlgo
)

func (b BoundAlgo) String() string {
	switch b {
	case FractionalBoundAlgo:
		return "fractional"
	case SimpleBoundAlgo:
		return "simple"
	}

	return fmt.Sprintf("BoundAlgo(%d)", int(b))
}

// Func returns the estimator for b, or nil for an unknown value.
func (b BoundAlgo) Func() BoundFunc {
	switch b {
	case FractionalBoundAlgo:
		return FractionalBound
	case SimpleBoundAlgo:
		return SimpleBound
	}

	return nil
}

// ParseBoundAlgo maps "fractional"/"linear" and "simple" to a BoundAlgo.
func ParseBoundAlgo(s string) (BoundAlgo, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fractional", "linear":
		return FractionalBoundAlgo, nil
	case "simple":
		return SimpleBoundAlgo, nil
	}

	return 0, fmt.Errorf("%w: bound %q", ErrUnsupportedAlgorithm, s)
}

// SimpleBound returns the sum of all item values. Capacity is ignored.
//
// Complexity: O(len(items)).
func SimpleBound(items []Item, _ int) float64 {
	var (
		sum float64
		it  Item
	)
	for _, it = range items {
		sum += it.Value
	}

	return sum
}

// FractionalBound is the rounded-up linear relaxation, capped by SimpleBound:
//
//	min(SimpleBound(items), ceil(lp))
//
// where lp fills capacity greedily in the given order and lets the first
// item that does not fit contribute remaining · value / weight before
// stopping. Zero-weight items are counted up front at no capacity cost.
//
// Rounding is applied to the relaxation as a whole, not to the per-item
// ratio: remaining · ceil(value / weight) rises when a fitting head item is
// removed and a later item inherits its capacity at a rounded-up rate.
// Both terms of the min are admissible and monotone, so the result is too.
// The bound is tight only when items are sorted by descending value
// density, which is how the engine calls it.
//
// Complexity: O(len(items)).
func FractionalBound(items []Item, capacity int) float64 {
	if capacity < 0 {
		return 0
	}
	var (
		lp        float64
		remaining = capacity
		it        Item
	)
	for _, it = range items {
		if it.Weight == 0 {
			lp += it.Value
		}
	}
	for _, it = range items {
		if it.Weight == 0 {
			continue
		}
		if it.Weight <= remaining {
			lp += it.Value
			remaining -= it.Weight
			continue
		}
		lp += float64(remaining) * it.Value / float64(it.Weight)

		break
	}

	return math.Min(SimpleBound(items, capacity), math.Ceil(lp))
}
