// Package knapsack - unified dispatcher for knapsack solvers.
//
// Solve is the single operation surface offered to callers that parse and
// render instances: validate, route on Options.Algo, return a Result whose
// Taken vector matches the input order.
package knapsack

import "fmt"

// Solve validates the instance and delegates to the solver named by opts.Algo.
//
// Contracts:
//   - capacity ≥ 0; items indexed 0..n-1 (see NewItems).
//   - Result.Optimal is true for the exact solvers on completion and false
//     for Greedy or when a search limit cut branch and bound short.
//
// Errors: sentinels from types.go. Result.Algo names the requested solver
// even on failure. A branch-and-bound search limit returns
// the incumbent Result together with an error wrapping ErrSearchLimit.
func Solve(items []Item, capacity int, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{Algo: opts.Algo}, err
	}
	if err := validateProblem(items, capacity); err != nil {
		return Result{Algo: opts.Algo}, err
	}

	switch opts.Algo {
	case BranchAndBoundAlgo:
		return BranchAndBound(items, capacity, opts)
	case DynamicProgrammingAlgo:
		return DynamicProgramming(items, capacity, opts)
	case GreedyAlgo:
		return Greedy(items, capacity, opts)
	default:
		return Result{Algo: opts.Algo}, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, opts.Algo)
	}
}

// Selected returns the indices i with Taken[i] == 1, in ascending order.
func (r Result) Selected() []int {
	out := make([]int, 0, len(r.Taken))
	var i int
	for i = range r.Taken {
		if r.Taken[i] == 1 {
			out = append(out, i)
		}
	}

	return out
}
