// Package knapsack provides exact and baseline solvers for the 0/1 knapsack
// problem: choose a subset of items maximizing total value without exceeding
// an integer capacity.
//
// Solvers:
//
//   - BranchAndBound — exact best-bound search over the include/exclude tree,
//     items ordered by value density, pluggable admissible estimators
//     (FractionalBound, SimpleBound, or any BoundFunc).
//   - Complexity: O(2ⁿ) worst case; practical speed comes from pruning.
//
//   - DynamicProgramming — exact table over item prefixes × capacities.
//   - Complexity: O(n·capacity) time and memory.
//
//   - Greedy — in-order fill; a lower bound for regression checks.
//   - Complexity: O(n).
//
// Solve routes to one of them on Options.Algo. All solvers are pure with
// respect to their inputs: every call owns its queue, incumbent and table,
// so independent instances may be solved from many goroutines at once.
//
// Result.Taken is always indexed by Item.Index (the caller's order), never
// by the solver's internal ordering.
//
// Use branch and bound for large capacities with few items; use the DP
// solver when n·capacity fits in memory (see Options.MaxTableCells).
package knapsack
