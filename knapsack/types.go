package knapsack

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors returned by the knapsack solvers.
var (
	// ErrNegativeCapacity is returned when the knapsack capacity is below zero.
	ErrNegativeCapacity = errors.New("knapsack: capacity must be non-negative")

	// ErrNegativeWeight is returned when an item carries a negative weight.
	ErrNegativeWeight = errors.New("knapsack: item weight must be non-negative")

	// ErrNegativeValue is returned when an item carries a negative value.
	ErrNegativeValue = errors.New("knapsack: item value must be non-negative")

	// ErrInvalidValue is returned for NaN or infinite item values.
	ErrInvalidValue = errors.New("knapsack: item value must be finite")

	// ErrIndexMismatch is returned when item indices are not a permutation of 0..n-1.
	ErrIndexMismatch = errors.New("knapsack: item indices must be unique and in [0,n)")

	// ErrDimensionMismatch is returned when parallel input slices differ in length.
	ErrDimensionMismatch = errors.New("knapsack: dimension mismatch")

	// ErrUnsupportedAlgorithm is returned for an unknown Algorithm or BoundAlgo.
	ErrUnsupportedAlgorithm = errors.New("knapsack: unsupported algorithm")

	// ErrBadOption is returned when Options carry a negative limit.
	ErrBadOption = errors.New("knapsack: invalid option")

	// ErrSearchLimit is the parent of every resource-limit condition. The
	// Result returned alongside it holds the best selection found so far.
	ErrSearchLimit = errors.New("knapsack: search limit reached")

	// ErrNodeLimit signals that Options.MaxNodes expansions were performed.
	ErrNodeLimit = fmt.Errorf("%w: node expansion budget exhausted", ErrSearchLimit)

	// ErrTimeLimit signals that Options.TimeLimit elapsed.
	ErrTimeLimit = fmt.Errorf("%w: time budget exhausted", ErrSearchLimit)

	// ErrTableTooLarge is returned by the DP solver when (n+1)·(capacity+1)
	// exceeds Options.MaxTableCells.
	ErrTableTooLarge = errors.New("knapsack: dynamic-programming table too large")
)

// Item is a single candidate for the knapsack. Index is the stable identity
// used in Result.Taken regardless of any internal reordering.
type Item struct {
	Index  int
	Value  float64
	Weight int
}

// density returns value per unit of weight. Zero-weight items rank first.
func (it Item) density() float64 {
	if it.Weight == 0 {
		if it.Value == 0 {
			return 0
		}

		return posInf
	}

	return it.Value / float64(it.Weight)
}

// NewItems zips values and weights into items indexed by position.
func NewItems(values []float64, weights []int) ([]Item, error) {
	if len(values) != len(weights) {
		return nil, fmt.Errorf("%w: %d values, %d weights", ErrDimensionMismatch, len(values), len(weights))
	}
	items := make([]Item, len(values))
	var i int
	for i = range values {
		items[i] = Item{Index: i, Value: values[i], Weight: weights[i]}
	}

	return items, nil
}

// Algorithm selects the solver used by Solve.
type Algorithm int

const (
	// BranchAndBoundAlgo is the exact best-bound search (default).
	BranchAndBoundAlgo Algorithm = iota

	// DynamicProgrammingAlgo is the exact O(n·capacity) table solver.
	DynamicProgrammingAlgo

	// GreedyAlgo is the in-order baseline; never optimal by contract.
	GreedyAlgo
)

var algorithmNames = map[Algorithm]string{
	BranchAndBoundAlgo:     "branch-and-bound",
	DynamicProgrammingAlgo: "dynamic-programming",
	GreedyAlgo:             "greedy",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}

	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps a name (or common short alias) to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bb", "bnb", "branch-and-bound":
		return BranchAndBoundAlgo, nil
	case "dp", "dynamic-programming":
		return DynamicProgrammingAlgo, nil
	case "greedy":
		return GreedyAlgo, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

// Traversal is the order in which the branch-and-bound work queue is drained.
type Traversal int

const (
	// BreadthFirst pops the oldest node (FIFO). This is the reproducible
	// default tie-break policy.
	BreadthFirst Traversal = iota

	// DepthFirst pops the newest node (LIFO); memory stays O(n·depth).
	DepthFirst
)

func (t Traversal) String() string {
	if t == DepthFirst {
		return "depth-first"
	}

	return "breadth-first"
}

// ParseTraversal maps "bfs"/"breadth-first" and "dfs"/"depth-first".
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bfs", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth-first":
		return DepthFirst, nil
	}

	return 0, fmt.Errorf("%w: traversal %q", ErrBadOption, s)
}

// Options configures Solve and the individual solvers.
// The zero value is usable; DefaultOptions documents the defaults.
type Options struct {
	// Algo selects the solver for Solve.
	Algo Algorithm

	// BoundAlgo selects the built-in estimator used by branch and bound.
	BoundAlgo BoundAlgo

	// Estimator, if non-nil, overrides BoundAlgo. It must be admissible.
	Estimator BoundFunc

	// Traversal is the queue discipline for branch and bound.
	Traversal Traversal

	// RecomputeExcludeBound recomputes the exclusion child's bound instead of
	// inheriting the parent's. Tighter, one estimator call more per node.
	RecomputeExcludeBound bool

	// MaxNodes caps node expansions (0 = unlimited).
	MaxNodes int

	// MaxQueue caps the pending-node count; once exceeded the search
	// continues depth-first (0 = unlimited).
	MaxQueue int

	// TimeLimit is a soft wall-clock budget (0 = unlimited).
	TimeLimit time.Duration

	// Ctx allows cancellation. Nil means context.Background().
	Ctx context.Context

	// MaxTableCells caps the DP table size (0 = DefaultMaxTableCells).
	MaxTableCells int

	// OnImprove is called whenever branch and bound finds a new incumbent.
	OnImprove func(value float64, weight int)
}

// DefaultMaxTableCells bounds DP memory to roughly 512 MiB of float64 cells.
const DefaultMaxTableCells = 1 << 26

// DefaultOptions returns Options with:
//   - Algo:      BranchAndBoundAlgo
//   - BoundAlgo: FractionalBoundAlgo
//   - Traversal: BreadthFirst
//   - no node, queue or time limits
//   - MaxTableCells: DefaultMaxTableCells
func DefaultOptions() Options {
	return Options{
		Algo:          BranchAndBoundAlgo,
		BoundAlgo:     FractionalBoundAlgo,
		Traversal:     BreadthFirst,
		Ctx:           context.Background(),
		MaxTableCells: DefaultMaxTableCells,
	}
}

// Stats describes the work done by one branch-and-bound run.
type Stats struct {
	Expanded           int  // nodes popped and branched on
	Enqueued           int  // children pushed onto the work queue
	Pruned             int  // nodes discarded by the bound test
	Improvements       int  // incumbent updates
	MaxQueue           int  // peak queue length
	DepthFirstFallback bool // MaxQueue forced a switch to LIFO
}

// Result is the outcome of a solve.
type Result struct {
	// Value is the total value of the selection.
	Value float64

	// Weight is the total weight of the selection.
	Weight int

	// Taken holds one 0/1 flag per input item, indexed by Item.Index.
	Taken []int

	// Optimal is true when the selection is proven optimal.
	Optimal bool

	// Algo is the solver that produced the result.
	Algo Algorithm

	// Stats is populated by branch and bound only.
	Stats Stats
}
