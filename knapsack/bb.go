// Package knapsack — Branch-and-Bound (exact search with admissible upper bounds).
//
// BranchAndBound explores the binary include/exclude tree over items sorted
// by descending value density. Every node carries an upper bound
//
//	bound = accumulatedValue + estimate(undecided suffix, remaining capacity)
//
// and a node is expanded only while its bound strictly exceeds the incumbent.
//
// Rationale (succinct):
//  1. Density order makes the fractional estimate tight and finds good
//     incumbents early.
//  2. The work queue is drained FIFO by default. Breadth-first order is the
//     reproducible tie-break policy: equal inputs always yield equal outputs.
//  3. The incumbent is updated as soon as an inclusion child beats it, not
//     only at leaves, so later siblings are pruned against a tighter value.
//  4. Exclusion children inherit the parent bound. It stays admissible since
//     dropping an item from the suffix cannot raise the optimum.
//  5. Selections are immutable bitsets over sorted positions. Exclusion
//     children share the parent's set, inclusion children clone it.
//
// Resource limits:
//   - MaxNodes counts expansions; checked only when a node survives pruning,
//     so a budget the search never exceeds cannot cut it short.
//   - TimeLimit and Ctx are checked on the first pop and every 4096 pops after.
//   - MaxQueue switches the traversal to depth-first once exceeded.
//
// On a limit the incumbent is returned with Optimal=false together with an
// error wrapping ErrSearchLimit (or the context error).
//
// Complexity:
//   - Worst case O(2ⁿ) nodes; per node O(n) for the estimate plus O(n/64)
//     for the bitset clone.
//   - Memory: O(queue · n/64). Breadth-first queues can grow to the width
//     of the tree; depth-first keeps O(n) pending nodes per level.
package knapsack

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// searchNode is a partial decision path over the first pos sorted items.
// Invariants: remaining ≥ 0, value = Σ selected values, bound ≥ value.
type searchNode struct {
	value     float64
	remaining int
	bound     float64
	pos       int
	taken     *bitset.BitSet // sorted positions; never mutated after creation
}

// bbEngine holds the state of one branch-and-bound run. It is owned by a
// single BranchAndBound call and never shared.
type bbEngine struct {
	items     []Item // density-sorted copy
	n         int
	estimate  BoundFunc
	recompute bool
	traversal Traversal

	maxNodes int
	maxQueue int

	ctx         context.Context
	useDeadline bool
	deadline    time.Time
	steps       int

	onImprove func(value float64, weight int)

	queue *nodeQueue
	best  searchNode
	stats Stats
}

// sortByDensity returns a copy of items ordered by descending value density,
// ties broken by ascending original index.
func sortByDensity(items []Item) []Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		da, db := a.density(), b.density()
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}

		return cmp.Compare(a.Index, b.Index)
	})

	return sorted
}

// checkLimits reports an expired deadline or a canceled context. The node
// budget is checked in run, right before an expansion.
func (e *bbEngine) checkLimits() error {
	e.steps++
	if (e.steps & 4095) != 1 {
		return nil
	}
	if err := e.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchLimit, err)
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		return ErrTimeLimit
	}

	return nil
}

func (e *bbEngine) pop() (searchNode, bool) {
	if e.traversal == DepthFirst {
		return e.queue.PopBack()
	}

	return e.queue.PopFront()
}

// push enqueues n and applies the MaxQueue fallback policy.
func (e *bbEngine) push(n searchNode) {
	if e.maxQueue > 0 && e.traversal == BreadthFirst && e.queue.Len() >= e.maxQueue {
		e.traversal = DepthFirst
		e.stats.DepthFirstFallback = true
	}
	e.queue.PushBack(n)
	e.stats.Enqueued++
	if l := e.queue.Len(); l > e.stats.MaxQueue {
		e.stats.MaxQueue = l
	}
}

// offer enqueues n only if its bound can still beat the incumbent.
func (e *bbEngine) offer(n searchNode) {
	if n.bound > e.best.value {
		e.push(n)

		return
	}
	e.stats.Pruned++
}

// improve commits n as the new incumbent.
func (e *bbEngine) improve(n searchNode) {
	e.best = n
	e.stats.Improvements++
	if e.onImprove != nil {
		e.onImprove(n.value, e.weightOf(n.taken))
	}
}

func (e *bbEngine) weightOf(taken *bitset.BitSet) int {
	var (
		w  int
		i  uint
		ok bool
	)
	for i, ok = taken.NextSet(0); ok; i, ok = taken.NextSet(i + 1) {
		w += e.items[i].Weight
	}

	return w
}

// branch creates the inclusion and exclusion children of node.
func (e *bbEngine) branch(node searchNode) {
	item := e.items[node.pos]
	next := node.pos + 1

	if item.Weight <= node.remaining {
		inc := searchNode{
			value:     node.value + item.Value,
			remaining: node.remaining - item.Weight,
			pos:       next,
			taken:     node.taken.Clone().Set(uint(node.pos)),
		}
		inc.bound = inc.value + e.estimate(e.items[next:], inc.remaining)
		if inc.value > e.best.value {
			e.improve(inc)
		}
		e.offer(inc)
	}

	exc := searchNode{
		value:     node.value,
		remaining: node.remaining,
		bound:     node.bound,
		pos:       next,
		taken:     node.taken,
	}
	if e.recompute {
		if b := exc.value + e.estimate(e.items[next:], exc.remaining); b < exc.bound {
			exc.bound = b
		}
	}
	e.offer(exc)
}

// run drains the queue. It returns a non-nil error only on a search limit.
func (e *bbEngine) run() error {
	var (
		node searchNode
		err  error
	)
	for e.queue.Len() > 0 {
		if err = e.checkLimits(); err != nil {
			return err
		}
		node, _ = e.pop()
		if node.pos >= e.n {
			continue
		}
		// Ties are pruned: an equal bound cannot improve the incumbent.
		if node.bound <= e.best.value {
			e.stats.Pruned++
			continue
		}
		if e.maxNodes > 0 && e.stats.Expanded >= e.maxNodes {
			return ErrNodeLimit
		}
		e.stats.Expanded++
		e.branch(node)
	}

	return nil
}

// result maps the incumbent back to original item indices.
func (e *bbEngine) result(total int) Result {
	var (
		taken  = make([]int, total)
		weight int
		i      uint
		ok     bool
		it     Item
	)
	for i, ok = e.best.taken.NextSet(0); ok; i, ok = e.best.taken.NextSet(i + 1) {
		it = e.items[i]
		taken[it.Index] = 1
		weight += it.Weight
	}

	return Result{
		Value:  e.best.value,
		Weight: weight,
		Taken:  taken,
		Algo:   BranchAndBoundAlgo,
		Stats:  e.stats,
	}
}

// BranchAndBound solves the 0/1 knapsack exactly with best-bound pruning.
//
// Contracts:
//   - items must satisfy validateItems (indices a permutation of 0..n-1,
//     finite non-negative values, non-negative weights); capacity ≥ 0.
//   - The estimator (opts.Estimator or opts.BoundAlgo) must be admissible.
//
// Errors:
//   - validation sentinels (ErrNegativeCapacity, ErrNegativeWeight, ...).
//   - ErrNodeLimit / ErrTimeLimit / ctx error, returned together with the
//     best Result found so far (Optimal=false).
func BranchAndBound(items []Item, capacity int, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{Algo: BranchAndBoundAlgo}, err
	}
	if err := validateProblem(items, capacity); err != nil {
		return Result{Algo: BranchAndBoundAlgo}, err
	}
	estimate := opts.Estimator
	if estimate == nil {
		estimate = opts.BoundAlgo.Func()
	}

	var e bbEngine
	e.items = sortByDensity(items)
	e.n = len(items)
	e.estimate = estimate
	e.recompute = opts.RecomputeExcludeBound
	e.traversal = opts.Traversal
	e.maxNodes = opts.MaxNodes
	e.maxQueue = opts.MaxQueue
	e.onImprove = opts.OnImprove
	e.ctx = opts.Ctx
	if e.ctx == nil {
		e.ctx = context.Background()
	}
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}

	root := searchNode{
		remaining: capacity,
		bound:     estimate(e.items, capacity),
		taken:     bitset.New(uint(e.n)),
	}
	e.best = root
	e.queue = newNodeQueue(2 * (e.n + 1))
	e.queue.PushBack(root)
	e.stats.MaxQueue = 1

	if err := e.run(); err != nil {
		return e.result(e.n), err
	}
	res := e.result(e.n)
	res.Optimal = true

	return res, nil
}
