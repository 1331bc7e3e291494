// Package knapsack_test validates the branch-and-bound engine.
// Focus:
//  1. Concrete scenarios and numeric edge cases (zero capacity, zero weight,
//     oversized items).
//  2. Equivalence across estimators, traversals and exclusion-bound policy.
//  3. Search limits: node budget, cancellation, queue cap fallback.
//  4. Incumbent hook and determinism.
package knapsack_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpack/knapsack"
)

func TestBB_Scenario4(t *testing.T) {
	items, capacity := scenario4(t)

	res, err := knapsack.BranchAndBound(items, capacity, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 19.0, res.Value)
	assert.Equal(t, 11, res.Weight)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Taken)
	assert.True(t, res.Optimal)
	assert.Equal(t, knapsack.BranchAndBoundAlgo, res.Algo)
	assert.Positive(t, res.Stats.Expanded)
	assert.Positive(t, res.Stats.Improvements)
}

func TestBB_EmptyInstance(t *testing.T) {
	res, err := knapsack.BranchAndBound(nil, 0, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Value)
	assert.Empty(t, res.Taken)
	assert.True(t, res.Optimal)
}

func TestBB_ItemTooHeavy(t *testing.T) {
	items := mustItems(t, []float64{5}, []int{10})

	res, err := knapsack.BranchAndBound(items, 5, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Value)
	assert.Equal(t, []int{0}, res.Taken)
}

func TestBB_ZeroCapacity(t *testing.T) {
	items := mustItems(t, []float64{3, 4}, []int{1, 2})

	res, err := knapsack.BranchAndBound(items, 0, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Value)
	assert.Equal(t, []int{0, 0}, res.Taken)
}

func TestBB_ZeroWeightItemsFitAnyCapacity(t *testing.T) {
	items := mustItems(t, []float64{3, 5, 0}, []int{2, 0, 0})

	res, err := knapsack.BranchAndBound(items, 0, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Value)
	assert.Equal(t, []int{0, 1, 0}, res.Taken)

	res, err = knapsack.BranchAndBound(items, 2, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 8.0, res.Value)
	assert.Equal(t, 2, res.Weight)
}

func TestBB_ExactFitUsesWholeCapacity(t *testing.T) {
	// The only optimal selection leaves zero residual capacity.
	items := mustItems(t, []float64{10, 1}, []int{5, 1})

	res, err := knapsack.BranchAndBound(items, 5, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Value)
	assert.Equal(t, []int{1, 0}, res.Taken)
}

func TestBB_Errors_StrictSentinels(t *testing.T) {
	opts := knapsack.DefaultOptions()

	_, err := knapsack.BranchAndBound(nil, -1, opts)
	assert.ErrorIs(t, err, knapsack.ErrNegativeCapacity)

	_, err = knapsack.BranchAndBound(mustItems(t, []float64{1}, []int{-1}), 3, opts)
	assert.ErrorIs(t, err, knapsack.ErrNegativeWeight)

	_, err = knapsack.BranchAndBound(mustItems(t, []float64{-1}, []int{1}), 3, opts)
	assert.ErrorIs(t, err, knapsack.ErrNegativeValue)

	dup := []knapsack.Item{{Index: 0, Value: 1, Weight: 1}, {Index: 0, Value: 2, Weight: 1}}
	_, err = knapsack.BranchAndBound(dup, 3, opts)
	assert.ErrorIs(t, err, knapsack.ErrIndexMismatch)

	bad := opts
	bad.MaxNodes = -1
	_, err = knapsack.BranchAndBound(nil, 0, bad)
	assert.ErrorIs(t, err, knapsack.ErrBadOption)

	bad = opts
	bad.BoundAlgo = knapsack.BoundAlgo(9)
	res, err := knapsack.BranchAndBound(nil, 0, bad)
	assert.ErrorIs(t, err, knapsack.ErrUnsupportedAlgorithm)
	assert.Equal(t, knapsack.BranchAndBoundAlgo, res.Algo)
}

func TestBB_Policies_EquivalentResults(t *testing.T) {
	items := mustItems(t,
		[]float64{45, 48, 35, 20, 11, 33, 29, 12, 40, 7},
		[]int{5, 8, 3, 4, 2, 7, 6, 1, 9, 2},
	)
	const capacity = 24

	want, err := knapsack.DynamicProgramming(items, capacity, knapsack.DefaultOptions())
	require.NoError(t, err)

	variants := map[string]func(*knapsack.Options){
		"fractional-bfs": func(*knapsack.Options) {},
		"simple-bfs":     func(o *knapsack.Options) { o.BoundAlgo = knapsack.SimpleBoundAlgo },
		"fractional-dfs": func(o *knapsack.Options) { o.Traversal = knapsack.DepthFirst },
		"recompute":      func(o *knapsack.Options) { o.RecomputeExcludeBound = true },
		"custom":         func(o *knapsack.Options) { o.Estimator = knapsack.SimpleBound },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			opts := knapsack.DefaultOptions()
			mutate(&opts)
			res, err := knapsack.BranchAndBound(items, capacity, opts)
			require.NoError(t, err)
			assert.Equal(t, want.Value, res.Value)
			requireFeasible(t, items, capacity, res)
		})
	}
}

func TestBB_NodeLimit_ReturnsIncumbent(t *testing.T) {
	items, capacity := scenario4(t)
	opts := knapsack.DefaultOptions()
	opts.MaxNodes = 1

	res, err := knapsack.BranchAndBound(items, capacity, opts)
	require.ErrorIs(t, err, knapsack.ErrNodeLimit)
	assert.ErrorIs(t, err, knapsack.ErrSearchLimit)
	assert.False(t, res.Optimal)
	assert.Equal(t, 1, res.Stats.Expanded)
	// Root expansion already includes the densest item (value 8, weight 4).
	assert.Equal(t, 8.0, res.Value)
	requireFeasible(t, items, capacity, res)
}

func TestBB_NodeLimit_ExactBudgetCompletes(t *testing.T) {
	items, capacity := scenario4(t)

	full, err := knapsack.BranchAndBound(items, capacity, knapsack.DefaultOptions())
	require.NoError(t, err)
	require.Greater(t, full.Stats.Expanded, 1)

	// A budget equal to what the search needs must not cut it short, even
	// though pruned nodes are still queued when the last expansion happens.
	opts := knapsack.DefaultOptions()
	opts.MaxNodes = full.Stats.Expanded
	res, err := knapsack.BranchAndBound(items, capacity, opts)
	require.NoError(t, err)
	assert.True(t, res.Optimal)
	assert.Equal(t, full.Value, res.Value)
	assert.Equal(t, full.Stats.Expanded, res.Stats.Expanded)

	opts.MaxNodes = full.Stats.Expanded - 1
	res, err = knapsack.BranchAndBound(items, capacity, opts)
	require.ErrorIs(t, err, knapsack.ErrNodeLimit)
	assert.False(t, res.Optimal)
	requireFeasible(t, items, capacity, res)
}

func TestBB_TimeLimit_KeepsIncumbentFeasible(t *testing.T) {
	items, capacity := benchInstance(t, 40)
	opts := knapsack.DefaultOptions()
	opts.TimeLimit = time.Nanosecond

	res, err := knapsack.BranchAndBound(items, capacity, opts)
	if err != nil {
		require.ErrorIs(t, err, knapsack.ErrTimeLimit)
		assert.ErrorIs(t, err, knapsack.ErrSearchLimit)
		assert.False(t, res.Optimal)
	} else {
		assert.True(t, res.Optimal)
	}
	assert.Equal(t, knapsack.BranchAndBoundAlgo, res.Algo)
	requireFeasible(t, items, capacity, res)
}

func TestBB_CanceledContext(t *testing.T) {
	items, capacity := scenario4(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := knapsack.DefaultOptions()
	opts.Ctx = ctx

	res, err := knapsack.BranchAndBound(items, capacity, opts)
	require.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, knapsack.ErrSearchLimit)
	assert.False(t, res.Optimal)
	assert.Equal(t, 0.0, res.Value)
	assert.Equal(t, []int{0, 0, 0, 0}, res.Taken)
}

func TestBB_MaxQueue_FallsBackToDepthFirst(t *testing.T) {
	items, capacity := scenario4(t)
	opts := knapsack.DefaultOptions()
	opts.MaxQueue = 1

	res, err := knapsack.BranchAndBound(items, capacity, opts)
	require.NoError(t, err)
	assert.True(t, res.Stats.DepthFirstFallback)
	assert.True(t, res.Optimal)
	assert.Equal(t, 19.0, res.Value)
}

func TestBB_OnImprove_Monotone(t *testing.T) {
	items, capacity := scenario4(t)
	var seen []float64
	opts := knapsack.DefaultOptions()
	opts.OnImprove = func(value float64, weight int) {
		assert.LessOrEqual(t, weight, capacity)
		seen = append(seen, value)
	}

	res, err := knapsack.BranchAndBound(items, capacity, opts)
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	var i int
	for i = 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1])
	}
	assert.Equal(t, res.Value, seen[len(seen)-1])
	assert.Equal(t, len(seen), res.Stats.Improvements)
}

func TestBB_DoesNotMutateInput(t *testing.T) {
	items, capacity := scenario4(t)
	before := append([]knapsack.Item(nil), items...)

	_, err := knapsack.BranchAndBound(items, capacity, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, before, items)
}
