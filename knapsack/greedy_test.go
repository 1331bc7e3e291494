package knapsack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpack/knapsack"
)

func TestGreedy_InOrderFill(t *testing.T) {
	items, capacity := scenario4(t)

	res, err := knapsack.Greedy(items, capacity, knapsack.DefaultOptions())
	require.NoError(t, err)
	// 4 + 5 = 9, the 8 does not fit, the 3 would bring it to 12.
	assert.Equal(t, 18.0, res.Value)
	assert.Equal(t, 9, res.Weight)
	assert.Equal(t, []int{1, 1, 0, 0}, res.Taken)
	assert.False(t, res.Optimal)
	assert.Equal(t, knapsack.GreedyAlgo, res.Algo)
}

func TestGreedy_SkipsAndContinues(t *testing.T) {
	// A heavy item in the middle is skipped; later light items still go in.
	items := mustItems(t, []float64{1, 50, 2}, []int{2, 10, 3})

	res, err := knapsack.Greedy(items, 5, knapsack.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, res.Taken)
	assert.Equal(t, 5, res.Weight)
}

func TestGreedy_Errors(t *testing.T) {
	res, err := knapsack.Greedy(nil, -1, knapsack.DefaultOptions())
	assert.ErrorIs(t, err, knapsack.ErrNegativeCapacity)
	assert.Equal(t, knapsack.GreedyAlgo, res.Algo)
}
