// Package knapsack_test provides lightweight helpers shared across *_test.go
// files in this package.
package knapsack_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpack/knapsack"
)

const (
	// seedDet is the base seed for randomized property tests.
	seedDet = int64(20240611)

	// propertyRounds is the number of random instances per property.
	propertyRounds = 200

	// maxRandomItems and maxRandomCapacity bound the random instances.
	maxRandomItems    = 20
	maxRandomCapacity = 100
)

// scenario4 is the 4-item instance with optimum 19 (weights 8+3=11).
func scenario4(t *testing.T) ([]knapsack.Item, int) {
	t.Helper()
	items, err := knapsack.NewItems([]float64{8, 10, 15, 4}, []int{4, 5, 8, 3})
	require.NoError(t, err)

	return items, 11
}

// mustItems builds items from parallel slices or fails the test.
func mustItems(t testing.TB, values []float64, weights []int) []knapsack.Item {
	t.Helper()
	items, err := knapsack.NewItems(values, weights)
	require.NoError(t, err)

	return items
}

// randomInstance draws up to maxItems items with integer values in [0,50]
// and weights in [0,30] (zero weights included), plus a capacity in [0,maxCap].
func randomInstance(rng *rand.Rand, maxItems, maxCap int) ([]knapsack.Item, int) {
	n := rng.Intn(maxItems + 1)
	values := make([]float64, n)
	weights := make([]int, n)
	var i int
	for i = 0; i < n; i++ {
		values[i] = float64(rng.Intn(51))
		weights[i] = rng.Intn(31)
	}
	items, _ := knapsack.NewItems(values, weights)

	return items, rng.Intn(maxCap + 1)
}

// requireFeasible asserts the Taken vector is 0/1, consistent with Value and
// Weight, and within capacity.
func requireFeasible(t *testing.T, items []knapsack.Item, capacity int, res knapsack.Result) {
	t.Helper()
	require.Len(t, res.Taken, len(items))
	var (
		value  float64
		weight int
		it     knapsack.Item
	)
	for _, it = range items {
		switch res.Taken[it.Index] {
		case 0:
		case 1:
			value += it.Value
			weight += it.Weight
		default:
			t.Fatalf("taken[%d]=%d, want 0 or 1", it.Index, res.Taken[it.Index])
		}
	}
	require.LessOrEqual(t, weight, capacity, "selection exceeds capacity")
	require.Equal(t, weight, res.Weight, "reported weight")
	require.InDelta(t, value, res.Value, 1e-9, "reported value")
}
