package knapsack

import "fmt"

// DynamicProgramming solves the 0/1 knapsack exactly with the classic
// prefix × capacity table.
//
// table[j][w] = best value using only the first j items (original order)
// within capacity w:
//
//	table[0][w] = 0
//	table[j][w] = table[j-1][w]                                   if weight(j-1) > w
//	table[j][w] = max(table[j-1][w], table[j-1][w-weight]+value)  otherwise
//
// Reconstruction walks j = n..1 starting from w = capacity: item j-1 is
// taken iff table[j][w] ≠ table[j-1][w], in which case w drops by its weight.
//
// Items are processed in slice order; Result.Taken is still indexed by
// Item.Index.
//
// Errors:
//   - validation sentinels, checked before the table is allocated.
//   - ErrTableTooLarge if (n+1)·(capacity+1) exceeds opts.MaxTableCells
//     (DefaultMaxTableCells when zero).
//
// Time complexity:   O(n · capacity)
// Memory complexity: O(n · capacity)
func DynamicProgramming(items []Item, capacity int, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{Algo: DynamicProgrammingAlgo}, err
	}
	if err := validateProblem(items, capacity); err != nil {
		return Result{Algo: DynamicProgrammingAlgo}, err
	}
	n := len(items)
	limit := opts.MaxTableCells
	if limit == 0 {
		limit = DefaultMaxTableCells
	}
	// Division avoids overflowing (n+1)*(capacity+1).
	if capacity+1 > limit/(n+1) {
		return Result{Algo: DynamicProgrammingAlgo}, fmt.Errorf("%w: %d×%d cells, limit %d", ErrTableTooLarge, n+1, capacity+1, limit)
	}

	// --- 1. Allocate one backing array and slice it into rows ---
	width := capacity + 1
	cells := make([]float64, (n+1)*width)
	table := make([][]float64, n+1)
	var j int
	for j = 0; j <= n; j++ {
		table[j] = cells[j*width : (j+1)*width]
	}

	// --- 2. Fill ---
	var (
		w    int
		it   Item
		with float64
	)
	for j = 1; j <= n; j++ {
		it = items[j-1]
		prev, curr := table[j-1], table[j]
		for w = 0; w <= capacity; w++ {
			curr[w] = prev[w]
			if it.Weight > w {
				continue
			}
			with = prev[w-it.Weight] + it.Value
			if with > curr[w] {
				curr[w] = with
			}
		}
	}

	// --- 3. Reconstruct ---
	res := Result{
		Taken:   make([]int, n),
		Optimal: true,
		Algo:    DynamicProgrammingAlgo,
	}
	w = capacity
	for j = n; j >= 1; j-- {
		if table[j][w] == table[j-1][w] {
			continue
		}
		it = items[j-1]
		res.Taken[it.Index] = 1
		res.Value += it.Value
		res.Weight += it.Weight
		w -= it.Weight
	}

	return res, nil
}
