package knapsack

// Greedy takes items in the order given, keeping each one whose weight still
// fits. No sorting is done. The result is a fast lower bound for regression
// comparisons and is never marked optimal.
//
// Complexity: O(n).
func Greedy(items []Item, capacity int, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{Algo: GreedyAlgo}, err
	}
	if err := validateProblem(items, capacity); err != nil {
		return Result{Algo: GreedyAlgo}, err
	}
	res := Result{Taken: make([]int, len(items)), Algo: GreedyAlgo}
	var it Item
	for _, it = range items {
		if res.Weight+it.Weight > capacity {
			continue
		}
		res.Taken[it.Index] = 1
		res.Value += it.Value
		res.Weight += it.Weight
	}

	return res, nil
}
