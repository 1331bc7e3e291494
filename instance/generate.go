package instance

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvpack/knapsack"
)

// ErrBadGenConfig is returned by Generate for unusable parameters.
var ErrBadGenConfig = errors.New("instance: bad generator config")

// defaultSeed replaces a zero seed so the zero GenConfig is reproducible.
const defaultSeed int64 = 1

// Correlation controls how values relate to weights in generated instances.
type Correlation int

const (
	// Uncorrelated draws values and weights independently.
	Uncorrelated Correlation = iota

	// WeaklyCorrelated draws value = weight ± MaxWeight/10.
	WeaklyCorrelated

	// StronglyCorrelated sets value = weight + MaxWeight/10, the hard case
	// for bound-based pruning.
	StronglyCorrelated
)

// GenConfig parameterizes Generate.
type GenConfig struct {
	Name        string
	Items       int
	MaxValue    int // inclusive; used by Uncorrelated
	MaxWeight   int // inclusive; weights are drawn from [1, MaxWeight]
	Capacity    int // 0 means half the total weight
	Correlation Correlation
	Seed        int64 // 0 means defaultSeed
}

// Generate builds a random instance. Equal configs yield equal instances.
//
// Complexity: O(Items).
func Generate(cfg GenConfig) (Instance, error) {
	if cfg.Items < 0 || cfg.MaxWeight < 1 || cfg.Capacity < 0 {
		return Instance{}, fmt.Errorf("%w: items=%d max_weight=%d capacity=%d",
			ErrBadGenConfig, cfg.Items, cfg.MaxWeight, cfg.Capacity)
	}
	if cfg.Correlation == Uncorrelated && cfg.MaxValue < 0 {
		return Instance{}, fmt.Errorf("%w: max_value=%d", ErrBadGenConfig, cfg.MaxValue)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	var (
		values  = make([]float64, cfg.Items)
		weights = make([]int, cfg.Items)
		spread  = cfg.MaxWeight / 10
		total   int
		i, v    int
	)
	for i = 0; i < cfg.Items; i++ {
		weights[i] = 1 + rng.Intn(cfg.MaxWeight)
		switch cfg.Correlation {
		case WeaklyCorrelated:
			v = weights[i] - spread + rng.Intn(2*spread+1)
			if v < 0 {
				v = 0
			}
		case StronglyCorrelated:
			v = weights[i] + spread
		default:
			v = rng.Intn(cfg.MaxValue + 1)
		}
		values[i] = float64(v)
		total += weights[i]
	}

	items, err := knapsack.NewItems(values, weights)
	if err != nil {
		return Instance{}, err
	}
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = total / 2
	}

	return Instance{Name: cfg.Name, Capacity: capacity, Items: items}, nil
}
