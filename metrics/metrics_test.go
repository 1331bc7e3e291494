package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpack/knapsack"
	"github.com/katalvlaran/lvpack/metrics"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, metrics.StatusOptimal, metrics.Status(knapsack.Result{Optimal: true}, nil))
	assert.Equal(t, metrics.StatusFeasible, metrics.Status(knapsack.Result{}, nil))
	assert.Equal(t, metrics.StatusLimited, metrics.Status(knapsack.Result{}, knapsack.ErrTimeLimit))
	assert.Equal(t, metrics.StatusError, metrics.Status(knapsack.Result{}, errors.New("boom")))
}

func TestRecorder_Observe(t *testing.T) {
	r := metrics.NewRecorder()

	bb := knapsack.Result{
		Value: 19, Optimal: true, Algo: knapsack.BranchAndBoundAlgo,
		Stats: knapsack.Stats{Expanded: 5, Pruned: 2, MaxQueue: 3},
	}
	r.Observe("ks_4_0", bb, 2*time.Millisecond, nil)
	bb.Stats.MaxQueue = 1
	bb.Value = 8
	r.Observe("ks_4_0", bb, time.Millisecond, knapsack.ErrNodeLimit)
	dpOpts := knapsack.DefaultOptions()
	dpOpts.Algo = knapsack.DynamicProgrammingAlgo
	failed, solveErr := knapsack.Solve(nil, -1, dpOpts)
	require.ErrorIs(t, solveErr, knapsack.ErrNegativeCapacity)
	r.Observe("broken", failed, 0, solveErr)

	expected := `
# HELP lvpack_nodes_expanded_total Branch-and-bound nodes expanded.
# TYPE lvpack_nodes_expanded_total counter
lvpack_nodes_expanded_total 10
# HELP lvpack_queue_peak Largest branch-and-bound work queue seen.
# TYPE lvpack_queue_peak gauge
lvpack_queue_peak 3
# HELP lvpack_objective_value Objective of the latest solve per instance.
# TYPE lvpack_objective_value gauge
lvpack_objective_value{instance="ks_4_0"} 8
# HELP lvpack_solves_total Solves by algorithm and outcome status.
# TYPE lvpack_solves_total counter
lvpack_solves_total{algorithm="branch-and-bound",status="limited"} 1
lvpack_solves_total{algorithm="branch-and-bound",status="optimal"} 1
lvpack_solves_total{algorithm="dynamic-programming",status="error"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"lvpack_nodes_expanded_total", "lvpack_queue_peak", "lvpack_objective_value", "lvpack_solves_total"))
	n, err := testutil.GatherAndCount(r.Registry(), "lvpack_solve_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe("x", knapsack.Result{Value: 1, Optimal: true}, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "lvpack.prom")
	require.NoError(t, r.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `lvpack_objective_value{instance="x"} 1`)
}
