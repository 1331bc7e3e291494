// Package lvpack is a toolkit for the 0/1 knapsack problem: exact and
// heuristic solvers plus the plumbing to run them over real instance files.
//
// What is inside
//
//	knapsack/    — item catalog, bound estimators, branch and bound,
//	               dynamic programming, greedy baseline, Solve dispatcher
//	instance/    — text and YAML instance codecs (.zst / .lz4 aware),
//	               solution formatting, reproducible generator
//	batch/       — concurrent batch runner with optional cross-check
//	store/       — SQLite history of solve runs
//	metrics/     — Prometheus collectors, textfile export
//	internal/    — logging (logr over zap) and configuration (viper)
//	cmd/lvpack/  — the command-line front end
//
// Quick start
//
//	items, _ := knapsack.NewItems([]float64{8, 10, 15, 4}, []int{4, 5, 8, 3})
//	res, err := knapsack.Solve(items, 11, knapsack.DefaultOptions())
//	// res.Value == 19, res.Taken == [0 0 1 1], res.Optimal == true
//
// The knapsack package is dependency-light and never logs; everything with
// side effects (files, databases, metrics) lives in the outer packages.
package lvpack
