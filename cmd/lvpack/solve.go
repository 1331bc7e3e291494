package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvpack/instance"
	"github.com/katalvlaran/lvpack/internal/logging"
	"github.com/katalvlaran/lvpack/knapsack"
	"github.com/katalvlaran/lvpack/store"
)

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve one instance and print the solution",
		Long: `Solve reads an instance (text or YAML, optionally .zst or .lz4
compressed) and prints

  objective optimal_flag
  taken_0 taken_1 ... taken_{n-1}

When a search limit stops branch and bound, the best selection found so far
is printed with optimal_flag 0.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runSolve,
	}
}

func (a *app) runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	inst, err := instance.Open(args[0])
	if err != nil {
		return err
	}
	opts, err := a.cfg.SolverOptions()
	if err != nil {
		return err
	}
	opts.Ctx = ctx

	log.V(logging.DEBUG).Info("Solving", "instance", inst.Name, "items", len(inst.Items),
		"capacity", inst.Capacity, "algorithm", opts.Algo.String())
	start := time.Now()
	res, err := knapsack.Solve(inst.Items, inst.Capacity, opts)
	d := elapsed(start)
	a.recorder.Observe(inst.Name, res, d, err)
	if err != nil && !errors.Is(err, knapsack.ErrSearchLimit) {
		return err
	}
	if err != nil {
		log.Info("Search limit reached, printing incumbent", "reason", err.Error())
	}

	if a.store != nil {
		id, serr := a.store.Save(ctx, store.NewRecord(inst.Name, inst.Capacity, res, d, err))
		if serr != nil {
			return serr
		}
		log.V(logging.DEBUG).Info("Run saved", "id", id)
	}
	log.V(logging.DEBUG).Info("Solved", "value", res.Value, "optimal", res.Optimal,
		"expanded", res.Stats.Expanded, "pruned", res.Stats.Pruned, "duration", d)

	return instance.Format(cmd.OutOrStdout(), res)
}
