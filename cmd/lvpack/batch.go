package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvpack/batch"
	"github.com/katalvlaran/lvpack/knapsack"
	"github.com/katalvlaran/lvpack/metrics"
)

func newBatchCmd(a *app) *cobra.Command {
	var crossCheck bool
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Solve many instances concurrently",
		Long: `Batch solves every FILE with --workers concurrent solvers and prints
one summary line per file in argument order. A failed file does not stop the
others; the command exits non-zero if any file failed outright.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args, crossCheck)
		},
	}
	cmd.Flags().BoolVar(&crossCheck, "cross-check", false, "re-solve with a second exact solver and compare")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, paths []string, crossCheck bool) error {
	opts, err := a.cfg.SolverOptions()
	if err != nil {
		return err
	}
	cfg := batch.Config{
		Options:    opts,
		Workers:    a.cfg.Workers,
		CrossCheck: crossCheck,
		Observer:   a.recorder,
	}
	if a.store != nil {
		cfg.Saver = a.store
	}

	out, err := batch.New(cfg).RunFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTANCE\tVALUE\tOPTIMAL\tSTATUS\tDURATION")
	var failed int
	for _, o := range out {
		status := metrics.Status(o.Result, o.Err)
		if errors.Is(o.Err, batch.ErrCrossCheck) {
			status = "mismatch"
		}
		if o.Err != nil && !errors.Is(o.Err, knapsack.ErrSearchLimit) {
			failed++
		}
		fmt.Fprintf(tw, "%s\t%v\t%t\t%s\t%s\n", o.Instance, o.Result.Value, o.Result.Optimal, status, o.Duration)
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d instances failed", failed, len(out))
	}

	return nil
}
