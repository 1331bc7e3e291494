// Root command for the lvpack CLI.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvpack/internal/config"
	"github.com/katalvlaran/lvpack/internal/logging"
	"github.com/katalvlaran/lvpack/metrics"
	"github.com/katalvlaran/lvpack/store"
)

// app carries the state shared by all subcommands for one invocation.
type app struct {
	configFile string

	cfg      *config.Config
	log      logr.Logger
	store    *store.Store // nil unless --store / store.path is set
	recorder *metrics.Recorder
}

// newRootCmd builds the full command tree. A fresh tree per call keeps
// tests independent of each other.
func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "lvpack",
		Short: "lvpack solves 0/1 knapsack instances",
		Long: `lvpack solves 0/1 knapsack instances with branch and bound,
dynamic programming or a greedy baseline.

Settings come from flags, LVPACK_* environment variables and an optional
YAML config file, in that order of precedence.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.String("algorithm", "", "solver: bb, dp or greedy")
	pf.String("bound", "", "branch-and-bound estimator: fractional or simple")
	pf.String("traversal", "", "branch-and-bound queue order: bfs or dfs")
	pf.Bool("recompute-exclude-bound", false, "recompute the bound of exclusion children")
	pf.Duration("time-limit", 0, "branch-and-bound time budget (0 = none)")
	pf.Int("max-nodes", 0, "branch-and-bound node budget (0 = none)")
	pf.Int("max-queue", 0, "queue length that forces depth-first order (0 = none)")
	pf.Int("max-table-cells", 0, "dynamic-programming table cap")
	pf.String("log-level", "", "error, info, debug or trace")
	pf.String("log-format", "", "console or json")
	pf.String("store", "", "SQLite file recording every run")
	pf.String("metrics-textfile", "", "write Prometheus samples to this file on exit")
	pf.Int("workers", 0, "concurrent solves for batch")

	root.AddCommand(
		newSolveCmd(a),
		newBatchCmd(a),
		newGenCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup loads config and builds the logger, store and recorder.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if a.log, err = logging.New(cfg.Log); err != nil {
		return err
	}
	cmd.SetContext(logging.IntoContext(contextOf(cmd), a.log))

	if cfg.Store != "" {
		if a.store, err = store.Open(cfg.Store); err != nil {
			return err
		}
		a.log.V(logging.DEBUG).Info("Store opened", "path", cfg.Store)
	}
	a.recorder = metrics.NewRecorder()

	return nil
}

// teardown flushes metrics and closes the store.
func (a *app) teardown(_ *cobra.Command, _ []string) error {
	var err error
	if a.cfg != nil && a.cfg.Metrics != "" && a.recorder != nil {
		if err = a.recorder.WriteTextfile(a.cfg.Metrics); err != nil {
			err = fmt.Errorf("write metrics: %w", err)
		}
	}
	if a.store != nil {
		if cerr := a.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
		a.store = nil
	}

	return err
}

// elapsed returns the wall time since start at microsecond resolution.
func elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Microsecond)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
