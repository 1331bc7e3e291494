// Package batch solves many knapsack instances concurrently.
//
// Every solve owns its own options copy and engine state; only the optional
// Saver and Observer are shared, and both must be safe for concurrent use.
// Per-instance failures (bad files, search limits, cross-check mismatches)
// are reported in the matching Outcome and never abort the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvpack/instance"
	"github.com/katalvlaran/lvpack/internal/logging"
	"github.com/katalvlaran/lvpack/knapsack"
	"github.com/katalvlaran/lvpack/store"
)

// ErrCrossCheck marks a result that disagrees with the reference solver.
var ErrCrossCheck = errors.New("batch: cross-check mismatch")

// DefaultWorkers is used when Config.Workers is not positive.
const DefaultWorkers = 4

// crossCheckTolerance is the relative objective difference tolerated
// between two exact solvers.
const crossCheckTolerance = 1e-9

// Saver persists one run. *store.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, rec store.Record) (string, error)
}

// Observer records one run. *metrics.Recorder satisfies it.
type Observer interface {
	Observe(name string, res knapsack.Result, d time.Duration, err error)
}

// Config parameterizes a Runner.
type Config struct {
	// Options is copied per solve; its Ctx is replaced by the Run context.
	Options knapsack.Options

	// Workers caps concurrent solves.
	Workers int

	// CrossCheck re-solves with a second solver and flags disagreement.
	CrossCheck bool

	// Saver and Observer are optional.
	Saver    Saver
	Observer Observer
}

// Outcome is the result for one input, in input order.
type Outcome struct {
	Instance string // instance name, or the path when loading failed
	Result   knapsack.Result
	Err      error
	Duration time.Duration
	RecordID string // empty unless a Saver stored the run
}

// Runner executes batches. It holds no per-batch state and may be reused.
type Runner struct {
	cfg Config
}

// New returns a Runner for cfg.
func New(cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	return &Runner{cfg: cfg}
}

// Run solves insts. The returned error is non-nil only when ctx ends before
// every instance was attempted.
func (r *Runner) Run(ctx context.Context, insts []instance.Instance) ([]Outcome, error) {
	out := make([]Outcome, len(insts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i := range insts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out[i] = r.solve(gctx, insts[i])
			return nil
		})
	}
	_ = g.Wait()

	return out, ctx.Err()
}

// RunFiles loads each path with instance.Open inside the worker and solves it.
// Load errors land in the Outcome for that path.
func (r *Runner) RunFiles(ctx context.Context, paths []string) ([]Outcome, error) {
	out := make([]Outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			inst, err := instance.Open(paths[i])
			if err != nil {
				logging.FromContext(gctx).Error(err, "Load failed", "path", paths[i])
				out[i] = Outcome{Instance: paths[i], Err: err}
				return nil
			}
			out[i] = r.solve(gctx, inst)
			return nil
		})
	}
	_ = g.Wait()

	return out, ctx.Err()
}

// solve runs one instance end to end.
func (r *Runner) solve(ctx context.Context, inst instance.Instance) Outcome {
	log := logging.FromContext(ctx).WithValues("instance", inst.Name)

	opts := r.cfg.Options
	opts.Ctx = ctx
	userHook := opts.OnImprove
	opts.OnImprove = func(value float64, weight int) {
		log.V(logging.TRACE).Info("Incumbent improved", "value", value, "weight", weight)
		if userHook != nil {
			userHook(value, weight)
		}
	}

	log.V(logging.DEBUG).Info("Solving", "items", len(inst.Items), "capacity", inst.Capacity,
		"algorithm", opts.Algo.String())
	start := time.Now()
	res, err := knapsack.Solve(inst.Items, inst.Capacity, opts)
	o := Outcome{Instance: inst.Name, Result: res, Err: err, Duration: time.Since(start)}

	switch {
	case err == nil:
		log.V(logging.DEBUG).Info("Solved", "value", res.Value, "optimal", res.Optimal,
			"expanded", res.Stats.Expanded, "duration", o.Duration)
	case errors.Is(err, knapsack.ErrSearchLimit):
		log.Info("Search limit reached, keeping incumbent", "value", res.Value, "reason", err.Error())
	default:
		log.Error(err, "Solve failed")
	}

	if r.cfg.CrossCheck && (err == nil || errors.Is(err, knapsack.ErrSearchLimit)) {
		if cerr := crossCheck(ctx, log, inst, opts, res); cerr != nil {
			o.Err = errors.Join(o.Err, cerr)
		}
	}

	if r.cfg.Observer != nil {
		r.cfg.Observer.Observe(inst.Name, res, o.Duration, o.Err)
	}
	if r.cfg.Saver != nil && (err == nil || errors.Is(err, knapsack.ErrSearchLimit)) {
		id, serr := r.cfg.Saver.Save(ctx, store.NewRecord(inst.Name, inst.Capacity, res, o.Duration, o.Err))
		if serr != nil {
			log.Error(serr, "Saving run failed")
			o.Err = errors.Join(o.Err, serr)
		} else {
			o.RecordID = id
		}
	}

	return o
}

// crossCheck compares res against a reference exact solver: dynamic
// programming, or branch and bound when res came from dynamic programming.
// An optimal res must match the reference; any other res must not beat it.
// A reference that cannot run (table too large, limit) skips the check.
func crossCheck(ctx context.Context, log logr.Logger, inst instance.Instance, opts knapsack.Options, res knapsack.Result) error {
	ref := opts
	ref.OnImprove = nil
	ref.Ctx = ctx
	if res.Algo == knapsack.DynamicProgrammingAlgo {
		ref.Algo = knapsack.BranchAndBoundAlgo
	} else {
		ref.Algo = knapsack.DynamicProgrammingAlgo
	}

	want, err := knapsack.Solve(inst.Items, inst.Capacity, ref)
	if err != nil || !want.Optimal {
		log.V(logging.DEBUG).Info("Cross-check skipped", "reference", ref.Algo.String(), "reason", fmt.Sprint(err))
		return nil
	}

	tol := crossCheckTolerance * math.Max(1, math.Abs(want.Value))
	switch {
	case res.Optimal && math.Abs(res.Value-want.Value) > tol:
		return fmt.Errorf("%w: %s=%v %s=%v", ErrCrossCheck, res.Algo, res.Value, ref.Algo, want.Value)
	case !res.Optimal && res.Value > want.Value+tol:
		return fmt.Errorf("%w: %s=%v exceeds optimum %v", ErrCrossCheck, res.Algo, res.Value, want.Value)
	}
	log.V(logging.DEBUG).Info("Cross-check passed", "reference", ref.Algo.String())

	return nil
}
