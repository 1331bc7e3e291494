// Package config loads lvpack settings with viper.
//
// Precedence, highest first: command-line flags, LVPACK_* environment
// variables, the YAML config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvpack/internal/logging"
	"github.com/katalvlaran/lvpack/knapsack"
)

// EnvPrefix is prepended to every environment override, e.g.
// LVPACK_MAX_NODES or LVPACK_LOG_LEVEL.
const EnvPrefix = "LVPACK"

// Config keys.
const (
	KeyAlgorithm             = "algorithm"
	KeyBound                 = "bound"
	KeyTraversal             = "traversal"
	KeyRecomputeExcludeBound = "recompute_exclude_bound"
	KeyTimeLimit             = "time_limit"
	KeyMaxNodes              = "max_nodes"
	KeyMaxQueue              = "max_queue"
	KeyMaxTableCells         = "max_table_cells"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
	KeyStorePath             = "store.path"
	KeyMetricsTextfile       = "metrics.textfile"
	KeyBatchWorkers          = "batch.workers"
)

// flagNames maps config keys to the CLI flags that override them.
var flagNames = map[string]string{
	KeyAlgorithm:             "algorithm",
	KeyBound:                 "bound",
	KeyTraversal:             "traversal",
	KeyRecomputeExcludeBound: "recompute-exclude-bound",
	KeyTimeLimit:             "time-limit",
	KeyMaxNodes:              "max-nodes",
	KeyMaxQueue:              "max-queue",
	KeyMaxTableCells:         "max-table-cells",
	KeyLogLevel:              "log-level",
	KeyLogFormat:             "log-format",
	KeyStorePath:             "store",
	KeyMetricsTextfile:       "metrics-textfile",
	KeyBatchWorkers:          "workers",
}

// ErrInvalid is returned when a loaded value cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// Config is the resolved settings snapshot.
type Config struct {
	Algorithm             string
	Bound                 string
	Traversal             string
	RecomputeExcludeBound bool
	TimeLimit             time.Duration
	MaxNodes              int
	MaxQueue              int
	MaxTableCells         int

	Log     logging.Config
	Store   string // empty disables persistence
	Metrics string // textfile path; empty disables export
	Workers int
}

// setDefaults registers the built-in values.
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAlgorithm, knapsack.BranchAndBoundAlgo.String())
	v.SetDefault(KeyBound, knapsack.FractionalBoundAlgo.String())
	v.SetDefault(KeyTraversal, knapsack.BreadthFirst.String())
	v.SetDefault(KeyRecomputeExcludeBound, false)
	v.SetDefault(KeyTimeLimit, time.Duration(0))
	v.SetDefault(KeyMaxNodes, 0)
	v.SetDefault(KeyMaxQueue, 0)
	v.SetDefault(KeyMaxTableCells, knapsack.DefaultMaxTableCells)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatConsole)
	v.SetDefault(KeyStorePath, "")
	v.SetDefault(KeyMetricsTextfile, "")
	v.SetDefault(KeyBatchWorkers, 4)
}

// Load resolves the configuration. path may be empty (no file); flags may be
// nil. Only flags present in the set are bound, so a command can expose a
// subset.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		var key, name string
		for key, name = range flagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Algorithm:             v.GetString(KeyAlgorithm),
		Bound:                 v.GetString(KeyBound),
		Traversal:             v.GetString(KeyTraversal),
		RecomputeExcludeBound: v.GetBool(KeyRecomputeExcludeBound),
		TimeLimit:             v.GetDuration(KeyTimeLimit),
		MaxNodes:              v.GetInt(KeyMaxNodes),
		MaxQueue:              v.GetInt(KeyMaxQueue),
		MaxTableCells:         v.GetInt(KeyMaxTableCells),
		Log: logging.Config{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Store:   v.GetString(KeyStorePath),
		Metrics: v.GetString(KeyMetricsTextfile),
		Workers: v.GetInt(KeyBatchWorkers),
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: %s=%d", ErrInvalid, KeyBatchWorkers, cfg.Workers)
	}

	return cfg, nil
}

// SolverOptions converts the solver keys into knapsack.Options.
// Numeric limits are checked later by the solvers themselves.
func (c *Config) SolverOptions() (knapsack.Options, error) {
	opts := knapsack.DefaultOptions()

	algo, err := knapsack.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return opts, err
	}
	bound, err := knapsack.ParseBoundAlgo(c.Bound)
	if err != nil {
		return opts, err
	}
	traversal, err := knapsack.ParseTraversal(c.Traversal)
	if err != nil {
		return opts, err
	}

	opts.Algo = algo
	opts.BoundAlgo = bound
	opts.Traversal = traversal
	opts.RecomputeExcludeBound = c.RecomputeExcludeBound
	opts.TimeLimit = c.TimeLimit
	opts.MaxNodes = c.MaxNodes
	opts.MaxQueue = c.MaxQueue
	opts.MaxTableCells = c.MaxTableCells

	return opts, nil
}
