package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvpack/instance"
)

func newGenCmd(_ *app) *cobra.Command {
	var (
		cfg         instance.GenConfig
		correlation string
		output      string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random instance",
		Long: `Gen writes a reproducible random instance. The output format follows
the --output extension (.yaml, .zst, .lz4); without --output the text format
goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := parseCorrelation(correlation)
			if err != nil {
				return err
			}
			cfg.Correlation = c

			inst, err := instance.Generate(cfg)
			if err != nil {
				return err
			}
			if output == "" {
				return instance.Write(cmd.OutOrStdout(), inst)
			}

			return instance.Create(output, inst)
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.Items, "items", 20, "number of items")
	f.IntVar(&cfg.MaxValue, "max-value", 100, "largest value (uncorrelated only)")
	f.IntVar(&cfg.MaxWeight, "max-weight", 100, "largest weight")
	f.IntVar(&cfg.Capacity, "capacity", 0, "capacity (0 = half the total weight)")
	f.Int64Var(&cfg.Seed, "seed", 1, "random seed")
	f.StringVar(&correlation, "correlation", "none", "none, weak or strong")
	f.StringVarP(&output, "output", "o", "", "output file")

	return cmd
}

func parseCorrelation(s string) (instance.Correlation, error) {
	switch strings.ToLower(s) {
	case "", "none", "uncorrelated":
		return instance.Uncorrelated, nil
	case "weak":
		return instance.WeaklyCorrelated, nil
	case "strong":
		return instance.StronglyCorrelated, nil
	}

	return 0, fmt.Errorf("unknown correlation %q (valid: none, weak, strong)", s)
}
