package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history [INSTANCE]",
		Short: "List stored runs",
		Long: `History lists runs recorded in the --store database, oldest first.
With INSTANCE only that instance's runs are shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.store == nil {
				return errors.New("history needs --store (or store.path in the config)")
			}
			var name string
			if len(args) == 1 {
				name = args[0]
			}

			recs, err := a.store.List(cmd.Context(), name)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(recs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tINSTANCE\tALGORITHM\tVALUE\tOPTIMAL\tEXPANDED\tDURATION\tERROR")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%t\t%d\t%s\t%s\n",
					r.ID, r.Instance, r.Algorithm, r.Value, r.Optimal, r.Stats.Expanded, r.Duration, r.Err)
			}

			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
