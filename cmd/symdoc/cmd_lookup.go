package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/symdoc/index"
)

func newLookupCmd() *cobra.Command {
	var (
		database string
		search   bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "lookup <dri|name>",
		Short: "Look up declarations in the index",
		Long: `Look up declarations in the index.

By default the argument is an exact DRI such as "geo/Circle/area/#/decl/".
With --search it is matched against declaration names instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				cfg.Index.Database = database
			}
			store, err := index.Open(cfg.Index.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []index.Entry
			if search {
				entries, err = store.Search(cmd.Context(), args[0], limit)
			} else {
				entries, err = store.Lookup(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no declarations match %q", args[0])
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Kind, e.Name, e.DRI, e.Parent, e.SourceSet)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "index database (defaults to the configured one)")
	cmd.Flags().BoolVar(&search, "search", false, "match names instead of an exact DRI")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of search results")

	return cmd
}
