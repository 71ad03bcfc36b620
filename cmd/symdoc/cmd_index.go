package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/symdoc/index"
)

func newIndexCmd() *cobra.Command {
	var (
		database   string
		sourceSets []string
	)

	cmd := &cobra.Command{
		Use:   "index [graph.yaml]",
		Short: "Store the DRI index of a symbol graph in SQLite",
		Long: `Store the DRI index of a symbol graph in SQLite.

Each translated source set replaces its previous entries in the database.
Inherited members are stored once per class they appear in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				cfg.Index.Database = database
			}

			modules, err := translateGraph(cmd.Context(), graphPath(args), sourceSets)
			if err != nil {
				return err
			}

			store, err := index.Open(cfg.Index.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, m := range modules {
				n, err := store.Put(cmd.Context(), m)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\t%d declarations\n", m.Name, m.SourceSets[0].ID, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "index database (defaults to the configured one)")
	cmd.Flags().StringSliceVarP(&sourceSets, "source-set", "s", nil, "source set to index (repeatable, defaults to all configured)")

	return cmd
}
