package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/symdoc/index"
	"github.com/dhamidi/symdoc/server"
)

func newLSPCmd() *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "lsp [graph.yaml]",
		Short: "Serve workspace/symbol over stdio",
		Long: `Serve workspace/symbol over stdio.

The graph is translated once at startup and again whenever the file changes.
With --db the server answers from an existing index instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if database != "" {
				store, err := index.Open(database)
				if err != nil {
					return err
				}
				defer store.Close()
				return server.NewLSPServer(version, store).RunStdio()
			}

			path := graphPath(args)
			ls := server.NewLSPServer(version, nil)
			reload := func() error {
				modules, err := translateGraph(cmd.Context(), path, nil)
				if err != nil {
					return err
				}
				var entries index.Memory
				for _, m := range modules {
					entries = append(entries, index.Flatten(m)...)
				}
				ls.SetSearcher(entries)
				return nil
			}
			if err := reload(); err != nil {
				return err
			}

			watcher, err := server.NewGraphWatcher(path, reload)
			if err != nil {
				return err
			}
			watcher.Start()
			defer watcher.Stop()

			return ls.RunStdio()
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "answer from this index database")

	return cmd
}
