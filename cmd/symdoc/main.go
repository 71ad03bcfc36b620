package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/symdoc/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("symdoc.cli")

// cfg is loaded before any subcommand runs.
var cfg *config.Config

func main() {
	var (
		verbose   int
		configDir string
	)

	rootCmd := &cobra.Command{
		Use:          "symdoc",
		Short:        "Translate compiler symbol graphs into documentation models",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configDir)
			if err != nil {
				return err
			}
			cfg = loaded

			verbosity := cfg.Log.Verbosity
			if verbose > verbosity {
				verbosity = verbose
			}
			var path *string
			if cfg.Log.Path != "" {
				path = &cfg.Log.Path
			}
			commonlog.Configure(verbosity, path)
			log.Debug("configuration loaded", "dir", configDir, "sourceSets", len(cfg.SourceSets))
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", ".", "directory holding "+config.FileName)

	rootCmd.AddCommand(newTranslateCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newLSPCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
