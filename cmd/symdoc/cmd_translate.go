package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dhamidi/symdoc/config"
	"github.com/dhamidi/symdoc/format"
	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
	"github.com/dhamidi/symdoc/symbol/load"
	"github.com/dhamidi/symdoc/translate"
)

func newTranslateCmd() *cobra.Command {
	var (
		sourceSets []string
		formatName string
		zstd       bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "translate [graph.yaml]",
		Short: "Translate a symbol graph into a documentation model",
		Long: `Translate a symbol graph into a documentation model.

Every configured source set is translated concurrently unless --source-set
narrows the selection. Modules are written one after another in the chosen
format.

Examples:
  symdoc translate symbols.yaml
  symdoc translate --format line --source-set main
  symdoc translate --zstd -o docs.json.zst`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = formatName
			}
			if cmd.Flags().Changed("zstd") {
				cfg.Output.Zstd = zstd
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			modules, err := translateGraph(cmd.Context(), graphPath(args), sourceSets)
			if err != nil {
				return err
			}
			return writeModules(modules, cfg.Output)
		},
	}

	cmd.Flags().StringSliceVarP(&sourceSets, "source-set", "s", nil, "source set to translate (repeatable, defaults to all configured)")
	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "output format (json, line)")
	cmd.Flags().BoolVar(&zstd, "zstd", false, "compress the output with zstd")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout)")

	return cmd
}

func graphPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Graph
}

// translateGraph loads the graph at path and translates the selected source
// sets.
func translateGraph(ctx context.Context, path string, names []string) ([]*model.Module, error) {
	session, err := load.File(path)
	if err != nil {
		return nil, err
	}
	sets, err := selectSourceSets(cfg, names)
	if err != nil {
		return nil, err
	}
	return translateAll(ctx, session, sets, cfg.ObviousPolicy())
}

func selectSourceSets(c *config.Config, names []string) ([]model.SourceSet, error) {
	if len(names) == 0 {
		out := make([]model.SourceSet, len(c.SourceSets))
		for i, ss := range c.SourceSets {
			out[i] = ss.Model()
		}
		return out, nil
	}
	out := make([]model.SourceSet, 0, len(names))
	for _, name := range names {
		ss, ok := c.SourceSet(name)
		if !ok {
			return nil, fmt.Errorf("unknown source set %q", name)
		}
		out = append(out, ss.Model())
	}
	return out, nil
}

// translateAll runs one translator per source set concurrently. The first
// failure cancels the remaining runs and is returned.
func translateAll(ctx context.Context, session *symbol.Session, sets []model.SourceSet, policy translate.ObviousPolicy) ([]*model.Module, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
		modules  = make([]*model.Module, len(sets))
	)
	for i, ss := range sets {
		i, ss := i, ss
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := translate.New(session, translate.WithObviousPolicy(policy)).Translate(ctx, ss)
			if err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("source set %s: %w", ss.ID, err)
					cancel()
				})
				return
			}
			modules[i] = m
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return modules, nil
}

func writeModules(modules []*model.Module, out config.Output) (err error) {
	var w io.Writer = os.Stdout
	if out.Path != "" {
		f, err := os.Create(out.Path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if out.Zstd {
		zw, err := format.Compress(w)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
	}

	enc, err := format.New(out.Format, w)
	if err != nil {
		return err
	}
	for _, m := range modules {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode %s: %w", m.Name, err)
		}
	}
	log.Info("wrote modules", "count", len(modules), "format", out.Format, "zstd", out.Zstd, "path", out.Path)
	return nil
}
