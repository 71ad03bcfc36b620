package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/symdoc/config"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default " + config.FileName,
		Long: `Write a default ` + config.FileName + `.

If a directory is provided, the file is created there. Otherwise it is
created in the current directory. An existing file is kept unless --force
is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration")

	return cmd
}

func runInit(dir string, force bool) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
