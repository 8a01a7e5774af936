package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/sidenav/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the sidenav config file",
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file populated with the defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(cfgFile); err == nil && !force {
				return fmt.Errorf("config %s already exists, use --force to overwrite", cfgFile)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("accessing config %s: %w", cfgFile, err)
			}

			if err := config.DefaultConfig().Save(cfgFile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfgFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
