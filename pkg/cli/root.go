// Package cli implements the sidenav command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/sidenav/pkg/config"
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/route"
)

var (
	version = "dev"     // Set at build time via -ldflags "-X github.com/mchmarny/sidenav/pkg/cli.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X github.com/mchmarny/sidenav/pkg/cli.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X github.com/mchmarny/sidenav/pkg/cli.date=date"
)

const module = "sidenav"

var cfgFile string

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sidenav",
		Short: "Navigation panel server for the media catalog",
		Long: `sidenav serves the catalog navigation panel: a collapsible menu whose
collapsed state is kept per browser, and whose highlighted entry follows the
current route, including catalog routes grouped by their type parameter.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "sidenav.yaml", "config file path")

	root.AddCommand(
		newServeCommand(),
		newMenuCommand(),
		newResolveCommand(),
		newConfigCommand(),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// composeMenu builds the menu once from the configuration.
func composeMenu(cfg *config.Config) *menu.Menu {
	return menu.New(cfg.SiteName, version, cfg, route.Matcher{})
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Main runs the CLI and exits non-zero on error.
func Main() {
	exitOnError(Execute(context.Background()))
}
