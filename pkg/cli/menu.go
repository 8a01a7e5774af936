package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mchmarny/sidenav/pkg/route"
)

func newMenuCommand() *cobra.Command {
	var (
		path     string
		override string
	)

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the composed menu resolved for a route as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			activePath := route.ResolveActivePath(override, path, nil)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(composeMenu(cfg).Resolve(activePath)); err != nil {
				return fmt.Errorf("encoding menu: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "/", "current route, including query")
	cmd.Flags().StringVar(&override, "active", "", "explicit active path, takes precedence over --path")

	return cmd
}

func newResolveCommand() *cobra.Command {
	var override string

	cmd := &cobra.Command{
		Use:   "resolve <route>",
		Short: "Print the ID of the entry active for a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p, rawQuery, _ := strings.Cut(args[0], "?")
			activePath := route.ResolveActivePath(override, p, route.ParseQuery(rawQuery))

			id := composeMenu(cfg).ActiveID(activePath)
			if id == "" {
				id = "none"
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&override, "active", "", "explicit active path, takes precedence over the route")

	return cmd
}
