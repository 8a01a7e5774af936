package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mchmarny/sidenav/pkg/collapse"
	"github.com/mchmarny/sidenav/pkg/config"
	"github.com/mchmarny/sidenav/pkg/logger"
	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/mchmarny/sidenav/pkg/server"
	"github.com/mchmarny/sidenav/pkg/store"
	"github.com/mchmarny/sidenav/pkg/web"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigation shell over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			logger.SetDefaultLoggerWithLevel(module, version, cfg.LogLevel)
			slog.Info("starting sidenav", "commit", commit, "date", date)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", server.DefaultPort, "port to listen on (overrides config)")

	return cmd
}

// run wires the store, menu, shell and server and blocks until ctx is done.
func run(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(ctx, cfg.Store.Options())
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := composeMenu(cfg)
	slog.Info("menu composed",
		"entries", len(m.Items),
		"custom_categories", len(cfg.CustomCategories()),
		"store", cfg.Store.Backend)

	shell := web.NewShell(m, st,
		web.WithSessions(collapse.NewSessions(cfg.MaxSessions)),
		web.WithMetrics(metric.NewNav(reg)),
		web.WithLogger(slog.Default()),
	)

	origins := []string{"http://localhost:*", "http://127.0.0.1:*"}
	if cfg.AllowAllOrigins {
		origins = []string{"*"}
	}

	opts := []server.Option{
		server.WithCORS(origins...),
		server.WithPort(cfg.Port),
		server.WithRegistry(reg),
		server.WithSimpleHealth(),
		server.WithPrometheusMetrics(),
		server.WithRoutes(shell.Routes),
	}
	if cfg.TLSCertFile != "" {
		opts = append(opts, server.WithTLS(server.TLSConfig{
			CertFile: cfg.TLSCertFile,
			KeyFile:  cfg.TLSKeyFile,
		}))
	}

	return server.New(opts...).Serve(ctx)
}
