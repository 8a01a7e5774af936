package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/sidenav/pkg/metric"
)

const (
	// DefaultPort is the port the shell listens on when none is configured.
	DefaultPort = 9876

	// DefaultShutdownTimeout bounds how long in-flight requests get to finish
	// once the serve context is canceled.
	DefaultShutdownTimeout = 5 * time.Second

	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultMaxHeaderBytes = 1 << 20
)

// Server hosts the navigation shell.
type Server interface {
	// Serve binds the listener and blocks until ctx is canceled.
	Serve(ctx context.Context) error

	// IsRunning reports whether the listener is bound.
	IsRunning() bool

	// Handler returns the router with all routes and middleware.
	Handler() http.Handler
}

// TLSConfig holds the certificate and key file paths used to serve HTTPS.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type limits struct {
	read, write, idle, shutdown time.Duration
	maxHeaderBytes              int
}

type server struct {
	router   chi.Router
	port     int
	limits   limits
	tls      *TLSConfig
	registry *prometheus.Registry
	origins  []string
	errLog   *log.Logger

	mu      sync.RWMutex
	running bool
}

// Option configures the server.
type Option func(*server)

// WithPort sets the listen port. Port 0 picks a free port.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithShutdownTimeout sets the graceful shutdown grace period.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.limits.shutdown = d }
}

// WithTimeouts overrides the read, write and idle timeouts. Zero values keep
// the defaults.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *server) {
		if read > 0 {
			s.limits.read = read
		}
		if write > 0 {
			s.limits.write = write
		}
		if idle > 0 {
			s.limits.idle = idle
		}
	}
}

// WithRoutes lets a component mount its routes on the router.
//
//	srv := server.New(server.WithRoutes(shell.Routes))
func WithRoutes(fn func(r chi.Router)) Option {
	return func(s *server) { fn(s.router) }
}

// WithRegistry sets the Prometheus registry served at /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithPrometheusMetrics exposes the registry at /metrics. The registry is
// looked up per request, so the order relative to WithRegistry does not matter.
func WithPrometheusMetrics() Option {
	return func(s *server) {
		s.router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metric.GetHandlerForRegistry(s.registry).ServeHTTP(w, r)
		})
	}
}

// WithCORS allows cross-origin requests from origins. It installs middleware,
// so it must come before any option that mounts routes. Credentials (the
// client cookie) are only allowed when no origin is the "*" wildcard, since
// the cookie authorizes the toggle action.
func WithCORS(origins ...string) Option {
	return func(s *server) {
		s.origins = origins
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: !slices.Contains(origins, "*"),
			MaxAge:           300,
		}))
	}
}

// WithSimpleHealth mounts /healthz, which always answers 200 "ok". Store
// failures are recovered per request, so there is nothing deeper to probe.
func WithSimpleHealth() Option {
	return func(s *server) {
		s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// WithTLS serves HTTPS using the given key pair.
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) { s.tls = &cfg }
}

// New returns a server listening on DefaultPort with its own registry,
// configured by opts in order.
func New(opts ...Option) Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	s := &server{
		router: r,
		port:   DefaultPort,
		limits: limits{
			read:           defaultReadTimeout,
			write:          defaultWriteTimeout,
			idle:           defaultIdleTimeout,
			shutdown:       DefaultShutdownTimeout,
			maxHeaderBytes: defaultMaxHeaderBytes,
		},
		registry: prometheus.NewRegistry(),
		errLog:   slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}

	for _, opt := range opts {
		opt(s)
	}

	slog.Info("server initialized",
		"port", s.port,
		"tls", s.tls != nil,
		"cors_origins", s.origins)

	return s
}

func (s *server) Handler() http.Handler {
	return s.router
}

func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *server) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// listen binds the socket, wrapping it in TLS when configured.
func (s *server) listen(addr string) (net.Listener, error) {
	var cert tls.Certificate
	if s.tls != nil {
		var err error
		if cert, err = tls.LoadX509KeyPair(s.tls.CertFile, s.tls.KeyFile); err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tls == nil {
		return ln, nil
	}

	return tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// Serve runs the server until ctx is canceled, then shuts it down within the
// shutdown grace period. A graceful shutdown returns nil.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.router,
		ReadTimeout:    s.limits.read,
		WriteTimeout:   s.limits.write,
		IdleTimeout:    s.limits.idle,
		MaxHeaderBytes: s.limits.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	ln, err := s.listen(srv.Addr)
	if err != nil {
		return err
	}

	slog.Info("starting server", "addr", ln.Addr().String(), "tls", s.tls != nil)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.setRunning(true)
		defer s.setRunning(false)

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.limits.shutdown)
		defer cancel()

		start := time.Now()
		slog.Info("shutting down server", "grace_period", s.limits.shutdown)

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(start))
		return nil
	})

	return g.Wait()
}
