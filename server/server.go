// Package server provides the HTTP server for the Mergington High School
// activity registration service.
//
// The server exposes a JSON API for listing extracurricular activities and
// signing students up or off, plus a small web UI served from embedded files.
//
// # Endpoints
//
//   - GET / - Redirects to the web UI at /static/index.html
//   - GET /static/... - Web UI
//   - GET /activities - All activities with their rosters
//   - GET /activities/{activity} - A single activity
//   - POST /activities/{activity}/signup?email=... - Sign a student up
//   - POST /activities/{activity}/unregister - Remove a participant, body {"participant": "..."}
//   - GET /health - Simple health check, returns "ok"
//   - GET /version - Build and runtime properties
//   - GET /config - Current configuration as YAML, credentials redacted
//   - GET /metrics - Prometheus metrics
//
// # State
//
// Rosters live in a registry.Registry owned by the Server and are lost on
// restart. The registry serialises all roster changes, so handlers can be
// served concurrently.
//
// # Example
//
//	srv, err := server.New(config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/nomis52/mergington/buildinfo"
	"github.com/nomis52/mergington/logging"
	"github.com/nomis52/mergington/metrics"
	"github.com/nomis52/mergington/registry"
	"github.com/nomis52/mergington/server/config"
	"github.com/nomis52/mergington/server/cron"
	"github.com/nomis52/mergington/server/handlers"
	"github.com/nomis52/mergington/server/types"
)

//go:embed static
var staticFiles embed.FS

// indexPath is where GET / sends the browser.
const indexPath = "/static/index.html"

// Server is the HTTP server for the activity registration service.
type Server struct {
	config      *config.ServerConfig
	logger      *logging.Logger
	registry    *registry.Registry
	scrape      *metrics.ScrapeRegistry
	pushTrigger *cron.CronTrigger
	certLoader  *CertLoader
	props       types.ServerProperties
	handler     http.Handler
	seed        map[string]registry.Activity
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger replaces the logger built from the logging config.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithSeed replaces the seed otherwise taken from the config's seed file or
// the built-in activities.
func WithSeed(seed map[string]registry.Activity) Option {
	return func(s *Server) error {
		s.seed = seed
		return nil
	}
}

// New creates a new Server from cfg. It builds the logger, the activity
// registry and its metrics, and the optional roster push schedule.
func New(cfg *config.ServerConfig, opts ...Option) (*Server, error) {
	s := &Server{config: cfg}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.logger == nil {
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
		s.logger = logger
	}

	if err := s.initRegistry(); err != nil {
		return nil, err
	}

	if cfg.Monitoring.PushSchedule != "" {
		if err := s.initPush(); err != nil {
			return nil, err
		}
	}

	if cfg.Listener.TLSCert != "" {
		loader, err := NewCertLoader(cfg.Listener.TLSCert, cfg.Listener.TLSKey, s.logger.Logger)
		if err != nil {
			return nil, fmt.Errorf("loading tls certificate: %w", err)
		}
		s.certLoader = loader
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	s.props = types.ServerProperties{
		Build:      buildinfo.Get(),
		StartedAt:  time.Now(),
		Hostname:   hostname,
		Activities: len(s.registry.Names()),
	}

	mux := http.NewServeMux()
	if err := s.registerRoutes(mux); err != nil {
		return nil, err
	}
	s.handler = handlers.WithRequestLogging(s.logger.Logger, mux)

	return s, nil
}

func (s *Server) initRegistry() error {
	seed := s.seed
	if seed == nil && s.config.SeedFile != "" {
		loaded, err := registry.LoadSeed(s.config.SeedFile)
		if err != nil {
			return fmt.Errorf("loading seed: %w", err)
		}
		seed = loaded
		s.logger.Info("loaded activity seed", "seed_file", s.config.SeedFile, "activities", len(seed))
	}
	if seed == nil {
		seed = registry.DefaultSeed()
	}

	scrape, err := metrics.NewScrapeRegistry(s.config.Monitoring.Prefix)
	if err != nil {
		return fmt.Errorf("creating metrics registry: %w", err)
	}
	roster, err := metrics.NewRosterMetrics(scrape)
	if err != nil {
		return fmt.Errorf("creating roster metrics: %w", err)
	}

	reg, err := registry.New(seed, registry.WithObserver(roster))
	if err != nil {
		return fmt.Errorf("creating registry: %w", err)
	}
	roster.Init(reg.List())

	s.scrape = scrape
	s.registry = reg
	return nil
}

func (s *Server) initPush() error {
	mon := s.config.Monitoring
	hostname, _ := os.Hostname()
	client := metrics.NewClient(metrics.PushConfig{
		URL:      mon.PushURL,
		Prefix:   mon.Prefix,
		Job:      mon.Job,
		Instance: hostname,
		Timeout:  mon.PushTimeout,
	})
	pusher := metrics.NewRosterPusher(client, s.registry, s.logger.Logger, mon.PushTimeout)

	trigger, err := cron.NewCronTrigger(mon.PushSchedule, pusher, s.logger.Logger)
	if err != nil {
		return fmt.Errorf("creating push trigger: %w", err)
	}
	s.pushTrigger = trigger
	return nil
}

// Logger returns the server's logger.
func (s *Server) Logger() *logging.Logger {
	return s.logger
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfig {
	return s.config
}

// Registry returns the activity registry served by the server.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Properties returns metadata about the running server.
func (s *Server) Properties() types.ServerProperties {
	return s.props
}

// Handler returns the server's root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Listener.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Listener.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// If a push schedule is configured it runs for the lifetime of the server.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.Listener.ReadTimeout,
		WriteTimeout: s.config.Listener.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.pushTrigger != nil {
		s.logger.Info("starting roster push trigger",
			"push_url", s.config.Redacted().Monitoring.PushURL,
			"next_run", s.pushTrigger.NextRun(),
		)
		s.pushTrigger.Start(ctx)
		defer func() {
			cancel()
			s.pushTrigger.Wait()
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			"addr", ln.Addr().String(),
			"tls", s.certLoader != nil,
			"activities", s.props.Activities,
		)
		var err error
		if s.certLoader != nil {
			httpServer.TLSConfig = s.certLoader.TLSConfig()
			err = httpServer.ServeTLS(ln, "", "")
		} else {
			err = httpServer.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), s.config.Listener.ShutdownTimeout)
		defer cancelShutdown()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

// Close releases resources held by the server, such as a log file.
func (s *Server) Close() error {
	return s.logger.Close()
}

func (s *Server) registerRoutes(mux *http.ServeMux) error {
	logger := s.logger.Logger

	mux.Handle("GET /activities", handlers.NewActivitiesHandler(s.registry))
	mux.Handle("GET /activities/{activity}", handlers.NewActivityHandler(logger, s.registry))
	mux.Handle("POST /activities/{activity}/signup", handlers.NewSignupHandler(logger, s.registry))
	mux.Handle("POST /activities/{activity}/unregister", handlers.NewUnregisterHandler(logger, s.registry))

	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.Handle("GET /version", handlers.NewVersionHandler(s))
	mux.Handle("GET /config", handlers.NewConfigHandler(s))
	mux.Handle("GET /metrics", s.scrape.Handler())

	// Web UI
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("creating static file system: %w", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.Handle("GET "+indexPath, handlers.NewFileHandler(staticFS, "index.html"))
	mux.Handle("GET /{$}", handlers.RedirectHandler(indexPath))
	return nil
}
