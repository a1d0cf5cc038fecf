// Package server exposes the dashboard pages and a JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/markboard/internal/ingest"
	"github.com/Sumatoshi-tech/markboard/pkg/alg/lru"
	"github.com/Sumatoshi-tech/markboard/pkg/config"
	"github.com/Sumatoshi-tech/markboard/pkg/dashboard"
	"github.com/Sumatoshi-tech/markboard/pkg/observability"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
)

const corsMaxAge = 300

// Options wires the server to its collaborators. Zero fields fall back to
// no-op telemetry and the default logger.
type Options struct {
	Render  dashboard.Options
	Logger  *slog.Logger
	Tracer  trace.Tracer
	RED     *observability.REDMetrics
	Metrics *observability.DatasetMetrics
	// MetricsHandler serves /metrics; nil leaves the route unregistered.
	MetricsHandler http.Handler
}

// Server serves one dataset source.
type Server struct {
	cfg    config.ServerConfig
	source *ingest.Source
	opts   Options
	router chi.Router
	pages  *lru.Cache[string, []byte]

	httpServer *http.Server
	listener   net.Listener
}

// New builds the router. The dataset is loaded lazily on the first request.
func New(cfg config.ServerConfig, source *ingest.Source, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Tracer == nil {
		opts.Tracer = nooptrace.NewTracerProvider().Tracer("markboard")
	}

	opts.Render = opts.Render.WithDefaults()
	opts.Render.Nav = plotpage.RouteLinks(dashboard.Pages())
	opts.Render.SearchAction = "/" + dashboard.PageStudents

	s := &Server{cfg: cfg, source: source, opts: opts}
	if cfg.PageCacheEntries > 0 {
		s.pages = lru.New(lru.WithMaxEntries[string, []byte](cfg.PageCacheEntries))
	}

	s.router = s.routes()

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}

	return rctx.RoutePattern()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return observability.HTTPMiddleware(s.opts.Tracer, routePattern, next)
	})

	if s.opts.RED != nil {
		r.Use(func(next http.Handler) http.Handler {
			return observability.REDMiddleware(s.opts.RED, routePattern, next)
		})
	}

	r.Get("/healthz", observability.HealthHandler().ServeHTTP)
	r.Get("/readyz", observability.ReadyHandler(s.datasetReady).ServeHTTP)

	if s.opts.MetricsHandler != nil {
		r.Get("/metrics", s.opts.MetricsHandler.ServeHTTP)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         corsMaxAge,
		}))

		api.Get("/overview", s.handleOverview)
		api.Get("/subjects", s.handleSubjects)
		api.Get("/subjects/{key}", s.handleSubject)
		api.Get("/students", s.handleStudents)
		api.Get("/students/{usn}", s.handleStudent)
		api.Get("/electives", s.handleElectives)
		api.Get("/distribution", s.handleDistribution)
		api.Get("/correlation", s.handleCorrelation)
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(r.Context(), w, http.StatusNotFound, "no such endpoint")
		})
	})

	r.Get("/", s.handleIndex)
	r.Get("/"+dashboard.PageStudents, s.handleStudentsPage)
	r.Get("/{page}", s.handlePage)

	return r
}

// datasetReady forces the load and reports its error.
func (s *Server) datasetReady(ctx context.Context) error {
	s.source.Dataset(ctx)

	return s.source.Err()
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	err := s.Listen(ctx)
	if err != nil {
		return err
	}

	return s.Serve(ctx)
}

// Listen binds the listening socket.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.cfg.Addr()
	}

	return s.listener.Addr().String()
}

// Serve runs the HTTP server on the bound listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server: Serve called before Listen")
	}

	errCh := make(chan error, 1)

	go func() {
		s.opts.Logger.InfoContext(ctx, "markboard server listening", "addr", "http://"+s.Addr())
		errCh <- s.httpServer.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultServerShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	s.opts.Logger.InfoContext(ctx, "markboard server shutting down", "timeout", timeout.String())

	err := s.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}
