// Package server assembles the HTTP surface of the billing service and runs
// it until its context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/retailbill/internal/api"
	"github.com/mmynk/retailbill/internal/auth"
	"github.com/mmynk/retailbill/internal/config"
	"github.com/mmynk/retailbill/internal/metrics"
	"github.com/mmynk/retailbill/internal/middleware"
	"github.com/mmynk/retailbill/internal/service"
	"github.com/mmynk/retailbill/internal/storage"
	"github.com/mmynk/retailbill/internal/storage/sqlite"
)

// Server holds the wired dependencies of the billing service.
type Server struct {
	cfg     *config.Config
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	handler http.Handler
}

// New wires the service, interceptors and HTTP middleware.
func New(cfg *config.Config, store storage.Store, m *metrics.Metrics, logger *slog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	svc := service.NewBillingService(store, tokens, m)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(logger),
		middleware.RequireSession(tokens, api.StartSessionProcedure),
	)
	path, billingHandler := api.NewBillingHandler(svc, interceptors)

	headers := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      !cfg.IsProduction(),
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS)
	r.Use(headers.Handler)
	r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", m.Handler())
	r.Handle(path+"*", billingHandler)

	return &Server{
		cfg:     cfg,
		store:   store,
		metrics: m,
		logger:  logger,
		handler: h2c.NewHandler(r, &http2.Server{}),
	}
}

// Handler returns the root handler, including h2c support.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on cfg.Addr and removes expired sessions every
// cfg.CleanupInterval. It returns after ctx is cancelled and the server has
// shut down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Connect server starting", "address", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		s.sweepSessions(gctx)
		return nil
	})

	return g.Wait()
}

func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.store.DeleteExpired(ctx, now)
			if err != nil {
				s.logger.Warn("Session cleanup failed", "error", err)
				continue
			}
			s.metrics.SessionsExpired(n)
			if n > 0 {
				s.logger.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}

// Serve opens an in-memory store and runs a server for cfg until ctx is
// cancelled.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.New()
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", "sqlite", "mode", "memory")

	return New(cfg, store, metrics.New(), logger).Run(ctx)
}
