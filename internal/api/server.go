// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the chi router for the Folio REST API.

Every domain package exposes a Handler with a Routes method. This package
mounts them under /api behind one middleware chain and owns the
[http.Server] lifecycle. Nothing else in the module builds a server.
*/
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/media"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

// Handlers are the mounted route groups plus the two probes.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth         *auth.Handler
	Users        *account.Handler
	Content      *content.Handler
	ContentTypes *content.TypesHandler
	Media        *media.Handler
	Activity     *activity.Handler
}

// Server is the API router bound to a listening address.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	log        *slog.Logger
}

// NewServer builds the router. The context bounds background work started
// by the middleware, such as the rate limiter sweep.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()

	// Order matters: ids and logging wrap everything, recovery sits inside
	// them so a panic still produces a logged 500.
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst),
		middleware.PanicRecovery(),
		middleware.CORS(cfg),
		middleware.Authenticate(verifier),
		chimw.CleanPath,
	)

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)

	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Users.Routes())
		api.Mount("/content", h.Content.Routes())
		api.Mount("/versions", h.Content.VersionRoutes())
		api.Mount("/content-types", h.ContentTypes.Routes())
		api.Mount("/media", h.Media.Routes())
		api.Mount("/activity", h.Activity.Routes())
	})

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most drain. A listener failure is returned immediately.
func (s *Server) Run(ctx context.Context, drain time.Duration) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		s.log.Info("server_draining", slog.Duration("timeout", drain))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drain)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
