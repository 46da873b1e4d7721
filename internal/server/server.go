// Package server wires the router and runs the HTTP server.
//
// It is the composition point for the web surface: middleware, routes
// and graceful shutdown. Dependencies are created by the caller and
// injected, so tests can stand up the router without a listener.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/codemetry/codemetry/internal/handler"
	"github.com/codemetry/codemetry/internal/logging"
)

// Options holds server configuration
type Options struct {
	Port            int
	ShutdownTimeout time.Duration
}

// Server is the HTTP server with its router
type Server struct {
	router *chi.Mux
	opts   Options
	log    *logrus.Entry
}

// New creates the server and mounts all routes
func New(h *handler.Handler, logger *logrus.Logger, opts Options) *Server {
	s := &Server{
		router: chi.NewRouter(),
		opts:   opts,
		log:    logging.WithComponent(logger, "server"),
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(requestLogger(logger))
	s.router.Use(chimiddleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		// Provider deliveries carry no bearer token; the event contract
		// itself gates state changes
		r.Post("/projects/{projectID}/webhook", h.WebhookEvent)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)

			r.Get("/projects", h.ListProjects)
			r.Post("/projects", h.CreateProject)
			r.Route("/projects/{projectID}", func(r chi.Router) {
				r.Get("/", h.GetProject)
				r.Delete("/", h.DeleteProject)

				r.Get("/webhook", h.DescribeWebhook)
				r.Put("/webhook", h.ResetWebhook)

				r.Get("/tree", h.GetTree)
				r.Get("/directories/{directoryID}", h.GetDirectory)
				r.Get("/files/{fileID}", h.GetFileMetrics)
				r.Get("/files/{fileID}/graphs", h.GetFileGraphs)
			})
		})
	})

	return s
}

// Router exposes the mux for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is canceled, then drains in-flight
// requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown incomplete: %w", err)
	}
	return <-errCh
}

// requestLogger logs each request with method, path, status and duration
func requestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.WithFields(logrus.Fields{
				"method":              r.Method,
				logging.FieldPath:     r.URL.Path,
				logging.FieldStatus:   ww.Status(),
				"duration":            time.Since(start).String(),
				"request_id":          chimiddleware.GetReqID(r.Context()),
			}).Info("request handled")
		})
	}
}
