// Package api serves the quiz catalog and evaluation over HTTP for a web
// front end.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhisek/edumentor/internal/exam"
	"github.com/abhisek/edumentor/internal/store"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// DefaultAddr is the listen address used when Options.Addr is empty.
const DefaultAddr = ":8080"

// DefaultCORSOrigin is the front-end origin allowed when none is configured.
const DefaultCORSOrigin = "http://localhost:3000"

// Options configures a Server.
type Options struct {
	Addr        string
	CORSOrigins []string

	// Service grades submissions. Required.
	Service *exam.Service

	// Events backs the attempt history endpoints. Nil disables them.
	Events store.EventRepo

	Logger *slog.Logger
}

// Server is the HTTP front door.
type Server struct {
	opts    Options
	log     *slog.Logger
	handler http.Handler
}

// NewServer builds the router and middleware chain.
func NewServer(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{DefaultCORSOrigin}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{opts: opts, log: logger}
	h := &handler{service: opts.Service, events: opts.Events, log: logger}

	router := mux.NewRouter()
	router.Use(requestLogger(logger))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/quizzes", h.listQuizzes).Methods(http.MethodGet)
	apiRouter.HandleFunc("/quizzes/{id}", h.getQuiz).Methods(http.MethodGet)
	apiRouter.HandleFunc("/quizzes/{id}/evaluate", h.evaluate).Methods(http.MethodPost)
	apiRouter.HandleFunc("/attempts", h.listAttempts).Methods(http.MethodGet)
	apiRouter.HandleFunc("/topics", h.topicAccuracy).Methods(http.MethodGet)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{"Content-Length", "X-Last-Sequence"},
		MaxAge:         300,
	})
	s.handler = corsMiddleware.Handler(router)
	return s
}

// Handler returns the root handler, CORS included.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server shut down")
	return nil
}
