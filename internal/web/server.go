// Package web serves the browser-facing session presenter and the creator
// pages. It renders the same session flow as the terminal runner, but with the
// real prototype iframe and the tester's actual viewport.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/emiliopalmerini/flexrun/internal/review"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

//go:embed static/*
var staticFiles embed.FS

// Server is the web presenter.
type Server struct {
	service   *domain.Service
	directory review.Directory
	logger    domain.Logger
	router    chi.Router
	port      int
}

// NewServer wires the presenter's routes.
func NewServer(service *domain.Service, directory review.Directory, logger domain.Logger, port int) *Server {
	s := &Server{
		service:   service,
		directory: directory,
		logger:    logger,
		router:    chi.NewRouter(),
		port:      port,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Tester flow. The share link lands on / with the id in the query string.
	s.router.Get("/", s.handleShareLink)
	s.router.Get("/t/{id}", s.handleWelcome)
	s.router.Get("/t/{id}/proto", s.handlePrototype)
	s.router.Get("/t/{id}/questions", s.handleQuestions)
	s.router.Post("/t/{id}/submit", s.handleSubmit)
	s.router.Get("/t/{id}/finish", s.handleFinish)

	// Creator pages
	s.router.Get("/tests", s.handleTests)
	s.router.Get("/tests/{id}", s.handleResponses)
}

// Start runs the server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Starting server at http://localhost:%d\n", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(fmt.Sprintf("server shutdown error: %v", err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
