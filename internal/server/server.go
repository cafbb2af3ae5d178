// Package server assembles the HTTP router: the middleware chain, the
// probes and the catalogue routes.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"booksapi/internal/book"
	"booksapi/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	readyTimeout   = 500 * time.Millisecond
	maxRequestBody = 1 << 20
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Logger         *slog.Logger
	DB             Pinger
	Books          book.Repository
	RateLimiter    *httpx.RateLimitMiddleware
	RequestTimeout time.Duration
	AllowedOrigins []string
	EnableHSTS     bool
}

// Server holds the configured router.
type Server struct {
	router *chi.Mux
	logger *slog.Logger
	db     Pinger
	books  *book.HTTPHandler
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		db:     opts.DB,
		books:  book.NewHTTPHandler(book.NewService(opts.Books)),
	}

	s.setupMiddleware(opts)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(httpx.RequestIDMiddleware)
	s.router.Use(middleware.RealIP)
	s.router.Use(httpx.AccessLogMiddleware(s.logger))
	s.router.Use(httpx.RecoveryMiddleware(s.logger))
	s.router.Use(httpx.SecurityHeadersMiddleware(opts.EnableHSTS))
	if len(opts.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}
	if opts.RateLimiter != nil {
		s.router.Use(opts.RateLimiter.Middleware)
	}
	s.router.Use(httpx.TimeoutMiddleware(opts.RequestTimeout))
	s.router.Use(httpx.RequestSizeLimitMiddleware(maxRequestBody))
}

func (s *Server) setupRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	h := func(fn httpx.HandlerFunc) http.HandlerFunc { return httpx.Handle(s.logger, fn) }

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", h(s.books.ListAll))
			r.Get("/search", h(s.books.Search))
			r.Get("/genre/{genre}", h(s.books.ListByGenre))
			r.Get("/date/{pubdate}", h(s.books.ListByPublishDate))
			r.Get("/{id}", h(s.books.GetBook))
			r.Get("/{id}/details", h(s.books.GetBookDetail))
			r.Get("/{id}/bookshelf", h(s.books.GetBookshelf))
		})
		r.Get("/authors/{authorId}/books", h(s.books.ListByAuthor))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "readiness check failed", "error", err)
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
