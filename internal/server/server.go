// Package server exposes a mounted contact form over HTTP: an HTML page that
// posts back to itself and a JSON API over the same per-session engine.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-contactform/internal/session"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and event logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithCSRFField overrides the hidden input carrying the CSRF token.
func WithCSRFField(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.csrfField = name
		}
	}
}

// WithCookieMaxAge sets the session cookie lifetime.
func WithCookieMaxAge(d time.Duration) Option {
	return func(s *Server) {
		s.cookieMaxAge = d
	}
}

// WithOpenAPI serves document at /openapi.json.
func WithOpenAPI(document []byte) Option {
	return func(s *Server) {
		s.openapi = document
	}
}

// WithAssets serves files at /assets.
func WithAssets(files http.FileSystem) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// Server wires the session store, the HTML renderer, and the gin router.
type Server struct {
	form     model.FormModel
	sessions *session.Store
	renderer render.Renderer

	log          zerolog.Logger
	cookieName   string
	csrfField    string
	cookieMaxAge time.Duration
	openapi      []byte
	assets       http.FileSystem

	router *gin.Engine
}

// New builds the router. renderer produces the HTML page.
func New(form model.FormModel, sessions *session.Store, renderer render.Renderer, options ...Option) (*Server, error) {
	if sessions == nil {
		return nil, errors.New("server: session store is required")
	}
	if renderer == nil {
		return nil, errors.New("server: renderer is required")
	}

	s := &Server{
		form:       form,
		sessions:   sessions,
		renderer:   renderer,
		log:        zerolog.Nop(),
		cookieName: "contactform_session",
		csrfField:  "_csrf",
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.log))

	router.GET("/healthz", s.handleHealth)
	if s.openapi != nil {
		router.GET("/openapi.json", s.handleOpenAPI)
	}
	if s.assets != nil {
		router.StaticFS("/assets", s.assets)
	}

	page := router.Group("/", s.sessionMiddleware())
	page.GET("", s.handleIndex)
	page.POST("", s.handleFormPost)

	api := router.Group("/api", s.sessionMiddleware())
	api.GET("/state", s.handleState)
	api.PUT("/fields/:name", s.handleSetField)
	api.POST("/validate", s.handleValidate)
	api.POST("/submit", s.handleSubmit)
	api.GET("/snapshot", s.handleSnapshot)
	api.POST("/reset", s.handleReset)

	return router
}

// Serve listens on addr until ctx is done, then shuts down within grace.
func (s *Server) Serve(ctx context.Context, addr string, grace time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.ServeListener(ctx, ln, grace)
}

// ServeListener serves on an existing listener until ctx is done.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener, grace time.Duration) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	s.log.Info().Dur("grace", grace).Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
