// Package server provides HTTP server for the board API, theme preference and uploads.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/tinybbs/bbs/app/server/api"
	"github.com/tinybbs/bbs/app/store"
)

// Server represents the HTTP server.
type Server struct {
	files      *store.Files
	cfg        Config
	version    string
	baseURL    string
	apiHandler *api.Handler
}

// Config holds server configuration.
type Config struct {
	Address           string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Version           string
	BaseURL           string // base URL path for reverse proxy (e.g., /bbs)
	StaticDir         string // optional directory served at /static/, e.g. compiled wasm and its loader
	AdminPasswordHash string // bcrypt hash of the admin password, empty disables moderation
	AnonName          string // poster name used when none is given

	// limits
	BodySizeLimit  int64 // max request body size in bytes, uploads included
	RequestsPerSec int64 // max requests per second
}

// New creates a new Server instance.
func New(st api.Store, files *store.Files, val api.Validator, cfg Config) *Server {
	s := &Server{
		files:   files,
		cfg:     cfg,
		version: cfg.Version,
		baseURL: cfg.BaseURL,
	}
	s.apiHandler = api.New(st, files, val, api.Config{
		AnonName:   cfg.AnonName,
		CookiePath: s.cookiePath(),
	})
	return s
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.handler(),
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	// graceful shutdown
	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown error: %v", err)
		}
	}()

	if s.cfg.AdminPasswordHash == "" {
		log.Printf("[INFO] moderation disabled, no admin password hash set")
	}
	log.Printf("[DEBUG] started server on %s", s.cfg.Address)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// handler returns the HTTP handler, wrapping routes with base URL support if configured.
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.baseURL == "" {
		return routes
	}
	mux := http.NewServeMux()
	// redirect /base to /base/
	mux.HandleFunc(s.baseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.baseURL+"/", http.StatusMovedPermanently)
	})
	// strip prefix for all routes under base URL
	mux.Handle(s.baseURL+"/", http.StripPrefix(s.baseURL, routes))
	return mux
}

// routes configures and returns the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware (applies to all routes)
	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP, // must be before Throttle to rate-limit by real client IP
		rest.Throttle(s.requestsPerSec()),
		rest.Trace,
		rest.SizeLimit(s.bodySizeLimit()),
		rest.AppInfo("bbs", "tinybbs", s.version),
		rest.Ping,
	)

	router.Handle("GET /uploads/", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(s.files.Dir())))))
	if s.cfg.StaticDir != "" {
		router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	}

	router.Mount("/api/v1").Route(func(apiRouter *routegroup.Bundle) {
		s.registerTheme(apiRouter)
		s.apiHandler.Register(apiRouter)

		// moderation routes (basic auth)
		apiRouter.Group().Route(func(admin *routegroup.Bundle) {
			admin.Use(adminAuth(s.cfg.AdminPasswordHash))
			s.apiHandler.RegisterAdmin(admin)
		})
	})

	return router
}

// noDirListing answers 404 for directory paths, files are served as is.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, nil, "not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bodySizeLimit returns the configured body size limit, or default 32MB if not set.
func (s *Server) bodySizeLimit() int64 {
	if s.cfg.BodySizeLimit > 0 {
		return s.cfg.BodySizeLimit
	}
	return 32 * 1024 * 1024 // 32MB default
}

// requestsPerSec returns the configured requests per second limit, or default 1000 if not set.
func (s *Server) requestsPerSec() int64 {
	if s.cfg.RequestsPerSec > 0 {
		return s.cfg.RequestsPerSec
	}
	return 1000 // default
}

// cookiePath returns the path for preference cookies, the base URL or root.
func (s *Server) cookiePath() string {
	if s.baseURL == "" {
		return "/"
	}
	return s.baseURL + "/"
}
