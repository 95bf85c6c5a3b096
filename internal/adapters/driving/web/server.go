package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/custodia-labs/revisify/internal/logger"
)

// Default server settings.
const (
	DefaultAddr         = "127.0.0.1:7474"
	DefaultPollInterval = 5 * time.Second

	// maxImageBytes caps uploaded images.
	maxImageBytes = 10 << 20

	// keepaliveInterval stays below WriteTimeout so idle streams survive.
	keepaliveInterval = 10 * time.Second
)

// Config holds web server settings.
type Config struct {
	// RateLimit is the sustained API request rate per second. Zero disables it.
	RateLimit int

	// PollInterval is passed to the view session for stores without push.
	PollInterval time.Duration

	// HighlightCSS styles highlighted code blocks on both pages.
	HighlightCSS string
}

// Server serves the editor page, the viewer page and their JSON API.
type Server struct {
	ports   *Ports
	cfg     Config
	pages   *pages
	limiter *RateLimiter
	handler http.Handler
}

// NewServer creates a web server over the given ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	p, err := newPages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		ports:   ports,
		cfg:     cfg,
		pages:   p,
		limiter: NewRateLimiter(cfg.RateLimit),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// routes registers all HTTP routes.
func (s *Server) routes() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/state", s.handleState)
	api.HandleFunc("POST /api/text", s.handleText)
	api.HandleFunc("POST /api/insert", s.handleInsert)
	api.HandleFunc("POST /api/wrap", s.handleWrap)
	api.HandleFunc("POST /api/table", s.handleTable)
	api.HandleFunc("POST /api/image", s.handleImage)
	api.HandleFunc("POST /api/publish", s.handlePublish)
	api.HandleFunc("POST /api/clear", s.handleClear)
	api.HandleFunc("GET /api/export", s.handleExport)
	api.HandleFunc("GET /api/note", s.handleNote)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleEditorPage)
	mux.HandleFunc("GET /viewer", s.handleViewerPage)
	mux.HandleFunc("GET /static/style.css", s.handleStylesheet)
	// Event streams are long lived and must not consume request tokens
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.Handle("/api/", s.limiter.Middleware(api))

	return withRecovery(mux)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("Web editor listening on http://%s", ln.Addr())
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// withRecovery wraps an HTTP handler with panic recovery.
func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic serving %s: %v\n%s", r.URL.Path, err, debug.Stack())
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
