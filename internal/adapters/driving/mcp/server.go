package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/revisify/internal/logger"
)

// DefaultVersion is reported to clients when no version is set.
const DefaultVersion = "dev"

// instructions tells assistants how the tools fit together.
const instructions = `Revisify keeps one markdown draft and one published note.
Edit the draft with update_draft, insert, wrap_selection, insert_table and
insert_image. Positions are Unicode code point offsets. Every edit is saved
immediately. Call publish to make the draft visible in the viewer and
view_note to read what is published.`

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported in the initialize handshake.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// Server is the MCP server for revisify.
type Server struct {
	ports   *Ports
	version string
	server  *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:   ports,
		version: DefaultVersion,
	}
	for _, opt := range opts {
		opt(s)
	}

	impl := &mcp.Implementation{
		Name:    "revisify",
		Version: s.version,
	}
	s.server = mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions})

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Version returns the version reported to clients.
func (s *Server) Version() string {
	return s.version
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves MCP over streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.ServeHTTP(ctx, ln)
}

// ServeHTTP accepts connections on ln until ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("MCP server listening on %s", ln.Addr())
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
