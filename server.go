package seoblog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seoblog/internal/logger"
	"github.com/eringen/seoblog/scan"
)

// DefaultAddr is the preview server listen address.
const DefaultAddr = ":8080"

// Server previews the generated corpus: it serves the content root as static
// files and adds sitemap, feed and audit report routes.
type Server struct {
	Config SiteConfig
	Echo   *echo.Echo

	ledger  *LedgerCache
	scanner *scan.Scanner
	log     logger.Logger
	addr    string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLedger backs /sitemap.xml and /feed.xml with the publish ledger.
func WithLedger(s *Store) ServerOption {
	return func(srv *Server) { srv.ledger = NewLedgerCache(s, DefaultLedgerTTL) }
}

// WithAuditScanner enables /_audit. The scanner should be configured for
// dry-run so previews never modify the corpus.
func WithAuditScanner(sc *scan.Scanner) ServerOption {
	return func(srv *Server) { srv.scanner = sc }
}

// WithServerLogger sets the request and error logger.
func WithServerLogger(l logger.Logger) ServerOption {
	return func(srv *Server) { srv.log = l }
}

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	return func(srv *Server) { srv.addr = addr }
}

// NewServer builds the preview server with middleware and routes installed.
func NewServer(cfg SiteConfig, opts ...ServerOption) *Server {
	cfg.setDefaults()
	s := &Server{
		Config: cfg,
		Echo:   echo.New(),
		log:    logger.NewNopLogger(),
		addr:   DefaultAddr,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Echo.HideBanner = true
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	e := s.Echo
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/feed.xml", s.handleFeed)
	e.GET("/_audit", s.handleAudit)
	e.Static("/", s.Config.ContentRoot)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening",
			logger.String("addr", s.addr),
			logger.String("root", s.Config.ContentRoot))
		errCh <- s.Echo.Start(s.addr)
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		return s.Echo.Shutdown(context.Background())
	}
}
