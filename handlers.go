package seoblog

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/seoblog/internal/logger"
)

func (s *Server) ledgerEntries() ([]LedgerEntry, error) {
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.Entries()
}

func (s *Server) handleSitemap(c echo.Context) error {
	entries, err := s.ledgerEntries()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, s.Config, entries); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, buf.Bytes())
}

func (s *Server) handleFeed(c echo.Context) error {
	entries, err := s.ledgerEntries()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteFeed(&buf, s.Config, entries); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=UTF-8", buf.Bytes())
}

func (s *Server) handleAudit(c echo.Context) error {
	if s.scanner == nil {
		return echo.NewHTTPError(http.StatusNotFound, "audit report is disabled")
	}
	stats, err := s.scanner.Scan(c.Request().Context(), s.Config.ContentRoot)
	if err != nil {
		return err
	}
	return Render(c, AuditReport(s.Config.Name, stats))
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= 500 {
		s.log.Error("server error",
			logger.String("path", c.Request().URL.Path),
			logger.Err(err))
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}
