package seoblog

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/seoblog/scan"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// AuditReport renders scan statistics as a standalone HTML page: summary
// counts, then one row per document with its pending fixes and warnings.
func AuditReport(siteName string, stats *scan.Stats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><title>%s audit</title>`, esc(siteName))
		p.printf(`<style>body{font-family:sans-serif;margin:2rem}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px 8px;text-align:left}.warn{color:#b45309}.fix{color:#2563eb}.err{color:#b91c1c}</style></head><body>`)
		p.printf(`<h1>%s audit</h1>`, esc(siteName))
		if stats.RootMissing {
			p.printf(`<p class="err">Directory %s not found.</p></body></html>`, esc(stats.Root))
			return p.err
		}
		p.printf(`<table id="summary"><tr><th>Files scanned</th><td>%d</td></tr>`, stats.Total)
		p.printf(`<tr><th>Need URL fixes</th><td>%d</td></tr>`, stats.Modified)
		p.printf(`<tr><th>With warnings</th><td>%d</td></tr>`, stats.Warned)
		p.printf(`<tr><th>Already correct</th><td>%d</td></tr>`, stats.AlreadyCorrect)
		p.printf(`<tr><th>Failed</th><td>%d</td></tr></table>`, stats.Failed)

		p.printf(`<h2>Documents</h2><table id="documents"><tr><th>Document</th><th>Findings</th></tr>`)
		for _, f := range stats.Files {
			p.printf(`<tr><td>%s</td><td>`, esc(f.Name))
			switch {
			case f.Err != nil:
				p.printf(`<div class="err">%s</div>`, esc(f.Err.Error()))
			case !f.Modified && len(f.Warnings) == 0:
				p.printf(`ok`)
			}
			for _, ch := range f.Changes {
				p.printf(`<div class="fix">%s</div>`, esc(ch.String()))
			}
			for _, msg := range f.Warnings {
				p.printf(`<div class="warn">%s</div>`, esc(msg))
			}
			p.printf(`</td></tr>`)
		}
		p.printf(`</table></body></html>`)
		return p.err
	})
}

var esc = templ.EscapeString[string]

// htmlWriter latches the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}
