package seoblog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Content formats accepted from a provider.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Raw HTML in provider markdown is kept verbatim.
var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

// NormalizeContent returns content as an HTML fragment. HTML passes through
// unchanged; markdown is converted.
func NormalizeContent(format, content string) (string, error) {
	switch format {
	case "", FormatHTML:
		return content, nil
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("content: convert markdown: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("content: unknown format %q", format)
	}
}
