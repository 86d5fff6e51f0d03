package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eringen/seoblog"
)

// ErrMalformedResponse reports provider output that is not the expected JSON object.
var ErrMalformedResponse = errors.New("provider: malformed response")

// previewLen bounds how much of a bad response is quoted in the error.
const previewLen = 500

// ParseResponse decodes a model reply into a GeneratedPost. A surrounding
// ```json or ``` fence is removed first. Missing fields are left zero; the
// publisher fills defaults.
func ParseResponse(raw string) (seoblog.GeneratedPost, error) {
	text := StripFence(raw)
	var post seoblog.GeneratedPost
	if err := json.Unmarshal([]byte(text), &post); err != nil {
		return seoblog.GeneratedPost{}, fmt.Errorf("%w: %v; response was: %s...", ErrMalformedResponse, err, preview(text))
	}
	return post, nil
}

// StripFence trims whitespace and one layer of markdown code fence.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > previewLen {
		r = r[:previewLen]
	}
	return string(r)
}
