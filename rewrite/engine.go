package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultResidualMarker is the substring that flags a URL still pointing at
// the old host after rewriting.
const DefaultResidualMarker = "github.io"

// Change records one distinct literal that was rewritten.
type Change struct {
	Match       string
	Replacement string
}

func (c Change) String() string {
	return fmt.Sprintf("Fixed URL: %s → %s", c.Match, c.Replacement)
}

// Result is the outcome of applying a rule set to one document.
type Result struct {
	Content string
	Changed bool
	Changes []Change
}

type tagCheck struct {
	name string
	re   *regexp.Regexp
}

// verifiedTags are the metadata attributes re-read after rewriting.
var verifiedTags = []tagCheck{
	{"canonical", regexp.MustCompile(`<link rel="canonical" href="([^"]+)"`)},
	{"og:url", regexp.MustCompile(`<meta property="og:url" content="([^"]+)"`)},
	{"twitter:url", regexp.MustCompile(`<meta name="twitter:url" content="([^"]+)"`)},
	{"og:image", regexp.MustCompile(`<meta property="og:image" content="([^"]+)"`)},
	{"twitter:image", regexp.MustCompile(`<meta name="twitter:image" content="([^"]+)"`)},
}

// Engine applies a RuleSet to document text and verifies the result.
type Engine struct {
	rules  []Rule
	domain string
	marker string
}

// NewEngine returns an engine for rs. An empty marker selects
// DefaultResidualMarker.
func NewEngine(rs *RuleSet, marker string) *Engine {
	if marker == "" {
		marker = DefaultResidualMarker
	}
	return &Engine{rules: rs.rules, domain: rs.correct, marker: marker}
}

// Apply runs every rule in order over content. The returned Result reports a
// change only when the final text differs from the input, so running Apply on
// already-correct content is a no-op.
func (e *Engine) Apply(content string) Result {
	out := content
	var changes []Change
	for _, r := range e.rules {
		matches := r.re.FindAllString(out, -1)
		if len(matches) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(matches))
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			changes = append(changes, Change{Match: m, Replacement: e.domain})
		}
		out = r.re.ReplaceAllLiteralString(out, e.domain)
	}
	return Result{
		Content: out,
		Changed: out != content,
		Changes: changes,
	}
}

// Verify re-extracts the known URL-bearing metadata attributes and returns a
// warning for each one that still contains the residual marker.
func (e *Engine) Verify(content string) []string {
	var warnings []string
	for _, tc := range verifiedTags {
		m := tc.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if strings.Contains(m[1], e.marker) {
			warnings = append(warnings, fmt.Sprintf("%s still contains %s after fix attempt", tc.name, e.marker))
		}
	}
	return warnings
}
