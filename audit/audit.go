// Package audit checks SEO title lengths in rendered articles and defines the
// advisory Warning record shared by the scanner and the publisher.
package audit

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// DefaultMaxTitleLength is the SEO budget for <title> and og:title.
const DefaultMaxTitleLength = 60

const previewLength = 50

var (
	reTitle   = regexp.MustCompile(`<title>([^<]+)</title>`)
	reOGTitle = regexp.MustCompile(`<meta property="og:title" content="([^"]+)"`)
)

// Warning is an informational finding attributed to one document. Warnings
// never stop processing; they are collected for the final report.
type Warning struct {
	Document string
	Message  string
}

func (w Warning) String() string {
	return w.Document + ": " + w.Message
}

// TitleAuditor measures document titles against a length budget.
type TitleAuditor struct {
	max    int
	suffix *regexp.Regexp
}

// NewTitleAuditor returns an auditor that strips a brand suffix from <title>
// before measuring: a "-" or "|" separator, the brand token, then anything,
// or the bare brand as the final word. A brand named inside the title is
// kept. A max of zero selects DefaultMaxTitleLength.
func NewTitleAuditor(brand string, max int) *TitleAuditor {
	if max <= 0 {
		max = DefaultMaxTitleLength
	}
	a := &TitleAuditor{max: max}
	if brand != "" {
		b := regexp.QuoteMeta(brand)
		a.suffix = regexp.MustCompile(`\s*[-|]\s*` + b + `.*$|\s+` + b + `\s*$`)
	}
	return a
}

// Max returns the configured length budget.
func (a *TitleAuditor) Max() int {
	return a.max
}

// CleanTitle removes the brand suffix from a raw <title> value.
func (a *TitleAuditor) CleanTitle(title string) string {
	if a.suffix == nil {
		return title
	}
	return a.suffix.ReplaceAllString(title, "")
}

// Check returns warning messages for content. Only the first <title> and
// og:title are inspected; missing tags produce nothing. og:title is measured
// raw, without suffix stripping.
func (a *TitleAuditor) Check(content string) []string {
	var warnings []string

	if m := reTitle.FindStringSubmatch(content); m != nil {
		clean := a.CleanTitle(m[1])
		if n := utf8.RuneCountInString(clean); n > a.max {
			warnings = append(warnings, fmt.Sprintf("Title too long (%d chars): \"%s...\"", n, truncateRunes(clean, previewLength)))
		}
	}

	if m := reOGTitle.FindStringSubmatch(content); m != nil {
		if n := utf8.RuneCountInString(m[1]); n > a.max {
			warnings = append(warnings, fmt.Sprintf("og:title too long (%d chars)", n))
		}
	}

	return warnings
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
