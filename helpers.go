package seoblog

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds slugs. Truncation is applied last and is not
// re-trimmed, so a slug may end in a hyphen or a partial word.
const MaxSlugLength = 50

const wordsPerMinute = 200

var (
	reNonSlug = regexp.MustCompile(`[^a-z0-9]+`)
	reTag     = regexp.MustCompile(`<[^>]+>`)
)

// Slugify converts a title to a URL-safe ASCII slug: accents are folded,
// the text is lowercased, every run outside [a-z0-9] becomes one hyphen,
// edge hyphens are trimmed, and the result is cut to MaxSlugLength.
func Slugify(s string) string {
	s = strings.ToLower(foldASCII(s))
	s = reNonSlug.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLength {
		s = s[:MaxSlugLength]
	}
	return s
}

func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// DateKey formats t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// LongDate formats t as "January 02, 2006".
func LongDate(t time.Time) string {
	return t.Format("January 02, 2006")
}

// ReadTime estimates minutes to read content at 200 words per minute, with
// half-to-even rounding and a floor of one minute. Words are whitespace
// separated fields; markup is not stripped.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.RoundToEven(float64(words) / wordsPerMinute))
	return max(1, minutes)
}

// StripTags removes every <...> tag from s.
func StripTags(s string) string {
	return reTag.ReplaceAllString(s, "")
}

// Excerpt strips markup from content, takes the first budget characters and
// trims back to the last whitespace so no word is cut, then appends "...".
// The result can be noticeably shorter than budget.
func Excerpt(content string, budget int) string {
	text := []rune(StripTags(content))
	if len(text) > budget {
		text = text[:budget]
	}
	s := string(text)
	if i := strings.LastIndexFunc(s, unicode.IsSpace); i >= 0 {
		s = s[:i]
	}
	return s + "..."
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// BlogPostingJsonLD returns a Schema.org BlogPosting JSON-LD string.
func BlogPostingJsonLD(post PublishedPost, cfg SiteConfig) string {
	postURL := cfg.PostURL(post.Filename())
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.MetaDescription,
		"datePublished": DateKey(post.Date),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"author": map[string]string{
			"@type": "Organization",
			"name":  cfg.Author,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
			"url":   cfg.URL,
		},
	}
	if post.PhotoURL != "" {
		data["image"] = post.PhotoURL
	}
	if len(post.Tags) > 0 {
		data["keywords"] = JoinTags(post.Tags)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
