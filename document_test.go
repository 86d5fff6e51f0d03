package seoblog

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/eringen/seoblog/audit"
	"github.com/eringen/seoblog/rewrite"
)

var testSite = SiteConfig{
	Name:    "SteadiDay",
	URL:     "https://www.steadiday.com",
	Website: "https://www.steadiday.com",
}

func samplePost() PublishedPost {
	return PublishedPost{
		GeneratedPost: GeneratedPost{
			Title:           "Better Sleep for Seniors",
			MetaDescription: "Simple habits for deeper rest.",
			Tags:            []string{"sleep", "rest", "habits"},
			Content:         "<h2>Why sleep matters</h2><p>Rest helps memory and mood every single day.</p>",
		},
		Slug:     "better-sleep-for-seniors",
		Date:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Keyword:  "sleep for seniors",
		Category: "Wellness",
		PhotoURL: "https://images.unsplash.com/photo-1?w=1200",
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(testSite)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRenderDocument(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.Render(samplePost())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	canonical := "https://www.steadiday.com/blog/2025-01-15-better-sleep-for-seniors.html"
	checks := []struct {
		selector, attr, want string
	}{
		{`link[rel="canonical"]`, "href", canonical},
		{`meta[property="og:url"]`, "content", canonical},
		{`meta[name="twitter:url"]`, "content", canonical},
		{`meta[property="og:image"]`, "content", "https://images.unsplash.com/photo-1?w=1200"},
		{`meta[property="og:title"]`, "content", "Better Sleep for Seniors"},
		{`meta[name="description"]`, "content", "Simple habits for deeper rest."},
		{`meta[name="keywords"]`, "content", "sleep, rest, habits"},
		{`meta[name="author"]`, "content", "SteadiDay Team"},
		{`meta[property="article:published_time"]`, "content", "2025-01-15"},
	}
	for _, c := range checks {
		got, ok := doc.Find(c.selector).Attr(c.attr)
		if !ok {
			t.Errorf("%s missing", c.selector)
			continue
		}
		if got != c.want {
			t.Errorf("%s %s = %q, want %q", c.selector, c.attr, got, c.want)
		}
	}

	if got := doc.Find("title").Text(); got != "Better Sleep for Seniors - SteadiDay Blog" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Find("h1").Text(); got != "Better Sleep for Seniors" {
		t.Errorf("h1 = %q", got)
	}
	if got := doc.Find(".article-content h2").First().Text(); got != "Why sleep matters" {
		t.Errorf("content not embedded verbatim, h2 = %q", got)
	}
	if got := doc.Find(".article-meta").Text(); got != "January 15, 2025 • By SteadiDay Team • 1 min read" {
		t.Errorf("meta = %q", got)
	}
	if !strings.Contains(doc.Find("footer").Text(), "2025 SteadiDay") {
		t.Errorf("footer = %q", doc.Find("footer").Text())
	}
	jsonld := doc.Find(`script[type="application/ld+json"]`).Text()
	if !strings.Contains(jsonld, `"@type":"BlogPosting"`) || !strings.Contains(jsonld, canonical) {
		t.Errorf("json-ld = %s", jsonld)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	a, _ := r.Render(samplePost())
	b, _ := r.Render(samplePost())
	if a != b {
		t.Error("Render output differs between identical calls")
	}
}

// A freshly rendered post needs no URL fixes and passes the title audit.
func TestRenderedDocumentIsClean(t *testing.T) {
	r := newTestRenderer(t)
	html, _ := r.Render(samplePost())

	rs, err := rewrite.LiteralRuleSet(rewrite.DefaultCorrectDomain, rewrite.DefaultWrongDomains...)
	if err != nil {
		t.Fatal(err)
	}
	engine := rewrite.NewEngine(rs, rewrite.DefaultResidualMarker)
	if res := engine.Apply(html); res.Changed {
		t.Errorf("rendered document needed fixes: %v", res.Changes)
	}
	if w := engine.Verify(html); len(w) != 0 {
		t.Errorf("Verify = %v", w)
	}
	if w := audit.NewTitleAuditor("SteadiDay", audit.DefaultMaxTitleLength).Check(html); len(w) != 0 {
		t.Errorf("title audit = %v", w)
	}
}

func TestCard(t *testing.T) {
	r := newTestRenderer(t)
	card, err := r.Card(samplePost())
	if err != nil {
		t.Fatalf("Card: %v", err)
	}
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(card))
	if href, _ := doc.Find("h2 a").Attr("href"); href != "2025-01-15-better-sleep-for-seniors.html" {
		t.Errorf("card link = %q", href)
	}
	if got := doc.Find(".blog-tag").Text(); got != "Wellness" {
		t.Errorf("tag = %q", got)
	}
	if got := doc.Find(".blog-excerpt").Text(); got != "Why sleep mattersRest helps memory and mood every single..." {
		t.Errorf("excerpt = %q", got)
	}
}
