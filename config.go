package seoblog

import (
	"strings"
)

// Collision policies for a post whose file already exists.
const (
	CollisionFail      = "fail"
	CollisionOverwrite = "overwrite"
	CollisionSuffix    = "suffix"
)

// DefaultIndexMarker is the splice point for new cards in index.html.
const DefaultIndexMarker = "<!--BLOG_ENTRIES_START-->"

// SiteConfig holds the immutable site settings shared by the renderer, the
// index updater and the publisher.
type SiteConfig struct {
	Name        string // Brand name, also the title suffix token (default "Blog")
	URL         string // Canonical domain (default "http://localhost:3000")
	BlogPath    string // URL path segment of the corpus (default "blog")
	Description string // Site description for RSS
	Author      string // Byline author (default Name + " Team")
	Website     string // Call-to-action target (default URL)

	ContentRoot     string // Corpus directory on disk (default "blog")
	IndexMarker     string // Index splice marker (default DefaultIndexMarker)
	Collision       string // fail, overwrite or suffix (default fail)
	ContentFormat   string // html or markdown (default html)
	ExcerptLength   int    // Card excerpt budget in characters (default 250)
	DefaultCategory string // Category for topic overrides (default "Wellness")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	c.BlogPath = strings.Trim(c.BlogPath, "/")
	if c.BlogPath == "" {
		c.BlogPath = "blog"
	}
	if c.Author == "" {
		c.Author = c.Name + " Team"
	}
	if c.Website == "" {
		c.Website = c.URL
	}
	if c.ContentRoot == "" {
		c.ContentRoot = "blog"
	}
	if c.IndexMarker == "" {
		c.IndexMarker = DefaultIndexMarker
	}
	if c.Collision == "" {
		c.Collision = CollisionFail
	}
	if c.ContentFormat == "" {
		c.ContentFormat = "html"
	}
	if c.ExcerptLength <= 0 {
		c.ExcerptLength = 250
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = "Wellness"
	}
}

// WithDefaults returns a copy of c with every unset field defaulted.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}

// PostURL returns the canonical URL of a post file.
func (c SiteConfig) PostURL(filename string) string {
	return c.URL + "/" + c.BlogPath + "/" + filename
}
