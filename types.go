package seoblog

import (
	"context"
	"time"

	"github.com/eringen/seoblog/audit"
)

// GeneratedPost is the structured article returned by a content provider.
// It only lives for the duration of one publishing run.
type GeneratedPost struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Tags            []string `json:"tags"`
	Content         string   `json:"content"` // HTML fragment, trusted as-is
}

// PublishedPost is a generated post plus everything derived while publishing.
type PublishedPost struct {
	GeneratedPost
	Slug     string
	Date     time.Time
	Keyword  string
	Category string
	PhotoURL string
}

// ID is the post identity: date key, hyphen, slug.
func (p PublishedPost) ID() string {
	return DateKey(p.Date) + "-" + p.Slug
}

// Filename is the corpus file name for the post.
func (p PublishedPost) Filename() string {
	return p.ID() + ".html"
}

// Topic is one entry of the SEO topic table.
type Topic struct {
	Topic    string `yaml:"topic"`
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// ContentRequest is what the publisher asks a content provider to write.
type ContentRequest struct {
	Topic          string
	Keyword        string
	FreeFeature    string
	PremiumFeature string
}

// ContentProvider writes an article for a topic. Implementations block until
// the full response is parsed; any error aborts publishing before a file is
// written.
type ContentProvider interface {
	Generate(ctx context.Context, req ContentRequest) (GeneratedPost, error)
}

// PublishResult describes a completed publishing run.
type PublishResult struct {
	Post     PublishedPost
	Path     string
	Warnings []audit.Warning
}
