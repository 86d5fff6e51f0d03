package seoblog

import (
	"bytes"
	"fmt"
	"text/template"
)

// Renderer turns published posts into complete HTML documents and index
// cards using the embedded templates.
//
// Fields are substituted verbatim. Provider output is trusted to already be
// safe HTML; nothing is escaped or sanitized here.
type Renderer struct {
	site SiteConfig
	post *template.Template
	card *template.Template
}

type documentData struct {
	Post         PublishedPost
	Site         SiteConfig
	Filename     string
	CanonicalURL string
	Keywords     string
	DateKey      string
	LongDate     string
	ReadTime     int
	Year         int
	JSONLD       string
	Excerpt      string
}

// NewRenderer parses the embedded templates.
func NewRenderer(site SiteConfig) (*Renderer, error) {
	post, err := template.ParseFS(EmbeddedAssets, "embedded/post.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("renderer: parse post template: %w", err)
	}
	card, err := template.ParseFS(EmbeddedAssets, "embedded/card.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("renderer: parse card template: %w", err)
	}
	return &Renderer{site: site.WithDefaults(), post: post, card: card}, nil
}

func (r *Renderer) data(p PublishedPost) documentData {
	return documentData{
		Post:         p,
		Site:         r.site,
		Filename:     p.Filename(),
		CanonicalURL: r.site.PostURL(p.Filename()),
		Keywords:     JoinTags(p.Tags),
		DateKey:      DateKey(p.Date),
		LongDate:     LongDate(p.Date),
		ReadTime:     ReadTime(p.Content),
		Year:         p.Date.Year(),
		JSONLD:       BlogPostingJsonLD(p, r.site),
		Excerpt:      Excerpt(p.Content, r.site.ExcerptLength),
	}
}

// Render produces the full article document. Output depends only on the
// post and the site configuration.
func (r *Renderer) Render(p PublishedPost) (string, error) {
	var buf bytes.Buffer
	if err := r.post.Execute(&buf, r.data(p)); err != nil {
		return "", fmt.Errorf("renderer: render %s: %w", p.Filename(), err)
	}
	return buf.String(), nil
}

// Card produces the index summary card for p.
func (r *Renderer) Card(p PublishedPost) (string, error) {
	var buf bytes.Buffer
	if err := r.card.Execute(&buf, r.data(p)); err != nil {
		return "", fmt.Errorf("renderer: render card %s: %w", p.Filename(), err)
	}
	return buf.String(), nil
}
