package seoblog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eringen/seoblog/internal/logger"
)

// ErrCollision is returned under the fail policy when the post file exists.
var ErrCollision = errors.New("publish: post file already exists")

// fallbackSlug is used when a title has no slug-safe characters.
const fallbackSlug = "post"

// Publisher runs the publishing pipeline: topic selection, content
// generation, rendering, file write, index update and bookkeeping.
type Publisher struct {
	site     SiteConfig
	catalog  *Catalog
	provider ContentProvider
	renderer *Renderer
	store    *Store
	feeds    bool
	rng      *rand.Rand
	now      func() time.Time
	log      logger.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithStore records published posts in the ledger.
func WithStore(s *Store) PublisherOption {
	return func(p *Publisher) { p.store = s }
}

// WithFeeds regenerates sitemap.xml and feed.xml in the content root after
// each publish. It needs a store.
func WithFeeds(enabled bool) PublisherOption {
	return func(p *Publisher) { p.feeds = enabled }
}

// WithRand sets the source for topic, feature and photo selection.
func WithRand(r *rand.Rand) PublisherOption {
	return func(p *Publisher) { p.rng = r }
}

// WithClock sets the time source for the publish date.
func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) { p.now = now }
}

// WithPublishLogger sets the diagnostic logger.
func WithPublishLogger(l logger.Logger) PublisherOption {
	return func(p *Publisher) { p.log = l }
}

// NewPublisher validates the site configuration and builds a Publisher.
func NewPublisher(site SiteConfig, catalog *Catalog, provider ContentProvider, opts ...PublisherOption) (*Publisher, error) {
	if catalog == nil {
		return nil, errors.New("publish: catalog is required")
	}
	if provider == nil {
		return nil, errors.New("publish: content provider is required")
	}
	site = site.WithDefaults()
	switch site.Collision {
	case CollisionFail, CollisionOverwrite, CollisionSuffix:
	default:
		return nil, fmt.Errorf("publish: unknown collision policy %q", site.Collision)
	}
	renderer, err := NewRenderer(site)
	if err != nil {
		return nil, err
	}
	p := &Publisher{
		site:     site,
		catalog:  catalog,
		provider: provider,
		renderer: renderer,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:      time.Now,
		log:      logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SelectTopic returns the override as a topic (keyword lowercased, default
// category) or a random catalog topic when override is blank.
func (p *Publisher) SelectTopic(override string) Topic {
	if strings.TrimSpace(override) != "" {
		return Topic{
			Topic:    override,
			Keyword:  strings.ToLower(override),
			Category: p.site.DefaultCategory,
		}
	}
	t := p.catalog.PickTopic(p.rng)
	if t.Category == "" {
		t.Category = p.site.DefaultCategory
	}
	return t
}

// Publish generates, renders and writes one article. Nothing is written
// unless the provider returned a complete, parsed post. Once the article
// file exists, later failures (index, ledger, feeds) return the result
// together with the error so callers can report the written path.
func (p *Publisher) Publish(ctx context.Context, topicOverride string) (*PublishResult, error) {
	topic := p.SelectTopic(topicOverride)
	free, premium := p.catalog.PickFeatures(p.rng)
	log := p.log.With(logger.String("topic", topic.Topic), logger.String("keyword", topic.Keyword))
	log.Info("generating article")

	gen, err := p.provider.Generate(ctx, ContentRequest{
		Topic:          topic.Topic,
		Keyword:        topic.Keyword,
		FreeFeature:    free,
		PremiumFeature: premium,
	})
	if err != nil {
		return nil, fmt.Errorf("publish: generate: %w", err)
	}
	if gen.Content, err = NormalizeContent(p.site.ContentFormat, gen.Content); err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}

	post := p.buildPost(gen, topic)
	path, err := p.resolvePath(&post)
	if err != nil {
		return nil, err
	}

	doc, err := p.renderer.Render(post)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	if err := os.MkdirAll(p.site.ContentRoot, 0o755); err != nil {
		return nil, fmt.Errorf("publish: create content root: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("publish: write %s: %w", path, err)
	}
	log.Info("article written", logger.String("path", path))

	result := &PublishResult{Post: post, Path: path}

	warning, err := p.renderer.UpdateIndex(filepath.Join(p.site.ContentRoot, "index.html"), post)
	if err != nil {
		return result, fmt.Errorf("publish: %w", err)
	}
	if warning != nil {
		log.Warn("index not updated", logger.String("reason", warning.Message))
		result.Warnings = append(result.Warnings, *warning)
	}

	if p.store != nil {
		if err := p.store.SavePost(EntryFor(post, p.now())); err != nil {
			return result, fmt.Errorf("publish: record ledger entry: %w", err)
		}
		if p.feeds {
			if err := p.writeFeeds(); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func (p *Publisher) buildPost(gen GeneratedPost, topic Topic) PublishedPost {
	if strings.TrimSpace(gen.Title) == "" {
		gen.Title = topic.Topic
	}
	slug := Slugify(gen.Title)
	if slug == "" {
		slug = fallbackSlug
	}
	now := p.now()
	return PublishedPost{
		GeneratedPost: gen,
		Slug:          slug,
		Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Keyword:       topic.Keyword,
		Category:      topic.Category,
		PhotoURL:      p.catalog.PhotoFor(p.rng, topic.Category),
	}
}

// resolvePath applies the collision policy, adjusting post.Slug under the
// suffix policy.
func (p *Publisher) resolvePath(post *PublishedPost) (string, error) {
	base := post.Slug
	for n := 2; ; n++ {
		path := filepath.Join(p.site.ContentRoot, post.Filename())
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("publish: stat %s: %w", path, err)
		}
		switch p.site.Collision {
		case CollisionOverwrite:
			p.log.Warn("overwriting existing post", logger.String("path", path))
			return path, nil
		case CollisionSuffix:
			post.Slug = fmt.Sprintf("%s-%d", base, n)
		default:
			return "", fmt.Errorf("%w: %s", ErrCollision, path)
		}
	}
}

func (p *Publisher) writeFeeds() error {
	entries, err := p.store.ListPosts()
	if err != nil {
		return fmt.Errorf("publish: list ledger: %w", err)
	}
	outputs := []struct {
		name  string
		write func(io.Writer, SiteConfig, []LedgerEntry) error
	}{
		{"sitemap.xml", WriteSitemap},
		{"feed.xml", WriteFeed},
	}
	for _, o := range outputs {
		path := filepath.Join(p.site.ContentRoot, o.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("publish: create %s: %w", path, err)
		}
		if err := o.write(f, p.site, entries); err != nil {
			f.Close()
			return fmt.Errorf("publish: write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("publish: close %s: %w", path, err)
		}
	}
	return nil
}

// WarningMessages renders each warning as "document: message".
func (r *PublishResult) WarningMessages() []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, w.String())
	}
	return out
}
