package seoblog

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeProvider struct {
	post GeneratedPost
	err  error
	reqs []ContentRequest
}

func (f *fakeProvider) Generate(_ context.Context, req ContentRequest) (GeneratedPost, error) {
	f.reqs = append(f.reqs, req)
	return f.post, f.err
}

var publishDay = time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

func testCatalog() *Catalog {
	return &Catalog{
		Topics:   []Topic{{Topic: "staying hydrated", Keyword: "hydration tips", Category: "Wellness"}},
		Features: Features{Free: []string{"water reminders"}, Premium: []string{"AI health assistant"}},
		Photos:   map[string][]string{"Wellness": {"https://images.example/w.jpg"}},
	}
}

func newTestPublisher(t *testing.T, site SiteConfig, prov ContentProvider, opts ...PublisherOption) *Publisher {
	t.Helper()
	opts = append([]PublisherOption{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return publishDay }),
	}, opts...)
	p, err := NewPublisher(site, testCatalog(), prov, opts...)
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}
	return p
}

func publishSite(t *testing.T) SiteConfig {
	t.Helper()
	site := testSite
	site.ContentRoot = filepath.Join(t.TempDir(), "blog")
	return site
}

func writeIndex(t *testing.T, site SiteConfig) string {
	t.Helper()
	if err := os.MkdirAll(site.ContentRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(site.ContentRoot, "index.html")
	if err := os.WriteFile(path, []byte(indexDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPublish(t *testing.T) {
	site := publishSite(t)
	index := writeIndex(t, site)
	store := setupTestStore(t)
	prov := &fakeProvider{post: samplePost().GeneratedPost}
	p := newTestPublisher(t, site, prov, WithStore(store), WithFeeds(true))

	res, err := p.Publish(context.Background(), "")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	wantPath := filepath.Join(site.ContentRoot, "2025-01-15-better-sleep-for-seniors.html")
	if res.Path != wantPath {
		t.Errorf("Path = %q, want %q", res.Path, wantPath)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if res.Post.Keyword != "hydration tips" || res.Post.Category != "Wellness" {
		t.Errorf("topic not applied: %+v", res.Post)
	}
	if res.Post.PhotoURL != "https://images.example/w.jpg" {
		t.Errorf("PhotoURL = %q", res.Post.PhotoURL)
	}
	if !res.Post.Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want start of day", res.Post.Date)
	}

	req := prov.reqs[0]
	if req.Topic != "staying hydrated" || req.FreeFeature != "water reminders" || req.PremiumFeature != "AI health assistant" {
		t.Errorf("request = %+v", req)
	}

	if _, err := os.Stat(wantPath); err != nil {
		t.Errorf("post not written: %v", err)
	}
	idx, _ := os.ReadFile(index)
	if !strings.Contains(string(idx), "2025-01-15-better-sleep-for-seniors.html") {
		t.Error("index not updated")
	}
	if _, err := store.GetPost("2025-01-15-better-sleep-for-seniors.html"); err != nil {
		t.Errorf("ledger entry missing: %v", err)
	}
	for _, name := range []string{"sitemap.xml", "feed.xml"} {
		data, err := os.ReadFile(filepath.Join(site.ContentRoot, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), "2025-01-15-better-sleep-for-seniors.html") {
			t.Errorf("%s does not list the post", name)
		}
	}
}

func TestPublishTopicOverride(t *testing.T) {
	site := publishSite(t)
	prov := &fakeProvider{post: GeneratedPost{Content: "<p>hi there</p>"}}
	p := newTestPublisher(t, site, prov)

	res, err := p.Publish(context.Background(), "Walking For Joint Health")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if prov.reqs[0].Keyword != "walking for joint health" {
		t.Errorf("Keyword = %q, want lowercased override", prov.reqs[0].Keyword)
	}
	if res.Post.Category != "Wellness" {
		t.Errorf("Category = %q, want default", res.Post.Category)
	}
	// Missing title falls back to the topic.
	if res.Post.Title != "Walking For Joint Health" || res.Post.Slug != "walking-for-joint-health" {
		t.Errorf("title/slug = %q/%q", res.Post.Title, res.Post.Slug)
	}
	// No index.html: a warning, not a failure.
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one missing-index warning", res.Warnings)
	}
}

func TestPublishEmptySlugFallback(t *testing.T) {
	site := publishSite(t)
	p := newTestPublisher(t, site, &fakeProvider{post: GeneratedPost{Title: "???"}})
	res, err := p.Publish(context.Background(), "")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.Post.Slug != "post" {
		t.Errorf("Slug = %q, want %q", res.Post.Slug, "post")
	}
}

func TestPublishProviderErrorWritesNothing(t *testing.T) {
	site := publishSite(t)
	index := writeIndex(t, site)
	boom := errors.New("rate limited")
	p := newTestPublisher(t, site, &fakeProvider{err: boom})

	if _, err := p.Publish(context.Background(), ""); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
	entries, _ := os.ReadDir(site.ContentRoot)
	if len(entries) != 1 {
		t.Errorf("content root has %d entries, want only index.html", len(entries))
	}
	if got, _ := os.ReadFile(index); string(got) != indexDoc {
		t.Error("index modified after provider failure")
	}
}

func TestPublishIndexFailureReturnsWrittenPost(t *testing.T) {
	site := publishSite(t)
	if err := os.MkdirAll(filepath.Join(site.ContentRoot, "index.html"), 0o755); err != nil {
		t.Fatal(err)
	}
	p := newTestPublisher(t, site, &fakeProvider{post: samplePost().GeneratedPost})

	res, err := p.Publish(context.Background(), "")
	if err == nil {
		t.Fatal("expected index error")
	}
	if res == nil {
		t.Fatal("result = nil, want the written post")
	}
	if _, statErr := os.Stat(res.Path); statErr != nil {
		t.Errorf("article %s not on disk: %v", res.Path, statErr)
	}
	if res.Post.Slug != "better-sleep-for-seniors" {
		t.Errorf("Slug = %q, want %q", res.Post.Slug, "better-sleep-for-seniors")
	}
}

func TestPublishCollisionPolicies(t *testing.T) {
	post := samplePost().GeneratedPost
	base := "2025-01-15-better-sleep-for-seniors"

	t.Run("fail", func(t *testing.T) {
		site := publishSite(t)
		p := newTestPublisher(t, site, &fakeProvider{post: post})
		if _, err := p.Publish(context.Background(), ""); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(site.ContentRoot, base+".html")
		first, _ := os.ReadFile(path)
		if _, err := p.Publish(context.Background(), ""); !errors.Is(err, ErrCollision) {
			t.Fatalf("err = %v, want ErrCollision", err)
		}
		if again, _ := os.ReadFile(path); string(again) != string(first) {
			t.Error("existing post modified under fail policy")
		}
	})

	t.Run("suffix", func(t *testing.T) {
		site := publishSite(t)
		site.Collision = CollisionSuffix
		p := newTestPublisher(t, site, &fakeProvider{post: post})
		var paths []string
		for i := 0; i < 3; i++ {
			res, err := p.Publish(context.Background(), "")
			if err != nil {
				t.Fatal(err)
			}
			paths = append(paths, filepath.Base(res.Path))
		}
		want := []string{base + ".html", base + "-2.html", base + "-3.html"}
		for i := range want {
			if paths[i] != want[i] {
				t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
			}
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		site := publishSite(t)
		site.Collision = CollisionOverwrite
		prov := &fakeProvider{post: post}
		p := newTestPublisher(t, site, prov)
		if _, err := p.Publish(context.Background(), ""); err != nil {
			t.Fatal(err)
		}
		prov.post.Content = "<p>second version</p>"
		res, err := p.Publish(context.Background(), "")
		if err != nil {
			t.Fatal(err)
		}
		got, _ := os.ReadFile(res.Path)
		if !strings.Contains(string(got), "second version") {
			t.Error("post not overwritten")
		}
	})
}

func TestPublishMarkdown(t *testing.T) {
	site := publishSite(t)
	site.ContentFormat = FormatMarkdown
	p := newTestPublisher(t, site, &fakeProvider{post: GeneratedPost{Title: "Md", Content: "## Heading\n\nBody text."}})
	res, err := p.Publish(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(res.Path)
	if !strings.Contains(string(got), "<h2>Heading</h2>") {
		t.Error("markdown content not converted")
	}
}

func TestNewPublisherValidation(t *testing.T) {
	if _, err := NewPublisher(testSite, nil, &fakeProvider{}); err == nil {
		t.Error("expected error for nil catalog")
	}
	if _, err := NewPublisher(testSite, testCatalog(), nil); err == nil {
		t.Error("expected error for nil provider")
	}
	site := testSite
	site.Collision = "rename"
	if _, err := NewPublisher(site, testCatalog(), &fakeProvider{}); err == nil {
		t.Error("expected error for unknown collision policy")
	}
}
