package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/seoblog"
	"github.com/eringen/seoblog/ciexport"
	"github.com/eringen/seoblog/provider"
)

func (a *app) publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [topic]",
		Short: "Generate and publish one article",
		Long: `Generate one article with the configured content provider, write it to the
corpus as {date}-{slug}.html and add a card to the blog index.

Without a topic a random entry of the SEO topic catalog is used. The title,
slug and date are exported to $GITHUB_ENV for later workflow steps.`,
		Args: cobra.ArbitraryArgs,
		RunE: a.runPublish,
	}
	cmd.Flags().String("collision", "", "existing file policy: fail, overwrite, or suffix")
	cmd.Flags().String("provider", "", "content provider: openai or mock")
	_ = a.v.BindPFlag("content.collision", cmd.Flags().Lookup("collision"))
	_ = a.v.BindPFlag("llm.provider", cmd.Flags().Lookup("provider"))
	return cmd
}

func (a *app) runPublish(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	site := a.cfg.SiteConfig()

	catalog, err := a.catalog()
	if err != nil {
		return err
	}
	prov, err := a.contentProvider()
	if err != nil {
		return err
	}
	store, err := a.openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	pub, err := seoblog.NewPublisher(site, catalog, prov,
		seoblog.WithStore(store),
		seoblog.WithFeeds(a.cfg.Content.Feeds),
		seoblog.WithPublishLogger(a.log),
	)
	if err != nil {
		return err
	}

	a.printer.Print("🚀 Starting %s Blog Generator...", site.Name)
	a.printer.Print("📅 Date: %s", seoblog.DateKey(time.Now()))
	if topic != "" {
		a.printer.Print("📝 Using custom topic: %s", topic)
	} else {
		a.printer.Print("🎲 Selecting random SEO topic...")
	}
	a.printer.Print("✨ Generating blog content with %s...", a.cfg.LLM.Provider)

	res, err := pub.Publish(cmd.Context(), topic)
	if res == nil {
		return err
	}
	a.printer.Published(res)
	if exportErr := exportPost(a.stdout, res); exportErr != nil && err == nil {
		err = exportErr
	}
	if err != nil {
		a.printer.Warning("%s was written but publishing did not complete", res.Path)
		return err
	}
	a.printer.Success("Blog draft generated successfully!")
	return nil
}

// exportPost hands the post identity to later CI steps.
func exportPost(out io.Writer, res *seoblog.PublishResult) error {
	env := ciexport.FromEnv(out)
	for _, kv := range [][2]string{
		{"BLOG_TITLE", res.Post.Title},
		{"BLOG_SLUG", res.Post.Slug},
		{"BLOG_DATE", seoblog.DateKey(res.Post.Date)},
	} {
		if err := env.Set(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) catalog() (*seoblog.Catalog, error) {
	if a.cfg.Content.Catalog == "" {
		return seoblog.DefaultCatalog()
	}
	data, err := os.ReadFile(a.cfg.Content.Catalog)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return seoblog.ParseCatalog(data)
}

func (a *app) contentProvider() (seoblog.ContentProvider, error) {
	if a.cfg.LLM.Provider == "mock" {
		return &provider.Mock{}, nil
	}
	return provider.NewOpenAI(provider.Settings{
		APIKey:    a.cfg.LLM.APIKey,
		BaseURL:   a.cfg.LLM.BaseURL,
		Model:     a.cfg.LLM.Model,
		MaxTokens: a.cfg.LLM.MaxTokens,
		Brand: provider.Brand{
			Name:    a.cfg.Site.Name,
			Website: websiteHost(a.cfg.SiteConfig().Website),
			Pitch:   a.cfg.Site.Pitch,
		},
	})
}

// websiteHost drops the scheme and www prefix for use in prose.
func websiteHost(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimRight(u, "/")
}
