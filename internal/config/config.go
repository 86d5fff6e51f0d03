// Package config provides Viper-based configuration management for seoblog
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/eringen/seoblog"
	"github.com/eringen/seoblog/audit"
	"github.com/eringen/seoblog/rewrite"
)

// Config represents the complete seoblog configuration
type Config struct {
	Site    SiteSection    `mapstructure:"site"`
	Content ContentSection `mapstructure:"content"`
	Rewrite RewriteSection `mapstructure:"rewrite"`
	LLM     LLMSection     `mapstructure:"llm"`
	Ledger  LedgerSection  `mapstructure:"ledger"`
	Server  ServerSection  `mapstructure:"server"`
	Logging LoggingSection `mapstructure:"logging"`
	Output  OutputSection  `mapstructure:"output"`
}

// SiteSection describes the published site
type SiteSection struct {
	Name        string `mapstructure:"name"`
	URL         string `mapstructure:"url"`
	BlogPath    string `mapstructure:"blog_path"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`
	Website     string `mapstructure:"website"`
	Pitch       string `mapstructure:"pitch"`
}

// ContentSection controls where and how articles are written
type ContentSection struct {
	Root            string `mapstructure:"root"`
	IndexMarker     string `mapstructure:"index_marker"`
	Collision       string `mapstructure:"collision"`
	Format          string `mapstructure:"format"`
	ExcerptLength   int    `mapstructure:"excerpt_length"`
	DefaultCategory string `mapstructure:"default_category"`
	Catalog         string `mapstructure:"catalog"` // optional YAML overriding the embedded catalog
	Feeds           bool   `mapstructure:"feeds"`
}

// RewriteSection configures URL normalization and auditing
type RewriteSection struct {
	CorrectDomain  string   `mapstructure:"correct_domain"`
	WrongDomains   []string `mapstructure:"wrong_domains"` // literal, most specific first
	Patterns       []string `mapstructure:"patterns"`      // regular expressions; replace wrong_domains when set
	ResidualMarker string   `mapstructure:"residual_marker"`
	MaxTitleLength int      `mapstructure:"max_title_length"`
	Workers        int      `mapstructure:"workers"`
}

// LLMSection configures the content provider
type LLMSection struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// LedgerSection configures the publish ledger
type LedgerSection struct {
	Path string `mapstructure:"path"`
}

// ServerSection configures the preview server
type ServerSection struct {
	Addr string `mapstructure:"addr"`
}

// LoggingSection contains logging settings
type LoggingSection struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputSection contains output formatting settings
type OutputSection struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables. Keys map to
// SEOBLOG_ variables with dots replaced by underscores.
func Load(cfgFile string) (*Config, error) {
	return load(viper.New(), cfgFile)
}

// LoadWith is Load on a caller-owned viper instance, so command flags bound
// to it take precedence over file and environment values.
func LoadWith(v *viper.Viper, cfgFile string) (*Config, error) {
	return load(v, cfgFile)
}

func load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".seoblog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "seoblog"))
		}
	}

	v.SetEnvPrefix("SEOBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("site.name", "SteadiDay")
	v.SetDefault("site.url", rewrite.DefaultCorrectDomain)
	v.SetDefault("site.blog_path", "blog")
	v.SetDefault("site.description", "Practical health and wellness guides for older adults and caregivers.")
	v.SetDefault("site.pitch", "a mobile app designed to help older adults live healthier, more organized lives")

	v.SetDefault("content.root", "blog")
	v.SetDefault("content.index_marker", seoblog.DefaultIndexMarker)
	v.SetDefault("content.collision", seoblog.CollisionFail)
	v.SetDefault("content.format", seoblog.FormatHTML)
	v.SetDefault("content.excerpt_length", 250)
	v.SetDefault("content.default_category", "Wellness")
	v.SetDefault("content.feeds", true)

	v.SetDefault("rewrite.correct_domain", rewrite.DefaultCorrectDomain)
	v.SetDefault("rewrite.wrong_domains", rewrite.DefaultWrongDomains)
	v.SetDefault("rewrite.residual_marker", rewrite.DefaultResidualMarker)
	v.SetDefault("rewrite.max_title_length", audit.DefaultMaxTitleLength)
	v.SetDefault("rewrite.workers", 1)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.max_tokens", 3000)

	v.SetDefault("ledger.path", filepath.Join("data", "seoblog.db"))
	v.SetDefault("server.addr", seoblog.DefaultAddr)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("output.colors", true)
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	switch cfg.Content.Collision {
	case seoblog.CollisionFail, seoblog.CollisionOverwrite, seoblog.CollisionSuffix:
	default:
		return fmt.Errorf("invalid content.collision: %s (must be fail, overwrite, or suffix)", cfg.Content.Collision)
	}

	switch cfg.Content.Format {
	case seoblog.FormatHTML, seoblog.FormatMarkdown:
	default:
		return fmt.Errorf("invalid content.format: %s (must be html or markdown)", cfg.Content.Format)
	}

	switch cfg.LLM.Provider {
	case "openai", "mock":
	default:
		return fmt.Errorf("invalid llm.provider: %s (must be openai or mock)", cfg.LLM.Provider)
	}

	if cfg.Rewrite.CorrectDomain == "" {
		return fmt.Errorf("rewrite.correct_domain is required")
	}
	if _, err := cfg.RuleSet(); err != nil {
		return err
	}
	if cfg.Rewrite.MaxTitleLength <= 0 {
		return fmt.Errorf("invalid rewrite.max_title_length: %d", cfg.Rewrite.MaxTitleLength)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}
	return nil
}

// SiteConfig returns the settings shared by the renderer and publisher.
func (c *Config) SiteConfig() seoblog.SiteConfig {
	return seoblog.SiteConfig{
		Name:            c.Site.Name,
		URL:             c.Site.URL,
		BlogPath:        c.Site.BlogPath,
		Description:     c.Site.Description,
		Author:          c.Site.Author,
		Website:         c.Site.Website,
		ContentRoot:     c.Content.Root,
		IndexMarker:     c.Content.IndexMarker,
		Collision:       c.Content.Collision,
		ContentFormat:   c.Content.Format,
		ExcerptLength:   c.Content.ExcerptLength,
		DefaultCategory: c.Content.DefaultCategory,
	}.WithDefaults()
}

// RuleSet builds the validated rewrite rules. Regex patterns win over
// literal wrong domains when both are configured.
func (c *Config) RuleSet() (*rewrite.RuleSet, error) {
	if len(c.Rewrite.Patterns) > 0 {
		return rewrite.NewRuleSet(c.Rewrite.CorrectDomain, c.Rewrite.Patterns...)
	}
	return rewrite.LiteralRuleSet(c.Rewrite.CorrectDomain, c.Rewrite.WrongDomains...)
}

// Engine builds the rewrite engine.
func (c *Config) Engine() (*rewrite.Engine, error) {
	rs, err := c.RuleSet()
	if err != nil {
		return nil, err
	}
	return rewrite.NewEngine(rs, c.Rewrite.ResidualMarker), nil
}

// Auditor builds the title auditor for the site brand.
func (c *Config) Auditor() *audit.TitleAuditor {
	return audit.NewTitleAuditor(c.Site.Name, c.Rewrite.MaxTitleLength)
}
