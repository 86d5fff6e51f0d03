package seoblog

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"

	"gopkg.in/yaml.v3"
)

// Features lists product features the writer is asked to mention.
type Features struct {
	Free    []string `yaml:"free"`
	Premium []string `yaml:"premium"`
}

// Catalog holds the static topic, feature and photo lookup tables. It is
// read once and never mutated.
type Catalog struct {
	Topics   []Topic             `yaml:"topics"`
	Features Features            `yaml:"features"`
	Photos   map[string][]string `yaml:"photos"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	data, err := fs.ReadFile(EmbeddedAssets, "embedded/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and checks it has something to pick.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(c.Topics) == 0 {
		return nil, errors.New("catalog: no topics")
	}
	for i, t := range c.Topics {
		if t.Topic == "" || t.Keyword == "" {
			return nil, fmt.Errorf("catalog: topic %d needs topic and keyword", i)
		}
	}
	return &c, nil
}

// PickTopic returns a uniformly random topic.
func (c *Catalog) PickTopic(rng *rand.Rand) Topic {
	return c.Topics[rng.IntN(len(c.Topics))]
}

// PickFeatures returns one random free and one random premium feature.
// Either may be empty if its list is.
func (c *Catalog) PickFeatures(rng *rand.Rand) (free, premium string) {
	return pick(rng, c.Features.Free), pick(rng, c.Features.Premium)
}

// PhotoFor returns a random stock photo for category, or "" when the table
// has none.
func (c *Catalog) PhotoFor(rng *rand.Rand, category string) string {
	return pick(rng, c.Photos[category])
}

func pick(rng *rand.Rand, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rng.IntN(len(items))]
}
