package tables

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yml
var defaultFS embed.FS

// Cache loads and holds the static data tables: scoring weights,
// tracked athletes and feed sources. Files in the configured directory
// override the embedded defaults; a missing file falls back silently.
type Cache struct {
	dir      string
	scoring  *Scoring
	athletes []Athlete
	feeds    []Feed
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) Run() error {
	var scoring Scoring
	if err := c.load("scoring.yml", &scoring); err != nil {
		return err
	}
	if err := validateScoring(&scoring); err != nil {
		return fmt.Errorf("invalid scoring tables: %w", err)
	}
	c.scoring = &scoring

	var athletes Athletes
	if err := c.load("athletes.yml", &athletes); err != nil {
		return err
	}
	if err := validateAthletes(athletes.Athletes); err != nil {
		return fmt.Errorf("invalid athletes table: %w", err)
	}
	c.athletes = athletes.Athletes

	var feeds Feeds
	if err := c.load("feeds.yml", &feeds); err != nil {
		return err
	}
	if err := validateFeeds(feeds.Feeds); err != nil {
		return fmt.Errorf("invalid feeds table: %w", err)
	}
	c.feeds = feeds.Feeds

	slog.Debug("Data tables loaded",
		"athletes", len(c.athletes),
		"feeds", len(c.feeds),
		"rivalries", len(c.scoring.Rivalries),
		"eras", len(c.scoring.Eras))

	return nil
}

func (c *Cache) Scoring() *Scoring   { return c.scoring }
func (c *Cache) Athletes() []Athlete { return c.athletes }
func (c *Cache) Feeds() []Feed       { return c.feeds }

func (c *Cache) load(name string, out interface{}) error {
	data, err := c.read(name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (c *Cache) read(name string) ([]byte, error) {
	if c.dir != "" {
		path := filepath.Join(c.dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			slog.Debug("Table loaded from override directory", "file", path)
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	data, err := defaultFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, fmt.Errorf("missing embedded default for %s: %w", name, err)
	}
	return data, nil
}

func validateScoring(s *Scoring) error {
	for i, era := range s.Eras {
		if era.Min == nil && era.Max == nil {
			return fmt.Errorf("era range at index %d has no bounds", i)
		}
		if era.Min != nil && era.Max != nil && *era.Min > *era.Max {
			return fmt.Errorf("era range at index %d has min > max", i)
		}
		if era.Bonus <= 0 {
			return fmt.Errorf("era range at index %d must have a positive bonus", i)
		}
	}
	return nil
}

func validateAthletes(athletes []Athlete) error {
	for i, a := range athletes {
		if a.Name == "" {
			return fmt.Errorf("athlete at index %d has no name", i)
		}
		if a.Handle == "" {
			return fmt.Errorf("athlete at index %d has no handle", i)
		}
	}
	return nil
}

func validateFeeds(feeds []Feed) error {
	for i, f := range feeds {
		if f.Name == "" {
			return fmt.Errorf("feed at index %d has no name", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed at index %d has no URL", i)
		}
		if f.Weight < 0 {
			return fmt.Errorf("feed at index %d has a negative weight", i)
		}
	}
	return nil
}
