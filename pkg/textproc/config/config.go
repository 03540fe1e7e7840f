package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textproc/pkg/textproc/internalerr"
	"github.com/cognicore/textproc/pkg/textproc/tagging/dict"
	"github.com/cognicore/textproc/pkg/textproc/tokenize"
)

// Config is the YAML configuration of a tagging run
type Config struct {
	Tokenizer       string       `yaml:"tokenizer"`
	TokenizerCache  CacheConfig  `yaml:"tokenizer_cache"`
	SetUnmodifiable bool         `yaml:"set_unmodifiable"`
	Workers         int          `yaml:"workers"`
	Lexicon         string       `yaml:"lexicon"`
	Stoplist        string       `yaml:"stoplist"`
	Store           string       `yaml:"store"`
	Dictionaries    []Dictionary `yaml:"dictionaries"`

	// baseDir resolves relative paths; it is the directory of the loaded file
	baseDir string
}

// CacheConfig configures the entity tokenization cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Cleanup time.Duration `yaml:"cleanup"`
}

// Dictionary is one dictionary given inline or through an entities file
type Dictionary struct {
	Name          string   `yaml:"name"`
	TagType       string   `yaml:"tag_type"`
	TagValue      string   `yaml:"tag_value"`
	CaseSensitive bool     `yaml:"case_sensitive"`
	ExactMatch    bool     `yaml:"exact_match"`
	Matcher       string   `yaml:"matcher"`
	Entities      []string `yaml:"entities"`
	EntitiesFile  string   `yaml:"entities_file"`
}

// UnmarshalYAML defaults exact_match to true when it is omitted
func (d *Dictionary) UnmarshalYAML(node *yaml.Node) error {
	type plain Dictionary
	p := plain{ExactMatch: true}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = Dictionary(p)
	return nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Tokenizer: tokenize.DefaultName,
		TokenizerCache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
			Cleanup: 20 * time.Minute,
		},
		SetUnmodifiable: true,
		Workers:         4,
	}
}

// Load reads a YAML config file on top of Default. Relative paths in the
// file are resolved against the file's directory.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes and validates YAML config data
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.TokenizerCache.Enabled && c.TokenizerCache.TTL <= 0 {
		return fmt.Errorf("%w: tokenizer_cache.ttl must be positive", internalerr.ErrInvalidConfig)
	}

	names := make(map[string]bool, len(c.Dictionaries))
	for i, d := range c.Dictionaries {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("%w: dictionaries[%d]: name is required", internalerr.ErrInvalidConfig, i)
		}
		if names[d.Name] {
			return fmt.Errorf("%w: duplicate dictionary %q", internalerr.ErrInvalidConfig, d.Name)
		}
		names[d.Name] = true
		if strings.TrimSpace(d.TagType) == "" || strings.TrimSpace(d.TagValue) == "" {
			return fmt.Errorf("%w: dictionary %q needs tag_type and tag_value", internalerr.ErrInvalidConfig, d.Name)
		}
	}
	return nil
}

// Path resolves p against the directory of the config file
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// DictionaryConfigurations turns the configured dictionaries into
// dictionary tagger configurations, reading entity files as needed.
func (c *Config) DictionaryConfigurations() ([]dict.Configuration, error) {
	out := make([]dict.Configuration, 0, len(c.Dictionaries))
	for _, d := range c.Dictionaries {
		entities := append([]string(nil), d.Entities...)
		if d.EntitiesFile != "" {
			fromFile, err := LoadEntities(c.Path(d.EntitiesFile))
			if err != nil {
				return nil, fmt.Errorf("dictionary %q: %w", d.Name, err)
			}
			entities = append(entities, fromFile...)
		}
		out = append(out, dict.Configuration{
			Name:          d.Name,
			TagType:       d.TagType,
			TagValue:      d.TagValue,
			CaseSensitive: d.CaseSensitive,
			ExactMatch:    d.ExactMatch,
			Matcher:       d.Matcher,
			Entities:      entities,
		})
	}
	return out, nil
}

// LoadEntities reads one entity per line. Blank lines and lines starting
// with # are skipped.
func LoadEntities(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadEntities(f)
}

// ReadEntities is LoadEntities for an open reader.
func ReadEntities(r io.Reader) ([]string, error) {
	var entities []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entities = append(entities, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}
