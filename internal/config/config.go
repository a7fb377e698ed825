// Package config provides configuration loading and structs for the fidel server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Search  SearchConfig  `yaml:"search"`
	Display DisplayConfig `yaml:"display"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds the source documents and cache locations. Lexicon and
// verse-index sources may be filesystem paths or http(s) URLs.
type DataConfig struct {
	LexiconSource    string `yaml:"lexicon_source"`
	VerseIndexSource string `yaml:"verse_index_source"`
	// CachePath is the SQLite cache database; empty disables the cache.
	CachePath string `yaml:"cache_path"`
	// ChaptersDir holds the site's chapter pages, used by the index builder.
	ChaptersDir  string `yaml:"chapters_dir"`
	ChapterCount int    `yaml:"chapter_count"`
	// ChapterExt is the page extension used when constructing verse links.
	ChapterExt string `yaml:"chapter_ext"`
}

// SearchConfig holds query engine settings.
type SearchConfig struct {
	MinQueryLength  int `yaml:"min_query_length"`
	WordMatchLimit  int `yaml:"word_match_limit"`
	VerseMatchLimit int `yaml:"verse_match_limit"`
	// DebounceMS is the trailing window for coalescing bursts of queries.
	DebounceMS int `yaml:"debounce_ms"`
	// Fuzzy enables the typo-tolerant verse retry when exact passes match
	// nothing. Defaults to true when unset.
	Fuzzy          *bool `yaml:"fuzzy"`
	Fuzziness      int   `yaml:"fuzziness"`
	MaxSuggestions int   `yaml:"max_suggestions"`
}

// FuzzyOrDefault returns whether the fuzzy retry is enabled; defaults to true.
func (s *SearchConfig) FuzzyOrDefault() bool {
	if s.Fuzzy != nil {
		return *s.Fuzzy
	}
	return true
}

// DisplayConfig is the presentation policy for interlinear definitions.
type DisplayConfig struct {
	// DefinitionMaxLen caps displayed definitions, in runes. 0 disables.
	DefinitionMaxLen int `yaml:"definition_max_len"`
	// StripParticles drops leading particles before truncating. Defaults to
	// true when unset.
	StripParticles *bool `yaml:"strip_particles"`
	// Particles overrides the default particle list.
	Particles []string `yaml:"particles"`
}

// StripParticlesOrDefault returns whether particle stripping is enabled.
func (d *DisplayConfig) StripParticlesOrDefault() bool {
	if d.StripParticles != nil {
		return *d.StripParticles
	}
	return true
}

// WatchConfig controls reloading when source data files change on disk.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Data.LexiconSource = expandPath(cfg.Data.LexiconSource, configDir)
	cfg.Data.VerseIndexSource = expandPath(cfg.Data.VerseIndexSource, configDir)
	cfg.Data.CachePath = expandPath(cfg.Data.CachePath, configDir)
	cfg.Data.ChaptersDir = expandPath(cfg.Data.ChaptersDir, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. URLs and absolute paths pass
// through; paths starting with "./" are relative to configDir; other relative
// paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) ||
		strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
