// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/geojson/pkg/jsontree"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultOutDir is used when the configuration does not set out_dir.
const DefaultOutDir = "documents"

// Errors returned by Validate.
var (
	ErrNoSource       = errors.New("document has no source")
	ErrManySources    = errors.New("document has more than one source")
	ErrInvalidName    = errors.New("invalid document name")
	ErrDuplicateName  = errors.New("duplicate document name or alias")
	ErrUnknownDocName = errors.New("document not found in configuration")
)

// Config represents the root configuration file structure.
type Config struct {
	OutDir    string     `yaml:"out_dir,omitempty" json:"-"`
	Documents []Document `yaml:"documents" json:"documents"`
}

// Document is a single GeoJSON document with exactly one source.
type Document struct {
	// defining GeoJSON directly in config.yaml
	Inline *jsontree.Value `yaml:"inline,omitempty" json:"-"`

	Name    string   `yaml:"name" json:"name"`
	URL     string   `yaml:"url,omitempty" json:"-"`
	Path    string   `yaml:"path,omitempty" json:"-"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Source describes where the document comes from, for logging.
func (d Document) Source() string {
	switch {
	case d.Inline != nil:
		return "inline"
	case d.URL != "":
		return d.URL
	default:
		return d.Path
	}
}

// OutputFile returns the path of the normalized document under dir.
func (d Document) OutputFile(dir string) string {
	return filepath.Join(dir, d.Name+".geojson")
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid document at once.
func (c *Config) Validate() error {
	var errs error
	seen := make(map[string]string)

	claim := func(key, owner string) {
		if prev, ok := seen[key]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateName, key, prev, owner))
			return
		}
		seen[key] = owner
	}

	for i, d := range c.Documents {
		if !validName(d.Name) {
			errs = multierr.Append(errs, fmt.Errorf("documents[%d]: %w %q", i, ErrInvalidName, d.Name))
			continue
		}

		sources := 0
		if d.Inline != nil {
			sources++
		}
		if d.URL != "" {
			sources++
		}
		if d.Path != "" {
			sources++
		}
		switch {
		case sources == 0:
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", d.Name, ErrNoSource))
		case sources > 1:
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", d.Name, ErrManySources))
		}

		claim(d.Name, d.Name)
		for _, alias := range d.Aliases {
			if !validName(alias) {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w alias %q", d.Name, ErrInvalidName, alias))
				continue
			}
			claim(alias, d.Name)
		}
	}

	return errs
}

// Select returns the named documents in the order given, skipping repeats.
// Without names every document is returned. Unknown names are reported
// together after the known ones are collected.
func (c *Config) Select(names []string) ([]Document, error) {
	if len(names) == 0 {
		return c.Documents, nil
	}

	available := make(map[string]Document, len(c.Documents))
	for _, d := range c.Documents {
		available[d.Name] = d
	}

	var errs error
	selected := make([]Document, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if d, ok := available[name]; ok {
			selected = append(selected, d)
		} else {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrUnknownDocName, name))
		}
	}

	return selected, errs
}

// Resolver maps document names and aliases to document names.
func (c *Config) Resolver() map[string]string {
	resolver := make(map[string]string)
	for _, d := range c.Documents {
		resolver[d.Name] = d.Name
		for _, alias := range d.Aliases {
			resolver[alias] = d.Name
		}
	}
	return resolver
}

// validName keeps names usable as a single path segment.
func validName(name string) bool {
	return name != "" &&
		name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) &&
		strings.TrimSpace(name) == name
}
