// Package config handles site build configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cjwong/sitegen/internal/publication"
	"gopkg.in/yaml.v3"
)

// Config represents build configuration stored in sitegen.yml at the
// site root. Relative paths resolve against the root.
type Config struct {
	ContentDir    string `yaml:"content_dir"`    // Markdown page sources
	DataDir       string `yaml:"data_dir"`       // site.yaml, bibliography, documents table
	TemplatesDir  string `yaml:"templates_dir"`  // Overrides for the built-in templates
	OutputDir     string `yaml:"output_dir"`     // Where pages are written
	Bibliography  string `yaml:"bibliography"`   // BibTeX file, relative to data_dir
	Documents     string `yaml:"documents"`      // id -> document path table, relative to data_dir
	SiteFile      string `yaml:"site"`           // Site metadata, relative to data_dir
	HighlightName string `yaml:"highlight_name"` // Regexp for the emphasized author name
	Pages         []Page `yaml:"pages"`          // Markdown content pages

	root string
}

// Page describes one Markdown content page.
type Page struct {
	Source string `yaml:"source"` // Markdown file in content_dir
	Output string `yaml:"output"` // HTML file name in output_dir
	Title  string `yaml:"title"`
	Kicker string `yaml:"kicker"`
	Intro  string `yaml:"intro"`
}

const (
	ConfigFile = "sitegen.yml"
	EnvFile    = ".env"
)

// Environment overrides, applied after sitegen.yml.
const (
	EnvOutputDir     = "SITEGEN_OUTPUT_DIR"
	EnvBibliography  = "SITEGEN_BIBLIOGRAPHY"
	EnvHighlightName = "SITEGEN_HIGHLIGHT_NAME"
)

// DefaultPages are the content pages of the site.
var DefaultPages = []Page{
	{
		Source: "projects.md",
		Output: "papers.html",
		Title:  "Current Projects",
		Kicker: "Current work",
		Intro:  "Book projects, works in progress, and related work.",
	},
	{
		Source: "teaching.md",
		Output: "teaching.html",
		Title:  "Teaching",
		Kicker: "Courses",
	},
	{
		Source: "data-code.md",
		Output: "datacode.html",
		Title:  "Data & Code",
		Kicker: "Materials",
		Intro:  "Replication materials, project repositories, and data resources.",
	},
}

// Default returns the configuration used when sitegen.yml is absent.
// Pages are written next to the sources, at the site root.
func Default(root string) *Config {
	pages := make([]Page, len(DefaultPages))
	copy(pages, DefaultPages)

	return &Config{
		ContentDir:    "content",
		DataDir:       "data",
		TemplatesDir:  "templates",
		OutputDir:     ".",
		Bibliography:  "wong-vita.bib",
		Documents:     "documents.yaml",
		SiteFile:      "site.yaml",
		HighlightName: publication.DefaultHighlight,
		Pages:         pages,
		root:          root,
	}
}

// ConfigPath returns the path to sitegen.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// EnvPath returns the path to the .env file from a root path.
func EnvPath(root string) string {
	return filepath.Join(root, EnvFile)
}

// Load reads configuration for the site at root. A missing sitegen.yml
// is not an error; defaults apply. Environment overrides are applied last.
func Load(root string) (*Config, error) {
	abs, err := filepath.Abs(ExpandPath(root))
	if err != nil {
		return nil, fmt.Errorf("resolving site root: %w", err)
	}

	cfg := Default(abs)

	data, err := os.ReadFile(ConfigPath(abs))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvBibliography); v != "" {
		c.Bibliography = v
	}
	// An explicitly empty value turns highlighting off.
	if v, ok := os.LookupEnv(EnvHighlightName); ok {
		c.HighlightName = v
	}
}

// Validate checks that page definitions are usable.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Pages))
	for i, p := range c.Pages {
		if p.Source == "" || p.Output == "" {
			return fmt.Errorf("page %d: source and output are required", i+1)
		}
		if !strings.HasSuffix(p.Output, ".html") {
			return fmt.Errorf("page %s: output %q must be an .html file", p.Source, p.Output)
		}
		if filepath.Base(p.Output) != p.Output {
			return fmt.Errorf("page %s: output %q must be a plain file name", p.Source, p.Output)
		}
		if seen[p.Output] {
			return fmt.Errorf("page %s: output %q is written twice", p.Source, p.Output)
		}
		seen[p.Output] = true
	}
	return nil
}

// Root returns the absolute site root.
func (c *Config) Root() string {
	return c.root
}

// resolve makes p absolute relative to base under the site root.
func (c *Config) resolve(base, p string) string {
	p = ExpandPath(p)
	if filepath.IsAbs(p) {
		return p
	}
	if base != "" && !filepath.IsAbs(base) {
		base = filepath.Join(c.root, ExpandPath(base))
	}
	if base == "" {
		base = c.root
	}
	return filepath.Join(base, p)
}

// ContentPath returns the path of a Markdown source file.
func (c *Config) ContentPath(name string) string {
	return c.resolve(c.ContentDir, name)
}

// TemplatesPath returns the templates override directory.
func (c *Config) TemplatesPath() string {
	return c.resolve("", c.TemplatesDir)
}

// OutputPath returns the output directory.
func (c *Config) OutputPath() string {
	return c.resolve("", c.OutputDir)
}

// BibliographyPath returns the BibTeX file path.
func (c *Config) BibliographyPath() string {
	return c.resolve(c.DataDir, c.Bibliography)
}

// DocumentsPath returns the document table path.
func (c *Config) DocumentsPath() string {
	return c.resolve(c.DataDir, c.Documents)
}

// SitePath returns the site metadata path.
func (c *Config) SitePath() string {
	return c.resolve(c.DataDir, c.SiteFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
