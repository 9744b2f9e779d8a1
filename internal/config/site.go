package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Site is the site-wide metadata from site.yaml, available to every
// template. Keys without a field land in Extra.
type Site struct {
	Title       string         `yaml:"site_title" json:"site_title"`
	Description string         `yaml:"description" json:"description"`
	Author      string         `yaml:"author" json:"author,omitempty"`
	Email       string         `yaml:"email" json:"email,omitempty"`
	Nav         []NavLink      `yaml:"nav" json:"nav,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// NavLink is one entry of the site navigation.
type NavLink struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// ErrSiteNotFound is returned when site.yaml does not exist.
var ErrSiteNotFound = errors.New("site metadata not found")

// LoadSite reads site metadata from path.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, path)
		}
		return nil, fmt.Errorf("reading site metadata: %w", err)
	}

	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parsing site metadata: %w", err)
	}
	return &site, nil
}

// LoadDocuments reads the citation key -> document path table.
// Returns an empty table (not an error) if the file doesn't exist.
func LoadDocuments(path string) (map[string]string, error) {
	docs := make(map[string]string)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return docs, nil
		}
		return nil, fmt.Errorf("reading documents: %w", err)
	}

	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing documents: %w", err)
	}
	if docs == nil {
		docs = make(map[string]string)
	}
	return docs, nil
}
