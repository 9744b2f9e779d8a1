package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	content := `site_title: Cara Wong
description: Political scientist
email: someone@example.edu
nav:
  - label: Home
    url: index.html
  - label: Publications
    url: published.html
twitter: cwong
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing site: %v", err)
	}

	site, err := LoadSite(path)
	if err != nil {
		t.Fatalf("LoadSite() error = %v", err)
	}

	want := &Site{
		Title:       "Cara Wong",
		Description: "Political scientist",
		Email:       "someone@example.edu",
		Nav: []NavLink{
			{Label: "Home", URL: "index.html"},
			{Label: "Publications", URL: "published.html"},
		},
		Extra: map[string]any{"twitter": "cwong"},
	}
	if diff := cmp.Diff(want, site); diff != "" {
		t.Errorf("LoadSite() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSite_Missing(t *testing.T) {
	_, err := LoadSite(filepath.Join(t.TempDir(), "site.yaml"))
	if !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("LoadSite() error = %v, want ErrSiteNotFound", err)
	}
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "documents.yaml")
	content := `wong2010boundaries: Resources/Boundaries-Appendix.pdf
wong2012jop: Papers/wong2012jop.pdf
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing documents: %v", err)
	}

	docs, err := LoadDocuments(path)
	if err != nil {
		t.Fatalf("LoadDocuments() error = %v", err)
	}
	want := map[string]string{
		"wong2010boundaries": "Resources/Boundaries-Appendix.pdf",
		"wong2012jop":        "Papers/wong2012jop.pdf",
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("LoadDocuments() mismatch (-want +got):\n%s", diff)
	}

	// Missing file yields an empty table
	docs, err = LoadDocuments(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadDocuments(absent) error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("LoadDocuments(absent) = %v, want empty", docs)
	}
}
