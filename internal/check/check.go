// Package check verifies a site's inputs and generated pages: the document
// table against the bibliography, the linked PDFs, and local links.
package check

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cjwong/sitegen/internal/bib"
	"github.com/cjwong/sitegen/internal/pdf"
	"github.com/rs/zerolog/log"
)

// Issue types.
const (
	IssueDuplicateKey    = "duplicate_key"
	IssueStaleDocument   = "stale_document"
	IssueMissingDocument = "missing_document"
	IssueUnreadablePDF   = "unreadable_pdf"
	IssueEmptyPDF        = "empty_pdf"
	IssueDOIMismatch     = "doi_mismatch"
	IssueBrokenLink      = "broken_link"
)

// Issue is a single problem found by a check.
type Issue struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`   // Citation key or page name
	Path   string `json:"path,omitempty"` // Document path or link target
	Reason string `json:"reason,omitempty"`
}

// Report is the outcome of Run.
type Report struct {
	Status    string  `json:"status"`
	Entries   int     `json:"entries"`
	Documents int     `json:"documents"`
	Pages     int     `json:"pages"`
	Issues    []Issue `json:"issues"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Checker checks the site written to an output directory.
type Checker struct {
	outputDir string
	resolver  *pdf.Resolver
}

// New creates a Checker for pages and documents under outputDir.
func New(outputDir string) *Checker {
	return &Checker{outputDir: outputDir, resolver: pdf.NewResolver(outputDir)}
}

// Run checks the bibliography, its document table and the generated pages.
func (c *Checker) Run(bibliography *bib.Bibliography, docs map[string]string) (*Report, error) {
	report := &Report{
		Entries:   len(bibliography.Entries),
		Documents: len(docs),
		Issues:    []Issue{},
	}

	for _, id := range bibliography.Duplicates {
		report.Issues = append(report.Issues, Issue{
			Type:   IssueDuplicateKey,
			ID:     id,
			Reason: "later entries with this key are ignored",
		})
	}

	for _, id := range slices.Sorted(maps.Keys(docs)) {
		report.Issues = append(report.Issues, c.checkDocument(bibliography, id, docs[id])...)
	}

	pages, err := htmlPages(c.outputDir)
	if err != nil {
		return nil, err
	}
	report.Pages = len(pages)
	for _, page := range pages {
		issues, err := c.checkLinks(page)
		if err != nil {
			return nil, err
		}
		report.Issues = append(report.Issues, issues...)
	}

	report.Status = "ok"
	if !report.OK() {
		report.Status = "issues_found"
	}
	log.Debug().Int("issues", len(report.Issues)).Int("pages", report.Pages).Msg("check finished")
	return report, nil
}

func (c *Checker) checkDocument(bibliography *bib.Bibliography, id, path string) []Issue {
	entry, ok := bibliography.Lookup(id)
	if !ok {
		return []Issue{{Type: IssueStaleDocument, ID: id, Path: path, Reason: "no bibliography entry with this key"}}
	}

	fullPath, err := c.resolver.Resolve(path)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, pdf.ErrNotFound) {
			reason = "file does not exist in output directory"
		}
		return []Issue{{Type: IssueMissingDocument, ID: id, Path: path, Reason: reason}}
	}

	if !pdf.IsPDF(fullPath) {
		return nil
	}

	info, err := pdf.Inspect(fullPath)
	if err != nil {
		return []Issue{{Type: IssueUnreadablePDF, ID: id, Path: path, Reason: err.Error()}}
	}
	if info.Pages == 0 {
		return []Issue{{Type: IssueEmptyPDF, ID: id, Path: path, Reason: "document has no pages"}}
	}

	want := bib.NormalizeDOI(entry.Field("doi"))
	got := bib.NormalizeDOI(info.DOI)
	if want != "" && got != "" && want != got {
		return []Issue{{
			Type:   IssueDOIMismatch,
			ID:     id,
			Path:   path,
			Reason: fmt.Sprintf("entry has %s, document prints %s", want, got),
		}}
	}

	return nil
}

// htmlPages lists the .html files directly in dir, sorted.
func htmlPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var pages []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			pages = append(pages, e.Name())
		}
	}
	return pages, nil
}
