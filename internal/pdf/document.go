// Package pdf inspects the documents linked from the publication list.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotFound is returned when a linked document does not exist.
var ErrNotFound = errors.New("document not found")

// doiPages is how many leading pages are searched for a DOI.
const doiPages = 3

// Info describes a readable PDF.
type Info struct {
	Path  string
	Pages int
	DOI   string // First DOI printed on the leading pages, if any
}

// Resolver maps site-relative document paths to files on disk.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver for documents under root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve returns the absolute path of a site-relative document path.
// Absolute URLs and paths that leave the root are rejected.
func (r *Resolver) Resolve(relativePath string) (string, error) {
	if relativePath == "" {
		return "", fmt.Errorf("no document path specified")
	}
	if strings.Contains(relativePath, "://") {
		return "", fmt.Errorf("not a local path: %s", relativePath)
	}

	fullPath := filepath.Join(r.root, filepath.FromSlash(relativePath))
	rel, err := filepath.Rel(r.root, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes site root: %s", relativePath)
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, relativePath)
		}
		return "", fmt.Errorf("checking document: %w", err)
	}

	return fullPath, nil
}

// IsPDF reports whether path names a PDF by extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Inspect opens a PDF and reports its page count and printed DOI.
// Malformed files that make the reader panic are reported as errors.
func Inspect(filePath string) (info *Info, err error) {
	defer func() {
		if p := recover(); p != nil {
			info, err = nil, fmt.Errorf("reading pdf: %v", p)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	info = &Info{Path: filePath, Pages: r.NumPage()}

	maxPages := min(doiPages, info.Pages)
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			info.DOI = doi
			break
		}
	}

	return info, nil
}
