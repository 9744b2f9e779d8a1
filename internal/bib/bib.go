// Package bib reads BibTeX bibliographies into plain, immutable entries.
package bib

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/nickng/bibtex"
	"github.com/rs/zerolog/log"
)

// Entry is one bibliographic record.
type Entry struct {
	ID     string            `json:"id"`     // Citation key
	Type   string            `json:"type"`   // Lower-cased entry type (article, book, ...)
	Fields map[string]string `json:"fields"` // Lower-cased field name -> value
}

// Field returns the value of a field, or "" when the field is absent.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// Has reports whether a field is present and non-empty.
func (e Entry) Has(name string) bool {
	return e.Fields[name] != ""
}

// Bibliography is the result of parsing one BibTeX source.
// Entries keep source order. When a citation key repeats, the first
// occurrence wins and the key is recorded in Duplicates.
type Bibliography struct {
	Entries    []Entry
	Duplicates []string

	byID map[string]int
}

// Lookup returns the entry with the given citation key.
func (b *Bibliography) Lookup(id string) (Entry, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Entry{}, false
	}
	return b.Entries[i], true
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseFile reads and parses the bibliography at path.
func ParseFile(path string) (*Bibliography, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads BibTeX source and returns its entries.
// Syntax errors are fatal and wrap ErrSyntax; missing fields never are.
// A repeated field keeps its first value.
func Parse(r io.Reader) (*Bibliography, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	canonical, entries, err := canonicalize(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing bibliography: %w", err)
	}

	parsed, err := parseCanonical(canonical)
	if err != nil {
		return nil, fmt.Errorf("parsing bibliography: %w: %w", ErrSyntax, err)
	}
	if len(parsed.Entries) != len(entries) {
		return nil, fmt.Errorf("parsing bibliography: %w: read %d of %d entries", ErrSyntax, len(parsed.Entries), len(entries))
	}

	bib := &Bibliography{byID: make(map[string]int, len(entries))}
	for i, raw := range parsed.Entries {
		if raw.CiteName != placeholderKey(i) {
			return nil, fmt.Errorf("parsing bibliography: %w: entry %d read out of order", ErrSyntax, i)
		}
		rec := entries[i]

		if _, seen := bib.byID[rec.Key]; seen {
			log.Warn().Str("id", rec.Key).Msg("duplicate citation key, keeping first entry")
			bib.Duplicates = append(bib.Duplicates, rec.Key)
			continue
		}

		entry := Entry{
			ID:     rec.Key,
			Type:   strings.ToLower(rec.Type),
			Fields: make(map[string]string, len(rec.Fields)),
		}
		for j, name := range rec.Fields {
			name = strings.ToLower(name)
			value := raw.Fields[placeholderField(j)]
			if _, seen := entry.Fields[name]; seen || value == nil {
				continue
			}
			entry.Fields[name] = cleanValue(name, strings.ReplaceAll(value.String(), atPlaceholder, "@"))
		}

		bib.byID[rec.Key] = len(bib.Entries)
		bib.Entries = append(bib.Entries, entry)
	}

	return bib, nil
}

// The entry parser keeps lexer state in package variables.
var parserMu sync.Mutex

func parseCanonical(src string) (*bibtex.BibTex, error) {
	parserMu.Lock()
	defer parserMu.Unlock()

	// A lone comma clears the field-scanning flag a failed parse leaves set.
	_, _ = bibtex.Parse(strings.NewReader(","))
	return bibtex.Parse(strings.NewReader(src))
}

// cleanValue decodes LaTeX accents and collapses the line wrapping
// reference managers put inside long values. Identifier fields only
// lose their escapes and whitespace.
func cleanValue(name, s string) string {
	if isLinkField(name) {
		return unescapeLink(s)
	}
	s = DecodeLaTeX(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func isLinkField(name string) bool {
	return name == "doi" || name == "url" || strings.HasPrefix(name, "bdsk-url-")
}

var linkEscapes = strings.NewReplacer(`\_`, "_", `\%`, "%", `\&`, "&", `\#`, "#", `\$`, "$", `\~`, "~", "{", "", "}", "")

// unescapeLink undoes the LaTeX escaping of a DOI or URL.
func unescapeLink(s string) string {
	return strings.Join(strings.Fields(linkEscapes.Replace(s)), "")
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "https://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "http://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}
