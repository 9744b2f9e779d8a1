package publication

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// DefaultHighlight matches the site owner's name, with or without a
// middle initial, once it is in "First Last" form.
const DefaultHighlight = `^Cara\s+(J\.\s+)?Wong$`

// peopleSeparator is the BibTeX name-list separator. Matched exactly.
const peopleSeparator = " and "

// FormatName converts a BibTeX "Last, First" name to "First Last".
// Names without exactly one comma are returned unchanged (trimmed).
func FormatName(name string) string {
	name = strings.TrimSpace(name)
	parts := strings.Split(name, ",")
	if len(parts) != 2 {
		return name
	}
	return strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
}

// NameFormatter formats author and editor lists for display, wrapping
// names that match its highlight pattern in <strong>.
// A nil *NameFormatter formats without highlighting.
type NameFormatter struct {
	highlight *regexp.Regexp
}

// NewNameFormatter compiles pattern case-insensitively.
// An empty pattern disables highlighting.
func NewNameFormatter(pattern string) (*NameFormatter, error) {
	if pattern == "" {
		return &NameFormatter{}, nil
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling highlight pattern: %w", err)
	}
	return &NameFormatter{highlight: re}, nil
}

// Highlighted reports whether a display-form name is emphasized.
func (f *NameFormatter) Highlighted(name string) bool {
	return f != nil && f.highlight != nil && f.highlight.MatchString(name)
}

// FormatPeople formats a BibTeX name list ("A and B and C") as an HTML
// fragment "A, B, C". Authors and editors share this formatting; any
// role label is the caller's business.
func (f *NameFormatter) FormatPeople(people string) string {
	if people == "" {
		return ""
	}

	names := strings.Split(people, peopleSeparator)
	formatted := make([]string, 0, len(names))
	for _, name := range names {
		display := FormatName(name)
		escaped := html.EscapeString(display)
		if f.Highlighted(display) {
			escaped = "<strong>" + escaped + "</strong>"
		}
		formatted = append(formatted, escaped)
	}
	return strings.Join(formatted, ", ")
}
