package publication

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cjwong/sitegen/internal/bib"
	"github.com/rs/zerolog/log"
)

// Options configures a Builder.
type Options struct {
	// Documents maps citation keys to local document paths (usually PDFs).
	Documents map[string]string
	// Highlight is a regexp matched case-insensitively against display
	// names; matches are emphasized. Empty disables highlighting.
	Highlight string
}

// Builder turns bibliography entries into a publication list.
// It holds only read-only lookup data and may be reused.
type Builder struct {
	documents map[string]string
	names     *NameFormatter
}

// NewBuilder creates a Builder. The document table is copied.
func NewBuilder(opts Options) (*Builder, error) {
	names, err := NewNameFormatter(opts.Highlight)
	if err != nil {
		return nil, err
	}

	documents := make(map[string]string, len(opts.Documents))
	for id, path := range opts.Documents {
		documents[id] = path
	}

	return &Builder{documents: documents, names: names}, nil
}

// Build categorizes, formats, groups and sorts entries. Entries that
// match no section are left out.
func (b *Builder) Build(entries []bib.Entry) List {
	grouped := make(map[string][]Item, len(SectionOrder))
	for _, e := range entries {
		section, ok := Categorize(e)
		if !ok {
			log.Debug().Str("id", e.ID).Str("type", e.Type).Msg("entry not listed")
			continue
		}
		grouped[section] = append(grouped[section], b.item(e))
	}

	var list List
	for _, title := range SectionOrder {
		items := grouped[title]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return sortYear(items[i].Year) > sortYear(items[j].Year)
		})
		list.Sections = append(list.Sections, Section{Title: title, Items: items})
	}
	return list
}

// item formats a single entry.
func (b *Builder) item(e bib.Entry) Item {
	return Item{
		ID:      e.ID,
		Authors: b.people(e),
		Year:    e.Field("year"),
		Title:   Clean(e.Field("title")),
		Venue:   FormatVenue(e, b.names),
		Links:   b.CollectLinks(e),
		Note:    e.Field("note"),
	}
}

// people formats the author list, or for edited volumes without
// authors, the editor list followed by its label.
func (b *Builder) people(e bib.Entry) string {
	if e.Has("editor") && !e.Has("author") {
		editor := e.Field("editor")
		label := "Editor"
		if strings.Contains(editor, peopleSeparator) {
			label = "Editors"
		}
		return b.names.FormatPeople(editor) + ", " + label + ","
	}
	return b.names.FormatPeople(e.Field("author"))
}

// sortYear parses a year for ordering; anything non-numeric sorts as 0.
func sortYear(year string) int {
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0
	}
	return n
}
