// Package publication turns bibliography entries into the grouped,
// sorted publication list shown on the website.
package publication

// Section titles, in display order.
const (
	SectionBooks    = "Books and Monographs"
	SectionArticles = "Journal Articles"
	SectionChapters = "Book Chapters"
	SectionOther    = "Other Publications"
)

// SectionOrder is the canonical order sections appear in.
var SectionOrder = []string{SectionBooks, SectionArticles, SectionChapters, SectionOther}

// Link labels.
const (
	LabelPDF  = "PDF"
	LabelDOI  = "DOI"
	LabelLink = "Link"
)

// Link is an outbound link shown next to a publication.
type Link struct {
	Label string `json:"label"` // PDF, DOI or Link
	URL   string `json:"url"`
}

// Item is one rendering-ready publication.
// Authors and Venue are HTML fragments; Title and Note are plain text.
type Item struct {
	ID      string `json:"id"`
	Authors string `json:"authors"`
	Year    string `json:"year"`
	Title   string `json:"title"`
	Venue   string `json:"venue"`
	Links   []Link `json:"links"`
	Note    string `json:"note,omitempty"`
}

// Section is a titled group of items sorted newest first.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// List is the full publication list handed to the renderer.
type List struct {
	Sections []Section `json:"sections"`
}

// Count returns the total number of items across all sections.
func (l List) Count() int {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Items)
	}
	return n
}
