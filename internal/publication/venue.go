package publication

import (
	"html"
	"strings"

	"github.com/cjwong/sitegen/internal/bib"
)

// venueFunc formats the citation venue for one entry type.
type venueFunc func(e bib.Entry, names *NameFormatter) string

var venueFormatters = map[string]venueFunc{
	"article":      articleVenue,
	"book":         bookVenue,
	"incollection": incollectionVenue,
	"techreport":   techreportVenue,
}

// FormatVenue returns the citation venue of e as an HTML fragment, or ""
// for entry types without a venue rule. names formats the editor list of
// collections and may be nil.
func FormatVenue(e bib.Entry, names *NameFormatter) string {
	format, ok := venueFormatters[e.Type]
	if !ok {
		return ""
	}
	return format(e, names)
}

// articleVenue renders "Journal 12(3): 45-67".
func articleVenue(e bib.Entry, _ *NameFormatter) string {
	var b strings.Builder
	b.WriteString(html.EscapeString(Clean(e.Field("journal"))))

	if volume := e.Field("volume"); volume != "" {
		b.WriteString(" " + html.EscapeString(volume))
		if number := e.Field("number"); number != "" {
			b.WriteString("(" + html.EscapeString(number) + ")")
		}
	}
	if pages := pageRange(e.Field("pages")); pages != "" {
		b.WriteString(": " + html.EscapeString(pages))
	}

	return strings.TrimSpace(b.String())
}

// bookVenue renders the publisher only. The address field is
// deliberately not shown, with or without a publisher.
func bookVenue(e bib.Entry, _ *NameFormatter) string {
	return html.EscapeString(e.Field("publisher"))
}

// incollectionVenue renders
// "In Book Title. Edited by A, B. Publisher, pp. 1-20".
func incollectionVenue(e bib.Entry, names *NameFormatter) string {
	var b strings.Builder
	b.WriteString("In " + html.EscapeString(Clean(e.Field("booktitle"))))

	if editor := e.Field("editor"); editor != "" {
		b.WriteString(". Edited by " + names.FormatPeople(editor))
	}
	if publisher := e.Field("publisher"); publisher != "" {
		b.WriteString(". " + html.EscapeString(publisher))
	}
	if pages := pageRange(e.Field("pages")); pages != "" {
		b.WriteString(", pp. " + html.EscapeString(pages))
	}

	return b.String()
}

func techreportVenue(e bib.Entry, _ *NameFormatter) string {
	return html.EscapeString(e.Field("institution"))
}

// pageRange turns the BibTeX en-dash "--" into a plain hyphen.
func pageRange(pages string) string {
	return strings.ReplaceAll(pages, "--", "-")
}
