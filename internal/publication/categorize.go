package publication

import (
	"strings"

	"github.com/cjwong/sitegen/internal/bib"
)

// rule assigns a section to entries of entryType ("" for any type) whose
// keywords contain keyword ("" for none required).
type rule struct {
	entryType string
	keyword   string
	section   string
}

// rules are evaluated in order; the first match wins.
//
// Keyword matching is a case-insensitive substring test over the whole
// keywords field, so "non_dataset_related" matches "dataset".
var rules = []rule{
	{entryType: "book", section: SectionBooks},
	{entryType: "article", keyword: "peer_reviewed", section: SectionArticles},
	{entryType: "incollection", keyword: "peer_reviewed", section: SectionChapters},
	{keyword: "other_publication", section: SectionOther},
	// The next two are subsumed by the any-type rule above.
	{entryType: "techreport", keyword: "other_publication", section: SectionOther},
	{entryType: "article", keyword: "other_publication", section: SectionOther},
	{keyword: "dataset", section: SectionOther},
}

// Categorize returns the section e is listed under, or false when the
// entry is not shown on the publications page.
func Categorize(e bib.Entry) (string, bool) {
	keywords := strings.ToLower(e.Field("keywords"))
	for _, r := range rules {
		if r.entryType != "" && r.entryType != e.Type {
			continue
		}
		if r.keyword != "" && !strings.Contains(keywords, r.keyword) {
			continue
		}
		return r.section, true
	}
	return "", false
}
