package publication

import (
	"fmt"
	"strings"

	"github.com/cjwong/sitegen/internal/bib"
)

// alternateURLFields are the BibDesk link fields, checked in order.
var alternateURLFields = []string{"bdsk-url-1", "bdsk-url-2", "bdsk-url-3", "bdsk-url-4"}

// CollectLinks gathers the outbound links of e in priority order: local
// document, DOI, BibDesk URLs, then the url field. A URL appears at most
// once; the first label wins.
func (b *Builder) CollectLinks(e bib.Entry) []Link {
	links := make([]Link, 0, 2)
	add := func(label, url string) {
		for _, l := range links {
			if l.URL == url {
				return
			}
		}
		links = append(links, Link{Label: label, URL: url})
	}

	if path, ok := b.documents[e.ID]; ok {
		add(LabelPDF, path)
	}

	if doi := e.Field("doi"); doi != "" {
		add(LabelDOI, DOIURL(doi))
	}

	for _, field := range alternateURLFields {
		url := e.Field(field)
		if url == "" || strings.Contains(url, "doi.org") {
			continue
		}
		add(LabelLink, url)
	}

	if url := e.Field("url"); url != "" {
		add(LabelLink, url)
	}

	return links
}

// DOIURL returns doi as an https://doi.org/ URL.
func DOIURL(doi string) string {
	switch {
	case strings.HasPrefix(doi, "https://doi.org/"):
		return doi
	case strings.HasPrefix(doi, "http://doi.org/"):
		return "https://" + strings.TrimPrefix(doi, "http://")
	default:
		return fmt.Sprintf("https://doi.org/%s", doi)
	}
}
