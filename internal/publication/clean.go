package publication

import (
	"regexp"
	"strings"
)

var braceGroup = regexp.MustCompile(`\{([^}]+)\}`)

// markup lists LaTeX artifacts and their display replacements.
// Applied in order.
var markup = []struct{ from, to string }{
	{"``", `"`},
	{"''", `"`},
	{"`", "'"},
	{`\&`, "&"},
	{"~", " "},
	{`\textsuperscript`, ""},
	{`\emph`, ""},
}

// Clean strips BibTeX formatting artifacts from free text: single-level
// brace groups, LaTeX quotes, \&, ties, and the \textsuperscript and
// \emph commands (their arguments are kept).
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = braceGroup.ReplaceAllString(text, "$1")
	for _, m := range markup {
		text = strings.ReplaceAll(text, m.from, m.to)
	}
	return strings.TrimSpace(text)
}
