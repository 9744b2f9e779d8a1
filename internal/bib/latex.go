package bib

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// combining maps LaTeX accent commands to Unicode combining marks.
var combining = map[string]string{
	"`":  "\u0300",
	"'":  "\u0301",
	"^":  "\u0302",
	"~":  "\u0303",
	"=":  "\u0304",
	"u":  "\u0306",
	".":  "\u0307",
	"\"": "\u0308",
	"r":  "\u030A",
	"H":  "\u030B",
	"v":  "\u030C",
	"d":  "\u0323",
	"c":  "\u0327",
	"k":  "\u0328",
	"b":  "\u0331",
}

// symbols maps LaTeX letter commands to their characters.
var symbols = map[string]string{
	"ss": "ß",
	"ae": "æ",
	"AE": "Æ",
	"oe": "œ",
	"OE": "Œ",
	"aa": "å",
	"AA": "Å",
	"o":  "ø",
	"O":  "Ø",
	"l":  "ł",
	"L":  "Ł",
	"i":  "ı",
	"j":  "ȷ",
}

var (
	// \'e  \'{e}  \"{\i}
	symbolAccentRe = regexp.MustCompile(`\\([` + "`" + `'^~=."])\s*(?:\{\s*(\\[ij]|[A-Za-z])\s*\}|(\\[ij]|[A-Za-z]))`)
	// \c{c}  \v s  (letter commands need braces or a space before the base)
	letterAccentRe = regexp.MustCompile(`\\([uHvdckbr])(?:\s*\{\s*(\\[ij]|[A-Za-z])\s*\}|\s+([A-Za-z]))`)
	symbolRe       = regexp.MustCompile(`\\(ss|ae|AE|oe|OE|aa|AA|o|O|l|L|i|j)\b(?:\{\})?\s*`)
)

// DecodeLaTeX converts LaTeX accent and letter commands to Unicode,
// composes the result to NFC and drops the remaining grouping braces.
// Other markup (\&, \emph, ~) is left for the display-text cleaner.
func DecodeLaTeX(s string) string {
	if !strings.ContainsAny(s, `\{}`) {
		return s
	}

	s = symbolAccentRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := symbolAccentRe.FindStringSubmatch(m)
		return accented(sub[1], sub[2]+sub[3])
	})
	s = letterAccentRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := letterAccentRe.FindStringSubmatch(m)
		return accented(sub[1], sub[2]+sub[3])
	})
	s = symbolRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := symbolRe.FindStringSubmatch(m)
		return symbols[sub[1]]
	})

	s = norm.NFC.String(s)
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

func accented(command, base string) string {
	switch base {
	case `\i`:
		base = "i"
	case `\j`:
		base = "j"
	}
	return base + combining[command]
}
