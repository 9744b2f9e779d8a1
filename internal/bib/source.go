package bib

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrSyntax is wrapped by every error caused by malformed BibTeX source.
var ErrSyntax = errors.New("bibtex syntax error")

// ErrEmptyKey is returned when an entry has no citation key.
var ErrEmptyKey = errors.New("entry has no citation key")

// atPlaceholder stands in for '@' inside field values; the entry parser
// only accepts '@' there after a backslash.
const atPlaceholder = "\uE000"

// monthMacros are the standard month abbreviations every BibTeX style predefines.
var monthMacros = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// identStop are the bytes that end a bare identifier.
const identStop = "{}(),=#\"@%"

// source rewrites BibTeX into the subset the entry parser handles: every
// entry braced, every field value one braced literal with @string macros
// and # concatenation resolved, and entry types, keys and field names
// replaced by positional placeholders. Comments, @string and @preamble
// are consumed. Line breaks are kept so positions reported by the parser
// still match the input.
type source struct {
	src     string
	pos     int
	macros  map[string]string
	entries []sourceEntry
	out     strings.Builder
	pending int // line breaks skipped since the last flush
}

// sourceEntry holds the names the placeholders of one entry stand for.
type sourceEntry struct {
	Type   string
	Key    string
	Fields []string
}

// canonicalize returns the rewritten source and its entries in order.
// Entry i is written with key placeholderKey(i) and its field j with
// name placeholderField(j).
func canonicalize(src string) (string, []sourceEntry, error) {
	s := &source{src: src, macros: maps.Clone(monthMacros)}
	s.out.Grow(len(src))

	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '@':
			if err := s.item(); err != nil {
				return "", nil, err
			}
		case '%':
			s.skipLine()
		case '\n':
			s.out.WriteByte('\n')
			s.pos++
		default:
			s.pos++
		}
	}
	return s.out.String(), s.entries, nil
}

const placeholderType = "entry"

func placeholderKey(i int) string {
	return fmt.Sprintf("e%d", i)
}

func placeholderField(j int) string {
	return fmt.Sprintf("f%d", j)
}

// item consumes one @-block starting at s.pos.
func (s *source) item() error {
	start := s.pos
	s.pos++
	s.skipSpace()

	typ := s.ident()
	if typ == "" {
		return s.errorf(start, "expected entry type after @")
	}
	kind := strings.ToLower(typ)
	s.skipSpace()

	if !s.at('{') && !s.at('(') {
		if kind == "comment" {
			s.skipLine()
			s.flush()
			return nil
		}
		return s.errorf(s.pos, "expected { or ( after @%s", typ)
	}

	open := s.pos
	closer := byte('}')
	if s.src[open] == '(' {
		closer = ')'
	}
	s.pos++

	var err error
	switch kind {
	case "comment", "preamble":
		err = s.skipBody(open, closer)
	case "string":
		err = s.stringDef(open, closer)
	default:
		err = s.entry(typ, open, closer)
	}
	s.flush()
	return err
}

// skipBody skips to the bracket closing the one at open.
func (s *source) skipBody(open int, closer byte) error {
	opener := s.src[open]
	depth := 1
	for ; s.pos < len(s.src); s.pos++ {
		switch s.src[s.pos] {
		case '\n':
			s.pending++
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				s.pos++
				return nil
			}
		}
	}
	return s.errorf(open, "unterminated block")
}

// stringDef reads "name = value" of an @string and records the macro.
func (s *source) stringDef(open int, closer byte) error {
	s.skipSpace()
	name := s.ident()
	if name == "" {
		return s.errorf(s.pos, "expected macro name in @string")
	}
	s.skipSpace()
	if !s.consume('=') {
		return s.errorf(s.pos, "expected = after @string %s", name)
	}

	value, err := s.value()
	if err != nil {
		return err
	}
	s.skipSpace()
	if !s.consume(closer) {
		return s.errorf(open, "unterminated @string %s", name)
	}

	s.macros[strings.ToLower(name)] = value
	return nil
}

// entry rewrites one bibliographic entry.
func (s *source) entry(typ string, open int, closer byte) error {
	s.skipSpace()
	keyStart := s.pos
	key := s.key()
	if key == "" {
		return fmt.Errorf("%w: %w (type %s)", s.errorf(keyStart, "missing key"), ErrEmptyKey, typ)
	}

	s.out.WriteString("@" + placeholderType + "{" + placeholderKey(len(s.entries)) + ",")
	s.entries = append(s.entries, sourceEntry{Type: typ, Key: key})
	e := &s.entries[len(s.entries)-1]

	s.skipSpace()
	switch {
	case s.consume(closer):
		s.out.WriteByte('}')
		return nil
	case !s.consume(','):
		return s.errorf(s.pos, "expected , after key %s", key)
	}

	for {
		s.skipSpace()
		s.flush()
		if s.pos >= len(s.src) {
			return s.errorf(open, "unterminated entry %s", key)
		}
		if s.consume(closer) {
			break
		}
		if s.consume(',') {
			continue
		}

		name := s.ident()
		if name == "" {
			return s.errorf(s.pos, "unexpected %q in entry %s", s.src[s.pos], key)
		}
		s.skipSpace()
		if !s.consume('=') {
			return s.errorf(s.pos, "expected = after field %s in entry %s", name, key)
		}

		value, err := s.value()
		if err != nil {
			return err
		}
		s.out.WriteString(placeholderField(len(e.Fields)) + " = {" + strings.ReplaceAll(value, "@", atPlaceholder) + "},")
		e.Fields = append(e.Fields, name)

		s.skipSpace()
		if s.pos < len(s.src) && !s.at(',') && !s.at(closer) {
			return s.errorf(s.pos, "expected , or %c after field %s in entry %s", closer, name, key)
		}
	}

	s.out.WriteByte('}')
	return nil
}

// value reads a field value: braced or quoted strings, numbers and macro
// names, joined by #.
func (s *source) value() (string, error) {
	var b strings.Builder
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return "", s.errorf(s.pos, "missing field value")
		}

		switch c := s.src[s.pos]; c {
		case '{':
			part, err := s.braced()
			if err != nil {
				return "", err
			}
			b.WriteString(part)
		case '"':
			part, err := s.quoted()
			if err != nil {
				return "", err
			}
			b.WriteString(part)
		default:
			word := s.ident()
			if word == "" {
				return "", s.errorf(s.pos, "expected field value, found %q", c)
			}
			b.WriteString(s.expand(word))
		}

		s.skipSpace()
		if !s.consume('#') {
			return b.String(), nil
		}
	}
}

// expand resolves a bare value. Numbers stand for themselves; undefined
// macros are kept by name, as BibTeX itself does after warning.
func (s *source) expand(word string) string {
	if strings.Trim(word, "0123456789") == "" {
		return word
	}
	if v, ok := s.macros[strings.ToLower(word)]; ok {
		return v
	}
	log.Warn().Str("macro", word).Msg("undefined string macro")
	return word
}

// braced returns the content of the balanced {...} at s.pos.
func (s *source) braced() (string, error) {
	start := s.pos
	depth := 0
	for ; s.pos < len(s.src); s.pos++ {
		switch s.src[s.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s.pos++
				return s.src[start+1 : s.pos-1], nil
			}
		}
	}
	return "", s.errorf(start, "unterminated {")
}

// quoted returns the content of the "..." at s.pos. Quotes inside braces
// do not end the string.
func (s *source) quoted() (string, error) {
	start := s.pos
	depth := 0
	for s.pos++; s.pos < len(s.src); s.pos++ {
		switch s.src[s.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return "", s.errorf(s.pos, "unbalanced } in quoted value")
			}
		case '"':
			if depth == 0 {
				s.pos++
				return s.src[start+1 : s.pos-1], nil
			}
		}
	}
	return "", s.errorf(start, "unterminated quoted value")
}

// ident reads a bare identifier (entry type, field or macro name, number).
func (s *source) ident() string {
	start := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) && !strings.ContainsRune(identStop, rune(s.src[s.pos])) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// key reads a citation key, which runs to the next comma or bracket.
func (s *source) key() string {
	start := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) && !strings.ContainsRune(",{}()=", rune(s.src[s.pos])) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *source) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		if s.src[s.pos] == '\n' {
			s.pending++
		}
		s.pos++
	}
}

// skipLine advances to the next line break without consuming it.
func (s *source) skipLine() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

// flush writes the line breaks skipped since the last flush.
func (s *source) flush() {
	for ; s.pending > 0; s.pending-- {
		s.out.WriteByte('\n')
	}
}

func (s *source) at(c byte) bool {
	return s.pos < len(s.src) && s.src[s.pos] == c
}

func (s *source) consume(c byte) bool {
	if s.at(c) {
		s.pos++
		return true
	}
	return false
}

// errorf reports a syntax error at byte offset at, as a 1-based line and column.
func (s *source) errorf(at int, format string, args ...any) error {
	at = min(at, len(s.src))
	line := 1 + strings.Count(s.src[:at], "\n")
	col := at - strings.LastIndexByte(s.src[:at], '\n')
	return fmt.Errorf("%w at line %d, column %d: %s", ErrSyntax, line, col, fmt.Sprintf(format, args...))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
