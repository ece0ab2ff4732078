package tabulate

import (
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte-offset pair locating one field within a
// line.
type Span struct {
	Start, End int
}

// Row holds the fields of one tokenized line as spans over the line
// buffer. Fields are returned as substrings of that buffer, so a Row
// never allocates per field. A Row is meant to be reused: each call
// to [Tokenizer.SplitInto] replaces its contents.
type Row struct {
	line  string
	spans []Span
}

// Len returns the number of fields.
func (r *Row) Len() int { return len(r.spans) }

// Field returns the i-th field.
func (r *Row) Field(i int) string {
	s := r.spans[i]
	return r.line[s.Start:s.End]
}

// Fields returns all fields as a freshly allocated slice. Intended
// for diagnostics and tests; hot paths should use [Row.Field].
func (r *Row) Fields() []string {
	out := make([]string, len(r.spans))
	for i := range r.spans {
		out[i] = r.Field(i)
	}
	return out
}

// clone returns a Row that no longer shares span storage with r, for
// buffering in the backlog while r is reused for the next line.
func (r *Row) clone() Row {
	return Row{
		line:  r.line,
		spans: append([]Span(nil), r.spans...),
	}
}

type scanState int

const (
	stateWhitespace scanState = iota
	stateNonWhitespace
	stateInsideGroup
)

// Tokenizer splits input lines into field spans using a three-state
// character scan. Outside strict mode, fields opened by '(', '[', or
// '"' run until the matching closer regardless of delimiters; there
// is no nesting and no escaping. In strict mode grouping is disabled
// and empty fields between adjacent delimiters are preserved.
type Tokenizer struct {
	delims string
	strict bool
}

// NewTokenizer returns a Tokenizer treating every character in
// delims as a field delimiter.
func NewTokenizer(delims string, strict bool) *Tokenizer {
	return &Tokenizer{delims: delims, strict: strict}
}

// SplitInto tokenizes line into row, replacing the row's previous
// contents.
func (t *Tokenizer) SplitInto(row *Row, line string) {
	row.line = line
	row.spans = row.spans[:0]

	state := stateWhitespace
	var closer rune
	start := 0
	for i, ch := range line {
		switch state {
		case stateWhitespace:
			switch {
			case !t.strict && isGroupOpener(ch):
				closer = groupCloser(ch)
				start = i
				state = stateInsideGroup
			case !strings.ContainsRune(t.delims, ch):
				start = i
				state = stateNonWhitespace
			case t.strict:
				row.spans = append(row.spans, Span{i, i})
			}
		case stateNonWhitespace:
			if strings.ContainsRune(t.delims, ch) {
				row.spans = append(row.spans, Span{start, i})
				state = stateWhitespace
			}
		case stateInsideGroup:
			if ch == closer {
				row.spans = append(row.spans, Span{start, i + utf8.RuneLen(ch)})
				state = stateWhitespace
			}
		}
	}

	switch {
	case state == stateNonWhitespace:
		row.spans = append(row.spans, Span{start, len(line)})
	case t.strict && state == stateWhitespace:
		row.spans = append(row.spans, Span{len(line), len(line)})
	}
	// An unterminated group is dropped without emitting a span.
}

func isGroupOpener(ch rune) bool {
	return ch == '(' || ch == '[' || ch == '"'
}

func groupCloser(ch rune) rune {
	switch ch {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '"'
	}
}
