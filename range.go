package tabulate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrRangeSyntax       = errors.New("could not parse as a range")
	ErrDecreasingRange   = errors.New("invalid decreasing range")
	ErrColumnsStartAtOne = errors.New("columns are numbered starting from 1")
)

type rangeKind int

const (
	rangeFrom rangeKind = iota
	rangeTo
	rangeBetween
)

// Range selects a contiguous run of 1-based column numbers. Use
// [From], [To], or [Between] to construct one, or [ParseRange] to
// parse the selector syntax ("N", "N-", "N-M", "-M").
type Range struct {
	kind rangeKind
	a, b int
}

// From returns a Range matching every column numbered n or higher.
func From(n int) (Range, error) {
	if n < 1 {
		return Range{}, ErrColumnsStartAtOne
	}
	return Range{kind: rangeFrom, a: n}, nil
}

// To returns a Range matching every column up to and including n.
func To(n int) (Range, error) {
	if n < 1 {
		return Range{}, ErrColumnsStartAtOne
	}
	return Range{kind: rangeTo, b: n}, nil
}

// Between returns a Range matching columns a through b inclusive.
func Between(a, b int) (Range, error) {
	if a < 1 || b < 1 {
		return Range{}, ErrColumnsStartAtOne
	}
	if b < a {
		return Range{}, fmt.Errorf("%w: %d-%d", ErrDecreasingRange, a, b)
	}
	return Range{kind: rangeBetween, a: a, b: b}, nil
}

// Contains reports whether the 1-based column number n is selected.
func (r Range) Contains(n int) bool {
	switch r.kind {
	case rangeFrom:
		return r.a <= n
	case rangeTo:
		return n <= r.b
	default:
		return r.a <= n && n <= r.b
	}
}

// ParseRange parses a single column selector. The recognized forms
// are "N" (one column), "N-" (from N to the last column), "N-M"
// (inclusive), and "-M" (from the first column to M). Columns are
// numbered starting at one.
func ParseRange(s string) (Range, error) {
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		n, perr := parseColumnNumber(rest)
		if perr != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrRangeSyntax, s)
		}
		return To(n)
	}
	before, after, dashed := strings.Cut(s, "-")
	a, perr := parseColumnNumber(before)
	if perr != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrRangeSyntax, s)
	}
	if !dashed {
		return Between(a, a)
	}
	if after == "" {
		return From(a)
	}
	b, perr := parseColumnNumber(after)
	if perr != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrRangeSyntax, s)
	}
	if b < a {
		return Range{}, fmt.Errorf("%w: %q", ErrDecreasingRange, s)
	}
	return Between(a, b)
}

// parseColumnNumber accepts plain decimal digits only; signs,
// spaces, and empty strings are selector syntax errors.
func parseColumnNumber(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Ranges is a set of column selectors.
type Ranges []Range

// ParseRanges parses a comma-separated list of selectors.
func ParseRanges(s string) (Ranges, error) {
	var rs Ranges
	for _, part := range strings.Split(s, ",") {
		r, err := ParseRange(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, nil
}

// AnyContains reports whether any selector in the set matches the
// 1-based column number n. An empty set matches nothing.
func (rs Ranges) AnyContains(n int) bool {
	for _, r := range rs {
		if r.Contains(n) {
			return true
		}
	}
	return false
}
