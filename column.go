package tabulate

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// lengthCount is one histogram bucket: how many sampled fields had a
// given display width.
type lengthCount struct {
	length int
	count  int
}

// ExtraInfo records the extremal samples a column has seen, for the
// column-info report. Ties keep the earliest sample.
type ExtraInfo struct {
	MinValue string
	MaxValue string

	minWidth int
	maxWidth int
	seeded   bool
}

func (e *ExtraInfo) observe(field string, width int) {
	if !e.seeded {
		e.MinValue, e.MaxValue = field, field
		e.minWidth, e.maxWidth = width, width
		e.seeded = true
		return
	}
	if width < e.minWidth {
		e.MinValue, e.minWidth = field, width
	}
	if width > e.maxWidth {
		e.MaxValue, e.maxWidth = field, width
	}
}

// MeasureColumn accumulates field-width observations for one column
// during the measuring phase. It keeps a histogram of observed
// display widths, not the samples themselves, so memory grows with
// the number of distinct widths rather than the number of rows.
type MeasureColumn struct {
	samples   []lengthCount // ascending by length, unique
	excluded  bool
	truncated bool
	extra     *ExtraInfo
}

// NewMeasureColumn returns an empty accumulator. Extremal sample
// strings are tracked only when collectInfo is set; without it the
// column never retains input data.
func NewMeasureColumn(collectInfo bool) *MeasureColumn {
	c := &MeasureColumn{}
	if collectInfo {
		c.extra = &ExtraInfo{}
	}
	return c
}

// SetExcluded marks the column to be skipped when rendering.
func (c *MeasureColumn) SetExcluded(excluded bool) { c.excluded = excluded }

// SetTruncated marks the column's cells as truncatable to the chosen
// width.
func (c *MeasureColumn) SetTruncated(truncated bool) { c.truncated = truncated }

// AddSample records one observed field. O(log d) search plus an
// insert in the d distinct observed widths.
func (c *MeasureColumn) AddSample(field string) {
	l := runewidth.StringWidth(field)
	i := sort.Search(len(c.samples), func(i int) bool { return c.samples[i].length >= l })
	if i < len(c.samples) && c.samples[i].length == l {
		c.samples[i].count++
	} else {
		c.samples = append(c.samples, lengthCount{})
		copy(c.samples[i+1:], c.samples[i:])
		c.samples[i] = lengthCount{length: l, count: 1}
	}
	if c.extra != nil {
		c.extra.observe(field, l)
	}
}

// CalculateSize converts the accumulated histogram into a finalized
// RenderColumn. It is pure with respect to the accumulator and
// deterministic for a given histogram and ratio.
//
// ratio trades padding waste against truncation risk: 0 fits the
// widest sample exactly, larger values compress harder. Candidate
// widths are scanned from the narrowest observed width upward and
// the scan stops at the first local minimum of
//
//	score(l) = ratio*(1+waste(l)) + (1+overflow(l))²*spread
//
// where waste is the expected padding for samples narrower than l,
// overflow the expected overshoot of samples wider than l, and
// spread a correction that penalizes overflow more for columns whose
// widths span a narrow range. The greedy stop assumes the score is
// unimodal; the exact stopping behavior is part of the output
// contract and must not be replaced by an exhaustive search.
func (c *MeasureColumn) CalculateSize(ratio float64) RenderColumn {
	col := RenderColumn{excluded: c.excluded, truncated: c.truncated, extra: c.extra}
	if len(c.samples) == 0 {
		return col
	}

	minLen := c.samples[0].length
	maxLen := c.samples[len(c.samples)-1].length
	if ratio == 0 {
		// No compression wanted; the widest sample always wins.
		col.size = maxLen
		return col
	}

	n := 0
	for _, s := range c.samples {
		n += s.count
	}
	spread := 0.7 + 20.0/float64(1+maxLen-minLen)
	spread *= spread

	bestScore := math.Inf(1)
	bestSize := maxLen
	for l := minLen; l <= maxLen; l++ {
		var waste, overflow float64
		for _, s := range c.samples {
			p := float64(s.count) / float64(n)
			switch {
			case s.length < l:
				waste += p * float64(l-s.length)
			case s.length > l:
				overflow += p * float64(s.length-l)
			}
		}
		score := ratio*(1+waste) + (1+overflow)*(1+overflow)*spread
		if score >= bestScore {
			break
		}
		bestScore = score
		bestSize = l
	}
	col.size = bestSize
	return col
}

// RenderColumn is a finalized column: the chosen width plus render
// flags, immutable after creation.
type RenderColumn struct {
	size      int
	excluded  bool
	truncated bool
	extra     *ExtraInfo
}

// Size returns the chosen width in display columns.
func (c RenderColumn) Size() int { return c.size }

// Excluded reports whether the column is skipped when rendering.
func (c RenderColumn) Excluded() bool { return c.excluded }

// Truncated reports whether over-wide cells are cut to the column
// width.
func (c RenderColumn) Truncated() bool { return c.truncated }

// Extra returns the extremal samples, or nil when they were not
// collected.
func (c RenderColumn) Extra() *ExtraInfo {
	if c.extra == nil || !c.extra.seeded {
		return nil
	}
	return c.extra
}

// printCell writes one cell and returns the overflow carried to the
// next cell in the same row. A cell wider than its column pushes the
// overshoot onto later columns, which shrink until the row is back
// on its column grid; the compensation never crosses rows.
func (c RenderColumn) printCell(w io.Writer, cell string, overflow int, last bool) (int, error) {
	if last {
		// The final rendered cell is never padded or truncated.
		_, err := io.WriteString(w, cell)
		return 0, err
	}

	outWidth := c.size - min(overflow, c.size)
	width := runewidth.StringWidth(cell)

	if c.truncated && width > outWidth {
		if outWidth == 0 {
			_, err := io.WriteString(w, ellipsis)
			return 1, err
		}
		_, err := io.WriteString(w, runewidth.Truncate(cell, outWidth, ellipsis))
		return 0, err
	}

	if _, err := io.WriteString(w, cell); err != nil {
		return 0, err
	}
	if width < outWidth {
		if _, err := io.WriteString(w, strings.Repeat(" ", outWidth-width)); err != nil {
			return 0, err
		}
	}
	return max(0, overflow+max(outWidth, width)-c.size), nil
}

// printInfo writes the per-column block of the column-info report.
func (c RenderColumn) printInfo(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "  width: %d\n", c.size); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  excluded: %t\n", c.excluded); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  truncated: %t\n", c.truncated); err != nil {
		return err
	}
	if e := c.Extra(); e != nil {
		if _, err := fmt.Fprintf(w, "  shortest: %q (%d)\n", e.MinValue, e.minWidth); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  longest: %q (%d)\n", e.MaxValue, e.maxWidth); err != nil {
			return err
		}
	}
	return nil
}
