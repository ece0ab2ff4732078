package tabulate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measureSamples(collectInfo bool, samples ...string) *MeasureColumn {
	col := NewMeasureColumn(collectInfo)
	for _, s := range samples {
		col.AddSample(s)
	}
	return col
}

func TestCalculateSizeRatioZero(t *testing.T) {
	t.Parallel()
	col := measureSamples(false, "a", "abcde", "abcdefghi")
	assert.Equal(t, 9, col.CalculateSize(0).Size())
}

func TestCalculateSizeSingleWidth(t *testing.T) {
	t.Parallel()
	col := measureSamples(false, "abcd", "wxyz", "1234")
	assert.Equal(t, 4, col.CalculateSize(1).Size())
	assert.Equal(t, 4, col.CalculateSize(0).Size())
}

func TestCalculateSizePrefersWiderOnLowRatio(t *testing.T) {
	t.Parallel()
	col := measureSamples(false, "a", "ab")
	assert.Equal(t, 2, col.CalculateSize(1).Size())
}

func TestCalculateSizeGreedyStop(t *testing.T) {
	t.Parallel()
	// Nine 1-wide samples and one 10-wide sample. The scan walks up
	// from width 1 and must stop at the first local minimum of the
	// score, which sits at 8 for ratio 2 and at 1 for ratio 10.
	col := NewMeasureColumn(false)
	for i := 0; i < 9; i++ {
		col.AddSample("x")
	}
	col.AddSample(strings.Repeat("x", 10))

	assert.Equal(t, 8, col.CalculateSize(2).Size())
	assert.Equal(t, 1, col.CalculateSize(10).Size())
	assert.Equal(t, 10, col.CalculateSize(1).Size())
}

func TestCalculateSizeIsPure(t *testing.T) {
	t.Parallel()
	col := measureSamples(false, "a", "abc", "abcde")
	first := col.CalculateSize(1.5).Size()
	assert.Equal(t, first, col.CalculateSize(1.5).Size())
}

func TestCalculateSizeCarriesFlags(t *testing.T) {
	t.Parallel()
	col := measureSamples(false, "abc")
	col.SetExcluded(true)
	col.SetTruncated(true)
	rc := col.CalculateSize(1)
	assert.True(t, rc.Excluded())
	assert.True(t, rc.Truncated())
}

func TestHistogramInsertKeepsOrder(t *testing.T) {
	t.Parallel()
	col := measureSamples(false, "abc", "a", "ab", "abc", "a")
	want := []lengthCount{{1, 2}, {2, 1}, {3, 2}}
	assert.Equal(t, want, col.samples)
}

func TestExtraInfoTracksExtremalSamples(t *testing.T) {
	t.Parallel()
	col := measureSamples(true, "bb", "a", "cccc", "dddd", "x")
	e := col.CalculateSize(0).Extra()
	require.NotNil(t, e)
	// Ties keep the earliest sample.
	assert.Equal(t, "a", e.MinValue)
	assert.Equal(t, "cccc", e.MaxValue)
}

func TestExtraInfoDisabledByDefault(t *testing.T) {
	t.Parallel()
	col := measureSamples(false, "abc")
	assert.Nil(t, col.CalculateSize(0).Extra())
}

func TestAddSampleUsesDisplayWidth(t *testing.T) {
	t.Parallel()
	// "你" occupies two terminal columns.
	col := measureSamples(false, "你你")
	assert.Equal(t, 4, col.CalculateSize(0).Size())
}

func printOneCell(t *testing.T, col RenderColumn, cell string, overflow int, last bool) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	out, err := col.printCell(&buf, cell, overflow, last)
	require.NoError(t, err)
	return buf.String(), out
}

func TestPrintCellLastIsVerbatim(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 3}
	got, overflow := printOneCell(t, col, "abcdefg", 5, true)
	assert.Equal(t, "abcdefg", got)
	assert.Equal(t, 0, overflow)
}

func TestPrintCellPads(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 5}
	got, overflow := printOneCell(t, col, "ab", 0, false)
	assert.Equal(t, "ab   ", got)
	assert.Equal(t, 0, overflow)
}

func TestPrintCellOverflowAccumulates(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 5}
	got, overflow := printOneCell(t, col, "abcdefg", 0, false)
	assert.Equal(t, "abcdefg", got)
	assert.Equal(t, 2, overflow)
}

func TestPrintCellOverflowShrinksWidth(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 5}
	got, overflow := printOneCell(t, col, "ab", 2, false)
	assert.Equal(t, "ab ", got)
	assert.Equal(t, 0, overflow)
}

func TestPrintCellOverflowPaidBackPartially(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 5}
	got, overflow := printOneCell(t, col, "ab", 7, false)
	assert.Equal(t, "ab", got)
	assert.Equal(t, 4, overflow)
}

func TestPrintCellTruncates(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 5, truncated: true}
	got, overflow := printOneCell(t, col, "abcdefg", 0, false)
	assert.Equal(t, "abcd…", got)
	assert.Equal(t, 0, overflow)
}

func TestPrintCellTruncatedZeroWidth(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 2, truncated: true}
	got, overflow := printOneCell(t, col, "abcdefg", 9, false)
	assert.Equal(t, "…", got)
	assert.Equal(t, 1, overflow)
}

func TestPrintCellTruncatedButFits(t *testing.T) {
	t.Parallel()
	col := RenderColumn{size: 5, truncated: true}
	got, overflow := printOneCell(t, col, "abc", 0, false)
	assert.Equal(t, "abc  ", got)
	assert.Equal(t, 0, overflow)
}

func TestPrintRowEmptyRowPrintsNewline(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var row Row
	NewTokenizer(" ", false).SplitInto(&row, "")
	require.NoError(t, printRow(&buf, nil, &row, "  "))
	assert.Equal(t, "\n", buf.String())
}
