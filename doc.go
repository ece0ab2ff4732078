// Package tabulate reprints line-oriented, loosely delimited tabular
// text (command output, logs, whitespace- or CSV-ish data) with
// column-aligned fixed-width fields, streaming rather than buffering
// the input whenever it can.
//
// The entry point is [Process], which reads lines from a reader,
// estimates per-column widths from a configurable prefix of the
// input, replays the buffered prefix, and then streams the remainder
// with the widths frozen. [Options] controls the run.
//
// # Tokenizing
//
// Each line is split by [Tokenizer] into field spans over the line
// buffer, so no per-field allocation occurs. Any character in
// Options.Delimiters separates fields; runs of delimiters collapse
// unless StrictDelimiters is set, in which case empty fields are
// preserved. Fields opened by '(', '[', or '"' extend to the
// matching closer, delimiters included, which keeps bracketed log
// payloads intact. There is no nesting and no escaping.
//
// # Column sizing
//
// Every column keeps a histogram of observed display widths in a
// [MeasureColumn]. Finalizing a column picks the width that
// minimizes a weighted sum of expected padding waste and expected
// overflow; Options.Ratio shifts the balance, with 0 meaning "fit
// the widest sample". See [MeasureColumn.CalculateSize] for the
// exact scoring.
//
// # Rendering
//
// Finalized columns render cells left-aligned and padded to the
// chosen width. A cell wider than its column either spills into an
// overflow budget repaid by later columns in the same row, or, for
// columns selected by Options.Truncate, is cut to the width with a
// trailing ellipsis. The last rendered cell of a row is always
// printed verbatim.
//
// # Selectors
//
// Columns are addressed by 1-based selectors parsed with
// [ParseRange]/[ParseRanges]: "3" (one column), "2-" (from 2 on),
// "2-5" (inclusive), "-4" (up to 4). Inclusion, exclusion, and
// truncation all take selector sets.
//
// # Online mode
//
// Options.Online renders each row immediately using width estimates
// recomputed from the rows seen so far, trading alignment stability
// for zero buffering latency.
//
// # Errors
//
// Selector errors wrap the exported sentinels [ErrRangeSyntax],
// [ErrDecreasingRange], and [ErrColumnsStartAtOne]. I/O errors from
// the underlying streams are returned unwrapped.
package tabulate
