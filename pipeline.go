package tabulate

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Defaults applied by [Process] when the corresponding Options field
// is left zero.
const (
	DefaultDelimiters      = " \t"
	DefaultOutputDelimiter = "  "
	DefaultEstimateLines   = 1000
	DefaultRatio           = 1.0
)

// maxLineBytes bounds the size of a single input line.
const maxLineBytes = 1 << 20

// Options configures a single processing run.
type Options struct {
	// Truncate selects columns whose cells may be cut to the chosen
	// width. An empty set truncates nothing.
	Truncate Ranges

	// Ratio trades padding waste against truncation risk. 0 fits
	// every value; larger values compress harder. See
	// [MeasureColumn.CalculateSize].
	Ratio float64

	// EstimateLines is the number of leading lines used to estimate
	// column widths. 0 measures the whole input, at the cost of
	// buffering all of it.
	EstimateLines int

	// Include restricts rendering to the selected columns. Nil
	// includes every column; a non-nil empty set includes none.
	Include Ranges

	// Exclude drops the selected columns. Exclusion wins over
	// Include.
	Exclude Ranges

	// Delimiters is the set of field delimiter characters. Empty
	// means [DefaultDelimiters].
	Delimiters string

	// OutputDelimiter separates rendered fields. Empty means
	// [DefaultOutputDelimiter].
	OutputDelimiter string

	// StrictDelimiters preserves empty fields between adjacent
	// delimiters and disables bracket/quote grouping.
	StrictDelimiters bool

	// Online renders every row immediately using width estimates
	// from the rows seen so far, instead of buffering a backlog.
	// Later rows may render with different widths than earlier ones.
	Online bool

	// PrintInfo replaces row output with a per-column report of the
	// finalized widths and flags.
	PrintInfo bool

	// Logger receives debug traces of pipeline phase changes. Nil
	// means no logging.
	Logger *zap.Logger
}

type pipelineState int

const (
	stateMeasuring pipelineState = iota
	statePrintBacklog
	stateProcessInput
)

// Process reads lines from r and writes column-aligned lines to w.
//
// The run has three phases. While measuring, lines are tokenized and
// fed into per-column width histograms, and the parsed rows are
// buffered. Once Options.EstimateLines lines are measured (or input
// ends), the histograms are finalized into fixed column widths, the
// backlog is rendered and discarded, and every remaining line is
// rendered as it is read without further buffering.
//
// Both r and w should be buffered by the caller. Any read or write
// error aborts processing and is returned as-is; callers that treat
// a broken output pipe as success must reclassify it themselves.
func Process(r io.Reader, w io.Writer, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	delims := opts.Delimiters
	if delims == "" {
		delims = DefaultDelimiters
	}
	outDelim := opts.OutputDelimiter
	if outDelim == "" {
		outDelim = DefaultOutputDelimiter
	}

	tok := NewTokenizer(delims, opts.StrictDelimiters)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		measure []*MeasureColumn
		columns []RenderColumn
		backlog []Row
		row     Row
	)

	state := stateMeasuring
	measured := 1
	for {
		switch state {
		case stateMeasuring:
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return err
				}
				state = statePrintBacklog
				continue
			}
			tok.SplitInto(&row, scanner.Text())
			updateColumns(&measure, &row, &opts)
			if opts.Online {
				columns = finalizeColumns(measure, opts.Ratio, columns[:0])
				if err := printRow(w, columns, &row, outDelim); err != nil {
					return err
				}
			} else {
				backlog = append(backlog, row.clone())
			}
			if opts.EstimateLines == 0 || measured < opts.EstimateLines {
				measured++
			} else {
				state = statePrintBacklog
			}

		case statePrintBacklog:
			columns = finalizeColumns(measure, opts.Ratio, columns[:0])
			log.Debug("column sizes finalized",
				zap.Int("columns", len(columns)),
				zap.Int("backlog_rows", len(backlog)),
				zap.Ints("widths", columnWidths(columns)),
			)
			if opts.PrintInfo {
				return printColumnInfo(w, columns)
			}
			for i := range backlog {
				if err := printRow(w, columns, &backlog[i], outDelim); err != nil {
					return err
				}
			}
			backlog = nil
			state = stateProcessInput

		case stateProcessInput:
			if !scanner.Scan() {
				return scanner.Err()
			}
			tok.SplitInto(&row, scanner.Text())
			if err := printRow(w, columns, &row, outDelim); err != nil {
				return err
			}
		}
	}
}

// updateColumns feeds one row into the measuring columns, creating
// new columns the first time a row is wide enough to reach them.
// Inclusion, exclusion, and truncation are decided once, here, from
// the new column's 1-based index.
func updateColumns(cols *[]*MeasureColumn, row *Row, opts *Options) {
	for i := 0; i < min(len(*cols), row.Len()); i++ {
		(*cols)[i].AddSample(row.Field(i))
	}
	for i := len(*cols); i < row.Len(); i++ {
		col := NewMeasureColumn(opts.PrintInfo)
		num := i + 1

		included := opts.Include == nil || opts.Include.AnyContains(num)
		col.SetExcluded(!included || opts.Exclude.AnyContains(num))
		col.SetTruncated(opts.Truncate.AnyContains(num))

		col.AddSample(row.Field(i))
		*cols = append(*cols, col)
	}
}

func finalizeColumns(measure []*MeasureColumn, ratio float64, dst []RenderColumn) []RenderColumn {
	for _, c := range measure {
		dst = append(dst, c.CalculateSize(ratio))
	}
	return dst
}

func columnWidths(columns []RenderColumn) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = c.Size()
	}
	return widths
}

// printRow renders one row against the finalized columns. Cells in
// excluded columns are skipped; cells beyond the measured column set
// are dropped. Overflow from over-wide cells is carried across the
// row so later columns absorb it.
func printRow(w io.Writer, columns []RenderColumn, row *Row, delim string) error {
	n := min(row.Len(), len(columns))
	last := -1
	for i := 0; i < n; i++ {
		if !columns[i].Excluded() {
			last = i
		}
	}

	overflow := 0
	first := true
	for i := 0; i < n; i++ {
		col := columns[i]
		if col.Excluded() {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, delim); err != nil {
				return err
			}
		}
		first = false
		var err error
		overflow, err = col.printCell(w, row.Field(i), overflow, i == last)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// printColumnInfo writes the diagnostic report, one block per
// column, 1-indexed.
func printColumnInfo(w io.Writer, columns []RenderColumn) error {
	for i, col := range columns {
		if _, err := fmt.Fprintf(w, "Column %d\n", i+1); err != nil {
			return err
		}
		if err := col.printInfo(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
