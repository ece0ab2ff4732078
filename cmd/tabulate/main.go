package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bjaus/tabulate"
)

const appName = "tabulate"

// version is injected at build time via -ldflags.
var version = "dev"

// allColumns is the selector used when --truncate is given without a
// value.
const allColumns = "1-"

var (
	flagTruncate string
	flagRatio    float64
	flagEstimate int
	flagInclude  string
	flagExclude  string
	flagDelims   string
	flagOutDelim string
	flagStrict   bool
	flagOnline   bool
	flagInfo     bool
	flagDebug    bool
	flagConfig   string

	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "Align columns in loosely delimited text",
		Long: appName + ` reads whitespace- or delimiter-separated lines on stdin
and reprints them with column-aligned fixed-width fields, estimating
the width of each column from the first lines of the input.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, version)
		},
	}
)

func init() {
	initFlags()
	rootCmd.AddCommand(versionCmd)
}

func initFlags() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagTruncate, "truncate", "t", "", "Truncate cells in the selected columns (no value: all columns)")
	flags.Lookup("truncate").NoOptDefVal = allColumns
	flags.Float64VarP(&flagRatio, "compress-cols", "c", tabulate.DefaultRatio, "Column compression ratio (0 fits every value)")
	flags.IntVarP(&flagEstimate, "estimate-count", "n", tabulate.DefaultEstimateLines, "Estimate column sizes from the first N lines (0: whole input)")
	flags.StringVarP(&flagInclude, "include", "i", "", "Include only the selected columns")
	flags.StringVarP(&flagExclude, "exclude", "x", "", "Exclude the selected columns (wins over --include)")
	flags.StringVarP(&flagDelims, "delimiters", "d", tabulate.DefaultDelimiters, "Set of field delimiter characters")
	flags.StringVarP(&flagOutDelim, "output-delimiter", "o", tabulate.DefaultOutputDelimiter, "String separating output fields")
	flags.BoolVarP(&flagStrict, "strict-delimiters", "s", false, "Preserve empty fields and disable bracket grouping")
	flags.BoolVar(&flagOnline, "online", false, "Print rows immediately using in-progress width estimates")
	flags.BoolVar(&flagInfo, "info", false, "Print a per-column report instead of rows")
	flags.BoolVar(&flagDebug, "debug", false, "Log pipeline debug traces to stderr")
	flags.StringVar(&flagConfig, "config", "", "Path to a defaults file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// The consumer stopped reading; not a failure.
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	if flagDebug {
		logger, lerr := newDebugLogger()
		if lerr != nil {
			return lerr
		}
		defer func() { _ = logger.Sync() }()
		opts.Logger = logger
	}

	out := bufio.NewWriter(os.Stdout)
	if err := tabulate.Process(bufio.NewReader(os.Stdin), out, opts); err != nil {
		return err
	}
	return out.Flush()
}

// applyConfig overlays file-based defaults on flags the user did not
// set explicitly.
func applyConfig(cmd *cobra.Command) error {
	cfg, err := tabulate.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if cfg.Ratio != nil && !flags.Changed("compress-cols") {
		flagRatio = *cfg.Ratio
	}
	if cfg.EstimateLines != nil && !flags.Changed("estimate-count") {
		flagEstimate = *cfg.EstimateLines
	}
	if cfg.Delimiters != nil && !flags.Changed("delimiters") {
		flagDelims = *cfg.Delimiters
	}
	if cfg.OutputDelimiter != nil && !flags.Changed("output-delimiter") {
		flagOutDelim = *cfg.OutputDelimiter
	}
	if cfg.StrictDelimiters != nil && !flags.Changed("strict-delimiters") {
		flagStrict = *cfg.StrictDelimiters
	}
	if cfg.Truncate != nil && !flags.Changed("truncate") {
		flagTruncate = *cfg.Truncate
		if flagTruncate != "" {
			// Mirror the flag's presence semantics for file values.
			_ = flags.Set("truncate", flagTruncate)
		}
	}
	if cfg.Include != nil && !flags.Changed("include") {
		flagInclude = *cfg.Include
	}
	if cfg.Exclude != nil && !flags.Changed("exclude") {
		flagExclude = *cfg.Exclude
	}
	return nil
}

// buildOptions validates flags and parses all selector sets before
// any input is read.
func buildOptions(cmd *cobra.Command) (tabulate.Options, error) {
	var opts tabulate.Options

	if flagOnline && flagInfo {
		return opts, errors.New("--online and --info are mutually exclusive")
	}
	if flagRatio < 0 {
		return opts, fmt.Errorf("invalid compression ratio %v: must not be negative", flagRatio)
	}
	if flagEstimate < 0 {
		return opts, fmt.Errorf("invalid estimate count %d: must not be negative", flagEstimate)
	}

	if cmd.Flags().Changed("truncate") {
		rs, err := tabulate.ParseRanges(flagTruncate)
		if err != nil {
			return opts, err
		}
		opts.Truncate = rs
	}
	if flagInclude != "" {
		rs, err := tabulate.ParseRanges(flagInclude)
		if err != nil {
			return opts, err
		}
		opts.Include = rs
	}
	if flagExclude != "" {
		rs, err := tabulate.ParseRanges(flagExclude)
		if err != nil {
			return opts, err
		}
		opts.Exclude = rs
	}

	opts.Ratio = flagRatio
	opts.EstimateLines = flagEstimate
	opts.Delimiters = flagDelims
	opts.OutputDelimiter = flagOutDelim
	opts.StrictDelimiters = flagStrict
	opts.Online = flagOnline
	opts.PrintInfo = flagInfo
	return opts, nil
}

func newDebugLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
