package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/IgorBayerl/splitfile/internal/filereader"
	"github.com/IgorBayerl/splitfile/internal/filesystem"
	"github.com/IgorBayerl/splitfile/internal/logging"
	"github.com/IgorBayerl/splitfile/internal/reporter/textsummary"
	"github.com/IgorBayerl/splitfile/internal/splitconfig"
	"github.com/IgorBayerl/splitfile/internal/splitter"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	flags := flag.NewFlagSet("splitfile", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		inputFile string
		lines     int
		skipFirst bool
	)
	flags.StringVar(&inputFile, "file", "", "Input file to split (required)")
	flags.StringVar(&inputFile, "f", "", "Shorthand for -file")
	flags.IntVar(&lines, "lines", splitconfig.DefaultLinesPerChunk, "Maximum number of lines per output file")
	flags.IntVar(&lines, "l", splitconfig.DefaultLinesPerChunk, "Shorthand for -lines")
	flags.BoolVar(&skipFirst, "skipfirst", false, "Skip the first line of the input (e.g. a CSV header)")
	flags.BoolVar(&skipFirst, "s", false, "Shorthand for -skipfirst")
	verbosityStr := flags.String("verbosity", "Info", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")
	clean := flags.Bool("clean", false, "Remove chunk files left over from an earlier run with more chunks")
	count := flags.Bool("count", false, "Only report how many chunks would be written")
	showVersion := flags.Bool("version", false, "Print the version and exit")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	fmt.Fprintf(stdout, "Splitfile utility v%s\n\n", version)
	if *showVersion {
		return exitOK
	}

	verbosity, err := logging.ParseVerbosity(*verbosityStr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cfg := splitconfig.NewSplitConfiguration(inputFile, lines, skipFirst, verbosity, *clean)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		flags.Usage()
		return exitUsage
	}

	logger := logging.NewLogger(stderr, cfg.VerbosityLevel())
	fsys := filesystem.DefaultFS{}

	inputPath, err := fsys.Abs(cfg.InputFile())
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to resolve %s: %v\n", cfg.InputFile(), err)
		return exitError
	}
	cfg = splitconfig.NewSplitConfiguration(inputPath, cfg.LinesPerChunk(), cfg.SkipFirstLine(), cfg.VerbosityLevel(), cfg.CleanStaleChunks())
	report := textsummary.NewTextReportBuilder(stdout)

	if *count {
		total, err := filereader.CountLinesInFile(fsys, cfg.InputFile())
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to count lines of %s: %v\n", cfg.InputFile(), err)
			return exitError
		}
		fmt.Fprintln(stdout, report.CountLine(cfg.InputFile(), total,
			textsummary.ChunkCount(total, cfg.LinesPerChunk(), cfg.SkipFirstLine())))
		return exitOK
	}

	fmt.Fprintln(stdout, report.PlanLine(cfg.InputFile(), cfg.LinesPerChunk(), cfg.SkipFirstLine()))

	result, err := splitter.New(fsys, logger).Split(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v (kind=%s)\n", err, splitter.KindOf(err))
		return exitError
	}

	if cfg.CleanStaleChunks() {
		removed, err := splitter.RemoveStaleChunks(fsys, cfg.InputFile(), len(result.Chunks))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		for _, path := range removed {
			logger.Info("Removed stale chunk", "file", path)
		}
	}

	if err := report.CreateReport(result); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "\nDone in %.2f seconds\n", time.Since(start).Seconds())
	return exitOK
}
