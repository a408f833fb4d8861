package textsummary

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/IgorBayerl/splitfile/internal/splitter"
)

// TextReportBuilder writes a plain text summary of a split run.
type TextReportBuilder struct {
	out     io.Writer
	printer *message.Printer
}

// NewTextReportBuilder creates a builder writing to out. Numbers are grouped
// the English way (1,234,567).
func NewTextReportBuilder(out io.Writer) *TextReportBuilder {
	return &TextReportBuilder{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

// CreateReport writes the summary of result.
func (b *TextReportBuilder) CreateReport(result *splitter.Result) error {
	if result == nil {
		return fmt.Errorf("no split result to report")
	}

	p := b.printer
	var total int64
	for _, c := range result.Chunks {
		total += c.Bytes
	}

	header := p.Sprintf("Summary\n"+
		"  Input file:    %s\n"+
		"  Lines read:    %d\n"+
		"  Lines skipped: %d\n"+
		"  Lines written: %d\n"+
		"  Chunks:        %d (%d bytes)\n",
		result.InputFile, result.LinesRead, result.LinesSkipped, result.LinesWritten, len(result.Chunks), total)
	if _, err := io.WriteString(b.out, header); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if len(result.Chunks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(b.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "  \tChunk\tLines\tBytes\t")
	for _, c := range result.Chunks {
		fmt.Fprint(tw, p.Sprintf("  \t%s\t%d\t%d\t\n", filepath.Base(c.Path), c.Lines, c.Bytes))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// PlanLine describes what a split with these parameters will do, e.g.
// "Splitting data.csv into files of 1,000 lines each (1 line will be skipped)".
func (b *TextReportBuilder) PlanLine(inputFile string, linesPerChunk int, skipFirst bool) string {
	skipped := 0
	if skipFirst {
		skipped = 1
	}
	noun := "lines"
	if skipped == 1 {
		noun = "line"
	}
	return b.printer.Sprintf("Splitting %s into files of %d lines each (%d %s will be skipped)",
		inputFile, linesPerChunk, skipped, noun)
}

// ChunkCount returns how many chunks a split of totalLines input lines
// produces, counting the empty chunk 0 of an input with no data lines.
func ChunkCount(totalLines, linesPerChunk int, skipFirst bool) int {
	if skipFirst && totalLines > 0 {
		totalLines--
	}
	if totalLines == 0 || linesPerChunk < 1 {
		return 1
	}
	return (totalLines + linesPerChunk - 1) / linesPerChunk
}

// CountLine formats the dry-run answer for the CLI's -count flag.
func (b *TextReportBuilder) CountLine(inputFile string, totalLines, chunks int) string {
	return b.printer.Sprintf("%s: %d lines, %d chunks", inputFile, totalLines, chunks)
}
