package splitconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IgorBayerl/splitfile/internal/logging"
)

// DefaultLinesPerChunk is the chunk size the CLI uses when none is given.
const DefaultLinesPerChunk = 1000

var (
	ErrMissingInputFile     = errors.New("input file is required")
	ErrInvalidLinesPerChunk = errors.New("lines per chunk must be at least 1")
)

// ISplitConfiguration defines the parameters of one split run.
type ISplitConfiguration interface {
	InputFile() string
	LinesPerChunk() int
	SkipFirstLine() bool
	VerbosityLevel() logging.VerbosityLevel
	// CleanStaleChunks asks for chunk files left over from an earlier run
	// with more chunks to be removed after a successful split.
	CleanStaleChunks() bool
	Validate() error
}

// SplitConfiguration is a concrete implementation of ISplitConfiguration.
type SplitConfiguration struct {
	InFile     string
	Lines      int
	SkipFirst  bool
	VLevel     logging.VerbosityLevel
	CleanStale bool
}

func (c *SplitConfiguration) InputFile() string                      { return c.InFile }
func (c *SplitConfiguration) LinesPerChunk() int                     { return c.Lines }
func (c *SplitConfiguration) SkipFirstLine() bool                    { return c.SkipFirst }
func (c *SplitConfiguration) VerbosityLevel() logging.VerbosityLevel { return c.VLevel }
func (c *SplitConfiguration) CleanStaleChunks() bool                 { return c.CleanStale }

// Validate rejects configurations the splitter cannot run with.
func (c *SplitConfiguration) Validate() error {
	if strings.TrimSpace(c.InFile) == "" {
		return ErrMissingInputFile
	}
	if c.Lines < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidLinesPerChunk, c.Lines)
	}
	return nil
}

// NewSplitConfiguration is a constructor for SplitConfiguration. Values are
// stored as given; call Validate before use.
func NewSplitConfiguration(
	inputFile string,
	lines int,
	skipFirst bool,
	verbosity logging.VerbosityLevel,
	cleanStale bool,
) *SplitConfiguration {
	return &SplitConfiguration{
		InFile:     inputFile,
		Lines:      lines,
		SkipFirst:  skipFirst,
		VLevel:     verbosity,
		CleanStale: cleanStale,
	}
}
