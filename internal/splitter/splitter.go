// Package splitter partitions a line-oriented file into numbered chunk files
// of at most N lines each.
//
// Chunks are written next to the input and named by utils.ChunkFilename.
// Chunk 0 always exists after a run that got past opening the input, even
// when no line reached it. Later chunks are only created once a line needs
// them, so every chunk but the last holds exactly N lines and the last holds
// between 1 and N. Existing chunk files are truncated, never appended to.
//
// A failed split leaves everything already written on disk; cleaning up is the
// caller's decision.
package splitter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/IgorBayerl/splitfile/internal/filereader"
	"github.com/IgorBayerl/splitfile/internal/filesystem"
	"github.com/IgorBayerl/splitfile/internal/utils"
)

const defaultWriteBuffer = 64 * 1024

// ErrIsDirectory is wrapped by the OpenFailed error returned for a directory
// input.
var ErrIsDirectory = errors.New("input is a directory")

// Config is what a split run needs from its caller.
type Config interface {
	InputFile() string
	LinesPerChunk() int
	SkipFirstLine() bool
}

// ChunkInfo describes one chunk file after it was closed.
type ChunkInfo struct {
	Index int
	Path  string
	Lines int
	Bytes int64
}

// Result reports what a split produced. On failure it describes the state
// left on disk up to the failing step.
type Result struct {
	InputFile    string
	LinesRead    int
	LinesSkipped int
	LinesWritten int
	Chunks       []ChunkInfo
}

// Splitter runs splits against a Filesystem. It holds no per-run state, but
// concurrent runs on the same input overwrite each other's chunks.
type Splitter struct {
	fsys    filesystem.Filesystem
	logger  *slog.Logger
	bufSize int
}

// New returns a Splitter. A nil fsys uses the host filesystem and a nil
// logger uses slog.Default().
func New(fsys filesystem.Filesystem, logger *slog.Logger) *Splitter {
	if fsys == nil {
		fsys = filesystem.DefaultFS{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{fsys: fsys, logger: logger, bufSize: defaultWriteBuffer}
}

type params struct {
	input string
	lines int
	skip  bool
}

func (p params) InputFile() string   { return p.input }
func (p params) LinesPerChunk() int  { return p.lines }
func (p params) SkipFirstLine() bool { return p.skip }

// SplitFile splits inputPath on the host filesystem.
func SplitFile(inputPath string, linesPerChunk int, skipFirst bool) (*Result, error) {
	return New(nil, nil).Split(params{input: inputPath, lines: linesPerChunk, skip: skipFirst})
}

// splitState is the rotation state machine of a single run.
type splitState struct {
	lineIndex    int // lines consumed from the input, skipped one included
	linesInChunk int // resets to 0 exactly when chunkIndex increments
	chunkIndex   int
}

// Split reads cfg.InputFile() line by line and writes the lines into chunk
// files. It stops at the first I/O error and returns it as an *Error.
func (s *Splitter) Split(cfg Config) (*Result, error) {
	input := cfg.InputFile()
	limit := cfg.LinesPerChunk()
	if limit < 1 {
		return nil, newError(InvalidInput, input, noChunk, fmt.Errorf("lines per chunk must be at least 1, got %d", limit))
	}

	info, err := s.fsys.Stat(input)
	if err != nil {
		return nil, newError(OpenFailed, input, noChunk, err)
	}
	if info.IsDir() {
		return nil, newError(OpenFailed, input, noChunk, ErrIsDirectory)
	}

	reader, err := filereader.Open(s.fsys, input)
	if err != nil {
		return nil, newError(OpenFailed, input, noChunk, err)
	}
	defer reader.Close()

	s.logger.Info("Opening input file", "file", input, "linesPerChunk", limit, "skipFirst", cfg.SkipFirstLine())

	result := &Result{InputFile: input}
	var state splitState

	current, err := s.createChunk(input, state.chunkIndex)
	if err != nil {
		return result, err
	}

	for line, err := range reader.Lines() {
		if err != nil {
			s.abort(result, current)
			return result, newError(ReadFailed, input, state.chunkIndex, err)
		}

		first := state.lineIndex == 0
		state.lineIndex++
		result.LinesRead++
		if first && cfg.SkipFirstLine() {
			s.logger.Debug("Skipping first line", "bytes", line.Len())
			result.LinesSkipped++
			line.Release()
			continue
		}

		if current == nil {
			current, err = s.createChunk(input, state.chunkIndex)
			if err != nil {
				line.Release()
				return result, err
			}
		}

		err = current.write(line.Bytes())
		line.Release()
		if err != nil {
			s.abort(result, current)
			return result, err
		}
		state.linesInChunk++
		result.LinesWritten++

		if state.linesInChunk >= limit {
			if err := s.finalize(result, current); err != nil {
				return result, err
			}
			current = nil
			state.chunkIndex++
			state.linesInChunk = 0
		}
	}

	if current != nil {
		if err := s.finalize(result, current); err != nil {
			return result, err
		}
	}

	s.logger.Info("Split complete",
		"file", input,
		"linesRead", result.LinesRead,
		"linesWritten", result.LinesWritten,
		"chunks", len(result.Chunks))
	return result, nil
}

func (s *Splitter) createChunk(input string, index int) (*chunkWriter, error) {
	path := utils.ChunkFilename(input, index)
	f, err := s.fsys.Create(path)
	if err != nil {
		return nil, newError(ChunkCreateFailed, path, index, err)
	}
	s.logger.Debug("Created chunk", "chunk", index, "file", path)
	return &chunkWriter{
		info: ChunkInfo{Index: index, Path: path},
		file: f,
		w:    bufio.NewWriterSize(f, s.bufSize),
	}, nil
}

func (s *Splitter) finalize(result *Result, c *chunkWriter) error {
	err := c.close()
	result.Chunks = append(result.Chunks, c.info)
	if err != nil {
		return err
	}
	s.logger.Debug("Finalized chunk", "chunk", c.info.Index, "file", c.info.Path, "lines", c.info.Lines, "bytes", c.info.Bytes)
	return nil
}

// abort closes c after a failure elsewhere. Its own close error is dropped in
// favour of the error that caused the abort.
func (s *Splitter) abort(result *Result, c *chunkWriter) {
	if c == nil {
		return
	}
	if err := s.finalize(result, c); err != nil {
		s.logger.Warn("Could not close chunk after failure", "file", c.info.Path, "error", err)
	}
}

type chunkWriter struct {
	info ChunkInfo
	file io.WriteCloser
	w    *bufio.Writer
}

func (c *chunkWriter) write(p []byte) error {
	n, err := c.w.Write(p)
	c.info.Bytes += int64(n)
	if err != nil {
		return newError(WriteFailed, c.info.Path, c.info.Index, err)
	}
	c.info.Lines++
	return nil
}

// close flushes buffered lines and closes the file. The file is closed even
// when the flush fails.
func (c *chunkWriter) close() error {
	flushErr := c.w.Flush()
	closeErr := c.file.Close()
	if flushErr != nil {
		return newError(FlushFailed, c.info.Path, c.info.Index, flushErr)
	}
	if closeErr != nil {
		return newError(FlushFailed, c.info.Path, c.info.Index, closeErr)
	}
	return nil
}
