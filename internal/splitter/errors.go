package splitter

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies why a split failed. Every kind is terminal for the run.
type Kind int

const (
	Unknown Kind = iota
	// OpenFailed: the input file could not be opened.
	OpenFailed
	// ReadFailed: reading a line from the input failed mid-stream.
	ReadFailed
	// ChunkCreateFailed: a chunk file could not be created or truncated.
	ChunkCreateFailed
	// WriteFailed: writing line bytes to the current chunk failed.
	WriteFailed
	// FlushFailed: flushing or closing a chunk failed.
	FlushFailed
	// InvalidInput: the parameters were rejected before any I/O happened.
	InvalidInput
)

var kindNames = [...]string{
	Unknown:           "Unknown",
	OpenFailed:        "OpenFailed",
	ReadFailed:        "ReadFailed",
	ChunkCreateFailed: "ChunkCreateFailed",
	WriteFailed:       "WriteFailed",
	FlushFailed:       "FlushFailed",
	InvalidInput:      "InvalidInput",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Sentinels for errors.Is, one per Kind.
var (
	ErrOpenFailed        = errors.New("open failed")
	ErrReadFailed        = errors.New("read failed")
	ErrChunkCreateFailed = errors.New("chunk create failed")
	ErrWriteFailed       = errors.New("write failed")
	ErrFlushFailed       = errors.New("flush failed")
	ErrInvalidInput      = errors.New("invalid input")
)

var sentinels = map[Kind]error{
	OpenFailed:        ErrOpenFailed,
	ReadFailed:        ErrReadFailed,
	ChunkCreateFailed: ErrChunkCreateFailed,
	WriteFailed:       ErrWriteFailed,
	FlushFailed:       ErrFlushFailed,
	InvalidInput:      ErrInvalidInput,
}

const noChunk = -1

// Error is returned by every failing split. Path is the input file for
// OpenFailed, ReadFailed and InvalidInput, and the chunk file otherwise.
type Error struct {
	Kind  Kind
	Path  string
	Chunk int
	Err   error
}

func newError(kind Kind, path string, chunk int, err error) *Error {
	return &Error{Kind: kind, Path: path, Chunk: chunk, Err: err}
}

func (e *Error) Error() string {
	cause := e.Err
	var pe *fs.PathError
	if errors.As(e.Err, &pe) && pe.Path == e.Path {
		cause = pe.Err
	}

	var op string
	switch e.Kind {
	case OpenFailed:
		op = "open input"
	case ReadFailed:
		op = "read input"
	case ChunkCreateFailed:
		op = fmt.Sprintf("create chunk %d", e.Chunk)
	case WriteFailed:
		op = fmt.Sprintf("write chunk %d", e.Chunk)
	case FlushFailed:
		op = fmt.Sprintf("flush chunk %d", e.Chunk)
	case InvalidInput:
		op = "invalid input"
	default:
		op = "split"
	}
	return fmt.Sprintf("%s %s: %v", op, e.Path, cause)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && target == s
}

// KindOf returns the Kind of err, or Unknown when err did not come from a split.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
