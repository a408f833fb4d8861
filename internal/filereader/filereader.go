// Package filereader streams a file one line at a time.
//
// A line is everything up to and including the next '\n'. A '\r' before the
// '\n' is kept as part of the line, and a final line without a terminator is
// still returned. Lines have no length limit.
package filereader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"sync/atomic"

	"github.com/IgorBayerl/splitfile/internal/filesystem"
)

const (
	readBufferSize    = 64 * 1024
	initialLineBuffer = 1024
)

// lineBuffer is the storage behind a Line. state packs the generation of the
// line currently stored in the high 32 bits and the number of handles to it
// that have not been released yet in the low 32 bits.
type lineBuffer struct {
	data  []byte
	state atomic.Uint64
}

func newLineBuffer() *lineBuffer {
	return &lineBuffer{data: make([]byte, 0, initialLineBuffer)}
}

func (b *lineBuffer) refs() uint32 { return uint32(b.state.Load()) }

// reset marks the buffer as holding a new line with a single handle and
// returns the generation of that line.
func (b *lineBuffer) reset() uint32 {
	gen := uint32(b.state.Load()>>32) + 1
	b.state.Store(uint64(gen)<<32 | 1)
	return gen
}

// adjust adds delta to the handle count if the buffer still holds generation
// gen and the count is not zero.
func (b *lineBuffer) adjust(gen uint32, delta int) {
	for {
		st := b.state.Load()
		n := uint32(st)
		if uint32(st>>32) != gen || n == 0 {
			return
		}
		next := uint64(gen)<<32 | uint64(uint32(int(n)+delta))
		if b.state.CompareAndSwap(st, next) {
			return
		}
	}
}

// Line is a handle to one line of input. The bytes stay valid until Release
// is called on every handle obtained for them (the one returned by Next plus
// any created with Retain).
type Line struct {
	buf *lineBuffer
	gen uint32
}

// Bytes returns the raw bytes of the line, terminator included.
// The slice must not be modified or used after Release.
func (l Line) Bytes() []byte {
	if l.buf == nil {
		return nil
	}
	return l.buf.data
}

func (l Line) Len() int { return len(l.Bytes()) }

func (l Line) String() string { return string(l.Bytes()) }

// Retain returns an additional handle to the same storage. The reader will not
// reuse the storage until that handle is released too. Retaining a line whose
// handles were all released returns a handle that holds nothing.
func (l Line) Retain() Line {
	if l.buf != nil {
		l.buf.adjust(l.gen, 1)
	}
	return l
}

// Release gives up this handle. Each handle must be released once. Releasing
// after every handle of the line was released, or after the storage moved on
// to a later line, is a no-op.
func (l Line) Release() {
	if l.buf != nil {
		l.buf.adjust(l.gen, -1)
	}
}

// LineReader produces the lines of a single stream, front to back. It is not
// safe for concurrent use and cannot be rewound.
type LineReader struct {
	rd     *bufio.Reader
	closer io.Closer
	buf    *lineBuffer
	err    error
	allocs int
}

// Open opens path for reading. Nothing is read until the first call to Next.
func Open(fsys filesystem.Filesystem, path string) (*LineReader, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewLineReader(f)
	r.closer = f
	return r, nil
}

// NewLineReader reads lines from r. Close is a no-op unless the reader was
// created by Open.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{rd: bufio.NewReaderSize(r, readBufferSize)}
}

// Next returns the next line. It returns io.EOF once the input is exhausted.
// Any other error is sticky: later calls return it again without reading.
func (r *LineReader) Next() (Line, error) {
	if r.err != nil {
		return Line{}, r.err
	}

	buf := r.claimBuffer()
	buf.data = buf.data[:0]
	for {
		frag, err := r.rd.ReadSlice('\n')
		buf.data = append(buf.data, frag...)
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF {
			r.err = io.EOF
			if len(buf.data) == 0 {
				return Line{}, io.EOF
			}
			break
		}
		r.err = fmt.Errorf("read line: %w", err)
		return Line{}, r.err
	}

	return Line{buf: buf, gen: buf.reset()}, nil
}

// claimBuffer returns the previous buffer when no handle to it is outstanding
// and a fresh one otherwise.
func (r *LineReader) claimBuffer() *lineBuffer {
	if r.buf == nil || r.buf.refs() > 0 {
		r.buf = newLineBuffer()
		r.allocs++
	}
	return r.buf
}

// Lines returns the remaining lines as a sequence. The sequence ends at end of
// input, or after yielding the first read error with a zero Line.
func (r *LineReader) Lines() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for {
			line, err := r.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Line{}, err)
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Close closes the underlying file, if any.
func (r *LineReader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// CountLinesInFile counts the lines of a file using the same rules as Next,
// so a trailing line without '\n' is counted.
func CountLinesInFile(fsys filesystem.Filesystem, filePath string) (int, error) {
	r, err := Open(fsys, filePath)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	lineCount := 0
	for line, err := range r.Lines() {
		if err != nil {
			return lineCount, err
		}
		lineCount++
		line.Release()
	}
	return lineCount, nil
}
