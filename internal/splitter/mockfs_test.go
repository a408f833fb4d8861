package splitter

import (
	"bytes"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileInfo implements fs.FileInfo for testing.
type MockFileInfo struct {
	name string
	size int64
}

func (m MockFileInfo) Name() string       { return m.name }
func (m MockFileInfo) Size() int64        { return m.size }
func (m MockFileInfo) Mode() fs.FileMode  { return 0o644 }
func (m MockFileInfo) ModTime() time.Time { return time.Time{} }
func (m MockFileInfo) IsDir() bool        { return false }
func (m MockFileInfo) Sys() interface{}   { return nil }

// MockDirEntry implements fs.DirEntry for testing.
type MockDirEntry struct {
	info MockFileInfo
}

func (m MockDirEntry) Name() string               { return m.info.name }
func (m MockDirEntry) IsDir() bool                { return false }
func (m MockDirEntry) Type() fs.FileMode          { return 0 }
func (m MockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// MockFilesystem is an in-memory filesystem.Filesystem with fault injection.
type MockFilesystem struct {
	files map[string]*bytes.Buffer

	// createErr fails Create for the listed paths.
	createErr map[string]error
	// readErr makes reads of the listed paths fail once their content is consumed.
	readErr map[string]error
	// writeErr fails writes to the listed paths once limit bytes were accepted.
	writeErr   map[string]error
	writeLimit int
	// closeErr fails Close of the listed chunk paths.
	closeErr map[string]error

	created []string
	open    int
	maxOpen int
}

func NewMockFilesystem() *MockFilesystem {
	return &MockFilesystem{
		files:     make(map[string]*bytes.Buffer),
		createErr: make(map[string]error),
		readErr:   make(map[string]error),
		writeErr:  make(map[string]error),
		closeErr:  make(map[string]error),
	}
}

func (m *MockFilesystem) AddFile(path, content string) {
	m.files[filepath.Clean(path)] = bytes.NewBufferString(content)
}

func (m *MockFilesystem) Content(path string) (string, bool) {
	b, ok := m.files[filepath.Clean(path)]
	if !ok {
		return "", false
	}
	return b.String(), true
}

func (m *MockFilesystem) Stat(name string) (fs.FileInfo, error) {
	b, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return MockFileInfo{name: filepath.Base(name), size: int64(b.Len())}, nil
}

func (m *MockFilesystem) ReadDir(name string) ([]fs.DirEntry, error) {
	dir := filepath.Clean(name)
	var entries []fs.DirEntry
	for path, b := range m.files {
		if filepath.Dir(path) == dir {
			entries = append(entries, MockDirEntry{info: MockFileInfo{name: filepath.Base(path), size: int64(b.Len())}})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MockFilesystem) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join("/", path), nil
}

func (m *MockFilesystem) Open(name string) (io.ReadCloser, error) {
	path := filepath.Clean(name)
	b, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &mockReader{r: strings.NewReader(b.String()), err: m.readErr[path]}, nil
}

func (m *MockFilesystem) Create(name string) (io.WriteCloser, error) {
	path := filepath.Clean(name)
	if err, ok := m.createErr[path]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	b := &bytes.Buffer{}
	m.files[path] = b
	m.created = append(m.created, path)
	m.open++
	if m.open > m.maxOpen {
		m.maxOpen = m.open
	}
	return &mockWriter{fs: m, buf: b, path: path, err: m.writeErr[path], limit: m.writeLimit}, nil
}

func (m *MockFilesystem) Remove(name string) error {
	path := filepath.Clean(name)
	if _, ok := m.files[path]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, path)
	return nil
}

type mockReader struct {
	r   *strings.Reader
	err error
}

func (r *mockReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err == io.EOF && r.err != nil {
		return n, r.err
	}
	return n, err
}

func (r *mockReader) Close() error { return nil }

type mockWriter struct {
	fs     *MockFilesystem
	buf    *bytes.Buffer
	path   string
	err    error
	limit  int
	closed bool
}

func (w *mockWriter) Write(p []byte) (int, error) {
	if w.err != nil && w.buf.Len()+len(p) > w.limit {
		n := w.limit - w.buf.Len()
		if n < 0 {
			n = 0
		}
		w.buf.Write(p[:n])
		return n, w.err
	}
	return w.buf.Write(p)
}

func (w *mockWriter) Close() error {
	if !w.closed {
		w.closed = true
		w.fs.open--
	}
	if err, ok := w.fs.closeErr[w.path]; ok {
		return err
	}
	return nil
}
