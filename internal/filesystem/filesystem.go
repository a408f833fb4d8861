package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem is the set of file operations the splitter needs. Tests swap in
// a mock to simulate missing files or failing writes.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Abs(path string) (string, error)
	Open(name string) (io.ReadCloser, error)
	// Create truncates name if it already exists.
	Create(name string) (io.WriteCloser, error)
	Remove(name string) error
}

// DefaultFS implements the Filesystem interface using the standard `os` and `filepath` packages.
// It represents the real, underlying filesystem of the host operating system.
type DefaultFS struct{}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (DefaultFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (DefaultFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (DefaultFS) Create(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

func (DefaultFS) Remove(name string) error {
	return os.Remove(name)
}
