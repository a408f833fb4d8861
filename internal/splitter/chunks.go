package splitter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/IgorBayerl/splitfile/internal/filesystem"
	"github.com/IgorBayerl/splitfile/internal/glob"
	"github.com/IgorBayerl/splitfile/internal/utils"
)

// ChunkFile is a chunk file found on disk.
type ChunkFile struct {
	Index int
	Path  string
}

// FindChunks lists the chunk files of inputPath that currently exist, in
// index order. Names that only look like chunks ("data_x.csv",
// "data_1_2.csv") are ignored.
func FindChunks(fsys filesystem.Filesystem, inputPath string) ([]ChunkFile, error) {
	dir, name := filepath.Split(inputPath)
	stem, ext, hasExt := utils.SplitExtension(name)
	prefix := stem + "_"
	suffix := ""
	if hasExt {
		suffix = "." + ext
	}

	g := glob.NewGlob(filepath.Join(dir, glob.QuoteMeta(prefix)+"*"+glob.QuoteMeta(suffix)))
	g.IgnoreCase = false
	matches, err := g.Expand(fsys)
	if err != nil {
		return nil, fmt.Errorf("find chunks of %s: %w", inputPath, err)
	}

	chunks := make([]ChunkFile, 0, len(matches))
	for _, match := range matches {
		base := filepath.Base(match)
		if len(base) < len(prefix)+len(suffix) {
			continue
		}
		index, ok := utils.ParseIndex(strings.TrimSuffix(strings.TrimPrefix(base, prefix), suffix))
		if !ok {
			continue
		}
		chunks = append(chunks, ChunkFile{Index: index, Path: match})
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	return chunks, nil
}

// RemoveStaleChunks deletes the chunk files of inputPath whose index is keep
// or higher, such as the tail left behind by an earlier run that produced
// more chunks. It returns the removed paths.
func RemoveStaleChunks(fsys filesystem.Filesystem, inputPath string, keep int) ([]string, error) {
	chunks, err := FindChunks(fsys, inputPath)
	if err != nil {
		return nil, err
	}
	removed := []string{}
	for _, c := range chunks {
		if c.Index < keep {
			continue
		}
		if err := fsys.Remove(c.Path); err != nil {
			return removed, fmt.Errorf("remove stale chunk %s: %w", c.Path, err)
		}
		removed = append(removed, c.Path)
	}
	return removed, nil
}
