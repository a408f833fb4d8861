package utils

import (
	"os"
	"strconv"
	"strings"
)

// SplitExtension splits path at the last '.' of its final segment.
// ok is false when the final segment has no '.'; dots in directory names are
// never treated as an extension separator.
func SplitExtension(path string) (stem, ext string, ok bool) {
	for i := len(path) - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			return path, "", false
		}
		if path[i] == '.' {
			return path[:i], path[i+1:], true
		}
	}
	return path, "", false
}

// ChunkFilename returns the output path of chunk index for inputPath:
// "data.csv" -> "data_3.csv", "a.b.csv" -> "a.b_3.csv", "data" -> "data_3".
// The result lives next to the input.
func ChunkFilename(inputPath string, index int) string {
	num := strconv.Itoa(index)
	stem, ext, ok := SplitExtension(inputPath)
	if !ok {
		return inputPath + "_" + num
	}
	var b strings.Builder
	b.Grow(len(inputPath) + len(num) + 1)
	b.WriteString(stem)
	b.WriteByte('_')
	b.WriteString(num)
	b.WriteByte('.')
	b.WriteString(ext)
	return b.String()
}
