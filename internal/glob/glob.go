// Package glob matches file names against shell-style patterns. Wildcards
// are only honoured in the final path segment; the directory part of a
// pattern is taken literally.
//
//   - `?`: Matches any single character.
//   - `*`: Matches zero or more characters.
//   - `[...]`: Matches a set of characters (e.g., `[abc]`, `[a-z]`, `[!0-9]`).
//   - `{group1,group2,...}`: Matches any of the pattern groups.
//   - `\x`: Matches x literally.
//
// Case-insensitivity is the default behavior for matching.
package glob

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/IgorBayerl/splitfile/internal/filesystem"
)

var (
	// globCharacters are special characters used in glob patterns.
	globCharacters = "*?[]{}\\"

	// regexOrStringCache caches compiled segments.
	// Key: pattern string + "|" + case-sensitivity flag
	regexOrStringCache = make(map[string]*RegexOrString)
	cacheMutex         sync.Mutex
)

// RegexOrString holds either a compiled regex or a literal name if the
// pattern contained no wildcards.
type RegexOrString struct {
	CompiledRegex  *regexp.Regexp
	IsRegex        bool
	LiteralPattern string
	IgnoreCase     bool
}

// IsMatch reports whether input matches.
func (ros *RegexOrString) IsMatch(input string) bool {
	if ros.IsRegex {
		return ros.CompiledRegex.MatchString(input)
	}
	if ros.IgnoreCase {
		return strings.EqualFold(ros.LiteralPattern, input)
	}
	return ros.LiteralPattern == input
}

// Glob holds the glob pattern and matching options.
type Glob struct {
	OriginalPattern string
	// IgnoreCase specifies whether matching is case-insensitive. Defaults to true.
	IgnoreCase bool
}

// NewGlob creates a new Glob instance with the given pattern.
func NewGlob(pattern string) *Glob {
	return &Glob{
		OriginalPattern: pattern,
		IgnoreCase:      true,
	}
}

func (g *Glob) String() string {
	return g.OriginalPattern
}

// QuoteMeta escapes every glob metacharacter in s.
func QuoteMeta(s string) string {
	if !strings.ContainsAny(s, globCharacters) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(globCharacters, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Match reports whether name matches the final segment of the pattern.
func (g *Glob) Match(name string) (bool, error) {
	matchers, err := g.segmentMatchers(filepath.Base(g.OriginalPattern))
	if err != nil {
		return false, err
	}
	for _, m := range matchers {
		if m.IsMatch(name) {
			return true, nil
		}
	}
	return false, nil
}

// Expand lists the entries of the pattern's directory whose names match and
// returns their paths sorted. A missing directory yields no matches.
func (g *Glob) Expand(fsys filesystem.Filesystem) ([]string, error) {
	if g.OriginalPattern == "" {
		return []string{}, nil
	}
	dir, segment := filepath.Split(g.OriginalPattern)
	if dir == "" {
		dir = "."
	}
	if _, err := g.segmentMatchers(segment); err != nil {
		return nil, err
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	matches := []string{}
	for _, entry := range entries {
		ok, err := g.Match(entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (g *Glob) segmentMatchers(segment string) ([]*RegexOrString, error) {
	groups, err := ungroup(segment)
	if err != nil {
		return nil, err
	}
	matchers := make([]*RegexOrString, 0, len(groups))
	for _, group := range groups {
		ros, err := g.createRegexOrString(group)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, ros)
	}
	return matchers, nil
}

func (g *Glob) createRegexOrString(segment string) (*RegexOrString, error) {
	cacheKey := fmt.Sprintf("%s|%t", segment, g.IgnoreCase)

	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	if cached, found := regexOrStringCache[cacheKey]; found {
		return cached, nil
	}

	var ros *RegexOrString
	if !strings.ContainsAny(segment, "*?[]\\") {
		ros = &RegexOrString{LiteralPattern: segment, IgnoreCase: g.IgnoreCase}
	} else {
		pattern, err := globToRegexPattern(segment, g.IgnoreCase)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile regex '%s' from glob segment '%s': %w", pattern, segment, err)
		}
		ros = &RegexOrString{CompiledRegex: re, IsRegex: true, LiteralPattern: segment, IgnoreCase: g.IgnoreCase}
	}
	regexOrStringCache[cacheKey] = ros
	return ros, nil
}

// globToRegexPattern converts one brace-free segment to an anchored regex.
func globToRegexPattern(segment string, ignoreCase bool) (string, error) {
	var regex strings.Builder
	if ignoreCase {
		regex.WriteString("(?i)")
	}
	regex.WriteByte('^')

	runes := []rune(segment)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 == len(runes) {
				return "", fmt.Errorf("trailing escape in glob segment: %s", segment)
			}
			i++
			regex.WriteString(regexp.QuoteMeta(string(runes[i])))
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteByte('.')
		case '[':
			end := i + 1
			if end < len(runes) && (runes[end] == '!' || runes[end] == '^') {
				end++
			}
			if end < len(runes) && runes[end] == ']' {
				end++
			}
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				return "", fmt.Errorf("unterminated character class in glob segment: %s", segment)
			}
			class := runes[i+1 : end]
			regex.WriteByte('[')
			if len(class) > 0 && class[0] == '!' {
				regex.WriteByte('^')
				class = class[1:]
			}
			for _, c := range class {
				if c == '\\' || c == '[' || c == ']' {
					regex.WriteByte('\\')
				}
				regex.WriteRune(c)
			}
			regex.WriteByte(']')
			i = end
		default:
			regex.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	regex.WriteByte('$')
	return regex.String(), nil
}

// ungroup handles brace expansion, e.g., "{a,b}c" -> ["ac", "bc"].
// Escaped braces and commas are left alone.
func ungroup(segment string) ([]string, error) {
	if !strings.ContainsAny(segment, "{}") {
		return []string{segment}, nil
	}

	level := 0
	open := -1
	var parts []string
	last := 0
	for i := 0; i < len(segment); i++ {
		switch segment[i] {
		case '\\':
			i++
		case '{':
			if level == 0 {
				open = i
				last = i + 1
			}
			level++
		case ',':
			if level == 1 {
				parts = append(parts, segment[last:i])
				last = i + 1
			}
		case '}':
			if level == 0 {
				return nil, fmt.Errorf("unbalanced braces in pattern: %s", segment)
			}
			level--
			if level == 0 {
				parts = append(parts, segment[last:i])
				prefix, suffix := segment[:open], segment[i+1:]
				var results []string
				for _, part := range parts {
					expanded, err := ungroup(prefix + part + suffix)
					if err != nil {
						return nil, err
					}
					results = append(results, expanded...)
				}
				return results, nil
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("unbalanced braces in pattern: %s", segment)
	}
	return []string{segment}, nil
}
