package file

import (
	"bufio"
	"bytes"
	"path"
	"path/filepath"
	"strings"

	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/fs"
)

// Ignore decides which repository-relative paths are never staged.
type Ignore struct {
	static  map[string]bool
	pattern []string
}

// NewIgnore loads the default ignores plus the patterns in ignorePath, one per
// line. Blank lines and lines starting with '#' are skipped. A missing ignore
// file is not an error.
func NewIgnore(fsys fs.FS, ignorePath string) *Ignore {
	m := &Ignore{static: make(map[string]bool)}

	// Default ignored files
	for _, s := range config.DefaultIgnoredFiles {
		if strings.ContainsAny(s, "*?") {
			m.pattern = append(m.pattern, s)
			continue
		}
		m.static[filepath.ToSlash(filepath.Clean(s))] = true
	}

	data, err := fsys.ReadFile(ignorePath)
	if err == nil {
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			m.pattern = append(m.pattern, line)
		}
	}

	return m
}

// Match returns true if the path, or any directory above it, should be ignored.
func (m *Ignore) Match(p string) bool {
	clean := filepath.ToSlash(filepath.Clean(p))
	if clean == "." {
		return false
	}

	for i := 0; i < len(clean); i++ {
		if clean[i] == '/' && m.matchOne(clean[:i]) {
			return true
		}
	}
	return m.matchOne(clean)
}

// matchOne checks a single path without looking at its parents.
func (m *Ignore) matchOne(clean string) bool {
	// static exact match
	if m.static[clean] {
		return true
	}

	// pattern match; a pattern without '/' also matches the base name at any depth
	base := path.Base(clean)
	for _, pat := range m.pattern {
		if matchPattern(pat, clean) {
			return true
		}
		if !strings.Contains(pat, "/") && base != clean && matchPattern(pat, base) {
			return true
		}
	}

	return false
}

// matchPattern handles *, ?, and ** like Git
func matchPattern(pattern, p string) bool {
	pattern = filepath.ToSlash(pattern)
	if len(pattern) > 1 {
		pattern = strings.TrimSuffix(pattern, "/")
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
}

// matchSegments matches pattern segments recursively
func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return true // trailing ** matches anything
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}

		ok, _ := path.Match(p, parts[0])
		if !ok {
			return false
		}

		parts = parts[1:]
	}

	return len(parts) == 0
}
