package file

import (
	"fmt"
	"path"
	"sort"

	"github.com/keshon/snap/internal/config"
)

// ListFiles returns all non-ignored files under p (repository-relative,
// sorted). A file path yields itself unless it is ignored. An ignored
// directory yields nothing.
func (fc *FileContext) ListFiles(p string) ([]string, error) {
	rel, err := fc.RelPath(p)
	if err != nil {
		return nil, err
	}
	matcher := NewIgnore(fc.FS, fc.IgnorePath)

	if !fc.FS.IsDir(fc.AbsPath(rel)) {
		if _, err := fc.FS.Stat(fc.AbsPath(rel)); err != nil {
			return nil, fmt.Errorf("stat %q: %w", rel, err)
		}
		if matcher.Match(rel) {
			return nil, nil
		}
		return []string{rel}, nil
	}

	if rel != "." && matcher.Match(rel) {
		return nil, nil
	}

	var paths []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := fc.FS.ReadDir(fc.AbsPath(dir))
		if err != nil {
			return fmt.Errorf("read dir %q: %w", dir, err)
		}
		for _, e := range entries {
			child := e.Name()
			if dir != "." {
				child = path.Join(dir, e.Name())
			}

			// Skip ignored directories
			if e.IsDir() {
				if e.Name() == config.RepoDir || matcher.Match(child) {
					continue
				}
				if err := walk(child); err != nil {
					return err
				}
				continue
			}

			if matcher.Match(child) {
				continue
			}
			paths = append(paths, child)
		}
		return nil
	}
	if err := walk(rel); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
