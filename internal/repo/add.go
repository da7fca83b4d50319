package repo

import (
	"fmt"

	"github.com/keshon/snap/internal/repo/store/file"
)

// Add stages each path. Directories expand to their non-ignored files.
// Ignored paths come back with Ignored set and change nothing.
func (r *Repository) Add(paths ...string) ([]file.StageResult, error) {
	var results []file.StageResult
	for _, p := range paths {
		abs := p
		if rel, err := r.Store.Files.RelPath(p); err == nil {
			abs = r.Store.Files.AbsPath(rel)
		}

		if !r.FS.IsDir(abs) {
			res, err := r.Store.Files.Stage(p)
			if err != nil {
				return results, err
			}
			results = append(results, res)
			continue
		}

		files, err := r.Store.Files.ListFiles(p)
		if err != nil {
			return results, err
		}
		for _, f := range files {
			res, err := r.Store.Files.Stage(f)
			if err != nil {
				return results, fmt.Errorf("add %q: %w", f, err)
			}
			results = append(results, res)
		}
	}
	return results, nil
}

// ListFiles returns the non-ignored files under p, repository-relative and sorted.
func (r *Repository) ListFiles(p string) ([]string, error) {
	return r.Store.Files.ListFiles(p)
}

// StatusReport describes the current branch and the staging index.
type StatusReport struct {
	Branch string
	Head   string // empty before the first commit
	Staged []file.PathStatus
}

// Status reports the current branch and every staged path.
func (r *Repository) Status() (*StatusReport, error) {
	b, err := r.Meta.GetCurrentBranch()
	if err != nil {
		return nil, err
	}
	staged, err := r.Store.Files.Status()
	if err != nil {
		return nil, err
	}
	return &StatusReport{Branch: b.Name, Head: b.Head, Staged: staged}, nil
}
