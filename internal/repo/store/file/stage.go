package file

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/keshon/snap/internal/errs"
)

// StageResult is the outcome of staging one path.
type StageResult struct {
	Path    string // repository-relative, slash separated
	Digest  string // empty when ignored
	Ignored bool
}

// RelPath resolves p to a repository-relative, slash-separated path.
// Relative inputs are taken relative to the working tree root.
func (fc *FileContext) RelPath(p string) (string, error) {
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(fc.WorkingTreeDir, p)
	}
	rel, err := filepath.Rel(fc.WorkingTreeDir, filepath.Clean(abs))
	if err != nil {
		return "", fmt.Errorf("%q: %w", p, errs.ErrOutsideWorkTree)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%q: %w", p, errs.ErrOutsideWorkTree)
	}
	return rel, nil
}

// AbsPath returns the working-tree location of a repository-relative path.
func (fc *FileContext) AbsPath(rel string) string {
	return filepath.Join(fc.WorkingTreeDir, filepath.FromSlash(rel))
}

// Stage reads the file at p, stores its bytes as an object and records it in
// the index, replacing any earlier entry for the same path. Ignored paths are
// reported and leave everything untouched.
func (fc *FileContext) Stage(p string) (StageResult, error) {
	rel, err := fc.RelPath(p)
	if err != nil {
		return StageResult{}, err
	}
	if rel == "." {
		return StageResult{}, fmt.Errorf("cannot stage the working tree root")
	}

	if NewIgnore(fc.FS, fc.IgnorePath).Match(rel) {
		slog.Debug("path ignored", slog.String("path", rel))
		return StageResult{Path: rel, Ignored: true}, nil
	}

	abs := fc.AbsPath(rel)
	if fc.FS.IsDir(abs) {
		return StageResult{}, fmt.Errorf("stage %q: is a directory", rel)
	}
	data, err := fc.FS.ReadFile(abs)
	if err != nil {
		return StageResult{}, fmt.Errorf("read %q: %w", rel, err)
	}

	idx, err := fc.LoadIndex()
	if err != nil {
		return StageResult{}, err
	}

	digest, err := fc.Objects.Put(data)
	if err != nil {
		return StageResult{}, err
	}

	idx[rel] = Entry{
		Digest:      digest,
		Size:        int64(len(data)),
		Fingerprint: Fingerprint(data),
	}
	if err := fc.SaveIndex(idx); err != nil {
		return StageResult{}, err
	}

	slog.Debug("path staged", slog.String("path", rel), slog.String("digest", digest))
	return StageResult{Path: rel, Digest: digest}, nil
}
