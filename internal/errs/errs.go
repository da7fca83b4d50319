// Package errs defines the failure kinds shared by the repository packages.
package errs

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates a missing object, branch, or commit.
	ErrNotFound = errors.New("not found")

	// ErrMergeConflict indicates a merge was aborted on divergent paths.
	ErrMergeConflict = errors.New("merge conflict")

	// ErrSelfMerge indicates an attempt to merge a branch into itself.
	ErrSelfMerge = errors.New("cannot merge branch into itself")

	// ErrInvalidName indicates a branch name that cannot be stored.
	ErrInvalidName = errors.New("invalid branch name")

	// ErrOutsideWorkTree indicates a path outside the working tree.
	ErrOutsideWorkTree = errors.New("path is outside the working tree")

	// ErrRepoExists indicates init found an existing repository.
	ErrRepoExists = errors.New("repository already exists")

	// ErrNoRepo indicates no repository was found.
	ErrNoRepo = errors.New("not a repository")
)

// MergeConflictError lists every path that differs between both sides.
type MergeConflictError struct {
	Target string
	Paths  []string
}

func (e *MergeConflictError) Error() string {
	return "merge conflict with " + e.Target + " on: " + strings.Join(e.Paths, ", ")
}

func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}
