package repo

import (
	"fmt"
	"log/slog"

	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/repo/meta"
)

// BranchInfo is one row of the branch listing.
type BranchInfo struct {
	Name    string
	Head    string
	Current bool
}

// CurrentBranch returns the name HEAD points at.
func (r *Repository) CurrentBranch() (string, error) {
	return r.Meta.CurrentBranchName()
}

// ListBranches returns every branch sorted by name.
func (r *Repository) ListBranches() ([]BranchInfo, error) {
	current, err := r.Meta.CurrentBranchName()
	if err != nil {
		return nil, err
	}
	names, err := r.Meta.ListBranches()
	if err != nil {
		return nil, err
	}

	out := make([]BranchInfo, 0, len(names))
	for _, n := range names {
		b, err := r.Meta.GetBranch(n)
		if err != nil {
			return nil, err
		}
		out = append(out, BranchInfo{Name: n, Head: b.Head, Current: n == current})
	}
	return out, nil
}

// Branch switches HEAD to name, creating the branch from the current one
// first if it has no record. Reports whether a record was created.
func (r *Repository) Branch(name string) (bool, error) {
	if err := meta.ValidateBranchName(name); err != nil {
		return false, err
	}

	created := false
	if !r.Meta.BranchExists(name) {
		cur, err := r.Meta.GetCurrentBranch()
		if err != nil {
			return false, err
		}
		if err := r.Meta.SaveBranch(cur.Fork(name)); err != nil {
			return false, err
		}
		created = true
		slog.Debug("branch created",
			slog.String("branch", name),
			slog.String("from", cur.Name),
			slog.String("head", cur.Head))
	}

	if _, err := r.Meta.SetHeadRef(name); err != nil {
		return created, err
	}
	return created, nil
}

// Checkout points HEAD at an existing branch. The working tree is left as is.
func (r *Repository) Checkout(name string) error {
	if !r.Meta.BranchExists(name) {
		return fmt.Errorf("branch %q: %w", name, errs.ErrNotFound)
	}
	if _, err := r.Meta.SetHeadRef(name); err != nil {
		return err
	}
	slog.Debug("checked out", slog.String("branch", name))
	return nil
}
