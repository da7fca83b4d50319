package repo

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"

	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/repo/meta"
)

// MergeSnapshots unions theirs into a copy of ours. A path present on both
// sides with different digests is a conflict; all of them are returned,
// sorted. ours is never modified.
func MergeSnapshots(ours, theirs map[string]string) (map[string]string, []string) {
	merged := make(map[string]string, len(ours)+len(theirs))
	maps.Copy(merged, ours)

	var conflicts []string
	for p, d := range theirs {
		cur, ok := merged[p]
		switch {
		case !ok:
			merged[p] = d
		case cur != d:
			conflicts = append(conflicts, p)
		}
	}
	sort.Strings(conflicts)
	return merged, conflicts
}

// Merge folds the named branch into the current one with a two-parent commit.
// Any conflict aborts before anything is written; the named branch is never
// modified.
func (r *Repository) Merge(name string) (string, error) {
	current, err := r.Meta.GetCurrentBranch()
	if err != nil {
		return "", err
	}
	if name == current.Name {
		return "", fmt.Errorf("%q: %w", name, errs.ErrSelfMerge)
	}
	target, err := r.Meta.GetBranch(name)
	if err != nil {
		return "", err
	}

	ours, err := r.headCommit(current)
	if err != nil {
		return "", err
	}
	theirs, err := r.headCommit(target)
	if err != nil {
		return "", err
	}

	merged, conflicts := MergeSnapshots(ours.Changes, theirs.Changes)
	if len(conflicts) > 0 {
		slog.Debug("merge aborted",
			slog.String("target", name),
			slog.Int("conflicts", len(conflicts)))
		return "", &errs.MergeConflictError{Target: name, Paths: conflicts}
	}

	c := &meta.Commit{
		Message: fmt.Sprintf("Merge branch '%s' into %s", name, current.Name),
		Changes: merged,
		Parent:  meta.Two(current.Head, target.Head),
	}
	digest, err := r.Meta.CreateCommit(c)
	if err != nil {
		return "", err
	}

	current.Advance(digest)
	if err := r.Meta.SaveBranch(current); err != nil {
		return "", err
	}

	slog.Debug("merge committed",
		slog.String("target", name),
		slog.String("digest", digest))
	return digest, nil
}
