package repo

import (
	"sort"
)

// DiffResult lists whole-file differences between two snapshots, each set sorted.
type DiffResult struct {
	Added    []string
	Deleted  []string
	Modified []string
}

// Empty reports whether the snapshots are identical.
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Deleted) == 0 && len(d.Modified) == 0
}

// DiffSnapshots compares a to b. Paths with equal digests on both sides are
// not reported.
func DiffSnapshots(a, b map[string]string) *DiffResult {
	res := &DiffResult{}
	for p, da := range a {
		db, ok := b[p]
		switch {
		case !ok:
			res.Deleted = append(res.Deleted, p)
		case da != db:
			res.Modified = append(res.Modified, p)
		}
	}
	for p := range b {
		if _, ok := a[p]; !ok {
			res.Added = append(res.Added, p)
		}
	}

	sort.Strings(res.Added)
	sort.Strings(res.Deleted)
	sort.Strings(res.Modified)
	return res
}

// Diff loads two commits and compares their snapshots.
func (r *Repository) Diff(commitA, commitB string) (*DiffResult, error) {
	a, err := r.Meta.GetCommit(commitA)
	if err != nil {
		return nil, err
	}
	b, err := r.Meta.GetCommit(commitB)
	if err != nil {
		return nil, err
	}
	return DiffSnapshots(a.Changes, b.Changes), nil
}
