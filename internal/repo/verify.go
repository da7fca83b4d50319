package repo

import (
	"context"
	"fmt"

	"github.com/keshon/snap/internal/repo/store/object"
	"github.com/keshon/snap/internal/util"
)

// ReachableObjects collects every object referenced from branch records:
// history commits, their parents and their snapshot contents. Commits that
// cannot be read are still returned so Verify reports them.
func (r *Repository) ReachableObjects() ([]string, error) {
	names, err := r.Meta.ListBranches()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var queue []string
	push := func(d string) {
		if _, ok := seen[d]; ok || d == "" {
			return
		}
		seen[d] = struct{}{}
		queue = append(queue, d)
	}

	for _, n := range names {
		b, err := r.Meta.GetBranch(n)
		if err != nil {
			return nil, err
		}
		for _, d := range b.History {
			push(d)
		}
		push(b.Head)
	}

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		c, err := r.Meta.GetCommit(d)
		if err != nil {
			// missing or damaged; VerifyObject reports it
			continue
		}
		for _, p := range c.Parent.Digests() {
			push(p)
		}
		for _, blob := range c.Changes {
			if _, ok := seen[blob]; !ok {
				seen[blob] = struct{}{}
			}
		}
	}

	return util.SortedKeys(seen), nil
}

// Verify re-hashes every reachable object. It returns the number of objects
// to check and a channel that yields one result each until ctx is done.
func (r *Repository) Verify(ctx context.Context, workers int) (int, <-chan object.Check, error) {
	digests, err := r.ReachableObjects()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to collect objects: %w", err)
	}
	return len(digests), r.Store.Objects.Verify(ctx, digests, workers), nil
}
