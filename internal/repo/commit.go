package repo

import (
	"fmt"
	"log/slog"

	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/repo/meta"
	"github.com/keshon/snap/internal/repo/store/object"
)

// Commit snapshots the staging index onto the current branch and clears the
// index. An empty index still yields a commit.
func (r *Repository) Commit(message string) (string, error) {
	idx, err := r.Store.Files.LoadIndex()
	if err != nil {
		return "", err
	}
	b, err := r.Meta.GetCurrentBranch()
	if err != nil {
		return "", err
	}

	parent := meta.None()
	if b.Head != "" {
		parent = meta.One(b.Head)
	}

	c := &meta.Commit{
		Message: message,
		Changes: idx.Snapshot(),
		Parent:  parent,
	}
	digest, err := r.Meta.CreateCommit(c)
	if err != nil {
		return "", err
	}

	b.Advance(digest)
	if err := r.Meta.SaveBranch(b); err != nil {
		return "", err
	}
	if err := r.Store.Files.ClearIndex(); err != nil {
		return "", fmt.Errorf("failed to clear index: %w", err)
	}

	slog.Debug("commit created",
		slog.String("branch", b.Name),
		slog.String("digest", digest),
		slog.Int("files", len(c.Changes)))
	return digest, nil
}

// LogEntry is one line of branch history.
type LogEntry struct {
	Digest  string
	Message string
	Parents []string
}

// Log lists the current branch's history, most recent first. Order comes
// from the recorded history, not from parent links.
func (r *Repository) Log() ([]LogEntry, error) {
	b, err := r.Meta.GetCurrentBranch()
	if err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(b.History))
	for i := len(b.History) - 1; i >= 0; i-- {
		digest := b.History[i]
		c, err := r.Meta.GetCommit(digest)
		if err != nil {
			return entries, err
		}
		entries = append(entries, LogEntry{
			Digest:  digest,
			Message: c.Message,
			Parents: c.Parent.Digests(),
		})
	}
	return entries, nil
}

// ShowCommit loads a commit for display.
func (r *Repository) ShowCommit(digest string) (*meta.Commit, error) {
	return r.Meta.GetCommit(digest)
}

// ResolveRevision maps a branch name to its head; anything else must be a
// commit digest.
func (r *Repository) ResolveRevision(rev string) (string, error) {
	if r.Meta.BranchExists(rev) {
		b, err := r.Meta.GetBranch(rev)
		if err != nil {
			return "", err
		}
		if b.Head == "" {
			return "", fmt.Errorf("branch %q has no commits: %w", rev, errs.ErrNotFound)
		}
		return b.Head, nil
	}
	if !object.ValidDigest(rev) {
		return "", fmt.Errorf("revision %q: %w", rev, errs.ErrNotFound)
	}
	return rev, nil
}

// headCommit loads the commit a branch points at.
func (r *Repository) headCommit(b *meta.Branch) (*meta.Commit, error) {
	if b.Head == "" {
		return nil, fmt.Errorf("branch %q has no commits: %w", b.Name, errs.ErrNotFound)
	}
	c, err := r.Meta.GetCommit(b.Head)
	if err != nil {
		return nil, fmt.Errorf("head of %q: %w", b.Name, err)
	}
	return c, nil
}
