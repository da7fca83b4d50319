package meta

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/util"
)

// Branch is a named line of history. History lists commit digests oldest
// first; Head is empty until the first commit.
type Branch struct {
	Name    string   `json:"-"`
	Head    string   `json:"head,omitempty"`
	History []string `json:"history"`
}

// ValidateBranchName rejects names that cannot live as a file under branches/.
func ValidateBranchName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", errs.ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", errs.ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", errs.ErrInvalidName, name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has surrounding whitespace", errs.ErrInvalidName, name)
	}
	return nil
}

func (mc *MetaContext) branchPath(name string) string {
	return filepath.Join(mc.Config.BranchesDir(), name)
}

// BranchExists reports whether a record for name is stored.
func (mc *MetaContext) BranchExists(name string) bool {
	if ValidateBranchName(name) != nil {
		return false
	}
	return mc.FS.Exists(mc.branchPath(name))
}

// GetBranch loads a branch record by name.
func (mc *MetaContext) GetBranch(name string) (*Branch, error) {
	if err := ValidateBranchName(name); err != nil {
		return nil, err
	}
	var b Branch
	if err := util.ReadJSON(mc.FS, mc.branchPath(name), &b); err != nil {
		if mc.FS.IsNotExist(err) {
			return nil, fmt.Errorf("branch %q: %w", name, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read branch %q: %w", name, err)
	}
	b.Name = name
	if b.History == nil {
		b.History = []string{}
	}
	return &b, nil
}

// SaveBranch writes the record atomically.
func (mc *MetaContext) SaveBranch(b *Branch) error {
	if err := ValidateBranchName(b.Name); err != nil {
		return err
	}
	out := *b
	if out.History == nil {
		out.History = []string{}
	}
	if err := util.WriteJSON(mc.FS, mc.branchPath(b.Name), &out); err != nil {
		return fmt.Errorf("failed to write branch %q: %w", b.Name, err)
	}
	return nil
}

// Advance appends digest to history and moves head to it.
func (b *Branch) Advance(digest string) {
	b.History = append(b.History, digest)
	b.Head = digest
}

// Fork copies head and history under a new name. The copy shares nothing
// with b.
func (b *Branch) Fork(name string) *Branch {
	return &Branch{
		Name:    name,
		Head:    b.Head,
		History: append([]string{}, b.History...),
	}
}

// ListBranches returns all branch names sorted.
func (mc *MetaContext) ListBranches() ([]string, error) {
	entries, err := mc.FS.ReadDir(mc.Config.BranchesDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read branches dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
