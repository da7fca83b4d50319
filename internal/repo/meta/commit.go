package meta

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/keshon/snap/internal/errs"
)

// ParentKind tells how many parents a commit has.
type ParentKind int

const (
	NoParent ParentKind = iota
	SingleParent
	MergeParents
)

// ParentRef is absent for a root commit, one digest for an ordinary commit,
// or a pair for a merge commit.
type ParentRef struct {
	digests []string
}

// None is the parent of a root commit.
func None() ParentRef { return ParentRef{} }

// One is the parent of an ordinary commit.
func One(digest string) ParentRef { return ParentRef{digests: []string{digest}} }

// Two is the parent pair of a merge commit: current head first, merged head second.
func Two(current, merged string) ParentRef {
	return ParentRef{digests: []string{current, merged}}
}

func (p ParentRef) Kind() ParentKind {
	switch len(p.digests) {
	case 0:
		return NoParent
	case 1:
		return SingleParent
	default:
		return MergeParents
	}
}

// Digests returns the parent digests in order.
func (p ParentRef) Digests() []string {
	return append([]string(nil), p.digests...)
}

// MarshalJSON encodes null, "digest" or ["digest", "digest"].
func (p ParentRef) MarshalJSON() ([]byte, error) {
	switch p.Kind() {
	case NoParent:
		return []byte("null"), nil
	case SingleParent:
		return json.Marshal(p.digests[0])
	default:
		return json.Marshal(p.digests)
	}
}

func (p *ParentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = None()
		return nil
	case len(data) > 0 && data[0] == '"':
		var d string
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		*p = One(d)
		return nil
	case len(data) > 0 && data[0] == '[':
		var ds []string
		if err := json.Unmarshal(data, &ds); err != nil {
			return err
		}
		if len(ds) != 2 {
			return fmt.Errorf("merge parent needs 2 digests, got %d", len(ds))
		}
		*p = Two(ds[0], ds[1])
		return nil
	}
	return errors.New("parent must be null, a digest or a digest pair")
}

// Commit is an immutable snapshot record. Changes is the complete
// path -> digest mapping at commit time, not a delta.
type Commit struct {
	Message string            `json:"message"`
	Changes map[string]string `json:"changes"`
	Parent  ParentRef         `json:"parent"`
}

// Encode serializes the commit deterministically: fields in declaration
// order, snapshot keys sorted by encoding/json.
func (c *Commit) Encode() ([]byte, error) {
	out := *c
	if out.Changes == nil {
		out.Changes = map[string]string{}
	}
	return json.Marshal(&out)
}

// DecodeCommit parses a serialized commit.
func DecodeCommit(data []byte) (*Commit, error) {
	var c Commit
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Changes == nil {
		c.Changes = map[string]string{}
	}
	return &c, nil
}

// CreateCommit stores the commit as an object and returns its digest.
func (mc *MetaContext) CreateCommit(c *Commit) (string, error) {
	data, err := c.Encode()
	if err != nil {
		return "", fmt.Errorf("encode commit: %w", err)
	}
	digest, err := mc.Objects.Put(data)
	if err != nil {
		return "", fmt.Errorf("failed to write commit: %w", err)
	}
	return digest, nil
}

// GetCommit reads a commit by digest.
func (mc *MetaContext) GetCommit(digest string) (*Commit, error) {
	data, err := mc.Objects.Get(digest)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("commit %s: %w", digest, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read commit %q: %w", digest, err)
	}
	c, err := DecodeCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s is not a commit: %w", digest, err)
	}
	return c, nil
}
