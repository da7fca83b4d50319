package file

import (
	"encoding/json"
	"fmt"

	"github.com/keshon/snap/internal/util"
)

// Index maps a repository-relative path to its staged entry.
type Index map[string]Entry

// Snapshot returns a copy of the path -> digest mapping.
func (idx Index) Snapshot() map[string]string {
	out := make(map[string]string, len(idx))
	for p, e := range idx {
		out[p] = e.Digest
	}
	return out
}

// Paths returns the staged paths sorted.
func (idx Index) Paths() []string {
	return util.SortedKeys(idx)
}

// LoadIndex loads staged entries from disk. A missing index is empty.
func (fc *FileContext) LoadIndex() (Index, error) {
	data, err := fc.FS.ReadFile(fc.IndexPath)
	if err != nil {
		if fc.FS.IsNotExist(err) {
			return Index{}, nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	idx := Index{}
	if len(data) == 0 {
		return idx, nil
	}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("unmarshal index: %w", err)
	}
	return idx, nil
}

// SaveIndex overwrites the index completely.
func (fc *FileContext) SaveIndex(idx Index) error {
	if idx == nil {
		idx = Index{}
	}
	if err := util.WriteJSON(fc.FS, fc.IndexPath, idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// ClearIndex resets the staging index to empty.
func (fc *FileContext) ClearIndex() error {
	return fc.SaveIndex(Index{})
}
