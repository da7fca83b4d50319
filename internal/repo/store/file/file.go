package file

import (
	"encoding/hex"

	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/fs"
	"github.com/keshon/snap/internal/repo/store/object"
	"github.com/zeebo/xxh3"
)

// FileContext wraps working-tree and staging operations that depend on the object store.
type FileContext struct {
	WorkingTreeDir string
	IndexPath      string
	IgnorePath     string
	Objects        *object.ObjectContext
	FS             fs.FS
}

// NewFileContext creates a FileContext for the given repository layout.
func NewFileContext(cfg *config.RepoConfig, objects *object.ObjectContext, fs fs.FS) *FileContext {
	return &FileContext{
		WorkingTreeDir: cfg.WorkingTreeDir,
		IndexPath:      cfg.IndexFile(),
		IgnorePath:     cfg.IgnoreFile(),
		Objects:        objects,
		FS:             fs,
	}
}

// Entry is one staged file: the object holding its content plus a cheap
// fingerprint used to notice later working-tree edits.
type Entry struct {
	Digest      string `json:"digest"`
	Size        int64  `json:"size"`
	Fingerprint string `json:"fingerprint"`
}

// Fingerprint computes the xxh3-128 fingerprint of data.
func Fingerprint(data []byte) string {
	h := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(h[:])
}
