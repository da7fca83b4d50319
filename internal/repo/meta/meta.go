package meta

import (
	"fmt"

	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/fs"
	"github.com/keshon/snap/internal/repo/store/object"
)

// MetaContext manages commits, branch records and HEAD of one repository.
type MetaContext struct {
	Config  *config.RepoConfig
	FS      fs.FS
	Objects *object.ObjectContext
}

// NewMeta wraps an existing repository layout.
func NewMeta(cfg *config.RepoConfig, objects *object.ObjectContext, fs fs.FS) *MetaContext {
	return &MetaContext{Config: cfg, FS: fs, Objects: objects}
}

// CreateMetaStructure builds a fresh meta layout and writes defaults:
// the object and branch directories, an empty record for the initial branch
// and HEAD pointing at it.
func (mc *MetaContext) CreateMetaStructure(initialBranch string) error {
	if err := ValidateBranchName(initialBranch); err != nil {
		return err
	}

	dirs := []string{
		mc.Config.RepoDir,
		mc.Config.ObjectsDir(),
		mc.Config.BranchesDir(),
	}
	for _, d := range dirs {
		if err := mc.FS.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create dir %q: %w", d, err)
		}
	}

	if err := mc.SaveBranch(&Branch{Name: initialBranch}); err != nil {
		return fmt.Errorf("failed to create default branch: %w", err)
	}

	if _, err := mc.SetHeadRef(initialBranch); err != nil {
		return fmt.Errorf("failed to write HEAD: %w", err)
	}

	return nil
}

// IsMetaExists checks if the given meta config points to an existing meta.
func IsMetaExists(cfg *config.RepoConfig, fs fs.FS) bool {
	fi, err := fs.Stat(cfg.HeadFile())
	return err == nil && !fi.IsDir()
}
