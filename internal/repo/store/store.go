package store

import (
	"fmt"

	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/fs"
	"github.com/keshon/snap/internal/repo/store/file"
	"github.com/keshon/snap/internal/repo/store/object"
)

// StoreContext is the high-level store abstraction that unifies the object
// store and the staging index.
type StoreContext struct {
	Config  *config.RepoConfig
	Objects *object.ObjectContext
	Files   *file.FileContext
}

// NewStoreOptions allows optional dependency injection.
type NewStoreOptions struct {
	FS      fs.FS
	Objects *object.ObjectContext
	Files   *file.FileContext
}

// NewStoreDefault creates a store on the OS filesystem.
func NewStoreDefault(cfg *config.RepoConfig) (*StoreContext, error) {
	return NewStore(cfg, nil)
}

// NewStore creates a store with optional dependencies and makes sure the
// object directory exists.
func NewStore(cfg *config.RepoConfig, opts *NewStoreOptions) (*StoreContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil RepoConfig provided")
	}

	// Resolve FS
	fsys := fs.FS(fs.NewOSFS())
	if opts != nil && opts.FS != nil {
		fsys = opts.FS
	}

	objects := object.NewObjectContext(cfg.ObjectsDir(), fsys)
	if opts != nil && opts.Objects != nil {
		objects = opts.Objects
	}

	files := file.NewFileContext(cfg, objects, fsys)
	if opts != nil && opts.Files != nil {
		files = opts.Files
	}

	if !isStoreExists(cfg, fsys) {
		if err := createStoreStructure(cfg, fsys); err != nil {
			return nil, err
		}
	}

	return &StoreContext{
		Config:  cfg,
		Objects: objects,
		Files:   files,
	}, nil
}

// createStoreStructure builds required dirs via injected FS
func createStoreStructure(cfg *config.RepoConfig, fsys fs.FS) error {
	if err := fsys.MkdirAll(cfg.ObjectsDir(), 0o755); err != nil {
		return fmt.Errorf("create store dir %q: %w", cfg.ObjectsDir(), err)
	}
	return nil
}

func isStoreExists(cfg *config.RepoConfig, fsys fs.FS) bool {
	return fsys.IsDir(cfg.ObjectsDir())
}
