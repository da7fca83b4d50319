package repo

import (
	"fmt"
	"log/slog"

	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/fs"
	"github.com/keshon/snap/internal/repo/meta"
	"github.com/keshon/snap/internal/repo/store"
)

// Repository is a session handle over one repository. Every operation reads
// state from storage and writes it back before returning; nothing is cached
// between calls.
type Repository struct {
	Config   *config.RepoConfig
	Settings config.Settings
	FS       fs.FS
	Store    *store.StoreContext
	Meta     *meta.MetaContext
}

// Option tweaks how a repository is opened or created.
type Option func(*options)

type options struct {
	fs            fs.FS
	defaultBranch string
}

// WithFS replaces the OS filesystem, mostly for tests.
func WithFS(fsys fs.FS) Option {
	return func(o *options) { o.fs = fsys }
}

// WithDefaultBranch sets the initial branch name used by Init.
func WithDefaultBranch(name string) Option {
	return func(o *options) { o.defaultBranch = name }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = fs.NewOSFS()
	}
	return o
}

func newRepository(dir string, settings config.Settings, fsys fs.FS) (*Repository, error) {
	if osfs, ok := fsys.(*fs.OSFS); ok && settings.MmapThreshold > 0 {
		osfs.MmapThreshold = settings.MmapThreshold
	}
	cfg := config.NewRepoConfig(dir)
	st, err := store.NewStore(cfg, &store.NewStoreOptions{FS: fsys})
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}
	return &Repository{
		Config:   cfg,
		Settings: settings,
		FS:       fsys,
		Store:    st,
		Meta:     meta.NewMeta(cfg, st.Objects, fsys),
	}, nil
}

// Init creates a repository in dir: object and branch directories, an empty
// record for the initial branch, HEAD pointing at it, an empty index and a
// settings file.
func Init(dir string, opts ...Option) (*Repository, error) {
	o := buildOptions(opts)

	settings := config.DefaultSettings()
	if o.defaultBranch != "" {
		settings.DefaultBranch = o.defaultBranch
	}

	cfg := config.NewRepoConfig(dir)
	if meta.IsMetaExists(cfg, o.fs) {
		return nil, fmt.Errorf("%s: %w", cfg.RepoDir, errs.ErrRepoExists)
	}

	r, err := newRepository(dir, settings, o.fs)
	if err != nil {
		return nil, err
	}

	if err := r.Meta.CreateMetaStructure(settings.DefaultBranch); err != nil {
		return nil, err
	}
	if err := r.Store.Files.ClearIndex(); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	if err := config.SaveSettings(r.FS, r.Config.SettingsFile(), settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.Debug("repository initialized",
		slog.String("dir", r.Config.RepoDir),
		slog.String("branch", settings.DefaultBranch))
	return r, nil
}

// Open opens the repository whose working tree is dir.
func Open(dir string, opts ...Option) (*Repository, error) {
	o := buildOptions(opts)

	cfg := config.NewRepoConfig(dir)
	if !meta.IsMetaExists(cfg, o.fs) {
		return nil, fmt.Errorf("%s: %w", dir, errs.ErrNoRepo)
	}

	settings, err := config.LoadSettings(o.fs, cfg.SettingsFile())
	if err != nil {
		return nil, err
	}

	r, err := newRepository(dir, settings, o.fs)
	if err != nil {
		return nil, err
	}
	if err := r.Store.Objects.CleanupTemp(); err != nil {
		slog.Debug("temp cleanup failed", slog.Any("error", err))
	}
	return r, nil
}
