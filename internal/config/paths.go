package config

import "path/filepath"

// RepoConfig holds the resolved locations of one repository.
type RepoConfig struct {
	WorkingTreeDir string // directory holding the tracked files
	RepoDir        string // metadata directory, normally <WorkingTreeDir>/.snap
}

// NewRepoConfig returns the layout for a working tree rooted at dir.
func NewRepoConfig(dir string) *RepoConfig {
	wt := filepath.Clean(dir)
	return &RepoConfig{
		WorkingTreeDir: wt,
		RepoDir:        filepath.Join(wt, RepoDir),
	}
}

func (c *RepoConfig) ObjectsDir() string   { return filepath.Join(c.RepoDir, ObjectsDir) }
func (c *RepoConfig) BranchesDir() string  { return filepath.Join(c.RepoDir, BranchesDir) }
func (c *RepoConfig) HeadFile() string     { return filepath.Join(c.RepoDir, HeadFile) }
func (c *RepoConfig) IndexFile() string    { return filepath.Join(c.RepoDir, IndexFile) }
func (c *RepoConfig) SettingsFile() string { return filepath.Join(c.RepoDir, SettingsFile) }
func (c *RepoConfig) IgnoreFile() string   { return filepath.Join(c.WorkingTreeDir, IgnoreFile) }
