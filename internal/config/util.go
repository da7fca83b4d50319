package config

import (
	"os"
	"path/filepath"

	"github.com/keshon/snap/internal/fs"
)

// ResolveWorkingTreeRoot determines the working tree root by walking up.
// It traverses up the directory tree from start until it finds a .snap directory.
func ResolveWorkingTreeRoot(fsys fs.FS, start string) string {
	cwd := filepath.Clean(start)
	for {
		if fsys.IsDir(filepath.Join(cwd, RepoDir)) {
			return cwd
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break // reached filesystem root
		}
		cwd = parent
	}
	return "" // not found
}

// ResolveRepoRoot is ResolveWorkingTreeRoot for the process working directory
// on the real filesystem. It returns the working directory itself when no
// repository is found, so init can create one there.
func ResolveRepoRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root := ResolveWorkingTreeRoot(fs.NewOSFS(), cwd); root != "" {
		return root
	}
	return cwd
}
