package config

const (
	RepoDir      = ".snap"
	ObjectsDir   = "objects"
	BranchesDir  = "branches"
	HeadFile     = "HEAD"
	IndexFile    = "index.json"
	SettingsFile = "config.yaml"

	IgnoreFile = ".snapignore"
)

const (
	DefaultBranch = "main"
)

// DefaultIgnoredFiles are never staged regardless of the ignore file.
var DefaultIgnoredFiles = []string{RepoDir, RepoDir + "/**"}
