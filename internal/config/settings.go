package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/keshon/snap/internal/fs"
	"gopkg.in/yaml.v3"
)

// LogLevelEnv overrides the log_level setting when set.
const LogLevelEnv = "SNAP_LOG_LEVEL"

// Settings is the repository settings file (.snap/config.yaml).
type Settings struct {
	DefaultBranch string `yaml:"default_branch"`
	LogLevel      string `yaml:"log_level"`
	MmapThreshold int64  `yaml:"mmap_threshold"`
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		DefaultBranch: DefaultBranch,
		LogLevel:      "info",
		MmapThreshold: fs.DefaultMmapThreshold,
	}
}

// LoadSettings reads the settings file. A missing file or empty fields fall
// back to defaults; a malformed file is an error.
func LoadSettings(fsys fs.FS, path string) (Settings, error) {
	s := DefaultSettings()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if fsys.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings %q: %w", path, err)
	}

	var raw Settings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("parse settings %q: %w", path, err)
	}
	if raw.DefaultBranch != "" {
		s.DefaultBranch = raw.DefaultBranch
	}
	if raw.LogLevel != "" {
		s.LogLevel = raw.LogLevel
	}
	if raw.MmapThreshold > 0 {
		s.MmapThreshold = raw.MmapThreshold
	}
	return s, nil
}

// SaveSettings writes s as YAML.
func SaveSettings(fsys fs.FS, path string, s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	return nil
}

// Level maps the configured log level to a slog level, honouring LogLevelEnv.
func (s Settings) Level() slog.Level {
	name := s.LogLevel
	if env := os.Getenv(LogLevelEnv); env != "" {
		name = env
	}
	return ParseLevel(name)
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
