package main

import (
	"log/slog"
	"os"

	"github.com/keshon/snap/internal/command"
	_ "github.com/keshon/snap/internal/command/all"
	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/fs"
)

func main() {
	setupLogging()

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"shell"}
	}

	os.Exit(command.RunCLI(&command.Context{}, args))
}

// setupLogging installs a stderr text handler at the level from the
// repository settings, if there is a repository here.
func setupLogging() {
	settings := config.DefaultSettings()
	root := config.ResolveRepoRoot()
	cfg := config.NewRepoConfig(root)
	if s, err := config.LoadSettings(fs.NewOSFS(), cfg.SettingsFile()); err == nil {
		settings = s
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.Level()})
	slog.SetDefault(slog.New(handler))
}
