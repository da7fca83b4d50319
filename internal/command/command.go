package command

import (
	"flag"
	"io"
	"os"

	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/fs"
	"github.com/keshon/snap/internal/repo"
)

// Command represents a cli command
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Subcommands() []Command
	Flags(fs *flag.FlagSet)
	Run(ctx *Context) error
}

// Context represents a cli context
type Context struct {
	Args  []string
	Flags *flag.FlagSet

	Dir string    // directory the command was started from
	FS  fs.FS     // nil means the OS filesystem
	In  io.Reader // nil means stdin
	Out io.Writer // nil means stdout
	Err io.Writer // nil means stderr
}

// Stdin returns where interactive input comes from.
func (ctx *Context) Stdin() io.Reader {
	if ctx.In == nil {
		return os.Stdin
	}
	return ctx.In
}

// Stdout returns where command output goes.
func (ctx *Context) Stdout() io.Writer {
	if ctx.Out == nil {
		return os.Stdout
	}
	return ctx.Out
}

// Stderr returns where diagnostics go.
func (ctx *Context) Stderr() io.Writer {
	if ctx.Err == nil {
		return os.Stderr
	}
	return ctx.Err
}

// Filesystem returns the filesystem commands operate on.
func (ctx *Context) Filesystem() fs.FS {
	if ctx.FS == nil {
		return fs.NewOSFS()
	}
	return ctx.FS
}

// WorkDir returns the starting directory, defaulting to the process cwd.
func (ctx *Context) WorkDir() string {
	if ctx.Dir != "" {
		return ctx.Dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// RepoRoot walks up from WorkDir to the nearest working tree root, or
// returns WorkDir itself when there is none.
func (ctx *Context) RepoRoot() string {
	if root := config.ResolveWorkingTreeRoot(ctx.Filesystem(), ctx.WorkDir()); root != "" {
		return root
	}
	return ctx.WorkDir()
}

// OpenRepo opens the repository containing WorkDir.
func (ctx *Context) OpenRepo() (*repo.Repository, error) {
	return repo.Open(ctx.RepoRoot(), repo.WithFS(ctx.Filesystem()))
}
