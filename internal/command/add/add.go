package add

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "add" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "add <file|dir|.>..." }
func (c *Command) Brief() string     { return "Stage files or directories for the next commit" }
func (c *Command) Help() string {
	return `Stage file contents for the next commit.

Usage:
  add .        - stage every file that is not ignored
  add <path>   - stage a specific file or directory

Paths matching .snapignore are reported as ignored and left alone.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	args := ctx.Args
	if len(args) == 0 {
		args = []string{"."}
	}

	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	// paths on the command line are relative to where the user stands
	paths := make([]string, 0, len(args))
	for _, a := range args {
		if !filepath.IsAbs(a) {
			a = filepath.Join(ctx.WorkDir(), a)
		}
		paths = append(paths, a)
	}

	results, err := r.Add(paths...)
	out := ctx.Stdout()
	staged := 0
	for _, res := range results {
		if res.Ignored {
			fmt.Fprintf(out, "ignored %s\n", res.Path)
			continue
		}
		fmt.Fprintf(out, "added   %s\n", res.Path)
		staged++
	}
	if err != nil {
		return err
	}

	if staged == 0 {
		fmt.Fprintln(out, "Nothing to add.")
	}
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithRepoCheck(),
		),
	)
}
