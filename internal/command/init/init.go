package initcmd

import (
	"flag"
	"fmt"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
	"github.com/keshon/snap/internal/repo"
)

type Command struct {
	quiet  bool
	branch string
}

func (c *Command) Name() string      { return "init" }
func (c *Command) Aliases() []string { return []string{"initialize"} }
func (c *Command) Usage() string     { return "init [-q] [-b <branch>]" }
func (c *Command) Brief() string     { return "Initialize a new repository" }
func (c *Command) Help() string {
	return `Initialize a new repository in the current directory.

Options:
  -q, -quiet                  Suppress normal output.
  -b, -initial-branch=<name>  Use a custom initial branch name (default: main).

Examples:
  snap init
  snap init -b trunk`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.quiet, "quiet", false, "suppress output")
	fs.BoolVar(&c.quiet, "q", false, "alias for -quiet")
	fs.StringVar(&c.branch, "initial-branch", "", "initial branch name")
	fs.StringVar(&c.branch, "b", "", "alias for -initial-branch")
}

func (c *Command) Run(ctx *command.Context) error {
	opts := []repo.Option{repo.WithFS(ctx.Filesystem())}
	if c.branch != "" {
		opts = append(opts, repo.WithDefaultBranch(c.branch))
	}

	r, err := repo.Init(ctx.WorkDir(), opts...)
	if err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}

	if !c.quiet {
		fmt.Fprintf(ctx.Stdout(), "Initialized empty repository in %s\n", r.Config.RepoDir)
	}
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
