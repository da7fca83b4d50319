package branch

import (
	"flag"
	"fmt"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "branch" }
func (c *Command) Aliases() []string { return []string{"br"} }
func (c *Command) Usage() string     { return "branch [<branch-name>]" }
func (c *Command) Brief() string     { return "List branches or switch to a new one" }

func (c *Command) Help() string {
	return `List all branches or switch to a branch, creating it if needed.

Usage:
  branch        - list all branches (current marked with '*')
  branch <name> - create <name> from the current branch and switch to it

An existing branch is switched to without being changed.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	out := ctx.Stdout()

	// case 1: create or switch
	if len(ctx.Args) > 0 {
		name := ctx.Args[0]
		created, err := r.Branch(name)
		if err != nil {
			return fmt.Errorf("failed to switch to branch %q: %w", name, err)
		}
		if created {
			fmt.Fprintf(out, "Switched to a new branch '%s'\n", name)
		} else {
			fmt.Fprintf(out, "Switched to branch '%s'\n", name)
		}
		return nil
	}

	// case 2: list branches
	branches, err := r.ListBranches()
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}
	for _, b := range branches {
		prefix := "  "
		if b.Current {
			prefix = "* "
		}
		fmt.Fprintln(out, prefix+b.Name)
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
