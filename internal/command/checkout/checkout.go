package checkout

import (
	"flag"
	"fmt"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "checkout" }
func (c *Command) Aliases() []string { return []string{"co"} }
func (c *Command) Usage() string     { return "checkout <branch-name>" }
func (c *Command) Brief() string     { return "Switch to another branch" }
func (c *Command) Help() string {
	return `Switch HEAD to an existing branch.

Usage:
  checkout <branch-name>

Files in the working tree are not touched.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	branchName := ctx.Args[0]

	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	if err := r.Checkout(branchName); err != nil {
		return err
	}

	fmt.Fprintln(ctx.Stdout(), "Switched to branch", branchName)
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
