package commit

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
)

type Command struct {
	message string
}

func (c *Command) Name() string  { return "commit" }
func (c *Command) Brief() string { return "Commit staged changes to the current branch" }
func (c *Command) Usage() string { return `commit -m "<message>"` }
func (c *Command) Help() string {
	return `Record the staged files as a new commit on the current branch.

Usage:
  commit -m "<message>"  - commit with a given message
  commit <message>       - same, message as plain arguments

The staging area is cleared afterwards. An empty staging area still
produces a commit.`
}
func (c *Command) Aliases() []string              { return []string{"ci"} }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.StringVar(&c.message, "m", "", "commit message")
	fs.StringVar(&c.message, "message", "", "alias for -m")
}

func (c *Command) Run(ctx *command.Context) error {
	message := c.message
	if message == "" {
		message = strings.Join(ctx.Args, " ")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message required (use -m or pass message directly)")
	}

	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	branch, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	digest, err := r.Commit(message)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout(), "[%s %s] %s\n", branch, digest, message)
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
