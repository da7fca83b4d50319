package shell

import (
	"flag"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
	"github.com/keshon/snap/internal/util"
)

type Command struct{}

func (c *Command) Name() string      { return "shell" }
func (c *Command) Aliases() []string { return []string{"sh"} }
func (c *Command) Usage() string     { return "shell" }
func (c *Command) Brief() string     { return "Read commands interactively" }
func (c *Command) Help() string {
	return `Start an interactive session. Each line is one command, e.g.

  snap> add notes.txt
  snap> commit -m "first"

A failing command prints an error and the session continues.
Type 'exit' or press Ctrl-D to leave.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	return command.RunShell(ctx, ctx.Stdin(), util.IsTerminal(ctx.Stdin()))
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
