package diff

import (
	"flag"
	"fmt"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "diff" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "diff <revA> <revB>" }
func (c *Command) Brief() string     { return "Compare the snapshots of two commits" }
func (c *Command) Help() string {
	return `List whole-file differences between two commits.

A revision is a branch name (its head) or a commit digest.

Output:
  A <path>   added in revB
  D <path>   deleted in revB
  M <path>   content differs`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 2 {
		return fmt.Errorf("usage: %s", c.Usage())
	}

	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	a, err := r.ResolveRevision(ctx.Args[0])
	if err != nil {
		return err
	}
	b, err := r.ResolveRevision(ctx.Args[1])
	if err != nil {
		return err
	}

	d, err := r.Diff(a, b)
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if d.Empty() {
		fmt.Fprintln(out, "No differences.")
		return nil
	}
	for _, p := range d.Added {
		fmt.Fprintf(out, "A %s\n", p)
	}
	for _, p := range d.Deleted {
		fmt.Fprintf(out, "D %s\n", p)
	}
	for _, p := range d.Modified {
		fmt.Fprintf(out, "M %s\n", p)
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
