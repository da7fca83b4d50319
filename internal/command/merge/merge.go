package merge

import (
	"errors"
	"flag"
	"fmt"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/errs"
	"github.com/keshon/snap/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "merge" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "merge <branch-name>" }
func (c *Command) Brief() string     { return "Merge another branch into the current branch" }
func (c *Command) Help() string {
	return `Merge another branch into the current one.

Usage:
  merge <branch-name>

Both snapshots are combined into a commit with two parents. A file that
differs on both sides is a conflict; any conflict aborts the merge and
lists every conflicting file. The merged branch itself is not changed.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	target := ctx.Args[0]

	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	fmt.Fprintf(out, "Merging branch '%s' into '%s'...\n", target, current)

	digest, err := r.Merge(target)
	if err != nil {
		var conflict *errs.MergeConflictError
		if errors.As(err, &conflict) {
			fmt.Fprintln(out, "Conflicting files:")
			for _, p := range conflict.Paths {
				fmt.Fprintf(out, "\t%s\n", p)
			}
			return fmt.Errorf("merge aborted, %d conflicting file(s)", len(conflict.Paths))
		}
		return err
	}

	fmt.Fprintf(out, "Merge commit %s\n", digest)
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
