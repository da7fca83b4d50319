package status

import (
	"flag"
	"fmt"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
	"github.com/keshon/snap/internal/repo/store/file"
)

type Command struct{}

func (c *Command) Name() string      { return "status" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status" }
func (c *Command) Brief() string     { return "Show the current branch and staged files" }
func (c *Command) Help() string {
	return `Show the current branch and what the next commit will contain.

Each staged file is marked:
  staged     matches the working tree
  modified   changed since it was staged (run add again)
  missing    removed from the working tree since it was staged`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	st, err := r.Status()
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	fmt.Fprintf(out, "On branch %s\n", st.Branch)
	if st.Head == "" {
		fmt.Fprintln(out, "No commits yet")
	}
	fmt.Fprintln(out)

	if len(st.Staged) == 0 {
		fmt.Fprintln(out, "Nothing staged (use \"snap add <file>...\")")
		return nil
	}

	fmt.Fprintln(out, "Changes to be committed:")
	for _, ps := range st.Staged {
		fmt.Fprintf(out, "\t%-9s %s\n", ps.State.String()+":", ps.Path)
	}

	for _, ps := range st.Staged {
		if ps.State != file.Staged {
			fmt.Fprintln(out, "\n(use \"snap add <file>...\" to restage changed files)")
			break
		}
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
