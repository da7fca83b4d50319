package log

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
)

type Command struct {
	oneline bool
	limit   int
}

func (c *Command) Name() string      { return "log" }
func (c *Command) Aliases() []string { return []string{"commits"} }
func (c *Command) Usage() string     { return "log [-oneline] [-n <count>]" }
func (c *Command) Brief() string     { return "Show commit history of the current branch" }
func (c *Command) Help() string {
	return `Show the current branch's history, most recent first.

Options:
  -oneline      Show each commit as a single line (digest + message).
  -n <count>    Limit to the last N commits.

Examples:
  snap log
  snap log -oneline -n 10`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.oneline, "oneline", false, "show each commit on one line")
	fs.IntVar(&c.limit, "n", 0, "limit number of commits")
}

func (c *Command) Run(ctx *command.Context) error {
	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	entries, err := r.Log()
	if err != nil {
		return err
	}
	if c.limit > 0 && len(entries) > c.limit {
		entries = entries[:c.limit]
	}

	out := ctx.Stdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No commits yet.")
		return nil
	}

	for _, e := range entries {
		if c.oneline {
			fmt.Fprintf(out, "%s %s\n", e.Digest, firstLine(e.Message))
			continue
		}
		fmt.Fprintf(out, "commit %s\n", e.Digest)
		if len(e.Parents) > 1 {
			fmt.Fprintf(out, "Merge: %s\n", strings.Join(e.Parents, " "))
		}
		fmt.Fprintf(out, "\n    %s\n\n", strings.ReplaceAll(e.Message, "\n", "\n    "))
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
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
