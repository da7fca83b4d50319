package verify

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/middleware"
	"github.com/keshon/snap/internal/progress"
	"github.com/keshon/snap/internal/repo/store/object"
	"github.com/keshon/snap/internal/util"
)

type Command struct {
	workers int
}

func (c *Command) Name() string      { return "verify" }
func (c *Command) Aliases() []string { return []string{"fsck"} }
func (c *Command) Usage() string     { return "verify [-j <workers>]" }
func (c *Command) Brief() string     { return "Check integrity of every reachable object" }
func (c *Command) Help() string {
	return `Re-hash every object reachable from a branch: commits, their parents
and the file contents they record. Missing or damaged objects are listed.

Options:
  -j <workers>   Number of parallel workers (default: number of CPUs).`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.IntVar(&c.workers, "j", 0, "parallel workers")
}

func (c *Command) Run(ctx *command.Context) error {
	r, err := ctx.OpenRepo()
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	vctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	total, checks, err := r.Verify(vctx, c.workers)
	if err != nil {
		return err
	}

	var bar *progress.Tracker
	if util.IsTerminal(ctx.Stderr()) {
		bar = progress.New(ctx.Stderr(), total, "Checking objects")
	}

	var bad []object.Check
	for chk := range checks {
		if bar != nil {
			bar.Increment()
		}
		if chk.Status != object.OK {
			bad = append(bad, chk)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	out := ctx.Stdout()
	sort.Slice(bad, func(i, j int) bool { return bad[i].Digest < bad[j].Digest })
	for _, chk := range bad {
		fmt.Fprintf(out, "%-8s %s\n", chk.Status, chk.Digest)
	}
	fmt.Fprintf(out, "Checked %d objects in %s.\n", total, time.Since(start).Truncate(time.Millisecond))

	if len(bad) > 0 {
		return fmt.Errorf("%d of %d objects missing or damaged", len(bad), total)
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
