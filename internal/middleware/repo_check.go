package middleware

import (
	"fmt"

	"github.com/keshon/snap/internal/command"
	"github.com/keshon/snap/internal/config"
	"github.com/keshon/snap/internal/errs"
)

// WithRepoCheck refuses to run the command outside a repository.
func WithRepoCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if config.ResolveWorkingTreeRoot(ctx.Filesystem(), ctx.WorkDir()) == "" {
					return fmt.Errorf("%w (or any parent): run 'snap init' first", errs.ErrNoRepo)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
