package middleware

import (
	"log/slog"

	"github.com/keshon/snap/internal/command"
)

// WithDebugArgsPrint logs the command name and its arguments at debug level.
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				slog.Debug("run command",
					slog.String("command", cmd.Name()),
					slog.Any("args", ctx.Args))
				return cmd.Run(ctx)
			},
		}
	}
}
