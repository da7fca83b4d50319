package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Execute resolves args against the command tree, parses the command's
// flags and runs it. base supplies the environment; Args and Flags are
// filled in per call.
func Execute(base *Context, args []string) error {
	node, remaining, err := ResolveCommand(args)
	if err != nil {
		return err
	}
	cmd := node.Cmd

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.Flags(fs)
	if err := fs.Parse(remaining); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(base.Stdout(), "Usage: %s\n\n%s\n", cmd.Usage(), cmd.Help())
			return nil
		}
		return fmt.Errorf("%s: %w (usage: %s)", cmd.Name(), err, cmd.Usage())
	}

	ctx := *base
	ctx.Args = fs.Args()
	ctx.Flags = fs
	return cmd.Run(&ctx)
}

// RunCLI is the main entrypoint for one-shot execution. It reports the
// error on stderr and returns the process exit code.
func RunCLI(base *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(base.Stderr(), "Error: no command provided (try 'help')")
		return 1
	}
	if err := Execute(base, args); err != nil {
		fmt.Fprintln(base.Stderr(), "Error:", err)
		return 1
	}
	return 0
}
