package command_test

import (
	"bytes"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"

	"github.com/keshon/snap/internal/command"
)

type echoCommand struct {
	upper bool
}

func (c *echoCommand) Name() string                   { return "echo-test" }
func (c *echoCommand) Aliases() []string              { return []string{"et"} }
func (c *echoCommand) Usage() string                  { return "echo-test [-upper] <words>" }
func (c *echoCommand) Brief() string                  { return "" }
func (c *echoCommand) Help() string                   { return "" }
func (c *echoCommand) Subcommands() []command.Command { return nil }
func (c *echoCommand) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.upper, "upper", false, "")
}
func (c *echoCommand) Run(ctx *command.Context) error {
	s := strings.Join(ctx.Args, " ")
	if c.upper {
		s = strings.ToUpper(s)
	}
	_, err := ctx.Stdout().Write([]byte(s + "\n"))
	return err
}

type failCommand struct{}

func (c *failCommand) Name() string                   { return "fail-test" }
func (c *failCommand) Aliases() []string              { return nil }
func (c *failCommand) Usage() string                  { return "fail-test" }
func (c *failCommand) Brief() string                  { return "" }
func (c *failCommand) Help() string                   { return "" }
func (c *failCommand) Subcommands() []command.Command { return nil }
func (c *failCommand) Flags(fs *flag.FlagSet)         {}
func (c *failCommand) Run(ctx *command.Context) error { return errors.New("boom") }

type panicCommand struct{}

func (c *panicCommand) Name() string                   { return "panic-test" }
func (c *panicCommand) Aliases() []string              { return nil }
func (c *panicCommand) Usage() string                  { return "panic-test" }
func (c *panicCommand) Brief() string                  { return "" }
func (c *panicCommand) Help() string                   { return "" }
func (c *panicCommand) Subcommands() []command.Command { return nil }
func (c *panicCommand) Flags(fs *flag.FlagSet)         {}
func (c *panicCommand) Run(ctx *command.Context) error { panic("kaboom") }

func init() {
	command.RegisterCommand(&echoCommand{})
	command.RegisterCommand(&failCommand{})
	command.RegisterCommand(&panicCommand{})
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"add a.txt", []string{"add", "a.txt"}},
		{`commit -m "hello world"`, []string{"commit", "-m", "hello world"}},
		{`commit -m 'it''s'`, []string{"commit", "-m", "its"}},
		{`add my\ file.txt`, []string{"add", "my file.txt"}},
		{`x "" y`, []string{"x", "", "y"}},
		{"a\tb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		got, err := command.SplitLine(tt.line)
		if err != nil {
			t.Errorf("SplitLine(%q): %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLine(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}

	for _, bad := range []string{`"open`, `'open`, `trailing\`} {
		if _, err := command.SplitLine(bad); err == nil {
			t.Errorf("SplitLine(%q): expected error", bad)
		}
	}
}

func TestExecuteFlagsAndAliases(t *testing.T) {
	var out bytes.Buffer
	ctx := &command.Context{Out: &out}

	if err := command.Execute(ctx, []string{"et", "-upper", "hi", "there"}); err != nil {
		t.Fatal(err)
	}
	// flags reset between runs
	if err := command.Execute(ctx, []string{"echo-test", "again"}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "HI THERE\nagain\n" {
		t.Errorf("output = %q", out.String())
	}

	if err := command.Execute(ctx, []string{"echo-test", "-nope"}); err == nil {
		t.Error("expected flag error")
	}
	if err := command.Execute(ctx, []string{"missing"}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

func TestRunCLIExitCodes(t *testing.T) {
	var out, errOut bytes.Buffer
	ctx := &command.Context{Out: &out, Err: &errOut}

	if code := command.RunCLI(ctx, []string{"echo-test", "ok"}); code != 0 {
		t.Errorf("code = %d", code)
	}
	if code := command.RunCLI(ctx, []string{"fail-test"}); code != 1 {
		t.Errorf("code = %d", code)
	}
	if !strings.Contains(errOut.String(), "Error: boom") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if code := command.RunCLI(ctx, nil); code != 1 {
		t.Errorf("no args code = %d", code)
	}
}

func TestRunShellContinuesAfterErrors(t *testing.T) {
	var out bytes.Buffer
	ctx := &command.Context{Out: &out}
	in := strings.NewReader("echo-test one\nfail-test\n\nnope\necho-test \"two words\n echo-test two\nexit\necho-test never\n")

	if err := command.RunShell(ctx, in, false); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{"one\n", "Error: boom\n", `Error: unknown command "nope"`, "Error: unterminated", "two\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "never") {
		t.Error("shell kept reading after exit")
	}
	if strings.Contains(got, command.ShellPrompt) {
		t.Error("prompt printed in non-interactive mode")
	}
}

func TestRunShellSurvivesPanic(t *testing.T) {
	var out bytes.Buffer
	ctx := &command.Context{Out: &out}
	in := strings.NewReader("panic-test\necho-test after\n")

	if err := command.RunShell(ctx, in, false); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "Error: panic-test: internal error: kaboom") {
		t.Errorf("panic not reported:\n%s", got)
	}
	if !strings.Contains(got, "after\n") {
		t.Errorf("shell stopped after panic:\n%s", got)
	}
}

func TestRunShellPrompt(t *testing.T) {
	var out bytes.Buffer
	if err := command.RunShell(&command.Context{Out: &out}, strings.NewReader("echo-test x\n"), true); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), command.ShellPrompt) != 2 {
		t.Errorf("expected two prompts, got %q", out.String())
	}
}

func TestApplyMiddlewaresOrder(t *testing.T) {
	var trace []string
	tag := func(name string) command.Middleware {
		return func(next command.Command) command.Command {
			return &command.WrappedCommand{
				Command: next,
				Wrap: func(ctx *command.Context) error {
					trace = append(trace, name)
					return next.Run(ctx)
				},
			}
		}
	}

	var out bytes.Buffer
	cmd := command.ApplyMiddlewares(&echoCommand{}, tag("inner"), tag("outer"))
	if cmd.Name() != "echo-test" {
		t.Errorf("wrapped name = %q", cmd.Name())
	}
	if err := cmd.Run(&command.Context{Args: []string{"hi"}, Out: &out}); err != nil {
		t.Fatal(err)
	}
	if want := []string{"outer", "inner"}; !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
	if out.String() != "hi\n" {
		t.Errorf("output = %q", out.String())
	}
}
