package command

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
)

// ShellPrompt is printed before each line when the shell is interactive.
const ShellPrompt = "snap> "

// RunShell reads commands from in, one per line, until EOF or "exit".
// A failing command is reported and the loop continues.
func RunShell(base *Context, in io.Reader, interactive bool) error {
	out := base.Stdout()
	sc := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, ShellPrompt)
		}
		if !sc.Scan() {
			break
		}

		args, err := SplitLine(sc.Text())
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return nil
		case "shell":
			fmt.Fprintln(out, "Already in shell.")
			continue
		}

		if err := executeSafe(base, args); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}

	if interactive {
		fmt.Fprintln(out)
	}
	return sc.Err()
}

// executeSafe runs one shell command, turning a panic into an error so the
// session survives it.
func executeSafe(base *Context, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("command panicked", slog.String("command", args[0]), slog.Any("panic", r))
			err = fmt.Errorf("%s: internal error: %v", args[0], r)
		}
	}()
	return Execute(base, args)
}

// SplitLine splits a shell line into words. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func SplitLine(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, fmt.Errorf("trailing backslash")
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
