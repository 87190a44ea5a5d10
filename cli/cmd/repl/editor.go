package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/log"
	"github.com/ardnew/ilc/program"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the declaration edit loop. It
// writes the session's declarations as a prelude document, opens $EDITOR, and
// parses the result. On a parse error the user is asked whether to re-edit;
// declining returns [ErrEditDeclined].
type editCommand struct {
	decls   []backend.Decl
	ctxFunc func() context.Context
	logger  log.Logger
	result  []backend.Decl
	edited  bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := program.FormatBuiltins(ctx, &buf, c.decls, 2); err != nil {
		return err
	}

	f, err := os.CreateTemp("", "ilc-repl-*.yaml")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	content := buf.Bytes()

	for {
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		decls, parseErr := program.ParseBuiltins(path, data)

		c.logger.TraceContext(ctx, "repl edit parsed",
			slog.Int("bytes", len(data)),
			slog.Bool("ok", parseErr == nil),
		)

		if parseErr == nil {
			c.result, c.edited = decls, true

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", parseErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}

		content = data
	}
}

// runEditor opens path in $EDITOR and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
