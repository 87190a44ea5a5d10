package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/ilc/log"
)

// Compile lowers a program document to its target language.
type Compile struct {
	Source string `arg:"" default:"-" help:"Program document or '-' for stdin." name:"source"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := optionsFrom(ctx)

	prog, err := loadProgram(ctx, c.Source)
	if err != nil {
		return err
	}

	reg, err := registry(ctx, prog, opts)
	if err != nil {
		return err
	}

	be, err := backendFor(prog, opts)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "compile",
		slog.String("program", prog.Name),
		slog.String("target", be.Version().String()),
		slog.Int("statements", prog.Body.Len()),
		slog.Any("names", reg),
	)

	out, err := be.Compile(ctx, prog.Body, reg)
	if err != nil {
		return ErrCompile.Wrap(err).With(slog.String("program", prog.Name))
	}

	return writeOutput(ctx, be.File(), out)
}

// writeOutput writes out to file, or to the command output when file is
// empty or "-".
func writeOutput(ctx context.Context, file, out string) error {
	if file == "" || file == stdinSource {
		_, err := io.WriteString(outputFrom(ctx), out+"\n")

		return err
	}

	if err := os.WriteFile(file, []byte(out+"\n"), 0o644); err != nil { //nolint:gosec
		return ErrWriteOutput.Wrap(err).With(slog.String("file", file))
	}

	log.DebugContext(ctx, "output written",
		slog.String("file", file),
		slog.Int("bytes", len(out)+1),
	)

	return nil
}
