package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ilc/backend/js"
	"github.com/ardnew/ilc/cli/cmd/repl"
	"github.com/ardnew/ilc/log"
	"github.com/ardnew/ilc/program"
)

// Repl lowers expressions interactively against a program's names.
type Repl struct {
	Source string `arg:"" help:"Program document whose names are in scope." name:"source" optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := optionsFrom(ctx)

	prog := &program.Program{Name: "<repl>", Target: program.Target{Version: js.DefaultVersion}}

	if r.Source != "" {
		if prog, err = program.Load(ctx, r.Source); err != nil {
			return err
		}
	}

	reg, err := registry(ctx, prog, opts)
	if err != nil {
		return err
	}

	// Output is printed by the session, never written to a file.
	opts.Out = ""
	prog.Target.File = ""

	be, err := backendFor(prog, opts)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "repl", slog.String("program", prog.Name), slog.Int("names", reg.Len()))

	return repl.Run(ctx, be, reg, opts.CacheDir, log.Default())
}
