package cmd

import (
	"context"
	"io"
)

// Fmt prints a program document in normalized form.
type Fmt struct {
	YAML   bool `help:"Write the normalized YAML document instead of the IL listing."`
	Indent int  `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Program document or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := loadProgram(ctx, f.Source)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if f.YAML {
		return prog.FormatYAML(ctx, w, f.Indent)
	}

	for s := range prog.Body.All() {
		if _, err := io.WriteString(w, s.String()+"\n"); err != nil {
			return err
		}
	}

	return nil
}
