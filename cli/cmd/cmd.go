package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ilc/backend/js"
	"github.com/ardnew/ilc/log"
	"github.com/ardnew/ilc/program"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// Options are the settings shared by all commands.
type Options struct {
	// Target overrides the program's target version when not empty.
	Target string
	// Out overrides the program's output file when not empty. "-" selects
	// standard output.
	Out string
	// Prelude lists prelude files or names resolved against SearchPath.
	Prelude []string
	// SearchPath lists directories searched for prelude names.
	SearchPath []string
	// MaxDepth bounds block nesting; zero means unlimited.
	MaxDepth int
	// CacheDir holds transient files such as REPL history.
	CacheDir string
}

type (
	optionsKey struct{}
	outputKey  struct{}
)

// WithOptions returns a new context.Context carrying opts.
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

func optionsFrom(ctx context.Context) Options {
	opts, _ := ctx.Value(optionsKey{}).(Options)

	return opts
}

// WithOutput returns a new context.Context whose commands write to w instead
// of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// loadProgram reads the program document at source, or standard input for
// "-".
func loadProgram(ctx context.Context, source string) (*program.Program, error) {
	if source != stdinSource {
		return program.Load(ctx, source)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, program.ErrRead.Wrap(err)
	}

	return program.Parse(ctx, "<stdin>", data)
}

// backendFor returns the javascript backend for prog with opts applied.
func backendFor(prog *program.Program, opts Options) (*js.Backend, error) {
	if opts.Target != "" {
		v, err := js.ParseVersion(opts.Target)
		if err != nil {
			return nil, err
		}

		prog.Target.Version = v
	}

	if opts.Out != "" {
		prog.Target.File = opts.Out
	}

	return prog.Backend(
		js.WithMaxDepth(opts.MaxDepth),
		js.WithLogger(log.Default()),
	), nil
}
