package js

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/il"
	"github.com/ardnew/ilc/log"
)

// Name identifies this backend in errors and logs.
const Name = "js"

// Backend lowers IL into JavaScript. It holds only immutable configuration
// and is safe to share between concurrent compilations.
type Backend struct {
	version  Version
	file     string
	maxDepth int
	logger   log.Logger
}

// Option configures a [Backend].
type Option func(Backend) Backend

// WithMaxDepth bounds the nesting depth of blocks. Compiling a program that
// nests deeper fails with [backend.ErrMaxDepthExceeded]. Zero or a negative
// depth disables the bound.
func WithMaxDepth(depth int) Option {
	return func(b Backend) Backend {
		b.maxDepth = depth

		return b
	}
}

// WithLogger traces lowering to logger at trace level.
func WithLogger(logger log.Logger) Option {
	return func(b Backend) Backend {
		b.logger = logger.With(slog.String("backend", Name))

		return b
	}
}

// New returns a backend emitting dialect v. The output filename is carried
// as configuration only; the backend never writes files.
func New(v Version, file string, opts ...Option) *Backend {
	b := Backend{version: v, file: file}

	for _, opt := range opts {
		b = opt(b)
	}

	return &b
}

// Name returns [Name].
func (b *Backend) Name() string { return Name }

// Version returns the configured dialect.
func (b *Backend) Version() Version { return b.version }

// File returns the configured output filename.
func (b *Backend) File() string { return b.file }

// MaxDepth returns the configured block nesting bound, or zero if unbounded.
func (b *Backend) MaxDepth() int { return max(b.maxDepth, 0) }

// Compile lowers blk against the declarations in reg.
//
// The registry is cloned on entry, so neither top-level nor nested
// declarations in blk are ever added to reg. Lowering stops at the first
// error, in which case the returned text is empty. A cancelled ctx stops
// lowering before the next statement.
func (b *Backend) Compile(
	ctx context.Context,
	blk *il.Block,
	reg *backend.NameRegistry,
) (string, error) {
	c := compiler{Backend: b, ctx: ctx}

	var sb strings.Builder

	if err := c.block(&sb, blk, reg.Clone(), 0); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// compiler carries the state of a single Compile call.
type compiler struct {
	*Backend
	ctx context.Context
}

func (c compiler) unsupported(construct string, pos il.Pos) error {
	return &backend.UnsupportedConstructError{
		Backend:   Name,
		Construct: construct,
		Pos:       pos,
	}
}

func (c compiler) trace(msg string, attrs ...slog.Attr) {
	c.logger.TraceContext(c.ctx, msg, attrs...)
}
