package repl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/il"
	"github.com/ardnew/ilc/log"
)

// Session lowers REPL input against a name registry that persists across
// lines.
type Session struct {
	reg     *backend.NameRegistry
	backend backend.Backend
	logger  log.Logger
}

// NewSession returns a Session lowering with be. A nil reg starts empty.
func NewSession(be backend.Backend, reg *backend.NameRegistry, logger log.Logger) *Session {
	if reg == nil {
		reg = backend.NewNameRegistry()
	}

	return &Session{reg: reg, backend: be, logger: logger}
}

// Lower compiles the expression src as a single value statement.
func (s *Session) Lower(ctx context.Context, src string) (string, error) {
	v, err := il.ParseValue(src)
	if err != nil {
		return "", err
	}

	out, err := s.backend.Compile(ctx, il.NewBlock(il.Val(v)), s.reg)

	s.logger.TraceContext(ctx, "repl lower",
		slog.String("input", src),
		slog.Bool("ok", err == nil),
	)

	return out, err
}

// Declare parses "name type [= value]" and adds name to the registry. With a
// value, the declaration is compiled and its output returned.
func (s *Session) Declare(ctx context.Context, spec string) (string, error) {
	name, rest, ok := strings.Cut(strings.TrimSpace(spec), " ")
	if !ok || name == "" {
		return "", ErrUsage
	}

	typeText, valueText, hasValue := strings.Cut(rest, "=")

	t, err := il.ParseType(strings.TrimSpace(typeText))
	if err != nil {
		return "", err
	}

	if !hasValue {
		return "", s.reg.Add(name, t)
	}

	v, err := il.ParseValue(strings.TrimSpace(valueText))
	if err != nil {
		return "", err
	}

	out, err := s.backend.Compile(ctx, il.NewBlock(il.VarDeclare(name, t, v)), s.reg)
	if err != nil {
		return "", err
	}

	return out, s.reg.Add(name, t)
}

// Names returns every declared name in lexical order.
func (s *Session) Names() []string { return slices.Collect(s.reg.Names()) }

// Decls returns every declaration in lexical order of name.
func (s *Session) Decls() []backend.Decl { return slices.Collect(s.reg.All()) }

// Lookup returns the declared type of name.
func (s *Session) Lookup(name string) (il.Type, bool) {
	t, err := s.reg.Get(name)

	return t, err == nil
}

// Reset replaces the registry with decls.
func (s *Session) Reset(decls []backend.Decl) {
	s.reg = backend.NewNameRegistry(decls...)
}
