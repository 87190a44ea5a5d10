package program

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/backend/js"
	"github.com/ardnew/ilc/il"
)

// Predefined errors (sentinel values).
var (
	ErrDocument = il.NewError("invalid program document")
	ErrRead     = il.NewError("cannot read program")
)

// Target configures the backend a program is compiled with.
type Target struct {
	Version js.Version
	File    string
}

// Program is a parsed program document.
type Program struct {
	Name     string
	Target   Target
	Builtins []backend.Decl
	Body     *il.Block
}

// Load reads and parses the program document at path.
func Load(ctx context.Context, path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("path", path))
	}

	return Parse(ctx, path, src)
}

// Registry returns a name registry declaring prelude followed by the
// program's builtins. A builtin may repeat a prelude declaration with the
// same type; any other repeated name fails with [*backend.NamePresentError].
func (p *Program) Registry(prelude ...backend.Decl) (*backend.NameRegistry, error) {
	reg := backend.NewNameRegistry()

	for _, d := range slices.Concat(prelude, p.Builtins) {
		if prev, err := reg.Get(d.Name); err == nil && prev.Equal(d.Type) {
			continue
		}

		if err := reg.Add(d.Name, d.Type); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Backend returns the JavaScript backend configured by the program's target.
func (p *Program) Backend(opts ...js.Option) *js.Backend {
	return js.New(p.Target.Version, p.Target.File, opts...)
}

// DocumentError reports a malformed program document.
type DocumentError struct {
	Pos    il.Pos
	Reason string
	Err    error
}

// Error formats the error with its position.
func (e *DocumentError) Error() string {
	msg := e.Reason
	if e.Pos.IsValid() || e.Pos.File != "" {
		msg = e.Pos.String() + ": " + msg
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying parse error, if any.
func (e *DocumentError) Unwrap() error { return e.Err }

// Is matches [ErrDocument].
func (e *DocumentError) Is(target error) bool { return target == ErrDocument }

// LogValue implements slog.LogValuer.
func (e *DocumentError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrDocument.Error()),
		slog.String("reason", e.Reason),
		slog.Any("pos", e.Pos),
	}

	if e.Err != nil {
		var lv slog.LogValuer
		if errors.As(e.Err, &lv) {
			attrs = append(attrs, slog.Any("cause", lv))
		} else {
			attrs = append(attrs, slog.String("cause", e.Err.Error()))
		}
	}

	return slog.GroupValue(attrs...)
}
