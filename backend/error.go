package backend

import (
	"log/slog"

	"github.com/ardnew/ilc/il"
)

// Predefined errors (sentinel values).
var (
	ErrNamePresent          = il.NewError("name already declared")
	ErrNameNotFound         = il.NewError("name not declared")
	ErrUnsupportedConstruct = il.NewError("unsupported construct")
	ErrMaxDepthExceeded     = il.NewError("maximum block depth exceeded")
)

// NamePresentError reports an attempt to declare a name that is already
// declared in the same scope.
type NamePresentError struct {
	Name string
	Pos  il.Pos
}

// Error implements the error interface.
func (e *NamePresentError) Error() string {
	return prefix(e.Pos) + ErrNamePresent.Error() + ": " + e.Name
}

// Is matches [ErrNamePresent].
func (e *NamePresentError) Is(target error) bool { return target == ErrNamePresent }

// LogValue implements slog.LogValuer.
func (e *NamePresentError) LogValue() slog.Value {
	return nameValue(ErrNamePresent, e.Name, e.Pos)
}

// NameNotFoundError reports a reference to, or a call of, a name that is not
// declared in any visible scope.
type NameNotFoundError struct {
	Name string
	Pos  il.Pos
}

// Error implements the error interface.
func (e *NameNotFoundError) Error() string {
	return prefix(e.Pos) + ErrNameNotFound.Error() + ": " + e.Name
}

// Is matches [ErrNameNotFound].
func (e *NameNotFoundError) Is(target error) bool { return target == ErrNameNotFound }

// LogValue implements slog.LogValuer.
func (e *NameNotFoundError) LogValue() slog.Value {
	return nameValue(ErrNameNotFound, e.Name, e.Pos)
}

// UnsupportedConstructError reports an IL node the active backend cannot
// lower.
type UnsupportedConstructError struct {
	Backend   string
	Construct string
	Pos       il.Pos
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	return prefix(e.Pos) + e.Backend + ": " +
		ErrUnsupportedConstruct.Error() + ": " + e.Construct
}

// Is matches [ErrUnsupportedConstruct].
func (e *UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupportedConstruct
}

// LogValue implements slog.LogValuer.
func (e *UnsupportedConstructError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrUnsupportedConstruct.Error()),
		slog.String("backend", e.Backend),
		slog.String("construct", e.Construct),
	}

	if e.Pos.IsValid() {
		attrs = append(attrs, slog.Any("pos", e.Pos))
	}

	return slog.GroupValue(attrs...)
}

func prefix(p il.Pos) string {
	if !p.IsValid() {
		return ""
	}

	return p.String() + ": "
}

func nameValue(sentinel *il.Error, name string, p il.Pos) slog.Value {
	attrs := []slog.Attr{
		slog.String("error", sentinel.Error()),
		slog.String("name", name),
	}

	if p.IsValid() {
		attrs = append(attrs, slog.Any("pos", p))
	}

	return slog.GroupValue(attrs...)
}
