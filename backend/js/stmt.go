package js

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/il"
)

// block lowers every statement of blk in order into sb, stopping at the first
// failure. Declarations are added to scope.
func (c compiler) block(
	sb *strings.Builder,
	blk *il.Block,
	scope *backend.NameRegistry,
	depth int,
) error {
	for s := range blk.All() {
		if c.ctx.Err() != nil {
			return context.Cause(c.ctx)
		}

		if s == nil {
			return c.unsupported("nil statement", il.Pos{})
		}

		c.trace("lower statement",
			slog.String("kind", s.Kind.String()),
			slog.Int("depth", depth),
			slog.Any("pos", s.Pos),
		)

		if err := c.statement(sb, s, scope, depth); err != nil {
			return err
		}
	}

	return nil
}

// nested lowers blk under a clone of scope and returns its text.
func (c compiler) nested(
	blk *il.Block,
	scope *backend.NameRegistry,
	depth int,
	pos il.Pos,
) (string, error) {
	depth++

	if c.maxDepth > 0 && depth > c.maxDepth {
		return "", backend.ErrMaxDepthExceeded.With(
			slog.Int("max", c.maxDepth),
			slog.Any("pos", pos),
		)
	}

	var sb strings.Builder

	if err := c.block(&sb, blk, scope, depth); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (c compiler) statement(
	sb *strings.Builder,
	s *il.Statement,
	scope *backend.NameRegistry,
	depth int,
) error {
	switch s.Kind {
	case il.StmtVal:
		v, err := c.value(s.Value, scope)
		if err != nil {
			return err
		}

		sb.WriteString(v + ";")

	case il.StmtVarDeclare:
		v, err := c.value(s.Value, scope)
		if err != nil {
			return err
		}

		if err := declare(scope, s.Name, typeOf(s), s.Pos); err != nil {
			return err
		}

		sb.WriteString(c.version.declKeyword() + " " + s.Name + "=" + v + ";")

	case il.StmtVarAssign:
		if !scope.IsDefined(s.Name) {
			return &backend.NameNotFoundError{Name: s.Name, Pos: s.Pos}
		}

		v, err := c.value(s.Value, scope)
		if err != nil {
			return err
		}

		sb.WriteString(s.Name + "=" + v + ";")

	case il.StmtFnDeclare:
		return c.function(sb, s, scope, depth)

	case il.StmtIf:
		return c.conditional(sb, s, scope, depth)

	default:
		return c.unsupported(s.Kind.String(), s.Pos)
	}

	return nil
}

// function declares s.Name in scope before lowering the body, so the body may
// call the function recursively. Parameters are visible only in the body.
func (c compiler) function(
	sb *strings.Builder,
	s *il.Statement,
	scope *backend.NameRegistry,
	depth int,
) error {
	if err := declare(scope, s.Name, s.Signature(), s.Pos); err != nil {
		return err
	}

	local := scope.Clone()
	names := make([]string, 0, len(s.Params))

	for _, p := range s.Params {
		if err := declare(local, p.Name, p.Type, s.Pos); err != nil {
			return err
		}

		names = append(names, p.Name)
	}

	body, err := c.nested(s.Body, local, depth, s.Pos)
	if err != nil {
		return err
	}

	sb.WriteString("function " + s.Name + "(" + strings.Join(names, ",") + "){" + body + "}")

	return nil
}

// conditional lowers an if statement. Every branch body is lowered under its
// own clone of scope.
func (c compiler) conditional(
	sb *strings.Builder,
	s *il.Statement,
	scope *backend.NameRegistry,
	depth int,
) error {
	var out strings.Builder

	branch := func(keyword string, cond *il.Value, body *il.Block) error {
		v, err := c.value(cond, scope)
		if err != nil {
			return err
		}

		text, err := c.nested(body, scope.Clone(), depth, s.Pos)
		if err != nil {
			return err
		}

		out.WriteString(keyword + "(" + v + "){" + text + "}")

		return nil
	}

	if err := branch("if", s.Value, s.Body); err != nil {
		return err
	}

	for _, elif := range s.Elifs {
		if err := branch("elseif", elif.Cond, elif.Body); err != nil {
			return err
		}
	}

	if s.Else != nil {
		text, err := c.nested(s.Else, scope.Clone(), depth, s.Pos)
		if err != nil {
			return err
		}

		out.WriteString("else{" + text + "}")
	}

	sb.WriteString(out.String())

	return nil
}

func declare(scope *backend.NameRegistry, name string, t il.Type, pos il.Pos) error {
	if err := scope.Add(name, t); err != nil {
		return &backend.NamePresentError{Name: name, Pos: pos}
	}

	return nil
}

func typeOf(s *il.Statement) il.Type {
	if s.Type == nil {
		return il.NullType()
	}

	return *s.Type
}
