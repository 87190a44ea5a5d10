package program

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/il"
)

// ErrEncode is returned when a program cannot be written as YAML.
var ErrEncode = il.NewError("cannot encode program")

// FormatYAML writes p as a normalized program document that [Parse] reads
// back into an equal program.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	doc, err := p.document()
	if err != nil {
		return err
	}

	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	data, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("program", p.Name))
	}

	if _, err := w.Write(data); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("program", p.Name))
	}

	return nil
}

func (p *Program) document() (yaml.MapSlice, error) {
	target := yaml.MapSlice{{Key: "version", Value: p.Target.Version.String()}}
	if p.Target.File != "" {
		target = append(target, yaml.MapItem{Key: "file", Value: p.Target.File})
	}

	doc := yaml.MapSlice{{Key: "target", Value: target}}

	if len(p.Builtins) > 0 {
		doc = append(doc, yaml.MapItem{Key: "builtins", Value: encodeBuiltins(p.Builtins)})
	}

	body, err := encodeBlock(p.Body)
	if err != nil {
		return nil, err
	}

	return append(doc, yaml.MapItem{Key: "body", Value: body}), nil
}

// FormatBuiltins writes decls as a prelude document that [ParseBuiltins]
// reads back.
func FormatBuiltins(ctx context.Context, w io.Writer, decls []backend.Decl, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	var doc any = encodeBuiltins(decls)
	if len(decls) == 0 {
		doc = map[string]string{}
	}

	data, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return ErrEncode.Wrap(err).With(slog.Int("builtins", len(decls)))
	}

	if _, err := w.Write(data); err != nil {
		return ErrEncode.Wrap(err).With(slog.Int("builtins", len(decls)))
	}

	return nil
}

func encodeBuiltins(decls []backend.Decl) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(decls))
	for _, d := range decls {
		out = append(out, yaml.MapItem{Key: d.Name, Value: d.Type.String()})
	}

	return out
}

func encodeBlock(b *il.Block) ([]any, error) {
	out := make([]any, 0, b.Len())

	for s := range b.All() {
		enc, err := encodeStatement(s)
		if err != nil {
			return nil, err
		}

		out = append(out, enc)
	}

	return out, nil
}

func encodeStatement(s *il.Statement) (yaml.MapSlice, error) {
	if s == nil {
		return nil, ErrEncode.With(slog.String("reason", "nil statement"))
	}

	var (
		key  string
		body any
		err  error
	)

	switch s.Kind {
	case il.StmtVal:
		key = "val"
		body, err = encodeValue(s.Value)

	case il.StmtVarDeclare:
		key = "let"
		body, err = encodeBinding(s, true)

	case il.StmtVarAssign:
		key = "set"
		body, err = encodeBinding(s, false)

	case il.StmtFnDeclare:
		key = "fn"
		body, err = encodeFunction(s)

	case il.StmtIf:
		key = "if"
		body, err = encodeConditional(s)

	default:
		err = ErrEncode.With(slog.String("kind", s.Kind.String()))
	}

	if err != nil {
		return nil, err
	}

	return yaml.MapSlice{{Key: key, Value: body}}, nil
}

func encodeBinding(s *il.Statement, typed bool) (yaml.MapSlice, error) {
	v, err := encodeValue(s.Value)
	if err != nil {
		return nil, err
	}

	m := yaml.MapSlice{{Key: "name", Value: s.Name}}
	if typed {
		m = append(m, yaml.MapItem{Key: "type", Value: typeText(s.Type)})
	}

	return append(m, yaml.MapItem{Key: "value", Value: v}), nil
}

func encodeFunction(s *il.Statement) (yaml.MapSlice, error) {
	params := make([]yaml.MapSlice, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, yaml.MapSlice{
			{Key: "name", Value: p.Name},
			{Key: "type", Value: p.Type.String()},
		})
	}

	body, err := encodeBlock(s.Body)
	if err != nil {
		return nil, err
	}

	return yaml.MapSlice{
		{Key: "name", Value: s.Name},
		{Key: "params", Value: params},
		{Key: "returns", Value: typeText(s.Type)},
		{Key: "body", Value: body},
	}, nil
}

func encodeConditional(s *il.Statement) (yaml.MapSlice, error) {
	head, err := encodeBranch(il.Branch{Cond: s.Value, Body: s.Body})
	if err != nil {
		return nil, err
	}

	if len(s.Elifs) > 0 {
		elifs := make([]yaml.MapSlice, 0, len(s.Elifs))

		for _, b := range s.Elifs {
			enc, err := encodeBranch(b)
			if err != nil {
				return nil, err
			}

			elifs = append(elifs, enc)
		}

		head = append(head, yaml.MapItem{Key: "elif", Value: elifs})
	}

	if s.Else != nil {
		otherwise, err := encodeBlock(s.Else)
		if err != nil {
			return nil, err
		}

		head = append(head, yaml.MapItem{Key: "else", Value: otherwise})
	}

	return head, nil
}

func encodeBranch(b il.Branch) (yaml.MapSlice, error) {
	cond, err := encodeValue(b.Cond)
	if err != nil {
		return nil, err
	}

	then, err := encodeBlock(b.Body)
	if err != nil {
		return nil, err
	}

	return yaml.MapSlice{
		{Key: "cond", Value: cond},
		{Key: "then", Value: then},
	}, nil
}

// encodeValue renders v as expression text when it has one, and otherwise as
// a sequence (lists holding aggregates) or a custom mapping.
func encodeValue(v *il.Value) (any, error) {
	if v == nil {
		return nil, ErrEncode.With(slog.String("reason", "nil value"))
	}

	src, err := il.Source(v)
	if err == nil {
		return src, nil
	}

	if !errors.Is(err, il.ErrUnsupportedExpr) {
		return nil, err
	}

	switch v.Kind {
	case il.KindList:
		elems := make([]any, 0, len(v.Elems))

		for _, e := range v.Elems {
			enc, err := encodeValue(e)
			if err != nil {
				return nil, err
			}

			elems = append(elems, enc)
		}

		return elems, nil

	case il.KindCustom:
		fields := make(yaml.MapSlice, 0, len(v.Fields))

		for _, f := range v.Fields {
			enc, err := encodeValue(f.Value)
			if err != nil {
				return nil, err
			}

			fields = append(fields, yaml.MapItem{Key: f.Name, Value: enc})
		}

		custom := yaml.MapSlice{{Key: "custom", Value: typeText(v.Type)}}
		if len(fields) > 0 {
			custom = append(custom, yaml.MapItem{Key: "fields", Value: fields})
		}

		return custom, nil
	}

	return nil, ErrEncode.Wrap(err).With(slog.String("value", v.String()))
}

func typeText(t *il.Type) string {
	if t == nil {
		return il.NullType().String()
	}

	return t.String()
}
