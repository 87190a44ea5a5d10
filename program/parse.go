package program

import (
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/backend/js"
	"github.com/ardnew/ilc/il"
)

// Parse parses the program document src. The name is recorded in the
// positions of every statement and value.
func Parse(ctx context.Context, name string, src []byte) (*Program, error) {
	root, err := parseDocument(name, src)
	if err != nil {
		return nil, err
	}

	p := docParser{ctx: ctx, file: name}
	prog := &Program{
		Name:   name,
		Target: Target{Version: js.DefaultVersion},
		Body:   il.NewBlock(),
	}

	if isNull(root) {
		return prog, nil
	}

	f, err := p.fields(root, "target", "builtins", "body")
	if err != nil {
		return nil, err
	}

	if n, ok := f.get("target"); ok {
		if prog.Target, err = p.target(n); err != nil {
			return nil, err
		}
	}

	if n, ok := f.get("builtins"); ok {
		if prog.Builtins, err = p.builtins(n); err != nil {
			return nil, err
		}
	}

	if n, ok := f.get("body"); ok {
		if prog.Body, err = p.block(n); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

// ParseBuiltins parses a prelude document: a mapping from names to type
// text.
func ParseBuiltins(name string, src []byte) ([]backend.Decl, error) {
	root, err := parseDocument(name, src)
	if err != nil {
		return nil, err
	}

	if isNull(root) {
		return nil, nil
	}

	p := docParser{ctx: context.Background(), file: name}

	return p.builtins(root)
}

// parseDocument returns the body of the single YAML document in src.
func parseDocument(name string, src []byte) (ast.Node, error) {
	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		return nil, &DocumentError{
			Pos:    il.Pos{File: name},
			Reason: "malformed YAML",
			Err:    err,
		}
	}

	docs := make([]ast.Node, 0, len(file.Docs))

	for _, doc := range file.Docs {
		if doc != nil && !isNull(doc.Body) {
			docs = append(docs, doc.Body)
		}
	}

	switch len(docs) {
	case 0:
		return nil, nil

	case 1:
		return docs[0], nil

	default:
		p := docParser{file: name}

		return nil, p.fail(docs[1], "more than one document")
	}
}

type docParser struct {
	ctx  context.Context
	file string
}

func (p docParser) pos(n ast.Node) il.Pos {
	pos := il.Pos{File: p.file}

	if n == nil {
		return pos
	}

	if tk := n.GetToken(); tk != nil && tk.Position != nil {
		pos.Line = tk.Position.Line
		pos.Column = tk.Position.Column
	}

	return pos
}

func (p docParser) fail(n ast.Node, reason string) error {
	return &DocumentError{Pos: p.pos(n), Reason: reason}
}

func (p docParser) wrap(n ast.Node, reason string, err error) error {
	return &DocumentError{Pos: p.pos(n), Reason: reason, Err: err}
}

// unwrap strips tags and anchors from n.
func unwrap(n ast.Node) ast.Node {
	for {
		switch t := n.(type) {
		case *ast.TagNode:
			n = t.Value

		case *ast.AnchorNode:
			n = t.Value

		default:
			return n
		}
	}
}

func isNull(n ast.Node) bool {
	switch unwrap(n).(type) {
	case nil, *ast.NullNode, *ast.CommentGroupNode:
		return true
	}

	return false
}

// fieldSet is a decoded YAML mapping restricted to a fixed set of keys.
type fieldSet struct {
	node ast.Node
	keys []string
	vals map[string]ast.Node
}

func (f fieldSet) get(key string) (ast.Node, bool) {
	n, ok := f.vals[key]

	return n, ok
}

func (p docParser) mapping(n ast.Node) ([]*ast.MappingValueNode, error) {
	switch m := unwrap(n).(type) {
	case *ast.MappingNode:
		return m.Values, nil

	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{m}, nil

	case nil, *ast.NullNode:
		return nil, nil
	}

	return nil, p.fail(n, "expected a mapping")
}

func keyText(n ast.Node) string {
	if sc, ok := unwrap(n).(ast.ScalarNode); ok {
		return fmt.Sprint(sc.GetValue())
	}

	return n.String()
}

func (p docParser) fields(n ast.Node, allowed ...string) (fieldSet, error) {
	values, err := p.mapping(n)
	if err != nil {
		return fieldSet{}, err
	}

	f := fieldSet{node: n, vals: make(map[string]ast.Node, len(values))}

	for _, mv := range values {
		key := keyText(mv.Key)

		if !slices.Contains(allowed, key) {
			return fieldSet{}, p.fail(mv.Key, fmt.Sprintf("unknown key %q", key))
		}

		if _, dup := f.vals[key]; dup {
			return fieldSet{}, p.fail(mv.Key, fmt.Sprintf("duplicate key %q", key))
		}

		f.keys = append(f.keys, key)
		f.vals[key] = mv.Value
	}

	return f, nil
}

func (p docParser) require(f fieldSet, key string) (ast.Node, error) {
	n, ok := f.get(key)
	if !ok || isNull(n) {
		return nil, p.fail(f.node, fmt.Sprintf("missing %q", key))
	}

	return n, nil
}

func (p docParser) scalar(n ast.Node) (string, error) {
	sc, ok := unwrap(n).(ast.ScalarNode)
	if !ok || isNull(n) {
		return "", p.fail(n, "expected a scalar")
	}

	return fmt.Sprint(sc.GetValue()), nil
}

func (p docParser) name(f fieldSet) (string, error) {
	n, err := p.require(f, "name")
	if err != nil {
		return "", err
	}

	return p.scalar(n)
}

func (p docParser) typ(n ast.Node) (il.Type, error) {
	text, err := p.scalar(n)
	if err != nil {
		return il.Type{}, err
	}

	t, err := il.ParseType(text)
	if err != nil {
		return il.Type{}, p.wrap(n, "invalid type", err)
	}

	return t, nil
}

func (p docParser) sequence(n ast.Node) ([]ast.Node, error) {
	switch s := unwrap(n).(type) {
	case nil, *ast.NullNode:
		return nil, nil

	case *ast.SequenceNode:
		return s.Values, nil
	}

	return nil, p.fail(n, "expected a sequence")
}

func (p docParser) target(n ast.Node) (Target, error) {
	t := Target{Version: js.DefaultVersion}

	f, err := p.fields(n, "version", "file")
	if err != nil {
		return t, err
	}

	if v, ok := f.get("version"); ok {
		text, err := p.scalar(v)
		if err != nil {
			return t, err
		}

		if t.Version, err = js.ParseVersion(text); err != nil {
			return t, p.wrap(v, "invalid version", err)
		}
	}

	if v, ok := f.get("file"); ok && !isNull(v) {
		if t.File, err = p.scalar(v); err != nil {
			return t, err
		}
	}

	return t, nil
}

func (p docParser) builtins(n ast.Node) ([]backend.Decl, error) {
	values, err := p.mapping(n)
	if err != nil {
		return nil, err
	}

	decls := make([]backend.Decl, 0, len(values))

	for _, mv := range values {
		t, err := p.typ(mv.Value)
		if err != nil {
			return nil, err
		}

		decls = append(decls, backend.Decl{Name: keyText(mv.Key), Type: t})
	}

	return decls, nil
}

func (p docParser) block(n ast.Node) (*il.Block, error) {
	items, err := p.sequence(n)
	if err != nil {
		return nil, err
	}

	blk := il.NewBlock()

	for _, item := range items {
		if p.ctx != nil && p.ctx.Err() != nil {
			return nil, context.Cause(p.ctx)
		}

		s, err := p.statement(item)
		if err != nil {
			return nil, err
		}

		blk.Add(s)
	}

	return blk, nil
}

func (p docParser) statement(n ast.Node) (*il.Statement, error) {
	f, err := p.fields(n, "val", "let", "set", "fn", "if")
	if err != nil {
		return nil, err
	}

	if len(f.keys) != 1 {
		return nil, p.fail(n, "statement must have exactly one of val, let, set, fn, if")
	}

	key := f.keys[0]
	body := f.vals[key]

	var s *il.Statement

	switch key {
	case "val":
		var v *il.Value
		if v, err = p.value(body); err == nil {
			s = il.Val(v)
		}

	case "let":
		s, err = p.declare(body)

	case "set":
		s, err = p.assign(body)

	case "fn":
		s, err = p.function(body)

	case "if":
		s, err = p.conditional(body)
	}

	if err != nil {
		return nil, err
	}

	return s.At(p.pos(n)), nil
}

func (p docParser) declare(n ast.Node) (*il.Statement, error) {
	f, err := p.fields(n, "name", "type", "value")
	if err != nil {
		return nil, err
	}

	name, err := p.name(f)
	if err != nil {
		return nil, err
	}

	tn, err := p.require(f, "type")
	if err != nil {
		return nil, err
	}

	t, err := p.typ(tn)
	if err != nil {
		return nil, err
	}

	vn, err := p.require(f, "value")
	if err != nil {
		return nil, err
	}

	v, err := p.value(vn)
	if err != nil {
		return nil, err
	}

	return il.VarDeclare(name, t, v), nil
}

func (p docParser) assign(n ast.Node) (*il.Statement, error) {
	f, err := p.fields(n, "name", "value")
	if err != nil {
		return nil, err
	}

	name, err := p.name(f)
	if err != nil {
		return nil, err
	}

	vn, err := p.require(f, "value")
	if err != nil {
		return nil, err
	}

	v, err := p.value(vn)
	if err != nil {
		return nil, err
	}

	return il.VarAssign(name, v), nil
}

func (p docParser) function(n ast.Node) (*il.Statement, error) {
	f, err := p.fields(n, "name", "params", "returns", "body")
	if err != nil {
		return nil, err
	}

	name, err := p.name(f)
	if err != nil {
		return nil, err
	}

	var params []il.Param

	if pn, ok := f.get("params"); ok {
		items, err := p.sequence(pn)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			pf, err := p.fields(item, "name", "type")
			if err != nil {
				return nil, err
			}

			pname, err := p.name(pf)
			if err != nil {
				return nil, err
			}

			tn, err := p.require(pf, "type")
			if err != nil {
				return nil, err
			}

			t, err := p.typ(tn)
			if err != nil {
				return nil, err
			}

			params = append(params, il.Param{Name: pname, Type: t})
		}
	}

	result := il.NullType()

	if rn, ok := f.get("returns"); ok && !isNull(rn) {
		if result, err = p.typ(rn); err != nil {
			return nil, err
		}
	}

	body := il.NewBlock()

	if bn, ok := f.get("body"); ok {
		if body, err = p.block(bn); err != nil {
			return nil, err
		}
	}

	return il.FnDeclare(name, body, params, result), nil
}

func (p docParser) branch(n ast.Node, allowed ...string) (il.Branch, fieldSet, error) {
	f, err := p.fields(n, allowed...)
	if err != nil {
		return il.Branch{}, f, err
	}

	cn, err := p.require(f, "cond")
	if err != nil {
		return il.Branch{}, f, err
	}

	cond, err := p.value(cn)
	if err != nil {
		return il.Branch{}, f, err
	}

	then := il.NewBlock()

	if tn, ok := f.get("then"); ok {
		if then, err = p.block(tn); err != nil {
			return il.Branch{}, f, err
		}
	}

	return il.Branch{Cond: cond, Body: then}, f, nil
}

func (p docParser) conditional(n ast.Node) (*il.Statement, error) {
	head, f, err := p.branch(n, "cond", "then", "elif", "else")
	if err != nil {
		return nil, err
	}

	var elifs []il.Branch

	if en, ok := f.get("elif"); ok {
		items, err := p.sequence(en)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			b, _, err := p.branch(item, "cond", "then")
			if err != nil {
				return nil, err
			}

			elifs = append(elifs, b)
		}
	}

	var otherwise *il.Block

	if en, ok := f.get("else"); ok {
		if otherwise, err = p.block(en); err != nil {
			return nil, err
		}
	}

	return il.If(head.Cond, head.Body, elifs, otherwise), nil
}

// value parses an expression scalar, a sequence (list) or a custom
// aggregate mapping.
func (p docParser) value(n ast.Node) (*il.Value, error) {
	pos := p.pos(n)

	switch unwrap(n).(type) {
	case *ast.SequenceNode:
		items, err := p.sequence(n)
		if err != nil {
			return nil, err
		}

		elems := make([]*il.Value, 0, len(items))

		for _, item := range items {
			v, err := p.value(item)
			if err != nil {
				return nil, err
			}

			elems = append(elems, v)
		}

		return il.List(elems...).At(pos), nil

	case *ast.MappingNode, *ast.MappingValueNode:
		return p.custom(n)
	}

	text, err := p.scalar(n)
	if err != nil {
		return nil, err
	}

	v, err := il.ParseValueAt(text, pos)
	if err != nil {
		return nil, p.wrap(n, "invalid expression", err)
	}

	return v, nil
}

func (p docParser) custom(n ast.Node) (*il.Value, error) {
	f, err := p.fields(n, "custom", "fields")
	if err != nil {
		return nil, err
	}

	tn, err := p.require(f, "custom")
	if err != nil {
		return nil, err
	}

	t, err := p.typ(tn)
	if err != nil {
		return nil, err
	}

	var fields []il.Field

	if fn, ok := f.get("fields"); ok {
		values, err := p.mapping(fn)
		if err != nil {
			return nil, err
		}

		for _, mv := range values {
			v, err := p.value(mv.Value)
			if err != nil {
				return nil, err
			}

			fields = append(fields, il.Field{Name: keyText(mv.Key), Value: v})
		}
	}

	return il.Custom(t, fields...).At(p.pos(n)), nil
}
