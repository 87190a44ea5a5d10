package il

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// binaryOps maps expr-lang binary operators to IL operator kinds.
var binaryOps = map[string]Kind{
	">":   KindGreater,
	">=":  KindGreaterEqual,
	"<":   KindLess,
	"<=":  KindLessEqual,
	"==":  KindEqual,
	"and": KindAnd,
	"&&":  KindAnd,
	"or":  KindOr,
	"||":  KindOr,
	"+":   KindAdd,
	"-":   KindSub,
	"*":   KindMul,
	"/":   KindDiv,
	"%":   KindModulo,
}

// bitwiseFuncs maps the expr-lang bitwise builtins to IL operator kinds.
var bitwiseFuncs = map[string]Kind{
	"bitand": KindBitwiseAnd,
	"bitor":  KindBitwiseOr,
	"bitxor": KindBitwiseXor,
	"bitnot": KindBitwiseNot,
	"bitshl": KindBitwiseShift,
	"bitshr": KindBitwiseUnshift,
}

// ParseValue parses expression source text into a Value.
//
// The text uses expr-lang syntax. Integer and boolean literals, one-character
// strings (as Char), arrays (as List), identifiers and dotted member chains
// (as Name), calls, comparison, logical and arithmetic operators are mapped
// directly. The bitand, bitor, bitxor, bitnot, bitshl and bitshr builtins map
// to the bitwise operators; uint(n), byte(n) and char(n) build typed literals;
// type("T") builds a type value from its text form.
func ParseValue(src string) (*Value, error) {
	return ParseValueAt(src, Pos{})
}

// ParseValueAt is like [ParseValue] but records pos on every produced node.
func ParseValueAt(src string, pos Pos) (*Value, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrParseExpr.With(slog.String("reason", "empty expression"))
	}

	tree, err := parser.Parse(src)
	if err != nil {
		return nil, ErrParseExpr.Wrap(err).With(slog.String("source", src))
	}

	c := exprConverter{src: src, pos: pos}

	return c.convert(tree.Node)
}

type exprConverter struct {
	src string
	pos Pos
}

func (c exprConverter) unsupported(node ast.Node, reason string) error {
	return ErrUnsupportedExpr.With(
		slog.String("source", c.src),
		slog.String("node", node.String()),
		slog.String("reason", reason),
	)
}

func (c exprConverter) at(v *Value) *Value {
	v.Pos = c.pos

	return v
}

func (c exprConverter) convert(node ast.Node) (*Value, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return c.at(Int(int64(n.Value))), nil

	case *ast.BoolNode:
		return c.at(Bool(n.Value)), nil

	case *ast.StringNode:
		r, size := utf8.DecodeRuneInString(n.Value)
		if size == 0 || size != len(n.Value) {
			return nil, c.unsupported(node, "only one-character strings are supported")
		}

		return c.at(Char(r)), nil

	case *ast.ArrayNode:
		elems, err := c.convertAll(n.Nodes)
		if err != nil {
			return nil, err
		}

		return c.at(List(elems...)), nil

	case *ast.IdentifierNode:
		return c.at(Name(n.Value)), nil

	case *ast.MemberNode:
		name, ok := memberName(n)
		if !ok {
			return nil, c.unsupported(node, "member access must be a static name")
		}

		return c.at(Name(name)), nil

	case *ast.ChainNode:
		return c.convert(n.Node)

	case *ast.UnaryNode:
		return c.convertUnary(n)

	case *ast.BinaryNode:
		return c.convertBinary(n)

	case *ast.CallNode:
		var name string

		switch callee := n.Callee.(type) {
		case *ast.IdentifierNode:
			name = callee.Value

		case *ast.MemberNode:
			var ok bool
			if name, ok = memberName(callee); !ok {
				return nil, c.unsupported(node, "callee must be a static name")
			}

		default:
			return nil, c.unsupported(node, "callee must be a name")
		}

		return c.convertCall(node, name, n.Arguments)

	case *ast.BuiltinNode:
		return c.convertCall(node, n.Name, n.Arguments)

	default:
		return nil, c.unsupported(node, "no IL equivalent")
	}
}

func (c exprConverter) convertAll(nodes []ast.Node) ([]*Value, error) {
	vs := make([]*Value, 0, len(nodes))

	for _, n := range nodes {
		v, err := c.convert(n)
		if err != nil {
			return nil, err
		}

		vs = append(vs, v)
	}

	return vs, nil
}

func (c exprConverter) convertUnary(n *ast.UnaryNode) (*Value, error) {
	x, err := c.convert(n.Node)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "not", "!":
		return c.at(Not(x)), nil

	case "+":
		return x, nil

	case "-":
		if x.Kind == KindInt {
			x.Int = -x.Int

			return x, nil
		}

		return c.at(Sub(c.at(Int(0)), x)), nil

	default:
		return nil, c.unsupported(n, "unknown unary operator "+n.Operator)
	}
}

func (c exprConverter) convertBinary(n *ast.BinaryNode) (*Value, error) {
	x, err := c.convert(n.Left)
	if err != nil {
		return nil, err
	}

	y, err := c.convert(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Operator == "!=" {
		return c.at(Not(c.at(Equal(x, y)))), nil
	}

	k, ok := binaryOps[n.Operator]
	if !ok {
		return nil, c.unsupported(n, "unknown binary operator "+n.Operator)
	}

	return c.at(Binary(k, x, y)), nil
}

func (c exprConverter) convertCall(
	node ast.Node,
	name string,
	arguments []ast.Node,
) (*Value, error) {
	switch name {
	case "uint", "byte", "char":
		return c.convertLiteralCall(node, name, arguments)

	case "type":
		if len(arguments) == 1 {
			if s, ok := arguments[0].(*ast.StringNode); ok {
				t, err := ParseType(s.Value)
				if err != nil {
					return nil, err
				}

				return c.at(TypeValue(t)), nil
			}
		}

		return nil, c.unsupported(node, "type() takes one string literal")
	}

	args, err := c.convertAll(arguments)
	if err != nil {
		return nil, err
	}

	if k, ok := bitwiseFuncs[name]; ok {
		switch {
		case k.IsUnary() && len(args) == 1:
			return c.at(Unary(k, args[0])), nil

		case k.IsBinary() && len(args) == 2:
			return c.at(Binary(k, args[0], args[1])), nil

		default:
			return nil, c.unsupported(node, "wrong operand count for "+name)
		}
	}

	return c.at(FnCall(name, args...)), nil
}

func (c exprConverter) convertLiteralCall(
	node ast.Node,
	name string,
	arguments []ast.Node,
) (*Value, error) {
	if len(arguments) != 1 {
		return nil, c.unsupported(node, name+"() takes one integer literal")
	}

	lit, ok := arguments[0].(*ast.IntegerNode)
	if !ok || lit.Value < 0 {
		return nil, c.unsupported(node, name+"() takes one non-negative integer literal")
	}

	switch name {
	case "uint":
		return c.at(Uint(uint64(lit.Value))), nil

	case "byte":
		if lit.Value > 0xFF {
			return nil, c.unsupported(node, "byte value out of range")
		}

		return c.at(Byte(byte(lit.Value))), nil

	default:
		if lit.Value > utf8.MaxRune {
			return nil, c.unsupported(node, "char value out of range")
		}

		return c.at(Char(rune(lit.Value))), nil
	}
}

// memberName flattens a chain of static member accesses (a.b.c) into a
// dotted name.
func memberName(n *ast.MemberNode) (string, bool) {
	prop, ok := n.Property.(*ast.StringNode)
	if !ok || n.Optional {
		return "", false
	}

	var base string

	switch inner := n.Node.(type) {
	case *ast.IdentifierNode:
		base = inner.Value

	case *ast.MemberNode:
		if base, ok = memberName(inner); !ok {
			return "", false
		}

	default:
		return "", false
	}

	return base + "." + prop.Value, true
}

// Source renders v as expression text accepted by [ParseValue], such that
// ParseValue(Source(v)) is structurally equal to v. Values with no expression
// syntax yield ErrUnsupportedExpr: custom aggregates, Int(math.MinInt64) and
// Uint values above math.MaxInt64, since integer literals are limited to the
// positive int64 range.
func Source(v *Value) (string, error) {
	var sb strings.Builder

	if err := writeSource(&sb, v); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func writeSource(sb *strings.Builder, v *Value) error {
	if v == nil {
		return ErrUnsupportedExpr.With(slog.String("reason", "nil value"))
	}

	switch v.Kind {
	case KindInt:
		if v.Int == math.MinInt64 {
			return ErrUnsupportedExpr.With(
				slog.Int64("int", v.Int),
				slog.String("reason", "no literal form"),
			)
		}

		sb.WriteString(strconv.FormatInt(v.Int, 10))

	case KindUint:
		if v.Uint > math.MaxInt64 {
			return ErrUnsupportedExpr.With(
				slog.Uint64("uint", v.Uint),
				slog.String("reason", "no literal form"),
			)
		}

		sb.WriteString("uint(" + strconv.FormatUint(v.Uint, 10) + ")")

	case KindByte:
		sb.WriteString("byte(" + strconv.Itoa(int(v.Byte)) + ")")

	case KindChar:
		sb.WriteString(strconv.Quote(string(v.Char)))

	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))

	case KindList:
		sb.WriteByte('[')

		if err := writeSourceList(sb, v.Elems); err != nil {
			return err
		}

		sb.WriteByte(']')

	case KindType:
		if v.Type == nil {
			return ErrUnsupportedExpr.With(slog.String("reason", "type value without type"))
		}

		sb.WriteString("type(" + strconv.Quote(v.Type.String()) + ")")

	case KindName:
		sb.WriteString(v.Name)

	case KindFnCall:
		sb.WriteString(v.Name)
		sb.WriteByte('(')

		if err := writeSourceList(sb, v.Args); err != nil {
			return err
		}

		sb.WriteByte(')')

	case KindCustom:
		return ErrUnsupportedExpr.With(
			slog.String("kind", v.Kind.String()),
			slog.String("reason", "custom values have no expression syntax"),
		)

	default:
		return writeSourceOperator(sb, v)
	}

	return nil
}

func writeSourceList(sb *strings.Builder, vs []*Value) error {
	for i, e := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}

		if err := writeSource(sb, e); err != nil {
			return err
		}
	}

	return nil
}

func writeSourceOperator(sb *strings.Builder, v *Value) error {
	for name, k := range bitwiseFuncs {
		if k != v.Kind {
			continue
		}

		sb.WriteString(name)
		sb.WriteByte('(')

		operands := []*Value{v.X}
		if k.IsBinary() {
			operands = append(operands, v.Y)
		}

		if err := writeSourceList(sb, operands); err != nil {
			return err
		}

		sb.WriteByte(')')

		return nil
	}

	if v.Kind == KindNot {
		sb.WriteByte('!')

		return writeSourceOperand(sb, v.X)
	}

	if !v.Kind.IsBinary() {
		return ErrUnsupportedExpr.With(slog.String("kind", v.Kind.String()))
	}

	if err := writeSourceOperand(sb, v.X); err != nil {
		return err
	}

	sb.WriteString(" " + v.Kind.Symbol() + " ")

	return writeSourceOperand(sb, v.Y)
}

// writeSourceOperand parenthesises operator operands so that the rendered
// text parses back into the same tree regardless of precedence.
func writeSourceOperand(sb *strings.Builder, v *Value) error {
	if v == nil || !v.Kind.IsOperator() || v.Kind == KindBitwiseNot ||
		(v.Kind.IsBinary() && isBitwiseFunc(v.Kind)) {
		return writeSource(sb, v)
	}

	sb.WriteByte('(')

	if err := writeSource(sb, v); err != nil {
		return err
	}

	sb.WriteByte(')')

	return nil
}

func isBitwiseFunc(k Kind) bool {
	for _, b := range bitwiseFuncs {
		if b == k {
			return true
		}
	}

	return false
}
