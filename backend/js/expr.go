package js

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/il"
)

// operator maps IL operator kinds to JavaScript operator tokens.
var operator = map[il.Kind]string{
	il.KindGreater:        ">",
	il.KindGreaterEqual:   ">=",
	il.KindLess:           "<",
	il.KindLessEqual:      "<=",
	il.KindEqual:          "===",
	il.KindAnd:            "&&",
	il.KindOr:             "||",
	il.KindNot:            "!",
	il.KindAdd:            "+",
	il.KindSub:            "-",
	il.KindMul:            "*",
	il.KindDiv:            "/",
	il.KindModulo:         "%",
	il.KindBitwiseAnd:     "&",
	il.KindBitwiseOr:      "|",
	il.KindBitwiseXor:     "^",
	il.KindBitwiseNot:     "~",
	il.KindBitwiseShift:   "<<",
	il.KindBitwiseUnshift: ">>",
}

// value lowers v to a JavaScript expression.
func (c compiler) value(v *il.Value, scope *backend.NameRegistry) (string, error) {
	if v == nil {
		return "", c.unsupported("nil value", il.Pos{})
	}

	switch v.Kind {
	case il.KindInt:
		return strconv.FormatInt(v.Int, 10), nil

	case il.KindUint:
		return strconv.FormatUint(v.Uint, 10), nil

	case il.KindByte:
		return strconv.Itoa(int(v.Byte)), nil

	case il.KindChar:
		return quote(string(v.Char)), nil

	case il.KindBool:
		return strconv.FormatBool(v.Bool), nil

	case il.KindList:
		elems, err := c.values(v.Elems, scope)
		if err != nil {
			return "", err
		}

		return "[" + strings.Join(elems, ",") + "]", nil

	case il.KindCustom:
		return c.custom(v, scope)

	case il.KindName:
		if !scope.IsDefined(v.Name) {
			return "", &backend.NameNotFoundError{Name: v.Name, Pos: v.Pos}
		}

		return v.Name, nil

	case il.KindFnCall:
		if !scope.IsDefined(v.Name) {
			return "", &backend.NameNotFoundError{Name: v.Name, Pos: v.Pos}
		}

		args, err := c.values(v.Args, scope)
		if err != nil {
			return "", err
		}

		return v.Name + "(" + strings.Join(args, ",") + ")", nil

	case il.KindType:
		return "", c.unsupported("type value", v.Pos)
	}

	if v.Kind.IsOperator() {
		return c.operator(v, scope)
	}

	return "", c.unsupported(v.Kind.String(), v.Pos)
}

// values lowers vs in order, stopping at the first failure.
func (c compiler) values(vs []*il.Value, scope *backend.NameRegistry) ([]string, error) {
	out := make([]string, 0, len(vs))

	for _, v := range vs {
		s, err := c.value(v, scope)
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}

func (c compiler) custom(v *il.Value, scope *backend.NameRegistry) (string, error) {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, f := range v.Fields {
		s, err := c.value(f.Value, scope)
		if err != nil {
			return "", err
		}

		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(propertyName(f.Name))
		sb.WriteByte(':')
		sb.WriteString(s)
	}

	sb.WriteByte('}')

	return sb.String(), nil
}

func (c compiler) operator(v *il.Value, scope *backend.NameRegistry) (string, error) {
	tok, ok := operator[v.Kind]
	if !ok {
		return "", c.unsupported(v.Kind.String(), v.Pos)
	}

	x, err := c.operand(v.X, scope)
	if err != nil {
		return "", err
	}

	if v.Kind.IsUnary() {
		return tok + x, nil
	}

	y, err := c.operand(v.Y, scope)
	if err != nil {
		return "", err
	}

	return x + tok + y, nil
}

// operand lowers an operator operand, parenthesising nested operators and
// negative literals so the emitted text keeps the tree's grouping.
func (c compiler) operand(v *il.Value, scope *backend.NameRegistry) (string, error) {
	s, err := c.value(v, scope)
	if err != nil {
		return "", err
	}

	if v.Kind.IsOperator() || (v.Kind == il.KindInt && v.Int < 0) {
		return "(" + s + ")", nil
	}

	return s, nil
}

// quote returns s as a JavaScript string literal.
func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}

	return string(b)
}

// propertyName returns name as an object literal key, quoting it when it is
// not a plain identifier.
func propertyName(name string) string {
	if isIdentifier(name) {
		return name
	}

	return quote(name)
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}
