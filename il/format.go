package il

import (
	"fmt"
	"strconv"
	"strings"
)

// infix maps binary operator kinds to their debug-format symbol.
var infix = map[Kind]string{
	KindGreater:        ">",
	KindGreaterEqual:   ">=",
	KindLess:           "<",
	KindLessEqual:      "<=",
	KindEqual:          "==",
	KindAnd:            "&&",
	KindOr:             "||",
	KindAdd:            "+",
	KindSub:            "-",
	KindMul:            "*",
	KindDiv:            "/",
	KindModulo:         "%",
	KindBitwiseAnd:     "&",
	KindBitwiseOr:      "|",
	KindBitwiseXor:     "^",
	KindBitwiseShift:   "<<",
	KindBitwiseUnshift: ">>",
}

// Symbol returns the debug-format operator symbol of k, or "" if k is not an
// operator.
func (k Kind) Symbol() string {
	switch k {
	case KindNot:
		return "!"

	case KindBitwiseNot:
		return "~"

	default:
		return infix[k]
	}
}

// String returns the debug representation of t.
func (t Type) String() string {
	var sb strings.Builder

	t.format(&sb)

	return sb.String()
}

func (t Type) format(sb *strings.Builder) {
	switch t.Kind {
	case TypeArray:
		sb.WriteByte('[')

		if t.Elem != nil {
			t.Elem.format(sb)
		}

		sb.WriteByte(']')

	case TypeCustom:
		sb.WriteString(t.Name)

	case TypeFunction:
		sb.WriteByte('(')

		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}

			p.format(sb)
		}

		sb.WriteString("): ")

		if t.Result != nil {
			t.Result.format(sb)
		} else {
			sb.WriteString(TypeNull.String())
		}

	case TypeUnion:
		if len(t.Members) == 0 {
			sb.WriteString("Never")

			return
		}

		for i, m := range t.Members {
			if i > 0 {
				sb.WriteString(" | ")
			}

			// Function members bind looser than "|" and must be grouped.
			if m.Kind == TypeFunction || m.Kind == TypeUnion {
				sb.WriteByte('(')
				m.format(sb)
				sb.WriteByte(')')
			} else {
				m.format(sb)
			}
		}

	default:
		sb.WriteString(t.Kind.String())
	}
}

// String returns the debug representation of v.
//
// Lists render as "[a, b]" and the empty list as "[]". Bytes render as two
// uppercase hexadecimal digits. Operators render infix with single spaces and
// no grouping; the debug form is not meant to be parsed back.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}

	var sb strings.Builder

	v.format(&sb)

	return sb.String()
}

func (v *Value) format(sb *strings.Builder) {
	if v == nil {
		sb.WriteString("<nil>")

		return
	}

	switch v.Kind {
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.Int, 10))

	case KindUint:
		sb.WriteString(strconv.FormatUint(v.Uint, 10))

	case KindByte:
		fmt.Fprintf(sb, "%02X", v.Byte)

	case KindChar:
		sb.WriteRune(v.Char)

	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))

	case KindList:
		sb.WriteByte('[')
		formatValues(sb, v.Elems)
		sb.WriteByte(']')

	case KindCustom:
		if v.Type != nil {
			v.Type.format(sb)
		}

		sb.WriteString(" {\n")

		for i, f := range v.Fields {
			if i > 0 {
				sb.WriteByte('\n')
			}

			sb.WriteString(f.Name)
			sb.WriteString(" = ")
			f.Value.format(sb)
		}

		sb.WriteString("\n}")

	case KindType:
		if v.Type != nil {
			v.Type.format(sb)
		}

	case KindName:
		sb.WriteString(v.Name)

	case KindNot, KindBitwiseNot:
		sb.WriteString(v.Kind.Symbol())
		v.X.format(sb)

	case KindFnCall:
		sb.WriteString(v.Name)
		sb.WriteByte('(')
		formatValues(sb, v.Args)
		sb.WriteByte(')')

	default:
		if !v.Kind.IsBinary() {
			sb.WriteString(v.Kind.String())

			return
		}

		v.X.format(sb)
		sb.WriteByte(' ')
		sb.WriteString(v.Kind.Symbol())
		sb.WriteByte(' ')
		v.Y.format(sb)
	}
}

func formatValues(sb *strings.Builder, vs []*Value) {
	for i, e := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}

		e.format(sb)
	}
}

// String returns the debug representation of s.
func (s *Statement) String() string {
	var sb strings.Builder

	s.format(&sb)

	return sb.String()
}

func (s *Statement) format(sb *strings.Builder) {
	if s == nil {
		sb.WriteString("<nil>")

		return
	}

	switch s.Kind {
	case StmtVal:
		s.Value.format(sb)

	case StmtVarDeclare:
		sb.WriteString("let ")
		sb.WriteString(s.Name)

		if s.Type != nil {
			sb.WriteString(": ")
			s.Type.format(sb)
		}

		sb.WriteString(" = ")
		s.Value.format(sb)

	case StmtVarAssign:
		sb.WriteString(s.Name)
		sb.WriteString(" = ")
		s.Value.format(sb)

	case StmtFnDeclare:
		sb.WriteString("fn ")
		sb.WriteString(s.Name)
		sb.WriteByte('(')

		for i, p := range s.Params {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(p.Name)
			sb.WriteString(": ")
			p.Type.format(sb)
		}

		sb.WriteString("): ")

		if s.Type != nil {
			s.Type.format(sb)
		} else {
			sb.WriteString(TypeNull.String())
		}

		sb.WriteByte(' ')
		s.Body.format(sb)

	case StmtIf:
		sb.WriteString("if ( ")
		s.Value.format(sb)
		sb.WriteString(" ) ")
		s.Body.format(sb)

		for _, b := range s.Elifs {
			sb.WriteString("else if ( ")
			b.Cond.format(sb)
			sb.WriteString(" ) ")
			b.Body.format(sb)
		}

		if s.Else != nil {
			sb.WriteString("else ")
			s.Else.format(sb)
		}

	default:
		sb.WriteString(s.Kind.String())
	}
}

// String returns the debug representation of b: each statement on its own
// line between braces.
func (b *Block) String() string {
	var sb strings.Builder

	b.format(&sb)

	return sb.String()
}

func (b *Block) format(sb *strings.Builder) {
	sb.WriteString("{\n")

	for s := range b.All() {
		s.format(sb)
		sb.WriteByte('\n')
	}

	sb.WriteByte('}')
}
