package il

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import "slices"

// Kind selects the variant of a [Value].
type Kind int

// Literal and reference kinds.
const (
	KindInt    Kind = iota // Int
	KindUint               // Uint
	KindByte               // Byte
	KindChar               // Char
	KindBool               // Bool
	KindList               // List
	KindCustom             // Custom
	KindType               // Type
	KindName               // Name

	// Comparison operators.
	KindGreater      // Greater
	KindGreaterEqual // GreaterEqual
	KindLess         // Less
	KindLessEqual    // LessEqual
	KindEqual        // Equal

	// Logical operators.
	KindAnd // And
	KindOr  // Or
	KindNot // Not

	// Arithmetic operators.
	KindAdd    // Add
	KindSub    // Sub
	KindMul    // Mul
	KindDiv    // Div
	KindModulo // Modulo

	// Bitwise operators. Shift is a left shift and Unshift a right shift.
	KindBitwiseAnd     // BitwiseAnd
	KindBitwiseOr      // BitwiseOr
	KindBitwiseXor     // BitwiseXor
	KindBitwiseNot     // BitwiseNot
	KindBitwiseShift   // BitwiseShift
	KindBitwiseUnshift // BitwiseUnshift

	// KindFnCall calls a named function.
	KindFnCall // FnCall
)

// IsLiteral reports whether k is a scalar literal kind.
func (k Kind) IsLiteral() bool { return k >= KindInt && k <= KindBool }

// IsBinary reports whether k is a two-operand operator.
func (k Kind) IsBinary() bool {
	return k >= KindGreater && k <= KindBitwiseUnshift && !k.IsUnary()
}

// IsUnary reports whether k is a one-operand operator.
func (k Kind) IsUnary() bool { return k == KindNot || k == KindBitwiseNot }

// IsOperator reports whether k is a unary or binary operator.
func (k Kind) IsOperator() bool { return k.IsBinary() || k.IsUnary() }

// Field is one named member of a custom aggregate value.
type Field struct {
	Name  string
	Value *Value
}

// Value is a node of the expression tree.
//
// Only the fields relevant to Kind are set:
//
//	KindInt                 Int
//	KindUint                Uint
//	KindByte                Byte
//	KindChar                Char
//	KindBool                Bool
//	KindList                Elems
//	KindCustom              Type, Fields
//	KindType                Type
//	KindName                Name
//	binary operators        X, Y
//	KindNot, KindBitwiseNot X
//	KindFnCall              Name, Args
//
// A Value exclusively owns its operands.
type Value struct {
	Kind   Kind
	Pos    Pos
	Int    int64
	Uint   uint64
	Byte   byte
	Char   rune
	Bool   bool
	Name   string
	Type   *Type
	Elems  []*Value
	Fields []Field
	X, Y   *Value
	Args   []*Value
}

// Int returns a signed integer literal.
func Int(i int64) *Value { return &Value{Kind: KindInt, Int: i} }

// Uint returns an unsigned integer literal.
func Uint(u uint64) *Value { return &Value{Kind: KindUint, Uint: u} }

// Byte returns a byte literal.
func Byte(b byte) *Value { return &Value{Kind: KindByte, Byte: b} }

// Char returns a character literal.
func Char(c rune) *Value { return &Value{Kind: KindChar, Char: c} }

// Bool returns a boolean literal.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// List returns a list value holding elems in order.
func List(elems ...*Value) *Value {
	return &Value{Kind: KindList, Elems: elems}
}

// Custom returns an aggregate value of type t with the given fields.
func Custom(t Type, fields ...Field) *Value {
	return &Value{Kind: KindCustom, Type: &t, Fields: fields}
}

// TypeValue returns a value denoting the type t.
func TypeValue(t Type) *Value {
	return &Value{Kind: KindType, Type: &t}
}

// Name returns an unresolved reference to a declared symbol.
func Name(name string) *Value {
	return &Value{Kind: KindName, Name: name}
}

// FnCall returns a call of the named function with args in order.
func FnCall(name string, args ...*Value) *Value {
	return &Value{Kind: KindFnCall, Name: name, Args: args}
}

// Binary returns the binary operator k applied to x and y.
// It panics if k is not a binary operator kind.
func Binary(k Kind, x, y *Value) *Value {
	if !k.IsBinary() {
		panic("il: " + k.String() + " is not a binary operator")
	}

	return &Value{Kind: k, X: x, Y: y}
}

// Unary returns the unary operator k applied to x.
// It panics if k is not a unary operator kind.
func Unary(k Kind, x *Value) *Value {
	if !k.IsUnary() {
		panic("il: " + k.String() + " is not a unary operator")
	}

	return &Value{Kind: k, X: x}
}

// Greater returns x > y.
func Greater(x, y *Value) *Value { return Binary(KindGreater, x, y) }

// GreaterEqual returns x >= y.
func GreaterEqual(x, y *Value) *Value { return Binary(KindGreaterEqual, x, y) }

// Less returns x < y.
func Less(x, y *Value) *Value { return Binary(KindLess, x, y) }

// LessEqual returns x <= y.
func LessEqual(x, y *Value) *Value { return Binary(KindLessEqual, x, y) }

// Equal returns x == y.
func Equal(x, y *Value) *Value { return Binary(KindEqual, x, y) }

// And returns x && y.
func And(x, y *Value) *Value { return Binary(KindAnd, x, y) }

// Or returns x || y.
func Or(x, y *Value) *Value { return Binary(KindOr, x, y) }

// Not returns !x.
func Not(x *Value) *Value { return Unary(KindNot, x) }

// Add returns x + y.
func Add(x, y *Value) *Value { return Binary(KindAdd, x, y) }

// Sub returns x - y.
func Sub(x, y *Value) *Value { return Binary(KindSub, x, y) }

// Mul returns x * y.
func Mul(x, y *Value) *Value { return Binary(KindMul, x, y) }

// Div returns x / y.
func Div(x, y *Value) *Value { return Binary(KindDiv, x, y) }

// Modulo returns x % y.
func Modulo(x, y *Value) *Value { return Binary(KindModulo, x, y) }

// BitwiseAnd returns x & y.
func BitwiseAnd(x, y *Value) *Value { return Binary(KindBitwiseAnd, x, y) }

// BitwiseOr returns x | y.
func BitwiseOr(x, y *Value) *Value { return Binary(KindBitwiseOr, x, y) }

// BitwiseXor returns x ^ y.
func BitwiseXor(x, y *Value) *Value { return Binary(KindBitwiseXor, x, y) }

// BitwiseNot returns ~x.
func BitwiseNot(x *Value) *Value { return Unary(KindBitwiseNot, x) }

// BitwiseShift returns x << y.
func BitwiseShift(x, y *Value) *Value { return Binary(KindBitwiseShift, x, y) }

// BitwiseUnshift returns x >> y.
func BitwiseUnshift(x, y *Value) *Value { return Binary(KindBitwiseUnshift, x, y) }

// At returns a copy of v positioned at p. The operands are not copied.
func (v *Value) At(p Pos) *Value {
	c := *v
	c.Pos = p

	return &c
}

// Equal reports whether v and w are structurally identical.
// Positions are ignored.
func (v *Value) Equal(w *Value) bool {
	if v == nil || w == nil {
		return v == w
	}

	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case KindInt:
		return v.Int == w.Int

	case KindUint:
		return v.Uint == w.Uint

	case KindByte:
		return v.Byte == w.Byte

	case KindChar:
		return v.Char == w.Char

	case KindBool:
		return v.Bool == w.Bool

	case KindList:
		return slices.EqualFunc(v.Elems, w.Elems, (*Value).Equal)

	case KindCustom:
		return typePtrEqual(v.Type, w.Type) &&
			slices.EqualFunc(v.Fields, w.Fields, func(a, b Field) bool {
				return a.Name == b.Name && a.Value.Equal(b.Value)
			})

	case KindType:
		return typePtrEqual(v.Type, w.Type)

	case KindName:
		return v.Name == w.Name

	case KindFnCall:
		return v.Name == w.Name &&
			slices.EqualFunc(v.Args, w.Args, (*Value).Equal)

	default:
		return v.X.Equal(w.X) && v.Y.Equal(w.Y)
	}
}

// Clone returns a deep copy of v that shares no memory with it.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}

	c := *v

	if v.Type != nil {
		t := v.Type.Clone()
		c.Type = &t
	}

	c.Elems = cloneValues(v.Elems)
	c.Args = cloneValues(v.Args)

	if v.Fields != nil {
		c.Fields = make([]Field, len(v.Fields))
		for i, f := range v.Fields {
			c.Fields[i] = Field{Name: f.Name, Value: f.Value.Clone()}
		}
	}

	c.X = v.X.Clone()
	c.Y = v.Y.Clone()

	return &c
}

func cloneValues(vs []*Value) []*Value {
	if vs == nil {
		return nil
	}

	c := make([]*Value, len(vs))
	for i, v := range vs {
		c[i] = v.Clone()
	}

	return c
}
