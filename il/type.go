package il

//go:generate go tool stringer --linecomment --type TypeKind --output typekind_string.go

import "slices"

// TypeKind selects the variant of a [Type].
type TypeKind int

const (
	// TypeNull is the unit type of statements evaluated for effect.
	TypeNull TypeKind = iota // Null

	// TypeInt is a signed integer.
	TypeInt // Int

	// TypeUint is an unsigned integer.
	TypeUint // Uint

	// TypeByte is an unsigned 8-bit integer.
	TypeByte // Byte

	// TypeChar is a single Unicode code point.
	TypeChar // Char

	// TypeBool is a boolean.
	TypeBool // Bool

	// TypeList is an untyped list.
	TypeList // List

	// TypeArray is a list whose elements share one type.
	TypeArray // Array

	// TypeCustom is a named, user-defined type.
	TypeCustom // Custom

	// TypeFunction is a function signature.
	TypeFunction // Function

	// TypeUnion is any one of its member types.
	TypeUnion // Union
)

// Type describes the static type of a name or value.
//
// Only the fields relevant to Kind are set:
//
//	TypeArray     Elem
//	TypeCustom    Name
//	TypeFunction  Params, Result
//	TypeUnion     Members
type Type struct {
	Kind    TypeKind
	Name    string
	Elem    *Type
	Params  []Type
	Result  *Type
	Members []Type
}

// NullType returns the Null type.
func NullType() Type { return Type{Kind: TypeNull} }

// IntType returns the Int type.
func IntType() Type { return Type{Kind: TypeInt} }

// UintType returns the Uint type.
func UintType() Type { return Type{Kind: TypeUint} }

// ByteType returns the Byte type.
func ByteType() Type { return Type{Kind: TypeByte} }

// CharType returns the Char type.
func CharType() Type { return Type{Kind: TypeChar} }

// BoolType returns the Bool type.
func BoolType() Type { return Type{Kind: TypeBool} }

// ListType returns the untyped List type.
func ListType() Type { return Type{Kind: TypeList} }

// ArrayOf returns the array type with the given element type.
func ArrayOf(elem Type) Type {
	return Type{Kind: TypeArray, Elem: &elem}
}

// CustomType returns the named type.
func CustomType(name string) Type {
	return Type{Kind: TypeCustom, Name: name}
}

// FunctionOf returns the function type taking params and returning result.
func FunctionOf(params []Type, result Type) Type {
	return Type{
		Kind:   TypeFunction,
		Params: cloneTypes(params),
		Result: &result,
	}
}

// UnionOf returns the union of the given member types, in order.
func UnionOf(members ...Type) Type {
	return Type{Kind: TypeUnion, Members: cloneTypes(members)}
}

// Equal reports whether t and u are structurally identical.
func (t Type) Equal(u Type) bool {
	if t.Kind != u.Kind {
		return false
	}

	switch t.Kind {
	case TypeArray:
		return typePtrEqual(t.Elem, u.Elem)

	case TypeCustom:
		return t.Name == u.Name

	case TypeFunction:
		return slices.EqualFunc(t.Params, u.Params, Type.Equal) &&
			typePtrEqual(t.Result, u.Result)

	case TypeUnion:
		return slices.EqualFunc(t.Members, u.Members, Type.Equal)

	default:
		return true
	}
}

// Clone returns a deep copy of t that shares no memory with it.
func (t Type) Clone() Type {
	c := Type{Kind: t.Kind, Name: t.Name}

	if t.Elem != nil {
		e := t.Elem.Clone()
		c.Elem = &e
	}

	if t.Result != nil {
		r := t.Result.Clone()
		c.Result = &r
	}

	c.Params = cloneTypes(t.Params)
	c.Members = cloneTypes(t.Members)

	return c
}

// IsFunction reports whether t is a function type.
func (t Type) IsFunction() bool { return t.Kind == TypeFunction }

func typePtrEqual(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}

func cloneTypes(ts []Type) []Type {
	if ts == nil {
		return nil
	}

	c := make([]Type, len(ts))
	for i, t := range ts {
		c[i] = t.Clone()
	}

	return c
}
