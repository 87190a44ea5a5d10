package il

//go:generate go tool stringer --linecomment --type StmtKind --output stmtkind_string.go

import (
	"iter"
	"slices"
)

// StmtKind selects the variant of a [Statement].
type StmtKind int

const (
	// StmtVal is a value evaluated for effect.
	StmtVal StmtKind = iota // Val

	// StmtVarDeclare declares a typed variable with an initializer.
	StmtVarDeclare // VarDeclare

	// StmtVarAssign assigns a new value to a declared variable.
	StmtVarAssign // VarAssign

	// StmtFnDeclare declares a function with parameters and a body.
	StmtFnDeclare // FnDeclare

	// StmtIf is a conditional with optional else-if and else branches.
	StmtIf // If
)

// Param is one named, typed function parameter.
type Param struct {
	Name string
	Type Type
}

// Branch is a condition guarding a block.
type Branch struct {
	Cond *Value
	Body *Block
}

// Statement is a node of the executable skeleton.
//
// Only the fields relevant to Kind are set:
//
//	StmtVal         Value
//	StmtVarDeclare  Name, Type, Value
//	StmtVarAssign   Name, Value
//	StmtFnDeclare   Name, Params, Type (return type), Body
//	StmtIf          Value (condition), Body (then), Elifs, Else
type Statement struct {
	Kind   StmtKind
	Pos    Pos
	Name   string
	Type   *Type
	Value  *Value
	Params []Param
	Body   *Block
	Elifs  []Branch
	Else   *Block
}

// Val returns a statement evaluating v for effect.
func Val(v *Value) *Statement {
	return &Statement{Kind: StmtVal, Value: v}
}

// VarDeclare returns a declaration of name with type t initialized to v.
func VarDeclare(name string, t Type, v *Value) *Statement {
	return &Statement{Kind: StmtVarDeclare, Name: name, Type: &t, Value: v}
}

// VarAssign returns an assignment of v to name.
func VarAssign(name string, v *Value) *Statement {
	return &Statement{Kind: StmtVarAssign, Name: name, Value: v}
}

// FnDeclare returns a declaration of function name.
func FnDeclare(name string, body *Block, params []Param, result Type) *Statement {
	return &Statement{
		Kind:   StmtFnDeclare,
		Name:   name,
		Body:   body,
		Params: params,
		Type:   &result,
	}
}

// If returns a conditional statement. Elifs are tried in order and
// otherwise may be nil.
func If(cond *Value, then *Block, elifs []Branch, otherwise *Block) *Statement {
	return &Statement{
		Kind:  StmtIf,
		Value: cond,
		Body:  then,
		Elifs: elifs,
		Else:  otherwise,
	}
}

// At returns a copy of s positioned at p. Children are not copied.
func (s *Statement) At(p Pos) *Statement {
	c := *s
	c.Pos = p

	return &c
}

// Signature returns the function type declared by an StmtFnDeclare.
func (s *Statement) Signature() Type {
	params := make([]Type, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Type
	}

	result := NullType()
	if s.Type != nil {
		result = *s.Type
	}

	return FunctionOf(params, result)
}

// Equal reports whether s and t are structurally identical.
// Positions are ignored.
func (s *Statement) Equal(t *Statement) bool {
	if s == nil || t == nil {
		return s == t
	}

	return s.Kind == t.Kind &&
		s.Name == t.Name &&
		typePtrEqual(s.Type, t.Type) &&
		s.Value.Equal(t.Value) &&
		slices.EqualFunc(s.Params, t.Params, func(a, b Param) bool {
			return a.Name == b.Name && a.Type.Equal(b.Type)
		}) &&
		s.Body.Equal(t.Body) &&
		slices.EqualFunc(s.Elifs, t.Elifs, func(a, b Branch) bool {
			return a.Cond.Equal(b.Cond) && a.Body.Equal(b.Body)
		}) &&
		(s.Else == nil) == (t.Else == nil) &&
		s.Else.Equal(t.Else)
}

// Clone returns a deep copy of s that shares no memory with it.
func (s *Statement) Clone() *Statement {
	if s == nil {
		return nil
	}

	c := *s

	if s.Type != nil {
		t := s.Type.Clone()
		c.Type = &t
	}

	c.Value = s.Value.Clone()
	c.Body = s.Body.Clone()
	c.Else = s.Else.Clone()

	if s.Params != nil {
		c.Params = make([]Param, len(s.Params))
		for i, p := range s.Params {
			c.Params[i] = Param{Name: p.Name, Type: p.Type.Clone()}
		}
	}

	if s.Elifs != nil {
		c.Elifs = make([]Branch, len(s.Elifs))
		for i, b := range s.Elifs {
			c.Elifs[i] = Branch{Cond: b.Cond.Clone(), Body: b.Body.Clone()}
		}
	}

	return &c
}

// Block is an ordered sequence of statements.
type Block struct {
	Statements []*Statement
}

// NewBlock returns a block holding stmts in order.
func NewBlock(stmts ...*Statement) *Block {
	return &Block{Statements: stmts}
}

// Add appends s to the block.
func (b *Block) Add(s *Statement) { b.Statements = append(b.Statements, s) }

// Len returns the number of statements in the block.
// A nil block is empty.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}

	return len(b.Statements)
}

// All returns an iterator over the statements in order.
func (b *Block) All() iter.Seq[*Statement] {
	return func(yield func(*Statement) bool) {
		if b == nil {
			return
		}

		for _, s := range b.Statements {
			if !yield(s) {
				return
			}
		}
	}
}

// Equal reports whether b and c hold structurally identical statements.
// A nil block equals an empty one.
func (b *Block) Equal(c *Block) bool {
	if b.Len() != c.Len() {
		return false
	}

	if b == nil || c == nil {
		return true
	}

	return slices.EqualFunc(b.Statements, c.Statements, (*Statement).Equal)
}

// Clone returns a deep copy of b that shares no memory with it.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}

	c := &Block{Statements: make([]*Statement, len(b.Statements))}
	for i, s := range b.Statements {
		c.Statements[i] = s.Clone()
	}

	return c
}
