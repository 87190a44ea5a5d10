// Package il defines the intermediate language shared by every ilc backend.
//
// The IL is a tree. A [Block] owns an ordered list of [Statement] nodes, each
// statement owns its [Value] expressions and nested blocks, and each value
// owns its operands. Nothing is shared and nothing points back up the tree, so
// a backend can walk it top-down without bookkeeping.
//
// # Types
//
// [Type] is a tagged variant selected by [TypeKind]:
//
//	Null Int Uint Byte Char Bool List   scalar and untyped tags
//	[T]                                 array of T
//	Point                               custom (named) type
//	(A, B): R                           function
//	A | B                               union
//
// The text above is also the debug format produced by [Type.String] and
// accepted by [ParseType].
//
// # Values
//
// [Value] is a tagged variant selected by [Kind]: scalar literals, lists,
// custom aggregates, type values, names, operators and function calls.
// Values are normally built with the constructor functions ([Int], [FnCall],
// [Add], ...) or parsed from expression text with [ParseValue]:
//
//	v, err := il.ParseValue(`console.log(1 + 2)`)
//
// # Statements
//
// [Statement] is a tagged variant selected by [StmtKind]: value statements,
// variable declaration and assignment, function declaration and
// if / else if / else chains.
//
// # Positions
//
// Values and statements carry an optional [Pos]. Positions are diagnostic
// metadata only; they never take part in [Value.Equal] or formatting.
package il
