package repl

import "github.com/ardnew/ilc/il"

// Sentinel errors.
var (
	ErrOutOfBounds  = il.NewError("index out of range")
	ErrEditDeclined = il.NewError("decline edit")
	ErrUsage        = il.NewError("usage: let <name> <type> [= <value>]")
)
