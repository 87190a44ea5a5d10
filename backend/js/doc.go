// Package js lowers IL into JavaScript source text.
//
// Expressions lower to compact JavaScript syntax without insignificant
// whitespace, and every statement is terminated with a semicolon:
//
//	reg := backend.NewNameRegistry(backend.Decl{
//		Name: "console.log",
//		Type: il.FunctionOf([]il.Type{il.IntType()}, il.NullType()),
//	})
//	out, err := js.New(js.ES6, "out.js").Compile(ctx,
//		il.NewBlock(il.Val(il.FnCall("console.log", il.Int(69)))), reg)
//	// out == "console.log(69);"
//
// Every name referenced or called must be declared in the registry or by an
// enclosing statement. Each nested block is lowered under its own clone of
// the enclosing scope.
package js
