// Package program reads and writes IL programs stored as YAML documents.
//
// A document names the compilation target, the externally provided symbols,
// and the statement body:
//
//	target:
//	  version: es6
//	  file: out.js
//	builtins:
//	  console.log: "(Int): Null"
//	body:
//	  - let: {name: t, type: Int, value: 80}
//	  - set: {name: t, value: t + 1}
//	  - fn:
//	      name: show
//	      params: [{name: n, type: Int}]
//	      returns: Null
//	      body:
//	        - val: console.log(n)
//	  - if:
//	      cond: t > 80
//	      then: [{val: show(t)}]
//	      elif: [{cond: t == 80, then: [{val: show(0)}]}]
//	      else: []
//
// Expressions are written in the syntax accepted by [il.ParseValue]; types in
// the syntax accepted by [il.ParseType]. A value may also be a YAML sequence
// (a list) or a mapping with "custom" and "fields" keys (an aggregate value).
// Every statement and value records the line and column it was read from.
package program
