package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/ilc/il"
)

// functionCall describes the call whose argument list contains the cursor.
type functionCall struct {
	name     string // callee, e.g. "console.log"
	argIndex int    // 0-based index of the argument under the cursor
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed call before cursor.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open := -1
	depth := 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++

		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '.' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	arg := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[':
			depth++

		case ')', ']':
			depth--

		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// renderSignatureHint renders the function type t of name with the parameter
// at arg highlighted.
func renderSignatureHint(name string, t il.Type, arg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == arg {
			b.WriteString(currentParamStyle.Render(p.String()))
		} else {
			b.WriteString(signatureStyle.Render(p.String()))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	if t.Result != nil {
		b.WriteString(signatureStyle.Render(": " + t.Result.String()))
	}

	return b.String()
}
