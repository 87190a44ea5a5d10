package il

import (
	"log/slog"
	"unicode"
	"unicode/utf8"
)

// scalarTypes maps the reserved type names to their kinds.
var scalarTypes = map[string]TypeKind{
	"Null": TypeNull,
	"Int":  TypeInt,
	"Uint": TypeUint,
	"Byte": TypeByte,
	"Char": TypeChar,
	"Bool": TypeBool,
	"List": TypeList,
}

// ParseType parses the debug representation of a type.
//
// Grammar:
//
//	Type     → Primary ('|' Primary)*
//	Primary  → Name | '[' Type ']' | '(' Types? ')' (':' Type)?
//	Types    → Type (',' Type)*
//
// A parenthesised list followed by ':' is a function type; a single
// parenthesised type without ':' is a grouping. The name "Never" denotes the
// empty union. ParseType(t.String()) is equal to t for every Type t except a
// single-member union, which formats as its only member.
func ParseType(src string) (Type, error) {
	p := typeParser{src: src}

	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}

	p.skipSpace()

	if p.pos < len(p.src) {
		return Type{}, p.errorf("unexpected trailing input")
	}

	return t, nil
}

// MustParseType is like [ParseType] but panics on error.
// It is intended for tables of built-in declarations.
func MustParseType(src string) Type {
	t, err := ParseType(src)
	if err != nil {
		panic(err)
	}

	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(msg string) error {
	return ErrParseType.With(
		slog.String("type", p.src),
		slog.Int("offset", p.pos),
		slog.String("reason", msg),
	)
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}

		p.pos += n
	}
}

// accept consumes c if it is the next non-space byte.
func (p *typeParser) accept(c byte) bool {
	p.skipSpace()

	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++

		return true
	}

	return false
}

func (p *typeParser) parseType() (Type, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return Type{}, err
	}

	if !p.accept('|') {
		return first, nil
	}

	members := []Type{first}

	for {
		next, err := p.parsePrimary()
		if err != nil {
			return Type{}, err
		}

		members = append(members, next)

		if !p.accept('|') {
			return Type{Kind: TypeUnion, Members: members}, nil
		}
	}
}

func (p *typeParser) parsePrimary() (Type, error) {
	p.skipSpace()

	switch {
	case p.accept('['):
		elem, err := p.parseType()
		if err != nil {
			return Type{}, err
		}

		if !p.accept(']') {
			return Type{}, p.errorf("expected ']'")
		}

		return ArrayOf(elem), nil

	case p.accept('('):
		return p.parseParen()

	default:
		name := p.parseName()
		if name == "" {
			return Type{}, p.errorf("expected type")
		}

		if name == "Never" {
			return Type{Kind: TypeUnion}, nil
		}

		if k, ok := scalarTypes[name]; ok {
			return Type{Kind: k}, nil
		}

		return CustomType(name), nil
	}
}

// parseParen parses the remainder of a function type or grouping after its
// opening parenthesis.
func (p *typeParser) parseParen() (Type, error) {
	var items []Type

	if !p.accept(')') {
		for {
			t, err := p.parseType()
			if err != nil {
				return Type{}, err
			}

			items = append(items, t)

			if p.accept(')') {
				break
			}

			if !p.accept(',') {
				return Type{}, p.errorf("expected ',' or ')'")
			}
		}
	}

	if p.accept(':') {
		result, err := p.parseType()
		if err != nil {
			return Type{}, err
		}

		if items == nil {
			items = []Type{}
		}

		return Type{Kind: TypeFunction, Params: items, Result: &result}, nil
	}

	if len(items) != 1 {
		return Type{}, p.errorf("expected ':' after parameter list")
	}

	return items[0], nil
}

func (p *typeParser) parseName() string {
	start := p.pos

	for p.pos < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[p.pos:])

		switch {
		case r == '_' || unicode.IsLetter(r):
		case p.pos > start && (unicode.IsDigit(r) || r == '.'):
		default:
			return p.src[start:p.pos]
		}

		p.pos += n
	}

	return p.src[start:p.pos]
}
