package js

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/il"
)

var _ backend.Backend = (*Backend)(nil)

func logFn() il.Type {
	return il.FunctionOf([]il.Type{il.IntType()}, il.NullType())
}

func builtins() *backend.NameRegistry {
	return backend.NewNameRegistry(
		backend.Decl{Name: "f", Type: logFn()},
		backend.Decl{Name: "console.log", Type: logFn()},
		backend.Decl{Name: "x", Type: il.IntType()},
	)
}

func TestCompile(t *testing.T) {
	local := il.NewBlock(il.VarDeclare("t", il.IntType(), il.Int(80)))

	tests := []struct {
		name string
		blk  *il.Block
		want string
	}{
		{"empty", il.NewBlock(), ""},
		{"nil", nil, ""},
		{
			"call",
			il.NewBlock(il.Val(il.FnCall("f", il.Int(69)))),
			"f(69);",
		},
		{
			"sequence",
			il.NewBlock(
				il.Val(il.FnCall("console.log", il.Int(1))),
				il.Val(il.FnCall("f", il.Uint(2), il.Byte(255), il.Bool(false))),
			),
			"console.log(1);f(2,255,false);",
		},
		{
			"if else",
			il.NewBlock(il.If(il.Bool(true), local, nil,
				il.NewBlock(il.Val(il.FnCall("f", il.Name("x")))))),
			"if(true){let t=80;}else{f(x);}",
		},
		{
			"if elif",
			il.NewBlock(il.If(il.Less(il.Name("x"), il.Int(0)),
				il.NewBlock(il.Val(il.FnCall("f", il.Int(-1)))),
				[]il.Branch{{
					Cond: il.Equal(il.Name("x"), il.Int(0)),
					Body: il.NewBlock(il.Val(il.FnCall("f", il.Int(0)))),
				}},
				nil,
			)),
			"if(x<0){f(-1);}elseif(x===0){f(0);}",
		},
		{
			"declare and assign",
			il.NewBlock(
				il.VarDeclare("t", il.IntType(), il.Add(il.Name("x"), il.Int(1))),
				il.VarAssign("t", il.Mul(il.Name("t"), il.Int(2))),
			),
			"let t=x+1;t=t*2;",
		},
		{
			"function",
			il.NewBlock(
				il.FnDeclare("add",
					il.NewBlock(il.Val(il.FnCall("add", il.Name("a"), il.Name("b")))),
					[]il.Param{{Name: "a", Type: il.IntType()}, {Name: "b", Type: il.IntType()}},
					il.IntType(),
				),
				il.Val(il.FnCall("add", il.Int(1), il.Int(2))),
			),
			"function add(a,b){add(a,b);}add(1,2);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(ES6, "out.js").Compile(t.Context(), tt.blk, builtins())
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_Values(t *testing.T) {
	tests := []struct {
		name  string
		value *il.Value
		want  string
	}{
		{"char", il.Char('a'), `f("a");`},
		{"char quote", il.Char('"'), `f("\"");`},
		{"char newline", il.Char('\n'), `f("\n");`},
		{"list", il.List(il.Int(1), il.List()), "f([1,[]]);"},
		{
			"custom",
			il.Custom(il.CustomType("Point"),
				il.Field{Name: "x", Value: il.Int(1)},
				il.Field{Name: "not ident", Value: il.Bool(true)}),
			`f({x:1,"not ident":true});`,
		},
		{"not", il.Not(il.Equal(il.Name("x"), il.Int(1))), "f(!(x===1));"},
		{"bitwise not", il.BitwiseNot(il.Name("x")), "f(~x);"},
		{"shift", il.BitwiseShift(il.Name("x"), il.Int(2)), "f(x<<2);"},
		{"unshift", il.BitwiseUnshift(il.Name("x"), il.Int(2)), "f(x>>2);"},
		{
			"logic",
			il.Or(il.And(il.Greater(il.Name("x"), il.Int(1)), il.LessEqual(il.Name("x"), il.Int(9))),
				il.GreaterEqual(il.Name("x"), il.Int(100))),
			"f(((x>1)&&(x<=9))||(x>=100));",
		},
		{
			"arithmetic",
			il.Modulo(il.Div(il.Sub(il.Name("x"), il.Int(-1)), il.Int(3)), il.Int(2)),
			"f(((x-(-1))/3)%2);",
		},
		{
			"bitwise",
			il.BitwiseXor(il.BitwiseAnd(il.Name("x"), il.Int(1)), il.BitwiseOr(il.Int(2), il.Int(4))),
			"f((x&1)^(2|4));",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blk := il.NewBlock(il.Val(il.FnCall("f", tt.value)))

			got, err := New(ES6, "").Compile(t.Context(), blk, builtins())
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	pos := il.Pos{File: "main.yaml", Line: 7, Column: 5}

	tests := []struct {
		name     string
		blk      *il.Block
		sentinel error
		ident    string
	}{
		{
			"undefined call",
			il.NewBlock(il.Val(il.FnCall("g", il.Int(69)))),
			backend.ErrNameNotFound, "g",
		},
		{
			"undefined argument",
			il.NewBlock(il.Val(il.FnCall("f", il.Name("y")))),
			backend.ErrNameNotFound, "y",
		},
		{
			"first failing argument",
			il.NewBlock(il.Val(il.FnCall("f", il.Name("a"), il.Name("b")))),
			backend.ErrNameNotFound, "a",
		},
		{
			"failure after output",
			il.NewBlock(
				il.Val(il.FnCall("f", il.Int(1))),
				il.Val(il.FnCall("missing")),
			),
			backend.ErrNameNotFound, "missing",
		},
		{
			"undefined condition",
			il.NewBlock(il.If(il.Name("cond"), il.NewBlock(), nil, nil)),
			backend.ErrNameNotFound, "cond",
		},
		{
			"undefined in nested block",
			il.NewBlock(il.If(il.Bool(true),
				il.NewBlock(il.If(il.Bool(false), il.NewBlock(il.Val(il.Name("deep"))), nil, nil)),
				nil, nil)),
			backend.ErrNameNotFound, "deep",
		},
		{
			"assign undeclared",
			il.NewBlock(il.VarAssign("t", il.Int(1))),
			backend.ErrNameNotFound, "t",
		},
		{
			"redeclare builtin",
			il.NewBlock(il.VarDeclare("x", il.IntType(), il.Int(1)).At(pos)),
			backend.ErrNamePresent, "x",
		},
		{
			"redeclare function",
			il.NewBlock(il.FnDeclare("f", il.NewBlock(), nil, il.NullType())),
			backend.ErrNamePresent, "f",
		},
		{
			"duplicate parameter",
			il.NewBlock(il.FnDeclare("g", il.NewBlock(),
				[]il.Param{{Name: "a", Type: il.IntType()}, {Name: "a", Type: il.IntType()}},
				il.NullType())),
			backend.ErrNamePresent, "a",
		},
		{
			"self-referencing initializer",
			il.NewBlock(il.VarDeclare("t", il.IntType(), il.Name("t"))),
			backend.ErrNameNotFound, "t",
		},
		{
			"type value",
			il.NewBlock(il.Val(il.FnCall("f", il.TypeValue(il.IntType())))),
			backend.ErrUnsupportedConstruct, "",
		},
		{
			"nil statement",
			il.NewBlock(nil),
			backend.ErrUnsupportedConstruct, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(ES6, "").Compile(t.Context(), tt.blk, builtins())
			if err == nil {
				t.Fatalf("Compile() = %q, want error", got)
			}

			if got != "" {
				t.Errorf("Compile() produced partial output %q", got)
			}

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not match %v", err, tt.sentinel)
			}

			if tt.ident != "" && !strings.Contains(err.Error(), tt.ident) {
				t.Errorf("error %q does not name %q", err, tt.ident)
			}
		})
	}
}

func TestCompile_ErrorPosition(t *testing.T) {
	pos := il.Pos{File: "main.yaml", Line: 3, Column: 9}
	blk := il.NewBlock(il.Val(il.FnCall("f", il.Name("y").At(pos))))

	_, err := New(ES6, "").Compile(t.Context(), blk, builtins())

	var nf *backend.NameNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %v is not a NameNotFoundError", err)
	}

	if nf.Pos != pos {
		t.Errorf("error position = %v, want %v", nf.Pos, pos)
	}
}

func TestCompile_ScopeIsolation(t *testing.T) {
	then := il.NewBlock(il.VarDeclare("local", il.IntType(), il.Int(1)))
	otherwise := il.NewBlock(il.Val(il.FnCall("f", il.Name("local"))))

	blk := il.NewBlock(il.If(il.Bool(true), then, nil, otherwise))

	_, err := New(ES6, "").Compile(t.Context(), blk, builtins())
	if !errors.Is(err, backend.ErrNameNotFound) {
		t.Fatalf("local from then-branch visible in else-branch: err = %v", err)
	}

	after := il.NewBlock(
		il.If(il.Bool(true), then, nil, nil),
		il.Val(il.FnCall("f", il.Name("local"))),
	)

	if _, err := New(ES6, "").Compile(t.Context(), after, builtins()); !errors.Is(err, backend.ErrNameNotFound) {
		t.Errorf("local from then-branch visible after if: err = %v", err)
	}

	redeclare := il.NewBlock(il.If(il.Bool(true), then, nil, then.Clone()))

	got, err := New(ES6, "").Compile(t.Context(), redeclare, builtins())
	if err != nil {
		t.Fatalf("sibling branches sharing a local name: %v", err)
	}

	if want := "if(true){let local=1;}else{let local=1;}"; got != want {
		t.Errorf("Compile() = %q, want %q", got, want)
	}
}

func TestCompile_FunctionScope(t *testing.T) {
	blk := il.NewBlock(
		il.FnDeclare("g",
			il.NewBlock(il.Val(il.FnCall("f", il.Name("a")))),
			[]il.Param{{Name: "a", Type: il.IntType()}},
			il.NullType(),
		),
		il.Val(il.FnCall("f", il.Name("a"))),
	)

	_, err := New(ES6, "").Compile(t.Context(), blk, builtins())
	if !errors.Is(err, backend.ErrNameNotFound) || !strings.Contains(err.Error(), "a") {
		t.Errorf("parameter visible outside function body: err = %v", err)
	}
}

func TestCompile_DoesNotMutateInputs(t *testing.T) {
	reg := builtins()
	names := slices.Collect(reg.Names())

	blk := il.NewBlock(
		il.VarDeclare("t", il.IntType(), il.Int(80)),
		il.FnDeclare("g", il.NewBlock(il.VarDeclare("u", il.IntType(), il.Int(1))), nil, il.NullType()),
		il.If(il.Bool(true), il.NewBlock(il.VarDeclare("v", il.IntType(), il.Int(2))), nil, nil),
	)
	orig := blk.Clone()

	if _, err := New(ES5, "").Compile(t.Context(), blk, reg); err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	if got := slices.Collect(reg.Names()); !slices.Equal(got, names) {
		t.Errorf("caller registry changed: %v, want %v", got, names)
	}

	if !blk.Equal(orig) {
		t.Error("Compile modified the block")
	}
}

func TestCompile_Version(t *testing.T) {
	blk := il.NewBlock(il.VarDeclare("t", il.IntType(), il.Int(80)))

	for v, want := range map[Version]string{ES5: "var t=80;", ES6: "let t=80;"} {
		got, err := New(v, "").Compile(t.Context(), blk, nil)
		if err != nil {
			t.Fatalf("%s: Compile error: %v", v, err)
		}

		if got != want {
			t.Errorf("%s: Compile() = %q, want %q", v, got, want)
		}
	}
}

func TestCompile_MaxDepth(t *testing.T) {
	nest := func(depth int) *il.Block {
		blk := il.NewBlock(il.Val(il.Int(0)))
		for range depth {
			blk = il.NewBlock(il.If(il.Bool(true), blk, nil, nil))
		}

		return blk
	}

	b := New(ES6, "", WithMaxDepth(3))

	if _, err := b.Compile(t.Context(), nest(3), nil); err != nil {
		t.Errorf("depth 3 within bound: %v", err)
	}

	if _, err := b.Compile(t.Context(), nest(4), nil); !errors.Is(err, backend.ErrMaxDepthExceeded) {
		t.Errorf("depth 4 error = %v, want ErrMaxDepthExceeded", err)
	}

	if _, err := New(ES6, "").Compile(t.Context(), nest(64), nil); err != nil {
		t.Errorf("unbounded backend rejected depth 64: %v", err)
	}
}

func TestCompile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := New(ES6, "").Compile(ctx, il.NewBlock(il.Val(il.Int(1))), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestBackend_Config(t *testing.T) {
	b := New(ES5, "main.js", WithMaxDepth(-1))

	if b.Name() != "js" || b.Version() != ES5 || b.File() != "main.js" || b.MaxDepth() != 0 {
		t.Errorf("unexpected configuration: %s %s %s %d",
			b.Name(), b.Version(), b.File(), b.MaxDepth())
	}
}
