package il

import (
	"errors"
	"math"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		src  string
		want *Value
	}{
		{"69", Int(69)},
		{"-7", Int(-7)},
		{"true", Bool(true)},
		{"'a'", Char('a')},
		{`"é"`, Char('é')},
		{"[1, 2]", List(Int(1), Int(2))},
		{"[]", List()},
		{"x", Name("x")},
		{"console.log", Name("console.log")},
		{"console.log(69)", FnCall("console.log", Int(69))},
		{"f()", FnCall("f")},
		{"f(1, g(x))", FnCall("f", Int(1), FnCall("g", Name("x")))},
		{"a > 1", Greater(Name("a"), Int(1))},
		{"a >= 1", GreaterEqual(Name("a"), Int(1))},
		{"a < 1", Less(Name("a"), Int(1))},
		{"a <= 1", LessEqual(Name("a"), Int(1))},
		{"a == 1", Equal(Name("a"), Int(1))},
		{"a != 1", Not(Equal(Name("a"), Int(1)))},
		{"a && b", And(Name("a"), Name("b"))},
		{"a and b", And(Name("a"), Name("b"))},
		{"a || b", Or(Name("a"), Name("b"))},
		{"!a", Not(Name("a"))},
		{"not a", Not(Name("a"))},
		{"1 + 2 * 3", Add(Int(1), Mul(Int(2), Int(3)))},
		{"(1 + 2) * 3", Mul(Add(Int(1), Int(2)), Int(3))},
		{"a - b", Sub(Name("a"), Name("b"))},
		{"a / b", Div(Name("a"), Name("b"))},
		{"a % b", Modulo(Name("a"), Name("b"))},
		{"-a", Sub(Int(0), Name("a"))},
		{"bitand(a, 1)", BitwiseAnd(Name("a"), Int(1))},
		{"bitor(a, 1)", BitwiseOr(Name("a"), Int(1))},
		{"bitxor(a, 1)", BitwiseXor(Name("a"), Int(1))},
		{"bitnot(a)", BitwiseNot(Name("a"))},
		{"bitshl(a, 2)", BitwiseShift(Name("a"), Int(2))},
		{"bitshr(a, 2)", BitwiseUnshift(Name("a"), Int(2))},
		{"uint(5)", Uint(5)},
		{"byte(255)", Byte(255)},
		{"char(65)", Char('A')},
		{`type("[Int]")`, TypeValue(ArrayOf(IntType()))},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := ParseValue(tt.src)
			if err != nil {
				t.Fatalf("ParseValue(%q) error: %v", tt.src, err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("ParseValue(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseValue_Errors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"", ErrParseExpr},
		{"1 +", ErrParseExpr},
		{"1.5", ErrUnsupportedExpr},
		{`"hello"`, ErrUnsupportedExpr},
		{"nil", ErrUnsupportedExpr},
		{"byte(256)", ErrUnsupportedExpr},
		{"uint(x)", ErrUnsupportedExpr},
		{"bitand(1)", ErrUnsupportedExpr},
		{"a ?? b", ErrUnsupportedExpr},
		{`type("[Int")`, ErrParseType},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseValue(tt.src)
			if err == nil {
				t.Fatalf("ParseValue(%q) succeeded, want error", tt.src)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("ParseValue(%q) error = %v, want %v", tt.src, err, tt.want)
			}
		})
	}
}

func TestParseValueAt_RecordsPosition(t *testing.T) {
	pos := Pos{File: "main.yaml", Line: 3, Column: 7}

	v, err := ParseValueAt("f(1 + x)", pos)
	if err != nil {
		t.Fatalf("ParseValueAt error: %v", err)
	}

	for _, node := range []*Value{v, v.Args[0], v.Args[0].X, v.Args[0].Y} {
		if node.Pos != pos {
			t.Errorf("node %s has position %v, want %v", node, node.Pos, pos)
		}
	}
}

func TestSource_RoundTrip(t *testing.T) {
	values := []*Value{
		Int(-3),
		Int(math.MaxInt64),
		Int(math.MinInt64 + 1),
		Uint(7),
		Uint(math.MaxInt64),
		Byte(16),
		Char('\n'),
		Bool(false),
		List(Int(1), List()),
		Name("console.log"),
		FnCall("f", Int(1), Name("y")),
		Mul(Add(Int(1), Int(2)), Sub(Name("a"), Int(-1))),
		Not(Equal(Name("a"), Name("b"))),
		Or(And(Bool(true), Bool(false)), Not(Bool(true))),
		BitwiseShift(BitwiseNot(Name("a")), BitwiseAnd(Int(1), Int(2))),
		TypeValue(FunctionOf([]Type{IntType()}, NullType())),
	}

	for _, v := range values {
		t.Run(v.String(), func(t *testing.T) {
			src, err := Source(v)
			if err != nil {
				t.Fatalf("Source error: %v", err)
			}

			got, err := ParseValue(src)
			if err != nil {
				t.Fatalf("ParseValue(%q) error: %v", src, err)
			}

			if !got.Equal(v) {
				t.Errorf("round trip through %q produced %s, want %s", src, got, v)
			}
		})
	}
}

func TestSource_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
	}{
		{"custom", Custom(CustomType("Point"), Field{"x", Int(1)})},
		{"min int", Int(math.MinInt64)},
		{"large uint", Uint(math.MaxUint64)},
		{"nested min int", Add(Name("a"), Int(math.MinInt64))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Source(tt.v); !errors.Is(err, ErrUnsupportedExpr) {
				t.Errorf("Source(%s) error = %v, want ErrUnsupportedExpr", tt.v, err)
			}
		})
	}
}
