package mathexpr

import (
	"math"
	"testing"
)

func TestParseAndEval(t *testing.T) {
	tests := []struct {
		name string
		expr string
		x    float64
		want float64
	}{
		{"constant", "42", 0, 42},
		{"variable", "x", 3.5, 3.5},
		{"addition", "x + 2", 1, 3},
		{"subtraction chain", "10 - 3 - 2", 0, 5},
		{"multiplication", "2 * x", 4, 8},
		{"division", "x / 4", 10, 2.5},
		{"precedence", "2 + 3 * 4", 0, 14},
		{"parentheses", "(2 + 3) * 4", 0, 20},
		{"power", "x^2", 3, 9},
		{"power right assoc", "2^3^2", 0, 512},
		{"unary minus", "-x", 2, -2},
		{"unary minus squared", "-x^2", 2, -4},
		{"negative exponent", "2^-1", 0, 0.5},
		{"sin", "sin(0)", 0, 0},
		{"cos", "cos(0)", 0, 1},
		{"sqrt", "sqrt(x)", 16, 4},
		{"abs", "abs(x)", -3, 3},
		{"ln of e", "ln(e)", 0, 1},
		{"log base ten", "log(100)", 0, 2},
		{"pi", "2 * pi", 0, 2 * math.Pi},
		{"nested", "sin(x * pi / 2)", 1, 1},
		{"mixed case function", "SIN(0)", 0, 0},
		{"whitespace", "  x  +  1 ", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.expr, err)
			}
			got := e.Eval(tt.x)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Eval(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	exprs := []string{
		"",
		"x +",
		"(x + 1",
		"2 ** 3",
		"foo(x)",
		"y + 1",
		"sin x",
		"1 2",
		"1..5",
	}

	for _, src := range exprs {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
		}
	}
}

func TestEvalNonFinite(t *testing.T) {
	e, err := Parse("sqrt(x)")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Eval(-1); !math.IsNaN(got) {
		t.Errorf("sqrt(-1) = %v, want NaN", got)
	}

	e, err = Parse("1 / x")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Eval(0); !math.IsInf(got, 1) {
		t.Errorf("1/0 = %v, want +Inf", got)
	}
}

func TestSample(t *testing.T) {
	e, err := Parse("x^2")
	if err != nil {
		t.Fatal(err)
	}

	points := Sample(e, -2, 2, 4)
	if len(points) != 5 {
		t.Fatalf("got %d points, want 5", len(points))
	}
	if points[0].X != -2 || points[0].Y != 4 {
		t.Errorf("first point = %+v, want {-2 4}", points[0])
	}
	if points[2].X != 0 || points[2].Y != 0 {
		t.Errorf("middle point = %+v, want {0 0}", points[2])
	}
	if points[4].X != 2 || points[4].Y != 4 {
		t.Errorf("last point = %+v, want {2 4}", points[4])
	}
}

func TestSampleSkipsNonFinite(t *testing.T) {
	e, err := Parse("sqrt(x)")
	if err != nil {
		t.Fatal(err)
	}

	points := Sample(e, -1, 1, 2)
	// x = -1 yields NaN and is dropped.
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].X != 0 {
		t.Errorf("first kept point at x = %v, want 0", points[0].X)
	}
}

func TestSampleDegenerateRange(t *testing.T) {
	e, err := Parse("x")
	if err != nil {
		t.Fatal(err)
	}
	if points := Sample(e, 2, 2, 10); points != nil {
		t.Errorf("empty range produced %d points", len(points))
	}
	if points := Sample(e, 0, 1, 0); points != nil {
		t.Errorf("zero steps produced %d points", len(points))
	}
}
