// Package mathexpr parses and evaluates single-variable math expressions.
// The grammar covers the usual arithmetic operators, exponentiation, a set
// of named functions and the constants pi and e. The variable is always x.
package mathexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type node interface {
	eval(x float64) float64
}

type numberNode float64

func (n numberNode) eval(float64) float64 { return float64(n) }

type variableNode struct{}

func (variableNode) eval(x float64) float64 { return x }

type unaryNode struct {
	operand node
}

func (n unaryNode) eval(x float64) float64 { return -n.operand.eval(x) }

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(x float64) float64 {
	l := n.left.eval(x)
	r := n.right.eval(x)
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '^':
		return math.Pow(l, r)
	}
	return math.NaN()
}

type callNode struct {
	fn      func(float64) float64
	operand node
}

func (n callNode) eval(x float64) float64 { return n.fn(n.operand.eval(x)) }

var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"ln":   math.Log,
	"log":  math.Log10,
	"exp":  math.Exp,
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Expr is a parsed expression ready for repeated evaluation.
type Expr struct {
	root node
	src  string
}

// String returns the source text the expression was parsed from.
func (e *Expr) String() string { return e.src }

// Eval evaluates the expression at x. Domain errors surface as NaN or Inf.
func (e *Expr) Eval(x float64) float64 { return e.root.eval(x) }

// Parse compiles an expression. It returns an error on syntax problems,
// unknown identifiers, or trailing input.
func Parse(src string) (*Expr, error) {
	p := &parser{input: src}
	p.next()
	root, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.tok != tokenEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.text, p.pos)
	}
	return &Expr{root: root, src: src}, nil
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOp
	tokenLParen
	tokenRParen
)

type parser struct {
	input string
	pos   int
	tok   tokenKind
	text  string
}

func (p *parser) next() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
	if p.pos >= len(p.input) {
		p.tok = tokenEOF
		p.text = ""
		return
	}

	c := p.input[p.pos]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		start := p.pos
		for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
			p.pos++
		}
		p.tok = tokenNumber
		p.text = p.input[start:p.pos]
	case unicode.IsLetter(rune(c)):
		start := p.pos
		for p.pos < len(p.input) && unicode.IsLetter(rune(p.input[p.pos])) {
			p.pos++
		}
		p.tok = tokenIdent
		p.text = strings.ToLower(p.input[start:p.pos])
	case c == '(':
		p.pos++
		p.tok = tokenLParen
		p.text = "("
	case c == ')':
		p.pos++
		p.tok = tokenRParen
		p.text = ")"
	case strings.IndexByte("+-*/^", c) >= 0:
		p.pos++
		p.tok = tokenOp
		p.text = string(c)
	default:
		p.tok = tokenOp
		p.text = string(c)
		p.pos++
	}
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok == tokenOp && (p.text == "+" || p.text == "-") {
		op := p.text[0]
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok == tokenOp && (p.text == "*" || p.text == "/") {
		op := p.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.tok == tokenOp && p.text == "-" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{operand: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	// Right associative, and the exponent may carry a unary minus.
	if p.tok == tokenOp && p.text == "^" {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok {
	case tokenNumber:
		v, err := strconv.ParseFloat(p.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p.text)
		}
		p.next()
		return numberNode(v), nil
	case tokenIdent:
		name := p.text
		p.next()
		if name == "x" {
			return variableNode{}, nil
		}
		if v, ok := constants[name]; ok {
			return numberNode(v), nil
		}
		if fn, ok := functions[name]; ok {
			if p.tok != tokenLParen {
				return nil, fmt.Errorf("function %q requires parentheses", name)
			}
			p.next()
			operand, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			if p.tok != tokenRParen {
				return nil, fmt.Errorf("missing closing parenthesis for %q", name)
			}
			p.next()
			return callNode{fn: fn, operand: operand}, nil
		}
		return nil, fmt.Errorf("unknown identifier %q", name)
	case tokenLParen:
		p.next()
		inner, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if p.tok != tokenRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.next()
		return inner, nil
	case tokenEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	default:
		return nil, fmt.Errorf("unexpected %q at position %d", p.text, p.pos)
	}
}

// Point is a sampled coordinate pair.
type Point struct {
	X float64
	Y float64
}

// Sample evaluates the expression at steps+1 evenly spaced positions across
// [xMin, xMax]. Positions where the expression is not finite are skipped, so
// the result may hold fewer points than requested.
func Sample(e *Expr, xMin, xMax float64, steps int) []Point {
	if steps < 1 || xMax <= xMin {
		return nil
	}
	width := (xMax - xMin) / float64(steps)
	points := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		x := xMin + float64(i)*width
		y := e.Eval(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}
