// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr compiles scalar transform equations.
//
// Equations use Go expression syntax over the variables x, y, and z.
// The supported operators are binary + - * / % (floating-point
// remainder), unary + and -, and parentheses. The constants pi and e
// and the functions
//
//	sin cos tan asin acos atan atan2 sinh cosh tanh
//	exp ln log log10 log2 sqrt abs floor ceil round
//	min max pow
//
// are predefined. log is the natural logarithm. Go's ^ operator is
// exclusive-or with additive precedence, so it is rejected; use pow
// instead.
//
// Evaluation never fails: results that are not finite (for example,
// log of a negative number) are returned as NaN or ±Inf.
package expr

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/scanner"
	"go/token"
	"math"
)

// An Expr is a compiled equation.
type Expr struct {
	src  string
	fn   node
	uses [3]bool
}

// Compile parses and type-checks the equation src.
func Compile(src string) (*Expr, error) {
	c := &compiler{src: src}
	return c.compile()
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Expr {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval evaluates e with the given variable bindings.
func (e *Expr) Eval(x, y, z float64) float64 {
	return e.fn(&env{x, y, z})
}

// String returns the source text of e.
func (e *Expr) String() string {
	return e.src
}

// Uses reports whether e refers to the variable name ("x", "y", or
// "z").
func (e *Expr) Uses(name string) bool {
	if i, ok := varIndex[name]; ok {
		return e.uses[i]
	}
	return false
}

// Error is a compile error in an equation.
type Error struct {
	// Src is the equation being compiled.
	Src string
	// Offset is the byte offset of the error in Src.
	Offset int
	// Msg describes the error.
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%q:%d: %s", e.Src, e.Offset+1, e.Msg)
}

type env struct {
	x, y, z float64
}

type node func(e *env) float64

var varIndex = map[string]int{"x": 0, "y": 1, "z": 2}

var consts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

type function struct {
	f1 func(float64) float64
	f2 func(float64, float64) float64
}

func (f function) nargs() int {
	if f.f1 != nil {
		return 1
	}
	return 2
}

var funcs = map[string]function{
	"sin":   {f1: math.Sin},
	"cos":   {f1: math.Cos},
	"tan":   {f1: math.Tan},
	"asin":  {f1: math.Asin},
	"acos":  {f1: math.Acos},
	"atan":  {f1: math.Atan},
	"sinh":  {f1: math.Sinh},
	"cosh":  {f1: math.Cosh},
	"tanh":  {f1: math.Tanh},
	"exp":   {f1: math.Exp},
	"ln":    {f1: math.Log},
	"log":   {f1: math.Log},
	"log10": {f1: math.Log10},
	"log2":  {f1: math.Log2},
	"sqrt":  {f1: math.Sqrt},
	"abs":   {f1: math.Abs},
	"floor": {f1: math.Floor},
	"ceil":  {f1: math.Ceil},
	"round": {f1: math.Round},
	"atan2": {f2: math.Atan2},
	"min":   {f2: math.Min},
	"max":   {f2: math.Max},
	"pow":   {f2: math.Pow},
}

type compiler struct {
	src  string
	fset *token.FileSet
	uses [3]bool
}

func (c *compiler) compile() (e *Expr, err error) {
	c.fset = token.NewFileSet()
	tree, err := parser.ParseExprFrom(c.fset, "", c.src, 0)
	if err != nil {
		if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
			return nil, &Error{c.src, list[0].Pos.Offset, list[0].Msg}
		}
		return nil, &Error{c.src, 0, err.Error()}
	}

	// Translate AST into nested closures.
	defer func() {
		err2 := recover()
		if err2, ok := err2.(*Error); ok {
			e, err = nil, err2
		} else if err2 != nil {
			panic(err2)
		}
	}()
	fn := c.expr(tree)
	return &Expr{c.src, fn, c.uses}, nil
}

// bad panics with an *Error at n.
func (c *compiler) bad(n ast.Node, format string, a ...interface{}) {
	off := 0
	if n.Pos().IsValid() {
		off = c.fset.Position(n.Pos()).Offset
	}
	panic(&Error{c.src, off, fmt.Sprintf(format, a...)})
}

func (c *compiler) expr(expr ast.Expr) node {
	switch expr := expr.(type) {
	case *ast.BasicLit:
		if expr.Kind != token.INT && expr.Kind != token.FLOAT {
			c.bad(expr, "want number, have %s", expr.Value)
		}
		v := constant.MakeFromLiteral(expr.Value, expr.Kind, 0)
		if v.Kind() == constant.Unknown {
			c.bad(expr, "malformed number %s", expr.Value)
		}
		f, _ := constant.Float64Val(constant.ToFloat(v))
		return func(*env) float64 {
			return f
		}

	case *ast.Ident:
		switch expr.Name {
		case "x":
			c.uses[0] = true
			return func(e *env) float64 { return e.x }
		case "y":
			c.uses[1] = true
			return func(e *env) float64 { return e.y }
		case "z":
			c.uses[2] = true
			return func(e *env) float64 { return e.z }
		}
		if v, ok := consts[expr.Name]; ok {
			return func(*env) float64 { return v }
		}
		if _, ok := funcs[expr.Name]; ok {
			c.bad(expr, "%s is a function", expr.Name)
		}
		c.bad(expr, "undefined: %s", expr.Name)

	case *ast.ParenExpr:
		return c.expr(expr.X)

	case *ast.UnaryExpr:
		x := c.expr(expr.X)
		switch expr.Op {
		case token.ADD:
			return x
		case token.SUB:
			return func(e *env) float64 { return -x(e) }
		}
		c.bad(expr, "unsupported operator %s", expr.Op)

	case *ast.BinaryExpr:
		if expr.Op == token.XOR {
			c.bad(expr, "^ is not exponentiation; use pow(a, b)")
		}
		x, y := c.expr(expr.X), c.expr(expr.Y)
		switch expr.Op {
		case token.ADD:
			return func(e *env) float64 { return x(e) + y(e) }
		case token.SUB:
			return func(e *env) float64 { return x(e) - y(e) }
		case token.MUL:
			return func(e *env) float64 { return x(e) * y(e) }
		case token.QUO:
			return func(e *env) float64 { return x(e) / y(e) }
		case token.REM:
			return func(e *env) float64 { return math.Mod(x(e), y(e)) }
		}
		c.bad(expr, "unsupported operator %s", expr.Op)

	case *ast.CallExpr:
		id, ok := expr.Fun.(*ast.Ident)
		if !ok {
			c.bad(expr, "bad call")
		}
		f, ok := funcs[id.Name]
		if !ok {
			c.bad(expr, "undefined function: %s", id.Name)
		}
		if expr.Ellipsis.IsValid() {
			c.bad(expr, "bad call to %s", id.Name)
		}
		if len(expr.Args) != f.nargs() {
			c.bad(expr, "%s takes %d argument(s), have %d", id.Name, f.nargs(), len(expr.Args))
		}
		if f.f1 != nil {
			f1, x := f.f1, c.expr(expr.Args[0])
			return func(e *env) float64 { return f1(x(e)) }
		}
		f2, x, y := f.f2, c.expr(expr.Args[0]), c.expr(expr.Args[1])
		return func(e *env) float64 { return f2(x(e), y(e)) }
	}

	c.bad(expr, "unsupported expression")
	return nil
}
