package texpr

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating parsed trees: variable bindings plus a
// working precision. It is not safe to use a Context concurrently.
type Context struct {
	names map[string]*big.Float
	prec  uint
}

// NewContext creates an evaluation context computing to prec bits. If prec
// is 0, the default is 64.
func NewContext(prec uint) *Context {
	if prec == 0 {
		prec = 64
	}
	return &Context{names: make(map[string]*big.Float), prec: prec}
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	ctx.names[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable, or nil if it is unbound.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates a parsed tree. Unbound identifiers, equations, and
// arguments outside a function's domain are errors.
func (ctx *Context) Eval(t *Tree) (*big.Float, error) {
	if !t.Root.Valid() {
		return nil, &EvalError{Pos: 0, Msg: "tree has no root"}
	}
	return ctx.eval(t, t.Root)
}

// EvalString is a shortcut to parse and evaluate a single expression.
func EvalString(src string, prec uint) (*big.Float, error) {
	t, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(prec).Eval(t)
}

func (ctx *Context) new() *big.Float {
	return new(big.Float).SetPrec(ctx.prec)
}

func (ctx *Context) eval(t *Tree, id NodeID) (*big.Float, error) {
	n := t.At(id)
	switch n.Kind {
	case KindConstant:
		switch n.Const {
		case ConstPi:
			return bigfloat.Pi(ctx.new()), nil
		case ConstE:
			one := ctx.new().SetInt64(1)
			return bigfloat.Exp(ctx.new(), one), nil
		}
		return nil, &EvalError{Pos: n.Pos, Msg: "constant " + n.Const.String() + " has no real value"}
	case KindReal:
		return ctx.new().SetFloat64(n.Real), nil
	case KindRational:
		if n.Den == 0 {
			return nil, &EvalError{Pos: n.Pos, Msg: "rational with zero denominator"}
		}
		return ctx.new().SetRat(big.NewRat(n.Num, n.Den)), nil
	case KindIdentifier:
		v := ctx.names[n.Name]
		if v == nil {
			return nil, &NameError{Name: n.Name, Pos: n.Pos}
		}
		return ctx.new().Set(v), nil
	case KindUnaryOp:
		v, err := ctx.eval(t, n.Left)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case OpNegate:
			return v.Neg(v), nil
		case OpFactorial:
			return ctx.factorial(v, n.Pos)
		}
		return nil, &EvalError{Pos: n.Pos, Msg: "cannot evaluate unary " + n.Op.String()}
	case KindBinaryOp:
		if n.Op == OpEquals {
			// Equations describe a relation, not a value.
			return nil, &EvalError{Pos: n.Pos, Msg: "cannot evaluate an equation"}
		}
		l, err := ctx.eval(t, n.Left)
		if err != nil {
			return nil, err
		}
		r, err := ctx.eval(t, n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case OpAdd:
			return l.Add(l, r), nil
		case OpSubtract:
			return l.Sub(l, r), nil
		case OpMultiply:
			return l.Mul(l, r), nil
		case OpDivide:
			// Guard invalid divisions, 0/0 and inf/inf.
			if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
				return nil, &DomainError{X: r, Func: "/"}
			}
			return l.Quo(l, r), nil
		case OpPower:
			// TODO: allow negative base with integer exponent
			switch {
			case r.Sign() == 0:
				return l.SetInt64(1), nil
			case l.Sign() == 0:
				if r.Signbit() {
					return nil, &DomainError{X: r, Func: "^"}
				}
				return l, nil
			case l.Signbit():
				return nil, &DomainError{X: l, Func: "^"}
			}
			return bigfloat.Pow(l, l, r), nil
		}
		return nil, &EvalError{Pos: n.Pos, Msg: "cannot evaluate binary " + n.Op.String()}
	case KindCall:
		return ctx.call(t, n)
	}
	return nil, &EvalError{Pos: n.Pos, Msg: "cannot evaluate " + n.Kind.String() + " node"}
}

func (ctx *Context) call(t *Tree, n *Node) (*big.Float, error) {
	args := make([]*big.Float, len(n.Args))
	for i, a := range n.Args {
		v, err := ctx.eval(t, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	arity := func(k int) error {
		if len(args) != k {
			return &EvalError{Pos: n.Pos, Msg: n.Fn.String() + " takes " + strconv.Itoa(k) + " arguments, got " + strconv.Itoa(len(args))}
		}
		return nil
	}
	switch n.Fn {
	case FuncSine:
		return ctx.monadic64(args, math.Sin, n)
	case FuncCosine:
		return ctx.monadic64(args, math.Cos, n)
	case FuncTangent:
		return ctx.monadic64(args, math.Tan, n)
	case FuncExp:
		if err := arity(1); err != nil {
			return nil, err
		}
		return bigfloat.Exp(ctx.new(), args[0]), nil
	case FuncNaturalLog:
		if err := arity(1); err != nil {
			return nil, err
		}
		if args[0].Sign() <= 0 {
			return nil, &DomainError{X: args[0], Func: "ln"}
		}
		return bigfloat.Log(ctx.new(), args[0]), nil
	case FuncLog:
		if err := arity(1); err != nil {
			return nil, err
		}
		if args[0].Sign() <= 0 {
			return nil, &DomainError{X: args[0], Func: "log"}
		}
		r := bigfloat.Log(ctx.new(), args[0])
		ten := ctx.new().SetInt64(10)
		return r.Quo(r, bigfloat.Log(ten, ten)), nil
	case FuncAbs:
		if err := arity(1); err != nil {
			return nil, err
		}
		return args[0].Abs(args[0]), nil
	case FuncAtan2:
		if err := arity(2); err != nil {
			return nil, err
		}
		y, _ := args[0].Float64()
		x, _ := args[1].Float64()
		return ctx.new().SetFloat64(math.Atan2(y, x)), nil
	case FuncHypot:
		if err := arity(2); err != nil {
			return nil, err
		}
		x, _ := args[0].Float64()
		y, _ := args[1].Float64()
		return ctx.new().SetFloat64(math.Hypot(x, y)), nil
	case FuncMax:
		return extremum(args, +1), nil
	case FuncMin:
		return extremum(args, -1), nil
	}
	return nil, &EvalError{Pos: n.Pos, Msg: "cannot evaluate call to " + n.Fn.String()}
}

// monadic64 evaluates a one-argument function through float64, since
// bigfloat has no trig yet. Results are exact only to 53 bits.
func (ctx *Context) monadic64(args []*big.Float, f func(float64) float64, n *Node) (*big.Float, error) {
	if len(args) != 1 {
		return nil, &EvalError{Pos: n.Pos, Msg: n.Fn.String() + " takes 1 argument, got " + strconv.Itoa(len(args))}
	}
	x, _ := args[0].Float64()
	return ctx.new().SetFloat64(f(x)), nil
}

// extremum returns the max (sign > 0) or min (sign < 0) of a non-empty
// argument list. The parser never produces an empty one.
func extremum(args []*big.Float, sign int) *big.Float {
	r := args[0]
	for _, v := range args[1:] {
		if v.Cmp(r) == sign {
			r = v
		}
	}
	return r
}

// factorial computes v! for non-negative integer v.
func (ctx *Context) factorial(v *big.Float, pos int) (*big.Float, error) {
	if !v.IsInt() || v.Signbit() {
		return nil, &DomainError{X: v, Func: "!"}
	}
	k, acc := v.Int64()
	if acc != big.Exact || k > 100000 {
		return nil, &DomainError{X: v, Func: "!"}
	}
	f := new(big.Int).MulRange(1, k)
	return ctx.new().SetInt(f), nil
}

// EvalError is an error for a tree that cannot be evaluated: an equation
// node, a wrong argument count, or an invalid node.
type EvalError struct {
	// Pos is the byte offset of the offending node's token.
	Pos int
	// Msg describes the problem.
	Msg string
}

func (err *EvalError) Error() string {
	return errpos(err.Pos, err.Msg)
}

func (err *EvalError) Offset() int {
	return err.Pos
}

// NameError is an error from a lookup for a variable that is missing from
// the evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Pos is the byte offset of the identifier.
	Pos int
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	return err.X.String() + " outside domain of " + err.Func
}
