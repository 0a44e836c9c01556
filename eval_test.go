package texpr_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/punchadam/texpr"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"add", "1 + 2", 3},
		{"precedence", "2 + 3 * 4", 14},
		{"pow", "2 ^ 10", 1024},
		{"pow-right", "2 ^ 3 ^ 2", 512},
		{"neg", "-(2 + 3)", -5},
		{"frac", `\frac{1}{2} + \frac{1}{3}`, 5.0 / 6},
		{"frac-neg", `\frac{-2}{4}`, -0.5},
		{"frac-neg-den", `\frac{2}{-4}`, -0.5},
		{"sqrt", `\sqrt{4}`, 2},
		{"sqrt-implicit", `2\sqrt{9}`, 6},
		{"cdot", `3 \cdot 4`, 12},
		{"divcmd", `8 \div 2`, 4},
		{"pi", `2\pi`, 2 * math.Pi},
		{"e", `\ln{\e}`, 1},
		{"sin", `\sin{0}`, 0},
		{"cos", `\cos(0)`, 1},
		{"tan-bare", `\tan 0`, 0},
		{"sin-scope", `\sin \pi^0`, math.Sin(1)}, // sin(pi^0), not sin(pi)^0
		{"exp", `\exp{1}`, math.E},
		{"log", `\log{100}`, 2},
		{"max", `\operatorname{max}(1, 5, 3)`, 5},
		{"min", `\operatorname{min}(1, 5, 3)`, 1},
		{"abs", `\operatorname{abs}(-3)`, 3},
		{"hypot", `\operatorname{hypot}(3, 4)`, 5},
		{"atan2", `\operatorname{atan2}(1, 1)`, math.Pi / 4},
		{"factorial", "5!", 120},
		{"factorial-zero", "0!", 1},
		{"decimal", "3.25 * 4", 13},
		{"exponent", "1e-2 * 100", 1},
		{"leftright", `\left( 1 + 2 \right) * 3`, 9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := texpr.EvalString(c.src, 64)
			require.NoError(t, err)
			got, _ := r.Float64()
			require.InDelta(t, c.want, got, 1e-12, "evaluating %q", c.src)
		})
	}
}

func TestEvalVariables(t *testing.T) {
	tree, err := texpr.Parse("x^2 + x + 1")
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, tree.Vars())

	ctx := texpr.NewContext(64)
	ctx.Set("x", big.NewFloat(3))
	r, err := ctx.Eval(tree)
	require.NoError(t, err)
	got, _ := r.Float64()
	require.Equal(t, 13.0, got)

	// The same tree evaluates again with a new binding.
	ctx.Set("x", big.NewFloat(-1))
	r, err = ctx.Eval(tree)
	require.NoError(t, err)
	got, _ = r.Float64()
	require.Equal(t, 1.0, got)

	require.Nil(t, ctx.Lookup("y"))
	require.NotNil(t, ctx.Lookup("x"))
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"unbound", "x + 1", &texpr.NameError{}},
		{"equation", "1 = 2", &texpr.EvalError{}},
		{"zero-denominator", `\frac{1}{0}`, &texpr.EvalError{}},
		{"neg-pow", `(-1) ^ \frac{1}{2}`, &texpr.DomainError{}},
		{"ln-neg", `\ln{-1}`, &texpr.DomainError{}},
		{"log-zero", `\log{0}`, &texpr.DomainError{}},
		{"zero-div-zero", "0 / 0", &texpr.DomainError{}},
		{"frac-factorial", "3.5!", &texpr.DomainError{}},
		{"neg-factorial", "(-2)!", &texpr.DomainError{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := texpr.EvalString(c.src, 64)
			require.Error(t, err)
			require.IsType(t, c.err, err, "evaluating %q", c.src)
		})
	}
}

func TestEvalPrecision(t *testing.T) {
	// 1/3 at 256 bits should be much closer to one third than float64 is.
	r, err := texpr.EvalString(`\frac{1}{3}`, 256)
	require.NoError(t, err)
	three := new(big.Float).SetPrec(256).SetInt64(3)
	r.Mul(r, three)
	one := new(big.Float).SetPrec(256).SetInt64(1)
	d := new(big.Float).Sub(r, one)
	d.Abs(d)
	require.True(t, d.Cmp(big.NewFloat(1e-70)) < 0, "error %v too large", d)
}
