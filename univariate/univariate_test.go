package univariate

import (
	"bytes"
	"encoding/csv"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/btracey/diffopt/common"
	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/functions"
	"github.com/btracey/diffopt/write"
)

// quadratic is (x-b)² + c.
type quadratic struct {
	b float64
	c float64
}

func (q quadratic) Eval(x float64) float64 {
	return (x-q.b)*(x-q.b) + q.c
}

func (q quadratic) OptLoc() float64 { return q.b }

// analytic hands out known derivatives in order and counts how often they
// are evaluated.
type analytic struct {
	derivs []func(float64) float64
	calls  int
	evals  int
}

func (a *analytic) Derivative(deriv.Func) (deriv.Func, error) {
	if a.calls >= len(a.derivs) {
		return nil, errors.New("analytic: no derivative of that order")
	}
	d := a.derivs[a.calls]
	a.calls++
	return deriv.Fn(func(x float64) float64 {
		a.evals++
		return d(x)
	}), nil
}

func quadraticOracle(q quadratic) *analytic {
	return &analytic{derivs: []func(float64) float64{
		func(x float64) float64 { return 2 * (x - q.b) },
		func(float64) float64 { return 2 },
	}}
}

func settingsWith(oracle deriv.Oracle, iterations int) *Settings {
	s := DefaultSettings()
	s.Oracle = oracle
	s.Iterations = iterations
	return s
}

func TestExactIterationCount(t *testing.T) {
	q := quadratic{b: 3, c: 5}
	for _, niter := range []int{0, 1, 7, 100} {
		oracle := quadraticOracle(q)
		result, err := Minimize(q, -7, settingsWith(oracle, niter), NewGradientDescent())
		require.NoError(t, err)
		assert.Equal(t, niter, result.Iterations)
		assert.Equal(t, niter, result.Evaluations)
		assert.Equal(t, niter, oracle.evals, "gradient descent derivative evaluations")
		assert.Equal(t, 1, oracle.calls, "derivative must be built once")

		oracle = quadraticOracle(q)
		result, err = Minimize(q, -7, settingsWith(oracle, niter), &Newton{})
		require.NoError(t, err)
		assert.Equal(t, niter, result.Iterations)
		assert.Equal(t, 2*niter, result.Evaluations)
		assert.Equal(t, 2*niter, oracle.evals, "newton derivative evaluations")
		assert.Equal(t, 2, oracle.calls)
	}
}

func TestZeroIterationsReturnsStart(t *testing.T) {
	result, err := Minimize(quadratic{b: 3}, -7, settingsWith(quadraticOracle(quadratic{b: 3}), 0), nil)
	require.NoError(t, err)
	assert.Equal(t, -7.0, result.Loc)
	assert.True(t, math.IsNaN(result.Deriv))
}

func TestDefaultIterations(t *testing.T) {
	q := quadratic{b: 1}
	result, err := Minimize(q, 0, settingsWith(quadraticOracle(q), -1), NewGradientDescent())
	require.NoError(t, err)
	assert.Equal(t, 100, result.Iterations)

	result, err = Minimize(q, 0, settingsWith(quadraticOracle(q), -1), &Newton{})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Iterations)
}

func TestGradientDescentMonotone(t *testing.T) {
	f := functions.Quadratic(0)
	for _, x0 := range []float64{-3, 0.5, 10, 1e6} {
		gd := &GradientDescent{Step: 0.1, Decay: 1}
		require.NoError(t, gd.Init(f, deriv.Forward{}, x0))
		prev := f.Eval(x0)
		for i := 0; i < 50; i++ {
			loc, _, _, err := gd.Iterate()
			require.NoError(t, err)
			obj := f.Eval(loc)
			if obj > prev {
				t.Fatalf("x0 = %v: objective increased at iteration %d: %v > %v", x0, i, obj, prev)
			}
			prev = obj
		}
	}
}

func TestStepDecay(t *testing.T) {
	gd := &GradientDescent{Step: 0.3, Decay: 0.9}
	require.NoError(t, gd.Init(functions.Quadratic(2), deriv.Forward{}, 0))
	assert.Equal(t, 0.3, gd.CurrentStep())
	for i := 1; i <= 40; i++ {
		_, _, _, err := gd.Iterate()
		require.NoError(t, err)
		want := 0.3 * math.Pow(0.9, float64(i))
		if !scalar.EqualWithinRel(gd.CurrentStep(), want, 1e-12) {
			t.Errorf("step after %d iterations: want %v, got %v", i, want, gd.CurrentStep())
		}
	}
}

func TestNewtonExactOnQuadratics(t *testing.T) {
	for _, c := range []float64{-2, 0, 3.5, 1e3} {
		for _, x0 := range []float64{-10, 0.1, 7} {
			result, err := Minimize(functions.Quadratic(c), x0, settingsWith(deriv.Forward{}, 1), &Newton{})
			require.NoError(t, err)
			if !scalar.EqualWithinAbsOrRel(result.Loc, c, 1e-12, 1e-12) {
				t.Errorf("c = %v, x0 = %v: want %v after one iteration, got %v", c, x0, c, result.Loc)
			}
		}
	}
}

func TestNewtonZeroSecondDerivative(t *testing.T) {
	cube := deriv.Hyperdual(func(x hyperdual.Number) hyperdual.Number {
		return hyperdual.Mul(x, hyperdual.Mul(x, x))
	})
	result, err := Minimize(cube, 0, settingsWith(deriv.Forward{}, 1), &Newton{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(result.Loc), "0/0 should give NaN, got %v", result.Loc)

	line := deriv.Hyperdual(func(x hyperdual.Number) hyperdual.Number { return x })
	result, err = Minimize(line, 1, settingsWith(deriv.Forward{}, 1), &Newton{})
	require.NoError(t, err)
	assert.True(t, math.IsInf(result.Loc, -1), "1/0 should give -Inf, got %v", result.Loc)

	result, err = Minimize(line, 1, settingsWith(deriv.Forward{}, 5), &Newton{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(result.Loc) || math.IsInf(result.Loc, 0))
}

func TestDeterministic(t *testing.T) {
	for _, method := range []func() Method{
		func() Method { return NewGradientDescent() },
		func() Method { return &Newton{} },
	} {
		s := settingsWith(deriv.Forward{}, 200)
		first, err := Minimize(functions.DampedSine, 0.013, s, method())
		require.NoError(t, err)
		second, err := Minimize(functions.DampedSine, 0.013, s, method())
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(first.Loc), math.Float64bits(second.Loc))
	}
}

func TestMethodReuse(t *testing.T) {
	gd := NewGradientDescent()
	s := settingsWith(deriv.Forward{}, 30)
	first, err := Minimize(functions.DampedSine, 0.02, s, gd)
	require.NoError(t, err)
	second, err := Minimize(functions.DampedSine, 0.02, s, gd)
	require.NoError(t, err)
	assert.Equal(t, first.Loc, second.Loc)
	assert.Equal(t, first.Evaluations, second.Evaluations)
}

func TestDampedSineMinimum(t *testing.T) {
	const opt = -0.35379286224887724
	for _, x0 := range []float64{-0.05, 0, 0.05} {
		result, err := Minimize(functions.DampedSine, x0, settingsWith(deriv.Forward{}, 200), NewGradientDescent())
		require.NoError(t, err)
		assert.InDelta(t, opt, result.Loc, 1e-3, "gradient descent from %v", x0)

		result, err = Minimize(functions.DampedSine, x0, settingsWith(deriv.Forward{}, 10), &Newton{})
		require.NoError(t, err)
		assert.InDelta(t, opt, result.Loc, 1e-9, "newton from %v", x0)

		result, err = Minimize(deriv.Fn(functions.DampedSine.Eval), x0, settingsWith(deriv.FiniteDifference{}, 10), &Newton{})
		require.NoError(t, err)
		assert.InDelta(t, opt, result.Loc, 1e-5, "finite difference newton from %v", x0)
	}
}

func TestMinimizeErrors(t *testing.T) {
	_, err := Minimize(nil, 0, nil, nil)
	assert.Error(t, err)

	_, err = Minimize(deriv.Fn(math.Sin), 0, nil, nil)
	assert.ErrorIs(t, err, deriv.ErrNotDifferentiable)

	_, err = Minimize(deriv.Fn(math.Sin), 0, settingsWith(&analytic{}, 3), &Newton{})
	assert.Error(t, err)
}

func TestMinimizeWithoutWriteSettings(t *testing.T) {
	s := &Settings{Settings: &common.Settings{Iterations: 3}}
	result, err := Minimize(functions.Quadratic(1), 0, s, NewGradientDescent())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Iterations)
}

func TestProgressLog(t *testing.T) {
	var buf bytes.Buffer
	s := settingsWith(deriv.Forward{}, 3)
	s.DisplayWriters = []write.Writer{{Writer: &buf, T: write.Logger}}

	_, err := Minimize(functions.Quadratic(1), 0, s, NewGradientDescent())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Iter", "Evals", "Loc", "Deriv", "Step"}, records[0])
	assert.Equal(t, "3", records[3][0])
	assert.Equal(t, "3", records[3][1])
}
