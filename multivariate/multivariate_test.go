package multivariate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/btracey/diffopt/deriv"
)

// Bowl is the least squares objective ‖Ax − b‖².
type Bowl struct {
	A *mat.Dense
	B *mat.VecDense
}

func NewBowl(m, n int, seed int64) *Bowl {
	rnd := rand.New(rand.NewSource(seed))
	b := &Bowl{
		A: mat.NewDense(m, n, nil),
		B: mat.NewVecDense(m, nil),
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			b.A.Set(i, j, rnd.Float64())
		}
		b.B.SetVec(i, float64(i*i)/10)
	}
	return b
}

func (b *Bowl) Func() deriv.HyperdualVec {
	m, n := b.A.Dims()
	return func(x []hyperdual.Number) hyperdual.Number {
		var loss hyperdual.Number
		for i := 0; i < m; i++ {
			r := hyperdual.Number{Real: -b.B.AtVec(i)}
			for j := 0; j < n; j++ {
				r = hyperdual.Add(r, hyperdual.Scale(b.A.At(i, j), x[j]))
			}
			loss = hyperdual.Add(loss, hyperdual.Mul(r, r))
		}
		return loss
	}
}

func (b *Bowl) OptLoc() []float64 {
	var x mat.VecDense
	if err := x.SolveVec(b.A, b.B); err != nil {
		panic(err)
	}
	return x.RawVector().Data
}

// countingOracle counts how often derivatives are requested.
type countingOracle struct {
	deriv.VecOracle
	gradients int
	hessians  int
}

func (c *countingOracle) Gradient(f deriv.VecFunc) (deriv.Grader, error) {
	c.gradients++
	return c.VecOracle.Gradient(f)
}

func (c *countingOracle) Hessian(f deriv.VecFunc) (deriv.Hessianer, error) {
	c.hessians++
	return c.VecOracle.Hessian(f)
}

func settingsWith(oracle deriv.VecOracle, iterations int) *Settings {
	s := DefaultSettings()
	s.Oracle = oracle
	s.Iterations = iterations
	return s
}

func TestExactIterationCount(t *testing.T) {
	f := NewBowl(10, 3, 1).Func()
	start := []float64{2, 2, 2}
	for _, niter := range []int{0, 1, 13} {
		oracle := &countingOracle{VecOracle: deriv.Forward{}}
		result, err := Minimize(f, start, settingsWith(oracle, niter), &GradientDescent{Step: 0.01, Decay: 1})
		require.NoError(t, err)
		assert.Equal(t, niter, result.Iterations)
		assert.Equal(t, niter, result.Evaluations)
		assert.Equal(t, 1, oracle.gradients)
		assert.Equal(t, 0, oracle.hessians)

		oracle = &countingOracle{VecOracle: deriv.Forward{}}
		result, err = Minimize(f, start, settingsWith(oracle, niter), &Newton{})
		require.NoError(t, err)
		assert.Equal(t, niter, result.Iterations)
		assert.Equal(t, 2*niter, result.Evaluations)
		assert.Equal(t, 1, oracle.gradients)
		assert.Equal(t, 1, oracle.hessians)
	}
	assert.Equal(t, []float64{2, 2, 2}, start, "initial location modified")
}

func TestGradientDescentDecreases(t *testing.T) {
	f := NewBowl(10, 3, 2).Func()
	gd := &GradientDescent{Step: 0.01, Decay: 1}
	require.NoError(t, gd.Init(f, deriv.Forward{}, []float64{2, -1, 3}))

	loc := make([]float64, 3)
	grad := make([]float64, 3)
	prev := f.Eval([]float64{2, -1, 3})
	for i := 0; i < 100; i++ {
		_, err := gd.Iterate(loc, grad)
		require.NoError(t, err)
		obj := f.Eval(loc)
		if obj > prev {
			t.Fatalf("objective increased at iteration %d: %v > %v", i, obj, prev)
		}
		prev = obj
	}
}

func TestStepDecay(t *testing.T) {
	gd := &GradientDescent{Step: 0.01, Decay: 0.99}
	require.NoError(t, gd.Init(NewBowl(5, 2, 3).Func(), deriv.Forward{}, []float64{0, 0}))
	loc := make([]float64, 2)
	grad := make([]float64, 2)
	for i := 1; i <= 25; i++ {
		_, err := gd.Iterate(loc, grad)
		require.NoError(t, err)
		assert.InEpsilon(t, 0.01*math.Pow(0.99, float64(i)), gd.CurrentStep(), 1e-12)
	}
}

func TestNewtonSolvesLeastSquares(t *testing.T) {
	smallStep := deriv.FiniteDifference{Settings: &fd.Settings{Formula: fd.Central, Step: 1e-3}}
	bowl := NewBowl(10, 3, 4)
	want := bowl.OptLoc()
	for _, test := range []struct {
		name string
		s    *Settings
		f    deriv.VecFunc
		tol  float64
	}{
		{"forward", settingsWith(deriv.Forward{}, 1), bowl.Func(), 1e-8},
		{"finite", settingsWith(smallStep, 1), deriv.VecFn(bowl.Func().Eval), 1e-5},
	} {
		result, err := Minimize(test.f, []float64{2, 2, 2}, test.s, &Newton{})
		require.NoError(t, err, test.name)
		if !floats.EqualApprox(result.Loc, want, test.tol) {
			t.Errorf("%s: want %v after one iteration, got %v", test.name, want, result.Loc)
		}
	}
}

func TestNewtonSingularHessian(t *testing.T) {
	// x0² + x1 has Hessian diag(2, 0).
	f := deriv.HyperdualVec(func(x []hyperdual.Number) hyperdual.Number {
		return hyperdual.Add(hyperdual.Mul(x[0], x[0]), x[1])
	})
	for _, niter := range []int{1, 3} {
		result, err := Minimize(f, []float64{1, 1}, settingsWith(deriv.Forward{}, niter), &Newton{})
		require.NoError(t, err)
		assert.Equal(t, niter, result.Iterations)
		for i, v := range result.Loc {
			assert.True(t, math.IsNaN(v), "niter %d: loc[%d] = %v, want NaN", niter, i, v)
		}
	}
}

func TestNewtonIllConditionedHessian(t *testing.T) {
	// x0² + 5e-18·x1² has Hessian diag(2, 1e-17): badly conditioned but
	// not singular, so the step is still taken.
	f := deriv.HyperdualVec(func(x []hyperdual.Number) hyperdual.Number {
		return hyperdual.Add(hyperdual.Mul(x[0], x[0]), hyperdual.Scale(5e-18, hyperdual.Mul(x[1], x[1])))
	})
	result, err := Minimize(f, []float64{1, 1}, settingsWith(deriv.Forward{}, 1), &Newton{})
	require.NoError(t, err)
	assert.InDelta(t, 0, result.Loc[0], 1e-12)
	assert.InDelta(t, 0, result.Loc[1], 1e-6)
}

func TestDeterministic(t *testing.T) {
	f := NewBowl(8, 2, 5).Func()
	for _, method := range []func() Method{
		func() Method { return &GradientDescent{Step: 0.01, Decay: 0.99} },
		func() Method { return &Newton{} },
	} {
		first, err := Minimize(f, []float64{1, 1}, settingsWith(deriv.Forward{}, 50), method())
		require.NoError(t, err)
		second, err := Minimize(f, []float64{1, 1}, settingsWith(deriv.Forward{}, 50), method())
		require.NoError(t, err)
		assert.Equal(t, first.Loc, second.Loc)
	}
}

func TestMinimizeErrors(t *testing.T) {
	_, err := Minimize(nil, []float64{1}, nil, nil)
	assert.Error(t, err)

	_, err = Minimize(NewBowl(3, 2, 1).Func(), nil, nil, nil)
	assert.Error(t, err)

	plain := deriv.VecFn(func(x []float64) float64 { return x[0] * x[0] })
	_, err = Minimize(plain, []float64{1}, nil, &Newton{})
	assert.ErrorIs(t, err, deriv.ErrNotDifferentiable)

	result, err := Minimize(plain, []float64{1}, settingsWith(deriv.FiniteDifference{}, 5), nil)
	require.NoError(t, err)
	assert.Len(t, result.Loc, 1)
}
