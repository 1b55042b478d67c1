// Package deriv provides the differentiation oracles used by the optimizers.
//
// An oracle turns a function into its derivative function. Forward computes
// exact derivative values with dual and hyperdual numbers, which requires the
// function to be written over those number types. FiniteDifference works on
// any function but only approximates the derivative.
package deriv

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"
)

// ErrNotDifferentiable is returned when an oracle cannot differentiate the
// kind of function it was given.
var ErrNotDifferentiable = errors.New("deriv: function not differentiable by oracle")

// Func is a real-valued function of one real variable.
type Func interface {
	Eval(x float64) float64
}

// Oracle produces derivative functions. The returned function may itself be
// passed back to Derivative for higher orders if the oracle supports it.
type Oracle interface {
	Derivative(f Func) (Func, error)
}

// DualEvaler is a Func that can also be evaluated at a dual number.
type DualEvaler interface {
	Func
	EvalDual(x dual.Number) dual.Number
}

// HyperdualEvaler is a Func that can also be evaluated at a hyperdual number.
type HyperdualEvaler interface {
	DualEvaler
	EvalHyperdual(x hyperdual.Number) hyperdual.Number
}

// Fn adapts an ordinary function to a Func.
type Fn func(x float64) float64

func (f Fn) Eval(x float64) float64 { return f(x) }

// Dual is a function written over dual numbers. Forward can take its first
// derivative.
type Dual func(x dual.Number) dual.Number

func (f Dual) Eval(x float64) float64 { return f(dual.Number{Real: x}).Real }

func (f Dual) EvalDual(x dual.Number) dual.Number { return f(x) }

// Hyperdual is a function written over hyperdual numbers. Forward can take
// its first and second derivatives.
type Hyperdual func(x hyperdual.Number) hyperdual.Number

func (f Hyperdual) Eval(x float64) float64 { return f(hyperdual.Number{Real: x}).Real }

func (f Hyperdual) EvalDual(x dual.Number) dual.Number {
	h := f(hyperdual.Number{Real: x.Real, E1mag: x.Emag})
	return dual.Number{Real: h.Real, Emag: h.E1mag}
}

func (f Hyperdual) EvalHyperdual(x hyperdual.Number) hyperdual.Number { return f(x) }

// VecFunc is a real-valued function of a real vector.
type VecFunc interface {
	Eval(x []float64) float64
}

// Grader stores the gradient of a function at x in grad.
type Grader interface {
	Grad(x, grad []float64)
}

// Hessianer stores the Hessian of a function at x in hess.
type Hessianer interface {
	Hess(x []float64, hess *mat.SymDense)
}

// GradOracle produces gradient functions.
type GradOracle interface {
	Gradient(f VecFunc) (Grader, error)
}

// HessOracle produces Hessian functions.
type HessOracle interface {
	Hessian(f VecFunc) (Hessianer, error)
}

// VecOracle differentiates vector functions to first and second order.
type VecOracle interface {
	GradOracle
	HessOracle
}

// DualVecEvaler is a VecFunc that can also be evaluated at dual numbers.
type DualVecEvaler interface {
	VecFunc
	EvalDual(x []dual.Number) dual.Number
}

// HyperdualVecEvaler is a VecFunc that can also be evaluated at hyperdual
// numbers.
type HyperdualVecEvaler interface {
	DualVecEvaler
	EvalHyperdual(x []hyperdual.Number) hyperdual.Number
}

// VecFn adapts an ordinary function to a VecFunc.
type VecFn func(x []float64) float64

func (f VecFn) Eval(x []float64) float64 { return f(x) }

// DualVec is a vector function written over dual numbers.
type DualVec func(x []dual.Number) dual.Number

func (f DualVec) Eval(x []float64) float64 {
	xd := make([]dual.Number, len(x))
	for i, v := range x {
		xd[i].Real = v
	}
	return f(xd).Real
}

func (f DualVec) EvalDual(x []dual.Number) dual.Number { return f(x) }

// HyperdualVec is a vector function written over hyperdual numbers.
type HyperdualVec func(x []hyperdual.Number) hyperdual.Number

func (f HyperdualVec) Eval(x []float64) float64 {
	xh := make([]hyperdual.Number, len(x))
	for i, v := range x {
		xh[i].Real = v
	}
	return f(xh).Real
}

func (f HyperdualVec) EvalDual(x []dual.Number) dual.Number {
	xh := make([]hyperdual.Number, len(x))
	for i, v := range x {
		xh[i] = hyperdual.Number{Real: v.Real, E1mag: v.Emag}
	}
	h := f(xh)
	return dual.Number{Real: h.Real, Emag: h.E1mag}
}

func (f HyperdualVec) EvalHyperdual(x []hyperdual.Number) hyperdual.Number { return f(x) }
