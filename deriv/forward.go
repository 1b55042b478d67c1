package deriv

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	_ Oracle    = Forward{}
	_ VecOracle = Forward{}
)

// Forward is a forward-mode automatic differentiation oracle.
//
// The derivative of a Hyperdual function can be differentiated again, giving
// the second derivative. The derivative of a Dual function is a plain Func.
// Gradients need a DualVec or HyperdualVec, Hessians need a HyperdualVec.
type Forward struct{}

func (Forward) Derivative(f Func) (Func, error) {
	switch f := f.(type) {
	case HyperdualEvaler:
		return hyperdualDeriv{f: f}, nil
	case DualEvaler:
		return dualDeriv{f: f}, nil
	}
	return nil, errors.Wrapf(ErrNotDifferentiable, "forward: %T is not dual-evaluable", f)
}

func (Forward) Gradient(f VecFunc) (Grader, error) {
	df, ok := f.(DualVecEvaler)
	if !ok {
		return nil, errors.Wrapf(ErrNotDifferentiable, "forward: %T is not dual-evaluable", f)
	}
	return dualGrad{f: df}, nil
}

func (Forward) Hessian(f VecFunc) (Hessianer, error) {
	hf, ok := f.(HyperdualVecEvaler)
	if !ok {
		return nil, errors.Wrapf(ErrNotDifferentiable, "forward: %T is not hyperdual-evaluable", f)
	}
	return hyperdualHess{f: hf}, nil
}

// hyperdualDeriv is the first derivative of a hyperdual function. Seeding
// ε₁ with 1 and ε₂ with b gives
//
//	f(x + ε₁ + bε₂) = f(x) + f'(x)ε₁ + bf'(x)ε₂ + bf''(x)ε₁ε₂
//
// so the derivative can itself be evaluated at the dual number x + bε.
type hyperdualDeriv struct {
	f HyperdualEvaler
}

func (d hyperdualDeriv) Eval(x float64) float64 {
	return d.f.EvalHyperdual(hyperdual.Number{Real: x, E1mag: 1}).E1mag
}

func (d hyperdualDeriv) EvalDual(x dual.Number) dual.Number {
	h := d.f.EvalHyperdual(hyperdual.Number{Real: x.Real, E1mag: 1, E2mag: x.Emag})
	return dual.Number{Real: h.E1mag, Emag: h.E1E2mag}
}

type dualDeriv struct {
	f DualEvaler
}

func (d dualDeriv) Eval(x float64) float64 {
	return d.f.EvalDual(dual.Number{Real: x, Emag: 1}).Emag
}

// dualGrad makes one dual pass per coordinate.
type dualGrad struct {
	f DualVecEvaler
}

func (g dualGrad) Grad(x, grad []float64) {
	if len(grad) != len(x) {
		panic("deriv: dimension mismatch")
	}
	xd := make([]dual.Number, len(x))
	for i, v := range x {
		xd[i].Real = v
	}
	for i := range xd {
		xd[i].Emag = 1
		grad[i] = g.f.EvalDual(xd).Emag
		xd[i].Emag = 0
	}
}

// hyperdualHess makes one hyperdual pass per upper-triangular entry.
type hyperdualHess struct {
	f HyperdualVecEvaler
}

func (h hyperdualHess) Hess(x []float64, hess *mat.SymDense) {
	n := len(x)
	if hess.SymmetricDim() != n {
		panic("deriv: dimension mismatch")
	}
	xh := make([]hyperdual.Number, n)
	for i, v := range x {
		xh[i].Real = v
	}
	for i := 0; i < n; i++ {
		xh[i].E1mag = 1
		for j := i; j < n; j++ {
			xh[j].E2mag = 1
			hess.SetSym(i, j, h.f.EvalHyperdual(xh).E1E2mag)
			xh[j].E2mag = 0
		}
		xh[i].E1mag = 0
	}
}
