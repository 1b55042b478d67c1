package deriv

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

var (
	_ Oracle    = FiniteDifference{}
	_ VecOracle = FiniteDifference{}
)

// FiniteDifference approximates derivatives with finite difference stencils.
// It accepts any Func or VecFunc. Higher derivatives nest the stencil, so
// each order loses accuracy.
//
// Settings is passed to gonum's diff/fd. If it is nil the central difference
// formula is used. Hessian requires a first derivative formula.
type FiniteDifference struct {
	Settings *fd.Settings
}

func (o FiniteDifference) settings() *fd.Settings {
	if o.Settings != nil {
		return o.Settings
	}
	return &fd.Settings{Formula: fd.Central}
}

func (o FiniteDifference) Derivative(f Func) (Func, error) {
	if f == nil {
		return nil, errors.New("finite difference: nil function")
	}
	s := o.settings()
	return Fn(func(x float64) float64 {
		return fd.Derivative(f.Eval, x, s)
	}), nil
}

func (o FiniteDifference) Gradient(f VecFunc) (Grader, error) {
	if f == nil {
		return nil, errors.New("finite difference: nil function")
	}
	return fdGrad{f: f, settings: o.settings()}, nil
}

func (o FiniteDifference) Hessian(f VecFunc) (Hessianer, error) {
	if f == nil {
		return nil, errors.New("finite difference: nil function")
	}
	return fdHess{f: f, settings: o.settings()}, nil
}

type fdGrad struct {
	f        VecFunc
	settings *fd.Settings
}

func (g fdGrad) Grad(x, grad []float64) {
	if len(grad) != len(x) {
		panic("deriv: dimension mismatch")
	}
	fd.Gradient(grad, g.f.Eval, x, g.settings)
}

type fdHess struct {
	f        VecFunc
	settings *fd.Settings
}

func (h fdHess) Hess(x []float64, hess *mat.SymDense) {
	fd.Hessian(hess, h.f.Eval, x, h.settings)
}
