package multivariate

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/btracey/diffopt/deriv"
)

var _ Method = (*Newton)(nil)

// Newton finds a critical point of f by solving
//
//	H(x)·d = ∇f(x),  x ← x − d
//
// at every iteration, where H is the Hessian. It does not modify H, so it
// converges to maxima and saddles as readily as to minima. An
// ill-conditioned H is used as is; an exactly singular H gives a NaN step.
type Newton struct {
	grad deriv.Grader
	hess deriv.Hessianer

	loc []float64
	h   *mat.SymDense
	dir *mat.VecDense
}

func (n *Newton) Init(f deriv.VecFunc, oracle deriv.VecOracle, initLoc []float64) error {
	grad, err := oracle.Gradient(f)
	if err != nil {
		return errors.Wrap(err, "newton: gradient")
	}
	hess, err := oracle.Hessian(f)
	if err != nil {
		return errors.Wrap(err, "newton: hessian")
	}
	dim := len(initLoc)
	n.grad = grad
	n.hess = hess
	n.loc = append(n.loc[:0], initLoc...)
	n.h = mat.NewSymDense(dim, nil)
	n.dir = mat.NewVecDense(dim, nil)
	return nil
}

func (n *Newton) Iterate(loc, grad []float64) (nEvals int, err error) {
	dim := len(n.loc)
	if len(loc) != dim || len(grad) != dim {
		panic("dimension mismatch")
	}
	n.grad.Grad(n.loc, grad)
	n.hess.Hess(n.loc, n.h)

	err = n.dir.SolveVec(n.h, mat.NewVecDense(dim, grad))
	var cond mat.Condition
	switch {
	case err == nil:
	case errors.Is(err, mat.ErrSingular),
		errors.As(err, &cond) && math.IsInf(float64(cond), 1):
		for i := 0; i < dim; i++ {
			n.dir.SetVec(i, math.NaN())
		}
	case errors.As(err, &cond):
		// Finite condition number: the step is usable.
	default:
		return 0, errors.Wrap(err, "newton: solving for step")
	}

	floats.Sub(n.loc, n.dir.RawVector().Data)
	copy(loc, n.loc)
	return 2, nil
}

func (*Newton) DefaultIterations() int { return 10 }
