package multivariate

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/write"
)

var _ Method = (*GradientDescent)(nil)

// GradientDescent steps against the gradient with a decaying step size:
//
//	x ← x − ∇f(x)·step
//	step ← step·Decay
type GradientDescent struct {
	Step  float64 // Step size of the first iteration
	Decay float64 // Factor applied to the step after every iteration

	grad deriv.Grader
	loc  []float64
	step float64
}

// NewGradientDescent returns gradient descent with step 0.1 and decay 0.995.
func NewGradientDescent() *GradientDescent {
	return &GradientDescent{
		Step:  0.1,
		Decay: 0.995,
	}
}

func (g *GradientDescent) Init(f deriv.VecFunc, oracle deriv.VecOracle, initLoc []float64) error {
	grad, err := oracle.Gradient(f)
	if err != nil {
		return errors.Wrap(err, "gradient descent: gradient")
	}
	g.grad = grad
	g.loc = append(g.loc[:0], initLoc...)
	g.step = g.Step
	return nil
}

func (g *GradientDescent) Iterate(loc, grad []float64) (nEvals int, err error) {
	if len(loc) != len(g.loc) || len(grad) != len(g.loc) {
		panic("dimension mismatch")
	}
	g.grad.Grad(g.loc, grad)
	floats.AddScaled(g.loc, -g.step, grad)
	g.step *= g.Decay
	copy(loc, g.loc)
	return 1, nil
}

// CurrentStep is the step size the next iteration will use.
func (g *GradientDescent) CurrentStep() float64 {
	return g.step
}

func (*GradientDescent) DefaultIterations() int { return 100 }

func (g *GradientDescent) AppendWriteData(v []*write.Value) []*write.Value {
	return append(v, &write.Value{Heading: "Step", Value: g.step})
}
