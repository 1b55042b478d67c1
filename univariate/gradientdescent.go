package univariate

import (
	"github.com/pkg/errors"

	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/write"
)

var _ Method = (*GradientDescent)(nil)

// GradientDescent steps against the derivative with a decaying step size:
//
//	x ← x − f'(x)·step
//	step ← step·Decay
//
// After i iterations the step is Step·Decayⁱ.
type GradientDescent struct {
	Step  float64 // Step size of the first iteration
	Decay float64 // Factor applied to the step after every iteration

	df   deriv.Func
	loc  float64
	step float64
}

// NewGradientDescent returns gradient descent with step 0.1 and decay 0.995.
func NewGradientDescent() *GradientDescent {
	return &GradientDescent{
		Step:  0.1,
		Decay: 0.995,
	}
}

func (g *GradientDescent) Init(f deriv.Func, oracle deriv.Oracle, initLoc float64) error {
	df, err := oracle.Derivative(f)
	if err != nil {
		return errors.Wrap(err, "gradient descent: derivative")
	}
	g.df = df
	g.loc = initLoc
	g.step = g.Step
	return nil
}

func (g *GradientDescent) Iterate() (loc, d float64, nEvals int, err error) {
	d = g.df.Eval(g.loc)
	g.loc -= d * g.step
	g.step *= g.Decay
	return g.loc, d, 1, nil
}

// CurrentStep is the step size the next iteration will use.
func (g *GradientDescent) CurrentStep() float64 {
	return g.step
}

func (*GradientDescent) DefaultIterations() int { return 100 }

func (g *GradientDescent) AppendWriteData(v []*write.Value) []*write.Value {
	return append(v, &write.Value{Heading: "Step", Value: g.step})
}
