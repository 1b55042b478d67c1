package univariate

import (
	"github.com/pkg/errors"

	"github.com/btracey/diffopt/deriv"
)

var _ Method = (*Newton)(nil)

// Newton applies Newton's method to the first derivative,
//
//	x ← x − f'(x)/f''(x)
//
// and so finds critical points: minima, maxima and saddles alike. A zero
// second derivative is not guarded against; the division produces ±Inf or
// NaN, which carries into every later iteration.
type Newton struct {
	df  deriv.Func
	ddf deriv.Func
	loc float64
}

func (n *Newton) Init(f deriv.Func, oracle deriv.Oracle, initLoc float64) error {
	df, err := oracle.Derivative(f)
	if err != nil {
		return errors.Wrap(err, "newton: first derivative")
	}
	ddf, err := oracle.Derivative(df)
	if err != nil {
		return errors.Wrap(err, "newton: second derivative")
	}
	n.df = df
	n.ddf = ddf
	n.loc = initLoc
	return nil
}

func (n *Newton) Iterate() (loc, d float64, nEvals int, err error) {
	d = n.df.Eval(n.loc)
	n.loc = n.loc - d/n.ddf.Eval(n.loc)
	return n.loc, d, 2, nil
}

func (*Newton) DefaultIterations() int { return 10 }
