package multivariate

import (
	"github.com/pkg/errors"

	"github.com/btracey/diffopt/common"
	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/write"
)

// Method is a multivariate optimization method that runs for a fixed number
// of iterations.
type Method interface {
	// Init obtains the derivatives the method needs from the oracle and
	// copies the starting location.
	Init(f deriv.VecFunc, oracle deriv.VecOracle, initLoc []float64) error
	// Iterate performs one update. The new location is stored in loc and
	// the gradient the update used in grad.
	Iterate(loc, grad []float64) (nEvals int, err error)
	// DefaultIterations is used when Settings.Iterations is negative.
	DefaultIterations() int
}

// Minimize runs method on f from initLoc for exactly the configured number
// of iterations. initLoc is not modified. Non-finite values reached along
// the way are not errors; they are returned as found.
//
// If method is nil, gradient descent with default parameters is used. If
// settings is nil, DefaultSettings is used.
func Minimize(f deriv.VecFunc, initLoc []float64, settings *Settings, method Method) (*Result, error) {
	if f == nil {
		return nil, errors.New("multivariate: objective function is nil")
	}
	if len(initLoc) == 0 {
		return nil, errors.New("multivariate: empty initial location")
	}
	if method == nil {
		method = NewGradientDescent()
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	cs := settings.Settings
	if cs == nil {
		cs = common.DefaultSettings()
	}
	oracle := settings.Oracle
	if oracle == nil {
		oracle = deriv.Forward{}
	}

	if err := method.Init(f, oracle, initLoc); err != nil {
		return nil, errors.Wrap(err, "multivariate: error initializing")
	}

	helper := NewHelper()
	if adder, ok := method.(write.DataAdder); ok {
		helper.AddDataAdder(adder)
	}
	if err := helper.Init(cs, cs.ResolveIterations(method.DefaultIterations()), initLoc); err != nil {
		return nil, errors.Wrap(err, "multivariate: error writing headers")
	}

	loc := make([]float64, len(initLoc))
	grad := make([]float64, len(initLoc))

	var status common.Status
	for {
		status = helper.Status()
		if status != common.Continue {
			break
		}

		nEvals, err := method.Iterate(loc, grad)
		if err != nil {
			return nil, errors.Wrap(err, "multivariate: error iterating")
		}
		if err := helper.Iterate(loc, grad, nEvals); err != nil {
			return nil, errors.Wrap(err, "multivariate: error writing progress")
		}
	}
	return helper.Result(status)
}
