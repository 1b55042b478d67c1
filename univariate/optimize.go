package univariate

import (
	"github.com/pkg/errors"

	"github.com/btracey/diffopt/common"
	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/write"
)

// Method is a univariate optimization method that runs for a fixed number of
// iterations.
type Method interface {
	// Init obtains the derivatives the method needs from the oracle and
	// sets the starting location.
	Init(f deriv.Func, oracle deriv.Oracle, initLoc float64) error
	// Iterate performs one update. It returns the new location, the first
	// derivative the update used, and the number of derivative evaluations.
	Iterate() (loc, d float64, nEvals int, err error)
	// DefaultIterations is used when Settings.Iterations is negative.
	DefaultIterations() int
}

// Minimize runs method on f from initLoc for exactly the configured number
// of iterations and returns the final location. Non-finite values reached
// along the way are not errors; they are returned as found.
//
// If method is nil, gradient descent with default parameters is used. If
// settings is nil, DefaultSettings is used.
func Minimize(f deriv.Func, initLoc float64, settings *Settings, method Method) (*Result, error) {
	if f == nil {
		return nil, errors.New("univariate: objective function is nil")
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
		return nil, errors.Wrap(err, "univariate: error initializing")
	}

	helper := NewHelper()
	if adder, ok := method.(write.DataAdder); ok {
		helper.AddDataAdder(adder)
	}
	if err := helper.Init(cs, cs.ResolveIterations(method.DefaultIterations()), initLoc); err != nil {
		return nil, errors.Wrap(err, "univariate: error writing headers")
	}

	var status common.Status
	for {
		status = helper.Status()
		if status != common.Continue {
			break
		}

		loc, d, nEvals, err := method.Iterate()
		if err != nil {
			return nil, errors.Wrap(err, "univariate: error iterating")
		}
		if err := helper.Iterate(loc, d, nEvals); err != nil {
			return nil, errors.Wrap(err, "univariate: error writing progress")
		}
	}
	return helper.Result(status)
}
