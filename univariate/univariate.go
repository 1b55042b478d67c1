package univariate

import (
	"math"

	"github.com/btracey/diffopt/common"
	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/write"
)

// Settings is a structure containing settings for univariate optimizers.
type Settings struct {
	*common.Settings

	// Oracle differentiates the objective. If nil, deriv.Forward is used.
	Oracle deriv.Oracle
}

// DefaultSettings returns the default settings for univariate optimizers:
// the method's default iteration count, forward-mode derivatives and no
// output.
func DefaultSettings() *Settings {
	return &Settings{
		Settings: common.DefaultSettings(),
		Oracle:   deriv.Forward{},
	}
}

// Helper is a helper struct for optimizers. Not intended for use by
// callers of optimization functions, but exported to aid others who are building
// optimization algorithms
//
// Implementers should call Init() at the beginning of an optimization run,
// Status() before every iteration and Iterate() at the end of every
// iteration.
type Helper struct {
	*common.Common

	locCurr   float64
	derivCurr float64
}

// NewHelper creates a new Helper and adds itself to the data adders
func NewHelper() *Helper {
	u := &Helper{
		Common: common.NewCommon(),
	}
	u.AddDataAdder(u)
	return u
}

func (u *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "Loc", Value: u.locCurr})
	v = append(v, &write.Value{Heading: "Deriv", Value: u.derivCurr})
	return v
}

func (u *Helper) Init(s *common.Settings, maxIter int, initLoc float64) error {
	u.locCurr = initLoc
	u.derivCurr = math.NaN()
	return u.Common.Init(s, maxIter)
}

func (u *Helper) Iterate(loc, d float64, nEvals int) error {
	u.locCurr = loc
	u.derivCurr = d
	return u.Common.Iterate(nEvals)
}

func (u *Helper) Result(status common.Status) (*Result, error) {
	r, err := u.Common.Result(status)
	if err != nil {
		return nil, err
	}
	return &Result{
		Result: r,
		Loc:    u.locCurr,
		Deriv:  u.derivCurr,
	}, nil
}

type Result struct {
	*common.Result
	Loc   float64 // Location after the last iteration
	Deriv float64 // First derivative used by the last update. NaN if no iteration ran
}
