package multivariate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/btracey/diffopt/common"
	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/write"
)

// Settings is a structure containing settings for multivariate
// optimizers.
type Settings struct {
	*common.Settings

	// Oracle supplies gradients and Hessians. If nil, deriv.Forward is used.
	Oracle deriv.VecOracle
}

// DefaultSettings returns the default settings for multivariate optimizers:
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

	locCurr  []float64
	gradCurr []float64
	gradNrm  float64
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
	v = append(v, &write.Value{Heading: "GradNorm", Value: u.gradNrm})
	return v
}

func (u *Helper) Init(s *common.Settings, maxIter int, initLoc []float64) error {
	u.locCurr = append(u.locCurr[:0], initLoc...)
	u.gradCurr = nil
	u.gradNrm = math.NaN()
	return u.Common.Init(s, maxIter)
}

// Iterate copies loc and grad.
func (u *Helper) Iterate(loc, grad []float64, nEvals int) error {
	u.locCurr = append(u.locCurr[:0], loc...)
	u.gradCurr = append(u.gradCurr[:0], grad...)
	u.gradNrm = floats.Norm(grad, 2)
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
		Grad:   u.gradCurr,
	}, nil
}

type Result struct {
	*common.Result
	Loc  []float64 // Location after the last iteration
	Grad []float64 // Gradient used by the last update. nil if no iteration ran
}
