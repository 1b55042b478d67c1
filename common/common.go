package common

import (
	"time"

	"github.com/btracey/diffopt/write"
)

// Settings is a set of options available to all optimizers
type Settings struct {
	// Iterations is the exact number of iterations to run. There is no
	// convergence test. A negative value selects the method's default.
	Iterations int
	*write.WriteSettings
}

// DefaultSettings returns settings that run the method's default number of
// iterations without any output.
func DefaultSettings() *Settings {
	return &Settings{
		Iterations:    -1,
		WriteSettings: write.DefaultWriteSettings(),
	}
}

// ResolveIterations returns the iteration budget given the method default.
func (s *Settings) ResolveIterations(methodDefault int) int {
	if s.Iterations < 0 {
		return methodDefault
	}
	return s.Iterations
}

// Result is the part of an optimization result shared by all optimizers
type Result struct {
	Iterations  int           // Number of iterations performed
	Evaluations int           // Number of derivative evaluations performed
	Runtime     time.Duration // Total runtime elapsed during the optimization
	Status      Status        // How the optimizer ended
}

// Common counts iterations and derivative evaluations and drives the display.
type Common struct {
	iter      int
	evals     int
	maxIter   int
	startTime time.Time

	*write.Display
}

// NewCommon creates a Common and adds itself to the display
func NewCommon() *Common {
	c := &Common{
		Display: write.NewDisplay(),
	}
	c.AddDataAdder(c)
	return c
}

// Init resets the counters at the start of an optimization of maxIter
// iterations.
func (c *Common) Init(settings *Settings, maxIter int) error {
	c.iter = 0
	c.evals = 0
	c.maxIter = maxIter
	c.startTime = time.Now()
	ws := settings.WriteSettings
	if ws == nil {
		ws = write.DefaultWriteSettings()
	}
	return c.Display.Init(ws)
}

func (c *Common) AppendWriteData(d []*write.Value) []*write.Value {
	d = append(d, &write.Value{Heading: "Iter", Value: c.iter})
	d = append(d, &write.Value{Heading: "Evals", Value: c.evals})
	return d
}

// Status reports IterationLimit once the iteration budget is spent.
func (c *Common) Status() Status {
	if c.iter >= c.maxIter {
		return IterationLimit
	}
	return Continue
}

// Iterate records one finished iteration that used nEvals derivative
// evaluations and writes it out.
func (c *Common) Iterate(nEvals int) error {
	c.iter++
	c.evals += nEvals
	return c.Display.Iterate()
}

func (c *Common) Result(status Status) (*Result, error) {
	if err := c.Display.Finish(); err != nil {
		return nil, err
	}
	return &Result{
		Iterations:  c.iter,
		Evaluations: c.evals,
		Runtime:     time.Since(c.startTime),
		Status:      status,
	}, nil
}
