// Package regression fits the log-log model
//
//	log(cases) = a0·log(population) + a1
//
// by minimizing the mean squared error with the multivariate optimizers.
package regression

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/hyperdual"
	"gonum.org/v1/gonum/stat"

	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/multivariate"
)

type Municipality struct {
	Population float64
	Cases      float64
}

// Dataset holds the observations in linear and log space.
type Dataset struct {
	population []float64
	cases      []float64
	logPop     []float64
	logCases   []float64
}

// New builds a Dataset. Every population and case count must be positive.
func New(ms []Municipality) (*Dataset, error) {
	if len(ms) == 0 {
		return nil, errors.New("regression: no observations")
	}
	d := &Dataset{
		population: make([]float64, len(ms)),
		cases:      make([]float64, len(ms)),
		logPop:     make([]float64, len(ms)),
		logCases:   make([]float64, len(ms)),
	}
	for i, m := range ms {
		if !(m.Population > 0) || !(m.Cases > 0) {
			return nil, errors.Errorf("regression: observation %d is not positive: %+v", i, m)
		}
		d.population[i] = m.Population
		d.cases[i] = m.Cases
		d.logPop[i] = math.Log(m.Population)
		d.logCases[i] = math.Log(m.Cases)
	}
	return d, nil
}

func (d *Dataset) Len() int { return len(d.population) }

// Loss is the mean squared error of the model with coefficients a = [a0, a1].
func (d *Dataset) Loss() deriv.HyperdualVec {
	scale := 1 / float64(d.Len())
	return func(a []hyperdual.Number) hyperdual.Number {
		var sum hyperdual.Number
		for i, lx := range d.logPop {
			pred := hyperdual.Add(hyperdual.Scale(lx, a[0]), a[1])
			r := hyperdual.Sub(hyperdual.Number{Real: d.logCases[i]}, pred)
			sum = hyperdual.Add(sum, hyperdual.Mul(r, r))
		}
		return hyperdual.Scale(scale, sum)
	}
}

// InitialGuess is slope 1 with the intercept of the pooled case rate.
func (d *Dataset) InitialGuess() []float64 {
	return []float64{1, math.Log(floats.Sum(d.cases) / floats.Sum(d.population))}
}

// LeastSquares returns the closed-form ordinary least squares coefficients.
func (d *Dataset) LeastSquares() (slope, intercept float64) {
	intercept, slope = stat.LinearRegression(d.logPop, d.logCases, nil, false)
	return slope, intercept
}

// FitSettings returns 200 iterations of gradient descent with step 0.01
// decaying by 0.99.
func FitSettings() (*multivariate.Settings, multivariate.Method) {
	s := multivariate.DefaultSettings()
	s.Iterations = 200
	return s, &multivariate.GradientDescent{Step: 0.01, Decay: 0.99}
}

// Fit is a fitted model.
type Fit struct {
	*multivariate.Result
	Slope     float64
	Intercept float64
	Loss      float64
}

// Fit minimizes Loss from InitialGuess. If method is nil, the method from
// FitSettings is used; if settings is nil, the settings from FitSettings.
func (d *Dataset) Fit(settings *multivariate.Settings, method multivariate.Method) (*Fit, error) {
	ds, dm := FitSettings()
	if settings == nil {
		settings = ds
	}
	if method == nil {
		method = dm
	}
	loss := d.Loss()
	result, err := multivariate.Minimize(loss, d.InitialGuess(), settings, method)
	if err != nil {
		return nil, errors.Wrap(err, "regression: fit")
	}
	return &Fit{
		Result:    result,
		Slope:     result.Loc[0],
		Intercept: result.Loc[1],
		Loss:      loss.Eval(result.Loc),
	}, nil
}

// Residuals returns observed minus predicted log case counts.
func (d *Dataset) Residuals(slope, intercept float64) []float64 {
	res := make([]float64, d.Len())
	for i, lx := range d.logPop {
		res[i] = d.logCases[i] - (slope*lx + intercept)
	}
	return res
}

// RSquared is the coefficient of determination of the model in log space.
func (d *Dataset) RSquared(slope, intercept float64) float64 {
	return stat.RSquared(d.logPop, d.logCases, nil, intercept, slope)
}
