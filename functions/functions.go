// Package functions holds example objectives written over hyperdual numbers,
// so deriv.Forward can supply their first and second derivatives.
package functions

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/btracey/diffopt/deriv"
)

// LogExpRatio is (log x + eˣ)/(log x · eˣ), which simplifies to
// e⁻ˣ + 1/log x. It is defined for x > 0, x ≠ 1.
var LogExpRatio = deriv.Hyperdual(func(x hyperdual.Number) hyperdual.Number {
	a := hyperdual.Log(x)
	b := hyperdual.Exp(x)
	return hyperdual.Mul(hyperdual.Add(a, b), hyperdual.Inv(hyperdual.Mul(a, b)))
})

// DampedSine is sin(x)·exp(−(x−1)²). Its minimum nearest the origin is at
// x ≈ −0.353793.
var DampedSine = deriv.Hyperdual(func(x hyperdual.Number) hyperdual.Number {
	u := hyperdual.Sub(x, hyperdual.Number{Real: 1})
	a := hyperdual.Exp(hyperdual.Scale(-1, hyperdual.Mul(u, u)))
	return hyperdual.Mul(a, hyperdual.Sin(x))
})

// Quadratic returns (x−c)².
func Quadratic(c float64) deriv.Hyperdual {
	return func(x hyperdual.Number) hyperdual.Number {
		u := hyperdual.Sub(x, hyperdual.Number{Real: c})
		return hyperdual.Mul(u, u)
	}
}

var byName = map[string]deriv.Hyperdual{
	"log-exp-ratio": LogExpRatio,
	"damped-sine":   DampedSine,
	"parabola":      Quadratic(1),
}

// ByName returns the named example function.
func ByName(name string) (deriv.Hyperdual, error) {
	f, ok := byName[name]
	if !ok {
		return nil, errors.Errorf("functions: unknown function %q", name)
	}
	return f, nil
}

// Names lists the functions known to ByName.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Point is a function and its first two derivatives at X.
type Point struct {
	X, F, D1, D2 float64
}

// Tabulate evaluates f, f' and f'' at n evenly spaced points in [lo, hi].
// Derivatives are obtained from the oracle once.
func Tabulate(f deriv.Func, oracle deriv.Oracle, lo, hi float64, n int) ([]Point, error) {
	if n < 2 {
		return nil, errors.Errorf("functions: need at least 2 points, have %d", n)
	}
	df, err := oracle.Derivative(f)
	if err != nil {
		return nil, errors.Wrap(err, "functions: first derivative")
	}
	ddf, err := oracle.Derivative(df)
	if err != nil {
		return nil, errors.Wrap(err, "functions: second derivative")
	}

	xs := floats.Span(make([]float64, n), lo, hi)
	pts := make([]Point, n)
	for i, x := range xs {
		pts[i] = Point{X: x, F: f.Eval(x), D1: df.Eval(x), D2: ddf.Eval(x)}
	}
	return pts, nil
}
