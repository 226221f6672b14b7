// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fits provides curve fitters for collection fit children.
package fits

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/fit"
)

// Polynomial is a least-squares polynomial fit of the given degree.
type Polynomial struct {
	Degree int
}

// Fit returns the best-fit polynomial of p.Degree to (xs, ys).
func (p Polynomial) Fit(xs, ys []float64) (func(float64) float64, error) {
	if err := check(xs, ys); err != nil {
		return nil, err
	}
	if p.Degree < 0 {
		return nil, fmt.Errorf("bad polynomial degree %d", p.Degree)
	}
	if len(xs) <= p.Degree {
		return nil, fmt.Errorf("degree %d fit needs more than %d points, have %d", p.Degree, p.Degree, len(xs))
	}
	// fit.PolynomialRegression builds its x³ and higher terms with
	// the wrong power, so construct the terms directly.
	terms := make([]func(xs, termOut []float64), p.Degree+1)
	for d := range terms {
		pow := float64(d)
		terms[d] = func(xs, termOut []float64) {
			for i, x := range xs {
				termOut[i] = math.Pow(x, pow)
			}
		}
	}
	coeffs := fit.LinearLeastSquares(xs, ys, nil, terms...)
	return func(x float64) float64 {
		// Horner's rule.
		y := 0.0
		for i := len(coeffs) - 1; i >= 0; i-- {
			y = y*x + coeffs[i]
		}
		return y
	}, nil
}

func (p Polynomial) String() string {
	return fmt.Sprintf("poly%d", p.Degree)
}

// LOESS is a locally weighted polynomial regression. Span is the
// fraction of the points that influence each fitted value, in (0, 1].
type LOESS struct {
	Degree int
	Span   float64
}

// Fit returns the LOESS smoother of (xs, ys).
func (l LOESS) Fit(xs, ys []float64) (func(float64) float64, error) {
	if err := check(xs, ys); err != nil {
		return nil, err
	}
	if l.Degree < 0 {
		return nil, fmt.Errorf("bad LOESS degree %d", l.Degree)
	}
	if !(l.Span > 0 && l.Span <= 1) {
		return nil, fmt.Errorf("LOESS span %v not in (0, 1]", l.Span)
	}
	if q := int(math.Ceil(l.Span * float64(len(xs)))); q <= l.Degree {
		return nil, fmt.Errorf("LOESS span %v covers %d points, need more than %d", l.Span, q, l.Degree)
	}
	return fit.LOESS(xs, ys, l.Degree, l.Span), nil
}

func (l LOESS) String() string {
	return fmt.Sprintf("loess%d(%g)", l.Degree, l.Span)
}

func check(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("len(xs) %d != len(ys) %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return fmt.Errorf("no data to fit")
	}
	return nil
}
