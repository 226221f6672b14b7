// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"fmt"

	"github.com/aclements/go-moremath/vec"
)

// A Fitter fits a function to (xs[i], ys[i]), where xs is ascending.
type Fitter interface {
	Fit(xs, ys []float64) (func(x float64) float64, error)
}

// AddFit fits f to each non-empty transformed data set, evaluates each
// fit at n evenly spaced points spanning its data set, and adds the
// results as a new fit child collection named name. If any fit fails,
// nothing is added.
func (c *Collection) AddFit(name string, f Fitter, n int) (*Collection, error) {
	if n < 2 {
		return nil, fmt.Errorf("fit needs at least 2 points, have %d", n)
	}
	sets := c.TransformedDataSets()
	fitted := c.newChild(name)
	for _, d := range sets {
		if len(d.points) == 0 {
			continue
		}
		xs, ys := d.XY()
		fn, err := f.Fit(xs, ys)
		if err != nil {
			return nil, fmt.Errorf("fitting %s: %w", d.name, err)
		}
		grid := vec.Linspace(xs[0], xs[len(xs)-1], n)
		points := make([]Point, len(grid))
		for i, x := range grid {
			points[i] = Point{x, fn(x)}
		}
		fitted.AddDataSet(d.name, d.z, points...)
	}
	if fitted.NDataSets() == 0 {
		return nil, ErrNoData
	}
	c.fits = append(c.fits, fitted)
	return fitted, nil
}
