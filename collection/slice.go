// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/zplot/axes"
)

var (
	// ErrUnsupportedAxis is returned when locating or slicing
	// along the y axis, which has no sample positions of its own.
	ErrUnsupportedAxis = errors.New("slicing along y is not supported")

	// ErrNoData is returned when an operation needs display data
	// and there is none.
	ErrNoData = errors.New("no data")
)

// NearestAbscissa returns the index of the abscissa value closest to
// x, or -1 if the abscissa is empty. If x is equidistant from two
// positions, the lower one is returned.
func (d *Display) NearestAbscissa(x float64) int {
	a := d.Abscissa
	if len(a) == 0 {
		return -1
	}
	i := sort.SearchFloat64s(a, x)
	switch {
	case i == 0:
		return 0
	case i == len(a):
		return len(a) - 1
	case a[i]-x < x-a[i-1]:
		return i
	}
	return i - 1
}

// NearestRow returns the index of the row whose z is closest to z, or
// -1 if there are no rows. Ties go to the first such row.
func (d *Display) NearestRow(z float64) int {
	best, bestDist := -1, math.Inf(1)
	for i := range d.Rows {
		if dist := math.Abs(d.Rows[i].Z - z); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// Locate returns the index of the sample nearest to v along axis a: an
// abscissa index for X, or a row index for Z. Y is not supported.
func (d *Display) Locate(a axes.Axis, v float64) (int, error) {
	var i int
	switch a {
	case axes.X:
		i = d.NearestAbscissa(v)
	case axes.Z:
		i = d.NearestRow(v)
	case axes.Y:
		return -1, ErrUnsupportedAxis
	default:
		return -1, fmt.Errorf("bad axis %v", a)
	}
	if i < 0 {
		return -1, ErrNoData
	}
	return i, nil
}

// ExtractSlice fills the current slice collection with a single data
// set taken from the display at the sample nearest to v along axis a,
// and returns it.
//
// An X slice has one point (row z, value) for every row with a value at
// the chosen abscissa position. A Z slice copies every valued position
// of the chosen row.
func (c *Collection) ExtractSlice(a axes.Axis, v float64) (*Collection, error) {
	d := c.Display()
	i, err := d.Locate(a, v)
	if err != nil {
		return nil, err
	}

	var name string
	var z float64
	var points []Point
	switch a {
	case axes.X:
		z = d.Abscissa[i]
		name = fmt.Sprintf("x = %g", z)
		for r := range d.Rows {
			row := &d.Rows[r]
			if row.Valid(i) {
				points = append(points, Point{row.Z, row.Values[i]})
			}
		}
	case axes.Z:
		z = d.Rows[i].Z
		name = fmt.Sprintf("z = %g", z)
		points = d.Points(i)
	}

	if c.currentSlice == nil {
		c.currentSlice = c.newChild("")
	}
	s := c.currentSlice
	s.SetName(fmt.Sprintf("%s: %s", c.name, name))
	s.Clear()
	s.AddDataSet(name, z, points...)
	return s, nil
}

// KeepSlice copies the current slice into a new kept slice and returns
// it.
func (c *Collection) KeepSlice() (*Collection, error) {
	cur := c.currentSlice
	if cur == nil || cur.NDataSets() == 0 {
		return nil, ErrNoData
	}
	kept := c.newChild(cur.name)
	for _, d := range cur.dataSets {
		kept.AddDataSet(d.name, d.z, d.points...)
	}
	c.slices = append(c.slices, kept)
	return kept, nil
}
