// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Point is one (x, y) sample of a curve.
type Point struct {
	X, Y float64
}

// A DataSet is one (x, y) curve at a fixed z.
//
// Points are expected in ascending x order, but this is not enforced.
// A DataSet is owned by exactly one Collection and is mutated only
// through that Collection, which keeps the collection's data version
// current.
type DataSet struct {
	name   string
	source string
	z      float64
	points []Point

	owner *Collection
}

// Name returns the data set's name.
func (d *DataSet) Name() string {
	return d.name
}

// Source returns the file the data set was read from, if any.
func (d *DataSet) Source() string {
	return d.source
}

// SetSource records the file the data set was read from. The source is
// descriptive only and does not affect derived data.
func (d *DataSet) SetSource(path string) {
	d.source = path
}

// Z returns the data set's z coordinate.
func (d *DataSet) Z() float64 {
	return d.z
}

// Len returns the number of points.
func (d *DataSet) Len() int {
	return len(d.points)
}

// Point returns the i'th point.
func (d *DataSet) Point(i int) Point {
	return d.points[i]
}

// Points returns a copy of the data set's points.
func (d *DataSet) Points() []Point {
	return append([]Point(nil), d.points...)
}

// XY returns the x and y coordinates of the points as separate slices.
func (d *DataSet) XY() (xs, ys []float64) {
	xs, ys = make([]float64, len(d.points)), make([]float64, len(d.points))
	for i, p := range d.points {
		xs[i], ys[i] = p.X, p.Y
	}
	return
}

// YStats returns the mean, minimum, and maximum of the y values. All
// three are NaN if the data set is empty.
func (d *DataSet) YStats() (mean, min, max float64) {
	if len(d.points) == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	_, ys := d.XY()
	min, max = stats.Bounds(ys)
	return stats.Mean(ys), min, max
}

// derive returns an unowned data set with d's metadata, the given z,
// and points.
func (d *DataSet) derive(z float64, points []Point) *DataSet {
	return &DataSet{name: d.name, source: d.source, z: z, points: points}
}
