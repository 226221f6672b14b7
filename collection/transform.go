// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/zplot/axes"
	"github.com/aclements/zplot/expr"
)

// transform is the equation state of one axis.
type transform struct {
	equation string
	enabled  bool
	expr     *expr.Expr
	err      error
}

func newTransform(a axes.Axis) transform {
	eq := a.String()
	return transform{equation: eq, expr: expr.MustCompile(eq)}
}

// active returns the compiled equation if the transform is enabled and
// valid, and nil otherwise.
func (t *transform) active() *expr.Expr {
	if t.enabled && t.err == nil {
		return t.expr
	}
	return nil
}

// SetTransformEquation sets the equation for axis a. The equation is
// stored even if it fails to compile, in which case the error is
// returned and the axis is left untransformed until a valid equation
// is set.
func (c *Collection) SetTransformEquation(a axes.Axis, equation string) error {
	t := &c.transforms[a]
	if t.equation == equation {
		return t.err
	}
	t.equation = equation
	t.expr, t.err = expr.Compile(equation)
	if t.err == nil && a == axes.Z && (t.expr.Uses("x") || t.expr.Uses("y")) {
		Warning.Printf("z equation %q uses x or y, which are 0 when evaluating z", equation)
	}
	c.touch()
	return t.err
}

// SetTransformEnabled enables or disables the transform for axis a.
func (c *Collection) SetTransformEnabled(a axes.Axis, enabled bool) {
	t := &c.transforms[a]
	if t.enabled == enabled {
		return
	}
	t.enabled = enabled
	c.touch()
}

// TransformEquation returns the equation for axis a.
func (c *Collection) TransformEquation(a axes.Axis) string {
	return c.transforms[a].equation
}

// TransformEnabled reports whether the transform for axis a is
// enabled. It may be enabled but not applied if the equation is
// invalid.
func (c *Collection) TransformEnabled(a axes.Axis) bool {
	return c.transforms[a].enabled
}

// TransformValid reports whether the equation for axis a compiled.
func (c *Collection) TransformValid(a axes.Axis) bool {
	return c.transforms[a].err == nil
}

// TransformError returns the compile error of the equation for axis a,
// or nil.
func (c *Collection) TransformError(a axes.Axis) error {
	return c.transforms[a].err
}

// Resample controls resampling of the transformed x axis onto a fixed
// step.
type Resample struct {
	// Step is the grid spacing. Resampling is disabled if Step is
	// 0.
	Step float64

	// Constrain limits each data set's grid points to its own
	// transformed x span. Otherwise every data set is resampled
	// over the whole collection's span and extrapolated linearly
	// beyond its ends.
	Constrain bool
}

// maxResamplePoints bounds the resampling grid.
const maxResamplePoints = 1 << 20

// SetResample sets the x resampling options.
func (c *Collection) SetResample(r Resample) error {
	if r.Step < 0 || math.IsNaN(r.Step) || math.IsInf(r.Step, 0) {
		return fmt.Errorf("bad resample step %v", r.Step)
	}
	if c.resample == r {
		return nil
	}
	c.resample = r
	c.touch()
	return nil
}

// Resample returns the x resampling options.
func (c *Collection) Resample() Resample {
	return c.resample
}

// transformAll returns the transformed, and possibly resampled, copy of
// every data set.
func (c *Collection) transformAll() []*DataSet {
	tx := c.transforms[axes.X].active()
	ty := c.transforms[axes.Y].active()
	tz := c.transforms[axes.Z].active()
	out := make([]*DataSet, len(c.dataSets))
	for i, d := range c.dataSets {
		out[i] = transformDataSet(d, tx, ty, tz)
	}
	if c.resample.Step > 0 {
		resampleAll(out, c.resample)
	}
	return out
}

// transformDataSet applies the non-nil equations to d. The x and y
// equations see each point's x and y and the data set's raw z; the z
// equation sees z with x = y = 0. Points with a non-finite transformed
// coordinate are dropped. The result is sorted by x, keeping only the
// first of any points with identical x.
func transformDataSet(d *DataSet, tx, ty, tz *expr.Expr) *DataSet {
	z := d.z
	if tz != nil {
		z = tz.Eval(0, 0, d.z)
	}
	points := make([]Point, 0, len(d.points))
	for _, p := range d.points {
		x, y := p.X, p.Y
		if tx != nil {
			x = tx.Eval(p.X, p.Y, d.z)
		}
		if ty != nil {
			y = ty.Eval(p.X, p.Y, d.z)
		}
		if !finite(x) || !finite(y) {
			continue
		}
		points = append(points, Point{x, y})
	}
	if !sort.SliceIsSorted(points, func(i, j int) bool { return points[i].X < points[j].X }) {
		sort.SliceStable(points, func(i, j int) bool { return points[i].X < points[j].X })
	}
	// Drop exact duplicate abscissae.
	j := 0
	for i, p := range points {
		if i > 0 && p.X == points[j-1].X {
			continue
		}
		points[j] = p
		j++
	}
	return d.derive(z, points[:j])
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// resampleAll resamples every data set with at least two points onto a
// shared grid starting at the smallest x of any data set.
func resampleAll(sets []*DataSet, r Resample) {
	lo, hi, ok := xSpan(sets)
	if !ok {
		return
	}
	// Count in float64: a tiny step can overflow int.
	count := math.Floor((hi-lo)/r.Step+1e-9) + 1
	if count > maxResamplePoints {
		Warning.Printf("resample step %g gives %g points; truncating to %d", r.Step, count, maxResamplePoints)
		count = maxResamplePoints
	}
	n := int(count)
	grid := vec.Linspace(lo, lo+float64(n-1)*r.Step, n)
	for i, d := range sets {
		if len(d.points) < 2 {
			continue
		}
		sets[i] = d.derive(d.z, resample(d.points, grid, r.Constrain))
	}
}

// xSpan returns the smallest and largest x over all sets.
func xSpan(sets []*DataSet) (lo, hi float64, ok bool) {
	for _, d := range sets {
		if len(d.points) == 0 {
			continue
		}
		first, last := d.points[0].X, d.points[len(d.points)-1].X
		if !ok || first < lo {
			lo = first
		}
		if !ok || last > hi {
			hi = last
		}
		ok = true
	}
	return
}

// resample linearly interpolates points, which must be sorted by x and
// have at least two elements, at each x in grid. If constrain is set,
// grid points outside the span of points are skipped; otherwise they
// are extrapolated from the nearest segment.
func resample(points []Point, grid []float64, constrain bool) []Point {
	const eps = 1e-9
	first, last := points[0].X, points[len(points)-1].X
	out := make([]Point, 0, len(grid))
	j := 0
	for _, x := range grid {
		if constrain && (x < first-eps || x > last+eps) {
			continue
		}
		for j < len(points)-2 && points[j+1].X < x {
			j++
		}
		p0, p1 := points[j], points[j+1]
		y := p0.Y + (p1.Y-p0.Y)*(x-p0.X)/(p1.X-p0.X)
		out = append(out, Point{x, y})
	}
	return out
}
