// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"fmt"
	"math"
)

// PointType tags each sample of a display row.
type PointType int8

const (
	// NoPoint marks a position with no value. Leading and
	// trailing gaps in a row are always NoPoint.
	NoPoint PointType = iota
	// RealPoint marks a sample taken from the source data.
	RealPoint
	// InterpolatedPoint marks a value filled in linearly between
	// two RealPoints.
	InterpolatedPoint
)

func (t PointType) String() string {
	switch t {
	case NoPoint:
		return "none"
	case RealPoint:
		return "real"
	case InterpolatedPoint:
		return "interpolated"
	}
	return fmt.Sprintf("PointType(%d)", int(t))
}

// MergeEpsilon is the distance within which x values from different
// data sets are merged into one abscissa position.
const MergeEpsilon = 1e-5

// A Display is a collection's curves resampled onto one shared
// abscissa.
//
// Abscissa is strictly ascending and every row has exactly
// len(Abscissa) values and types.
type Display struct {
	Abscissa []float64
	Rows     []Row
}

// A Row is one data set's y values at each abscissa position.
type Row struct {
	// Z is the (transformed) z of the data set.
	Z float64

	// DataSet is the index of the source data set in the input to
	// Synthesize. Data sets without points have no row, so this
	// can differ from the row index.
	DataSet int

	// Values holds the y value at each abscissa position. It is 0
	// where Types is NoPoint.
	Values []float64

	// Types tags each value.
	Types []PointType
}

// Valid reports whether position i of r holds a value.
func (r *Row) Valid(i int) bool {
	return r.Types[i] != NoPoint
}

// Len returns the number of rows.
func (d *Display) Len() int {
	return len(d.Rows)
}

// Row returns row i.
func (d *Display) Row(i int) *Row {
	return &d.Rows[i]
}

// Points returns the positions of row i that hold a value, as points.
func (d *Display) Points(i int) []Point {
	r := &d.Rows[i]
	var pts []Point
	for j, x := range d.Abscissa {
		if r.Types[j] != NoPoint {
			pts = append(pts, Point{x, r.Values[j]})
		}
	}
	return pts
}

// Synthesize merges sets onto a shared abscissa.
//
// Each set must be sorted by ascending x. Sets without points are
// skipped. The abscissa is built by repeatedly taking the smallest
// unconsumed x over all sets; every set whose next x is within
// MergeEpsilon of it contributes a RealPoint at that position, and the
// others get NoPoint. Afterwards, interior gaps of each row are filled
// by linear interpolation between the bounding RealPoints and tagged
// InterpolatedPoint. Gaps before the first or after the last RealPoint
// of a row are left as NoPoint.
//
// For R non-empty sets of S points each, the abscissa has up to R·S
// positions and each position costs an O(R) scan, so this is O(R²·S).
// That is fine for a few hundred curves; many thousands of unaligned
// curves will be slow.
func Synthesize(sets []*DataSet) *Display {
	d := new(Display)
	var srcs [][]Point
	for i, s := range sets {
		if len(s.points) == 0 {
			continue
		}
		d.Rows = append(d.Rows, Row{Z: s.z, DataSet: i})
		srcs = append(srcs, s.points)
	}

	cursor := make([]int, len(srcs))
	for {
		// Find the smallest pending x. Exact ties yield the same
		// value whichever row wins, so the scan order is an
		// arbitrary but stable choice.
		minX, found := 0.0, false
		for r, pts := range srcs {
			if cursor[r] >= len(pts) {
				continue
			}
			if x := pts[cursor[r]].X; !found || x <= minX {
				minX, found = x, true
			}
		}
		if !found {
			break
		}
		d.Abscissa = append(d.Abscissa, minX)

		for r, pts := range srcs {
			row := &d.Rows[r]
			if c := cursor[r]; c < len(pts) && math.Abs(pts[c].X-minX) < MergeEpsilon {
				row.Values = append(row.Values, pts[c].Y)
				row.Types = append(row.Types, RealPoint)
				cursor[r]++
			} else {
				row.Values = append(row.Values, 0)
				row.Types = append(row.Types, NoPoint)
			}
		}
	}

	for r := range d.Rows {
		fillGaps(&d.Rows[r], d.Abscissa)
	}
	return d
}

// fillGaps linearly interpolates the values between each pair of
// RealPoints in r that are more than one position apart.
func fillGaps(r *Row, x []float64) {
	last := -1
	for j, t := range r.Types {
		if t != RealPoint {
			continue
		}
		if last >= 0 && j > last+1 {
			xi, yi := x[last], r.Values[last]
			xj, yj := x[j], r.Values[j]
			for k := last + 1; k < j; k++ {
				r.Values[k] = yi + (yj-yi)*(x[k]-xi)/(xj-xi)
				r.Types[k] = InterpolatedPoint
			}
		}
		last = j
	}
}
