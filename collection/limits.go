// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"math"

	"github.com/aclements/zplot/axes"
)

// Limits are the axis bounds of a collection.
//
// For an empty collection every bound is 0 except the positive bounds,
// which are the placeholders PositiveMin 0.1 and PositiveMax -1. Callers
// that must tell "no data" from a zero-width range should check
// NDataSets.
type Limits struct {
	// Min and Max bound the raw data.
	Min, Max axes.Vec3

	// TransformedMin and TransformedMax bound the transformed
	// data.
	TransformedMin, TransformedMax axes.Vec3

	// PositiveMin and PositiveMax are the smallest and largest
	// strictly positive transformed values, for logarithmic axes.
	// An axis with no positive values gets 0.1 and 1.
	PositiveMin, PositiveMax axes.Vec3
}

// Limits returns the axis limits for the current data version.
func (c *Collection) Limits() Limits {
	return c.update().limits
}

func computeLimits(raw, transformed []*DataSet) Limits {
	l := Limits{
		PositiveMin: axes.Splat(0.1),
		PositiveMax: axes.Splat(-1),
	}
	if len(raw) == 0 {
		return l
	}
	l.Min, l.Max = bounds(raw)
	l.TransformedMin, l.TransformedMax = bounds(transformed)
	l.PositiveMin, l.PositiveMax = positiveBounds(transformed)
	return l
}

// bounds returns the per-axis bounds of sets. The z bounds come from
// the data sets' z, ignoring non-finite values, and the x and y bounds
// are seeded from the first point found. Bounds with nothing to seed
// them are 0.
func bounds(sets []*DataSet) (min, max axes.Vec3) {
	zSeeded, seeded := false, false
	for _, d := range sets {
		if finite(d.z) {
			if !zSeeded {
				min.Z, max.Z = d.z, d.z
				zSeeded = true
			}
			min.Z = math.Min(min.Z, d.z)
			max.Z = math.Max(max.Z, d.z)
		}
		for _, p := range d.points {
			if !seeded {
				min.X, max.X = p.X, p.X
				min.Y, max.Y = p.Y, p.Y
				seeded = true
				continue
			}
			if p.X < min.X {
				min.X = p.X
			} else if p.X > max.X {
				max.X = p.X
			}
			if p.Y < min.Y {
				min.Y = p.Y
			} else if p.Y > max.Y {
				max.Y = p.Y
			}
		}
	}
	return
}

// positiveBounds returns the per-axis smallest and largest values that
// are finite and > 0. Axes without any such value get min 0.1 and max 1.
func positiveBounds(sets []*DataSet) (min, max axes.Vec3) {
	min, max = axes.Splat(math.Inf(1)), axes.Splat(math.Inf(-1))
	fold := func(a axes.Axis, v float64) {
		if v > 0.0 && finite(v) {
			if v < min.Get(a) {
				min.Set(a, v)
			}
			if v > max.Get(a) {
				max.Set(a, v)
			}
		}
	}
	for _, d := range sets {
		fold(axes.Z, d.z)
		for _, p := range d.points {
			fold(axes.X, p.X)
			fold(axes.Y, p.Y)
		}
	}
	for _, a := range axes.All {
		if math.IsInf(max.Get(a), -1) {
			min.Set(a, 0.1)
			max.Set(a, 1.0)
		}
	}
	return
}
