// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axes defines the three data axes of a collection and
// helpers for computing axis tick marks.
package axes

import (
	"fmt"
	"strings"

	"github.com/aclements/go-moremath/scale"
)

// Axis identifies one of the three data axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// All lists the axes in order.
var All = [...]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Parse returns the Axis named by s ("x", "y", or "z", in any case).
func Parse(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Vec3 holds one value per axis.
type Vec3 struct {
	X, Y, Z float64
}

// Get returns the component of v for axis a.
func (v Vec3) Get(a Axis) float64 {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	case Z:
		return v.Z
	}
	panic("bad axis " + a.String())
}

// Set sets the component of v for axis a.
func (v *Vec3) Set(a Axis, x float64) {
	switch a {
	case X:
		v.X = x
	case Y:
		v.Y = x
	case Z:
		v.Z = x
	default:
		panic("bad axis " + a.String())
	}
}

// Splat returns a Vec3 with every component set to x.
func Splat(x float64) Vec3 {
	return Vec3{x, x, x}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Ticks returns at most max major ticks, and the corresponding minor
// ticks, covering [lo, hi]. If log is true, the ticks are for a
// base-10 logarithmic axis and the range must not include 0.
func Ticks(lo, hi float64, log bool, max int) (major, minor []float64, err error) {
	o := scale.TickOptions{Max: max}
	if !log {
		s := scale.Linear{Min: lo, Max: hi}
		major, minor = s.Ticks(o)
		return major, minor, nil
	}
	s, err := scale.NewLog(lo, hi, 10)
	if err != nil {
		return nil, nil, err
	}
	major, minor = s.Ticks(o)
	return major, minor, nil
}
