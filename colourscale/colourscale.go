// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colourscale builds the colour ramps used to colour-code
// rendered data.
//
// A Definition records four independent colour sources (a single
// colour, a two-point RGB gradient, a two-point HSV gradient, and an
// arbitrary custom gradient) and which one is active. Scale derives
// the renderer-facing ColourScale from the active source. The scale is
// rebuilt only when the definition's version changes, and edits to an
// inactive source are stored without changing the version.
package colourscale

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/aclements/zplot/internal/memo"
	"github.com/lucasb-eyer/go-colorful"
)

// Source selects where a Definition takes its control points from.
type Source int

const (
	SingleColour Source = iota
	RGBGradient
	HSVGradient
	CustomGradient
)

var sourceNames = [...]string{"single", "rgb", "hsv", "custom"}

func (s Source) String() string {
	if s >= 0 && int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource returns the Source named by s: "single", "rgb", "hsv",
// or "custom".
func ParseSource(s string) (Source, error) {
	for i, name := range sourceNames {
		if strings.EqualFold(s, name) {
			return Source(i), nil
		}
	}
	return 0, fmt.Errorf("unknown colour source %q", s)
}

// AlphaControl selects how control point alpha is determined.
type AlphaControl int

const (
	// OwnAlpha uses each control point's own alpha.
	OwnAlpha AlphaControl = iota
	// FixedAlpha replaces every control point's alpha with a
	// single value.
	FixedAlpha
)

// ErrNoSuchPoint is returned when a control point index does not
// refer to a point of the definition.
var ErrNoSuchPoint = errors.New("no such colour point")

// A Point is a colour control point.
type Point struct {
	Value  float64
	Colour color.NRGBA
}

// A Definition is the editable state from which a Scale is built.
//
// Definitions are not safe for concurrent use.
type Definition struct {
	source     Source
	single     color.NRGBA
	rgb        [2]Point
	hsv        [2]Point
	custom     []Point
	alpha      AlphaControl
	fixedAlpha uint8

	version int64
	scale   memo.Cell // *Scale
}

// NewDefinition returns a Definition using a single opaque black
// colour, with default RGB (white to blue) and HSV (red to blue)
// gradients over [0, 1] and an empty custom gradient.
func NewDefinition() *Definition {
	return &Definition{
		source: SingleColour,
		single: color.NRGBA{0, 0, 0, 255},
		rgb: [2]Point{
			{0, color.NRGBA{255, 255, 255, 255}},
			{1, color.NRGBA{0, 0, 255, 255}},
		},
		hsv: [2]Point{
			{0, color.NRGBA{255, 0, 0, 255}},
			{1, color.NRGBA{0, 0, 255, 255}},
		},
		fixedAlpha: 128,
	}
}

// Version returns the colour version. It increases whenever the scale
// returned by Scale would change.
func (d *Definition) Version() int64 {
	return d.version
}

// touch bumps the version if src is the active source.
func (d *Definition) touch(src Source) {
	if d.source == src {
		d.version++
	}
}

// Source returns the active source.
func (d *Definition) Source() Source {
	return d.source
}

// SetSource makes src the active source.
func (d *Definition) SetSource(src Source) {
	if src < SingleColour || src > CustomGradient {
		panic("bad colour source " + src.String())
	}
	if d.source == src {
		return
	}
	d.source = src
	d.version++
}

// SingleColour returns the colour used by the SingleColour source.
func (d *Definition) SingleColour() color.NRGBA {
	return d.single
}

// SetSingleColour sets the colour used by the SingleColour source.
func (d *Definition) SetSingleColour(c color.NRGBA) {
	d.single = c
	d.touch(SingleColour)
}

// GradientPoint returns control point i (0 or 1) of the RGBGradient
// or HSVGradient source.
func (d *Definition) GradientPoint(src Source, i int) (Point, error) {
	g, err := d.gradient(src, i)
	if err != nil {
		return Point{}, err
	}
	return g[i], nil
}

// SetGradientPoint sets control point i (0 or 1) of the RGBGradient
// or HSVGradient source.
func (d *Definition) SetGradientPoint(src Source, i int, p Point) error {
	g, err := d.gradient(src, i)
	if err != nil {
		return err
	}
	g[i] = p
	d.touch(src)
	return nil
}

func (d *Definition) gradient(src Source, i int) (*[2]Point, error) {
	if i < 0 || i > 1 {
		return nil, ErrNoSuchPoint
	}
	switch src {
	case RGBGradient:
		return &d.rgb, nil
	case HSVGradient:
		return &d.hsv, nil
	}
	return nil, fmt.Errorf("%s is not a two-point gradient", src)
}

// CustomPoints returns a copy of the custom gradient's control points
// in ascending value order.
func (d *Definition) CustomPoints() []Point {
	return append([]Point(nil), d.custom...)
}

// AddCustomPoint inserts a control point into the custom gradient,
// after any existing points with the same value, and returns its
// index.
func (d *Definition) AddCustomPoint(p Point) int {
	i := d.insertCustom(p)
	d.touch(CustomGradient)
	return i
}

func (d *Definition) insertCustom(p Point) int {
	i := sort.Search(len(d.custom), func(i int) bool {
		return d.custom[i].Value > p.Value
	})
	d.custom = append(d.custom, Point{})
	copy(d.custom[i+1:], d.custom[i:])
	d.custom[i] = p
	return i
}

// SetCustomPoint replaces custom control point i and returns its new
// index, which differs from i if the value moved past a neighbour.
func (d *Definition) SetCustomPoint(i int, p Point) (int, error) {
	if i < 0 || i >= len(d.custom) {
		return -1, ErrNoSuchPoint
	}
	d.custom = append(d.custom[:i], d.custom[i+1:]...)
	i = d.insertCustom(p)
	d.touch(CustomGradient)
	return i, nil
}

// RemoveCustomPoint removes custom control point i.
func (d *Definition) RemoveCustomPoint(i int) error {
	if i < 0 || i >= len(d.custom) {
		return ErrNoSuchPoint
	}
	d.custom = append(d.custom[:i], d.custom[i+1:]...)
	d.touch(CustomGradient)
	return nil
}

// ClearCustomPoints removes every custom control point.
func (d *Definition) ClearCustomPoints() {
	if len(d.custom) == 0 {
		return
	}
	d.custom = nil
	d.touch(CustomGradient)
}

// AlphaControl returns the alpha mode and the fixed alpha value.
func (d *Definition) AlphaControl() (AlphaControl, uint8) {
	return d.alpha, d.fixedAlpha
}

// SetAlphaControl sets the alpha mode.
func (d *Definition) SetAlphaControl(a AlphaControl) {
	if d.alpha == a {
		return
	}
	d.alpha = a
	d.version++
}

// SetFixedAlpha sets the alpha used in FixedAlpha mode.
func (d *Definition) SetFixedAlpha(alpha uint8) {
	if d.fixedAlpha == alpha {
		return
	}
	d.fixedAlpha = alpha
	if d.alpha == FixedAlpha {
		d.version++
	}
}

// Scale returns the colour scale for the active source. The result is
// cached until the version changes and must not be modified.
func (d *Definition) Scale() *Scale {
	return d.scale.Get(d.version, func() interface{} { return d.build() }).(*Scale)
}

// ScaleVersion returns the version the cached scale was built at, or
// -1 if no scale has been built.
func (d *Definition) ScaleVersion() int64 {
	v, ok := d.scale.Version()
	if !ok {
		return -1
	}
	return v
}

func (d *Definition) build() *Scale {
	s := new(Scale)
	switch d.source {
	case SingleColour:
		s.Points = []Point{{0, d.single}}
	case RGBGradient:
		s.Points = sortedPair(d.rgb)
	case HSVGradient:
		s.Points = sortedPair(d.hsv)
		s.InterpolateHSV = true
	case CustomGradient:
		s.Points = append([]Point(nil), d.custom...)
	}
	if d.alpha == FixedAlpha {
		for i := range s.Points {
			s.Points[i].Colour.A = d.fixedAlpha
		}
	}
	return s
}

func sortedPair(g [2]Point) []Point {
	if g[1].Value < g[0].Value {
		return []Point{g[1], g[0]}
	}
	return []Point{g[0], g[1]}
}

// A Scale maps scalar values to colours through an ascending sequence
// of control points.
type Scale struct {
	// Points are the control points in ascending value order.
	Points []Point

	// InterpolateHSV indicates that colours between control
	// points should be blended in HSV space rather than RGB.
	InterpolateHSV bool
}

// Colour returns the colour for value v. Values outside the control
// range take the colour of the nearest end point. An empty scale maps
// everything to transparent, as does every scale for NaN.
func (s *Scale) Colour(v float64) color.NRGBA {
	n := len(s.Points)
	switch {
	case n == 0, math.IsNaN(v):
		return color.NRGBA{}
	case v <= s.Points[0].Value:
		return s.Points[0].Colour
	case v >= s.Points[n-1].Value:
		return s.Points[n-1].Colour
	}
	i := sort.Search(n, func(i int) bool {
		return s.Points[i].Value > v
	})
	a, b := s.Points[i-1], s.Points[i]
	t := (v - a.Value) / (b.Value - a.Value)
	return blend(a.Colour, b.Colour, t, s.InterpolateHSV)
}

func blend(a, b color.NRGBA, t float64, hsv bool) color.NRGBA {
	ca, cb := toColorful(a), toColorful(b)
	var c colorful.Color
	if hsv {
		c = ca.BlendHsv(cb, t)
	} else {
		c = ca.BlendRgb(cb, t)
	}
	r, g, bl := c.Clamped().RGB255()
	alpha := float64(a.A) + t*(float64(b.A)-float64(a.A))
	return color.NRGBA{r, g, bl, uint8(alpha + 0.5)}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseColour parses a colour written as #rgb, #rrggbb, or
// #rrggbbaa.
func ParseColour(s string) (color.NRGBA, error) {
	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("bad colour %q", s)
		}
		alpha, s = a, s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad colour %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, alpha}, nil
}
