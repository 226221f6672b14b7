// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws a collection's display representation.
//
// LinePlot draws each display row as a line coloured by its z, Grid
// draws the display as an image with one cell per sample coloured by
// its y value, and Table prints a per-curve summary.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/zplot/axes"
	"github.com/aclements/zplot/collection"
	"golang.org/x/image/draw"
)

// Options control rendering.
type Options struct {
	// Width and Height are the output size in pixels. For Grid,
	// zero means one pixel per sample.
	Width, Height int

	// Title is the plot title. LinePlot uses the collection name
	// if it is empty.
	Title string

	// Normalize maps coloured values onto [0, 1] using the
	// collection's transformed limits before looking up their
	// colour. Otherwise the colour scale sees raw values.
	Normalize bool

	// Smooth scales Grid output bilinearly instead of to the
	// nearest sample.
	Smooth bool
}

// normalizer returns a function that maps [lo, hi] onto [0, 1], or
// the identity if normalize is false.
func normalizer(normalize bool, lo, hi float64) func(float64) float64 {
	if !normalize {
		return func(v float64) float64 { return v }
	}
	if !(hi > lo) {
		return func(float64) float64 { return 0 }
	}
	return func(v float64) float64 { return (v - lo) / (hi - lo) }
}

// axisLabel returns the label for axis a: its equation if the
// transform applies, and the axis name otherwise.
func axisLabel(c *collection.Collection, a axes.Axis) string {
	if c.TransformEnabled(a) && c.TransformValid(a) {
		return c.TransformEquation(a)
	}
	return a.String()
}

// LinePlot writes c's display as an SVG line plot to w. Rows whose z
// is not finite are omitted.
func LinePlot(w io.Writer, c *collection.Collection, opts Options) error {
	d := c.Display()
	if d.Len() == 0 {
		return collection.ErrNoData
	}
	l := c.Limits()
	norm := normalizer(opts.Normalize, l.TransformedMin.Z, l.TransformedMax.Z)
	scale := c.ColourScale()

	var xs, ys []float64
	var curves []int
	var colours []color.NRGBA
	for i := range d.Rows {
		z := d.Rows[i].Z
		if math.IsNaN(z) || math.IsInf(z, 0) {
			continue
		}
		col := scale.Colour(norm(z))
		for _, p := range d.Points(i) {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			curves = append(curves, i)
			colours = append(colours, col)
		}
	}
	if len(xs) == 0 {
		return collection.ErrNoData
	}
	tab := new(table.Builder).
		Add("x", xs).
		Add("y", ys).
		Add("curve", curves).
		Add("colour", colours).
		Done()

	title := opts.Title
	if title == "" {
		title = c.Name()
	}
	plot := gg.NewPlot(tab)
	if l.TransformedMax.X > l.TransformedMin.X {
		plot.SetScale("x", gg.NewLinearScaler().SetMin(l.TransformedMin.X).SetMax(l.TransformedMax.X))
	}
	// Group by curve first so curves that share a colour are
	// still drawn separately.
	plot.GroupBy("curve")
	plot.Add(gg.LayerLines{X: "x", Y: "y", Color: "colour"})
	plot.Add(gg.AxisLabel("x", axisLabel(c, axes.X)))
	plot.Add(gg.AxisLabel("y", axisLabel(c, axes.Y)))
	if title != "" {
		plot.Add(gg.Title(title))
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 500
	}
	if height <= 0 {
		height = 350
	}
	return plot.WriteSVG(w, width, height)
}

// Grid renders c's display as an image. Column j holds abscissa
// position j, and rows run from the highest z at the top to the lowest
// at the bottom. Each sample is coloured by its y value; positions
// without a value are transparent. The image is scaled to
// opts.Width by opts.Height unless either is zero.
func Grid(c *collection.Collection, opts Options) (*image.NRGBA, error) {
	d := c.Display()
	if d.Len() == 0 || len(d.Abscissa) == 0 {
		return nil, collection.ErrNoData
	}
	l := c.Limits()
	norm := normalizer(opts.Normalize, l.TransformedMin.Y, l.TransformedMax.Y)
	scale := c.ColourScale()

	src := image.NewNRGBA(image.Rect(0, 0, len(d.Abscissa), d.Len()))
	for i := range d.Rows {
		row := &d.Rows[i]
		y := d.Len() - 1 - i
		for j, v := range row.Values {
			if row.Valid(j) {
				src.SetNRGBA(j, y, scale.Colour(norm(v)))
			}
		}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return src, nil
	}

	var interp draw.Interpolator = draw.NearestNeighbor
	if opts.Smooth {
		interp = draw.BiLinear
	}
	dst := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// WriteGrid writes Grid(c, opts) to w as a PNG.
func WriteGrid(w io.Writer, c *collection.Collection, opts Options) error {
	img, err := Grid(c, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Table writes a summary of c's transformed data sets to w, one line
// per data set.
func Table(w io.Writer, c *collection.Collection) error {
	sets := c.TransformedDataSets()
	if len(sets) == 0 {
		return collection.ErrNoData
	}
	n := len(sets)
	names, counts := make([]string, n), make([]int, n)
	zs, means, mins, maxes := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, d := range sets {
		names[i], zs[i], counts[i] = d.Name(), d.Z(), d.Len()
		means[i], mins[i], maxes[i] = d.YStats()
	}
	tab := new(table.Builder).
		Add("name", names).
		Add("z", zs).
		Add("points", counts).
		Add("mean y", means).
		Add("min y", mins).
		Add("max y", maxes).
		Done()
	table.Fprint(w, tab)
	return nil
}
