// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collection implements the data-derivation pipeline for
// collections of (x, y) curves indexed by z.
//
// A Collection owns an ordered list of DataSets and derives from them,
// lazily and on demand:
//
//   - transformed data sets, with optional per-axis equations and
//     fixed-step resampling (TransformedDataSets),
//   - raw and transformed axis limits (Limits),
//   - a display representation that resamples every curve onto one
//     shared abscissa (Display), and
//   - a colour scale (ColourScale).
//
// Every mutation of the data sets, equations, or resampling options
// increments the collection's data version. Derived values are cached
// together with the version they were built at and are rebuilt only
// when that version no longer matches. Colour edits are tracked by the
// colour definition's own version.
//
// A Collection also owns child collections: fits of its data, kept
// slices, and a scratch "current slice".
//
// Collections are not safe for concurrent use. All mutation and all
// reads of derived data must happen on one goroutine, or be serialized
// by the caller.
package collection

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sort"

	"github.com/aclements/zplot/axes"
	"github.com/aclements/zplot/colourscale"
	"github.com/aclements/zplot/internal/memo"
)

// Warning receives reports of programmer errors that do not stop the
// pipeline, such as passing a DataSet to a Collection that does not
// own it.
var Warning = log.New(os.Stderr, "[collection] ", log.Lshortfile)

// ErrNotOwned is returned when a DataSet passed to a Collection method
// belongs to a different collection, or to none.
var ErrNotOwned = errors.New("data set not owned by this collection")

// A ShapeError reports inconsistent array lengths in imported data.
type ShapeError struct {
	// What names the mismatched input.
	What string
	// Want and Have are the expected and actual lengths.
	Want, Have int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s has length %d, want %d", e.What, e.Have, e.Want)
}

// A Collection is an ordered set of DataSets, sorted by ascending z,
// together with the data derived from them.
type Collection struct {
	name   string
	parent *Collection

	dataSets   []*DataSet
	transforms [3]transform
	resample   Resample
	colour     *colourscale.Definition

	dataVersion int64
	derived     memo.Cell // *derived
	display     memo.Cell // *Display

	fits         []*Collection
	slices       []*Collection
	currentSlice *Collection
}

// derived holds everything computed from the data sets at one data
// version, apart from the display.
type derived struct {
	transformed []*DataSet
	limits      Limits
}

// New returns an empty collection.
func New(name string) *Collection {
	c := &Collection{
		name:   name,
		colour: colourscale.NewDefinition(),
	}
	for _, a := range axes.All {
		c.transforms[a] = newTransform(a)
	}
	return c
}

// newChild returns an empty collection whose parent is c.
func (c *Collection) newChild(name string) *Collection {
	child := New(name)
	child.parent = c
	return child
}

// Name returns the collection's name.
func (c *Collection) Name() string {
	return c.name
}

// SetName sets the collection's name.
func (c *Collection) SetName(name string) {
	c.name = name
}

// Parent returns the collection that owns c, or nil for a top-level
// collection.
func (c *Collection) Parent() *Collection {
	return c.parent
}

// DataVersion returns the data version. It increases on every change
// to the data sets, transform equations, or resampling options.
func (c *Collection) DataVersion() int64 {
	return c.dataVersion
}

// LimitsVersion returns the data version the cached limits and
// transformed data sets were computed at, or -1 if they have never
// been computed.
func (c *Collection) LimitsVersion() int64 {
	if v, ok := c.derived.Version(); ok {
		return v
	}
	return -1
}

// DisplayVersion returns the data version the cached display was built
// at, or -1 if it has never been built.
func (c *Collection) DisplayVersion() int64 {
	if v, ok := c.display.Version(); ok {
		return v
	}
	return -1
}

// ColourVersion returns the version of the colour definition.
func (c *Collection) ColourVersion() int64 {
	return c.colour.Version()
}

func (c *Collection) touch() {
	c.dataVersion++
}

// owns reports whether d belongs to c, logging a warning if not.
func (c *Collection) owns(d *DataSet, op string) bool {
	if d == nil || d.owner != c {
		Warning.Printf("%s: %s", op, ErrNotOwned)
		return false
	}
	return true
}

// NDataSets returns the number of data sets.
func (c *Collection) NDataSets() int {
	return len(c.dataSets)
}

// DataSet returns the i'th data set in z order.
func (c *Collection) DataSet(i int) *DataSet {
	return c.dataSets[i]
}

// DataSets returns the data sets in z order.
func (c *Collection) DataSets() []*DataSet {
	return append([]*DataSet(nil), c.dataSets...)
}

// IndexOf returns the position of d in c, or -1 if c does not own d.
func (c *Collection) IndexOf(d *DataSet) int {
	if d == nil || d.owner != c {
		return -1
	}
	for i, d2 := range c.dataSets {
		if d2 == d {
			return i
		}
	}
	return -1
}

// insertionIndex returns the position at which a data set with z
// should be inserted: after every data set with z' <= z. NaN sorts
// after every number, so data sets with NaN z are kept at the end.
func (c *Collection) insertionIndex(z float64) int {
	if math.IsNaN(z) {
		return len(c.dataSets)
	}
	return sort.Search(len(c.dataSets), func(i int) bool {
		dz := c.dataSets[i].z
		return dz > z || math.IsNaN(dz)
	})
}

func (c *Collection) insert(d *DataSet) {
	i := c.insertionIndex(d.z)
	c.dataSets = append(c.dataSets, nil)
	copy(c.dataSets[i+1:], c.dataSets[i:])
	c.dataSets[i] = d
	d.owner = c
}

// AddDataSet adds a data set with the given name, z, and points, and
// returns it. The points are copied.
func (c *Collection) AddDataSet(name string, z float64, points ...Point) *DataSet {
	d := &DataSet{name: name, z: z, points: append([]Point(nil), points...)}
	c.insert(d)
	c.touch()
	return d
}

// AddDataSetsFromRows adds one data set per row, where rows[i][j] is
// the y value at abscissa[j] and zs[i] is the z of row i. If the
// lengths are inconsistent, it returns a *ShapeError and adds nothing.
func (c *Collection) AddDataSetsFromRows(abscissa []float64, rows [][]float64, zs []float64) ([]*DataSet, error) {
	if len(zs) != len(rows) {
		return nil, &ShapeError{"z values", len(rows), len(zs)}
	}
	for i, row := range rows {
		if len(row) != len(abscissa) {
			return nil, &ShapeError{fmt.Sprintf("row %d", i), len(abscissa), len(row)}
		}
	}
	added := make([]*DataSet, len(rows))
	for i, row := range rows {
		points := make([]Point, len(row))
		for j, y := range row {
			points[j] = Point{abscissa[j], y}
		}
		d := &DataSet{name: fmt.Sprintf("row %d", i), z: zs[i], points: points}
		c.insert(d)
		added[i] = d
	}
	if len(rows) > 0 {
		c.touch()
	}
	return added, nil
}

// RemoveDataSet removes d from c.
func (c *Collection) RemoveDataSet(d *DataSet) error {
	if !c.owns(d, "RemoveDataSet") {
		return ErrNotOwned
	}
	i := c.IndexOf(d)
	c.dataSets = append(c.dataSets[:i], c.dataSets[i+1:]...)
	d.owner = nil
	c.touch()
	return nil
}

// Clear removes every data set.
func (c *Collection) Clear() {
	if len(c.dataSets) == 0 {
		return
	}
	for _, d := range c.dataSets {
		d.owner = nil
	}
	c.dataSets = nil
	c.touch()
}

// SetDataSetZ changes the z of d and moves it to keep the data sets in
// ascending z order. Among data sets with equal z, d is placed last.
func (c *Collection) SetDataSetZ(d *DataSet, z float64) error {
	if !c.owns(d, "SetDataSetZ") {
		return ErrNotOwned
	}
	if d.z == z || math.IsNaN(d.z) && math.IsNaN(z) {
		return nil
	}
	i := c.IndexOf(d)
	c.dataSets = append(c.dataSets[:i], c.dataSets[i+1:]...)
	d.z = z
	c.insert(d)
	c.touch()
	return nil
}

// AddPoint appends (x, y) to d.
func (c *Collection) AddPoint(d *DataSet, x, y float64) error {
	if !c.owns(d, "AddPoint") {
		return ErrNotOwned
	}
	d.points = append(d.points, Point{x, y})
	c.touch()
	return nil
}

// SetPoints replaces the points of d with a copy of points.
func (c *Collection) SetPoints(d *DataSet, points []Point) error {
	if !c.owns(d, "SetPoints") {
		return ErrNotOwned
	}
	d.points = append([]Point(nil), points...)
	c.touch()
	return nil
}

// ClearDataSet removes every point from d.
func (c *Collection) ClearDataSet(d *DataSet) error {
	if !c.owns(d, "ClearDataSet") {
		return ErrNotOwned
	}
	d.points = nil
	c.touch()
	return nil
}

// Colour returns the collection's colour definition. Edits to it are
// tracked by ColourVersion.
func (c *Collection) Colour() *colourscale.Definition {
	return c.colour
}

// ColourScale returns the colour scale for the current colour
// definition. It is rebuilt only when ColourVersion changes.
func (c *Collection) ColourScale() *colourscale.Scale {
	return c.colour.Scale()
}

// Fits returns the collection's fit children.
func (c *Collection) Fits() []*Collection {
	return append([]*Collection(nil), c.fits...)
}

// RemoveFit removes fit child f.
func (c *Collection) RemoveFit(f *Collection) bool {
	return removeChild(&c.fits, f)
}

// Slices returns the collection's kept slices.
func (c *Collection) Slices() []*Collection {
	return append([]*Collection(nil), c.slices...)
}

// RemoveSlice removes kept slice s.
func (c *Collection) RemoveSlice(s *Collection) bool {
	return removeChild(&c.slices, s)
}

// CurrentSlice returns the scratch slice collection filled by
// ExtractSlice, or nil if no slice has been extracted.
func (c *Collection) CurrentSlice() *Collection {
	return c.currentSlice
}

func removeChild(list *[]*Collection, child *Collection) bool {
	for i, c := range *list {
		if c == child {
			*list = append((*list)[:i], (*list)[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Ticks returns at most max major ticks, and the minor ticks, for the
// transformed range of axis a. A logarithmic axis spans the strictly
// positive bounds instead.
func (c *Collection) Ticks(a axes.Axis, log bool, max int) (major, minor []float64, err error) {
	l := c.Limits()
	if log {
		return axes.Ticks(l.PositiveMin.Get(a), l.PositiveMax.Get(a), true, max)
	}
	return axes.Ticks(l.TransformedMin.Get(a), l.TransformedMax.Get(a), false, max)
}

// update returns the transformed data sets and limits for the current
// data version, recomputing them if necessary.
func (c *Collection) update() *derived {
	return c.derived.Get(c.dataVersion, func() interface{} {
		t := c.transformAll()
		return &derived{t, computeLimits(c.dataSets, t)}
	}).(*derived)
}

// TransformedDataSets returns the transformed data sets, parallel to
// DataSets. The result must not be modified.
func (c *Collection) TransformedDataSets() []*DataSet {
	return c.update().transformed
}

// Display returns the display representation of the transformed data.
// It is rebuilt only when the data version changes. The result must
// not be modified.
func (c *Collection) Display() *Display {
	return c.display.Get(c.dataVersion, func() interface{} {
		return Synthesize(c.update().transformed)
	}).(*Display)
}
