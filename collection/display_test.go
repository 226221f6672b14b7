// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collection

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func newSet(z float64, xs ...float64) *DataSet {
	d := &DataSet{z: z}
	for _, x := range xs {
		d.points = append(d.points, Point{x, 10 * x})
	}
	return d
}

func checkShape(t *testing.T, d *Display) {
	t.Helper()
	for i := 1; i < len(d.Abscissa); i++ {
		if !(d.Abscissa[i] > d.Abscissa[i-1]) {
			t.Fatalf("abscissa not strictly ascending at %d: %v", i, d.Abscissa)
		}
	}
	for i, r := range d.Rows {
		if len(r.Values) != len(d.Abscissa) || len(r.Types) != len(d.Abscissa) {
			t.Fatalf("row %d has %d values and %d types, want %d", i, len(r.Values), len(r.Types), len(d.Abscissa))
		}
	}
}

func TestSynthesizeExample(t *testing.T) {
	sets := []*DataSet{
		newSet(0, 0, 1, 2),
		newSet(1, 0.5, 1.5),
		newSet(2, 1, 2, 3),
	}
	d := Synthesize(sets)
	checkShape(t, d)

	if want := []float64{0, 0.5, 1, 1.5, 2, 3}; !reflect.DeepEqual(d.Abscissa, want) {
		t.Fatalf("abscissa %v, want %v", d.Abscissa, want)
	}

	const N, R, I = NoPoint, RealPoint, InterpolatedPoint
	wantTypes := [][]PointType{
		{R, I, R, I, R, N},
		{N, R, I, R, N, N},
		{N, N, R, I, R, R},
	}
	wantValues := [][]float64{
		{0, 5, 10, 15, 20, 0},
		{0, 5, 10, 15, 0, 0},
		{0, 0, 10, 15, 20, 30},
	}
	for i, r := range d.Rows {
		if !reflect.DeepEqual(r.Types, wantTypes[i]) {
			t.Errorf("row %d types %v, want %v", i, r.Types, wantTypes[i])
		}
		if !reflect.DeepEqual(r.Values, wantValues[i]) {
			t.Errorf("row %d values %v, want %v", i, r.Values, wantValues[i])
		}
		if r.Z != float64(i) || r.DataSet != i {
			t.Errorf("row %d has z %v, data set %d", i, r.Z, r.DataSet)
		}
	}
}

func TestSynthesizeAligned(t *testing.T) {
	// Fully aligned data produces only real points.
	sets := []*DataSet{
		newSet(0, 1, 2, 3, 4),
		newSet(1, 1, 2, 3, 4),
		newSet(2, 1, 2, 3, 4),
	}
	d := Synthesize(sets)
	checkShape(t, d)
	if len(d.Abscissa) != 4 {
		t.Fatalf("abscissa %v", d.Abscissa)
	}
	for i, r := range d.Rows {
		for j, typ := range r.Types {
			if typ != RealPoint {
				t.Errorf("row %d position %d is %v", i, j, typ)
			}
		}
	}
}

func TestSynthesizeEpsilon(t *testing.T) {
	sets := []*DataSet{
		newSet(0, 1, 2),
		newSet(1, 1+MergeEpsilon/2, 2+2*MergeEpsilon),
	}
	d := Synthesize(sets)
	checkShape(t, d)
	if want := []float64{1, 2, 2 + 2*MergeEpsilon}; !reflect.DeepEqual(d.Abscissa, want) {
		t.Fatalf("abscissa %v, want %v", d.Abscissa, want)
	}
	if d.Rows[1].Types[0] != RealPoint || d.Rows[1].Values[0] != sets[1].points[0].Y {
		t.Errorf("near-equal x not merged: %v %v", d.Rows[1].Types, d.Rows[1].Values)
	}
	if d.Rows[1].Types[1] != InterpolatedPoint {
		t.Errorf("x=2 of row 1 should be interpolated, is %v", d.Rows[1].Types[1])
	}
}

func TestSynthesizeSkipsEmpty(t *testing.T) {
	sets := []*DataSet{newSet(0), newSet(1, 1, 2), newSet(2)}
	d := Synthesize(sets)
	if d.Len() != 1 || d.Row(0).DataSet != 1 {
		t.Fatalf("want one row from data set 1, got %+v", d.Rows)
	}

	d = Synthesize(nil)
	if d.Len() != 0 || len(d.Abscissa) != 0 {
		t.Fatalf("empty input produced %+v", d)
	}
}

func TestGapFill(t *testing.T) {
	// Row 0 has real points at abscissa 0 and 5 only; row 1
	// supplies the positions in between at uneven spacing.
	sets := []*DataSet{
		{z: 0, points: []Point{{0, 1}, {10, 6}}},
		{z: 1, points: []Point{{-1, 0}, {0.5, 0}, {1, 0}, {4, 0}, {7.5, 0}, {12, 0}}},
	}
	d := Synthesize(sets)
	checkShape(t, d)
	x := d.Abscissa
	r := d.Row(0)
	i, j := 1, 6
	if x[i] != 0 || x[j] != 10 {
		t.Fatalf("abscissa %v", x)
	}
	yi, yj := r.Values[i], r.Values[j]
	for k := i + 1; k < j; k++ {
		want := yi + (yj-yi)*(x[k]-x[i])/(x[j]-x[i])
		if r.Types[k] != InterpolatedPoint || r.Values[k] != want {
			t.Errorf("position %d: %v %v, want interpolated %v", k, r.Types[k], r.Values[k], want)
		}
	}
	// Leading and trailing gaps stay empty.
	for _, k := range []int{0, len(x) - 1} {
		if r.Valid(k) {
			t.Errorf("position %d of row 0 is %v, want none", k, r.Types[k])
		}
	}
	if want := []Point{{0, 1}, {0.5, 1.25}, {1, 1.5}, {4, 3}, {7.5, 4.75}, {10, 6}}; !reflect.DeepEqual(d.Points(0), want) {
		t.Errorf("Points(0) = %v, want %v", d.Points(0), want)
	}
}

func TestSynthesizeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 50; iter++ {
		var sets []*DataSet
		for r := rng.Intn(6); r >= 0; r-- {
			n := rng.Intn(20)
			xs := make([]float64, n)
			for i := range xs {
				xs[i] = float64(rng.Intn(100)) / 4
			}
			sort.Float64s(xs)
			// Remove duplicates, as the transform stage does.
			uniq := xs[:0]
			for i, x := range xs {
				if i == 0 || x != xs[i-1] {
					uniq = append(uniq, x)
				}
			}
			sets = append(sets, newSet(float64(r), uniq...))
		}
		d := Synthesize(sets)
		checkShape(t, d)

		// Every source point appears as a real point, and
		// nothing is extrapolated.
		for _, row := range d.Rows {
			src := sets[row.DataSet]
			real, first, last := 0, -1, -1
			for j, typ := range row.Types {
				if typ == RealPoint {
					if first < 0 {
						first = j
					}
					last = j
					real++
				}
			}
			if real != src.Len() {
				t.Fatalf("row for set %d has %d real points, want %d", row.DataSet, real, src.Len())
			}
			for j, typ := range row.Types {
				if (j < first || j > last) && typ != NoPoint {
					t.Fatalf("position %d outside real span [%d,%d] is %v", j, first, last, typ)
				}
				if j >= first && j <= last && typ == NoPoint {
					t.Fatalf("interior position %d not filled", j)
				}
			}
		}
	}
}
