// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/aclements/zplot/axes"
	"github.com/aclements/zplot/collection"
	"github.com/aclements/zplot/colourscale"
	"github.com/aclements/zplot/curvefile"
	"github.com/aclements/zplot/render"
)

var optsForTest = render.Options{Normalize: true}

const input = `
name: a
z: 0
0 0
1 10
2 20

name: b
z: 1
0.5 5
1.5 15

name: c
z: 2
1 10
2 20
3 30
`

func load(t *testing.T) *collection.Collection {
	t.Helper()
	curves, err := curvefile.Parse(strings.NewReader(input), "input")
	if err != nil {
		t.Fatal(err)
	}
	c := collection.New("test")
	curvefile.Load(c, curves)
	return c
}

func TestScript(t *testing.T) {
	c := load(t)
	s := newSession(c)
	script := `
# Scale y and colour by an HSV gradient.
transform y "y / 10"
enable y
colour hsv '#f00' '#0000ff'
alpha 200
slice x 1.2
keep
`
	if err := s.runScript(strings.NewReader(script), "script"); err != nil {
		t.Fatal(err)
	}
	if c.TransformEquation(axes.Y) != "y / 10" || !c.TransformEnabled(axes.Y) {
		t.Errorf("y transform not set: %q", c.TransformEquation(axes.Y))
	}
	def := c.Colour()
	if def.Source() != colourscale.HSVGradient {
		t.Errorf("colour source %v, want hsv", def.Source())
	}
	if p, _ := def.GradientPoint(colourscale.HSVGradient, 1); p.Colour != (color.NRGBA{0, 0, 255, 255}) || p.Value != 1 {
		t.Errorf("hsv end point %+v", p)
	}
	if mode, a := def.AlphaControl(); mode != colourscale.FixedAlpha || a != 200 {
		t.Errorf("alpha %v %d, want fixed 200", mode, a)
	}
	if s.target != c.CurrentSlice() {
		t.Fatalf("slice did not become the target")
	}
	if len(c.Slices()) != 1 {
		t.Fatalf("keep did not keep the slice")
	}
	if got := s.target.DataSet(0).Points(); len(got) != 3 || got[0] != (collection.Point{X: 0, Y: 1}) {
		t.Errorf("x slice points %v", got)
	}

	if err := s.exec([]string{"plot", "main"}); err != nil || s.target != c {
		t.Errorf("plot main: %v", err)
	}
	if err := s.exec([]string{"plot", "kept", "0"}); err != nil || s.target != c.Slices()[0] {
		t.Errorf("plot kept 0: %v", err)
	}
}

func TestScriptFit(t *testing.T) {
	c := load(t)
	s := newSession(c)
	if err := s.runScript(strings.NewReader("fit poly 1 5\nresample 0.5 constrain\n"), "script"); err != nil {
		t.Fatal(err)
	}
	if len(c.Fits()) != 1 || s.target != c.Fits()[0] {
		t.Fatalf("fit not added and targeted")
	}
	if n := s.target.DataSet(0).Len(); n != 5 {
		t.Errorf("fit has %d points, want 5", n)
	}
	if r := c.Resample(); r.Step != 0.5 || !r.Constrain {
		t.Errorf("resample %+v", r)
	}

	var buf bytes.Buffer
	if err := write(&buf, s.target, "curves", optsForTest); err != nil {
		t.Fatal(err)
	}
	curves, err := curvefile.Parse(&buf, "out")
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) != 3 || curves[2].Name != "c" {
		t.Errorf("exported %d curves", len(curves))
	}
}

func TestScriptErrors(t *testing.T) {
	for _, test := range []struct {
		script, err string
	}{
		{"bogus", "script:1: unknown command"},
		{"\n\ntransform", "script:3: usage: transform"},
		{"transform w x", "script:1: "},
		{"transform y 'unterminated", "script:1: "},
		{"transform y y*\nenable y", "script:1: "},
		{"enable y\ntransform y y*", "script:2: "},
		{"resample -1", "script:1: bad resample step"},
		{"resample 1 loosely", "script:1: unknown resample option"},
		{"colour mauve '#fff'", "script:1: unknown colour source"},
		{"colour single red", "script:1: bad colour"},
		{"colour custom 0 '#fff' 1", "script:1: usage: colour custom"},
		{"alpha 300", "script:1: bad alpha"},
		{"slice y 1", "script:1: slicing along y is not supported"},
		{"keep", "script:1: no data"},
		{"fit cubic 3", "script:1: unknown fit"},
		{"fit poly 2", "script:1: "},
		{"plot fit 0", "script:1: no fit 0"},
		{"plot elsewhere", "script:1: unknown plot target"},
	} {
		s := newSession(load(t))
		err := s.runScript(strings.NewReader(test.script), "script")
		if err == nil || !strings.HasPrefix(err.Error(), test.err) {
			t.Errorf("%q: got error %v, want prefix %q", test.script, err, test.err)
		}
	}
}

func TestWriteFormats(t *testing.T) {
	c := load(t)
	for _, format := range []string{"svg", "png", "table", "curves"} {
		var buf bytes.Buffer
		if err := write(&buf, c, format, optsForTest); err != nil {
			t.Errorf("%s: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: no output", format)
		}
	}
	if err := write(new(bytes.Buffer), c, "pdf", optsForTest); err == nil {
		t.Errorf("unknown format accepted")
	}
}
