// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curvefile reads and writes text files of (x, y) curves.
//
// A curve file is a sequence of curves. Each curve is a block of
// optional header lines followed by one "x y" pair per line:
//
//	name: run 1
//	z: 0.5
//	source: runs/1.txt
//	0 1.5
//	1 2.25
//
// The recognized headers are name, z, and source. A blank line, or a
// header line following points, ends the current curve. Text from '#'
// to the end of a line is a comment.
//
// z must be a finite number. A curve without a z header gets its index
// in the file as z, and one without a name header is named "curve N".
package curvefile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/aclements/zplot/collection"
)

// Curve is one curve read from a curve file.
type Curve struct {
	Name string
	Z    float64

	// Source is the file the curve was read from, or the value of
	// its source header.
	Source string

	Points []collection.Point
}

// A SyntaxError reports a malformed line in a curve file.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

var headerRe = regexp.MustCompile(`^([a-z]+):\s*(.*)$`)

// Parse parses a curve file from r. file names r in errors and is the
// default Source of each curve.
func Parse(r io.Reader, file string) ([]*Curve, error) {
	var curves []*Curve
	var cur *Curve
	zSet := false

	finish := func() {
		if cur == nil {
			return
		}
		if !zSet {
			cur.Z = float64(len(curves))
		}
		if cur.Name == "" {
			cur.Name = fmt.Sprintf("curve %d", len(curves))
		}
		curves = append(curves, cur)
		cur, zSet = nil, false
	}

	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			finish()
			continue
		}
		syntaxErr := func(format string, args ...interface{}) error {
			return &SyntaxError{file, lineno, fmt.Sprintf(format, args...)}
		}

		// Header lines.
		if m := headerRe.FindStringSubmatch(line); m != nil {
			if cur != nil && len(cur.Points) > 0 {
				finish()
			}
			if cur == nil {
				cur = &Curve{Source: file}
			}
			switch key, val := m[1], m[2]; key {
			case "name":
				cur.Name = val
			case "source":
				cur.Source = val
			case "z":
				z, err := strconv.ParseFloat(val, 64)
				if err != nil || math.IsNaN(z) || math.IsInf(z, 0) {
					return nil, syntaxErr("bad z %q", val)
				}
				cur.Z, zSet = z, true
			default:
				return nil, syntaxErr("unknown header %q", key)
			}
			continue
		}

		// Point lines.
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, syntaxErr("want \"x y\", got %q", line)
		}
		x, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return nil, syntaxErr("bad x %q", f[0])
		}
		y, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, syntaxErr("bad y %q", f[1])
		}
		if cur == nil {
			cur = &Curve{Source: file}
		}
		cur.Points = append(cur.Points, collection.Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	finish()
	return curves, nil
}

// ReadFile parses the curve file at path.
func ReadFile(path string) ([]*Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Write writes curves to w in curve file format. Names and sources
// must not contain newlines or '#'.
func Write(w io.Writer, curves []*Curve) error {
	bw := bufio.NewWriter(w)
	for i, c := range curves {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "name: %s\n", c.Name)
		fmt.Fprintf(bw, "z: %s\n", formatFloat(c.Z))
		if c.Source != "" {
			fmt.Fprintf(bw, "source: %s\n", c.Source)
		}
		for _, p := range c.Points {
			fmt.Fprintf(bw, "%s %s\n", formatFloat(p.X), formatFloat(p.Y))
		}
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Load adds each curve to c as a data set and returns the new data
// sets in curve order.
func Load(c *collection.Collection, curves []*Curve) []*collection.DataSet {
	sets := make([]*collection.DataSet, len(curves))
	for i, cv := range curves {
		d := c.AddDataSet(cv.Name, cv.Z, cv.Points...)
		d.SetSource(cv.Source)
		sets[i] = d
	}
	return sets
}

// FromDataSets returns a curve for each data set.
func FromDataSets(sets []*collection.DataSet) []*Curve {
	curves := make([]*Curve, len(sets))
	for i, d := range sets {
		curves[i] = &Curve{Name: d.Name(), Z: d.Z(), Source: d.Source(), Points: d.Points()}
	}
	return curves
}
