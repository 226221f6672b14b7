// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command zplot plots a collection of (x, y) curves indexed by z.
//
// zplot reads curve files (see package curvefile), optionally runs a
// script of commands against the resulting collection, and renders the
// collection, or one of its slices or fits, as an SVG line plot, a PNG
// grid coloured by y, a summary table, or a curve file of the
// transformed data.
//
// Script commands, one per line:
//
//	transform x|y|z equation    set an axis equation over x, y, z
//	enable x|y|z                apply an axis equation
//	disable x|y|z               stop applying an axis equation
//	resample step [constrain]   resample transformed x onto a fixed step
//	colour single #c            colour everything #c
//	colour rgb|hsv #lo #hi      two-point gradient over [0, 1]
//	colour custom v #c...       gradient through each (v, #c)
//	alpha own | 0-255           use control point alpha, or a fixed alpha
//	slice x|z value             extract the slice nearest value
//	keep                        keep the current slice
//	fit poly degree [n]         least-squares polynomial fit
//	fit loess degree span [n]   LOESS fit
//	plot main | slice | fit i | kept i
//	                            select what to render
//
// Arguments may be quoted as in a shell. By default colours are looked
// up by value normalized to [0, 1] over the data's range.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/aclements/zplot/collection"
	"github.com/aclements/zplot/curvefile"
	"github.com/aclements/zplot/render"
	"golang.org/x/crypto/ssh/terminal"
)

func main() {
	log.SetPrefix("zplot: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagFormat     = flag.String("format", "svg", "output `format`: svg, png, table, or curves")
		flagWidth      = flag.Int("w", 0, "output width in pixels (default: plot 500, grid one pixel per sample)")
		flagHeight     = flag.Int("h", 0, "output height in pixels (default: plot 350, grid one pixel per curve)")
		flagScript     = flag.String("script", "", "run commands from `file`")
		flagSmooth     = flag.Bool("smooth", false, "scale grid output bilinearly")
		flagNormalize  = flag.Bool("normalize", true, "normalize values to [0, 1] before colouring")
		flagName       = flag.String("name", "", "collection `name` (default: input file names)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	switch *flagFormat {
	case "svg", "png", "table", "curves":
	default:
		log.Fatalf("unknown format %q", *flagFormat)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	// Read curve inputs.
	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	name := *flagName
	if name == "" && !(len(paths) == 1 && paths[0] == "-") {
		name = strings.Join(paths, " ")
	}
	c := collection.New(name)
	for _, path := range paths {
		var curves []*curvefile.Curve
		var err error
		if path == "-" {
			curves, err = curvefile.Parse(os.Stdin, "<stdin>")
		} else {
			curves, err = curvefile.ReadFile(path)
		}
		if err != nil {
			log.Fatal(err)
		}
		curvefile.Load(c, curves)
	}

	// Run script.
	s := newSession(c)
	if *flagScript != "" {
		f, err := os.Open(*flagScript)
		if err != nil {
			log.Fatal(err)
		}
		err = s.runScript(f, *flagScript)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	// Prepare for output.
	out := os.Stdout
	if *flagOut != "" {
		var err error
		out, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
	} else if *flagFormat == "png" && terminal.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write PNG to a terminal; use -o")
	}

	opts := render.Options{
		Width:     *flagWidth,
		Height:    *flagHeight,
		Normalize: *flagNormalize,
		Smooth:    *flagSmooth,
	}
	if err := write(out, s.target, *flagFormat, opts); err != nil {
		log.Fatal(err)
	}
	if out != os.Stdout {
		if err := out.Close(); err != nil {
			log.Fatal(err)
		}
	}
}

// write renders c to w in the given format.
func write(w io.Writer, c *collection.Collection, format string, opts render.Options) error {
	switch format {
	case "svg":
		return render.LinePlot(w, c, opts)
	case "png":
		return render.WriteGrid(w, c, opts)
	case "table":
		return render.Table(w, c)
	case "curves":
		return curvefile.Write(w, curvefile.FromDataSets(c.TransformedDataSets()))
	}
	return fmt.Errorf("unknown format %q", format)
}
