// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/zplot/axes"
	"github.com/aclements/zplot/collection"
	"github.com/aclements/zplot/colourscale"
	"github.com/aclements/zplot/fits"
	shellquote "github.com/kballard/go-shellquote"
)

// defaultFitPoints is the number of points each fit curve is evaluated
// at if the fit command does not say.
const defaultFitPoints = 100

// A session runs script commands against a collection.
type session struct {
	main *collection.Collection

	// target is the collection that is rendered. It is main or one
	// of its children.
	target *collection.Collection
}

func newSession(c *collection.Collection) *session {
	return &session{main: c, target: c}
}

// runScript executes each line of r as a command. Blank lines and
// lines starting with '#' are ignored. file names r in errors.
func (s *session) runScript(r io.Reader, file string) error {
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shellquote.Split(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %v", file, lineno, err)
		}
		if err := s.exec(args); err != nil {
			return fmt.Errorf("%s:%d: %v", file, lineno, err)
		}
	}
	return scanner.Err()
}

type command struct {
	usage string
	nargs int // minimum argument count
	run   func(s *session, args []string) error
}

var commands = map[string]command{
	"transform": {"transform x|y|z equation", 2, (*session).transform},
	"enable":    {"enable x|y|z", 1, (*session).enable},
	"disable":   {"disable x|y|z", 1, (*session).enable},
	"resample":  {"resample step [constrain]", 1, (*session).resample},
	"colour":    {"colour single #c | rgb|hsv #lo #hi | custom v #c...", 2, (*session).colour},
	"alpha":     {"alpha own | 0-255", 1, (*session).alpha},
	"slice":     {"slice x|z value", 2, (*session).slice},
	"keep":      {"keep", 0, (*session).keep},
	"fit":       {"fit poly degree [n] | loess degree span [n]", 2, (*session).fit},
	"plot":      {"plot main | slice | fit i | kept i", 1, (*session).plot},
}

// exec runs one command. args[0] is the command name.
func (s *session) exec(args []string) error {
	cmd, ok := commands[args[0]]
	if !ok {
		var names []string
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown command %q; commands are %s", args[0], strings.Join(names, ", "))
	}
	if len(args)-1 < cmd.nargs {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	return cmd.run(s, args)
}

func (s *session) transform(args []string) error {
	a, err := axes.Parse(args[1])
	if err != nil {
		return err
	}
	return s.main.SetTransformEquation(a, strings.Join(args[2:], " "))
}

func (s *session) enable(args []string) error {
	a, err := axes.Parse(args[1])
	if err != nil {
		return err
	}
	s.main.SetTransformEnabled(a, args[0] == "enable")
	if args[0] == "enable" && !s.main.TransformValid(a) {
		return fmt.Errorf("%s equation %q is invalid: %v", a, s.main.TransformEquation(a), s.main.TransformError(a))
	}
	return nil
}

func (s *session) resample(args []string) error {
	step, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad step %q", args[1])
	}
	r := collection.Resample{Step: step}
	if len(args) > 2 {
		if args[2] != "constrain" {
			return fmt.Errorf("unknown resample option %q", args[2])
		}
		r.Constrain = true
	}
	return s.main.SetResample(r)
}

func (s *session) colour(args []string) error {
	def := s.main.Colour()
	src, err := colourscale.ParseSource(args[1])
	if err != nil {
		return err
	}
	switch src {
	case colourscale.SingleColour:
		if len(args) != 3 {
			return fmt.Errorf("usage: colour single #colour")
		}
		c, err := colourscale.ParseColour(args[2])
		if err != nil {
			return err
		}
		def.SetSingleColour(c)

	case colourscale.RGBGradient, colourscale.HSVGradient:
		if len(args) != 4 {
			return fmt.Errorf("usage: colour %s #lo #hi", src)
		}
		for i, arg := range args[2:] {
			c, err := colourscale.ParseColour(arg)
			if err != nil {
				return err
			}
			if err := def.SetGradientPoint(src, i, colourscale.Point{Value: float64(i), Colour: c}); err != nil {
				return err
			}
		}

	case colourscale.CustomGradient:
		pairs := args[2:]
		if len(pairs)%2 != 0 {
			return fmt.Errorf("usage: colour custom value #colour...")
		}
		var points []colourscale.Point
		for i := 0; i < len(pairs); i += 2 {
			v, err := strconv.ParseFloat(pairs[i], 64)
			if err != nil {
				return fmt.Errorf("bad colour value %q", pairs[i])
			}
			c, err := colourscale.ParseColour(pairs[i+1])
			if err != nil {
				return err
			}
			points = append(points, colourscale.Point{Value: v, Colour: c})
		}
		def.ClearCustomPoints()
		for _, p := range points {
			def.AddCustomPoint(p)
		}
	}
	def.SetSource(src)
	return nil
}

func (s *session) alpha(args []string) error {
	def := s.main.Colour()
	if args[1] == "own" {
		def.SetAlphaControl(colourscale.OwnAlpha)
		return nil
	}
	a, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return fmt.Errorf("bad alpha %q", args[1])
	}
	def.SetFixedAlpha(uint8(a))
	def.SetAlphaControl(colourscale.FixedAlpha)
	return nil
}

func (s *session) slice(args []string) error {
	a, err := axes.Parse(args[1])
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("bad slice position %q", args[2])
	}
	cur, err := s.main.ExtractSlice(a, v)
	if err != nil {
		return err
	}
	s.target = cur
	return nil
}

func (s *session) keep(args []string) error {
	_, err := s.main.KeepSlice()
	return err
}

func (s *session) fit(args []string) error {
	var f collection.Fitter
	var rest []string
	switch args[1] {
	case "poly":
		degree, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad degree %q", args[2])
		}
		f, rest = fits.Polynomial{Degree: degree}, args[3:]
	case "loess":
		if len(args) < 4 {
			return fmt.Errorf("usage: fit loess degree span [n]")
		}
		degree, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad degree %q", args[2])
		}
		span, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("bad span %q", args[3])
		}
		f, rest = fits.LOESS{Degree: degree, Span: span}, args[4:]
	default:
		return fmt.Errorf("unknown fit %q", args[1])
	}
	n := defaultFitPoints
	if len(rest) > 0 {
		var err error
		if n, err = strconv.Atoi(rest[0]); err != nil {
			return fmt.Errorf("bad point count %q", rest[0])
		}
	}
	name := fmt.Sprintf("%s %s", s.main.Name(), f)
	fitted, err := s.main.AddFit(name, f, n)
	if err != nil {
		return err
	}
	s.target = fitted
	return nil
}

func (s *session) plot(args []string) error {
	child := func(list []*collection.Collection) error {
		if len(args) < 3 {
			return fmt.Errorf("usage: plot %s i", args[1])
		}
		i, err := strconv.Atoi(args[2])
		if err != nil || i < 0 || i >= len(list) {
			return fmt.Errorf("no %s %s", args[1], args[2])
		}
		s.target = list[i]
		return nil
	}
	switch args[1] {
	case "main":
		s.target = s.main
	case "slice":
		if s.main.CurrentSlice() == nil {
			return collection.ErrNoData
		}
		s.target = s.main.CurrentSlice()
	case "fit":
		return child(s.main.Fits())
	case "kept":
		return child(s.main.Slices())
	default:
		return fmt.Errorf("unknown plot target %q", args[1])
	}
	return nil
}
