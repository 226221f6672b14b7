// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memo

import "testing"

func TestCell(t *testing.T) {
	var c Cell
	builds := 0
	build := func() interface{} {
		builds++
		return builds * 10
	}

	if _, ok := c.Version(); ok {
		t.Fatal("empty cell holds a value")
	}
	if v := c.Get(0, build); v != 10 || builds != 1 {
		t.Fatalf("first Get = %d after %d builds", v, builds)
	}
	if v := c.Get(0, build); v != 10 || builds != 1 {
		t.Fatalf("cached Get = %d after %d builds", v, builds)
	}
	if v := c.Get(1, build); v != 20 || builds != 2 {
		t.Fatalf("Get after version change = %d after %d builds", v, builds)
	}
	// Any mismatch rebuilds, including going backwards.
	if v := c.Get(0, build); v != 30 || builds != 3 {
		t.Fatalf("Get after version decrease = %d after %d builds", v, builds)
	}
	if at, ok := c.Version(); at != 0 || !ok {
		t.Fatalf("Version() = %d, %v", at, ok)
	}
}
