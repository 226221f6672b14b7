// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memo caches values derived from a versioned source.
//
// A Cell holds the triple (source version, version the value was
// built at, value). The value is rebuilt only when the source version
// differs from the version it was built at. Versions are compared for
// exact equality, so any change to the source version, including a
// decrease, invalidates the cell.
//
// Cells are not safe for concurrent use.
package memo

// A Cell caches a value derived from a source whose state is
// summarized by an integer version. The zero Cell is empty.
type Cell struct {
	built bool
	at    int64
	val   interface{}
}

// Get returns the cached value if it was built at version, and
// otherwise calls build, caches its result at version, and returns it.
func (c *Cell) Get(version int64, build func() interface{}) interface{} {
	if !c.built || c.at != version {
		c.val = build()
		c.at = version
		c.built = true
	}
	return c.val
}

// Version returns the version the cached value was built at and
// whether the cell holds a value at all.
func (c *Cell) Version() (int64, bool) {
	return c.at, c.built
}
