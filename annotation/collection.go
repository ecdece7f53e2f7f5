// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import "strconv"

// Collection is an append-only ordered sequence of pose render
// results for one frame, in one coordinate convention.
type Collection struct {
	results []*PoseRenderResult
}

// Add appends the given result to the collection.
func (c *Collection) Add(r *PoseRenderResult) {
	c.results = append(c.results, r)
}

// Len returns the number of results in the collection.
func (c *Collection) Len() int {
	return len(c.results)
}

// Results returns the results in append order.
func (c *Collection) Results() []*PoseRenderResult {
	return c.results
}

// StateDict returns the collection as a mapping from the result's
// index in append order (as a decimal string) to the result, the
// stable per-frame schema used for serialization.
func (c *Collection) StateDict() map[string]*PoseRenderResult {
	sd := make(map[string]*PoseRenderResult, len(c.results))
	for i, r := range c.results {
		sd[strconv.Itoa(i)] = r
	}
	return sd
}
