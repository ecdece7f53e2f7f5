// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bbox derives 2D bounding boxes from instance masks and 3D
// axis-aligned / object-oriented bounding boxes from object geometry,
// in the fixed vertex ordering that downstream perception tooling
// expects.
package bbox

import (
	"errors"
	"fmt"

	"github.com/patrickkesper/amira-blender-rendering/base/iox/imagex"
)

// ErrEmptyMask is returned by [FromMask] when the mask contains no
// non-zero pixel. The caller decides whether this is fatal or a
// visibility downgrade.
var ErrEmptyMask = errors.New("bbox: empty mask")

// Rect2 is a tight 2D pixel bounding box with an exclusive maximum,
// so a single non-zero pixel at (0,0) yields (0,0)-(1,1).
type Rect2 struct {
	MinX, MinY, MaxX, MaxY int
}

// FromMask loads the per-instance mask image at the given path,
// collapses color channels by summation, and returns the tight pixel
// bounding box of all non-zero pixels. It returns [ErrEmptyMask] if
// no pixel is non-zero.
func FromMask(maskPath string) (Rect2, error) {
	im, _, err := imagex.Open(maskPath)
	if err != nil {
		return Rect2{}, fmt.Errorf("bbox.FromMask: %w", err)
	}
	b := im.Bounds()
	r := Rect2{MinX: b.Max.X, MinY: b.Max.Y, MaxX: b.Min.X, MaxY: b.Min.Y}
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := im.At(x, y).RGBA()
			if cr+cg+cb == 0 {
				continue
			}
			found = true
			if x < r.MinX {
				r.MinX = x
			}
			if y < r.MinY {
				r.MinY = y
			}
			if x+1 > r.MaxX {
				r.MaxX = x + 1
			}
			if y+1 > r.MaxY {
				r.MaxY = y + 1
			}
		}
	}
	if !found {
		return Rect2{}, ErrEmptyMask
	}
	return r, nil
}
