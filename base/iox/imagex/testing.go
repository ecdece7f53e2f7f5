// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// CompareUint16 returns true if the two values differ by no more than tol.
func CompareUint16(a, b uint16, tol int) bool {
	d := int(a) - int(b)
	if d < -tol {
		return false
	}
	if d > tol {
		return false
	}
	return true
}

// AssertGray16 compares two 16-bit grayscale images pixel by pixel with
// the given per-pixel tolerance, reporting the first differing pixel.
func AssertGray16(t TestingT, want, got *image.Gray16, tol int) {
	if want.Bounds() != got.Bounds() {
		t.Errorf("AssertGray16: bounds differ: want %v, got %v", want.Bounds(), got.Bounds())
		return
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			wv := want.Gray16At(x, y).Y
			gv := got.Gray16At(x, y).Y
			if !CompareUint16(wv, gv, tol) {
				t.Errorf("AssertGray16: pixel (%d,%d): want %d, got %d", x, y, wv, gv)
				return
			}
		}
	}
}
