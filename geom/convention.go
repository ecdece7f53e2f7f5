// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// flipX is the 180 degree rotation about the x axis separating the
// render-engine camera frame (looking down -Z, +Y up) from the
// computer-vision camera frame (looking down +Z, +Y down).
// It is diag(1, -1, -1) and its own inverse.
func flipX() *mat.Dense {
	return EulerX(math.Pi)
}

// RenderToCV converts an object pose expressed in the render-engine
// camera frame into the computer-vision camera frame. The conversion
// is a left-multiplication by a 180 degree rotation about x, and is
// its own inverse (see [CVToRender]).
func RenderToCV(R *mat.Dense, t r3.Vector) (*mat.Dense, r3.Vector) {
	f := flipX()
	var Rcv mat.Dense
	Rcv.Mul(f, R)
	return mat.DenseCopyOf(&Rcv), MulVec(f, t)
}

// CVToRender converts an object pose expressed in the computer-vision
// camera frame back into the render-engine camera frame. The flip is
// self-inverse, so this is the same operation as [RenderToCV].
func CVToRender(R *mat.Dense, t r3.Vector) (*mat.Dense, r3.Vector) {
	return RenderToCV(R, t)
}

// CameraRotationToCV converts a world-frame camera rotation from the
// render-engine convention to the computer-vision convention by
// right-multiplying with a 180 degree rotation about the camera's
// local x axis: the CV convention assumes the camera looks down +Z
// while the native convention looks down -Z. The camera translation
// is convention-invariant and needs no counterpart.
func CameraRotationToCV(R *mat.Dense) *mat.Dense {
	var Rcv mat.Dense
	Rcv.Mul(R, flipX())
	return mat.DenseCopyOf(&Rcv)
}
