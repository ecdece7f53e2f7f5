// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/patrickkesper/amira-blender-rendering/scene"
)

// ProjectPoint perspective-projects the world point p through the
// camera's pose and intrinsic calibration, returning normalized image
// coordinates in [0,1] x [0,1] with the origin at the bottom-left,
// matching the render engine's view-space convention. Points outside
// the frustum yield coordinates outside [0,1]; a point at the camera
// origin yields NaN.
func ProjectPoint(p r3.Vector, cam *scene.Camera) (x, y float64) {
	// camera frame: x right, y up, looking along -z
	pc := MulVecTrans(cam.Rotation, p.Sub(cam.Translation))
	fx := cam.K.At(0, 0)
	fy := cam.K.At(1, 1)
	cx := cam.K.At(0, 2)
	cy := cam.K.At(1, 2)
	u := fx*(pc.X/-pc.Z) + cx
	v := cy - fy*(pc.Y/-pc.Z)
	return u / float64(cam.Width), 1 - v/float64(cam.Height)
}

// ToPixelCoords maps normalized image coordinates with a bottom-left
// origin, as returned by [ProjectPoint], to rounded pixel coordinates
// with a top-left origin, using the given render resolution.
func ToPixelCoords(x, y float64, width, height int) (px, py float64) {
	return math.Round(x * float64(width)), math.Round((1 - y) * float64(height))
}
