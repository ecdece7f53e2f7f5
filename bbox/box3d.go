// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bbox

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/patrickkesper/amira-blender-rendering/geom"
	"github.com/patrickkesper/amira-blender-rendering/scene"
)

// ErrCornerCount is returned when an object's local bounding box does
// not have exactly 8 corners. This indicates a corrupted upstream
// contract and is never recovered from.
var ErrCornerCount = errors.New("bbox: bounding box must have exactly 8 corners")

// reorder is the fixed permutation translating the renderer's native
// bounding-box corner ordering into the annotation schema's ordering.
var reorder = [8]int{1, 0, 2, 3, 5, 4, 6, 7}

// Reorder returns the 8 given corners permuted into the annotation
// schema's vertex ordering. It returns [ErrCornerCount] if the input
// does not have exactly 8 corners.
func Reorder(corners []r3.Vector) ([]r3.Vector, error) {
	if len(corners) != 8 {
		return nil, fmt.Errorf("%w (got %d)", ErrCornerCount, len(corners))
	}
	out := make([]r3.Vector, 8)
	for i, j := range reorder {
		out[i] = corners[j]
	}
	return out, nil
}

// applyWorld transforms the point v by the 4x4 object-to-world matrix.
func applyWorld(world *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: world.At(0, 0)*v.X + world.At(0, 1)*v.Y + world.At(0, 2)*v.Z + world.At(0, 3),
		Y: world.At(1, 0)*v.X + world.At(1, 1)*v.Y + world.At(1, 2)*v.Z + world.At(1, 3),
		Z: world.At(2, 0)*v.X + world.At(2, 1)*v.Y + world.At(2, 2)*v.Z + world.At(2, 3),
	}
}

// centroid computes the box centroid from the unordered corners, as
// the midpoint of the diagonal between corner 0 and corner 6 of the
// renderer's native ordering.
func centroid(corners []r3.Vector) r3.Vector {
	return corners[0].Add(corners[6].Sub(corners[0]).Mul(0.5))
}

// Boxes3D computes the 3D bounding boxes of the given object from its
// local bounding-box corners:
//
//   - aabb: the axis-aligned box, corners taken directly in object
//     space with no rotation applied;
//   - oobb: the object-oriented box, each corner transformed by the
//     object's world matrix;
//   - corners2d: the oobb centroid and corners projected to pixel
//     coordinates through the given camera.
//
// Each box is returned as 9 rows: the centroid followed by the 8
// corners permuted into the annotation schema's ordering. It returns
// [ErrCornerCount] if the object's bounding box does not have exactly
// 8 corners.
func Boxes3D(obj *scene.Object, cam *scene.Camera) (aabb, oobb [9]r3.Vector, corners2d [9][2]float64, err error) {
	local, rerr := Reorder(obj.BoundBox)
	if rerr != nil {
		err = rerr
		return
	}

	aabb[0] = centroid(obj.BoundBox)
	copy(aabb[1:], local)

	world := make([]r3.Vector, 8)
	for i, v := range obj.BoundBox {
		world[i] = applyWorld(obj.World, v)
	}
	oobb[0] = centroid(world)
	ordered, _ := Reorder(world)
	copy(oobb[1:], ordered)

	for i, v := range oobb {
		nx, ny := geom.ProjectPoint(v, cam)
		px, py := geom.ToPixelCoords(nx, ny, cam.Width, cam.Height)
		corners2d[i] = [2]float64{px, py}
	}
	return
}
