// Copyright (c) 2026, The Amira Blender Rendering Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the pure geometric functions of the annotation
// pipeline: relative object-camera poses, perspective projection to
// pixel coordinates, and conversion between the render-engine and
// computer-vision coordinate conventions.
//
// All functions assume well-formed finite inputs. There is no explicit
// error handling: a malformed transform propagates as NaN or Inf into
// downstream results.
package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/patrickkesper/amira-blender-rendering/scene"
)

// EulerX returns the rotation matrix for a rotation of rad radians
// about the x axis.
func EulerX(rad float64) *mat.Dense {
	c, s := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

// EulerY returns the rotation matrix for a rotation of rad radians
// about the y axis.
func EulerY(rad float64) *mat.Dense {
	c, s := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

// EulerZ returns the rotation matrix for a rotation of rad radians
// about the z axis.
func EulerZ(rad float64) *mat.Dense {
	c, s := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// EulerXYZDeg returns the rotation matrix for the given XYZ Euler
// angles in degrees: a rotation about x, then y, then z, so that
// R = Rz * Ry * Rx.
func EulerXYZDeg(deg r3.Vector) *mat.Dense {
	rx := EulerX(deg.X * math.Pi / 180)
	ry := EulerY(deg.Y * math.Pi / 180)
	rz := EulerZ(deg.Z * math.Pi / 180)
	var zy, zyx mat.Dense
	zy.Mul(rz, ry)
	zyx.Mul(&zy, rx)
	return mat.DenseCopyOf(&zyx)
}

// MulVec applies the 3x3 matrix m to the vector v.
func MulVec(m *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// MulVecTrans applies the transpose of the 3x3 matrix m to the vector
// v, which for a rotation matrix is the inverse rotation.
func MulVecTrans(m *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(1, 0)*v.Y + m.At(2, 0)*v.Z,
		Y: m.At(0, 1)*v.X + m.At(1, 1)*v.Y + m.At(2, 1)*v.Z,
		Z: m.At(0, 2)*v.X + m.At(1, 2)*v.Y + m.At(2, 2)*v.Z,
	}
}

// RelativeTranslation returns the object's translation expressed in
// the camera's local frame.
func RelativeTranslation(obj *scene.Object, cam *scene.Camera) r3.Vector {
	return MulVecTrans(cam.Rotation, obj.Translation.Sub(cam.Translation))
}

// RelativeRotation returns the object's rotation relative to the
// camera. The zeroing rotation, given as XYZ Euler angles in degrees,
// is applied on the camera side to compensate for a reference-axis
// offset baked into the scene convention:
//
//	R = Rzero^T * Rcam^T * Robj
func RelativeRotation(obj *scene.Object, cam *scene.Camera, zeroing r3.Vector) *mat.Dense {
	zero := EulerXYZDeg(zeroing)
	var camObj, rel mat.Dense
	camObj.Mul(cam.Rotation.T(), obj.Rotation)
	rel.Mul(zero.T(), &camObj)
	return mat.DenseCopyOf(&rel)
}
